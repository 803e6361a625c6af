// README: Quote service tests with in-memory fetcher, cache, payload store and trip estimator.
package rapido

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"cabsync/internal/types"
)

type stubFetcher struct {
	body  []byte
	err   error
	calls int
}

func (f *stubFetcher) FetchFareEstimate(_ context.Context, _ FareRequest) ([]byte, error) {
	f.calls++
	return f.body, f.err
}

type memCache struct {
	mu      sync.Mutex
	data    map[string][]RideQuote
	failGet error
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]RideQuote)}
}

func (c *memCache) Get(_ context.Context, key string) ([]RideQuote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet != nil {
		return nil, c.failGet
	}
	rides, ok := c.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return rides, nil
}

func (c *memCache) Set(_ context.Context, key string, rides []RideQuote) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = rides
	return nil
}

type memPayloads struct {
	recorded []Payload
	err      error
}

func (p *memPayloads) Record(_ context.Context, pl *Payload) error {
	if p.err != nil {
		return p.err
	}
	pl.ID = int64(len(p.recorded) + 1)
	p.recorded = append(p.recorded, *pl)
	return nil
}

type stubTrips struct {
	trip types.Trip
	err  error
}

func (s stubTrips) TripEstimate(_ context.Context, _, _ types.Point) (types.Trip, error) {
	return s.trip, s.err
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testRequest() FareRequest {
	return FareRequest{
		Pickup:  Place{Point: types.Point{Lat: 18.4878505, Lng: 74.0234138}, Name: "Loni Kalbhor"},
		Dropoff: Place{Point: types.Point{Lat: 18.5288974, Lng: 73.8665321}, Name: "Pune Railway Station"},
	}
}

func TestService_QuotesFetchesAndCaches(t *testing.T) {
	raw := fareResponse(rideEntry(RideTypeBike, 40, 40), rideEntry(RideTypeAuto, 145, 150))
	fetcher := &stubFetcher{body: envelope(t, raw)}
	cache := newMemCache()
	payloads := &memPayloads{}
	trip := types.Trip{DistanceMeters: 17800, DistanceText: "17.8 km", Duration: 40 * time.Minute, DurationSec: 2400}
	svc := NewService(ServiceDeps{
		Fetcher: fetcher, Cache: cache, Payloads: payloads,
		Trips: stubTrips{trip: trip}, Logger: quietLogger(),
	})
	ctx := context.Background()

	res, err := svc.Quotes(ctx, testRequest())
	require.NoError(t, err)
	require.False(t, res.Cached)
	require.Len(t, res.Rides, 2)
	require.Equal(t, "Rapido Auto", res.Rides[1].DisplayName)
	require.Equal(t, CacheKey(testRequest()), res.CacheKey)
	require.NotNil(t, res.Trip)
	require.Equal(t, 17800, res.Trip.DistanceMeters)
	require.Empty(t, payloads.recorded)

	res, err = svc.Quotes(ctx, testRequest())
	require.NoError(t, err)
	require.True(t, res.Cached)
	require.Len(t, res.Rides, 2)
	require.Equal(t, 1, fetcher.calls)
}

func TestService_QuotesVehicleFilter(t *testing.T) {
	raw := fareResponse(rideEntry(RideTypeBike, 40, 40), rideEntry(RideTypeAuto, 145, 150), rideEntry(RideTypeCab, 300, 320))
	svc := NewService(ServiceDeps{Fetcher: &stubFetcher{body: envelope(t, raw)}, Logger: quietLogger()})

	req := testRequest()
	req.VehicleType = "Auto"
	res, err := svc.Quotes(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Rides, 1)
	require.Equal(t, VehicleAuto, res.Rides[0].VehicleClass)
	require.Nil(t, res.Trip)

	req.VehicleType = "boat"
	res, err = svc.Quotes(context.Background(), req)
	require.NoError(t, err)
	require.Empty(t, res.Rides)
}

func TestService_QuotesKeepsEmptyPayload(t *testing.T) {
	status := []byte{0x0a, 0x07, 'n', 'o', ' ', 'r', 'i', 'd', 'e'}
	payloads := &memPayloads{}
	cache := newMemCache()
	svc := NewService(ServiceDeps{
		Fetcher: &stubFetcher{body: envelope(t, status)}, Cache: cache,
		Payloads: payloads, Logger: quietLogger(),
	})

	res, err := svc.Quotes(context.Background(), testRequest())
	require.NoError(t, err)
	require.Empty(t, res.Rides)
	require.Len(t, payloads.recorded, 1)
	require.Equal(t, "0a076e6f2072696465", payloads.recorded[0].PayloadHex)
	require.Equal(t, 0, payloads.recorded[0].RideCount)
	require.Empty(t, cache.data, "empty results are not cached")
}

func TestService_QuotesKeepsTruncatedPayload(t *testing.T) {
	raw := append(fareResponse(rideEntry(RideTypeBike, 30, 30)), 0x1a, 0x09)
	payloads := &memPayloads{err: errors.New("db down")}
	svc := NewService(ServiceDeps{
		Fetcher: &stubFetcher{body: envelope(t, raw)}, Payloads: payloads, Logger: quietLogger(),
	})

	res, err := svc.Quotes(context.Background(), testRequest())
	require.NoError(t, err, "store failures are logged only")
	require.Len(t, res.Rides, 1)
}

func TestService_QuotesErrors(t *testing.T) {
	ctx := context.Background()

	svc := NewService(ServiceDeps{Fetcher: &stubFetcher{err: ErrUpstream}, Logger: quietLogger()})
	_, err := svc.Quotes(ctx, testRequest())
	require.ErrorIs(t, err, ErrUpstream)

	svc = NewService(ServiceDeps{Fetcher: &stubFetcher{body: []byte("<html>")}, Logger: quietLogger()})
	_, err = svc.Quotes(ctx, testRequest())
	require.ErrorIs(t, err, ErrUpstream)

	req := testRequest()
	req.Dropoff = req.Pickup
	_, err = svc.Quotes(ctx, req)
	require.ErrorIs(t, err, ErrBadRequest)

	req = testRequest()
	req.Pickup.Lat = 91
	_, err = svc.Quotes(ctx, req)
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestService_CacheReadFailureFallsThrough(t *testing.T) {
	raw := fareResponse(rideEntry(RideTypeAuto, 145, 145))
	cache := newMemCache()
	cache.failGet = errors.New("redis timeout")
	fetcher := &stubFetcher{body: envelope(t, raw)}
	svc := NewService(ServiceDeps{
		Fetcher: fetcher, Cache: cache, Trips: stubTrips{err: errors.New("no route")}, Logger: quietLogger(),
	})

	res, err := svc.Quotes(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, res.Rides, 1)
	require.Nil(t, res.Trip)
	require.Equal(t, 1, fetcher.calls)
}

func TestCacheKey(t *testing.T) {
	a := CacheKey(testRequest())
	require.Len(t, a, len("cabsync_")+12)
	require.Regexp(t, `^cabsync_[0-9a-f]{12}$`, a)

	nudged := testRequest()
	nudged.Pickup.Lat += 0.0001
	require.Equal(t, a, CacheKey(nudged), "sub-100m moves share a key")

	auto := testRequest()
	auto.VehicleType = "AUTO"
	require.NotEqual(t, a, CacheKey(auto))
	auto.VehicleType = "auto"
	require.Equal(t, CacheKey(auto), func() string { r := testRequest(); r.VehicleType = "Auto"; return CacheKey(r) }())
}

func TestFilterByVehicle(t *testing.T) {
	rides := []RideQuote{{VehicleClass: VehicleBike}, {VehicleClass: VehicleCar}, {VehicleClass: VehicleCar}}
	require.Len(t, FilterByVehicle(rides, ""), 3)
	require.Len(t, FilterByVehicle(rides, " car "), 2)
	require.Empty(t, FilterByVehicle(rides, "auto"))
}
