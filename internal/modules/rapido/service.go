// README: Rapido quote service: fetch, decode, extract, cache, and keep bad payloads.
package rapido

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"cabsync/internal/types"
)

type Fetcher interface {
	FetchFareEstimate(ctx context.Context, req FareRequest) ([]byte, error)
}

type Cache interface {
	Get(ctx context.Context, key string) ([]RideQuote, error)
	Set(ctx context.Context, key string, rides []RideQuote) error
}

type PayloadRecorder interface {
	Record(ctx context.Context, p *Payload) error
}

type TripEstimator interface {
	TripEstimate(ctx context.Context, origin, destination types.Point) (types.Trip, error)
}

var ErrBadRequest = errors.New("bad request")

type ServiceDeps struct {
	Fetcher  Fetcher
	Cache    Cache
	Payloads PayloadRecorder
	Trips    TripEstimator
	Logger   logrus.FieldLogger
}

type Service struct {
	fetcher  Fetcher
	cache    Cache
	payloads PayloadRecorder
	trips    TripEstimator
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewService wires the pipeline. Only Fetcher is required; a nil Cache,
// PayloadRecorder or TripEstimator switches that step off.
func NewService(deps ServiceDeps) *Service {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		fetcher:  deps.Fetcher,
		cache:    deps.Cache,
		payloads: deps.Payloads,
		trips:    deps.Trips,
		log:      log.WithField("provider", ProviderID),
		now:      time.Now,
	}
}

// Quotes returns the ride options for a trip. Cache, payload store and trip
// estimate failures are logged and never fail the request.
func (s *Service) Quotes(ctx context.Context, req FareRequest) (QuoteResult, error) {
	if err := validate(req); err != nil {
		return QuoteResult{}, err
	}
	key := CacheKey(req)
	res := QuoteResult{CacheKey: key, QueriedAt: s.now().UTC()}

	if rides, ok := s.cached(ctx, key); ok {
		res.Rides, res.Cached = rides, true
		res.Trip = s.trip(ctx, req)
		return res, nil
	}

	body, err := s.fetcher.FetchFareEstimate(ctx, req)
	if err != nil {
		return QuoteResult{}, err
	}
	decoded, err := Decode(body)
	if err != nil {
		s.log.WithError(err).WithField("bytes", len(body)).Warn("rapido envelope rejected")
		return QuoteResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	entry := s.log.WithFields(logrus.Fields{
		"cache_key": key,
		"bytes":     len(decoded.Raw),
		"rides":     len(decoded.Rides),
		"stop":      decoded.Scan.Stop,
	})
	if len(decoded.Rides) == 0 || !decoded.Scan.Complete() {
		entry.WithField("payload_hex", hex.EncodeToString(decoded.Raw)).Warn("rapido payload decoded incompletely")
		s.keepPayload(ctx, key, decoded)
	} else {
		entry.Debug("rapido payload decoded")
	}

	res.Rides = FilterByVehicle(decoded.Rides, req.VehicleType)
	if len(res.Rides) > 0 && s.cache != nil {
		if err := s.cache.Set(ctx, key, res.Rides); err != nil {
			s.log.WithError(err).Warn("quote cache write failed")
		}
	}
	res.Trip = s.trip(ctx, req)
	return res, nil
}

// Decode runs the decoder on a captured response body without touching the
// network, cache or store.
func (s *Service) Decode(body []byte) (DecodeResult, error) {
	return Decode(body)
}

// FilterByVehicle keeps quotes of the requested class; an empty class keeps all.
func FilterByVehicle(rides []RideQuote, vehicleType string) []RideQuote {
	want := VehicleClass(strings.ToLower(strings.TrimSpace(vehicleType)))
	if want == "" {
		return rides
	}
	out := make([]RideQuote, 0, len(rides))
	for _, r := range rides {
		if r.VehicleClass == want {
			out = append(out, r)
		}
	}
	return out
}

func validate(req FareRequest) error {
	for _, p := range []types.Point{req.Pickup.Point, req.Dropoff.Point} {
		if p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
			return fmt.Errorf("%w: coordinates out of range", ErrBadRequest)
		}
	}
	if req.Pickup.Point == req.Dropoff.Point {
		return fmt.Errorf("%w: pickup equals dropoff", ErrBadRequest)
	}
	return nil
}

func (s *Service) cached(ctx context.Context, key string) ([]RideQuote, bool) {
	if s.cache == nil {
		return nil, false
	}
	rides, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			s.log.WithError(err).Warn("quote cache read failed")
		}
		return nil, false
	}
	return rides, true
}

func (s *Service) keepPayload(ctx context.Context, key string, d DecodeResult) {
	if s.payloads == nil {
		return
	}
	err := s.payloads.Record(ctx, &Payload{
		CacheKey:   key,
		PayloadHex: hex.EncodeToString(d.Raw),
		Length:     d.Scan.Length,
		Consumed:   d.Scan.Consumed,
		StopReason: d.Scan.Stop,
		RideCount:  len(d.Rides),
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		s.log.WithError(err).Warn("payload store write failed")
	}
}

func (s *Service) trip(ctx context.Context, req FareRequest) *types.Trip {
	if s.trips == nil {
		return nil
	}
	t, err := s.trips.TripEstimate(ctx, req.Pickup.Point, req.Dropoff.Point)
	if err != nil {
		s.log.WithError(err).Info("trip estimate unavailable")
		return nil
	}
	return &t
}
