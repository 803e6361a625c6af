// README: HTTP client for the Rapido PWA fare-estimate endpoint.
package rapido

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultBaseURL  = "https://m.rapido.bike/pwa/api/unup/scc/fareEstimate"
	DefaultDeviceID = "cabsync-aggregator"

	// maxBodyBytes bounds the envelope; a ride list is a few KB of byte values.
	maxBodyBytes = 4 << 20
)

var ErrUpstream = errors.New("rapido upstream error")

type Client struct {
	url      string
	deviceID string
	http     *http.Client
}

func NewClient(url, deviceID string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultBaseURL
	}
	if deviceID == "" {
		deviceID = DefaultDeviceID
	}
	return &Client{
		url:      url,
		deviceID: deviceID,
		http:     &http.Client{Timeout: timeout},
	}
}

type fareLocation struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"displayName"`
	Address     string  `json:"address"`
}

type fareEstimateReq struct {
	PickupLocation fareLocation `json:"pickupLocation"`
	DropLocation   fareLocation `json:"dropLocation"`
	DeviceID       string       `json:"deviceId"`
}

func toFareLocation(p Place) fareLocation {
	addr := p.Address
	if addr == "" {
		addr = p.Name
	}
	return fareLocation{Lat: p.Lat, Lng: p.Lng, DisplayName: p.displayName(), Address: addr}
}

// FetchFareEstimate posts the trip and returns the raw response body, which
// is the byte-array envelope around the wire buffer.
func (c *Client) FetchFareEstimate(ctx context.Context, req FareRequest) ([]byte, error) {
	reqBody, err := json.Marshal(fareEstimateReq{
		PickupLocation: toFareLocation(req.Pickup),
		DropLocation:   toFareLocation(req.Dropoff),
		DeviceID:       c.deviceID,
	})
	if err != nil {
		return nil, fmt.Errorf("rapido: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("rapido: build request: %w", err)
	}
	setPWAHeaders(httpReq.Header)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	return body, nil
}

func setPWAHeaders(h http.Header) {
	h.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:145.0) Gecko/20100101 Firefox/145.0")
	h.Set("Accept", "application/json, text/plain, */*")
	h.Set("Accept-Language", "en-US,en;q=0.5")
	h.Set("Content-Type", "application/json")
	h.Set("channel-name", "pwa")
	h.Set("channel-host", "browser")
	h.Set("channel-entity", "customer")
	h.Set("version", "1.0")
	h.Set("appid", "2")
	h.Set("appversion", "214")
	h.Set("authorization", "Bearer")
	h.Set("Origin", "https://m.rapido.bike")
}
