// README: Quote handlers: live Rapido quotes, offline payload decoding, stored payloads.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"cabsync/internal/modules/rapido"
	"cabsync/internal/types"
	"cabsync/internal/wire"
)

// maxEnvelopeBytes bounds bodies posted to the decode endpoint.
const maxEnvelopeBytes = 4 << 20

type QuoteService interface {
	Quotes(ctx context.Context, req rapido.FareRequest) (rapido.QuoteResult, error)
	Decode(body []byte) (rapido.DecodeResult, error)
}

type PayloadLister interface {
	Recent(ctx context.Context, limit int) ([]rapido.Payload, error)
}

type QuoteHandler struct {
	quotes   QuoteService
	payloads PayloadLister
	timeout  time.Duration
}

// NewQuoteHandler builds the handler; payloads may be nil when no database is wired.
func NewQuoteHandler(quotes QuoteService, payloads PayloadLister, timeout time.Duration) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, payloads: payloads, timeout: timeout}
}

type placeReq struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
}

func (p placeReq) toPlace() (rapido.Place, bool) {
	if p.Lat == nil || p.Lng == nil {
		return rapido.Place{}, false
	}
	return rapido.Place{Point: types.Point{Lat: *p.Lat, Lng: *p.Lng}, Name: p.Name, Address: p.Address}, true
}

type quoteReq struct {
	Pickup      placeReq `json:"pickup"`
	Dropoff     placeReq `json:"dropoff"`
	VehicleType string   `json:"vehicle_type"`
}

type rideView struct {
	rapido.RideQuote
	PriceText string `json:"price_text"`
	Currency  string `json:"currency"`
}

type quoteMeta struct {
	CacheKey  string `json:"cache_key"`
	QueriedAt string `json:"queried_at"`
	Cached    bool   `json:"cached"`
}

type quoteResp struct {
	Results []rideView  `json:"results"`
	Trip    *types.Trip `json:"trip"`
	Meta    quoteMeta   `json:"meta"`
}

type decodeResp struct {
	Rides []rideView  `json:"rides"`
	Scan  wire.Report `json:"scan"`
}

func toViews(rides []rapido.RideQuote) []rideView {
	out := make([]rideView, len(rides))
	for i, r := range rides {
		out[i] = rideView{RideQuote: r, PriceText: r.PriceText(), Currency: types.CurrencyINR}
	}
	return out
}

// Quotes handles POST /api/rapido/quotes.
func (h *QuoteHandler) Quotes(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	pickup, ok := req.Pickup.toPlace()
	if !ok {
		writeError(c, http.StatusBadRequest, "missing pickup coordinates")
		return
	}
	dropoff, ok := req.Dropoff.toPlace()
	if !ok {
		writeError(c, http.StatusBadRequest, "missing dropoff coordinates")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	res, err := h.quotes.Quotes(ctx, rapido.FareRequest{Pickup: pickup, Dropoff: dropoff, VehicleType: req.VehicleType})
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, quoteResp{
		Results: toViews(res.Rides),
		Trip:    res.Trip,
		Meta: quoteMeta{
			CacheKey:  res.CacheKey,
			QueriedAt: res.QueriedAt.Format(time.RFC3339),
			Cached:    res.Cached,
		},
	})
}

// Decode handles POST /api/rapido/decode with a captured response body.
func (h *QuoteHandler) Decode(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxEnvelopeBytes)
	body, err := c.GetRawData()
	if err != nil {
		writeError(c, http.StatusRequestEntityTooLarge, "body too large")
		return
	}
	res, err := h.quotes.Decode(body)
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, decodeResp{Rides: toViews(res.Rides), Scan: res.Scan})
}

// Payloads handles GET /api/rapido/payloads.
func (h *QuoteHandler) Payloads(c *gin.Context) {
	if h.payloads == nil {
		writeError(c, http.StatusNotFound, "payload store disabled")
		return
	}
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 200 {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	payloads, err := h.payloads.Recent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	out := make([]gin.H, len(payloads))
	for i, p := range payloads {
		out[i] = gin.H{
			"id":          p.ID,
			"cache_key":   p.CacheKey,
			"payload_hex": p.PayloadHex,
			"length":      p.Length,
			"consumed":    p.Consumed,
			"stop_reason": p.StopReason,
			"ride_count":  p.RideCount,
			"created_at":  p.CreatedAt.Format(time.RFC3339),
		}
	}
	writeJSON(c, http.StatusOK, gin.H{"payloads": out})
}

// Providers handles GET /api/providers.
func (h *QuoteHandler) Providers(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"providers": []string{rapido.ProviderID}})
}
