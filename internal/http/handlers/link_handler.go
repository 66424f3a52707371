// README: Link endpoints: encode the stored spec, parse a partner booking URL.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"farelink/internal/booking"
	"farelink/internal/modules/conversation"
	"farelink/internal/modules/tripspec"
	"farelink/internal/types"
)

type LinkHandler struct {
	svc *conversation.Service
}

func NewLinkHandler(svc *conversation.Service) *LinkHandler {
	return &LinkHandler{svc: svc}
}

// Link handles GET /api/conversations/:id/links?format=booking|shareable|deeplink.
func (h *LinkHandler) Link(c *gin.Context) {
	format := booking.Format(c.DefaultQuery("format", string(booking.FormatBooking)))
	if !format.Valid() {
		writeError(c, http.StatusBadRequest, "unknown format")
		return
	}

	url, err := h.svc.Link(c.Request.Context(), types.ID(c.Param("id")), format)
	if err != nil {
		writeTurnError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"format":     string(format),
		"url":        url,
		"can_decode": format.CanDecode(),
	})
}

type parseReq struct {
	URL string `json:"url"`
}

// Parse handles POST /api/links/parse. Decoding is best effort: a malformed
// URL yields an empty partial, not an error.
func (h *LinkHandler) Parse(c *gin.Context) {
	var req parseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		writeError(c, http.StatusBadRequest, "missing url")
		return
	}

	partial := booking.ParseBookingURL(req.URL)
	writeJSON(c, http.StatusOK, partialView(partial))
}

func partialView(p tripspec.Partial) gin.H {
	legs := make([]gin.H, 0, len(p.Legs))
	for _, leg := range p.Legs {
		legs = append(legs, gin.H{
			"sequence":         leg.Sequence,
			"origin_code":      leg.OriginCode,
			"destination_code": leg.DestCode,
			"departure_date":   leg.DepartureDate,
		})
	}
	var kind *string
	if p.TripKind != nil {
		k := string(*p.TripKind)
		kind = &k
	}
	return gin.H{
		"empty":            p.IsEmpty(),
		"origin_code":      p.OriginCode,
		"destination_code": p.DestCode,
		"departure_date":   p.DepartureDate,
		"return_date":      p.ReturnDate,
		"trip_kind":        kind,
		"adults":           p.Adults,
		"children":         p.Children,
		"infants":          p.Infants,
		"cabin":            p.Cabin,
		"legs":             legs,
	}
}
