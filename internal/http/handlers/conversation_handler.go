// README: Conversation endpoints: create, message turns, spec inspection, reset.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"farelink/internal/modules/conversation"
	"farelink/internal/modules/tripspec"
	"farelink/internal/types"
)

type ConversationHandler struct {
	svc *conversation.Service
}

func NewConversationHandler(svc *conversation.Service) *ConversationHandler {
	return &ConversationHandler{svc: svc}
}

type createConversationReq struct {
	UserID string `json:"user_id"`
}

// Create handles POST /api/conversations.
func (h *ConversationHandler) Create(c *gin.Context) {
	var req createConversationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		writeError(c, http.StatusBadRequest, "missing user_id")
		return
	}

	conv, err := h.svc.Create(c.Request.Context(), req.UserID)
	if err != nil {
		writeTurnError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, conversationView(conv))
}

type messageReq struct {
	Message string `json:"message"`
}

// Message handles POST /api/conversations/:id/messages.
func (h *ConversationHandler) Message(c *gin.Context) {
	var req messageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}

	// Budget covers the LLM extraction plus a couple of store round trips.
	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()

	result, err := h.svc.HandleTurn(ctx, types.ID(c.Param("id")), req.Message)
	if err != nil {
		writeTurnError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, turnView(result))
}

// Spec handles GET /api/conversations/:id/spec.
func (h *ConversationHandler) Spec(c *gin.Context) {
	spec, eval, err := h.svc.Spec(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeTurnError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, specView(spec, eval))
}

// Reset handles POST /api/conversations/:id/reset.
func (h *ConversationHandler) Reset(c *gin.Context) {
	conv, err := h.svc.Reset(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeTurnError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, conversationView(conv))
}

func conversationView(conv *conversation.Conversation) gin.H {
	return gin.H{
		"id":     string(conv.ID),
		"status": string(conv.Status),
		"step":   string(conv.Step),
	}
}

func turnView(r *conversation.TurnResult) gin.H {
	out := gin.H{
		"reply":                 r.Reply,
		"step":                  string(r.Step),
		"status":                string(r.Status),
		"is_complete":           r.IsComplete,
		"missing_fields":        r.MissingFields,
		"completion_percentage": r.CompletionPercentage,
	}
	if r.ConnectivityWarning != "" {
		out["connectivity_warning"] = r.ConnectivityWarning
	}
	if r.BookingURL != "" {
		out["booking_url"] = r.BookingURL
		out["shareable_url"] = r.ShareableURL
		out["deep_link_url"] = r.DeepLinkURL
	}
	return out
}

func specView(spec *tripspec.TripSpecification, eval tripspec.Evaluation) gin.H {
	legs := make([]gin.H, 0, len(spec.Legs))
	for _, leg := range spec.Legs {
		legs = append(legs, gin.H{
			"sequence":         leg.Sequence,
			"origin_code":      leg.OriginCode,
			"origin_name":      leg.OriginName,
			"destination_code": leg.DestCode,
			"destination_name": leg.DestName,
			"departure_date":   leg.DepartureDate,
		})
	}
	return gin.H{
		"conversation_id":       string(spec.ConversationID),
		"origin_code":           spec.OriginCode,
		"origin_name":           spec.OriginName,
		"destination_code":      spec.DestCode,
		"destination_name":      spec.DestName,
		"departure_date":        spec.DepartureDate,
		"return_date":           spec.ReturnDate,
		"trip_kind":             string(spec.TripKind),
		"adults":                spec.Adults,
		"children":              spec.Children,
		"infants":               spec.Infants,
		"cabin":                 spec.Cabin,
		"legs":                  legs,
		"is_complete":           eval.Complete,
		"missing_fields":        eval.Missing,
		"completion_percentage": eval.Percentage,
	}
}
