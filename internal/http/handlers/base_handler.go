// README: Base handler utilities (JSON helpers, error-to-status mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"farelink/internal/booking"
	"farelink/internal/infra"
	"farelink/internal/modules/conversation"
	"farelink/internal/modules/quota"
	"farelink/internal/modules/tripspec"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeTurnError maps domain errors onto HTTP statuses. Validation failures
// are 409: the turn was rejected and the prior specification kept.
func writeTurnError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, conversation.ErrBadRequest), errors.Is(err, tripspec.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, conversation.ErrNotFound), errors.Is(err, tripspec.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, conversation.ErrCompleted), errors.Is(err, infra.ErrLocked):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, quota.ErrInsufficientCredits):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, tripspec.ErrValidation),
		errors.Is(err, tripspec.ErrTooManyInfants),
		errors.Is(err, tripspec.ErrInvalidSequence),
		errors.Is(err, tripspec.ErrOutOfOrderDates),
		errors.Is(err, tripspec.ErrDisconnectedItinerary):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, tripspec.ErrNotEnoughLegs),
		errors.Is(err, booking.ErrIncompleteSpec):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, booking.ErrUnknownFormat),
		errors.Is(err, booking.ErrFormatNotDecodable):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
