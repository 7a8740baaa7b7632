package http_common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	usecase_room "github.com/planpoker/core/internal/usecase/room"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// RespondError maps usecase errors onto transport codes. Usage faults
// get 4xx; only a failing store is a 5xx.
func RespondError(ctx *gin.Context, err error) {
	ctx.JSON(statusOf(err), ErrorResponse{
		Message: err.Error(),
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase_room.ErrInvalidArgument),
		errors.Is(err, usecase_room.ErrInvalidVote):
		return http.StatusBadRequest
	case errors.Is(err, usecase_room.ErrVotingClosed),
		errors.Is(err, usecase_room.ErrAlreadyComplete):
		return http.StatusForbidden
	case errors.Is(err, usecase_room.ErrRoomNotFound),
		errors.Is(err, usecase_room.ErrNotAMember):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
