package http_voting

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/planpoker/core/internal/delivery/http/common"
	"github.com/planpoker/core/internal/model"
	usecase_room "github.com/planpoker/core/internal/usecase/room"
)

type Controller struct {
	uc *usecase_room.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_room.Usecase,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	room := router.Group("/rooms/:room_id")
	room.POST("/vote", c.vote)
	room.POST("/reveal", c.reveal)
	room.POST("/reset", c.reset)
}

type VoteRequestDTO struct {
	Token string `json:"token" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Vote  *int   `json:"vote" binding:"required" example:"5"`
}

type VoteResponseDTO struct {
	Success bool             `json:"success"`
	Room    model.VotingView `json:"room"`
}

// @Summary Submit or update a vote
// @Tags Voting operations
// @Accept json
// @Produce json
// @Param room_id path string true "Room identifier"
// @Param request body VoteRequestDTO true "Membership token and vote value"
// @Success 200 {object} VoteResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Invalid vote value"
// @Failure 403 {object} http_common.ErrorResponse "Voting closed"
// @Failure 404 {object} http_common.ErrorResponse "Room not found or not a member"
// @Router /rooms/{room_id}/vote [post]
func (c *Controller) vote(ctx *gin.Context) {
	roomID := ctx.Param("room_id")

	var req VoteRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "incorrect request",
		})
		return
	}

	view, err := c.uc.Vote(ctx.Request.Context(), model.RoomID(roomID), model.MemberToken(req.Token), *req.Vote)
	if err != nil {
		c.logger.Error("failed to submit vote",
			slog.String("room_id", roomID),
			slog.String("error", err.Error()),
		)
		http_common.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, VoteResponseDTO{
		Success: true,
		Room:    view,
	})
}

type RevealRequestDTO struct {
	Token string `json:"token" binding:"required"`
}

type RevealResponseDTO struct {
	Success bool               `json:"success"`
	Room    model.CompleteView `json:"room"`
}

// @Summary Reveal all votes
// @Tags Voting operations
// @Accept json
// @Produce json
// @Param room_id path string true "Room identifier"
// @Param request body RevealRequestDTO true "Membership token"
// @Success 200 {object} RevealResponseDTO
// @Failure 403 {object} http_common.ErrorResponse "Already complete"
// @Failure 404 {object} http_common.ErrorResponse "Room not found or not a member"
// @Router /rooms/{room_id}/reveal [post]
func (c *Controller) reveal(ctx *gin.Context) {
	roomID := ctx.Param("room_id")

	var req RevealRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "incorrect request",
		})
		return
	}

	view, err := c.uc.Reveal(ctx.Request.Context(), model.RoomID(roomID), model.MemberToken(req.Token))
	if err != nil {
		c.logger.Error("failed to reveal votes",
			slog.String("room_id", roomID),
			slog.String("error", err.Error()),
		)
		http_common.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, RevealResponseDTO{
		Success: true,
		Room:    view,
	})
}

type ResetRequestDTO struct {
	Token string `json:"token" binding:"required"`
}

type ResetResponseDTO struct {
	Success bool             `json:"success"`
	Room    model.VotingView `json:"room"`
}

// @Summary Reset the room for a new round
// @Tags Voting operations
// @Accept json
// @Produce json
// @Param room_id path string true "Room identifier"
// @Param request body ResetRequestDTO true "Membership token"
// @Success 200 {object} ResetResponseDTO
// @Failure 404 {object} http_common.ErrorResponse "Room not found or not a member"
// @Router /rooms/{room_id}/reset [post]
func (c *Controller) reset(ctx *gin.Context) {
	roomID := ctx.Param("room_id")

	var req ResetRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "incorrect request",
		})
		return
	}

	view, err := c.uc.Reset(ctx.Request.Context(), model.RoomID(roomID), model.MemberToken(req.Token))
	if err != nil {
		c.logger.Error("failed to reset room",
			slog.String("room_id", roomID),
			slog.String("error", err.Error()),
		)
		http_common.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, ResetResponseDTO{
		Success: true,
		Room:    view,
	})
}
