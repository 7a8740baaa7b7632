package http_room

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
	rooms := router.Group("/rooms")
	rooms.POST("", c.create)

	room := router.Group("/rooms/:room_id")
	room.POST("/join", c.join)
	room.GET("", c.state)
}

type CreateRoomRequestDTO struct {
	Name        string `json:"name" binding:"required,max=100" example:"Sprint 42"`
	CreatorName string `json:"creator_name" binding:"required,max=50" example:"Alice"`
	Deck        string `json:"deck" binding:"omitempty,oneof=fibonacci ordinal" example:"fibonacci"`
}

type CreateRoomResponseDTO struct {
	RoomID string           `json:"room_id"`
	Token  string           `json:"token"`
	Room   model.VotingView `json:"room"`
}

// @Summary Create an estimation room
// @Tags Room operations
// @Accept json
// @Produce json
// @Param request body CreateRoomRequestDTO true "Room name, creator name and optional deck"
// @Success 201 {object} CreateRoomResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Invalid request"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /rooms [post]
func (c *Controller) create(ctx *gin.Context) {
	var req CreateRoomRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "incorrect request",
		})
		return
	}

	deck := model.DeckKind(req.Deck)
	if req.Deck == "" {
		deck = model.DeckFibonacci
	}

	roomID, token, view, err := c.uc.Create(ctx.Request.Context(), req.Name, req.CreatorName, deck)
	if err != nil {
		c.logger.Error("failed to create room",
			slog.String("error", err.Error()),
		)
		http_common.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, CreateRoomResponseDTO{
		RoomID: string(roomID),
		Token:  string(token),
		Room:   view,
	})
}

type JoinRoomRequestDTO struct {
	Name string `json:"name" binding:"required,max=50" example:"Bob"`
}

type JoinRoomResponseDTO struct {
	Token string         `json:"token"`
	Room  model.RoomView `json:"room"`
}

// @Summary Join an existing room
// @Tags Room operations
// @Accept json
// @Produce json
// @Param room_id path string true "Room identifier"
// @Param request body JoinRoomRequestDTO true "Member display name"
// @Success 200 {object} JoinRoomResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Invalid request"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Router /rooms/{room_id}/join [post]
func (c *Controller) join(ctx *gin.Context) {
	roomID := ctx.Param("room_id")

	var req JoinRoomRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "incorrect request",
		})
		return
	}

	token, view, err := c.uc.Join(ctx.Request.Context(), model.RoomID(roomID), req.Name)
	if err != nil {
		c.logger.Error("failed to join room",
			slog.String("room_id", roomID),
			slog.String("error", err.Error()),
		)
		http_common.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, JoinRoomResponseDTO{
		Token: string(token),
		Room:  view,
	})
}

// @Summary Get current room state
// @Description Votes stay hidden while the room is in the voting phase.
// @Tags Room operations
// @Produce json
// @Param room_id path string true "Room identifier"
// @Param token query string true "Membership token"
// @Success 200 {object} model.VotingView
// @Failure 404 {object} http_common.ErrorResponse "Room not found or not a member"
// @Router /rooms/{room_id} [get]
func (c *Controller) state(ctx *gin.Context) {
	roomID := ctx.Param("room_id")
	token := ctx.Query("token")

	view, err := c.uc.State(ctx.Request.Context(), model.RoomID(roomID), model.MemberToken(token))
	if err != nil {
		http_common.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}
