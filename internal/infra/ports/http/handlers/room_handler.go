package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/voteroom/voteroom/internal/infra/ports/http/dto"
	"github.com/voteroom/voteroom/internal/usecase"
)

// AdminSecretHeader carries the admin capability token on mutations.
const AdminSecretHeader = "X-Admin-Secret"

type RoomHandler struct {
	roomUsecase usecase.RoomUsecase
}

func NewRoomHandler(roomUsecase usecase.RoomUsecase) *RoomHandler {
	return &RoomHandler{roomUsecase: roomUsecase}
}

func (h *RoomHandler) CreateRoomHandler(c echo.Context) error {
	var req dto.CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	room, err := h.roomUsecase.CreateRoom(c.Request().Context(), req.Name, req.Options)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.CreateRoomResponse{
		RoomID:      room.ID,
		AdminSecret: room.AdminSecret,
	})
}

func (h *RoomHandler) GetRoomHandler(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid room id"})
	}

	room, err := h.roomUsecase.GetRoom(c.Request().Context(), roomID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewRoomResponseFromModel(room))
}

func (h *RoomHandler) StartVoteHandler(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid room id"})
	}

	secret := c.Request().Header.Get(AdminSecretHeader)

	if err := h.roomUsecase.StartVote(c.Request().Context(), roomID, secret); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *RoomHandler) EndVoteHandler(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid room id"})
	}

	secret := c.Request().Header.Get(AdminSecretHeader)

	tally, err := h.roomUsecase.EndVote(c.Request().Context(), roomID, secret)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, dto.EndVoteResponse{Tally: tally})
}
