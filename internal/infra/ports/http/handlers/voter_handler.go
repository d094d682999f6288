package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/voteroom/voteroom/internal/infra/ports/http/dto"
	"github.com/voteroom/voteroom/internal/usecase"
)

// VoterSecretHeader carries the voter capability token on mutations.
const VoterSecretHeader = "X-Voter-Secret"

type VoterHandler struct {
	voterUsecase usecase.VoterUsecase
}

func NewVoterHandler(voterUsecase usecase.VoterUsecase) *VoterHandler {
	return &VoterHandler{voterUsecase: voterUsecase}
}

func (h *VoterHandler) JoinRoomHandler(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid room id"})
	}

	voter, err := h.voterUsecase.Join(c.Request().Context(), roomID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.JoinRoomResponse{
		VoterID:     voter.ID,
		VoterSecret: voter.Secret,
	})
}

func (h *VoterHandler) ApproveVoterHandler(c echo.Context) error {
	voterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid voter id"})
	}

	secret := c.Request().Header.Get(AdminSecretHeader)

	if err := h.voterUsecase.Approve(c.Request().Context(), voterID, secret); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *VoterHandler) SubmitBallotHandler(c echo.Context) error {
	voterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid voter id"})
	}

	var req dto.SubmitBallotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	secret := c.Request().Header.Get(VoterSecretHeader)

	if err := h.voterUsecase.SubmitBallot(c.Request().Context(), voterID, secret, req.Ballot); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusOK)
}
