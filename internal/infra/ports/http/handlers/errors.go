package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voteroom/voteroom/internal/application/constant"
	"github.com/voteroom/voteroom/internal/domain"
)

// writeError maps domain errors onto HTTP statuses. A wrong secret gets
// the same 404 as an absent or wrong-state room, so clients cannot probe.
// Anything unrecognized is a store-level failure: logged in full, exposed
// as a bare internal error.
func writeError(c echo.Context, err error) error {
	switch {
	case domain.IsValidation(err):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})

	case errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrVoterNotFound),
		errors.Is(err, domain.ErrUnauthorized):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})

	case errors.Is(err, domain.ErrBallotMismatch):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})

	default:
		slog.Error("internal error", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
