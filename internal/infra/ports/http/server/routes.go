package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voteroom/voteroom/internal/infra/ports/http/handlers"
	"github.com/voteroom/voteroom/internal/infra/ports/http/middleware"
)

func New(
	roomHandler *handlers.RoomHandler,
	voterHandler *handlers.VoterHandler,
	liveHandler *handlers.LiveHandler,
) *echo.Echo {
	e := echo.New()

	e.HideBanner = true

	e.Use(middleware.SlogLogger())
	e.Use(middleware.PrometheusMiddleware())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.POST("/rooms", roomHandler.CreateRoomHandler)
			v1.GET("/rooms/:id", roomHandler.GetRoomHandler)
			v1.POST("/rooms/:id/start", roomHandler.StartVoteHandler)
			v1.POST("/rooms/:id/end", roomHandler.EndVoteHandler)

			v1.POST("/rooms/:id/join", voterHandler.JoinRoomHandler)
			v1.POST("/voters/:id/approve", voterHandler.ApproveVoterHandler)
			v1.PUT("/voters/:id/ballot", voterHandler.SubmitBallotHandler)

			v1.GET("/rooms/:id/live", liveHandler.SSEHandler)
			v1.GET("/rooms/:id/ws", liveHandler.WSHandler)
		}
	}

	return e
}
