package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/voteroom/voteroom/internal/application/config"
	"github.com/voteroom/voteroom/internal/application/constant"
	"github.com/voteroom/voteroom/internal/domain/events"
	"github.com/voteroom/voteroom/internal/eventbus"
	"github.com/voteroom/voteroom/internal/usecase"
)

// heartbeatInterval paces the keep-alive frames on both live transports.
// Event/role pairs with no projection produce nothing; the heartbeat is
// what keeps intermediaries from dropping a quiet connection.
const heartbeatInterval = 15 * time.Second

// LiveHandler exposes the room's event stream over SSE and WebSocket.
// Both share one bus subscription model: classify once, project per event.
type LiveHandler struct {
	upgrader *websocket.Upgrader

	roomUsecase usecase.RoomUsecase
	bus         *eventbus.Bus
}

func NewLiveHandler(cfg *config.Config, roomUsecase usecase.RoomUsecase, bus *eventbus.Bus) *LiveHandler {
	return &LiveHandler{
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if cfg.Debug {
					return true
				}

				return r.Header.Get("Origin") == cfg.Domain
			},
		},
		roomUsecase: roomUsecase,
		bus:         bus,
	}
}

// subscribe classifies the caller from its query-string secrets and takes
// a bus subscription. Secrets travel in the query because EventSource
// cannot set headers.
func (h *LiveHandler) subscribe(c echo.Context) (*eventbus.Subscription, error) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}

	// An unparsable voter id is the same as no voter id: anonymous.
	voterID, _ := uuid.Parse(c.QueryParam("voter_id"))

	role, err := h.roomUsecase.Classify(
		c.Request().Context(),
		roomID,
		c.QueryParam("admin_secret"),
		voterID,
		c.QueryParam("voter_secret"),
	)
	if err != nil {
		return nil, err
	}

	return h.bus.Subscribe(roomID, role), nil
}

// SSEHandler streams projected notifications as named SSE events with
// comment-frame heartbeats.
func (h *LiveHandler) SSEHandler(c echo.Context) error {
	sub, err := h.subscribe(c)
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}

		return writeError(c, err)
	}

	defer sub.Close()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-sub.Events():
			notif, ok := events.Project(ev, sub.Role())
			if !ok {
				continue
			}

			if err := writeSSE(w, notif); err != nil {
				return nil
			}

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return nil
			}

			w.Flush()

		case <-sub.Done():
			// Teardown can race a buffered event (VoteEnded in
			// particular); flush what is left before ending the stream.
			for {
				select {
				case ev := <-sub.Events():
					if notif, ok := events.Project(ev, sub.Role()); ok {
						if err := writeSSE(w, notif); err != nil {
							return nil
						}
					}

				default:
					return nil
				}
			}

		case <-c.Request().Context().Done():
			return nil
		}
	}
}

func writeSSE(w *echo.Response, notif events.Notification) error {
	if _, err := fmt.Fprintf(w, "event: %s\n", notif.Name); err != nil {
		return err
	}

	data, err := json.Marshal(notif.Data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}

	w.Flush()

	return nil
}

// WSHandler streams projected notifications as JSON messages with ping
// heartbeats, for clients behind proxies that buffer SSE.
func (h *LiveHandler) WSHandler(c echo.Context) error {
	sub, err := h.subscribe(c)
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}

		return writeError(c, err)
	}

	defer sub.Close()

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error("websocket upgrade", slog.Any(constant.Error, err))
		return err
	}

	defer ws.Close()

	// Reader only surfaces the client going away; inbound frames carry
	// nothing.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-sub.Events():
			notif, ok := events.Project(ev, sub.Role())
			if !ok {
				continue
			}

			if err := ws.WriteJSON(notif); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return nil
			}

		case <-sub.Done():
			// Same teardown race as the SSE path: deliver buffered
			// events before the close frame.
			for drained := false; !drained; {
				select {
				case ev := <-sub.Events():
					if notif, ok := events.Project(ev, sub.Role()); ok {
						if err := ws.WriteJSON(notif); err != nil {
							return nil
						}
					}

				default:
					drained = true
				}
			}

			deadline := time.Now().Add(time.Second)
			_ = ws.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "room closed"),
				deadline,
			)

			return nil

		case <-readerDone:
			return nil

		case <-c.Request().Context().Done():
			return nil
		}
	}
}
