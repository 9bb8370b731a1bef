package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/taskboard/core/internal/application/scheduler"
	"github.com/taskboard/core/internal/application/services"
	"github.com/taskboard/core/internal/domain/countdown"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// Incoming frame types.
const (
	frameWatch  = "watch"
	frameSearch = "search"
)

// Outgoing frame types, beyond the session event types.
const (
	frameCountdown    = "countdown"
	frameSearchResult = "search_result"
	frameError        = "error"
)

// inFrame is a client request on the stream.
type inFrame struct {
	Type    string   `json:"type"`
	TaskIDs []string `json:"task_ids,omitempty"`
	Query   string   `json:"query,omitempty"`
	Scope   string   `json:"scope,omitempty"`
}

// outFrame is a server push on the stream.
type outFrame struct {
	Type       string               `json:"type"`
	Message    string               `json:"message,omitempty"`
	Countdowns []taskCountdownFrame `json:"countdowns,omitempty"`
	Result     *ports.SearchResult  `json:"result,omitempty"`
}

type taskCountdownFrame struct {
	TaskID    string              `json:"task_id"`
	Countdown countdown.Countdown `json:"countdown"`
}

// StreamHandler drives one session's live updates over a websocket:
// coalesced store-changed events, persistence warnings, a fixed-
// cadence countdown refresh for the tasks the client watches, and
// debounced live search where a newer query supersedes a pending one.
type StreamHandler struct {
	sessionService *services.SessionService
	storeService   *services.StoreService
	searchService  *services.SearchService
	logger         *logger.Logger
	refresh        time.Duration
	debounce       time.Duration
	upgrader       websocket.Upgrader
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(sessionService *services.SessionService, storeService *services.StoreService, searchService *services.SearchService, logger *logger.Logger, refresh, debounce time.Duration) *StreamHandler {
	return &StreamHandler{
		sessionService: sessionService,
		storeService:   storeService,
		searchService:  searchService,
		logger:         logger,
		refresh:        refresh,
		debounce:       debounce,
		upgrader: websocket.Upgrader{
			// Origin policy is enforced by the CORS middleware.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Stream upgrades the connection and serves the session's event loop
func (h *StreamHandler) Stream(c echo.Context) error {
	sessionID := sessionIDFromContext(c)
	events, err := h.sessionService.Events(sessionID)
	if err != nil {
		return domainError(err)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	var (
		out  = make(chan outFrame, 32)
		done = make(chan struct{})

		watchMu sync.Mutex
		watched []string
	)

	debouncer := scheduler.NewDebouncer(h.debounce)
	defer debouncer.Stop()

	// Read pump. The websocket has a single writer (the loop below);
	// reader-side work pushes frames through the out channel.
	go func() {
		defer close(done)
		for {
			var frame inFrame
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}

			switch frame.Type {
			case frameWatch:
				watchMu.Lock()
				watched = frame.TaskIDs
				watchMu.Unlock()
			case frameSearch:
				req := ports.SearchRequest{
					Query: frame.Query,
					Scope: ports.SearchScope(frame.Scope),
				}
				debouncer.Trigger(func() {
					result, err := h.searchService.Search(sessionID, req)
					f := outFrame{Type: frameSearchResult, Result: result}
					if err != nil {
						f = outFrame{Type: frameError, Message: err.Error()}
					}
					select {
					case out <- f:
					default:
					}
				})
			}
		}
	}()

	ticker := time.NewTicker(h.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return nil
		case ev, ok := <-events:
			if !ok {
				// Session closed under us (logout or supersede).
				return nil
			}
			if err := conn.WriteJSON(outFrame{Type: ev.Type, Message: ev.Message}); err != nil {
				return nil
			}
		case f := <-out:
			if err := conn.WriteJSON(f); err != nil {
				return nil
			}
		case <-ticker.C:
			watchMu.Lock()
			ids := make([]string, len(watched))
			copy(ids, watched)
			watchMu.Unlock()

			frame := h.countdownFrame(sessionID, ids)
			if frame == nil {
				continue
			}
			if err := conn.WriteJSON(*frame); err != nil {
				return nil
			}
		}
	}
}

// countdownFrame recomputes countdown text for the watched tasks.
// Tasks deleted since the watch request are skipped; the refresh
// never touches the store beyond reads.
func (h *StreamHandler) countdownFrame(sessionID string, ids []string) *outFrame {
	if len(ids) == 0 {
		return nil
	}

	items := make([]taskCountdownFrame, 0, len(ids))
	for _, id := range ids {
		cd, err := h.storeService.TaskCountdown(sessionID, id)
		if err != nil {
			continue
		}
		items = append(items, taskCountdownFrame{TaskID: id, Countdown: cd.Countdown})
	}
	if len(items) == 0 {
		return nil
	}
	return &outFrame{Type: frameCountdown, Countdowns: items}
}
