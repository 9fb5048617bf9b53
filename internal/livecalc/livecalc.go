// Package livecalc serves interactive recalculation over a WebSocket:
// a client streams parameter updates as the user drags sliders, and the
// server pushes back the newest estimate. Superseded computations are
// dropped so the last update always wins.
package livecalc

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sunwatt/sunwatt/internal/engine"
	"github.com/sunwatt/sunwatt/internal/sunshine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ParamsMessage is one slider update from the client
type ParamsMessage struct {
	Location            engine.Location          `json:"location"`
	Array               engine.PanelArrayConfig  `json:"array"`
	Orientation         engine.OrientationParams `json:"orientation"`
	AnnualSunshineHours float64                  `json:"annual_sunshine_hours,omitempty"`
	Seq                 uint64                   `json:"seq,omitempty"`
}

// ResultMessage is pushed back for the newest parameters
type ResultMessage struct {
	Type   string               `json:"type"`
	Seq    uint64               `json:"seq,omitempty"`
	Annual *engine.AnnualOutput `json:"annual,omitempty"`
	Error  string               `json:"error,omitempty"`
}

// Handler upgrades connections and runs one session per client
type Handler struct {
	engine  *engine.Engine
	fetcher *sunshine.Fetcher
	logger  *zap.SugaredLogger
}

// NewHandler creates a WebSocket handler backed by the engine
func NewHandler(eng *engine.Engine, fetcher *sunshine.Fetcher, logger *zap.SugaredLogger) *Handler {
	return &Handler{engine: eng, fetcher: fetcher, logger: logger}
}

// session holds the per-connection state. latest is a 1-slot mailbox:
// a newer parameter set replaces an unprocessed older one.
type session struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	latest chan ParamsMessage
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnf("websocket upgrade error: %v", err)
		return
	}

	s := &session{
		id:     uuid.NewString(),
		conn:   conn,
		send:   make(chan []byte, 16),
		latest: make(chan ParamsMessage, 1),
	}

	h.logger.Debugw("live session opened", "session_id", s.id, "remote_addr", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	var writers sync.WaitGroup
	computeDone := make(chan struct{})

	writers.Add(1)
	go func() {
		defer writers.Done()
		s.writePump()
	}()
	go func() {
		defer close(computeDone)
		h.computePump(ctx, s)
	}()

	h.readPump(s)

	// Teardown order matters: stop feeding the compute loop, wait for it
	// to finish so nothing writes to a closed send channel, then release
	// the write pump.
	cancel()
	close(s.latest)
	<-computeDone
	close(s.send)
	writers.Wait()

	h.logger.Debugw("live session closed", "session_id", s.id)
}

func (h *Handler) readPump(s *session) {
	defer s.conn.Close()

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debugf("websocket read error: %v", err)
			}
			return
		}

		var params ParamsMessage
		if err := json.Unmarshal(msg, &params); err != nil {
			s.enqueue(ResultMessage{Type: "error", Error: "invalid message: " + err.Error()})
			continue
		}

		// Replace any unprocessed update: only the newest matters
		select {
		case <-s.latest:
		default:
		}
		s.latest <- params
	}
}

// computePump recomputes for the newest parameter set. A burst of slider
// updates collapses to the final one; intermediate results are never
// computed, let alone sent.
func (h *Handler) computePump(ctx context.Context, s *session) {
	for {
		select {
		case <-ctx.Done():
			return
		case params, ok := <-s.latest:
			if !ok {
				return
			}

			var psh float64
			if params.AnnualSunshineHours > 0 {
				psh = sunshine.FromAnnualHours(params.AnnualSunshineHours).DailyPeakSunHours
			} else {
				psh = h.fetcher.AnnualSunshine(ctx, params.Location.Latitude, params.Location.Longitude).DailyPeakSunHours
			}

			est, err := h.engine.Run(engine.EstimateRequest{
				Location:     params.Location,
				Array:        params.Array,
				Orientation:  params.Orientation,
				PeakSunHours: psh,
			})
			if err != nil {
				s.enqueue(ResultMessage{Type: "error", Seq: params.Seq, Error: err.Error()})
				continue
			}

			annual := est.Annual
			s.enqueue(ResultMessage{Type: "result", Seq: params.Seq, Annual: &annual})
		}
	}
}

func (s *session) enqueue(msg ResultMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case s.send <- payload:
	default:
		// Client buffer full, drop; the next result supersedes this one anyway
	}
}

func (s *session) writePump() {
	for msg := range s.send {
		if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
