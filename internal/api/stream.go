package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// streamInterval is how often the performance stream polls for new samples.
const streamInterval = time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard is served from a different origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handlePerformanceStream pushes performance samples over a WebSocket as
// they are appended. Already-recorded samples are sent on connect, then
// only the delta on each poll.
func (s *Server) handlePerformanceStream(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)

		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade performance stream", zap.Error(err))

		return
	}
	defer conn.Close()

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	sent := 0

	for {
		samples, err := sess.Ledger.Samples()
		if err != nil {
			s.logger.Error("Failed to read performance samples", zap.Error(err))

			return
		}

		for ; sent < len(samples); sent++ {
			if err := conn.WriteJSON(samples[sent]); err != nil {
				return
			}
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
