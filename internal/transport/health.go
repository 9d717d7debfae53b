package transport

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"
)

type healthBody struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := healthBody{
		Status:    "healthy",
		Timestamp: s.now().UTC(),
		Database:  "connected",
	}
	status := http.StatusOK

	if s.svc.Health != nil {
		if err := s.svc.Health.Health(r.Context()); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("health check failed")
			body.Status = "unhealthy"
			body.Database = "disconnected"
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, r, status, body)
}
