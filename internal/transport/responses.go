package transport

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"

	"github.com/ganot/formbuilder/internal/domain"
	"github.com/ganot/formbuilder/internal/domain/response"
	"github.com/ganot/formbuilder/internal/query"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type createResponseBody struct {
	UserID     *string         `json:"user_id"`
	SessionID  *string         `json:"session_id"`
	Responses  json.RawMessage `json:"responses"`
	IsComplete bool            `json:"is_complete"`
}

func (s *Server) handleCreateResponse(w http.ResponseWriter, r *http.Request) {
	var body createResponseBody
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	resp, err := s.svc.Responses.Create(r.Context(), response.CreateRequest{
		TenantID:   chi.URLParam(r, "tenantId"),
		FormID:     chi.URLParam(r, "formId"),
		UserID:     body.UserID,
		SessionID:  body.SessionID,
		Responses:  body.Responses,
		IsComplete: body.IsComplete,
		IPAddress:  clientIP(r),
		UserAgent:  r.UserAgent(),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, resp)
}

func (s *Server) handleListResponses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := response.ListOptions{UserID: q.Get("user_id")}
	// An empty is_complete is treated as absent, like an empty user_id.
	if raw := q.Get("is_complete"); raw != "" {
		complete, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, domain.Invalid("is_complete", "is_complete must be true or false"))
			return
		}
		opts.IsComplete = &complete
	}

	page, err := s.svc.Responses.List(r.Context(),
		chi.URLParam(r, "tenantId"),
		chi.URLParam(r, "formId"),
		opts,
		query.ParsePage(q.Get("page"), q.Get("limit")),
	)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}

func (s *Server) handleGetResponse(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.Responses.Get(r.Context(),
		chi.URLParam(r, "tenantId"),
		chi.URLParam(r, "formId"),
		chi.URLParam(r, "responseId"),
	)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// clientIP strips the port from RemoteAddr. With RealIP enabled RemoteAddr
// already holds a bare address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
