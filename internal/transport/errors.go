package transport

import (
	"errors"
	"net/http"

	"github.com/ganot/formbuilder/internal/domain"
	"github.com/go-chi/render"
	"github.com/rs/zerolog/hlog"
)

const (
	msgInternal         = "Internal server error"
	msgNotFound         = "Endpoint not found"
	msgMethodNotAllowed = "Method not allowed"
	msgInvalidJSON      = "Request body must be valid JSON"
	msgBodyTooLarge     = "Request body too large"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// writeError maps an error kind to a status code. Unclassified errors are
// logged and answered with a generic 500 body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg, ok := domain.PublicMessage(err)
	if status == http.StatusInternalServerError || !ok {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		msg = msgInternal
		status = http.StatusInternalServerError
	}
	writeJSON(w, r, status, errorBody{Error: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeDecodeError answers a body that could not be decoded.
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeJSON(w, r, http.StatusRequestEntityTooLarge, errorBody{Error: msgBodyTooLarge})
		return
	}
	hlog.FromRequest(r).Debug().Err(err).Msg("invalid request body")
	writeJSON(w, r, http.StatusBadRequest, errorBody{Error: msgInvalidJSON})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusNotFound, errorBody{Error: msgNotFound})
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusMethodNotAllowed, errorBody{Error: msgMethodNotAllowed})
}
