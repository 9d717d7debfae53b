package transport

import (
	"encoding/json"
	"net/http"

	"github.com/ganot/formbuilder/internal/domain/form"
	"github.com/ganot/formbuilder/internal/query"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type createFormBody struct {
	Name          string          `json:"name"`
	TenantID      string          `json:"tenantId"`
	Tags          []string        `json:"tags"`
	FormStructure json.RawMessage `json:"form_structure"`
	CreatedBy     *string         `json:"created_by"`
}

type updateFormBody struct {
	Name          string          `json:"name"`
	Tags          []string        `json:"tags"`
	FormStructure json.RawMessage `json:"form_structure"`
}

func (s *Server) handleListForms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	forms, err := s.svc.Forms.List(r.Context(), chi.URLParam(r, "tenantId"), form.ListOptions{
		Tags:   query.SplitTags(q.Get("tags")),
		Search: q.Get("search"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, forms)
}

func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	f, err := s.svc.Forms.Get(r.Context(), chi.URLParam(r, "tenantId"), chi.URLParam(r, "formId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, f)
}

func (s *Server) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	var body createFormBody
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	f, err := s.svc.Forms.Create(r.Context(), form.CreateRequest{
		TenantID:      body.TenantID,
		Name:          body.Name,
		Tags:          body.Tags,
		FormStructure: body.FormStructure,
		CreatedBy:     body.CreatedBy,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, f)
}

func (s *Server) handleUpdateForm(w http.ResponseWriter, r *http.Request) {
	var body updateFormBody
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	f, err := s.svc.Forms.Update(r.Context(), form.UpdateRequest{
		TenantID:      chi.URLParam(r, "tenantId"),
		ID:            chi.URLParam(r, "formId"),
		Name:          body.Name,
		Tags:          body.Tags,
		FormStructure: body.FormStructure,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, f)
}

func (s *Server) handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Forms.Deactivate(r.Context(), chi.URLParam(r, "tenantId"), chi.URLParam(r, "formId")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
