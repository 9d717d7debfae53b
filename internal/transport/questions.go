package transport

import (
	"net/http"

	"github.com/ganot/formbuilder/internal/domain/question"
	"github.com/ganot/formbuilder/internal/query"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type createQuestionBody struct {
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	MaxSelections *int     `json:"max_selections"`
	Tags          []string `json:"tags"`
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	questions, err := s.svc.Questions.List(r.Context(), question.ListOptions{
		Tags:   query.SplitTags(q.Get("tags")),
		Type:   q.Get("type"),
		Search: q.Get("search"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, questions)
}

func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := s.svc.Questions.Get(r.Context(), chi.URLParam(r, "questionId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, q)
}

func (s *Server) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var body createQuestionBody
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	q, err := s.svc.Questions.Create(r.Context(), question.CreateRequest{
		Text:          body.Text,
		Type:          body.Type,
		Options:       body.Options,
		MaxSelections: body.MaxSelections,
		Tags:          body.Tags,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, q)
}
