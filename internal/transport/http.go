package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/ganot/formbuilder/internal/domain/form"
	"github.com/ganot/formbuilder/internal/domain/question"
	"github.com/ganot/formbuilder/internal/domain/response"
	"github.com/ganot/formbuilder/internal/metrics"
	"github.com/ganot/formbuilder/internal/query"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// DefaultBodyLimit caps request bodies when Options.BodyLimit is zero.
const DefaultBodyLimit = 10 << 20

// QuestionService is the master question use-case surface.
type QuestionService interface {
	Create(ctx context.Context, req question.CreateRequest) (*question.Question, error)
	Get(ctx context.Context, id string) (*question.Question, error)
	List(ctx context.Context, opts question.ListOptions) ([]question.Question, error)
}

// FormService is the form use-case surface.
type FormService interface {
	Create(ctx context.Context, req form.CreateRequest) (*form.Form, error)
	Get(ctx context.Context, tenantID, id string) (*form.Form, error)
	List(ctx context.Context, tenantID string, opts form.ListOptions) ([]form.Form, error)
	Update(ctx context.Context, req form.UpdateRequest) (*form.Form, error)
	Deactivate(ctx context.Context, tenantID, id string) error
}

// ResponseService is the form response use-case surface.
type ResponseService interface {
	Create(ctx context.Context, req response.CreateRequest) (*response.Response, error)
	Get(ctx context.Context, tenantID, formID, id string) (*response.Response, error)
	List(ctx context.Context, tenantID, formID string, opts response.ListOptions, page query.Page) (*response.Page, error)
}

// HealthChecker probes the store.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Services groups the handlers' collaborators.
type Services struct {
	Questions QuestionService
	Forms     FormService
	Responses ResponseService
	Health    HealthChecker
}

// Options configures the router.
type Options struct {
	Logger         zerolog.Logger
	Metrics        *metrics.Metrics
	MCP            http.Handler
	CORSOrigins    []string
	TrustProxy     bool
	BodyLimit      int64
	RequestTimeout time.Duration
}

// Server wires HTTP handlers.
type Server struct {
	svc Services
	now func() time.Time
}

// NewServer creates an HTTP server router with middleware.
func NewServer(svc Services, opts Options) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if opts.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(hlog.NewHandler(opts.Logger))
	r.Use(requestIDLogger)
	r.Use(accessLog)
	if opts.Metrics != nil {
		r.Use(instrument(opts.Metrics))
	}
	r.Use(recoverer)
	r.Use(securityHeaders)
	r.Use(cors.Handler(corsOptions(opts.CORSOrigins)))

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	srv := &Server{svc: svc, now: time.Now}

	r.Get("/health", srv.handleHealth)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
	}

	limit := opts.BodyLimit
	if limit <= 0 {
		limit = DefaultBodyLimit
	}

	r.Route("/api", func(api chi.Router) {
		if opts.RequestTimeout > 0 {
			api.Use(middleware.Timeout(opts.RequestTimeout))
		}
		api.Use(middleware.RequestSize(limit))

		api.Route("/master-questions", func(qr chi.Router) {
			qr.Get("/", srv.handleListQuestions)
			qr.Post("/", srv.handleCreateQuestion)
			qr.Get("/{questionId}", srv.handleGetQuestion)
		})

		api.Route("/forms", func(fr chi.Router) {
			fr.Post("/", srv.handleCreateForm)
			fr.Get("/{tenantId}", srv.handleListForms)
			fr.Get("/{tenantId}/{formId}", srv.handleGetForm)
			fr.Put("/{tenantId}/{formId}", srv.handleUpdateForm)
			fr.Delete("/{tenantId}/{formId}", srv.handleDeleteForm)
			fr.Post("/{tenantId}/{formId}/responses", srv.handleCreateResponse)
			fr.Get("/{tenantId}/{formId}/responses", srv.handleListResponses)
			fr.Get("/{tenantId}/{formId}/responses/{responseId}", srv.handleGetResponse)
		})
	})

	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id", "Mcp-Session-Id"},
		ExposedHeaders: []string{"X-Request-Id", "Mcp-Session-Id"},
		MaxAge:         300,
	}
}
