package mcp

import (
	"context"
	"net/http"

	"github.com/ganot/formbuilder/internal/domain/form"
	"github.com/ganot/formbuilder/internal/domain/question"
	"github.com/ganot/formbuilder/internal/domain/response"
	"github.com/ganot/formbuilder/internal/query"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

const serverInstructions = `formbuilder stores tenant-scoped forms built from reusable master questions, and the responses submitted against them.

- Master questions are global. Use list_master_questions to discover them by tag, type or text.
- Every form and response tool takes a tenant_id. A form id from another tenant behaves as not found.
- A form_structure must be an object with a "questions" array.
- Form names are unique among a tenant's active forms; a clash is reported as CONFLICT.
- submit_response only accepts responses for active forms.
- list_responses is paginated (page from 1, limit up to 1000).`

// QuestionService defines master question operations needed by MCP.
type QuestionService interface {
	Create(ctx context.Context, req question.CreateRequest) (*question.Question, error)
	Get(ctx context.Context, id string) (*question.Question, error)
	List(ctx context.Context, opts question.ListOptions) ([]question.Question, error)
}

// FormService defines form operations needed by MCP.
type FormService interface {
	Create(ctx context.Context, req form.CreateRequest) (*form.Form, error)
	Get(ctx context.Context, tenantID, id string) (*form.Form, error)
	List(ctx context.Context, tenantID string, opts form.ListOptions) ([]form.Form, error)
	Update(ctx context.Context, req form.UpdateRequest) (*form.Form, error)
	Deactivate(ctx context.Context, tenantID, id string) error
}

// ResponseService defines form response operations needed by MCP.
type ResponseService interface {
	Create(ctx context.Context, req response.CreateRequest) (*response.Response, error)
	Get(ctx context.Context, tenantID, formID, id string) (*response.Response, error)
	List(ctx context.Context, tenantID, formID string, opts response.ListOptions, page query.Page) (*response.Page, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Questions QuestionService
	Forms     FormService
	Responses ResponseService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   zerolog.Logger
}

// Server exposes the form services as MCP tools.
type Server struct {
	svc    Services
	server *sdkmcp.Server
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *Server {
	s := &Server{
		svc: cfg.Services,
		server: sdkmcp.NewServer(&sdkmcp.Implementation{
			Name:    "formbuilder",
			Version: Version,
		}, &sdkmcp.ServerOptions{
			Instructions: serverInstructions,
		}),
	}

	logger := cfg.Logger.With().Str("component", "mcp").Logger()
	s.server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	s.server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	s.registerTools()
	return s
}

// SDK returns the underlying SDK server.
func (s *Server) SDK() *sdkmcp.Server {
	return s.server
}

// Run serves MCP over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &sdkmcp.StdioTransport{})
}

// HTTPHandler serves MCP over streamable HTTP.
func (s *Server) HTTPHandler() http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return s.server
	}, nil)
}
