// Package testserver starts the full HTTP stack over an in-memory store.
package testserver

import (
	"net/http/httptest"
	"testing"

	"github.com/ganot/formbuilder/internal/config"
	"github.com/ganot/formbuilder/internal/domain/form"
	"github.com/ganot/formbuilder/internal/domain/question"
	"github.com/ganot/formbuilder/internal/domain/response"
	"github.com/ganot/formbuilder/internal/mcp"
	"github.com/ganot/formbuilder/internal/metrics"
	"github.com/ganot/formbuilder/internal/sqlite"
	"github.com/ganot/formbuilder/internal/transport"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	Metrics *metrics.Metrics
}

// New starts a server with the default configuration. The server and its
// database are closed when the test ends.
func New(t *testing.T) *TestServer {
	t.Helper()
	return NewWithConfig(t, config.Default())
}

// NewWithConfig starts a server using cfg for everything except the database
// path, which is always in-memory.
func NewWithConfig(t *testing.T, cfg config.Config) *TestServer {
	t.Helper()

	db, err := sqlite.New(sqlite.Config{Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	m := metrics.New()
	db.SetObserver(m)

	log := zerolog.Nop()
	questionSvc := question.NewService(sqlite.NewQuestionRepository(db), cfg.Questions.Types, log)
	formSvc := form.NewService(sqlite.NewFormRepository(db), log)
	responseSvc := response.NewService(sqlite.NewResponseRepository(db), response.Options{
		CountIgnoresFilters: cfg.Responses.CountIgnoresFilters,
	}, log)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Questions: questionSvc,
			Forms:     formSvc,
			Responses: responseSvc,
		},
		Logger: log,
	})

	handler := transport.NewServer(transport.Services{
		Questions: questionSvc,
		Forms:     formSvc,
		Responses: responseSvc,
		Health:    db,
	}, transport.Options{
		Logger:         log,
		Metrics:        m,
		MCP:            mcpServer.HTTPHandler(),
		CORSOrigins:    cfg.Server.CORSOrigins,
		BodyLimit:      cfg.Server.BodyLimit,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	server := httptest.NewServer(handler)
	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, DB: db, Metrics: m}
}
