package functional_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ganot/formbuilder/internal/testserver"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func connectHTTP(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	ts := testserver.New(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{
		Endpoint: ts.Server.URL + "/mcp",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

// callTool invokes a tool and returns its JSON text content. It fails the test
// when the tool reports an error.
func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) json.RawMessage {
	t.Helper()
	result := invoke(t, session, name, args)
	require.False(t, result.IsError, "tool %s returned error: %s", name, textOf(t, result))
	return json.RawMessage(textOf(t, result))
}

func invoke(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool %s failed", name)
	return result
}

func textOf(t *testing.T, result *sdkmcp.CallToolResult) string {
	t.Helper()
	for _, content := range result.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			return text.Text
		}
	}
	t.Fatalf("tool result has no text content")
	return ""
}

func runFormWorkflow(t *testing.T, session *sdkmcp.ClientSession) {
	t.Helper()

	var question struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(callTool(t, session, "create_master_question", map[string]any{
		"text":    "Pick one",
		"type":    "single-select",
		"options": []string{"a", "b"},
		"tags":    []string{"demo"},
	}), &question))
	require.NotEmpty(t, question.ID)

	var form struct {
		ID       string `json:"id"`
		TenantID string `json:"tenant_id"`
	}
	require.NoError(t, json.Unmarshal(callTool(t, session, "create_form", map[string]any{
		"tenant_id":      "acme",
		"name":           "Demo form",
		"tags":           []string{"demo"},
		"form_structure": map[string]any{"questions": []any{map[string]any{"id": question.ID}}},
	}), &form))
	require.Equal(t, "acme", form.TenantID)

	duplicate := invoke(t, session, "create_form", map[string]any{
		"tenant_id":      "acme",
		"name":           "Demo form",
		"form_structure": map[string]any{"questions": []any{}},
	})
	require.True(t, duplicate.IsError)
	require.Contains(t, textOf(t, duplicate), "Form name already exists for this tenant")

	for i := 0; i < 3; i++ {
		callTool(t, session, "submit_response", map[string]any{
			"tenant_id":   "acme",
			"form_id":     form.ID,
			"responses":   map[string]any{question.ID: "a"},
			"is_complete": i > 0,
		})
	}

	var page struct {
		Responses []struct {
			ID string `json:"id"`
		} `json:"responses"`
		Pagination struct {
			Total      int `json:"total"`
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(callTool(t, session, "list_responses", map[string]any{
		"tenant_id":   "acme",
		"form_id":     form.ID,
		"limit":       2,
		"is_complete": true,
	}), &page))
	require.Len(t, page.Responses, 2)
	require.Equal(t, 3, page.Pagination.Total)
	require.Equal(t, 2, page.Pagination.TotalPages)

	callTool(t, session, "get_response", map[string]any{
		"tenant_id":   "acme",
		"form_id":     form.ID,
		"response_id": page.Responses[0].ID,
	})

	callTool(t, session, "delete_form", map[string]any{"tenant_id": "acme", "form_id": form.ID})

	missing := invoke(t, session, "get_form", map[string]any{"tenant_id": "acme", "form_id": form.ID})
	require.True(t, missing.IsError)
	require.Contains(t, textOf(t, missing), "Form not found")
}

func TestHTTPFunctional_ListsTools(t *testing.T) {
	session := connectHTTP(t)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"list_master_questions", "get_master_question", "create_master_question",
		"list_forms", "get_form", "create_form", "update_form", "delete_form",
		"submit_response", "list_responses", "get_response",
	}, names)
}

func TestHTTPFunctional_FormWorkflow(t *testing.T) {
	runFormWorkflow(t, connectHTTP(t))
}
