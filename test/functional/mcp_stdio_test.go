package functional_test

import (
	"context"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// connectStdio spawns the built binary in mcp mode. Build it first with
// go build -o bin/formbuilder ./cmd/server.
func connectStdio(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	binaryPath := "./bin/formbuilder"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		binaryPath = "../../bin/formbuilder"
		if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
			t.Skip("server binary not found, build bin/formbuilder first")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	cmd := exec.CommandContext(ctx, binaryPath, "mcp")
	cmd.Env = append(os.Environ(),
		"FORMBUILDER_CONFIG_PATH=",
		"FORMBUILDER_DB_PATH=:memory:",
		"FORMBUILDER_LOG_LEVEL=error",
	)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		cancel()
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		_ = session.Close()
		cancel()
	})
	return session
}

func TestStdioFunctional_ServerInfo(t *testing.T) {
	session := connectStdio(t)

	result := session.InitializeResult()
	require.NotNil(t, result)
	require.NotNil(t, result.ServerInfo)
	require.Equal(t, "formbuilder", result.ServerInfo.Name)
	require.NotEmpty(t, result.Instructions)
}

func TestStdioFunctional_FormWorkflow(t *testing.T) {
	runFormWorkflow(t, connectStdio(t))
}
