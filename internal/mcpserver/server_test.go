package mcpserver_test

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/rootlab/internal/config"
	"github.com/san-kum/rootlab/internal/mcpserver"
	"github.com/san-kum/rootlab/internal/roots"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func connectInMemory(t *testing.T, ctx context.Context) *sdkmcp.ClientSession {
	t.Helper()
	srv := mcpserver.NewServer(roots.NewEngine(config.DefaultSolver()), "test", nil)

	t1, t2 := sdkmcp.NewInMemoryTransports()
	if _, err := srv.MCPServer.Connect(ctx, t1, nil); err != nil {
		t.Fatalf("server.Connect: %v", err)
	}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, t2, nil)
	if err != nil {
		t.Fatalf("client.Connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func callTool(t *testing.T, ctx context.Context, session *sdkmcp.ClientSession, name string, args map[string]any, out any) {
	t.Helper()
	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if res.IsError {
		t.Fatalf("CallTool(%s) returned error: %s", name, text(res))
	}
	if err := json.Unmarshal([]byte(text(res)), out); err != nil {
		t.Fatalf("unmarshal tool result: %v", err)
	}
}

func callToolExpectError(t *testing.T, ctx context.Context, session *sdkmcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return err.Error()
	}
	if !res.IsError {
		t.Fatal("expected error but got success")
	}
	return text(res)
}

func text(res *sdkmcp.CallToolResult) string {
	for _, c := range res.Content {
		if tc, ok := c.(*sdkmcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestListTools(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx)

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	names := map[string]bool{}
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"compute_roots", "scan_brackets"} {
		if !names[want] {
			t.Errorf("expected tool %s to be registered", want)
		}
	}
}

func TestComputeRoots(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx)

	var out struct {
		Equation string       `json:"equation"`
		Result   roots.Result `json:"result"`
	}
	callTool(t, ctx, session, "compute_roots", map[string]any{"a": "1.0", "b": "1,0"}, &out)

	if out.Equation != "f(x) = √(1x) - cos(1x)" {
		t.Errorf("expected equation title, got '%s'", out.Equation)
	}
	if len(out.Result.AllRoots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(out.Result.AllRoots))
	}
	if math.Abs(out.Result.AllRoots[0]-0.6417) > 1e-3 {
		t.Errorf("expected root near 0.6417, got %f", out.Result.AllRoots[0])
	}
}

func TestComputeRoots_InvalidNumber(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx)

	msg := callToolExpectError(t, ctx, session, "compute_roots", map[string]any{"a": "abc", "b": "1.0"})
	if !strings.Contains(msg, "parameters must be numbers") {
		t.Errorf("expected invalid number message, got '%s'", msg)
	}
}

func TestComputeRoots_NoRoot(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx)

	msg := callToolExpectError(t, ctx, session, "compute_roots", map[string]any{"a": "0", "b": "0"})
	if !strings.Contains(msg, "no roots found on interval [0.00, 100.00]") {
		t.Errorf("expected no root message, got '%s'", msg)
	}
}

func TestScanBrackets(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx)

	var out struct {
		Domain struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"domain"`
		Intervals int `json:"intervals"`
		Brackets  []struct {
			Lo float64 `json:"lo"`
			Hi float64 `json:"hi"`
		} `json:"brackets"`
		Estimates []float64 `json:"estimates"`
	}
	callTool(t, ctx, session, "scan_brackets", map[string]any{"a": "-1", "b": "1"}, &out)

	if out.Domain.Max != 0 || math.Abs(out.Domain.Min+10*math.Pi) > 1e-9 {
		t.Errorf("expected mirrored domain, got [%f, %f]", out.Domain.Min, out.Domain.Max)
	}
	if out.Intervals != config.DefaultSamples {
		t.Errorf("expected %d intervals, got %d", config.DefaultSamples, out.Intervals)
	}
	if len(out.Brackets) != 1 || len(out.Estimates) != 1 {
		t.Fatalf("expected 1 bracket, got %d", len(out.Brackets))
	}
	if out.Estimates[0] < out.Brackets[0].Lo || out.Estimates[0] > out.Brackets[0].Hi {
		t.Errorf("expected estimate inside bracket, got %f", out.Estimates[0])
	}
}
