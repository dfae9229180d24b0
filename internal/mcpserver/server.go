// Package mcpserver exposes the root engine as MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/san-kum/rootlab/internal/roots"
	"github.com/san-kum/rootlab/internal/scan"
	"go.uber.org/zap"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server around one engine.
type Server struct {
	MCPServer *sdkmcp.Server
	engine    *roots.Engine
	log       *zap.Logger
}

// NewServer creates a server with the compute_roots and scan_brackets tools
// registered. A nil logger disables logging.
func NewServer(engine *roots.Engine, version string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		MCPServer: sdkmcp.NewServer(&sdkmcp.Implementation{Name: "rootlab", Version: version}, nil),
		engine:    engine,
		log:       log.Named("mcp"),
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "compute_roots",
		Description: "Find the real roots of sqrt(a*x) - cos(b*x) = 0 with the chord and Newton methods. Returns per-method roots, iterations, residuals and the merged distinct roots.",
	}, s.handleComputeRoots)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "scan_brackets",
		Description: "Scan the search interval of sqrt(a*x) - cos(b*x) for sign changes. Returns the interval and every bracket with its midpoint estimate.",
	}, s.handleScanBrackets)
}

// Run serves over stdin/stdout until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("serving over stdio")
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

// --- Tool input/output types ---

type paramsInput struct {
	A string `json:"a" jsonschema:"coefficient a, decimal point or comma"`
	B string `json:"b" jsonschema:"coefficient b, decimal point or comma"`
}

type computeRootsOutput struct {
	Equation string        `json:"equation"`
	Result   *roots.Result `json:"result"`
}

type scanBracketsOutput struct {
	Equation  string         `json:"equation"`
	Domain    scan.Domain    `json:"domain"`
	Intervals int            `json:"intervals"`
	Brackets  []scan.Bracket `json:"brackets"`
	Estimates []float64      `json:"estimates"`
}

// --- Tool handlers ---

func (s *Server) handleComputeRoots(_ context.Context, _ *sdkmcp.CallToolRequest, input paramsInput) (*sdkmcp.CallToolResult, computeRootsOutput, error) {
	res, err := s.engine.Compute(input.A, input.B)
	if err != nil {
		s.log.Debug("compute_roots failed", zap.String("a", input.A), zap.String("b", input.B), zap.Error(err))
		return nil, computeRootsOutput{}, err
	}
	s.log.Debug("compute_roots", zap.Stringer("params", res.Params), zap.Int("roots", len(res.AllRoots)))
	return nil, computeRootsOutput{Equation: res.Params.Describe(), Result: res}, nil
}

func (s *Server) handleScanBrackets(_ context.Context, _ *sdkmcp.CallToolRequest, input paramsInput) (*sdkmcp.CallToolResult, scanBracketsOutput, error) {
	p, err := roots.ParseParams(input.A, input.B)
	if err != nil {
		return nil, scanBracketsOutput{}, err
	}
	dom, grid, brs := s.engine.Scan(p)
	if brs == nil {
		brs = []scan.Bracket{}
	}
	return nil, scanBracketsOutput{
		Equation:  p.Describe(),
		Domain:    dom,
		Intervals: grid.N,
		Brackets:  brs,
		Estimates: scan.Estimates(brs),
	}, nil
}
