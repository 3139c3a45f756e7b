// Package mcpserver provides an MCP (Model Context Protocol) server for
// jcraft, letting an agent request a construction plan or emitted source
// through MCP tools instead of the CLI.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jcraft-dev/jcraft/internal/bcview"
	"github.com/jcraft-dev/jcraft/internal/bcview/javasrcview"
	"github.com/jcraft-dev/jcraft/internal/bcview/manifest"
	"github.com/jcraft-dev/jcraft/internal/config"
	"github.com/jcraft-dev/jcraft/internal/depgraph"
	"github.com/jcraft-dev/jcraft/internal/emitter"
	"github.com/jcraft-dev/jcraft/internal/jarfetch"
	"github.com/jcraft-dev/jcraft/internal/miner"
	"github.com/jcraft-dev/jcraft/internal/solver"
)

// Server wraps the MCP server with jcraft-specific tools.
type Server struct {
	mcpServer    *server.MCPServer
	cfg          *config.Config
	view         bcview.View
	tools        map[string]bool
	lastActivity time.Time
	timeout      time.Duration
	mu           sync.RWMutex
}

// Config holds server construction options.
type Config struct {
	ManifestPath string        // JSON manifest view source
	SrcDir       string        // directory of .java sources, alternative view source
	JarURLs      []string      // jar URLs fetched and validated at startup
	Tools        []string      // which tools to expose (empty = all)
	Timeout      time.Duration // inactivity timeout (0 = no timeout)
}

// DefaultTools is the default set of tools exposed.
var DefaultTools = []string{"jcraft_construct", "jcraft_emit"}

// AllTools lists every available tool.
var AllTools = []string{"jcraft_construct", "jcraft_emit"}

// New creates a new MCP server for jcraft, loading its view once up front
// (an agent session is expected to query the same image repeatedly).
func New(cfg Config) (*Server, error) {
	view, err := loadView(cfg)
	if err != nil {
		return nil, err
	}

	projectCfg, err := config.Load(".")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"jcraft",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer:    mcpServer,
		cfg:          projectCfg,
		view:         view,
		tools:        make(map[string]bool),
		lastActivity: time.Now(),
		timeout:      cfg.Timeout,
	}

	toolsToRegister := cfg.Tools
	if len(toolsToRegister) == 0 {
		toolsToRegister = DefaultTools
	}

	for _, name := range toolsToRegister {
		if err := s.registerTool(name); err != nil {
			return nil, fmt.Errorf("register tool %s: %w", name, err)
		}
		s.tools[name] = true
	}

	return s, nil
}

func loadView(cfg Config) (bcview.View, error) {
	if len(cfg.JarURLs) > 0 {
		destDir, err := os.MkdirTemp("", "jcraft-jars-")
		if err != nil {
			return nil, fmt.Errorf("create jar download dir: %w", err)
		}
		if _, err := jarfetch.Fetch(context.Background(), cfg.JarURLs, destDir); err != nil {
			return nil, fmt.Errorf("fetch jar urls: %w", err)
		}
	}

	switch {
	case cfg.ManifestPath != "":
		return manifest.Load(cfg.ManifestPath)
	case cfg.SrcDir != "":
		return javasrcview.Load(cfg.SrcDir)
	default:
		return nil, fmt.Errorf("mcpserver: no view source given: pass ManifestPath or SrcDir")
	}
}

func (s *Server) registerTool(name string) error {
	switch name {
	case "jcraft_construct":
		return s.registerConstructTool()
	case "jcraft_emit":
		return s.registerEmitTool()
	default:
		return fmt.Errorf("unknown tool: %s", name)
	}
}

func (s *Server) registerConstructTool() error {
	tool := mcp.NewTool("jcraft_construct",
		mcp.WithDescription("Search for a construction plan for a class and return its creation-order summary."),
		mcp.WithString("class_name",
			mcp.Required(),
			mcp.Description("Fully qualified class name to construct"),
		),
		mcp.WithNumber("trials",
			mcp.Description("Solver trial count (default from project config)"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleConstruct)
	return nil
}

func (s *Server) registerEmitTool() error {
	tool := mcp.NewTool("jcraft_emit",
		mcp.WithDescription("Search for a construction plan and emit the Java source that realizes it."),
		mcp.WithString("class_name",
			mcp.Required(),
			mcp.Description("Fully qualified class name to construct"),
		),
		mcp.WithString("package_name",
			mcp.Description("Emitted package name (default from project config)"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleEmit)
	return nil
}

func (s *Server) handleConstruct(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	className, _ := args["class_name"].(string)
	if className == "" {
		return mcp.NewToolResultError("class_name parameter is required"), nil
	}
	trials := 0
	if t, ok := args["trials"].(float64); ok {
		trials = int(t)
	}

	result, err := s.executeConstruct(className, trials)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleEmit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	className, _ := args["class_name"].(string)
	if className == "" {
		return mcp.NewToolResultError("class_name parameter is required"), nil
	}
	packageName, _ := args["package_name"].(string)

	result, err := s.executeEmit(className, packageName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) solve(className string, trials int) (*depgraph.Plan, error) {
	m := miner.New(s.view)

	solverCfg := solver.Config{
		NumberOfTrials: s.cfg.Solver.NumberOfTrials,
		CostLimit:      s.cfg.Solver.CostLimit,
		DepthLimit:     s.cfg.Solver.DepthLimit,
		MinCost:        s.cfg.Solver.MinCost,
		Rand:           rand.New(rand.NewSource(s.cfg.Solver.Seed)),
	}
	if trials > 0 {
		solverCfg.NumberOfTrials = trials
	}

	root := depgraph.ClassNode(bcview.ParseTypeName(className).Class)
	plan, ok := solver.New(m, solverCfg).Solve(root)
	if !ok {
		return nil, fmt.Errorf("no construction plan found for %s within budget", className)
	}
	return plan, nil
}

func (s *Server) executeConstruct(className string, trials int) (string, error) {
	plan, err := s.solve(className, trials)
	if err != nil {
		return "", err
	}

	steps := make([]string, 0, len(plan.DependencyOrder))
	for _, d := range plan.DependencyOrder {
		steps = append(steps, d.Repr())
	}

	return toJSON(map[string]interface{}{
		"class_name": className,
		"cost":       plan.Cost,
		"steps":      steps,
	})
}

func (s *Server) executeEmit(className, packageName string) (string, error) {
	plan, err := s.solve(className, 0)
	if err != nil {
		return "", err
	}

	if packageName == "" {
		packageName = s.cfg.Output.PackageName
	}
	opts := emitter.Options{Package: packageName, ClassName: s.cfg.Output.ClassName}
	source, err := emitter.Emit(plan, opts)
	if err != nil {
		return "", fmt.Errorf("emit: %w", err)
	}
	return source, nil
}

// ServeStdio starts the server using stdio transport.
func (s *Server) ServeStdio() error {
	if s.timeout > 0 {
		go s.timeoutChecker()
	}
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) timeoutChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.RLock()
		elapsed := time.Since(s.lastActivity)
		s.mu.RUnlock()

		if elapsed > s.timeout {
			os.Exit(0)
		}
	}
}

func (s *Server) updateActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

func toJSON(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(b), nil
}

// ListTools returns the list of registered tools.
func (s *Server) ListTools() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]string, 0, len(s.tools))
	for t := range s.tools {
		tools = append(tools, t)
	}
	return tools
}
