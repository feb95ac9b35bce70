// Package server exposes every operation as an MCP tool so coding agents
// can drive the simulator over stdio or HTTP.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/axsim/sim-cli/internal/ops"
	"github.com/axsim/sim-cli/internal/platform"
	"github.com/axsim/sim-cli/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
}

// Server wraps the MCP server with the operations layer and snapshot cache.
type Server struct {
	ops   *ops.Ops
	cache *snapshotCache
	// providerMu serializes tool calls: the underlying platform talks to
	// one window server and one simulator at a time.
	providerMu sync.Mutex
	mcp        *mcpserver.MCPServer
}

// New creates and configures an MCP server with all sim-cli tools.
func New(cfg Config) (*Server, error) {
	provider, err := platform.New()
	if err != nil {
		return nil, err
	}

	s := &Server{cache: newSnapshotCache(cfg.CacheTTL)}

	// Route tree reads through the cache; everything else hits the
	// platform directly.
	cached := *provider
	cached.Tree = &cachingTree{tree: provider.Tree, cache: s.cache}
	s.ops = ops.New(&cached)

	s.mcp = mcpserver.NewMCPServer("sim-cli", version.Version)
	s.registerTools()
	return s, nil
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("snapshot",
			mcp.WithDescription("Capture the accessibility tree of the simulator screen. Returns elements with roles, labels, frames in device points, and identifiers."),
			mcp.WithString("udid", mcp.Description("Simulator UDID (default: booted device)")),
			mcp.WithNumber("depth", mcp.Description("Max tree depth to traverse (default: 20)")),
			mcp.WithBoolean("include-chrome", mcp.Description("Include simulator window decoration in the tree")),
			mcp.WithBoolean("flat", mcp.Description("Return a depth-first element list instead of the nested tree")),
		),
		s.handleSnapshot,
	)

	s.mcp.AddTool(
		mcp.NewTool("query",
			mcp.WithDescription("Find UI elements by text, role, or accessibility identifier. Returns matches with center coordinates in device points, ready for tapping."),
			mcp.WithString("text", mcp.Description("Match elements containing this text (case-insensitive)")),
			mcp.WithString("exact", mcp.Description("Match elements with exactly this text")),
			mcp.WithString("role", mcp.Description("Filter by role (e.g. 'Button', 'TextField')")),
			mcp.WithString("id", mcp.Description("Match by accessibility identifier")),
			mcp.WithNumber("index", mcp.Description("Select the Nth match (0-based)")),
			mcp.WithString("udid", mcp.Description("Simulator UDID (default: booted device)")),
		),
		s.handleQuery,
	)

	s.mcp.AddTool(
		mcp.NewTool("tap",
			mcp.WithDescription("Tap a point or UI element on the simulator screen. Coordinates are device points."),
			mcp.WithNumber("x", mcp.Description("X coordinate in device points")),
			mcp.WithNumber("y", mcp.Description("Y coordinate in device points")),
			mcp.WithString("text", mcp.Description("Find and tap element containing this text")),
			mcp.WithString("exact", mcp.Description("Find and tap element with exactly this text")),
			mcp.WithString("role", mcp.Description("Filter element search by role")),
			mcp.WithString("id", mcp.Description("Find and tap element by accessibility identifier")),
			mcp.WithNumber("index", mcp.Description("Select the Nth match when several elements match")),
			mcp.WithNumber("duration-ms", mcp.Description("Press duration in milliseconds (default: 100)")),
			mcp.WithString("udid", mcp.Description("Simulator UDID (default: booted device)")),
		),
		s.handleTap,
	)

	s.mcp.AddTool(
		mcp.NewTool("long_press",
			mcp.WithDescription("Press and hold a point or UI element (default: 600ms)"),
			mcp.WithNumber("x", mcp.Description("X coordinate in device points")),
			mcp.WithNumber("y", mcp.Description("Y coordinate in device points")),
			mcp.WithString("text", mcp.Description("Find element containing this text")),
			mcp.WithString("exact", mcp.Description("Find element with exactly this text")),
			mcp.WithString("role", mcp.Description("Filter element search by role")),
			mcp.WithString("id", mcp.Description("Find element by accessibility identifier")),
			mcp.WithNumber("index", mcp.Description("Select the Nth match")),
			mcp.WithNumber("duration-ms", mcp.Description("Hold duration in milliseconds")),
			mcp.WithString("udid", mcp.Description("Simulator UDID (default: booted device)")),
		),
		s.handleLongPress,
	)

	s.mcp.AddTool(
		mcp.NewTool("swipe",
			mcp.WithDescription("Swipe or drag on the simulator screen, either by direction or between two points in device points"),
			mcp.WithString("direction", mcp.Description("Swipe direction: up, down, left, right")),
			mcp.WithNumber("from-x", mcp.Description("Start X in device points")),
			mcp.WithNumber("from-y", mcp.Description("Start Y in device points")),
			mcp.WithNumber("to-x", mcp.Description("End X in device points")),
			mcp.WithNumber("to-y", mcp.Description("End Y in device points")),
			mcp.WithNumber("duration-ms", mcp.Description("Gesture duration in milliseconds (default: 300)")),
			mcp.WithBoolean("drag", mcp.Description("Use drag pacing instead of a flick")),
			mcp.WithString("udid", mcp.Description("Simulator UDID (default: booted device)")),
		),
		s.handleSwipe,
	)

	s.mcp.AddTool(
		mcp.NewTool("type",
			mcp.WithDescription("Type text or press a key into the focused field on the simulator"),
			mcp.WithString("text", mcp.Description("Text to type")),
			mcp.WithString("key", mcp.Description("Key to press (e.g. 'return', 'tab', 'delete')")),
			mcp.WithString("modifiers", mcp.Description("Comma-separated modifiers for the key (cmd, shift, ctrl, alt)")),
			mcp.WithNumber("delay-ms", mcp.Description("Delay between keystrokes in milliseconds")),
		),
		s.handleType,
	)

	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture a pixel-exact screenshot of the simulator screen at native resolution"),
			mcp.WithString("output", mcp.Description("Output PNG path (default: timestamped file)")),
			mcp.WithString("udid", mcp.Description("Simulator UDID (default: booted device)")),
		),
		s.handleScreenshot,
	)

	s.mcp.AddTool(
		mcp.NewTool("visual_diff",
			mcp.WithDescription("Compare two screenshots pixel by pixel and report whether they differ beyond a threshold percentage"),
			mcp.WithString("baseline", mcp.Description("Baseline image path"), mcp.Required()),
			mcp.WithString("current", mcp.Description("Current image path"), mcp.Required()),
			mcp.WithNumber("threshold", mcp.Description("Allowed difference percentage (default: 1.0)")),
			mcp.WithNumber("noise-floor", mcp.Description("Per-channel delta treated as noise (default: 10)")),
			mcp.WithBoolean("artifacts", mcp.Description("Write diff overlay and side-by-side images")),
			mcp.WithString("artifact-dir", mcp.Description("Directory for generated artifacts")),
		),
		s.handleVisualDiff,
	)

	s.mcp.AddTool(
		mcp.NewTool("screen_map",
			mcp.WithDescription("Summarize the current simulator screen: interactive elements, buttons, text fields, and navigation state"),
			mcp.WithString("udid", mcp.Description("Simulator UDID (default: booted device)")),
		),
		s.handleScreenMap,
	)

	s.mcp.AddTool(
		mcp.NewTool("devices",
			mcp.WithDescription("List all simulator devices with their state and runtime"),
			mcp.WithBoolean("booted", mcp.Description("List only booted devices")),
		),
		s.handleDevices,
	)

	s.mcp.AddTool(
		mcp.NewTool("device_info",
			mcp.WithDescription("Get a simulator's identity and screen geometry: scale factor, pixel and point dimensions, host window placement"),
			mcp.WithString("udid", mcp.Description("Simulator UDID (default: booted device)")),
		),
		s.handleDeviceInfo,
	)

	s.mcp.AddTool(
		mcp.NewTool("boot",
			mcp.WithDescription("Boot a simulator by name or UDID and open the Simulator app"),
			mcp.WithString("device", mcp.Description("Device name or UDID"), mcp.Required()),
		),
		s.handleBoot,
	)

	s.mcp.AddTool(
		mcp.NewTool("shutdown",
			mcp.WithDescription("Shut down a simulator"),
			mcp.WithString("udid", mcp.Description("Simulator UDID (default: booted device)")),
		),
		s.handleShutdown,
	)

	s.mcp.AddTool(
		mcp.NewTool("open_url",
			mcp.WithDescription("Open a URL or deep link on the simulator"),
			mcp.WithString("url", mcp.Description("URL to open"), mcp.Required()),
			mcp.WithString("udid", mcp.Description("Simulator UDID (default: booted device)")),
		),
		s.handleOpenURL,
	)
}
