package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/axsim/sim-cli/internal/geometry"
	"github.com/axsim/sim-cli/internal/imagediff"
	"github.com/axsim/sim-cli/internal/model"
	"github.com/axsim/sim-cli/internal/ops"
	"github.com/axsim/sim-cli/internal/platform"
)

// resultToText serializes an operation result to YAML for the MCP response.
func resultToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("success: false\nerror: %s", err)
	}
	return string(b)
}

// toolResult wraps an operation result, marking the tool call failed when
// the operation did not succeed.
func toolResult(envelope ops.Result, v interface{}) (*mcp.CallToolResult, error) {
	text := resultToText(v)
	if !envelope.Success {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}

// parseTarget builds a gesture target from tool parameters: explicit
// coordinates when both are present, otherwise an element query.
func parseTarget(params map[string]interface{}) ops.Target {
	t := ops.Target{Index: -1}
	if hasParam(params, "index") {
		t.Index = IntParam(params, "index", 0)
	}
	if hasParam(params, "x") && hasParam(params, "y") {
		t.Point = &geometry.Point{
			X: FloatParam(params, "x", 0),
			Y: FloatParam(params, "y", 0),
		}
		return t
	}
	p := model.Predicates{
		TextContains: StringParam(params, "text", ""),
		TextExact:    StringParam(params, "exact", ""),
		Role:         StringParam(params, "role", ""),
		Identifier:   StringParam(params, "id", ""),
	}
	t.Predicates = &p
	return t
}

func durationParam(params map[string]interface{}, key string) time.Duration {
	return time.Duration(IntParam(params, key, 0)) * time.Millisecond
}

func (s *Server) handleSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	res := s.ops.CaptureSnapshot(ctx, platform.SnapshotOptions{
		UDID:          StringParam(params, "udid", ""),
		MaxDepth:      IntParam(params, "depth", 0),
		IncludeChrome: BoolParam(params, "include-chrome", false),
	}, BoolParam(params, "flat", false))
	return toolResult(res.Result, res)
}

func (s *Server) handleQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	index := -1
	if hasParam(params, "index") {
		index = IntParam(params, "index", 0)
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	res := s.ops.QueryElements(ctx, ops.QueryOptions{
		Snapshot: platform.SnapshotOptions{UDID: StringParam(params, "udid", "")},
		Predicates: model.Predicates{
			TextContains: StringParam(params, "text", ""),
			TextExact:    StringParam(params, "exact", ""),
			Role:         StringParam(params, "role", ""),
			Identifier:   StringParam(params, "id", ""),
		},
		Index: index,
	})
	return toolResult(res.Result, res)
}

func (s *Server) handleTap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	res := s.ops.Tap(ctx, ops.TapOptions{
		UDID:     StringParam(params, "udid", ""),
		Target:   parseTarget(params),
		Duration: durationParam(params, "duration-ms"),
	})
	s.cache.invalidateAll()
	return toolResult(res.Result, res)
}

func (s *Server) handleLongPress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	res := s.ops.LongPress(ctx, ops.TapOptions{
		UDID:     StringParam(params, "udid", ""),
		Target:   parseTarget(params),
		Duration: durationParam(params, "duration-ms"),
	})
	s.cache.invalidateAll()
	return toolResult(res.Result, res)
}

func (s *Server) handleSwipe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	opts := ops.SwipeOptions{
		UDID:      StringParam(params, "udid", ""),
		Direction: StringParam(params, "direction", ""),
		Duration:  durationParam(params, "duration-ms"),
		Drag:      BoolParam(params, "drag", false),
	}
	if hasParam(params, "from-x") && hasParam(params, "from-y") {
		opts.From = &geometry.Point{X: FloatParam(params, "from-x", 0), Y: FloatParam(params, "from-y", 0)}
	}
	if hasParam(params, "to-x") && hasParam(params, "to-y") {
		opts.To = &geometry.Point{X: FloatParam(params, "to-x", 0), Y: FloatParam(params, "to-y", 0)}
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	res := s.ops.Swipe(ctx, opts)
	s.cache.invalidateAll()
	return toolResult(res.Result, res)
}

func (s *Server) handleType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	opts := ops.TypeOptions{
		Text:    StringParam(params, "text", ""),
		Key:     StringParam(params, "key", ""),
		DelayMs: IntParam(params, "delay-ms", 0),
	}
	if mods := StringParam(params, "modifiers", ""); mods != "" {
		opts.Modifiers = strings.Split(mods, ",")
	}

	res := s.ops.TypeText(ctx, opts)
	s.cache.invalidateAll()
	return toolResult(res.Result, res)
}

func (s *Server) handleScreenshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	res := s.ops.Screenshot(ctx, platform.ScreenshotOptions{
		UDID:       StringParam(params, "udid", ""),
		OutputPath: StringParam(params, "output", ""),
	})
	return toolResult(res.Result, res)
}

func (s *Server) handleVisualDiff(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	opts := imagediff.Options{
		Threshold:         FloatParam(params, "threshold", 0),
		GenerateArtifacts: BoolParam(params, "artifacts", false),
		ArtifactDir:       StringParam(params, "artifact-dir", ""),
	}
	if hasParam(params, "noise-floor") {
		opts.NoiseFloor = IntParam(params, "noise-floor", 0)
		opts.NoiseFloorSet = true
	}

	res := s.ops.VisualDiff(ctx,
		StringParam(params, "baseline", ""),
		StringParam(params, "current", ""),
		opts)
	return toolResult(res.Result, res)
}

func (s *Server) handleScreenMap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	res := s.ops.ScreenMap(ctx, platform.SnapshotOptions{
		UDID: StringParam(params, "udid", ""),
	})
	return toolResult(res.Result, res)
}

func (s *Server) handleDevices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	res := s.ops.ListDevices(ctx, BoolParam(params, "booted", false))
	return toolResult(res.Result, res)
}

func (s *Server) handleDeviceInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	res := s.ops.DeviceInfo(ctx, StringParam(params, "udid", ""))
	return toolResult(res.Result, res)
}

func (s *Server) handleBoot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	res := s.ops.Boot(ctx, StringParam(params, "device", ""))
	s.cache.invalidateAll()
	return toolResult(res.Result, res)
}

func (s *Server) handleShutdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	res := s.ops.Shutdown(ctx, StringParam(params, "udid", ""))
	s.cache.invalidateAll()
	return toolResult(res.Result, res)
}

func (s *Server) handleOpenURL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	res := s.ops.OpenURL(ctx,
		StringParam(params, "udid", ""),
		StringParam(params, "url", ""))
	s.cache.invalidateAll()
	return toolResult(res.Result, res)
}
