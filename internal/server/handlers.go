package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ironsheep/quickstitch/internal/detection"
	"github.com/ironsheep/quickstitch/internal/export"
	"github.com/ironsheep/quickstitch/internal/imaging"
	"github.com/ironsheep/quickstitch/internal/stitcher"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "stitch_plan", "stitch_export").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// toolError carries structured error data back to the client alongside
// the message.
type toolError struct {
	err  error
	data interface{}
}

func (e *toolError) Error() string { return e.err.Error() }
func (e *toolError) Unwrap() error { return e.err }

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// The error data is the error string, or a structured object for tools
// that report partial results.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		var te *toolError
		if errors.As(err, &te) {
			return s.errorResponse(req.ID, -32000, "Tool execution failed", te.data)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	switch name {
	case "stitch_discover":
		return s.handleDiscover(args)
	case "stitch_plan":
		return s.handlePlan(ctx, args)
	case "stitch_export":
		return s.handleExport(ctx, args)
	case "stitch_evict":
		return s.handleEvict(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// sortMode parses a per-call sort mode, falling back to the configured one.
func (s *Server) sortMode(name string) (imaging.SortMode, error) {
	if name == "" {
		return s.cfg.SortMode(), nil
	}
	return imaging.ParseSortMode(name)
}

// === Discovery ===

type discoverArgs struct {
	Directory string `json:"directory"`
	Sort      string `json:"sort"`
}

// DiscoverResult lists the images a directory would contribute, in order.
type DiscoverResult struct {
	Images []string `json:"images"`
	Count  int      `json:"count"`
}

func (s *Server) handleDiscover(args json.RawMessage) (interface{}, error) {
	var a discoverArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Directory == "" {
		return nil, errors.New("directory is required")
	}
	mode, err := s.sortMode(a.Sort)
	if err != nil {
		return nil, err
	}
	paths, err := imaging.Discover(a.Directory, mode)
	if err != nil {
		return nil, err
	}
	return &DiscoverResult{Images: paths, Count: len(paths)}, nil
}

// === Planning ===

type planArgs struct {
	Directory        string   `json:"directory"`
	Images           []string `json:"images"`
	Sort             string   `json:"sort"`
	Width            *int     `json:"width"`
	IgnoreUnloadable *bool    `json:"ignore_unloadable"`
	MaxHeight        *int     `json:"max_height"`
	MinHeight        *int     `json:"min_height"`
	ScanInterval     *int     `json:"scan_interval"`
	Sensitivity      *int     `json:"sensitivity"`
}

// PageInfo describes one planned page.
type PageInfo struct {
	Index  int `json:"index"`
	Start  int `json:"start"`
	End    int `json:"end"`
	Height int `json:"height"`
}

// PlanResult describes a stitched strip and where it will be cut.
type PlanResult struct {
	PlanID       string                 `json:"plan_id"`
	Width        int                    `json:"width"`
	Height       int                    `json:"height"`
	Sources      []string               `json:"sources"`
	Splitpoints  []detection.Splitpoint `json:"splitpoints"`
	Pages        []PageInfo             `json:"pages"`
	SkippedCount int                    `json:"skipped_count"`
}

func (s *Server) handlePlan(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a planArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if (a.Directory == "") == (len(a.Images) == 0) {
		return nil, errors.New("exactly one of directory or images is required")
	}

	loadOpts := s.cfg.LoadOptions(s.logger)
	if a.Width != nil {
		loadOpts.Width = *a.Width
	}
	if a.IgnoreUnloadable != nil {
		loadOpts.IgnoreUnloadable = *a.IgnoreUnloadable
	}

	splitOpts := s.cfg.SplitOptions()
	if a.MaxHeight != nil {
		splitOpts.MaxHeight = *a.MaxHeight
	}
	if a.MinHeight != nil {
		splitOpts.MinHeight = *a.MinHeight
	}
	if a.ScanInterval != nil {
		splitOpts.ScanInterval = *a.ScanInterval
	}
	if a.Sensitivity != nil {
		if *a.Sensitivity < 0 || *a.Sensitivity > 255 {
			return nil, fmt.Errorf("sensitivity must be between 0 and 255, got %d", *a.Sensitivity)
		}
		splitOpts.Sensitivity = uint8(*a.Sensitivity)
	}
	if err := splitOpts.Validate(); err != nil {
		return nil, err
	}

	mode, err := s.sortMode(a.Sort)
	if err != nil {
		return nil, err
	}

	l, err := s.load(ctx, a.Directory, a.Images, mode, loadOpts)
	if err != nil {
		return nil, err
	}
	stitched, err := l.Stitch(splitOpts)
	if err != nil {
		return nil, err
	}

	id := s.plans.Put(stitched)
	sps := stitched.Splitpoints()
	pages := stitched.Pages()
	result := &PlanResult{
		PlanID:      id,
		Width:       stitched.Strip().Width(),
		Height:      stitched.Strip().Height(),
		Sources:     stitched.Strip().Sources(),
		Splitpoints: sps,
		Pages:       make([]PageInfo, len(pages)),
	}
	for i, p := range pages {
		result.Pages[i] = PageInfo{Index: p.Index, Start: p.Start, End: p.End, Height: p.Height()}
	}
	for _, sp := range sps {
		if !sp.IsCut() {
			result.SkippedCount++
		}
	}
	s.logger.Info("plan cached", "plan_id", id, "pages", len(pages))
	return result, nil
}

func (s *Server) load(ctx context.Context, dir string, images []string, mode imaging.SortMode, opts imaging.LoadOptions) (*stitcher.Loaded, error) {
	if dir != "" {
		return s.stitcher.LoadDir(ctx, dir, mode, opts)
	}
	return s.stitcher.Load(ctx, images, opts)
}

// === Export ===

type exportArgs struct {
	PlanID          string `json:"plan_id"`
	OutputDirectory string `json:"output_directory"`
	Format          string `json:"format"`
	Quality         *int   `json:"quality"`
	Debug           *bool  `json:"debug"`
}

// ExportResult lists the files a stitch_export call wrote.
type ExportResult struct {
	Directory    string   `json:"directory"`
	Format       string   `json:"format"`
	Files        []string `json:"files"`
	PagesWritten int      `json:"pages_written"`
}

// FailedPage is reported in the error data when some pages fail.
type FailedPage struct {
	Index int    `json:"index"`
	Path  string `json:"path"`
	Op    string `json:"op"`
	Error string `json:"error"`
}

func (s *Server) handleExport(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a exportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	plan, err := s.plans.Get(a.PlanID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, a.PlanID)
	}

	dir := a.OutputDirectory
	if dir == "" {
		dir = s.cfg.Output.Dir
	}
	if s.cfg.Output.CreateDir {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	formatName := a.Format
	if formatName == "" {
		formatName = s.cfg.Output.Format
	}
	quality := s.cfg.Output.Quality
	if a.Quality != nil {
		quality = *a.Quality
	}
	format, err := export.ParseFormat(formatName, quality)
	if err != nil {
		return nil, err
	}

	opts, err := s.cfg.ExportOptions(s.logger)
	if err != nil {
		return nil, err
	}
	if a.Debug != nil {
		opts.Debug = *a.Debug
	}

	result, err := plan.Export(ctx, dir, format, opts)
	if err != nil {
		var batch export.BatchError
		if errors.As(err, &batch) {
			failed := make([]FailedPage, len(batch))
			for i, pe := range batch {
				failed[i] = FailedPage{Index: pe.Index, Path: pe.Path, Op: pe.Op, Error: pe.Err.Error()}
			}
			return nil, &toolError{err: err, data: map[string]interface{}{
				"error":        err.Error(),
				"failed_pages": failed,
				"files":        result.Files,
			}}
		}
		return nil, err
	}

	return &ExportResult{
		Directory:    result.Dir,
		Format:       result.Format,
		Files:        result.Files,
		PagesWritten: len(result.Files),
	}, nil
}

// === Eviction ===

type evictArgs struct {
	PlanID string `json:"plan_id"`
}

func (s *Server) handleEvict(args json.RawMessage) (interface{}, error) {
	var a evictArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return map[string]interface{}{"evicted": s.plans.Evict(a.PlanID)}, nil
}
