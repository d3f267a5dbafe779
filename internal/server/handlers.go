package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/blur-faces-mcp/internal/imaging"
	"github.com/ironsheep/blur-faces-mcp/internal/session"
)

var (
	// errNoSession is returned by every tool except blur_open before an image is open.
	errNoSession = errors.New("no image open; call blur_open first")

	// errSessionActive is returned by blur_open while another image is being edited.
	errSessionActive = errors.New("an image is already open; save or discard it first")
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "blur_open", "blur_click").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsList returns the tool definitions.
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.debugf("tool %s failed: %v", params.Name, err)
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Checks that an edit session is open
//  3. Drives the session or reads from its buffer
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Lifecycle
	case "blur_open":
		return s.handleOpen(args)
	case "blur_save":
		return s.handleCommand(session.CommandSaveAndQuit)
	case "blur_discard":
		return s.handleCommand(session.CommandDiscard)

	// Pointer
	case "blur_move":
		return s.handleMove(args)
	case "blur_click":
		return s.handleClick(args)

	// Keyboard and parameters
	case "blur_key":
		return s.handleKey(args)
	case "blur_radius":
		return s.handleStep(args, session.CommandIncreaseRadius, session.CommandDecreaseRadius)
	case "blur_strength":
		return s.handleStep(args, session.CommandIncreaseBlur, session.CommandDecreaseBlur)
	case "blur_undo":
		return s.handleCommand(session.CommandUndo)

	// Display
	case "blur_state":
		return s.handleState()
	case "blur_preview":
		return s.handlePreview(args)
	case "blur_sample_color":
		return s.handleSampleColor(args)
	case "blur_zoom":
		return s.handleZoom(args)
	case "blur_compare":
		return s.handleCompare(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
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

// decodeArgs unmarshals tool arguments. Missing arguments decode as the zero value.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// active returns the open session, or an error if there is none or it has ended.
func (s *Server) active() (*session.Session, error) {
	if s.sess == nil {
		return nil, errNoSession
	}
	if s.sess.State() != session.StateActive {
		return nil, fmt.Errorf("%w: open another image with blur_open", session.ErrTerminated)
	}
	return s.sess, nil
}

// === Lifecycle Handlers ===

type openArgs struct {
	Path string `json:"path"`
}

// OpenResult is returned by blur_open.
type OpenResult struct {
	Image      *imaging.ImageInfo `json:"image"`
	OutputPath string             `json:"output_path"`
	Status     session.Status     `json:"status"`
}

func (s *Server) handleOpen(args json.RawMessage) (interface{}, error) {
	var a openArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	return s.Open(a.Path)
}

// Open loads path and starts a new edit session on it.
//
// # Errors
//
//   - errSessionActive if the current session has not been saved or discarded
//   - imaging.ErrLoad if the file cannot be decoded; no session is created
func (s *Server) Open(path string) (*OpenResult, error) {
	if s.sess != nil && s.sess.State() == session.StateActive {
		return nil, errSessionActive
	}

	buf, info, err := imaging.Load(path)
	if err != nil {
		return nil, err
	}
	sess, err := session.New(buf)
	if err != nil {
		return nil, err
	}

	s.sess = sess
	s.info = info
	s.original = buf.Snapshot()
	s.debugf("opened %s (%dx%d %s)", info.Path, info.Width, info.Height, info.Format)

	return &OpenResult{
		Image:      info,
		OutputPath: imaging.OutputPath(info.Path, s.cfg.OutputSuffix),
		Status:     sess.Status(),
	}, nil
}

// CommandResult reports the outcome of a key command.
type CommandResult struct {
	Command   string         `json:"command"`
	Notice    string         `json:"notice,omitempty"`
	Ending    string         `json:"ending,omitempty"`
	SavedPath string         `json:"saved_path,omitempty"`
	Status    session.Status `json:"status"`
}

func (s *Server) handleCommand(cmd session.Command) (interface{}, error) {
	sess, err := s.active()
	if err != nil {
		return nil, err
	}

	// Write before terminating so a failed save leaves the session editable.
	var saved string
	if cmd == session.CommandSaveAndQuit {
		saved = imaging.OutputPath(s.info.Path, s.cfg.OutputSuffix)
		if err := imaging.Save(sess.Buffer(), saved); err != nil {
			return nil, err
		}
	}

	res, err := sess.Dispatch(cmd)
	if err != nil {
		return nil, err
	}
	if res.Notice != "" {
		s.debugf("%s: %s", res.Command, res.Notice)
	}
	if saved != "" {
		s.debugf("saved %s", saved)
	}

	out := &CommandResult{
		Command:   res.Command.String(),
		Notice:    res.Notice,
		SavedPath: saved,
		Status:    sess.Status(),
	}
	if res.Ending != session.EndingNone {
		out.Ending = res.Ending.String()
	}
	return out, nil
}

// === Pointer Handlers ===

type pointArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleMove(args json.RawMessage) (interface{}, error) {
	var a pointArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.active()
	if err != nil {
		return nil, err
	}
	if err := sess.MoveCursor(a.X, a.Y); err != nil {
		return nil, err
	}
	return sess.Status(), nil
}

// ClickResult reports whether a click blurred anything.
type ClickResult struct {
	Applied bool           `json:"applied"`
	Status  session.Status `json:"status"`
}

func (s *Server) handleClick(args json.RawMessage) (interface{}, error) {
	var a pointArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.active()
	if err != nil {
		return nil, err
	}
	// A click also moves the pointer, so the preview ring follows it.
	if err := sess.MoveCursor(a.X, a.Y); err != nil {
		return nil, err
	}
	applied, err := sess.Click(a.X, a.Y)
	if err != nil {
		return nil, err
	}
	s.debugf("click (%d,%d) applied=%t", a.X, a.Y, applied)
	return &ClickResult{Applied: applied, Status: sess.Status()}, nil
}

// === Keyboard and Parameter Handlers ===

type keyArgs struct {
	Key string `json:"key"`
}

// IgnoredKeyResult is returned for keys with no binding.
type IgnoredKeyResult struct {
	Key     string         `json:"key"`
	Ignored bool           `json:"ignored"`
	Status  session.Status `json:"status"`
}

func (s *Server) handleKey(args json.RawMessage) (interface{}, error) {
	var a keyArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.active()
	if err != nil {
		return nil, err
	}
	cmd, ok := session.ParseKey(a.Key)
	if !ok {
		return &IgnoredKeyResult{Key: a.Key, Ignored: true, Status: sess.Status()}, nil
	}
	return s.handleCommand(cmd)
}

type stepArgs struct {
	Direction string `json:"direction"`
}

func (s *Server) handleStep(args json.RawMessage, up, down session.Command) (interface{}, error) {
	var a stepArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	switch a.Direction {
	case "up":
		return s.handleCommand(up)
	case "down":
		return s.handleCommand(down)
	default:
		return nil, fmt.Errorf("invalid direction '%s': must be 'up' or 'down'", a.Direction)
	}
}

// === Display Handlers ===

// StateResult is returned by blur_state.
type StateResult struct {
	Image      *imaging.ImageInfo `json:"image"`
	OutputPath string             `json:"output_path"`
	Ending     string             `json:"ending,omitempty"`
	Status     session.Status     `json:"status"`
}

func (s *Server) handleState() (interface{}, error) {
	if s.sess == nil {
		return nil, errNoSession
	}
	out := &StateResult{
		Image:      s.info,
		OutputPath: imaging.OutputPath(s.info.Path, s.cfg.OutputSuffix),
		Status:     s.sess.Status(),
	}
	if e := s.sess.Ending(); e != session.EndingNone {
		out.Ending = e.String()
	}
	return out, nil
}

type previewArgs struct {
	MaxWidth  int `json:"max_width"`
	MaxHeight int `json:"max_height"`
}

func (s *Server) handlePreview(args json.RawMessage) (interface{}, error) {
	var a previewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.active()
	if err != nil {
		return nil, err
	}
	if a.MaxWidth <= 0 {
		a.MaxWidth = s.cfg.MaxPreviewWidth
	}
	if a.MaxHeight <= 0 {
		a.MaxHeight = s.cfg.MaxPreviewHeight
	}

	params := sess.Params()
	opts := imaging.PreviewOptions{
		Radius:     params.Radius,
		KernelSize: params.KernelSize,
		Overlay:    s.cfg.Overlay,
		MaxWidth:   a.MaxWidth,
		MaxHeight:  a.MaxHeight,
	}
	if p, ok := sess.Cursor(); ok {
		cursor := image.Pt(p.X, p.Y)
		opts.Cursor = &cursor
	}
	return imaging.EncodePreview(sess.Buffer(), opts)
}

func (s *Server) handleSampleColor(args json.RawMessage) (interface{}, error) {
	var a pointArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.active()
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(sess.Buffer(), a.X, a.Y)
}

// regionArgs selects an area either by name or by corners (x2, y2 exclusive).
type regionArgs struct {
	Region string `json:"region"`
	X1     int    `json:"x1"`
	Y1     int    `json:"y1"`
	X2     int    `json:"x2"`
	Y2     int    `json:"y2"`
}

// rect resolves the selected area. With neither a name nor corners it returns
// the whole image when full is true, and an error otherwise.
func (a regionArgs) rect(width, height int, full bool) (image.Rectangle, error) {
	if a.Region != "" {
		return imaging.NamedRegion(width, height, a.Region)
	}
	if a.X1 == 0 && a.Y1 == 0 && a.X2 == 0 && a.Y2 == 0 {
		if full {
			return image.Rect(0, 0, width, height), nil
		}
		return image.Rectangle{}, errors.New("region or x1, y1, x2, y2 is required")
	}
	return image.Rectangle{Min: image.Pt(a.X1, a.Y1), Max: image.Pt(a.X2, a.Y2)}, nil
}

type zoomArgs struct {
	regionArgs
	Scale float64 `json:"scale"`
}

func (s *Server) handleZoom(args json.RawMessage) (interface{}, error) {
	var a zoomArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.active()
	if err != nil {
		return nil, err
	}
	buf := sess.Buffer()
	r, err := a.rect(buf.Width(), buf.Height(), false)
	if err != nil {
		return nil, err
	}

	opts := imaging.PreviewOptions{Radius: sess.Params().Radius, Overlay: s.cfg.Overlay}
	if p, ok := sess.Cursor(); ok {
		cursor := image.Pt(p.X, p.Y)
		opts.Cursor = &cursor
	}
	return imaging.Zoom(buf, r, a.Scale, opts)
}

func (s *Server) handleCompare(args json.RawMessage) (interface{}, error) {
	var a regionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.active()
	if err != nil {
		return nil, err
	}
	buf := sess.Buffer()
	r, err := a.rect(buf.Width(), buf.Height(), true)
	if err != nil {
		return nil, err
	}
	return imaging.CompareRegion(s.original, buf, r)
}
