package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/ironsheep/blur-faces-mcp/internal/imaging"
	"github.com/ironsheep/blur-faces-mcp/internal/raster"
	"github.com/ironsheep/blur-faces-mcp/internal/session"
)

// Config holds the server settings read at startup.
type Config struct {
	// OutputSuffix is inserted before the extension of the saved file.
	OutputSuffix string

	// Overlay is the color of the brush ring and status label in previews.
	Overlay color.Color

	// MaxPreviewWidth and MaxPreviewHeight bound preview images.
	MaxPreviewWidth  int
	MaxPreviewHeight int

	// Debug enables per-command log lines.
	Debug bool
}

// DefaultConfig returns the settings used when no environment overrides are given.
func DefaultConfig() Config {
	overlay, _ := imaging.ParseColor(imaging.DefaultOverlayColor)
	return Config{
		OutputSuffix:     imaging.DefaultSuffix,
		Overlay:          overlay,
		MaxPreviewWidth:  imaging.DefaultMaxPreviewWidth,
		MaxPreviewHeight: imaging.DefaultMaxPreviewHeight,
	}
}

// Server handles MCP protocol communication and owns the current edit session.
type Server struct {
	cfg  Config
	sess *session.Session
	info *imaging.ImageInfo

	// original is the image as loaded, kept for blur_compare.
	original *raster.Buffer
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance with DefaultConfig.
func New() *Server {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a server with the given settings. Zero-valued fields
// fall back to DefaultConfig.
func NewWithConfig(cfg Config) *Server {
	def := DefaultConfig()
	if cfg.OutputSuffix == "" {
		cfg.OutputSuffix = def.OutputSuffix
	}
	if cfg.Overlay == nil {
		cfg.Overlay = def.Overlay
	}
	if cfg.MaxPreviewWidth <= 0 {
		cfg.MaxPreviewWidth = def.MaxPreviewWidth
	}
	if cfg.MaxPreviewHeight <= 0 {
		cfg.MaxPreviewHeight = def.MaxPreviewHeight
	}
	return &Server{cfg: cfg}
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve processes line-delimited JSON-RPC requests from r until EOF, writing
// responses to w. Requests are handled one at a time, in order.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "blur-faces-mcp",
				"version": "0.1.0",
			},
		},
	}
}

// debugf logs only when debug logging is enabled.
func (s *Server) debugf(format string, args ...interface{}) {
	if s.cfg.Debug {
		log.Printf(format, args...)
	}
}
