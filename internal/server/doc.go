// Package server implements the MCP (Model Context Protocol) server that drives
// an interactive blur session.
//
// The server plays the part of a display window: it relays pointer and key
// events to a session.Session and renders the current image back on request.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Lifecycle:
//   - blur_open: Load an image and start a session
//   - blur_save: Write <name>_blurred.<ext> and end the session ('q')
//   - blur_discard: End the session without writing (Esc)
//
// Pointer:
//   - blur_move: Move the pointer (drives the preview ring)
//   - blur_click: Blur the disc around a point
//
// Keyboard and parameters:
//   - blur_key: Press a bound key
//   - blur_radius, blur_strength: Step the brush parameters up or down
//   - blur_undo: Revert the last blur
//
// Display:
//   - blur_state: Parameters, history depth and lifecycle state
//   - blur_preview: Image with brush ring and status label as PNG
//   - blur_sample_color: Read back one pixel
//
// # Sessions
//
// One image is edited at a time. blur_open fails while a session is active;
// after save or discard a new image may be opened. Requests are handled in
// the order they arrive, so session transitions never interleave.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Undo with an empty history is not an error: the result carries the notice
// "Nothing to undo." and the session continues.
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
