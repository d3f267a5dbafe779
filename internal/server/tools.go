package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// noArgs is the schema of tools that take no arguments.
func noArgs() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// pointSchema is the schema of tools addressed by a single pixel.
func pointSchema(what string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x": map[string]interface{}{
				"type":        "integer",
				"description": "X coordinate of the " + what + " (0-based, image pixels)",
			},
			"y": map[string]interface{}{
				"type":        "integer",
				"description": "Y coordinate of the " + what + " (0-based, image pixels)",
			},
		},
		"required": []string{"x", "y"},
	}
}

// directionSchema is the schema of the up/down parameter tools.
func directionSchema(what string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"direction": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"up", "down"},
				"description": "'up' to increase the " + what + ", 'down' to decrease it",
			},
		},
		"required": []string{"direction"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Lifecycle
		{
			Name:        "blur_open",
			Description: "Open an image for editing. Starts a session with radius 50 and blur strength 51. Fails while another image is still open.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "blur_save",
			Description: "Save the edited image next to the original (name suffixed with _blurred by default) and end the session. Same as pressing 'q'.",
			InputSchema: noArgs(),
		},
		{
			Name:        "blur_discard",
			Description: "End the session without writing anything. Same as pressing Esc.",
			InputSchema: noArgs(),
		},

		// Pointer
		{
			Name:        "blur_move",
			Description: "Move the pointer. The preview draws the brush ring around the pointer position.",
			InputSchema: pointSchema("pointer"),
		},
		{
			Name:        "blur_click",
			Description: "Blur a disc of the current radius centered at the point. Pixels outside the disc are unchanged. Clicks entirely outside the image do nothing.",
			InputSchema: pointSchema("disc center"),
		},

		// Keyboard and parameters
		{
			Name:        "blur_key",
			Description: "Press a key: '+' or '=' radius up, '-' radius down, ']' blur up, '[' blur down, 'u' undo, 'q' save and quit, 'esc' quit without saving. Other keys are ignored.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"key": map[string]interface{}{
						"type":        "string",
						"description": "A single character, or 'esc'",
					},
				},
				"required": []string{"key"},
			},
		},
		{
			Name:        "blur_radius",
			Description: "Change the brush radius by 10 pixels, within 10 to 300.",
			InputSchema: directionSchema("radius"),
		},
		{
			Name:        "blur_strength",
			Description: "Change the blur kernel size by 10, within 11 to 199. Even sizes are rounded up to odd when blurring.",
			InputSchema: directionSchema("blur strength"),
		},
		{
			Name:        "blur_undo",
			Description: "Revert the most recent blur. Reports 'Nothing to undo.' when there is no history.",
			InputSchema: noArgs(),
		},

		// Display
		{
			Name:        "blur_state",
			Description: "Get the open image, brush parameters, history depth, pointer and session state.",
			InputSchema: noArgs(),
		},
		{
			Name:        "blur_preview",
			Description: "Render the current image with the brush ring and status label as base64-encoded PNG, scaled to fit the given bounds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum preview width in pixels. Default 1920",
					},
					"max_height": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum preview height in pixels. Default 1080",
					},
				},
			},
		},
		{
			Name:        "blur_sample_color",
			Description: "Get the color of one pixel of the current image as hex, RGB, RGBA and HSL. Useful for checking that an area was blurred.",
			InputSchema: pointSchema("pixel"),
		},
		{
			Name:        "blur_zoom",
			Description: "Show part of the current image magnified, with the brush ring, as base64-encoded PNG. Use this to place clicks precisely on small faces.",
			InputSchema: regionSchema(map[string]interface{}{
				"scale": map[string]interface{}{
					"type":        "number",
					"description": "Magnification, up to 8. Default 1.0",
					"default":     1.0,
				},
			}),
		},
		{
			Name:        "blur_compare",
			Description: "Compare a region of the current image with the image as opened: changed pixels, similarity and average color difference. Defaults to the whole image.",
			InputSchema: regionSchema(nil),
		},
	}
}

// regionSchema is the schema of tools that take a named region or corners,
// plus any extra properties.
func regionSchema(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"region": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center", "full"},
			"description": "Named region. Overrides x1, y1, x2, y2",
		},
		"x1": map[string]interface{}{
			"type":        "integer",
			"description": "Left edge X coordinate (0-based)",
		},
		"y1": map[string]interface{}{
			"type":        "integer",
			"description": "Top edge Y coordinate (0-based)",
		},
		"x2": map[string]interface{}{
			"type":        "integer",
			"description": "Right edge X coordinate (exclusive)",
		},
		"y2": map[string]interface{}{
			"type":        "integer",
			"description": "Bottom edge Y coordinate (exclusive)",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
}
