package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"blur_open",
		"blur_save",
		"blur_discard",
		"blur_move",
		"blur_click",
		"blur_key",
		"blur_radius",
		"blur_strength",
		"blur_undo",
		"blur_state",
		"blur_preview",
		"blur_sample_color",
		"blur_zoom",
		"blur_compare",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("Duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}

			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}
			if schemaType := tool.InputSchema["type"]; schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}
			if props, ok := tool.InputSchema["properties"]; !ok || props == nil {
				t.Error("InputSchema missing 'properties' field")
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	tests := []struct {
		tool     string
		required []string
	}{
		{"blur_open", []string{"path"}},
		{"blur_move", []string{"x", "y"}},
		{"blur_click", []string{"x", "y"}},
		{"blur_sample_color", []string{"x", "y"}},
		{"blur_key", []string{"key"}},
		{"blur_radius", []string{"direction"}},
		{"blur_strength", []string{"direction"}},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			tool, ok := toolMap[tt.tool]
			if !ok {
				t.Fatalf("Tool %s not found", tt.tool)
			}

			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("required should be []string")
			}
			if len(required) != len(tt.required) {
				t.Fatalf("required: got %v, want %v", required, tt.required)
			}
			for i := range required {
				if required[i] != tt.required[i] {
					t.Errorf("required[%d]: got %s, want %s", i, required[i], tt.required[i])
				}
			}

			props := tool.InputSchema["properties"].(map[string]interface{})
			for _, name := range tt.required {
				if _, ok := props[name]; !ok {
					t.Errorf("required property %s is not declared", name)
				}
			}
		})
	}
}

func TestToolDefinitions_DirectionEnum(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "blur_radius" && tool.Name != "blur_strength" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		direction := props["direction"].(map[string]interface{})
		enum, ok := direction["enum"].([]string)
		if !ok || len(enum) != 2 || enum[0] != "up" || enum[1] != "down" {
			t.Errorf("%s direction enum: got %v, want [up down]", tool.Name, direction["enum"])
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	expected := GetToolDefinitions()
	if len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}
