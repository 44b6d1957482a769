package board

import (
	"fmt"
	"strings"
)

// Tool is the active toolbar tool.
type Tool string

const (
	ToolLine     Tool = "line"
	ToolRect     Tool = "rect"
	ToolCircle   Tool = "circle"
	ToolTriangle Tool = "triangle"
	ToolAnnotate Tool = "annotate"
	ToolSelect   Tool = "select"
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolLine, ToolRect, ToolCircle, ToolTriangle, ToolAnnotate, ToolSelect}

// ParseTool accepts a tool name case-insensitively. "measure" is an alias
// for annotate.
func ParseTool(s string) (Tool, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "measure" {
		return ToolAnnotate, nil
	}
	for _, t := range Tools {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tool %q", s)
}

// Drawing reports whether t creates entities on pointer-down.
func (t Tool) Drawing() bool {
	switch t {
	case ToolLine, ToolRect, ToolCircle, ToolTriangle, ToolAnnotate:
		return true
	}
	return false
}

func (t Tool) valid() bool {
	return t == ToolSelect || t.Drawing()
}
