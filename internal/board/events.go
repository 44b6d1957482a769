package board

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/example/drafter/internal/geom"
)

// Event is one input to a Session. The set is closed; see Apply.
type Event interface {
	event()
}

// PointerDown is a press at (X, Y).
type PointerDown struct{ X, Y float64 }

// PointerMove is pointer motion to (X, Y).
type PointerMove struct{ X, Y float64 }

// PointerUp is a release.
type PointerUp struct{}

// SelectTool changes the active tool.
type SelectTool struct{ Tool Tool }

// Pick reports the element an adapter found under a press.
type Pick struct{ ID string }

// Drag is a finished move of a shape's anchor.
type Drag struct {
	ID   string
	X, Y float64
}

// Transform is a finished resize or rotate gesture.
type Transform struct {
	ID            string
	X, Y          float64
	Width, Height float64
	Rotation      float64
}

// Clear empties the drawing.
type Clear struct{}

func (PointerDown) event() {}
func (PointerMove) event() {}
func (PointerUp) event() {}
func (SelectTool) event() {}
func (Pick) event() {}
func (Drag) event() {}
func (Transform) event() {}
func (Clear) event() {}

// Apply feeds e to the session. Only a tool change can fail.
func (s *Session) Apply(e Event) error {
	switch v := e.(type) {
	case PointerDown:
		s.PointerDown(geom.Pt(v.X, v.Y))
	case PointerMove:
		s.PointerMove(geom.Pt(v.X, v.Y))
	case PointerUp:
		s.PointerUp()
	case SelectTool:
		return s.SetTool(v.Tool)
	case Pick:
		s.Pick(v.ID)
	case Drag:
		s.CommitDrag(v.ID, v.X, v.Y)
	case Transform:
		s.CommitTransform(v.ID, v.X, v.Y, v.Width, v.Height, v.Rotation)
	case Clear:
		s.Clear()
	default:
		return fmt.Errorf("unsupported event %T", e)
	}
	return nil
}

type wireEvent struct {
	Type     string  `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	Tool     string  `json:"tool"`
	ID       string  `json:"id"`
}

// DecodeEvent parses one script line such as {"type":"down","x":1,"y":2}.
func DecodeEvent(line []byte) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(line, &w); err != nil {
		return nil, err
	}
	switch w.Type {
	case "down":
		return PointerDown{X: w.X, Y: w.Y}, nil
	case "move":
		return PointerMove{X: w.X, Y: w.Y}, nil
	case "up":
		return PointerUp{}, nil
	case "tool":
		t, err := ParseTool(w.Tool)
		if err != nil {
			return nil, err
		}
		return SelectTool{Tool: t}, nil
	case "pick":
		return Pick{ID: w.ID}, nil
	case "drag":
		return Drag{ID: w.ID, X: w.X, Y: w.Y}, nil
	case "transform":
		return Transform{ID: w.ID, X: w.X, Y: w.Y, Width: w.Width, Height: w.Height, Rotation: w.Rotation}, nil
	case "clear":
		return Clear{}, nil
	case "":
		return nil, fmt.Errorf("event without type")
	}
	return nil, fmt.Errorf("unknown event type %q", w.Type)
}

// ReadScript reads one event per line. Blank lines and lines starting with
// '#' are skipped.
func ReadScript(r io.Reader) ([]Event, error) {
	var events []Event
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		e, err := DecodeEvent(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		events = append(events, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
