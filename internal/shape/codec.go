package shape

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// List is an ordered sequence of shapes that encodes each entry as a flat
// JSON object tagged with "kind".
type List []Shape

// UnknownKindError reports a wire object whose kind tag names no variant.
type UnknownKindError struct {
	Kind Kind
}

func (e *UnknownKindError) Error() string {
	if e.Kind == "" {
		return "shape without kind"
	}
	return fmt.Sprintf("unknown shape kind %q", string(e.Kind))
}

// MarshalJSON writes the list as an array; a nil list is written as [].
func (l List) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, s := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := MarshalShape(s)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes each element by its kind tag. An empty array or
// null leaves the list nil.
func (l *List) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		*l = nil
		return nil
	}
	out := make(List, 0, len(raw))
	for i, r := range raw {
		s, err := UnmarshalShape(r)
		if err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
		out = append(out, s)
	}
	*l = out
	return nil
}

// MarshalShape encodes one shape with its kind tag first.
func MarshalShape(s Shape) ([]byte, error) {
	switch v := s.(type) {
	case *Line:
		return json.Marshal(struct {
			Kind Kind `json:"kind"`
			*Line
		}{KindLine, v})
	case *Rect:
		return json.Marshal(struct {
			Kind Kind `json:"kind"`
			*Rect
		}{KindRect, v})
	case *Circle:
		return json.Marshal(struct {
			Kind Kind `json:"kind"`
			*Circle
		}{KindCircle, v})
	case *Triangle:
		return json.Marshal(struct {
			Kind Kind `json:"kind"`
			*Triangle
		}{KindTriangle, v})
	case nil:
		return nil, fmt.Errorf("nil shape")
	}
	return nil, fmt.Errorf("unsupported shape type %T", s)
}

// UnmarshalShape decodes one tagged shape object.
func UnmarshalShape(data []byte) (Shape, error) {
	var tag struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}
	var s Shape
	switch tag.Kind {
	case KindLine:
		s = &Line{}
	case KindRect:
		s = &Rect{}
	case KindCircle:
		s = &Circle{}
	case KindTriangle:
		s = &Triangle{}
	default:
		return nil, &UnknownKindError{Kind: tag.Kind}
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%s: %w", tag.Kind, err)
	}
	if s.Common().ID == "" {
		return nil, fmt.Errorf("%s without id", tag.Kind)
	}
	return s, nil
}
