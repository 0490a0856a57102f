package model

import (
	"encoding/json"
	"fmt"
)

// Text is a free-form catalog value as sent by a client. Columns are stored
// as text, so a bare JSON number is accepted and kept as its literal digits.
type Text struct {
	Value string
	// Zero is set when the client sent a number equal to zero.
	Zero bool
}

// NewText returns a Text holding s.
func NewText(s string) *Text {
	return &Text{Value: s}
}

func (t *Text) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text{Value: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or a number, got %s", data)
	}
	f, err := n.Float64()
	*t = Text{Value: n.String(), Zero: err == nil && f == 0}
	return nil
}

// Empty reports whether t carries nothing a partial update should write:
// an empty string or a numeric zero.
func (t Text) Empty() bool {
	return t.Value == "" || t.Zero
}

// value returns the text of t, or nil when t is absent or Empty.
func value(t *Text) *string {
	if t == nil || t.Empty() {
		return nil
	}
	v := t.Value
	return &v
}

// text returns the text of a field that passed a presence check.
func text(t *Text) string {
	if t == nil {
		return ""
	}
	return t.Value
}
