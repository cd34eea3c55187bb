package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// OtherPrefix tags a free-text escape value in the encoded form
const OtherPrefix = "other:"

// Choice is a questionnaire answer that is either a known option or free text
type Choice struct {
	known   string
	other   string
	isOther bool
}

// Known returns a choice holding a predefined option value
func Known(value string) Choice {
	return Choice{known: value}
}

// Other returns a choice holding free text entered by the submitter
func Other(text string) Choice {
	return Choice{other: text, isOther: true}
}

// ParseChoice decodes the "other:<text>" convention used by the questionnaire
func ParseChoice(raw string) Choice {
	if strings.HasPrefix(raw, OtherPrefix) {
		return Other(strings.TrimPrefix(raw, OtherPrefix))
	}
	return Known(raw)
}

// IsOther reports whether the choice carries free text
func (c Choice) IsOther() bool { return c.isOther }

// IsZero reports whether nothing was chosen
func (c Choice) IsZero() bool { return !c.isOther && c.known == "" }

// KnownValue returns the predefined option, empty for free text
func (c Choice) KnownValue() string { return c.known }

// OtherText returns the free text, empty for known options
func (c Choice) OtherText() string { return c.other }

// String returns the canonical encoded form
func (c Choice) String() string {
	if c.isOther {
		return OtherPrefix + c.other
	}
	return c.known
}

// Display returns the human-readable answer used in prompts and emails
func (c Choice) Display() string {
	if c.isOther {
		return c.other
	}
	return c.known
}

type choiceJSON struct {
	Value *string `json:"value,omitempty"`
	Other *string `json:"other,omitempty"`
}

// MarshalJSON encodes the choice as {"value": ...} or {"other": ...}
func (c Choice) MarshalJSON() ([]byte, error) {
	if c.isOther {
		text := c.other
		return json.Marshal(choiceJSON{Other: &text})
	}
	value := c.known
	return json.Marshal(choiceJSON{Value: &value})
}

// UnmarshalJSON accepts the object form or the legacy prefixed string
func (c *Choice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = Choice{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*c = ParseChoice(raw)
		return nil
	}

	var obj choiceJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid choice: %w", err)
	}
	switch {
	case obj.Value != nil && obj.Other != nil:
		return fmt.Errorf("invalid choice: both value and other set")
	case obj.Other != nil:
		*c = Other(*obj.Other)
	case obj.Value != nil:
		*c = Known(*obj.Value)
	default:
		*c = Choice{}
	}
	return nil
}

// Value implements driver.Valuer
func (c Choice) Value() (driver.Value, error) {
	return c.String(), nil
}

// Scan implements sql.Scanner
func (c *Choice) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = Choice{}
	case string:
		*c = ParseChoice(v)
	case []byte:
		*c = ParseChoice(string(v))
	default:
		return fmt.Errorf("unsupported choice type %T", src)
	}
	return nil
}

// EncodeChoices converts choices to their stored string form
func EncodeChoices(choices []Choice) []string {
	out := make([]string, 0, len(choices))
	for _, c := range choices {
		out = append(out, c.String())
	}
	return out
}

// DecodeChoices converts stored strings back into choices
func DecodeChoices(raw []string) []Choice {
	out := make([]Choice, 0, len(raw))
	for _, r := range raw {
		out = append(out, ParseChoice(r))
	}
	return out
}

// DisplayChoices returns the display text of each choice
func DisplayChoices(choices []Choice) []string {
	out := make([]string, 0, len(choices))
	for _, c := range choices {
		out = append(out, c.Display())
	}
	return out
}
