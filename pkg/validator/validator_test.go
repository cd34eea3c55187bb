package validator

import (
	"strings"
	"testing"
)

type level struct {
	name string
}

func (l level) String() string { return l.name }

type sample struct {
	Email  string   `json:"email" validate:"required,email"`
	Size   string   `json:"size" validate:"omitempty,oneof=small large"`
	Level  level    `json:"level" validate:"required,prefixed=lvl"`
	Levels []level  `json:"levels" validate:"dive,prefixed=lvl"`
	Link   *string  `json:"link,omitempty" validate:"omitempty,url"`
	Tags   []string `json:"-"`
}

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v := New()
	v.RegisterStringer(level{})
	if err := v.RegisterRule("prefixed", func(value, param string) bool {
		return strings.HasPrefix(value, param)
	}); err != nil {
		t.Fatalf("RegisterRule() error = %v", err)
	}
	return v
}

func TestValidate(t *testing.T) {
	v := newTestValidator(t)
	badLink := "not a url"

	tests := []struct {
		name       string
		input      sample
		wantFields []string
	}{
		{
			name:  "valid struct",
			input: sample{Email: "test@example.com", Level: level{"lvl-1"}, Levels: []level{{"lvl-2"}}},
		},
		{
			name:       "missing required fields",
			input:      sample{},
			wantFields: []string{"email", "level"},
		},
		{
			name:       "bad enum and custom rule",
			input:      sample{Email: "test@example.com", Size: "medium", Level: level{"x"}},
			wantFields: []string{"size", "level"},
		},
		{
			name:       "dive reports indexed field",
			input:      sample{Email: "test@example.com", Level: level{"lvl"}, Levels: []level{{"lvl"}, {"bad"}}},
			wantFields: []string{"levels[1]"},
		},
		{
			name:       "invalid url",
			input:      sample{Email: "test@example.com", Level: level{"lvl"}, Link: &badLink},
			wantFields: []string{"link"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := v.Validate(&tt.input)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if len(fields) != len(tt.wantFields) {
				t.Fatalf("Validate() = %v, expected fields %v", fields, tt.wantFields)
			}
			for _, f := range tt.wantFields {
				if _, ok := fields[f]; !ok {
					t.Errorf("expected error for field %q, got %v", f, fields)
				}
			}
		})
	}
}

func TestValidateMessages(t *testing.T) {
	v := newTestValidator(t)

	fields, err := v.Validate(&sample{Email: "nope", Size: "huge", Level: level{"lvl"}})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if fields["email"] != "must be a valid email" {
		t.Errorf("email message = %q", fields["email"])
	}
	if fields["size"] != "must be one of: small, large" {
		t.Errorf("size message = %q", fields["size"])
	}
}

func TestSanitize(t *testing.T) {
	if got := SanitizeString("  test\x00string  "); got != "teststring" {
		t.Errorf("SanitizeString() = %q", got)
	}
	if got := SanitizeEmail("  USER@Example.COM "); got != "user@example.com" {
		t.Errorf("SanitizeEmail() = %q", got)
	}
}
