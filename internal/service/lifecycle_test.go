package service

import (
	"testing"

	"problem-solver/internal/models"
)

func TestCanAdvance(t *testing.T) {
	tests := []struct {
		from, to models.Status
		want     bool
	}{
		{models.StatusNew, models.StatusAnalyzed, true},
		{models.StatusAnalyzed, models.StatusDelivered, true},
		{models.StatusNew, models.StatusDelivered, false},
		{models.StatusDelivered, models.StatusAnalyzed, false},
		{models.StatusArchived, models.StatusNew, false},
		{models.StatusAnalyzed, models.StatusArchived, false},
	}

	for _, tt := range tests {
		if got := CanAdvance(tt.from, tt.to); got != tt.want {
			t.Errorf("CanAdvance(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanDispatch(t *testing.T) {
	want := map[models.Status]bool{
		models.StatusNew:       false,
		models.StatusAnalyzed:  true,
		models.StatusDelivered: true,
		models.StatusArchived:  false,
	}
	for status, expected := range want {
		if got := CanDispatch(status); got != expected {
			t.Errorf("CanDispatch(%s) = %v, want %v", status, got, expected)
		}
	}
}

func TestParseOverride(t *testing.T) {
	for _, s := range models.AllStatuses {
		if _, err := ParseOverride(string(s)); err != nil {
			t.Errorf("ParseOverride(%s) error = %v", s, err)
		}
	}

	_, err := ParseOverride("Delivered")
	if _, ok := err.(*ValidationError); !ok {
		t.Errorf("ParseOverride(Delivered) error = %v, want *ValidationError", err)
	}
}
