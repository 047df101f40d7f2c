package service

import (
	"errors"
	"testing"
	"time"

	"github.com/geonews/geonews/internal/geo"
)

func validInput() NewsInput {
	coordinates := "POINT (1 2)"
	return NewsInput{
		Title:       "Flood",
		Coordinates: &coordinates,
		Type:        "hazard",
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		URL:         "https://example.com/1",
	}
}

func TestNewsInput_Validate(t *testing.T) {
	t.Parallel()

	input := validInput()
	coordinates, err := input.validate()
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if coordinates == nil || *coordinates != "POINT (1 2)" {
		t.Errorf("expected canonical coordinates, got %v", coordinates)
	}
}

func TestNewsInput_Validate_NoCoordinates(t *testing.T) {
	t.Parallel()

	input := validInput()
	input.Coordinates = nil

	coordinates, err := input.validate()
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if coordinates != nil {
		t.Errorf("expected nil coordinates, got %v", coordinates)
	}
}

func TestNewsInput_Validate_Canonicalizes(t *testing.T) {
	t.Parallel()

	raw := "point(30.5 -10.25)"
	input := validInput()
	input.Coordinates = &raw

	coordinates, err := input.validate()
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if coordinates == nil || *coordinates != "POINT (30.5 -10.25)" {
		t.Errorf("expected canonical form, got %v", coordinates)
	}
}

func TestNewsInput_Validate_Errors(t *testing.T) {
	t.Parallel()

	badGeometry := "POINT (here there)"

	tests := []struct {
		name    string
		mutate  func(*NewsInput)
		wantErr error
	}{
		{"missing title", func(in *NewsInput) { in.Title = "" }, ErrTitleRequired},
		{"missing url", func(in *NewsInput) { in.URL = "" }, ErrURLRequired},
		{"unknown type", func(in *NewsInput) { in.Type = "weather" }, ErrInvalidNewsType},
		{"empty type", func(in *NewsInput) { in.Type = "" }, ErrInvalidNewsType},
		{"bad geometry", func(in *NewsInput) { in.Coordinates = &badGeometry }, geo.ErrInvalidGeometry},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := validInput()
			tt.mutate(&input)

			if _, err := input.validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("validate error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
