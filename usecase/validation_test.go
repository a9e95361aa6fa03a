package usecase

import (
	"encoding/json"
	"errors"
	"testing"

	"notekeeper/model"
)

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name        string
		draft       model.NoteDraft
		wantInput   model.NoteInput
		wantReason  string
		wantMessage string
	}{
		{
			name:      "content and importance",
			draft:     model.NoteDraft{Content: "Hello", Important: boolPtr(true)},
			wantInput: model.NoteInput{Content: "Hello", Important: true},
		},
		{
			name:      "importance defaults to false",
			draft:     model.NoteDraft{Content: "Buy milk"},
			wantInput: model.NoteInput{Content: "Buy milk"},
		},
		{
			name:        "missing content",
			draft:       model.NoteDraft{Important: boolPtr(true)},
			wantReason:  model.ReasonMissing,
			wantMessage: "content missing",
		},
		{
			name:        "content too short",
			draft:       model.NoteDraft{Content: "Hi"},
			wantReason:  model.ReasonTooShort,
			wantMessage: "content is shorter than the minimum allowed length (5)",
		},
		{
			name:        "client supplied id",
			draft:       model.NoteDraft{Content: "Hello there", ID: json.RawMessage(`"abc"`)},
			wantReason:  model.ReasonServerAssigned,
			wantMessage: "id is assigned by the server",
		},
		{
			name:      "explicit null id and date are ignored",
			draft:     model.NoteDraft{Content: "Hello there", ID: json.RawMessage(`null`), Date: json.RawMessage(` null `)},
			wantInput: model.NoteInput{Content: "Hello there"},
		},
		{
			name:        "client supplied date",
			draft:       model.NoteDraft{Content: "Hello there", Date: json.RawMessage(`"2019-05-30T17:30:31.098Z"`)},
			wantReason:  model.ReasonServerAssigned,
			wantMessage: "date is assigned by the server",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := ValidateDraft(tt.draft)
			if tt.wantReason == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if input != tt.wantInput {
					t.Errorf("expected %+v, got %+v", tt.wantInput, input)
				}
				return
			}

			var ve *model.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if ve.Reason != tt.wantReason {
				t.Errorf("expected reason %q, got %q", tt.wantReason, ve.Reason)
			}
			if ve.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, ve.Message)
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	tests := []struct {
		name       string
		update     model.NoteUpdate
		wantPatch  model.NotePatch
		wantReason string
	}{
		{
			name:      "importance only",
			update:    model.NoteUpdate{Important: boolPtr(true)},
			wantPatch: model.NotePatch{Important: true},
		},
		{
			name:      "content is accepted but not carried",
			update:    model.NoteUpdate{Important: boolPtr(false), Content: strPtr("Changed text")},
			wantPatch: model.NotePatch{Important: false},
		},
		{
			name:       "missing importance",
			update:     model.NoteUpdate{Content: strPtr("Changed text")},
			wantReason: model.ReasonMissing,
		},
		{
			name:       "short content",
			update:     model.NoteUpdate{Important: boolPtr(true), Content: strPtr("abc")},
			wantReason: model.ReasonTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := ValidateUpdate(tt.update)
			if tt.wantReason == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if patch != tt.wantPatch {
					t.Errorf("expected %+v, got %+v", tt.wantPatch, patch)
				}
				return
			}

			var ve *model.ValidationError
			if !errors.As(err, &ve) || ve.Reason != tt.wantReason {
				t.Fatalf("expected %s validation error, got %v", tt.wantReason, err)
			}
		})
	}
}

func TestMalformedBody(t *testing.T) {
	err := MalformedBody()
	if err.Error() != "malformatted JSON" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !model.IsValidationError(err) {
		t.Error("expected a validation error")
	}
}
