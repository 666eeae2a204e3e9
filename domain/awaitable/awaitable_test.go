package awaitable

import (
	"errors"
	"testing"
)

func TestNewConfirmation(t *testing.T) {
	aw, err := NewConfirmation("publish the story?", map[string]string{"story": "draft-1"})
	if err != nil {
		t.Fatalf("NewConfirmation() error: %v", err)
	}
	if aw.ID == "" {
		t.Error("NewConfirmation().ID is empty")
	}
	if aw.Kind != KindConfirmation {
		t.Errorf("Kind = %q, want %q", aw.Kind, KindConfirmation)
	}
	if aw.Message != "publish the story?" {
		t.Errorf("Message = %q, want %q", aw.Message, "publish the story?")
	}
	if aw.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestResponse_ValidateAgainst(t *testing.T) {
	conf, _ := NewConfirmation("ok?", nil)
	form, _ := NewFormSubmission("fill in", nil)

	tests := []struct {
		name    string
		resp    Response
		aw      *Awaitable
		wantErr error
	}{
		{"confirmation accepted", NewConfirmationResponse(conf.ID, true), conf, nil},
		{"confirmation rejected", NewConfirmationResponse(conf.ID, false), conf, nil},
		{"confirmation missing accepted", Response{AwaitableID: conf.ID}, conf, ErrInvalidResponse},
		{"form with data", NewFormResponse(form.ID, map[string]any{"name": "x"}), form, nil},
		{"form missing data", Response{AwaitableID: form.ID}, form, ErrInvalidResponse},
		{"wrong id", NewConfirmationResponse("other", true), conf, ErrUnknownAwaitable},
		{"nil awaitable", NewConfirmationResponse("x", true), nil, ErrUnknownAwaitable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resp.ValidateAgainst(tt.aw)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAgainst() err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResponse_ValidateAgainst_UnsupportedKind(t *testing.T) {
	aw := &Awaitable{ID: "x", Kind: Kind("telepathy")}
	resp := Response{AwaitableID: "x"}

	if err := resp.ValidateAgainst(aw); !errors.Is(err, ErrUnsupportedKind) {
		t.Errorf("ValidateAgainst() err = %v, want %v", err, ErrUnsupportedKind)
	}
}
