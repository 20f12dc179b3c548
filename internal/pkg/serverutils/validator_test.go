package serverutils

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Email string `validate:"required,email"`
	Role  string `validate:"omitempty,oneof=user organizer"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		req     sampleRequest
		wantErr bool
		wantIn  string
	}{
		{
			name: "valid",
			req:  sampleRequest{Email: "a@b.com", Role: "organizer"},
		},
		{
			name:    "missing email",
			req:     sampleRequest{Role: "user"},
			wantErr: true,
			wantIn:  "Email",
		},
		{
			name:    "bad role",
			req:     sampleRequest{Email: "a@b.com", Role: "superuser"},
			wantErr: true,
			wantIn:  "oneof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			appErr, ok := err.(*AppError)
			if !ok {
				t.Fatalf("expected *AppError, got %T", err)
			}
			if appErr.StatusCode != 400 {
				t.Errorf("StatusCode = %d, want 400", appErr.StatusCode)
			}
			if !strings.Contains(appErr.Message, tt.wantIn) {
				t.Errorf("Message %q does not mention %q", appErr.Message, tt.wantIn)
			}
		})
	}
}
