package user

import (
	"testing"

	"github.com/kantorkita/hr-backend-go/internal/pkg/validator"
)

func fieldsOf(err error) map[string]string {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	return verrs.ToMap()
}

func TestCreateUserRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateUserRequest
		wantField string
	}{
		{
			name: "valid",
			req:  CreateUserRequest{FullName: "Budi Santoso", Email: "budi@example.com", Password: "password123", Role: "staff"},
		},
		{
			name:      "missing full name",
			req:       CreateUserRequest{Email: "budi@example.com", Password: "password123", Role: "staff"},
			wantField: "full_name",
		},
		{
			name:      "invalid email",
			req:       CreateUserRequest{FullName: "Budi", Email: "not-an-email", Password: "password123", Role: "staff"},
			wantField: "email",
		},
		{
			name:      "short password",
			req:       CreateUserRequest{FullName: "Budi", Email: "budi@example.com", Password: "short", Role: "staff"},
			wantField: "password",
		},
		{
			name:      "unknown role",
			req:       CreateUserRequest{FullName: "Budi", Email: "budi@example.com", Password: "password123", Role: "superuser"},
			wantField: "role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			fields := fieldsOf(err)
			if _, ok := fields[tt.wantField]; !ok {
				t.Errorf("Validate() fields = %v, want %q flagged", fields, tt.wantField)
			}
		})
	}
}

func TestUpdateUserRequest_Validate(t *testing.T) {
	empty := ""
	badRole := "root"
	goodName := "Siti Rahma"

	if err := (&UpdateUserRequest{ID: "a2c9f7de-0000-0000-0000-000000000000", FullName: &goodName}).Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	if err := (&UpdateUserRequest{FullName: &goodName}).Validate(); err == nil {
		t.Error("Validate() without id should fail")
	}

	req := &UpdateUserRequest{ID: "a2c9f7de-0000-0000-0000-000000000000", FullName: &empty, Role: &badRole}
	fields := fieldsOf(req.Validate())
	if _, ok := fields["full_name"]; !ok {
		t.Errorf("empty full_name not flagged: %v", fields)
	}
	if _, ok := fields["role"]; !ok {
		t.Errorf("bad role not flagged: %v", fields)
	}
}
