package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2026-03-02")
	if !ok {
		t.Fatal("IsValidDate(2026-03-02) = false, want true")
	}
	if date.Year() != 2026 || date.Month() != time.March || date.Day() != 2 {
		t.Errorf("IsValidDate parsed wrong date: %v", date)
	}

	for _, bad := range []string{"", "02-03-2026", "2026-3-2", "2026-13-01", "not a date"} {
		if _, ok := IsValidDate(bad); ok {
			t.Errorf("IsValidDate(%q) = true, want false", bad)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	modes := []string{"onsite", "hybrid"}
	if !IsInSlice("onsite", modes) {
		t.Error("IsInSlice(onsite) = false, want true")
	}
	if IsInSlice("remote", modes) {
		t.Error("IsInSlice(remote) = true, want false")
	}
	if IsInSlice("onsite", nil) {
		t.Error("IsInSlice on nil slice = true, want false")
	}
}

func TestInclusiveDays(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		end  time.Time
		want int
	}{
		{start, 1},
		{start.AddDate(0, 0, 1), 2},
		{start.AddDate(0, 0, 6), 7},
	}
	for _, c := range cases {
		if got := InclusiveDays(start, c.end); got != c.want {
			t.Errorf("InclusiveDays(..., %v) = %d, want %d", c.end, got, c.want)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "email is required"},
		{Field: "password", Message: "password is too short"},
	}

	m := errs.ToMap()
	if m["email"] != "email is required" || m["password"] != "password is too short" {
		t.Errorf("ToMap() = %v", m)
	}
	if errs.Error() == "" {
		t.Error("Error() returned empty string")
	}
}
