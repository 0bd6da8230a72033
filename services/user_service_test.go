package services

import (
	"errors"
	"testing"
)

func TestRegisterDefaultsAndLowercasesRole(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	user, err := svc.Register("Alice", "alice@example.com", "s3cret", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != "normal" {
		t.Fatalf("role = %q, want normal", user.Role)
	}
	if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
		t.Fatal("password stored without hashing")
	}

	admin, err := svc.Register("Bob", "bob@example.com", "pw", "Admin")
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	if admin.Role != "admin" {
		t.Fatalf("role = %q, want admin", admin.Role)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if _, err := svc.Register("Alice", "dup@example.com", "pw", ""); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register("Other", "dup@example.com", "pw2", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if _, err := svc.Register("Alice", "alice@example.com", "s3cret", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.Authenticate("alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email = %q", user.Email)
	}

	// wrong password and unknown email look identical
	if _, err := svc.Authenticate("alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, err := svc.Authenticate("nobody@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v", err)
	}
}
