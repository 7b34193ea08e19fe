package services

import (
	"context"
	"testing"
	"time"

	"hotelbooking/constants"
	"hotelbooking/dto"
	"hotelbooking/errors"
	"hotelbooking/storage/memory"
)

func newAuthService() (*AuthService, *memory.DB) {
	db := memory.New(nil)
	return NewAuthService(db.Users(), NewTokenIssuer("jwt-secret", time.Hour), nil), db
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, dto.RegisterInput{Name: "Lan", Email: "Lan@Example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "lan@example.com" {
		t.Fatalf("email not normalised: %s", user.Email)
	}
	if user.Password == "password123" {
		t.Fatal("password stored in clear")
	}

	got, err := svc.Authenticate(ctx, token)
	if err != nil || got.ID != user.ID {
		t.Fatalf("authenticate: %v %+v", err, got)
	}
}

func TestRegisterRejects(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, dto.RegisterInput{Name: "A", Email: "a@example.com", Password: "short"}); errors.CodeOf(err) != errors.ErrCodeValidation {
		t.Fatalf("short password: %v", err)
	}
	if _, _, err := svc.Register(ctx, dto.RegisterInput{Name: "A", Email: "a@example.com", Password: "password123"}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Register(ctx, dto.RegisterInput{Name: "B", Email: "A@example.com", Password: "password123"}); !errors.Is(err, errors.ErrUserExists) {
		t.Fatalf("duplicate email: %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	_, _, _ = svc.Register(ctx, dto.RegisterInput{Name: "Hoa", Email: "hoa@example.com", Password: "password123"})

	if _, token, err := svc.Login(ctx, dto.LoginInput{Email: "HOA@example.com", Password: "password123"}); err != nil || token == "" {
		t.Fatalf("login: %v", err)
	}
	if _, _, err := svc.Login(ctx, dto.LoginInput{Email: "hoa@example.com", Password: "wrong-password"}); !errors.Is(err, errors.ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, _, err := svc.Login(ctx, dto.LoginInput{Email: "nobody@example.com", Password: "password123"}); !errors.Is(err, errors.ErrInvalidCredentials) {
		t.Fatalf("unknown user: %v", err)
	}
}

func TestAuthenticateDeletedUser(t *testing.T) {
	svc, db := newAuthService()
	user, token, _ := svc.Register(context.Background(), dto.RegisterInput{Name: "Tu", Email: "tu@example.com", Password: "password123"})
	_ = db.Users().Delete(context.Background(), user.ID)

	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, errors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	admin, _, _ := svc.Register(ctx, dto.RegisterInput{Name: "Admin", Email: "admin@example.com", Password: "password123"})
	user, token, _ := svc.Register(ctx, dto.RegisterInput{Name: "Khoa", Email: "khoa@example.com", Password: "password123"})
	who := Requester{UserID: admin.ID, IsAdmin: true}

	if err := svc.DeleteUser(ctx, who, admin.ID); errors.CodeOf(err) != errors.ErrCodeValidation {
		t.Fatalf("self delete: %v", err)
	}
	if err := svc.DeleteUser(ctx, who, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, errors.ErrUnauthorized) {
		t.Fatalf("token of deleted user: %v", err)
	}
	if err := svc.DeleteUser(ctx, who, user.ID); !errors.Is(err, errors.ErrUserNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("jwt-secret", time.Hour)
	token, err := issuer.Generate(UserInfo{UserId: 9, Role: constants.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
	info, err := issuer.Parse(token)
	if err != nil || info.UserId != 9 || info.Role != constants.RoleAdmin {
		t.Fatalf("parse: %v %+v", err, info)
	}

	if _, err := NewTokenIssuer("other-secret", time.Hour).Parse(token); errors.CodeOf(err) != errors.ErrCodeUnauthorized {
		t.Fatalf("foreign secret: %v", err)
	}

	expired := NewTokenIssuer("jwt-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _ := expired.Generate(UserInfo{UserId: 9})
	if _, err := issuer.Parse(old); errors.CodeOf(err) != errors.ErrCodeUnauthorized {
		t.Fatalf("expired token: %v", err)
	}
}
