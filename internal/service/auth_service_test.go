package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/parceldesk/internal/config"
	"github.com/parceldesk/internal/models"
	"github.com/parceldesk/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, repository.UserRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.ExpireHours = 1

	userRepo := repository.NewUserRepository(db)
	return NewAuthService(cfg, userRepo), userRepo
}

func TestAuthServiceLogin(t *testing.T) {
	svc, userRepo := setupAuthServiceTest(t)

	hash, err := svc.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	if err := userRepo.Create(&models.User{Email: "owner@example.com", PasswordHash: hash}); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	user, token, expiresAt, err := svc.Login("owner@example.com", "correct horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || expiresAt.Before(time.Now()) {
		t.Fatalf("unexpected token/expiry: %q %v", token, expiresAt)
	}
	if user.LastLoginAt == nil {
		t.Fatal("last login not recorded")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != "owner@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthServiceLoginInvalidCredentials(t *testing.T) {
	svc, userRepo := setupAuthServiceTest(t)

	hash, _ := svc.HashPassword("right")
	if err := userRepo.Create(&models.User{Email: "owner@example.com", PasswordHash: hash}); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	if _, _, _, err := svc.Login("owner@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "right"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
}

func TestAuthServiceParseJWTRejectsTampered(t *testing.T) {
	svc, userRepo := setupAuthServiceTest(t)

	hash, _ := svc.HashPassword("pw")
	user := &models.User{Email: "owner@example.com", PasswordHash: hash}
	if err := userRepo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	token, _, err := svc.GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate jwt failed: %v", err)
	}
	if _, err := svc.ParseJWT(token + "x"); err == nil {
		t.Fatal("tampered token accepted")
	}
}
