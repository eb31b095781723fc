// file: internals/features/users/user/controller/auth_controller_test.go
package controller

import (
	"testing"
	"time"

	"github.com/google/uuid"

	model "klubku_backend/internals/features/users/user/model"
)

func TestRefreshTokenRoundTrip(t *testing.T) {
	secret := "rahasia-refresh"
	userID := uuid.New()

	tok, err := signRefreshToken(secret, userID, time.Now())
	if err != nil {
		t.Fatalf("signRefreshToken: %v", err)
	}
	got, err := parseRefreshToken(secret, tok)
	if err != nil {
		t.Fatalf("parseRefreshToken: %v", err)
	}
	if got != userID {
		t.Fatalf("user id = %s, mau %s", got, userID)
	}
}

func TestParseRefreshTokenRejectsWrongSecret(t *testing.T) {
	tok, err := signRefreshToken("secret-a", uuid.New(), time.Now())
	if err != nil {
		t.Fatalf("signRefreshToken: %v", err)
	}
	if _, err := parseRefreshToken("secret-b", tok); err == nil {
		t.Fatalf("token dengan secret lain harus ditolak")
	}
}

func TestParseRefreshTokenRejectsExpired(t *testing.T) {
	tok, err := signRefreshToken("rahasia", uuid.New(), time.Now().Add(-(refreshTokenTTL + time.Hour)))
	if err != nil {
		t.Fatalf("signRefreshToken: %v", err)
	}
	if _, err := parseRefreshToken("rahasia", tok); err == nil {
		t.Fatalf("token kedaluwarsa harus ditolak")
	}
}

// Access token tidak boleh bisa dipakai sebagai refresh token meski secret
// sama — penanda typ wajib ada.
func TestParseRefreshTokenRejectsAccessToken(t *testing.T) {
	user := &model.UserModel{ID: uuid.New(), UserName: "budi", Role: "user"}
	tok, err := signAccessToken("rahasia", user, nil, time.Now())
	if err != nil {
		t.Fatalf("signAccessToken: %v", err)
	}
	if _, err := parseRefreshToken("rahasia", tok); err == nil {
		t.Fatalf("access token harus ditolak sebagai refresh token")
	}
}
