package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/vigilkeeper/internal/client/models"
	"github.com/dmitrijs2005/vigilkeeper/internal/common"
)

func TestIssueAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := IssueToken("u1", "Jean Dupont", secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	got, err := SessionFromToken(tok, secret)
	if err != nil {
		t.Fatalf("SessionFromToken error: %v", err)
	}
	want := models.Session{UserID: "u1", FullName: "Jean Dupont"}
	if got != want {
		t.Fatalf("session mismatch: got %+v want %+v", got, want)
	}
}

func TestSessionFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := IssueToken("u1", "Jean Dupont", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = SessionFromToken(tok, secret)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestSessionFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := IssueToken("u2", "Marie Martin", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = SessionFromToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestSessionFromToken_Garbage(t *testing.T) {
	t.Parallel()

	_, err := SessionFromToken("not.a.jwt", []byte("secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestSessionFromToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: "u1"}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	_, err = SessionFromToken(tok, secret)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestSessionFromToken_SubjectFallback(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u3"},
		Name:             "Paul Durand",
	}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	got, err := SessionFromToken(tok, secret)
	if err != nil {
		t.Fatalf("SessionFromToken error: %v", err)
	}
	if got.UserID != "u3" || got.FullName != "Paul Durand" {
		t.Fatalf("unexpected session %+v", got)
	}
}

func TestSessionFromToken_NoUserID(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Name: "Nobody"}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	_, err = SessionFromToken(tok, secret)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}
