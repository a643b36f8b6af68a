package utils

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewOpaqueToken(t *testing.T) {
	seen := map[string]bool{}
	hexRe := regexp.MustCompile(`^[0-9a-f]{40}$`)
	for i := 0; i < 10; i++ {
		tok, err := NewOpaqueToken()
		if err != nil {
			t.Fatalf("NewOpaqueToken: %v", err)
		}
		if !hexRe.MatchString(tok) {
			t.Fatalf("token %q is not 40 lowercase hex characters", tok)
		}
		if seen[tok] {
			t.Fatalf("duplicate token %q", tok)
		}
		seen[tok] = true
	}
}

func TestBearerTokenRoundTrip(t *testing.T) {
	bt, err := NewBearerToken("secret", 42, "deadbeef", 30)
	if err != nil {
		t.Fatalf("NewBearerToken: %v", err)
	}
	if until := time.Until(bt.Exp); until < 29*time.Minute || until > 31*time.Minute {
		t.Errorf("expiry %v not ~30 minutes out", bt.Exp)
	}

	claims, err := VerifyBearerToken("secret", bt.Token)
	if err != nil {
		t.Fatalf("VerifyBearerToken: %v", err)
	}
	if claims.UID != 42 {
		t.Errorf("uid = %d, want 42", claims.UID)
	}
	if claims.Opaque != "deadbeef" {
		t.Errorf("opaque = %q, want deadbeef", claims.Opaque)
	}
}

func TestVerifyBearerTokenWrongSecret(t *testing.T) {
	bt, err := NewBearerToken("secret", 1, "tok", 30)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyBearerToken("other", bt.Token); err == nil {
		t.Error("token signed with a different secret verified")
	} else if errors.Is(err, ErrTokenExpired) {
		t.Error("bad signature reported as expiry")
	}
}

func TestVerifyBearerTokenExpired(t *testing.T) {
	// Sign an already-expired token with the same claim layout.
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"iss": "garage-api",
		"iat": now.Add(-2 * time.Hour).Unix(),
		"exp": now.Add(-time.Hour).Unix(),
		"uid": uint64(7),
		"tok": "stale",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyBearerToken("secret", signed); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyBearerTokenGarbage(t *testing.T) {
	for _, raw := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if _, err := VerifyBearerToken("secret", raw); err == nil {
			t.Errorf("garbage token %q verified", raw)
		}
	}
}

func TestVerifyBearerTokenMissingClaims(t *testing.T) {
	now := time.Now().UTC()
	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{name: "no uid", claims: jwt.MapClaims{"exp": now.Add(time.Hour).Unix(), "tok": "x"}},
		{name: "no tok", claims: jwt.MapClaims{"exp": now.Add(time.Hour).Unix(), "uid": 1}},
		{name: "zero uid", claims: jwt.MapClaims{"exp": now.Add(time.Hour).Unix(), "uid": 0, "tok": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims).SignedString([]byte("secret"))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := VerifyBearerToken("secret", signed); err == nil {
				t.Error("token with incomplete claims verified")
			}
		})
	}
}
