package utils

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	const plain = "Corr3ctHorse"

	encoded, err := HashPassword(plain)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$") {
		t.Errorf("encoded hash %q lacks the argon2id prefix", encoded)
	}
	if !VerifyPassword(encoded, plain) {
		t.Error("correct password rejected")
	}
	if VerifyPassword(encoded, "Corr3ctHorsf") {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	a, err := HashPassword("samesame1A")
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("samesame1A")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two hashes of the same password are identical; salt not applied")
	}
}

func TestVerifyPasswordMalformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty", encoded: ""},
		{name: "plain text", encoded: "not-a-hash"},
		{name: "wrong algorithm", encoded: "$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{name: "wrong version", encoded: "$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{name: "bad salt encoding", encoded: "$argon2id$v=19$m=65536,t=3,p=2$***$aGFzaA"},
		{name: "legacy sha512 hex", encoded: strings.Repeat("ab", 64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifyPassword(tt.encoded, "whatever1A") {
				t.Error("malformed stored hash verified")
			}
		})
	}
}

func TestRandomPassword(t *testing.T) {
	for _, n := range []int{0, 8, 12, 32} {
		p, err := RandomPassword(n)
		if err != nil {
			t.Fatalf("RandomPassword(%d): %v", n, err)
		}
		want := n
		if want < 8 {
			want = 8
		}
		if len(p) != want {
			t.Errorf("RandomPassword(%d) length = %d, want %d", n, len(p), want)
		}
		if !ValidPassword(p) {
			t.Errorf("RandomPassword(%d) = %q fails the complexity rule", n, p)
		}
	}
}

func TestRandomPasswordNotConstant(t *testing.T) {
	a, _ := RandomPassword(12)
	b, _ := RandomPassword(12)
	if a == b {
		t.Error("two generated passwords are identical")
	}
}
