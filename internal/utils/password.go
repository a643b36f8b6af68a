package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrInvalidHash is returned when a stored password string is not a
// well-formed encoded Argon2id hash.
var ErrInvalidHash = errors.New("invalid password hash format")

// Argon2id parameters. Values follow the OWASP recommendation for
// interactive logins; the salt is regenerated per hash so identical
// passwords never share a stored value.
const (
	argonMemory      = 64 * 1024
	argonIterations  = 3
	argonParallelism = 2
	argonSaltLen     = 16
	argonKeyLen      = 32
)

// HashPassword derives an Argon2id hash of plain and encodes it in the
// standard `$argon2id$v=19$m=..,t=..,p=..$salt$key` form, parameters
// included so they can evolve without invalidating stored credentials.
func HashPassword(plain string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(plain), salt, argonIterations, argonMemory, argonParallelism, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonIterations, argonParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// VerifyPassword re-derives the key from plain using the parameters encoded
// in the stored hash and compares in constant time.  A malformed stored
// value simply fails verification.
func VerifyPassword(encoded, plain string) bool {
	mem, iters, par, salt, key, err := decodeArgonHash(encoded)
	if err != nil {
		return false
	}
	other := argon2.IDKey([]byte(plain), salt, iters, mem, par, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, other) == 1
}

// RandomPassword returns a random password of n characters (minimum 8)
// guaranteed to satisfy the complexity rule: it always contains an
// upper-case letter, a lower-case letter and a digit.  Used by the admin
// password reset.
func RandomPassword(n int) (string, error) {
	if n < 8 {
		n = 8
	}
	const charset = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = charset[int(b)%len(charset)]
	}
	// force one of each class at fixed positions
	out[0] = 'a' + out[0]%26
	out[1] = 'A' + out[1]%26
	out[2] = '2' + out[2]%8
	return string(out), nil
}

func decodeArgonHash(encoded string) (mem, iters uint32, par uint8, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, ErrInvalidHash
	}
	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return 0, 0, 0, nil, nil, ErrInvalidHash
	}
	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return 0, 0, 0, nil, nil, ErrInvalidHash
	}
	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return 0, 0, 0, nil, nil, ErrInvalidHash
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return 0, 0, 0, nil, nil, ErrInvalidHash
	}
	return mem, iters, par, salt, key, nil
}
