package utils // package utils provides helper functions for token creation and hashing

import (
    "crypto/rand"  // secure random number generation
    "encoding/hex" // hex encoding for opaque session tokens
    "errors"       // sentinel errors for token verification
    "time"         // expiry computation

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

const issuer = "garage-api"

// ErrTokenExpired signals a bearer token whose signature verified but whose
// expiry has passed.  Handlers map this to HTTP 410 so the frontend can
// distinguish "session expired" from "never logged in".
var ErrTokenExpired = errors.New("session expired")

// BearerToken is a signed JWT returned to the client after login or refresh,
// together with its expiry so the frontend can schedule a refresh.
type BearerToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// SessionClaims is what a verified bearer token resolves to: the user id and
// the opaque session token it embeds.  The pair is re-checked against the
// users table on every request, which makes rotation an effective revocation
// without any blocklist.
type SessionClaims struct {
    UID    uint64
    Opaque string
}

// NewOpaqueToken returns a fresh random session token: 20 bytes from a
// cryptographically secure source, hex encoded (40 characters).  It is
// stored on the user row, replacing any prior value.
func NewOpaqueToken() (string, error) {
    buf := make([]byte, 20)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}

// NewBearerToken builds and signs an HS256 JWT embedding the issuer tag,
// issued-at, expiry, the user id and the opaque session token.
func NewBearerToken(secret string, uid uint64, opaque string, ttlMin int) (BearerToken, error) {
    now := time.Now().UTC()
    exp := now.Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "iss": issuer,
        "iat": now.Unix(),
        "exp": exp.Unix(),
        "uid": uid,
        "tok": opaque,
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return BearerToken{}, err
    }
    return BearerToken{Token: signed, Exp: exp}, nil
}

// VerifyBearerToken checks signature and expiry and extracts the session
// claims.  An expired-but-authentic token returns ErrTokenExpired; any other
// failure returns a generic error and callers should treat the request as
// anonymous.
func VerifyBearerToken(secret, raw string) (SessionClaims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, errors.New("unexpected signing method")
        }
        return []byte(secret), nil
    })
    if err != nil {
        if errors.Is(err, jwt.ErrTokenExpired) {
            return SessionClaims{}, ErrTokenExpired
        }
        return SessionClaims{}, err
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok || !tok.Valid {
        return SessionClaims{}, errors.New("invalid claims")
    }
    uid, ok := claims["uid"].(float64) // numeric JSON values decode as float64
    if !ok || uid <= 0 {
        return SessionClaims{}, errors.New("missing uid claim")
    }
    opaque, ok := claims["tok"].(string)
    if !ok || opaque == "" {
        return SessionClaims{}, errors.New("missing tok claim")
    }
    return SessionClaims{UID: uint64(uid), Opaque: opaque}, nil
}
