package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sinbum/korea-public-data-be-sub000/transport"
)

// ErrEmptySigningKey is returned when a JWT strategy is applied with no
// signing key. Configuration error, not retryable.
var ErrEmptySigningKey = errors.New("auth: jwt signing key is empty")

// jwtTokenTTL is the lifetime of a minted per-request token.
const jwtTokenTTL = 5 * time.Minute

// JWT returns a strategy that mints a short-lived HS256 token per request
// and sends it as a bearer credential.
func JWT(issuer string, key []byte) Strategy {
	return &jwtStrategy{
		issuer: issuer,
		key:    key,
		now:    time.Now,
	}
}

type jwtStrategy struct {
	issuer string
	key    []byte
	now    func() time.Time
}

func (s *jwtStrategy) Apply(req transport.Request) (transport.Request, error) {
	if len(s.key) == 0 {
		return transport.Request{}, ErrEmptySigningKey
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(jwtTokenTTL)),
	})

	signed, err := token.SignedString(s.key)
	if err != nil {
		return transport.Request{}, fmt.Errorf("auth: sign jwt: %w", err)
	}

	out := req.Clone()
	out.SetHeader("Authorization", "Bearer "+signed)
	return out, nil
}
