package auth // package auth issues and verifies access tokens and resolves callers to users

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens

	"github.com/iliyamo/portfolio-api/internal/model"
)

// ErrInvalidToken is returned by Verify for every token that cannot be
// trusted: malformed, wrongly signed, tampered, expired or carrying an
// unusable subject.  Callers never need to distinguish between these.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the compact JWT string.  Exp stores the UTC
// expiration time that is also encoded in the `exp` claim.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// TokenService mints and checks HS256 access tokens.  The secret and TTL are
// fixed at construction; the service holds no other state and is safe for
// concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService returns a service signing with secret and issuing tokens
// valid for ttl.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of the service that reads time from now.  Tests
// use it to mint tokens in the past or verify them in the future.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue builds and signs a token for u.  The subject (sub) is the decimal
// user ID; iat and exp are set from the service clock.
func (s *TokenService) Issue(u model.User) (AccessToken, error) {
	now := s.now().UTC()
	exp := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(u.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return AccessToken{}, fmt.Errorf("sign token: %w", err)
	}
	// exp is truncated to whole seconds inside the token; report the same value.
	return AccessToken{Token: signed, Exp: claims.ExpiresAt.Time.UTC()}, nil
}

// Verify checks the signature and expiry of raw and returns the user ID it
// was issued for.  Any failure is reported as ErrInvalidToken (wrapped with
// the parser's reason for logging).
func (s *TokenService) Verify(raw string) (uint64, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}
	return id, nil
}
