package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/portfolio-api/internal/model"
)

const testSecret = "test-secret-0123456789"

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewTokenService(testSecret, time.Hour)
	for _, id := range []uint64{1, 42, 1 << 40} {
		tok, err := svc.Issue(model.User{ID: id, Role: model.RoleUser})
		require.NoError(t, err)
		assert.Equal(t, 3, len(strings.Split(tok.Token, ".")))

		got, err := svc.Verify(tok.Token)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestIssue_SetsExpiryFromTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := NewTokenService(testSecret, 24*time.Hour).WithClock(fixedClock(now))
	tok, err := svc.Issue(model.User{ID: 7})
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour), tok.Exp)

	var claims jwt.RegisteredClaims
	_, _, err = jwt.NewParser().ParseUnverified(tok.Token, &claims)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	minter := NewTokenService(testSecret, time.Hour).WithClock(fixedClock(issued))
	tok, err := minter.Issue(model.User{ID: 1})
	require.NoError(t, err)

	cases := map[string]time.Time{
		"exactly at expiry": issued.Add(time.Hour),
		"after expiry":      issued.Add(time.Hour + time.Second),
		"long after":        issued.Add(90 * 24 * time.Hour),
	}
	for name, at := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := minter.WithClock(fixedClock(at)).Verify(tok.Token)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	id, err := minter.WithClock(fixedClock(issued.Add(59 * time.Minute))).Verify(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService("right-secret-000000", time.Hour).Issue(model.User{ID: 2})
	require.NoError(t, err)

	_, err = NewTokenService("wrong-secret-000000", time.Hour).Verify(tok.Token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_TamperedPayload(t *testing.T) {
	t.Parallel()

	svc := NewTokenService(testSecret, time.Hour)
	tok, err := svc.Issue(model.User{ID: 3})
	require.NoError(t, err)

	parts := strings.Split(tok.Token, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	forged := strings.Replace(string(payload), `"sub":"3"`, `"sub":"1"`, 1)
	require.NotEqual(t, string(payload), forged)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	_, err = svc.Verify(strings.Join(parts, "."))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{
		Subject:   "1",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	svc := NewTokenService(testSecret, time.Hour)
	for _, raw := range []string{hs512, none} {
		_, err := svc.Verify(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerify_MalformedInput(t *testing.T) {
	t.Parallel()

	svc := NewTokenService(testSecret, time.Hour)
	for _, raw := range []string{"", "not.a.jwt", "a.b", "....", "\x00\xff", strings.Repeat("x", 4096)} {
		assert.NotPanics(t, func() {
			_, err := svc.Verify(raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerify_RequiresNumericSubjectAndExpiry(t *testing.T) {
	t.Parallel()

	now := time.Now()
	sign := func(c jwt.RegisteredClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return s
	}
	svc := NewTokenService(testSecret, time.Hour)

	noExp := sign(jwt.RegisteredClaims{Subject: "1", IssuedAt: jwt.NewNumericDate(now)})
	_, err := svc.Verify(noExp)
	require.ErrorIs(t, err, ErrInvalidToken)

	badSub := sign(jwt.RegisteredClaims{Subject: "alice", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))})
	_, err = svc.Verify(badSub)
	require.ErrorIs(t, err, ErrInvalidToken)

	zeroSub := sign(jwt.RegisteredClaims{Subject: "0", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))})
	_, err = svc.Verify(zeroSub)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, VerifyPassword(hash, "correct horse"))
	assert.False(t, VerifyPassword(hash, "battery staple"))
	assert.False(t, VerifyPassword("not-a-hash", "correct horse"))
}
