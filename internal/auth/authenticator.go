package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/portfolio-api/internal/model"
)

var (
	// ErrUnauthenticated means no usable identity: missing, invalid or
	// expired token, or a subject that no longer resolves to a user.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the caller is authenticated but not allowed.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials is returned by Login for an unknown username or
	// a wrong password; the two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CredentialStore looks users up.  A missing user is reported as found=false
// with a nil error; err is reserved for storage failures.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (model.User, bool, error)
	FindByID(ctx context.Context, id uint64) (model.User, bool, error)
}

// Authenticator turns credentials and bearer tokens into users.
type Authenticator struct {
	tokens *TokenService
	users  CredentialStore
}

func NewAuthenticator(tokens *TokenService, users CredentialStore) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Tokens exposes the underlying token service.
func (a *Authenticator) Tokens() *TokenService { return a.tokens }

// BearerToken extracts the token from an Authorization header value.  The
// scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}

// Login checks a username/password pair and issues a token on success.
func (a *Authenticator) Login(ctx context.Context, username, password string) (model.User, AccessToken, error) {
	u, found, err := a.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return model.User{}, AccessToken{}, fmt.Errorf("load user: %w", err)
	}
	if !found {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return model.User{}, AccessToken{}, ErrInvalidCredentials
	}
	if !VerifyPassword(u.PasswordHash, password) {
		return model.User{}, AccessToken{}, ErrInvalidCredentials
	}
	tok, err := a.tokens.Issue(u)
	if err != nil {
		return model.User{}, AccessToken{}, err
	}
	return u, tok, nil
}

// ResolveOptional returns the user behind the request's bearer token, or nil
// when there is none.  A missing header, a bad token and a deleted subject
// all yield (nil, nil); only storage failures produce an error.
func (a *Authenticator) ResolveOptional(r *http.Request) (*model.User, error) {
	raw, ok := BearerToken(r.Header.Get("Authorization"))
	if !ok {
		return nil, nil
	}
	id, err := a.tokens.Verify(raw)
	if err != nil {
		return nil, nil
	}
	u, found, err := a.users.FindByID(r.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &u, nil
}

// ResolveRequired is ResolveOptional with absence promoted to
// ErrUnauthenticated.
func (a *Authenticator) ResolveRequired(r *http.Request) (model.User, error) {
	u, err := a.ResolveOptional(r)
	if err != nil {
		return model.User{}, err
	}
	if u == nil {
		return model.User{}, ErrUnauthenticated
	}
	return *u, nil
}

// ResolveAdmin resolves the caller and requires the admin role.  A missing
// identity is ErrUnauthenticated, a non-admin is ErrForbidden.
func (a *Authenticator) ResolveAdmin(r *http.Request) (model.User, error) {
	u, err := a.ResolveRequired(r)
	if err != nil {
		return model.User{}, err
	}
	if !u.IsAdmin() {
		return model.User{}, ErrForbidden
	}
	return u, nil
}
