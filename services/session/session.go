// Package session is the server-side session provider: it issues signed
// session tokens, stores session records, and resolves the session behind a
// request.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cibnlibrary/models"
	"cibnlibrary/utils"

	"github.com/google/uuid"
)

// ErrNoSession means the request carries no usable session. Lookups wrap it
// with the reason (missing token, bad signature, expired record).
var ErrNoSession = errors.New("no session")

// Provider resolves the session behind a request.
type Provider interface {
	FromRequest(r *http.Request) (*models.Session, error)
}

// Service implements Provider on top of a Store.
type Service struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// NewService creates a session service issuing sessions that live for ttl.
func NewService(store Store, ttl time.Duration) *Service {
	return &Service{store: store, ttl: ttl, now: time.Now}
}

// TTL returns the session lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Create stores a new session for user and returns its signed token.
func (s *Service) Create(ctx context.Context, user models.User, upstreamToken string) (string, *models.Session, error) {
	id := uuid.NewString()
	token, err := utils.GenerateToken(id, user.Email, s.ttl)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	now := s.now()
	sess := &models.Session{
		ID:            id,
		User:          user,
		TokenHash:     utils.HashToken(token),
		UpstreamToken: upstreamToken,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.ttl),
	}
	if err := s.store.Save(ctx, sess, s.ttl); err != nil {
		return "", nil, err
	}
	return token, sess, nil
}

// Lookup resolves a session token. Invalid tokens and missing or expired
// records wrap ErrNoSession; store failures are returned as is.
func (s *Service) Lookup(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	id, err := utils.ExtractIDFromToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token: %v", ErrNoSession, err)
	}

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil, fmt.Errorf("%w: session %s not found", ErrNoSession, id)
		}
		return nil, err
	}
	if sess.TokenHash != utils.HashToken(token) {
		return nil, fmt.Errorf("%w: token mismatch", ErrNoSession)
	}
	if sess.Expired(s.now()) {
		return nil, fmt.Errorf("%w: session expired", ErrNoSession)
	}
	return sess, nil
}

// FromRequest resolves the session carried by r.
func (s *Service) FromRequest(r *http.Request) (*models.Session, error) {
	token, _ := TokenFromRequest(r)
	return s.Lookup(r.Context(), token)
}

// Revoke deletes the session behind token. Unknown tokens are ignored.
func (s *Service) Revoke(ctx context.Context, token string) error {
	id, err := utils.ExtractIDFromToken(token)
	if err != nil {
		return nil
	}
	return s.store.Delete(ctx, id)
}

// TokenFromRequest returns the session token from the Authorization header
// or, failing that, the token cookie.
func TokenFromRequest(r *http.Request) (string, bool) {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")); token != "" {
			return token, true
		}
	}
	cookie, err := r.Cookie(utils.TokenCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
