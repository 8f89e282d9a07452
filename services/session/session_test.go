package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cibnlibrary/models"
	"cibnlibrary/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ *MemoryStore }

func (failingStore) Get(context.Context, string) (*models.Session, error) {
	return nil, errors.New("redis: connection refused")
}

func TestCreateAndLookup(t *testing.T) {
	svc := NewService(NewMemoryStore(), time.Hour)
	user := models.User{ID: 1, Email: "ada@cibng.org"}

	token, sess, err := svc.Create(context.Background(), user, "up-token")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "up-token", sess.UpstreamToken)

	got, err := svc.Lookup(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user, got.User)
}

func TestLookupWithoutTokenIsNoSession(t *testing.T) {
	svc := NewService(NewMemoryStore(), time.Hour)

	_, err := svc.Lookup(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = svc.Lookup(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLookupAfterRevoke(t *testing.T) {
	svc := NewService(NewMemoryStore(), time.Hour)
	token, _, err := svc.Create(context.Background(), models.User{Email: "a@b.c"}, "")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), token))
	_, err = svc.Lookup(context.Background(), token)
	assert.ErrorIs(t, err, ErrNoSession)

	assert.NoError(t, svc.Revoke(context.Background(), "not-a-token"))
}

func TestLookupTokenForUnknownSession(t *testing.T) {
	svc := NewService(NewMemoryStore(), time.Hour)
	token, err := utils.GenerateToken("missing-id", "a@b.c", time.Hour)
	require.NoError(t, err)

	_, err = svc.Lookup(context.Background(), token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(context.Background(), &models.Session{ID: "s1"}, time.Minute))
	_, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStoreFailureIsNotNoSession(t *testing.T) {
	svc := NewService(&failingStore{MemoryStore: NewMemoryStore()}, time.Hour)
	token, err := utils.GenerateToken("id", "a@b.c", time.Hour)
	require.NoError(t, err)

	_, err = svc.Lookup(context.Background(), token)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoSession))
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := TokenFromRequest(req)
	assert.False(t, ok)

	req.AddCookie(&http.Cookie{Name: utils.TokenCookieName, Value: "cookie-token"})
	token, ok := TokenFromRequest(req)
	assert.True(t, ok)
	assert.Equal(t, "cookie-token", token)

	req.Header.Set("Authorization", "Bearer header-token")
	token, ok = TokenFromRequest(req)
	assert.True(t, ok)
	assert.Equal(t, "header-token", token)
}
