package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cibnlibrary/services/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ada@cibng.org", req.Email)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"up-token","token_type":"bearer","user":{"id":7,"email":"ada@cibng.org","full_name":"Ada O."}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/v1/", time.Second)
	resp, err := c.Login(context.Background(), LoginRequest{Email: "ada@cibng.org", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "up-token", resp.AccessToken)
	assert.Equal(t, int64(7), resp.User.ID)
	assert.Equal(t, "Ada O.", resp.User.FullName)
}

func TestLoginErrorBodyIsNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"msg":"field required","loc":["body","password"]}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Login(context.Background(), LoginRequest{Email: "ada@cibng.org"})
	require.Error(t, err)

	var re *apierror.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusUnprocessableEntity, re.Status())
	assert.False(t, apierror.IsNetworkError(err))
	assert.Equal(t, "body.password: field required", apierror.Message(err, "Login failed"))
}

func TestMeSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer up-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":3,"email":"m@cibng.org"}`))
	}))
	defer srv.Close()

	user, err := NewClient(srv.URL, time.Second).Me(context.Background(), "up-token")
	require.NoError(t, err)
	assert.Equal(t, "m@cibng.org", user.Email)
}

func TestUnreachableBackendIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).CIBNLogin(context.Background(), CIBNLoginRequest{EmployeeID: "E1", Password: "pw"})
	require.Error(t, err)
	assert.True(t, apierror.IsNetworkError(err))
	assert.Equal(t, "Network Error", apierror.Message(err, "Login failed"))
}
