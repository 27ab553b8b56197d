package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkhandAgrawal/Bartr/internal/domain"
	"github.com/AkhandAgrawal/Bartr/internal/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, func() string { return token }, logging.Nop())
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, "tok-123")

	require.NoError(t, c.get(context.Background(), "/v1/user/profile/me", nil, &domain.UserProfile{}))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, "")

	require.NoError(t, c.get(context.Background(), "/v1/auth/ping", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestClient_UnauthorizedMapsToSentinel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "stale")

	var hooked bool
	c.OnUnauthorized(func() { hooked = true })

	err := c.get(context.Background(), "/v1/user/profile/me", nil, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, hooked)
}

func TestClient_ServerErrorIncludesBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("username taken"))
	}, "")

	err := c.post(context.Background(), "/v1/user/profile/signup/public", domain.SignupRequest{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "username taken")
}

func TestClient_DecodesResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.UserProfile{KeycloakID: "kc-1", UserName: "ada"})
	}, "")

	var out domain.UserProfile
	require.NoError(t, c.get(context.Background(), "/v1/user/profile/me", nil, &out))
	assert.Equal(t, "ada", out.UserName)
}

func TestClient_EmptyBodyIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, "")

	var out domain.UserProfile
	assert.NoError(t, c.get(context.Background(), "/v1/user/profile/me", nil, &out))
}

func TestUserService_Login(t *testing.T) {
	var gotReq domain.LoginRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/auth/login/public", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(domain.LoginResponse{AccessToken: "a", RefreshToken: "r"})
	}))
	t.Cleanup(srv.Close)

	users := NewUserService(NewClient(srv.URL, nil, logging.Nop()))
	resp, err := users.Login(context.Background(), "ada", "pw")
	require.NoError(t, err)
	assert.Equal(t, "ada", gotReq.Username)
	assert.Equal(t, "a", resp.AccessToken)
	assert.Equal(t, "r", resp.RefreshToken)
}

func TestChatService_History(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "u1", r.URL.Query().Get("senderId"))
		assert.Equal(t, "u2", r.URL.Query().Get("receiverId"))
		json.NewEncoder(w).Encode([]domain.Message{{ID: "m1", SenderID: "u2", ReceiverID: "u1", Content: "hi"}})
	}))
	t.Cleanup(srv.Close)

	chat := NewChatService(NewClient(srv.URL, nil, logging.Nop()))
	msgs, err := chat.History(context.Background(), "u1", "u2")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Content)
}

func TestChatService_CheckMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/check-match/u1/u2", r.URL.Path)
		w.Write([]byte("true"))
	}))
	t.Cleanup(srv.Close)

	chat := NewChatService(NewClient(srv.URL, nil, logging.Nop()))
	matched, err := chat.CheckMatch(context.Background(), "u1", "u2")
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestMatchingService_Swipe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/swipe", r.URL.Path)
		var req domain.SwipeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, domain.SwipeRight, req.Action)
		json.NewEncoder(w).Encode(domain.SwipeResponse{Matched: true})
	}))
	t.Cleanup(srv.Close)

	matching := NewMatchingService(NewClient(srv.URL, nil, logging.Nop()))
	resp, err := matching.Swipe(context.Background(), domain.SwipeRequest{
		UserID: "u1", SwipedUserID: "u2", Action: domain.SwipeRight,
	})
	require.NoError(t, err)
	assert.True(t, resp.Matched)
}
