package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Agora/internal/api/handlers/stream"
	"Agora/internal/api/middleware"
	"Agora/internal/core/platform"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

const (
	ownerDID = "did:plc:owner"
	aliceDID = "did:plc:alice"
	modDID   = "did:plc:moderator"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	hub := stream.NewHub(4)
	svc, err := platform.NewService(ownerDID, platform.WithObserver(hub))
	require.NoError(t, err)

	auth := middleware.NewAuthMiddleware(secret, "")
	r := chi.NewRouter()
	RegisterPostRoutes(r, svc, auth)
	RegisterCommentRoutes(r, svc, auth)
	RegisterModerationRoutes(r, svc, auth)
	RegisterStreamRoutes(r, hub)
	return r
}

func call(t *testing.T, h http.Handler, method, path, did string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if did != "" {
		token, err := middleware.IssueToken(secret, "", did, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRoutes_EndToEnd(t *testing.T) {
	r := newRouter(t)

	w := call(t, r, http.MethodPost, "/xrpc/social.agora.post.create", "", map[string]string{"caption": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "writes require a token")

	w = call(t, r, http.MethodPost, "/xrpc/social.agora.post.create", aliceDID, map[string]string{"caption": "hi"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(t, r, http.MethodGet, "/xrpc/social.agora.post.get?id=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = call(t, r, http.MethodPost, "/xrpc/social.agora.comment.create", aliceDID, map[string]interface{}{"postId": 1, "content": "first"})
	require.Equal(t, http.StatusOK, w.Code)

	w = call(t, r, http.MethodGet, "/xrpc/social.agora.comment.list?postId=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "first")

	w = call(t, r, http.MethodPost, "/xrpc/social.agora.moderation.addModerator", ownerDID, map[string]string{"identity": modDID})
	require.Equal(t, http.StatusOK, w.Code)

	w = call(t, r, http.MethodPost, "/xrpc/social.agora.moderation.report", aliceDID, map[string]int{"postId": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = call(t, r, http.MethodPost, "/xrpc/social.agora.moderation.removePost", modDID, map[string]int{"postId": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = call(t, r, http.MethodGet, "/xrpc/social.agora.post.get?id=1", "", nil)
	assert.Equal(t, http.StatusGone, w.Code)

	w = call(t, r, http.MethodGet, "/xrpc/social.agora.moderation.listModerators", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"owner":"did:plc:owner","moderators":["did:plc:moderator"]}`, w.Body.String())
}

func TestRoutes_MethodMismatch(t *testing.T) {
	r := newRouter(t)

	w := call(t, r, http.MethodGet, "/xrpc/social.agora.post.create", aliceDID, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
