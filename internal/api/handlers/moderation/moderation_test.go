package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Agora/internal/api/middleware"
	"Agora/internal/core/platform"
	"Agora/internal/core/posts"
)

const (
	ownerDID = "did:plc:owner"
	modDID   = "did:plc:moderator"
	aliceDID = "did:plc:alice"
	bobDID   = "did:plc:bob"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func setup(t *testing.T) (platform.Service, int64) {
	t.Helper()
	svc, err := platform.NewService(ownerDID)
	require.NoError(t, err)
	p, err := svc.CreatePost(context.Background(), aliceDID, "hello", "")
	require.NoError(t, err)
	return svc, p.ID
}

func postJSON(t *testing.T, did string, body interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/xrpc/social.agora.moderation", bytes.NewReader(raw))
	if did != "" {
		req = req.WithContext(middleware.SetTestUserDID(req.Context(), did))
	}
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestModerationWorkflow(t *testing.T) {
	svc, postID := setup(t)
	reports := NewReportHandler(svc)
	remove := NewRemovePostHandler(svc)
	mods := NewModeratorsHandler(svc)

	// Owner appoints a moderator
	w := httptest.NewRecorder()
	mods.HandleAdd(w, postJSON(t, ownerDID, ModeratorInput{Identity: modDID}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Removing an unflagged post is a state conflict
	w = httptest.NewRecorder()
	remove.HandleRemovePost(w, postJSON(t, modDID, PostInput{PostID: postID}))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Post is not flagged", decodeError(t, w).Message)

	// One report flags
	w = httptest.NewRecorder()
	reports.HandleReport(w, postJSON(t, bobDID, PostInput{PostID: postID}))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	reports.HandleGetReports(w, httptest.NewRequest(http.MethodGet, "/?postId=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var info posts.ReportsInfo
	require.NoError(t, json.NewDecoder(w.Body).Decode(&info))
	assert.True(t, info.Flagged)
	assert.True(t, info.Visible)
	assert.Equal(t, []string{bobDID}, info.Reporters)
	assert.Empty(t, info.ModeratorAgent)

	// Non-moderators cannot remove
	w = httptest.NewRecorder()
	remove.HandleRemovePost(w, postJSON(t, bobDID, PostInput{PostID: postID}))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized", decodeError(t, w).Message)

	w = httptest.NewRecorder()
	remove.HandleRemovePost(w, postJSON(t, modDID, PostInput{PostID: postID}))
	require.Equal(t, http.StatusOK, w.Code)

	// Removed posts are gone from every read
	w = httptest.NewRecorder()
	reports.HandleGetReports(w, httptest.NewRequest(http.MethodGet, "/?postId=1", nil))
	assert.Equal(t, http.StatusGone, w.Code)
	assert.Equal(t, "Post is not visible", decodeError(t, w).Message)
}

func TestModeratorsHandler_OwnerOnly(t *testing.T) {
	svc, _ := setup(t)
	mods := NewModeratorsHandler(svc)

	w := httptest.NewRecorder()
	mods.HandleAdd(w, postJSON(t, aliceDID, ModeratorInput{Identity: bobDID}))
	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "NotAuthorized", body.Error)
	assert.Equal(t, "Not authorized", body.Message)

	w = httptest.NewRecorder()
	mods.HandleRemove(w, postJSON(t, aliceDID, ModeratorInput{Identity: bobDID}))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestModeratorsHandler_IdentityValidation(t *testing.T) {
	svc, _ := setup(t)
	mods := NewModeratorsHandler(svc)

	// Empty identity reaches the platform, which answers with its own reason
	w := httptest.NewRecorder()
	mods.HandleAdd(w, postJSON(t, ownerDID, ModeratorInput{Identity: ""}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot add zero address", decodeError(t, w).Message)

	w = httptest.NewRecorder()
	mods.HandleAdd(w, postJSON(t, ownerDID, ModeratorInput{Identity: "not-a-did"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "identity must be a valid DID", decodeError(t, w).Message)

	w = httptest.NewRecorder()
	mods.HandleRemove(w, postJSON(t, ownerDID, ModeratorInput{Identity: bobDID}))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Address is not a moderator", decodeError(t, w).Message)
}

func TestModeratorsHandler_List(t *testing.T) {
	svc, _ := setup(t)
	mods := NewModeratorsHandler(svc)
	ctx := context.Background()

	w := httptest.NewRecorder()
	mods.HandleList(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"owner":"did:plc:owner","moderators":[]}`, w.Body.String())

	require.NoError(t, svc.AddModerator(ctx, ownerDID, "did:plc:zed"))
	require.NoError(t, svc.AddModerator(ctx, ownerDID, modDID))

	w = httptest.NewRecorder()
	mods.HandleList(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out ListModeratorsOutput
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Equal(t, []string{modDID, "did:plc:zed"}, out.Moderators)
}

func TestReportHandler_RequiresAuth(t *testing.T) {
	svc, postID := setup(t)
	reports := NewReportHandler(svc)

	w := httptest.NewRecorder()
	reports.HandleReport(w, postJSON(t, "", PostInput{PostID: postID}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
