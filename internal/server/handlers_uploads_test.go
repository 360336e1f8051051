package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

// multipartImage builds a multipart body with the given image parts.
func multipartImage(t *testing.T, parts map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for field, contentType := range parts {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+field+`.png"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func doUpload(t *testing.T, s *Server, resumeID, token string, parts map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartImage(t, parts)
	req := httptest.NewRequest(http.MethodPut, "/api/resume/"+resumeID+"/upload-images", body)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	return rec
}

func TestUploadImages_ThumbnailOnly(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, store)
	userID, token := newTestUser(t, s, store)

	r := types.DefaultResume("Upload")
	r.UserID = userID
	created, err := store.CreateResume(context.Background(), r)
	require.NoError(t, err)

	rec := doUpload(t, s, created.ID.String(), token, map[string]string{"thumbnail": "image/png"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp["thumbnailLink"])
	// The profile slot is independent and stays untouched.
	assert.Empty(t, resp["profilePreviewUrl"])

	stored, err := store.GetResume(context.Background(), created.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, resp["thumbnailLink"], stored.ThumbnailLink)
	assert.Empty(t, stored.ProfileInfo.ProfilePreviewURL)
}

func TestUploadImages_BothSlots(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, store)
	userID, token := newTestUser(t, s, store)

	r := types.DefaultResume("Upload")
	r.UserID = userID
	created, err := store.CreateResume(context.Background(), r)
	require.NoError(t, err)

	rec := doUpload(t, s, created.ID.String(), token, map[string]string{
		"thumbnail":    "image/png",
		"profileImage": "image/jpeg",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp["thumbnailLink"])
	assert.NotEmpty(t, resp["profilePreviewUrl"])
}

func TestUploadImages_RejectsNonImage(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, store)
	userID, token := newTestUser(t, s, store)

	r := types.DefaultResume("Upload")
	r.UserID = userID
	created, err := store.CreateResume(context.Background(), r)
	require.NoError(t, err)

	rec := doUpload(t, s, created.ID.String(), token, map[string]string{"thumbnail": "application/pdf"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImages_BadPartLeavesEverythingUntouched(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, store)
	userID, token := newTestUser(t, s, store)

	r := types.DefaultResume("Upload")
	r.UserID = userID
	created, err := store.CreateResume(context.Background(), r)
	require.NoError(t, err)

	// Seed an existing thumbnail on disk and on the record.
	oldName, err := s.uploads.SaveBytes("thumb.png", []byte("old thumbnail"))
	require.NoError(t, err)
	oldURL := s.uploads.PublicURL(oldName)
	_, err = store.SetResumeImages(context.Background(), created.ID, userID, oldURL, "")
	require.NoError(t, err)

	// Valid thumbnail plus invalid profile image: the whole request fails.
	rec := doUpload(t, s, created.ID.String(), token, map[string]string{
		"thumbnail":    "image/png",
		"profileImage": "image/gif",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// The old file survives and no new file was written.
	entries, err := os.ReadDir(s.uploads.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, oldName, entries[0].Name())

	stored, err := store.GetResume(context.Background(), created.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, oldURL, stored.ThumbnailLink)
}

func TestUploadImages_NoPartsIs400(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, store)
	userID, token := newTestUser(t, s, store)

	r := types.DefaultResume("Upload")
	r.UserID = userID
	created, err := store.CreateResume(context.Background(), r)
	require.NoError(t, err)

	rec := doUpload(t, s, created.ID.String(), token, map[string]string{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImages_UnownedIs404(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, store)
	ownerID, _ := newTestUser(t, s, store)
	_, otherToken := newTestUser(t, s, store)

	r := types.DefaultResume("Upload")
	r.UserID = ownerID
	created, err := store.CreateResume(context.Background(), r)
	require.NoError(t, err)

	rec := doUpload(t, s, created.ID.String(), otherToken, map[string]string{"thumbnail": "image/png"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadImages_UnknownResume(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, store)
	_, token := newTestUser(t, s, store)

	rec := doUpload(t, s, uuid.NewString(), token, map[string]string{"thumbnail": "image/png"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
