package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/types"
)

func exportTestResume(t *testing.T, store *mockStore, userID uuid.UUID) *types.Resume {
	t.Helper()
	r := types.DefaultResume("Export Me")
	r.UserID = userID
	created, err := store.CreateResume(context.Background(), r)
	require.NoError(t, err)
	return created
}

func TestExportResume_PDFAttachment(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, store)
	userID, token := newTestUser(t, s, store)
	created := exportTestResume(t, store, userID)

	s.exporter = &fakeExporter{result: &export.Result{
		Mode:     export.ModePDF,
		Filename: "ada_lovelace_modern_2026-08-31.pdf",
		PDF:      []byte("%PDF-1.4"),
	}}

	rec := doJSON(t, s, http.MethodPost, "/api/resume/"+created.ID.String()+"/export", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "ada_lovelace_modern_2026-08-31.pdf")
	assert.Equal(t, "%PDF-1.4", rec.Body.String())
}

func TestExportResume_PrintFallbackResponse(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, store)
	userID, token := newTestUser(t, s, store)
	created := exportTestResume(t, store, userID)

	s.exporter = &fakeExporter{result: &export.Result{
		Mode:     export.ModePrint,
		Filename: "resume.pdf",
		HTML:     "<html><body>print me<script>window.print()</script></body></html>",
		Message:  "PDF generation is unavailable right now.",
	}}

	rec := doJSON(t, s, http.MethodPost, "/api/resume/"+created.ID.String()+"/export", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.NotEmpty(t, rec.Header().Get("X-Export-Notice"))
	assert.Contains(t, rec.Body.String(), "window.print()")
}

func TestExportResume_BusyIs409(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, store)
	userID, token := newTestUser(t, s, store)
	created := exportTestResume(t, store, userID)

	s.exporter = &fakeExporter{err: export.ErrExportInFlight}

	rec := doJSON(t, s, http.MethodPost, "/api/resume/"+created.ID.String()+"/export", token, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestExportResume_UnownedIs404(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, store)
	ownerID, _ := newTestUser(t, s, store)
	_, otherToken := newTestUser(t, s, store)
	created := exportTestResume(t, store, ownerID)

	rec := doJSON(t, s, http.MethodPost, "/api/resume/"+created.ID.String()+"/export", otherToken, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadThumbnailSink_PersistsLinkAndRemovesOld(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, store)
	userID, _ := newTestUser(t, s, store)
	created := exportTestResume(t, store, userID)

	sink := &uploadThumbnailSink{store: store, files: s.uploads}

	require.NoError(t, sink.SaveThumbnail(context.Background(), created, []byte("png-1")))
	first, err := store.GetResume(context.Background(), created.ID, userID)
	require.NoError(t, err)
	require.NotEmpty(t, first.ThumbnailLink)

	time.Sleep(2 * time.Millisecond) // stored names are millisecond-stamped
	require.NoError(t, sink.SaveThumbnail(context.Background(), first, []byte("png-2")))
	second, err := store.GetResume(context.Background(), created.ID, userID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ThumbnailLink, second.ThumbnailLink)
}
