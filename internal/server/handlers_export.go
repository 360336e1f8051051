package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/uploads"
)

// handleExportResume runs the export pipeline for an owned resume. A PDF
// result streams as an attachment; a print-fallback result returns the
// print-ready HTML with a notice header so the client can open it.
func (s *Server) handleExportResume(w http.ResponseWriter, r *http.Request) {
	resumeID, userID, ok := s.resumeOwner(w, r)
	if !ok {
		return
	}

	resume, err := s.db.GetResume(r.Context(), resumeID, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get resume")
		log.Printf("[EXPORT] get %s failed: %v", resumeID, err)
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	result, err := s.exporter.Export(r.Context(), resume)
	if err != nil {
		if errors.Is(err, export.ErrExportInFlight) {
			s.errorResponse(w, http.StatusConflict, "An export for this resume is already running")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Export failed")
		log.Printf("[EXPORT] export %s failed: %v", resumeID, err)
		return
	}

	switch result.Mode {
	case export.ModePDF:
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(result.PDF); err != nil {
			log.Printf("[EXPORT] failed to stream pdf for %s: %v", resumeID, err)
		}
	case export.ModePrint:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("X-Export-Notice", result.Message)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(result.HTML)); err != nil {
			log.Printf("[EXPORT] failed to stream print html for %s: %v", resumeID, err)
		}
	default:
		s.errorResponse(w, http.StatusInternalServerError, "Unknown export result")
	}
}

// uploadThumbnailSink persists export-derived thumbnails: file to the upload
// store, link onto the resume row, old file removed best effort.
type uploadThumbnailSink struct {
	store Store
	files *uploads.Store
}

func (t *uploadThumbnailSink) SaveThumbnail(ctx context.Context, resume *types.Resume, pngData []byte) error {
	stored, err := t.files.SaveBytes("thumbnail.png", pngData)
	if err != nil {
		return err
	}

	oldLink := resume.ThumbnailLink
	updated, err := t.store.SetResumeImages(ctx, resume.ID, resume.UserID, t.files.PublicURL(stored), "")
	if err != nil {
		return err
	}
	if updated == nil {
		return &ErrResumeNotFound{ResumeID: resume.ID}
	}

	if oldLink != "" {
		if err := t.files.Remove(oldLink); err != nil {
			log.Printf("[EXPORT] failed to remove old thumbnail %s: %v", oldLink, err)
		}
	}
	return nil
}
