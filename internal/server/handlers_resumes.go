package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

// authenticatedUserID reads the user ID the auth middleware stored on the
// request context.
func authenticatedUserID(r *http.Request) (uuid.UUID, error) {
	return middleware.GetUserID(r)
}


// ResumeListItem is one entry of GET /api/resume: the record plus its
// computed completion percentage for the dashboard.
type ResumeListItem struct {
	types.Resume
	Completion int `json:"completion"`
}

// resumeOwner extracts the authenticated user and the {id} path value.
func (s *Server) resumeOwner(w http.ResponseWriter, r *http.Request) (resumeID, userID uuid.UUID, ok bool) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}

	resumeID, err = uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return resumeID, userID, true
}

// handleCreateResume creates a resume from the default skeleton. Sections the
// caller supplies in the body replace their skeleton counterparts.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if err := schemas.ValidateUpdate(body); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var sections map[types.Section]json.RawMessage
	if err := json.Unmarshal(body, &sections); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var title string
	if raw, ok := sections[types.SectionTitle]; ok {
		if err := json.Unmarshal(raw, &title); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid title")
			return
		}
		delete(sections, types.SectionTitle)
	}
	if title == "" {
		s.errorResponse(w, http.StatusBadRequest, "Title is required")
		return
	}

	resume := types.DefaultResume(title)
	resume.UserID = userID
	for section, raw := range sections {
		if err := types.ApplySection(resume, section, raw); err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
	}

	created, err := s.db.CreateResume(r.Context(), resume)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create resume")
		log.Printf("[RESUME] create failed for user %s: %v", userID, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, created)
}

// handleListResumes returns the caller's resumes, most recently updated
// first, each with its completion score.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resumes, err := s.db.ListResumes(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list resumes")
		log.Printf("[RESUME] list failed for user %s: %v", userID, err)
		return
	}

	items := make([]ResumeListItem, 0, len(resumes))
	for i := range resumes {
		items = append(items, ResumeListItem{
			Resume:     resumes[i],
			Completion: types.CompletionScore(&resumes[i]),
		})
	}

	s.jsonResponse(w, http.StatusOK, items)
}

// handleGetResume returns one owned resume.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resumeID, userID, ok := s.resumeOwner(w, r)
	if !ok {
		return
	}

	resume, err := s.db.GetResume(r.Context(), resumeID, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get resume")
		log.Printf("[RESUME] get %s failed: %v", resumeID, err)
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

// handleUpdateResume applies a partial update: the body is schema-validated,
// then each named top-level section replaces the stored one wholesale.
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	resumeID, userID, ok := s.resumeOwner(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := schemas.ValidateUpdate(body); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var sections map[types.Section]json.RawMessage
	if err := json.Unmarshal(body, &sections); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resume, err := s.db.GetResume(r.Context(), resumeID, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get resume")
		log.Printf("[RESUME] get %s failed: %v", resumeID, err)
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	session := editor.NewSession(sessionSaver{s.db}, resume)
	for section, raw := range sections {
		if err := session.ApplyPartialUpdate(section, raw); err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
	}

	updated, err := session.Save(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update resume")
		log.Printf("[RESUME] update %s failed: %v", resumeID, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteResume removes an owned resume and, best effort, its stored
// images.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	resumeID, userID, ok := s.resumeOwner(w, r)
	if !ok {
		return
	}

	resume, err := s.db.GetResume(r.Context(), resumeID, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get resume")
		log.Printf("[RESUME] get %s failed: %v", resumeID, err)
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	deleted, err := s.db.DeleteResume(r.Context(), resumeID, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete resume")
		log.Printf("[RESUME] delete %s failed: %v", resumeID, err)
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	// Asset cleanup never blocks the delete.
	if s.uploads != nil {
		for _, asset := range []string{resume.ThumbnailLink, resume.ProfileInfo.ProfilePreviewURL} {
			if asset == "" {
				continue
			}
			if err := s.uploads.Remove(asset); err != nil {
				log.Printf("[RESUME] asset cleanup failed for %s: %v", resumeID, err)
			}
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// sessionSaver adapts the Store to the editor's Saver. A nil row from the
// store means the record vanished (or changed owner) mid-session.
type sessionSaver struct {
	store Store
}

func (s sessionSaver) UpdateResume(ctx context.Context, r *types.Resume) (*types.Resume, error) {
	updated, err := s.store.UpdateResume(ctx, r)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &ErrResumeNotFound{ResumeID: r.ID}
	}
	return updated, nil
}
