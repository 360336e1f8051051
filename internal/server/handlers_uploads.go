package server

import (
	"log"
	"mime/multipart"
	"net/http"

	"github.com/jonathan/resume-builder/internal/uploads"
)

// maxUploadBytes caps the multipart form held in memory for image uploads.
const maxUploadBytes = 10 << 20 // 10 MiB

// imagePart is one opened multipart image slot.
type imagePart struct {
	file   multipart.File
	header *multipart.FileHeader
}

func (p *imagePart) contentType() string {
	return p.header.Header.Get("Content-Type")
}

// handleUploadImages accepts multipart "thumbnail" and "profileImage" parts.
// The two slots are independent: each present part is stored and persisted on
// its own, and a request may carry either one or both. A rejected request
// stores no file and changes nothing: every part is type-checked before any
// write, and replaced files are deleted only after the new links are
// persisted.
func (s *Server) handleUploadImages(w http.ResponseWriter, r *http.Request) {
	resumeID, userID, ok := s.resumeOwner(w, r)
	if !ok {
		return
	}

	resume, err := s.db.GetResume(r.Context(), resumeID, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get resume")
		log.Printf("[UPLOAD] get %s failed: %v", resumeID, err)
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	thumb, err := openImagePart(r, "thumbnail")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid thumbnail part: "+err.Error())
		return
	}
	if thumb != nil {
		defer thumb.file.Close()
	}
	profile, err := openImagePart(r, "profileImage")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid profileImage part: "+err.Error())
		return
	}
	if profile != nil {
		defer profile.file.Close()
	}

	if thumb == nil && profile == nil {
		s.errorResponse(w, http.StatusBadRequest, "No image part provided: expected thumbnail or profileImage")
		return
	}

	// Vet every present part before anything touches disk; one bad part
	// rejects the whole request with no side effects.
	for _, p := range []*imagePart{thumb, profile} {
		if p == nil {
			continue
		}
		if err := uploads.CheckType(p.contentType()); err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
	}

	var written []string
	discard := func() {
		for _, name := range written {
			if err := s.uploads.Remove(name); err != nil {
				log.Printf("[UPLOAD] failed to discard %s: %v", name, err)
			}
		}
	}

	var thumbnailURL, profileURL string
	if thumb != nil {
		stored, err := s.uploads.Save(thumb.header.Filename, thumb.contentType(), thumb.file)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		written = append(written, stored)
		thumbnailURL = s.uploads.PublicURL(stored)
	}
	if profile != nil {
		stored, err := s.uploads.Save(profile.header.Filename, profile.contentType(), profile.file)
		if err != nil {
			discard()
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		written = append(written, stored)
		profileURL = s.uploads.PublicURL(stored)
	}

	updated, err := s.db.SetResumeImages(r.Context(), resumeID, userID, thumbnailURL, profileURL)
	if err != nil {
		discard()
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save image links")
		log.Printf("[UPLOAD] persist %s failed: %v", resumeID, err)
		return
	}
	if updated == nil {
		discard()
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	// Replaced files go only once the new links are durable.
	for _, old := range []string{
		replacedFile(thumbnailURL, resume.ThumbnailLink),
		replacedFile(profileURL, resume.ProfileInfo.ProfilePreviewURL),
	} {
		if old == "" {
			continue
		}
		if err := s.uploads.Remove(old); err != nil {
			log.Printf("[UPLOAD] failed to remove old file %s: %v", old, err)
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"thumbnailLink":     updated.ThumbnailLink,
		"profilePreviewUrl": updated.ProfileInfo.ProfilePreviewURL,
	})
}

// openImagePart opens one named form part. An absent part is (nil, nil).
func openImagePart(r *http.Request, field string) (*imagePart, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &imagePart{file: file, header: header}, nil
}

// replacedFile returns the old URL for a slot that was just overwritten, or
// "" when the slot was untouched or previously empty.
func replacedFile(newURL, oldURL string) string {
	if newURL == "" || oldURL == "" {
		return ""
	}
	return oldURL
}
