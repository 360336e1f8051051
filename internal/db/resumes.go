package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-builder/internal/types"
)

const resumeColumns = `id, user_id, title, thumbnail_link, template, profile_info,
	contact_info, work_experience, education, skills, projects, certifications,
	languages, interests, created_at, updated_at`

// CreateResume inserts a new resume record and returns the stored row.
func (db *DB) CreateResume(ctx context.Context, r *types.Resume) (*types.Resume, error) {
	r.Normalize()
	cols, err := marshalSections(r)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, title, thumbnail_link, template, profile_info,
			contact_info, work_experience, education, skills, projects, certifications,
			languages, interests)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+resumeColumns,
		r.UserID, r.Title, r.ThumbnailLink,
		cols.template, cols.profileInfo, cols.contactInfo, cols.workExperience,
		cols.education, cols.skills, cols.projects, cols.certifications,
		cols.languages, cols.interests,
	)

	created, err := scanResume(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return created, nil
}

// GetResume retrieves a resume by ID, filtered by owner. Returns nil when the
// record is absent or owned by someone else; callers cannot tell the two
// apart.
func (db *DB) GetResume(ctx context.Context, id, userID uuid.UUID) (*types.Resume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)

	r, err := scanResume(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// ListResumes retrieves all resumes owned by a user, most recently updated
// first.
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]types.Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []types.Resume{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	return resumes, rows.Err()
}

// UpdateResume persists the full record, filtered by (id, user_id), bumping
// updated_at. Returns the stored row, or nil when the record is absent or
// owned by someone else.
func (db *DB) UpdateResume(ctx context.Context, r *types.Resume) (*types.Resume, error) {
	r.Normalize()
	cols, err := marshalSections(r)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE resumes SET title = $3, thumbnail_link = $4, template = $5,
			profile_info = $6, contact_info = $7, work_experience = $8, education = $9,
			skills = $10, projects = $11, certifications = $12, languages = $13,
			interests = $14, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+resumeColumns,
		r.ID, r.UserID, r.Title, r.ThumbnailLink,
		cols.template, cols.profileInfo, cols.contactInfo, cols.workExperience,
		cols.education, cols.skills, cols.projects, cols.certifications,
		cols.languages, cols.interests,
	)

	updated, err := scanResume(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return updated, nil
}

// SetResumeImages persists new image URLs for a resume. Empty arguments leave
// the corresponding slot unchanged.
func (db *DB) SetResumeImages(ctx context.Context, id, userID uuid.UUID, thumbnailLink, profilePreviewURL string) (*types.Resume, error) {
	r, err := db.GetResume(ctx, id, userID)
	if err != nil || r == nil {
		return r, err
	}

	if thumbnailLink != "" {
		r.ThumbnailLink = thumbnailLink
	}
	if profilePreviewURL != "" {
		r.ProfileInfo.ProfilePreviewURL = profilePreviewURL
	}
	return db.UpdateResume(ctx, r)
}

// DeleteResume removes an owned resume. Returns false when the record is
// absent or owned by someone else.
func (db *DB) DeleteResume(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

type sectionColumns struct {
	template       []byte
	profileInfo    []byte
	contactInfo    []byte
	workExperience []byte
	education      []byte
	skills         []byte
	projects       []byte
	certifications []byte
	languages      []byte
	interests      []byte
}

func marshalSections(r *types.Resume) (*sectionColumns, error) {
	cols := &sectionColumns{}
	for _, field := range []struct {
		name string
		dst  *[]byte
		src  any
	}{
		{"template", &cols.template, r.Template},
		{"profile_info", &cols.profileInfo, r.ProfileInfo},
		{"contact_info", &cols.contactInfo, r.ContactInfo},
		{"work_experience", &cols.workExperience, r.WorkExperience},
		{"education", &cols.education, r.Education},
		{"skills", &cols.skills, r.Skills},
		{"projects", &cols.projects, r.Projects},
		{"certifications", &cols.certifications, r.Certifications},
		{"languages", &cols.languages, r.Languages},
		{"interests", &cols.interests, r.Interests},
	} {
		data, err := json.Marshal(field.src)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", field.name, err)
		}
		*field.dst = data
	}
	return cols, nil
}

func scanResume(row pgx.Row) (*types.Resume, error) {
	var r types.Resume
	var template, profileInfo, contactInfo, workExperience, education,
		skills, projects, certifications, languages, interests []byte

	err := row.Scan(&r.ID, &r.UserID, &r.Title, &r.ThumbnailLink,
		&template, &profileInfo, &contactInfo, &workExperience, &education,
		&skills, &projects, &certifications, &languages, &interests,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}

	for _, field := range []struct {
		name string
		data []byte
		dst  any
	}{
		{"template", template, &r.Template},
		{"profile_info", profileInfo, &r.ProfileInfo},
		{"contact_info", contactInfo, &r.ContactInfo},
		{"work_experience", workExperience, &r.WorkExperience},
		{"education", education, &r.Education},
		{"skills", skills, &r.Skills},
		{"projects", projects, &r.Projects},
		{"certifications", certifications, &r.Certifications},
		{"languages", languages, &r.Languages},
		{"interests", interests, &r.Interests},
	} {
		if len(field.data) == 0 {
			continue
		}
		if err := json.Unmarshal(field.data, field.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", field.name, err)
		}
	}

	r.Normalize()
	return &r, nil
}
