package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
)

// Store is the persistence surface the handlers need. *db.DB satisfies it;
// tests substitute a mock.
type Store interface {
	CreateResume(ctx context.Context, r *types.Resume) (*types.Resume, error)
	GetResume(ctx context.Context, id, userID uuid.UUID) (*types.Resume, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]types.Resume, error)
	UpdateResume(ctx context.Context, r *types.Resume) (*types.Resume, error)
	SetResumeImages(ctx context.Context, id, userID uuid.UUID, thumbnailLink, profilePreviewURL string) (*types.Resume, error)
	DeleteResume(ctx context.Context, id, userID uuid.UUID) (bool, error)

	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
}
