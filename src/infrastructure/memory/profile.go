package memory

import (
	"context"
	"sync"

	"lifelog/src/domain"

	"github.com/google/uuid"
)

// ProfileRepository holds the single profile
type ProfileRepository struct {
	mu      sync.RWMutex
	profile *domain.Profile
}

// NewProfileRepository creates a repository without a profile
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{}
}

func (r *ProfileRepository) Get(_ context.Context) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.profile == nil {
		return nil, domain.ErrNotFound
	}
	p := *r.profile
	return &p, nil
}

// Save replaces the profile, assigning an id on first save
func (r *ProfileRepository) Save(_ context.Context, profile *domain.Profile) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *profile
	if r.profile != nil {
		stored.ID = r.profile.ID
		stored.RegisteredOn = r.profile.RegisteredOn
	} else if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.profile = &stored

	result := stored
	return &result, nil
}
