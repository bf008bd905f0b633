package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lifelog/src/domain"

	"github.com/sirupsen/logrus"
)

// Repositories groups the sources a snapshot is loaded from
type Repositories struct {
	Journals      domain.JournalRepository
	Todos         domain.TodoRepository
	Categories    domain.CategoryRepository
	Anniversaries domain.AnniversaryRepository
	Profiles      domain.ProfileRepository
}

// Loader (re)populates a Store from the repositories
type Loader struct {
	store  *Store
	repos  Repositories
	logger *logrus.Logger
}

// NewLoader creates a new loader
func NewLoader(store *Store, repos Repositories, logger *logrus.Logger) *Loader {
	return &Loader{store: store, repos: repos, logger: logger}
}

// Store returns the store this loader fills
func (l *Loader) Store() *Store {
	return l.store
}

// Refresh reads every collection and commits the result.
// If a newer load or a mutation happened meanwhile, the stale result is
// discarded and the current snapshot is returned instead.
func (l *Loader) Refresh(ctx context.Context) (*Snapshot, error) {
	ticket := l.store.Begin()

	snap, err := l.read(ctx)
	if err != nil {
		l.logger.WithError(err).WithField("generation", ticket.Generation()).Error("スナップショットの読み込みに失敗")
		return nil, err
	}

	if !l.store.Commit(ticket, snap) {
		l.logger.WithField("generation", ticket.Generation()).Debug("古い読み込み結果を破棄しました")
		if current := l.store.Current(); current != nil {
			return current, nil
		}
		return &snap, nil
	}

	l.logger.WithFields(logrus.Fields{
		"generation":    ticket.Generation(),
		"journals":      len(snap.Journals),
		"todos":         len(snap.Todos),
		"categories":    len(snap.Categories),
		"anniversaries": len(snap.Anniversaries),
	}).Debug("スナップショットを更新しました")
	return l.store.Current(), nil
}

// Ensure returns the current snapshot, loading it first when stale
func (l *Loader) Ensure(ctx context.Context) (*Snapshot, error) {
	if !l.store.Stale() {
		return l.store.Current(), nil
	}
	return l.Refresh(ctx)
}

func (l *Loader) read(ctx context.Context) (Snapshot, error) {
	journals, err := l.repos.Journals.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load journals: %w", err)
	}
	todos, err := l.repos.Todos.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load todos: %w", err)
	}
	categories, err := l.repos.Categories.List(ctx, true)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load categories: %w", err)
	}
	anniversaries, err := l.repos.Anniversaries.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load anniversaries: %w", err)
	}

	var profile *domain.Profile
	if l.repos.Profiles != nil {
		profile, err = l.repos.Profiles.Get(ctx)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return Snapshot{}, fmt.Errorf("failed to load profile: %w", err)
		}
	}

	return Snapshot{
		Journals:      journals,
		Todos:         todos,
		Categories:    categories,
		Anniversaries: anniversaries,
		Profile:       profile,
		LoadedAt:      time.Now(),
	}, nil
}
