package usecase

import (
	"context"
	"errors"

	"lifelog/src/stats"
	"lifelog/src/store"
)

// StatsReport is the answer of the statistics endpoint.
// With a period only that bucket is computed; otherwise every bucket is listed.
type StatsReport struct {
	Strategy stats.Strategy  `json:"strategy"`
	Overall  stats.Summary   `json:"overall"`
	Buckets  []stats.Summary `json:"buckets"`
}

// StatsUsecase computes statistics over the current entity snapshot
type StatsUsecase interface {
	GetStats(ctx context.Context, strategy string, period string) (*StatsReport, error)
}

type statsUsecase struct {
	loader *store.Loader
}

// NewStatsUsecase creates a new stats usecase
func NewStatsUsecase(loader *store.Loader) StatsUsecase {
	return &statsUsecase{loader: loader}
}

// GetStats buckets journals and todos by strategy
func (u *statsUsecase) GetStats(ctx context.Context, strategy string, period string) (*StatsReport, error) {
	st, err := stats.ParseStrategy(strategy)
	if err != nil {
		return nil, ErrInvalidStatsStrategy
	}

	snap, err := u.loader.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	if period != "" {
		summary, err := stats.Compute(snap.Journals, snap.Todos, st, period)
		if err != nil {
			if errors.Is(err, stats.ErrInvalidPeriod) {
				return nil, ErrInvalidStatsPeriod
			}
			return nil, err
		}
		return &StatsReport{Strategy: st, Overall: summary, Buckets: []stats.Summary{summary}}, nil
	}

	return &StatsReport{
		Strategy: st,
		Overall:  stats.Summarize(snap.Journals, snap.Todos, st),
		Buckets:  stats.Aggregate(snap.Journals, snap.Todos, st),
	}, nil
}
