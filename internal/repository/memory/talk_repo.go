// Package memory is a process-local TalkRepository. Each repository owns its records;
// there is no package-level state.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"talkschedule/internal/domain"
)

type talkRepository struct {
	mu         sync.RWMutex
	talks      []*domain.Talk
	categories map[string]struct{}
}

// NewTalkRepository returns an empty in-memory domain.TalkRepository.
func NewTalkRepository() domain.TalkRepository {
	return &talkRepository{categories: make(map[string]struct{})}
}

func (r *talkRepository) List(ctx context.Context) ([]*domain.Talk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Talk, 0, len(r.talks))
	for _, t := range r.talks {
		out = append(out, clone(t))
	}
	sortTalks(out)
	return out, nil
}

func (r *talkRepository) ListByDate(ctx context.Context, date string) ([]*domain.Talk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*domain.Talk{}
	for _, t := range r.talks {
		if t.Date == date {
			out = append(out, clone(t))
		}
	}
	sortTalks(out)
	return out, nil
}

func (r *talkRepository) Create(ctx context.Context, talk *domain.Talk) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.talks {
		if t.Date == talk.Date && t.StartTime.Equal(talk.StartTime) {
			return domain.ErrSlotUnavailable
		}
	}
	talk.ID = uuid.NewString()
	if talk.CreatedAt.IsZero() {
		talk.CreatedAt = time.Now()
	}
	r.talks = append(r.talks, clone(talk))
	for _, c := range talk.Categories {
		r.categories[c] = struct{}{}
	}
	return nil
}

func (r *talkRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.talks, func(t *domain.Talk) bool { return t.ID == id })
	if i < 0 {
		return domain.ErrNotFound
	}
	r.talks = slices.Delete(r.talks, i, i+1)
	r.rebuildLocked()
	return nil
}

func (r *talkRepository) ListCategories(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.categories))
	for c := range r.categories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

func (r *talkRepository) RebuildCategories(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rebuildLocked()
	return nil
}

func (r *talkRepository) rebuildLocked() {
	r.categories = make(map[string]struct{})
	for _, t := range r.talks {
		for _, c := range t.Categories {
			r.categories[c] = struct{}{}
		}
	}
}

func clone(t *domain.Talk) *domain.Talk {
	c := *t
	c.Speakers = slices.Clone(t.Speakers)
	c.Categories = slices.Clone(t.Categories)
	return &c
}

func sortTalks(talks []*domain.Talk) {
	sort.SliceStable(talks, func(i, j int) bool {
		if talks[i].Date != talks[j].Date {
			return talks[i].Date < talks[j].Date
		}
		return talks[i].StartTime.Before(talks[j].StartTime)
	})
}
