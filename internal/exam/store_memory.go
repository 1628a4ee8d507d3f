package exam

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type memoryStore struct {
	mu     sync.RWMutex
	papers map[string]Paper
}

// NewInMemoryStore is used by tests and the offline seed path.
func NewInMemoryStore() Store {
	return &memoryStore{papers: map[string]Paper{}}
}

func (m *memoryStore) PutPaper(_ context.Context, p Paper) error {
	Normalize(&p)
	if err := Validate(p); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.papers[p.ID] = p
	return nil
}

func (m *memoryStore) GetPaper(ctx context.Context, id string) (Paper, error) {
	p, err := m.GetPaperFull(ctx, id)
	if err != nil {
		return Paper{}, err
	}
	StripAnswers(&p)
	return p, nil
}

func (m *memoryStore) GetPaperFull(_ context.Context, id string) (Paper, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.papers[id]
	if !ok {
		return Paper{}, ErrNotFound
	}
	return clonePaper(p), nil
}

func (m *memoryStore) ListPapers(_ context.Context, opts ListOpts) ([]PaperSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []PaperSummary
	for _, p := range m.papers {
		if opts.Q != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(opts.Q)) {
			continue
		}
		sum := PaperSummary{ID: p.ID, Title: p.Title, DurationSec: p.DurationSec, Premium: p.Premium}
		for _, s := range p.Sections {
			sum.QuestionCount += len(s.Questions)
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// clonePaper deep-copies so callers can strip answers without mutating the store.
func clonePaper(p Paper) Paper {
	out := p
	out.Sections = make([]Section, len(p.Sections))
	for i, s := range p.Sections {
		cs := s
		cs.Questions = make([]Question, len(s.Questions))
		for j, q := range s.Questions {
			cq := q
			cq.Options = append([]Option(nil), q.Options...)
			cq.AnswerKey = append([]string(nil), q.AnswerKey...)
			cs.Questions[j] = cq
		}
		out.Sections[i] = cs
	}
	return out
}
