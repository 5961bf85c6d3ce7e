package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"dealscope/pkg/models"
)

// MemoryRepo is a concurrency-safe in-memory DealRepository.
type MemoryRepo struct {
	mu    sync.RWMutex
	deals map[string]*models.Deal
}

// NewMemoryRepo creates an empty in-memory repository.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{deals: make(map[string]*models.Deal)}
}

// Save stores a deal, replacing any existing deal with the same ID.
func (r *MemoryRepo) Save(ctx context.Context, deal *models.Deal) error {
	if deal == nil || deal.ID == "" {
		return fmt.Errorf("deal must have an ID")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deals[deal.ID] = deal
	return nil
}

// Get returns the deal with the given ID.
func (r *MemoryRepo) Get(ctx context.Context, id string) (*models.Deal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	deal, ok := r.deals[id]
	if !ok {
		return nil, fmt.Errorf("deal %s not found", id)
	}
	return deal, nil
}

// List returns all deals, newest upload first.
func (r *MemoryRepo) List(ctx context.Context) ([]*models.Deal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	deals := make([]*models.Deal, 0, len(r.deals))
	for _, d := range r.deals {
		deals = append(deals, d)
	}
	sort.Slice(deals, func(i, j int) bool {
		return deals[i].DateUploaded.After(deals[j].DateUploaded)
	})
	return deals, nil
}
