package store

import (
	"context"
	"fmt"

	"github.com/dehackhq/dehack-api/models"
)

const hackathonsCollection = "hackathons"

// HackathonStore contains the methods to use with the hackathons collection.
type HackathonStore interface {
	Find(ctx context.Context) ([]models.Hackathon, error)
	FindByID(ctx context.Context, id int) (*models.Hackathon, error)
	Insert(ctx context.Context, h *models.Hackathon) error
}

type hackathonStore struct {
	db *Store
}

// NewHackathonStore initializes a new instance of the hackathon store.
func NewHackathonStore(db *Store) HackathonStore {
	return &hackathonStore{db: db}
}

func (h *hackathonStore) Find(ctx context.Context) ([]models.Hackathon, error) {
	var all []models.Hackathon
	if err := h.db.Load(hackathonsCollection, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (h *hackathonStore) FindByID(ctx context.Context, id int) (*models.Hackathon, error) {
	all, err := h.Find(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("hackathon %d: %w", id, ErrNotFound)
}

func (h *hackathonStore) Insert(ctx context.Context, hack *models.Hackathon) error {
	lock := h.db.Lock(hackathonsCollection)
	lock.Lock()
	defer lock.Unlock()

	var all []models.Hackathon
	if err := h.db.Load(hackathonsCollection, &all); err != nil {
		return err
	}

	ids := make([]int, len(all))
	for i := range all {
		ids[i] = all[i].ID
	}
	hack.ID = NextID(ids)
	now := models.Now()
	if hack.CreatedAt == "" {
		hack.CreatedAt = now
	}
	hack.UpdatedAt = now

	all = append(all, *hack)
	return h.db.Save(hackathonsCollection, all)
}
