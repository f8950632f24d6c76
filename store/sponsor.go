package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dehackhq/dehack-api/models"
)

const sponsorsCollection = "sponsors"

// SponsorStore contains the methods to use with the sponsors collection.
type SponsorStore interface {
	Find(ctx context.Context) ([]models.Sponsor, error)
	FindByID(ctx context.Context, id int) (*models.Sponsor, error)
	Insert(ctx context.Context, s *models.Sponsor) error
	Update(ctx context.Context, id int, fields map[string]json.RawMessage) (*models.Sponsor, error)
}

type sponsorStore struct {
	db *Store
}

// NewSponsorStore initializes a new instance of the sponsor store.
func NewSponsorStore(db *Store) SponsorStore {
	return &sponsorStore{db: db}
}

func (s *sponsorStore) Find(ctx context.Context) ([]models.Sponsor, error) {
	var all []models.Sponsor
	if err := s.db.Load(sponsorsCollection, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (s *sponsorStore) FindByID(ctx context.Context, id int) (*models.Sponsor, error) {
	all, err := s.Find(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("sponsor %d: %w", id, ErrNotFound)
}

func (s *sponsorStore) Insert(ctx context.Context, sp *models.Sponsor) error {
	lock := s.db.Lock(sponsorsCollection)
	lock.Lock()
	defer lock.Unlock()

	var all []models.Sponsor
	if err := s.db.Load(sponsorsCollection, &all); err != nil {
		return err
	}

	ids := make([]int, len(all))
	for i := range all {
		ids[i] = all[i].ID
	}
	sp.ID = NextID(ids)
	now := models.Now()
	if sp.CreatedAt == "" {
		sp.CreatedAt = now
	}
	sp.UpdatedAt = now

	all = append(all, *sp)
	return s.db.Save(sponsorsCollection, all)
}

func (s *sponsorStore) Update(ctx context.Context, id int, fields map[string]json.RawMessage) (*models.Sponsor, error) {
	lock := s.db.Lock(sponsorsCollection)
	lock.Lock()
	defer lock.Unlock()

	var all []models.Sponsor
	if err := s.db.Load(sponsorsCollection, &all); err != nil {
		return nil, err
	}

	for i := range all {
		if all[i].ID != id {
			continue
		}
		var patched models.Sponsor
		if err := models.ApplyFields(all[i], fields, &patched); err != nil {
			return nil, err
		}
		patched.ID = id
		patched.UpdatedAt = models.Now()
		all[i] = patched
		if err := s.db.Save(sponsorsCollection, all); err != nil {
			return nil, err
		}
		return &patched, nil
	}
	return nil, fmt.Errorf("sponsor %d: %w", id, ErrNotFound)
}
