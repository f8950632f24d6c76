package store

import (
	"context"

	"github.com/dehackhq/dehack-api/models"
)

const analyticsCollection = "analytics"

// AnalyticsStore contains the methods to use with the analytics collection.
type AnalyticsStore interface {
	Find(ctx context.Context) ([]models.AnalyticsEvent, error)
	Insert(ctx context.Context, e *models.AnalyticsEvent) error
}

type analyticsStore struct {
	db *Store
}

// NewAnalyticsStore initializes a new instance of the analytics store.
func NewAnalyticsStore(db *Store) AnalyticsStore {
	return &analyticsStore{db: db}
}

func (a *analyticsStore) Find(ctx context.Context) ([]models.AnalyticsEvent, error) {
	var all []models.AnalyticsEvent
	if err := a.db.Load(analyticsCollection, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (a *analyticsStore) Insert(ctx context.Context, event *models.AnalyticsEvent) error {
	lock := a.db.Lock(analyticsCollection)
	lock.Lock()
	defer lock.Unlock()

	var all []models.AnalyticsEvent
	if err := a.db.Load(analyticsCollection, &all); err != nil {
		return err
	}

	ids := make([]int, len(all))
	for i := range all {
		ids[i] = all[i].ID
	}
	event.ID = NextID(ids)
	if event.CreatedAt == "" {
		event.CreatedAt = models.Now()
	}

	all = append(all, *event)
	return a.db.Save(analyticsCollection, all)
}
