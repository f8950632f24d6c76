package store

import (
	"context"

	"github.com/dehackhq/dehack-api/models"
)

const applicationsCollection = "applications"

// ApplicationStore contains the methods to use with the applications
// collection. Applications have no routes of their own; they exist to enrich
// hackathon and user detail responses.
type ApplicationStore interface {
	Find(ctx context.Context) ([]models.Application, error)
	FindByHackathonID(ctx context.Context, hackathonID int) ([]models.Application, error)
	FindByHackerID(ctx context.Context, hackerID int) ([]models.Application, error)
}

type applicationStore struct {
	db *Store
}

// NewApplicationStore initializes a new instance of the application store.
func NewApplicationStore(db *Store) ApplicationStore {
	return &applicationStore{db: db}
}

func (a *applicationStore) Find(ctx context.Context) ([]models.Application, error) {
	var all []models.Application
	if err := a.db.Load(applicationsCollection, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (a *applicationStore) FindByHackathonID(ctx context.Context, hackathonID int) ([]models.Application, error) {
	all, err := a.Find(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.Application{}
	for _, app := range all {
		if app.HackathonID == hackathonID {
			matched = append(matched, app)
		}
	}
	return matched, nil
}

func (a *applicationStore) FindByHackerID(ctx context.Context, hackerID int) ([]models.Application, error) {
	all, err := a.Find(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.Application{}
	for _, app := range all {
		if app.HackerID == hackerID {
			matched = append(matched, app)
		}
	}
	return matched, nil
}
