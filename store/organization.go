package store

import (
	"context"
	"fmt"

	"github.com/dehackhq/dehack-api/models"
)

const organizationsCollection = "organizations"

// OrganizationStore contains the methods to use with the organizations
// collection.
type OrganizationStore interface {
	Find(ctx context.Context) ([]models.Organization, error)
	FindByID(ctx context.Context, id int) (*models.Organization, error)
}

type organizationStore struct {
	db *Store
}

// NewOrganizationStore initializes a new instance of the organization store.
func NewOrganizationStore(db *Store) OrganizationStore {
	return &organizationStore{db: db}
}

func (o *organizationStore) Find(ctx context.Context) ([]models.Organization, error) {
	var all []models.Organization
	if err := o.db.Load(organizationsCollection, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (o *organizationStore) FindByID(ctx context.Context, id int) (*models.Organization, error) {
	all, err := o.Find(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("organization %d: %w", id, ErrNotFound)
}
