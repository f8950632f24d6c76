package store

import (
	"context"
	"fmt"

	"github.com/dehackhq/dehack-api/models"
)

const usersCollection = "users"

// UserStore contains the methods to use with the users collection.
type UserStore interface {
	Find(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	Insert(ctx context.Context, u *models.User) error
}

type userStore struct {
	db *Store
}

// NewUserStore initializes a new instance of the user store.
func NewUserStore(db *Store) UserStore {
	return &userStore{db: db}
}

func (u *userStore) Find(ctx context.Context) ([]models.User, error) {
	var all []models.User
	if err := u.db.Load(usersCollection, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (u *userStore) FindByID(ctx context.Context, id int) (*models.User, error) {
	all, err := u.Find(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
}

func (u *userStore) Insert(ctx context.Context, user *models.User) error {
	lock := u.db.Lock(usersCollection)
	lock.Lock()
	defer lock.Unlock()

	var all []models.User
	if err := u.db.Load(usersCollection, &all); err != nil {
		return err
	}

	ids := make([]int, len(all))
	for i := range all {
		ids[i] = all[i].ID
	}
	user.ID = NextID(ids)
	now := models.Now()
	if user.CreatedAt == "" {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	all = append(all, *user)
	return u.db.Save(usersCollection, all)
}
