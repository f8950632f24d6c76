package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// CollectionStore reads and appends raw records for the passthrough
// collections (countries, faqs, charts and friends) where no typed model
// exists.
type CollectionStore interface {
	FindAll(ctx context.Context, name string) ([]map[string]interface{}, error)
	FindByID(ctx context.Context, name string, id int) (map[string]interface{}, error)
	FindByStringID(ctx context.Context, name, id string) (map[string]interface{}, error)
	Insert(ctx context.Context, name string, build func(id int) map[string]interface{}) (map[string]interface{}, error)
}

type collectionStore struct {
	db *Store
}

// NewCollectionStore initializes a new instance of the raw collection store.
func NewCollectionStore(db *Store) CollectionStore {
	return &collectionStore{db: db}
}

func (c *collectionStore) FindAll(ctx context.Context, name string) ([]map[string]interface{}, error) {
	records := []map[string]interface{}{}
	if err := c.db.Load(name, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *collectionStore) FindByID(ctx context.Context, name string, id int) (map[string]interface{}, error) {
	records, err := c.FindAll(ctx, name)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if recID, ok := recordID(rec); ok && recID == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("%s %d: %w", name, id, ErrNotFound)
}

// FindByStringID matches records whose id field is a string, such as charts.
func (c *collectionStore) FindByStringID(ctx context.Context, name, id string) (map[string]interface{}, error) {
	records, err := c.FindAll(ctx, name)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if s, ok := rec["id"].(string); ok && s == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("%s %q: %w", name, id, ErrNotFound)
}

// Insert appends the record produced by build, which receives the next free
// id. The whole cycle runs under the collection lock.
func (c *collectionStore) Insert(ctx context.Context, name string, build func(id int) map[string]interface{}) (map[string]interface{}, error) {
	lock := c.db.Lock(name)
	lock.Lock()
	defer lock.Unlock()

	records := []map[string]interface{}{}
	if err := c.db.Load(name, &records); err != nil {
		return nil, err
	}

	var ids []int
	for _, rec := range records {
		if id, ok := recordID(rec); ok {
			ids = append(ids, id)
		}
	}
	rec := build(NextID(ids))
	records = append(records, rec)
	if err := c.db.Save(name, records); err != nil {
		return nil, err
	}
	return rec, nil
}

// recordID extracts an integer id from a raw record. JSON numbers decode as
// float64, but re-encoded records may carry other numeric types.
func recordID(rec map[string]interface{}) (int, bool) {
	switch v := rec["id"].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
