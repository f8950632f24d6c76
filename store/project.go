package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dehackhq/dehack-api/models"
)

const projectsCollection = "projects"

// ProjectStore contains the methods to use with the projects collection.
type ProjectStore interface {
	Find(ctx context.Context) ([]models.Project, error)
	FindByID(ctx context.Context, id int) (*models.Project, error)
	FindByHackathonID(ctx context.Context, hackathonID int) ([]models.Project, error)
	Insert(ctx context.Context, p *models.Project) error
	Update(ctx context.Context, id int, fields map[string]json.RawMessage) (*models.Project, error)
	Judge(ctx context.Context, id int, judgeID string, scores map[string]float64) (*models.Project, error)
}

type projectStore struct {
	db *Store
}

// NewProjectStore initializes a new instance of the project store.
func NewProjectStore(db *Store) ProjectStore {
	return &projectStore{db: db}
}

func (p *projectStore) Find(ctx context.Context) ([]models.Project, error) {
	var all []models.Project
	if err := p.db.Load(projectsCollection, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (p *projectStore) FindByID(ctx context.Context, id int) (*models.Project, error) {
	all, err := p.Find(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
}

func (p *projectStore) FindByHackathonID(ctx context.Context, hackathonID int) ([]models.Project, error) {
	all, err := p.Find(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.Project{}
	for _, proj := range all {
		if proj.HackathonID == hackathonID {
			matched = append(matched, proj)
		}
	}
	return matched, nil
}

func (p *projectStore) Insert(ctx context.Context, proj *models.Project) error {
	lock := p.db.Lock(projectsCollection)
	lock.Lock()
	defer lock.Unlock()

	var all []models.Project
	if err := p.db.Load(projectsCollection, &all); err != nil {
		return err
	}

	ids := make([]int, len(all))
	for i := range all {
		ids[i] = all[i].ID
	}
	proj.ID = NextID(ids)
	now := models.Now()
	if proj.CreatedAt == "" {
		proj.CreatedAt = now
	}
	proj.UpdatedAt = now
	if proj.JudgeScores == nil {
		proj.JudgeScores = map[string]models.JudgeSubmission{}
	}

	all = append(all, *proj)
	return p.db.Save(projectsCollection, all)
}

// Update patches a project's JSON form with the given fields. The id field is
// never client-writable.
func (p *projectStore) Update(ctx context.Context, id int, fields map[string]json.RawMessage) (*models.Project, error) {
	lock := p.db.Lock(projectsCollection)
	lock.Lock()
	defer lock.Unlock()

	var all []models.Project
	if err := p.db.Load(projectsCollection, &all); err != nil {
		return nil, err
	}

	for i := range all {
		if all[i].ID != id {
			continue
		}
		var patched models.Project
		if err := models.ApplyFields(all[i], fields, &patched); err != nil {
			return nil, err
		}
		patched.ID = id
		patched.UpdatedAt = models.Now()
		all[i] = patched
		if err := p.db.Save(projectsCollection, all); err != nil {
			return nil, err
		}
		return &patched, nil
	}
	return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
}

// Judge records a judge's submission, overwriting any prior one from the same
// judge, and recomputes the project's total score.
func (p *projectStore) Judge(ctx context.Context, id int, judgeID string, scores map[string]float64) (*models.Project, error) {
	lock := p.db.Lock(projectsCollection)
	lock.Lock()
	defer lock.Unlock()

	var all []models.Project
	if err := p.db.Load(projectsCollection, &all); err != nil {
		return nil, err
	}

	for i := range all {
		if all[i].ID != id {
			continue
		}
		proj := &all[i]
		if proj.JudgeScores == nil {
			proj.JudgeScores = map[string]models.JudgeSubmission{}
		}
		now := models.Now()
		proj.JudgeScores[judgeID] = models.JudgeSubmission{
			Scores:      scores,
			SubmittedAt: now,
		}
		proj.RecomputeTotalScore()
		proj.UpdatedAt = now
		if err := p.db.Save(projectsCollection, all); err != nil {
			return nil, err
		}
		return proj, nil
	}
	return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
}
