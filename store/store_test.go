package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dehackhq/dehack-api/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestLoadMissingCollectionIsEmpty(t *testing.T) {
	s := newTestStore(t)

	var users []models.User
	require.NoError(t, s.Load("users", &users))
	assert.Empty(t, users)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	in := []map[string]interface{}{
		{"id": float64(1), "name": "Alpha", "tags": []interface{}{"a", "b"}},
		{"id": float64(2), "name": "Beta"},
	}
	require.NoError(t, s.Save("things", in))

	var out []map[string]interface{}
	require.NoError(t, s.Load("things", &out))
	assert.Equal(t, in, out)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("things", []int{1, 2, 3}))

	_, err := os.Stat(filepath.Join(s.DataDir(), "things.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, NextID(nil))
	assert.Equal(t, 6, NextID([]int{1, 3, 5}))
	// deleting id 5 frees it for reuse, documented behavior
	assert.Equal(t, 4, NextID([]int{1, 3}))
}

func TestInitCollections(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save("users", []map[string]interface{}{{"id": 1}}))
	require.NoError(t, s.InitCollections("users", "countries"))

	var users []map[string]interface{}
	require.NoError(t, s.Load("users", &users))
	assert.Len(t, users, 1, "existing file must not be clobbered")

	var countries []map[string]interface{}
	require.NoError(t, s.Load("countries", &countries))
	assert.NotNil(t, countries)
	assert.Empty(t, countries)
}

func TestHackathonInsertAssignsIDs(t *testing.T) {
	s := newTestStore(t)
	db := NewHackathonStore(s)
	ctx := context.Background()

	first := models.Hackathon{Title: "Alpha", Description: "d", Status: "scheduled"}
	require.NoError(t, db.Insert(ctx, &first))
	assert.Equal(t, 1, first.ID)
	assert.NotEmpty(t, first.CreatedAt)

	second := models.Hackathon{Title: "Beta", Description: "d", Status: "active"}
	require.NoError(t, db.Insert(ctx, &second))
	assert.Equal(t, 2, second.ID)

	all, err := db.Find(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestHackathonExtrasSurviveRoundTrip(t *testing.T) {
	s := newTestStore(t)
	db := NewHackathonStore(s)
	ctx := context.Background()

	h := models.Hackathon{
		Title:       "Alpha",
		Description: "d",
		Extra: map[string]json.RawMessage{
			"prizes": json.RawMessage(`[{"place":1,"amount":5000}]`),
		},
	}
	require.NoError(t, db.Insert(ctx, &h))

	got, err := db.FindByID(ctx, h.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"place":1,"amount":5000}]`, string(got.Extra["prizes"]))
}

func TestFindByIDMiss(t *testing.T) {
	s := newTestStore(t)
	db := NewHackathonStore(s)

	_, err := db.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectJudgeTotals(t *testing.T) {
	s := newTestStore(t)
	db := NewProjectStore(s)
	ctx := context.Background()

	proj := models.Project{HackathonID: 1, Title: "Demo", Status: "submitted"}
	require.NoError(t, db.Insert(ctx, &proj))

	_, err := db.Judge(ctx, proj.ID, "judge-a", map[string]float64{"x": 3, "y": 4})
	require.NoError(t, err)
	got, err := db.Judge(ctx, proj.ID, "judge-b", map[string]float64{"x": 5, "y": 5})
	require.NoError(t, err)
	assert.InDelta(t, 8.5, got.TotalScore, 1e-9)

	// resubmission overwrites, it does not average with history
	got, err = db.Judge(ctx, proj.ID, "judge-a", map[string]float64{"x": 10, "y": 10})
	require.NoError(t, err)
	assert.InDelta(t, 15, got.TotalScore, 1e-9)
	assert.Len(t, got.JudgeScores, 2)
}

func TestProjectUpdatePatchesFields(t *testing.T) {
	s := newTestStore(t)
	db := NewProjectStore(s)
	ctx := context.Background()

	proj := models.Project{HackathonID: 1, Title: "Demo", Status: "submitted"}
	require.NoError(t, db.Insert(ctx, &proj))

	got, err := db.Update(ctx, proj.ID, map[string]json.RawMessage{
		"status": json.RawMessage(`"finalist"`),
		"id":     json.RawMessage(`999`),
	})
	require.NoError(t, err)
	assert.Equal(t, "finalist", got.Status)
	assert.Equal(t, proj.ID, got.ID, "id is not client-writable")
}

func TestSponsorUpdateMiss(t *testing.T) {
	s := newTestStore(t)
	db := NewSponsorStore(s)

	_, err := db.Update(context.Background(), 7, map[string]json.RawMessage{
		"status": json.RawMessage(`"rejected"`),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollectionInsertAndLookup(t *testing.T) {
	s := newTestStore(t)
	db := NewCollectionStore(s)
	ctx := context.Background()

	rec, err := db.Insert(ctx, "comments", func(id int) map[string]interface{} {
		return map[string]interface{}{"id": id, "content": "gg", "likes": 0}
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rec["id"])

	got, err := db.FindByID(ctx, "comments", 1)
	require.NoError(t, err)
	assert.Equal(t, "gg", got["content"])

	_, err = db.FindByID(ctx, "comments", 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollectionFindByStringID(t *testing.T) {
	s := newTestStore(t)
	db := NewCollectionStore(s)
	ctx := context.Background()

	require.NoError(t, s.Save("charts", []map[string]interface{}{
		{"id": "visitors", "type": "line"},
	}))

	got, err := db.FindByStringID(ctx, "charts", "visitors")
	require.NoError(t, err)
	assert.Equal(t, "line", got["type"])

	_, err = db.FindByStringID(ctx, "charts", "revenue")
	assert.ErrorIs(t, err, ErrNotFound)
}
