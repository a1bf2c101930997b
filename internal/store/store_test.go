package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entity struct {
	ID   uint64
	Name string
}

func entityID(e entity) uint64 { return e.ID }

func fixedLoader(items []entity, err error) Loader[entity] {
	return func(context.Context) ([]entity, error) {
		return items, err
	}
}

func TestLoadAllSuccess(t *testing.T) {
	s := New(entityID, fixedLoader([]entity{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}, nil))

	require.NoError(t, s.LoadAll(context.Background()))
	assert.Equal(t, []entity{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}, s.Snapshot())
	assert.False(t, s.Loading())
	assert.NoError(t, s.Err())
}

func TestLoadAllFailureKeepsPreviousData(t *testing.T) {
	s := New(entityID, fixedLoader([]entity{{ID: 1, Name: "a"}}, nil))
	require.NoError(t, s.LoadAll(context.Background()))

	s.loader = fixedLoader(nil, errors.New("connection refused"))
	err := s.LoadAll(context.Background())
	require.Error(t, err)

	assert.Equal(t, []entity{{ID: 1, Name: "a"}}, s.Snapshot(), "failed load must not clear existing data")
	assert.False(t, s.Loading(), "loading flag must clear on failure")
	assert.EqualError(t, s.Err(), "connection refused")
}

func TestLoadAllClearsPreviousError(t *testing.T) {
	s := New(entityID, fixedLoader(nil, errors.New("boom")))
	require.Error(t, s.LoadAll(context.Background()))

	s.loader = fixedLoader([]entity{{ID: 3}}, nil)
	require.NoError(t, s.LoadAll(context.Background()))
	assert.NoError(t, s.Err())
}

func TestAddPrepends(t *testing.T) {
	s := New(entityID, fixedLoader(nil, nil))
	s.Add(entity{ID: 1})
	s.Add(entity{ID: 2})

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, uint64(2), snapshot[0].ID, "newest entity goes to the head")
}

func TestUpdateReplacesByID(t *testing.T) {
	s := New(entityID, fixedLoader(nil, nil))
	s.Add(entity{ID: 1, Name: "old"})
	s.Add(entity{ID: 2, Name: "other"})

	s.Update(entity{ID: 1, Name: "new"})

	snapshot := s.Snapshot()
	assert.Equal(t, "new", snapshot[1].Name)
	assert.Equal(t, "other", snapshot[0].Name)
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	s := New(entityID, fixedLoader(nil, nil))
	s.Add(entity{ID: 1, Name: "a"})
	before := s.Snapshot()

	s.Update(entity{ID: 99, Name: "ghost"})

	assert.Equal(t, before, s.Snapshot())
}

func TestAddThenRemoveRestoresPriorContent(t *testing.T) {
	s := New(entityID, fixedLoader(nil, nil))
	s.Add(entity{ID: 1})
	s.Add(entity{ID: 2})
	before := s.Snapshot()

	s.Add(entity{ID: 3})
	s.Remove(3)

	assert.Equal(t, before, s.Snapshot())
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	s := New(entityID, fixedLoader(nil, nil))
	s.Add(entity{ID: 1})

	s.Remove(42)

	assert.Equal(t, 1, s.Len())
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(entityID, fixedLoader(nil, nil))
	s.Add(entity{ID: 1, Name: "a"})

	snapshot := s.Snapshot()
	snapshot[0].Name = "mutated"

	assert.Equal(t, "a", s.Snapshot()[0].Name)
}
