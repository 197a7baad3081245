package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mixvision-service/internal/opportunity/model"
	"mixvision-service/internal/opportunity/service"
)

func TestSnapshotReplacesWholesale(t *testing.T) {
	store := NewStore(time.Minute)

	first := &model.Snapshot{Source: "a.xlsx"}
	store.PutSnapshot("tok", first)
	store.PutSelection("tok", service.Selection{Consultant: "Ana", Route: "R1", Client: "Loja1"})

	// re-ingestão descarta snapshot E seleção anteriores
	second := &model.Snapshot{Source: "b.xlsx"}
	store.PutSnapshot("tok", second)

	st := store.Get("tok")
	require.NotNil(t, st)
	assert.Same(t, second, st.Snapshot)
	assert.Equal(t, service.StateNone, st.Selection.State())
}

func TestSelectionNeedsSnapshot(t *testing.T) {
	store := NewStore(time.Minute)
	assert.Nil(t, store.PutSelection("tok", service.Selection{Consultant: "Ana"}))

	store.PutSnapshot("tok", &model.Snapshot{})
	st := store.PutSelection("tok", service.Selection{Consultant: "Ana"})
	require.NotNil(t, st)
	assert.Equal(t, "Ana", st.Selection.Consultant)
}

func TestClear(t *testing.T) {
	store := NewStore(time.Minute)
	store.PutSnapshot("tok", &model.Snapshot{})
	store.Clear("tok")
	assert.Nil(t, store.Get("tok"))
}

func TestSessionsAreIsolatedByToken(t *testing.T) {
	store := NewStore(time.Minute)
	store.PutSnapshot("a", &model.Snapshot{Source: "a"})
	store.PutSnapshot("b", &model.Snapshot{Source: "b"})

	assert.Equal(t, "a", store.Get("a").Snapshot.Source)
	assert.Equal(t, "b", store.Get("b").Snapshot.Source)
}
