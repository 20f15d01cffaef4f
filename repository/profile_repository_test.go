package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitalpersonal/guarafood-app-sub001/entity"
)

func TestSaveProfile_UpsertsByNameCaseInsensitive(t *testing.T) {
	repo := NewProfileRepository(newTestKV(t))

	require.NoError(t, repo.SaveProfile("dev1", &entity.CustomerProfile{Name: "Maria", Phone: "111"}))
	require.NoError(t, repo.SaveProfile("dev1", &entity.CustomerProfile{Name: "maria", Phone: "222"}))

	ps, err := repo.Profiles("dev1")
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "222", ps[0].Phone)
}

func TestSaveProfile_IgnoresBlankName(t *testing.T) {
	repo := NewProfileRepository(newTestKV(t))

	require.NoError(t, repo.SaveProfile("dev1", &entity.CustomerProfile{Name: "   "}))

	ps, err := repo.Profiles("dev1")
	require.NoError(t, err)
	assert.Empty(t, ps)
}

func TestFindProfile(t *testing.T) {
	repo := NewProfileRepository(newTestKV(t))
	require.NoError(t, repo.SaveProfile("dev1", &entity.CustomerProfile{Name: "Maria", Phone: "111"}))

	p, err := repo.FindProfile("dev1", "  MARIA ")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "111", p.Phone)

	p, err = repo.FindProfile("dev1", "João")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestFavorites_Roundtrip(t *testing.T) {
	repo := NewProfileRepository(newTestKV(t))

	ids, err := repo.Favorites("dev1")
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, repo.SaveFavorites("dev1", []string{"m1", "a2"}))
	ids, err = repo.Favorites("dev1")
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "a2"}, ids)
}
