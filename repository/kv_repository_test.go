package repository

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

func newTestKV(t *testing.T) *KVRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:repo%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&KVEntry{}))
	return NewKVRepository(db)
}

func TestKV_SetGetDelete(t *testing.T) {
	kv := newTestKV(t)

	type blob struct {
		Name string `json:"name"`
		N    int    `json:"n"`
	}

	require.NoError(t, kv.Set("k1", blob{Name: "açaí", N: 2}))

	var got blob
	found, err := kv.Get("k1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, blob{Name: "açaí", N: 2}, got)

	// Set replaces.
	require.NoError(t, kv.Set("k1", blob{Name: "marmita", N: 5}))
	found, err = kv.Get("k1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 5, got.N)

	require.NoError(t, kv.Delete("k1"))
	found, err = kv.Get("k1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKV_MissingKey(t *testing.T) {
	kv := newTestKV(t)

	var out map[string]any
	found, err := kv.Get("ghost", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKV_CorruptValueReportsAbsent(t *testing.T) {
	kv := newTestKV(t)
	require.NoError(t, kv.DB.Save(&KVEntry{Key: "bad", Value: []byte("{nope")}).Error)

	var out map[string]any
	found, err := kv.Get("bad", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKV_DeleteAbsentIsNoOp(t *testing.T) {
	kv := newTestKV(t)
	assert.NoError(t, kv.Delete("ghost"))
}
