package repository

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// KVEntry is one durable JSON blob. The storefront's local state (cart,
// tracked order ids, history, profiles, favorites) all lives here; no
// transactions span keys.
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     []byte
	UpdatedAt time.Time
}

type KVRepository struct{ DB *gorm.DB }

func NewKVRepository(db *gorm.DB) *KVRepository { return &KVRepository{DB: db} }

// Get decodes the blob under key into out. A missing key or a corrupt
// blob both report found=false; corruption is never an error for callers.
func (r *KVRepository) Get(key string, out any) (bool, error) {
	var e KVEntry
	err := r.DB.First(&e, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if json.Unmarshal(e.Value, out) != nil {
		return false, nil
	}
	return true, nil
}

// Set stores v as JSON under key, replacing any previous value.
func (r *KVRepository) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.DB.Save(&KVEntry{Key: key, Value: raw, UpdatedAt: time.Now()}).Error
}

// Delete removes the key; absent keys are a no-op.
func (r *KVRepository) Delete(key string) error {
	return r.DB.Delete(&KVEntry{}, "key = ?", key).Error
}
