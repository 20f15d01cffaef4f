package repository

import (
	"strings"

	"github.com/digitalpersonal/guarafood-app-sub001/entity"
)

// ProfileRepository persists saved customer profiles (checkout autofill)
// and favorite item ids per device key.
type ProfileRepository struct{ KV *KVRepository }

func NewProfileRepository(kv *KVRepository) *ProfileRepository {
	return &ProfileRepository{KV: kv}
}

func profilesKey(deviceKey string) string  { return "customer-profiles:" + deviceKey }
func favoritesKey(deviceKey string) string { return "favorites:" + deviceKey }

func (r *ProfileRepository) Profiles(deviceKey string) ([]entity.CustomerProfile, error) {
	var ps []entity.CustomerProfile
	found, err := r.KV.Get(profilesKey(deviceKey), &ps)
	if err != nil {
		return nil, err
	}
	if !found || ps == nil {
		return []entity.CustomerProfile{}, nil
	}
	return ps, nil
}

// SaveProfile upserts by name, case-insensitively.
func (r *ProfileRepository) SaveProfile(deviceKey string, p *entity.CustomerProfile) error {
	if strings.TrimSpace(p.Name) == "" {
		return nil
	}
	ps, err := r.Profiles(deviceKey)
	if err != nil {
		return err
	}
	replaced := false
	for i := range ps {
		if strings.EqualFold(ps[i].Name, p.Name) {
			ps[i] = *p
			replaced = true
			break
		}
	}
	if !replaced {
		ps = append(ps, *p)
	}
	return r.KV.Set(profilesKey(deviceKey), ps)
}

// FindProfile matches a saved profile by name, best effort.
func (r *ProfileRepository) FindProfile(deviceKey, name string) (*entity.CustomerProfile, error) {
	ps, err := r.Profiles(deviceKey)
	if err != nil {
		return nil, err
	}
	for i := range ps {
		if strings.EqualFold(ps[i].Name, strings.TrimSpace(name)) {
			return &ps[i], nil
		}
	}
	return nil, nil
}

func (r *ProfileRepository) Favorites(deviceKey string) ([]string, error) {
	var ids []string
	found, err := r.KV.Get(favoritesKey(deviceKey), &ids)
	if err != nil {
		return nil, err
	}
	if !found || ids == nil {
		return []string{}, nil
	}
	return ids, nil
}

func (r *ProfileRepository) SaveFavorites(deviceKey string, ids []string) error {
	return r.KV.Set(favoritesKey(deviceKey), ids)
}
