package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/fashionshop/internal/domain"
)

// FavoritesUC keeps the list of liked product ids in local storage.
type FavoritesUC struct {
	store domain.KVStore

	mu  sync.Mutex
	ids []string
}

func NewFavoritesUC(store domain.KVStore) *FavoritesUC {
	return &FavoritesUC{store: store, ids: []string{}}
}

func (uc *FavoritesUC) Load(ctx context.Context) {
	ids := []string{}
	raw, err := uc.store.Get(ctx, domain.KeyFavorites)
	if err == nil {
		var stored []string
		if err := json.Unmarshal(raw, &stored); err != nil {
			log.Warn().Err(err).Msg("favoritos guardados inválidos, se descartan")
		} else {
			seen := map[string]struct{}{}
			for _, id := range stored {
				id = strings.TrimSpace(id)
				if _, dup := seen[id]; id == "" || dup {
					continue
				}
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		log.Warn().Err(err).Msg("no se pudieron leer los favoritos")
	}
	uc.mu.Lock()
	uc.ids = ids
	uc.mu.Unlock()
}

// Toggle adds or removes id and reports whether it is now a favorite.
func (uc *FavoritesUC) Toggle(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, errors.Wrap(domain.ErrValidation, "id vacío")
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := make([]string, 0, len(uc.ids)+1)
	found := false
	for _, v := range uc.ids {
		if v == id {
			found = true
			continue
		}
		next = append(next, v)
	}
	if !found {
		next = append(next, id)
	}
	b, err := json.Marshal(next)
	if err != nil {
		return false, err
	}
	if err := uc.store.Put(ctx, domain.KeyFavorites, b); err != nil {
		return false, errors.Wrap(err, "favoritos")
	}
	uc.ids = next
	return !found, nil
}

func (uc *FavoritesUC) Has(id string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, v := range uc.ids {
		if v == id {
			return true
		}
	}
	return false
}

func (uc *FavoritesUC) List() []string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]string, len(uc.ids))
	copy(out, uc.ids)
	return out
}
