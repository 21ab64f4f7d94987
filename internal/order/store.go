// Package order persists the user's custom folder order and re-applies it to
// freshly flattened data.
package order

import (
	"encoding/json"
	"fmt"

	"github.com/tabgrid/tabgrid/internal/host"
)

const (
	// storageKey is the key/value record holding the folder order.
	storageKey = "folder_order_v1"

	// stateVersion is written with every record.
	stateVersion = "1.0"
)

// State is the persisted folder order record.
type State struct {
	Order   []string `json:"order"`
	Version string   `json:"version"`
}

// Store reads and writes the folder order record in host key/value storage.
type Store struct {
	kv host.KV
}

// NewStore creates a Store. kv may be nil when the storage service is not
// available in the current context; Load then degrades to an empty map and
// Save fails.
func NewStore(kv host.KV) *Store {
	return &Store{kv: kv}
}

// Save writes the full ordered folder id list. Identifier validity is not
// checked here; stale ids are ignored by Apply.
func (s *Store) Save(ids []string) error {
	if s.kv == nil {
		return fmt.Errorf("save folder order: %w", host.ErrUnavailable)
	}
	data, err := json.Marshal(State{Order: ids, Version: stateVersion})
	if err != nil {
		return fmt.Errorf("encode folder order: %w", err)
	}
	if err := s.kv.Set(storageKey, data); err != nil {
		return fmt.Errorf("save folder order: %w", err)
	}
	return nil
}

// Load returns a map from folder id to its 0-based rank in the stored order.
// A missing record, an unreadable record, or an absent storage service all
// yield an empty map so the grid falls back to fetch order.
func (s *Store) Load() map[string]int {
	rank := make(map[string]int)
	if s.kv == nil {
		return rank
	}

	data, ok, err := s.kv.Get(storageKey)
	if err != nil || !ok {
		return rank
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return rank
	}

	for i, id := range state.Order {
		rank[id] = i
	}
	return rank
}
