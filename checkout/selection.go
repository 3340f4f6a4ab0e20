package checkout

import (
	"sort"

	"github.com/zaidqureshi-dev/menuorder-api/models"
)

// GlobalKey scopes selections of steps that are not per-instance.
const GlobalKey = "_global"

// SelectionStore is the wizard's mutable state: stepID -> (instanceID or
// GlobalKey) -> set of chosen option ids.
type SelectionStore struct {
	sel map[uint]map[string]map[uint]struct{}
}

func NewSelectionStore() *SelectionStore {
	return &SelectionStore{sel: make(map[uint]map[string]map[uint]struct{})}
}

func (s *SelectionStore) bucket(stepID uint, key string) map[uint]struct{} {
	byKey, ok := s.sel[stepID]
	if !ok {
		byKey = make(map[string]map[uint]struct{})
		s.sel[stepID] = byKey
	}
	set, ok := byKey[key]
	if !ok {
		set = make(map[uint]struct{})
		byKey[key] = set
	}
	return set
}

// Toggle flips an option for the given scope key. Single-select steps replace
// the previous choice; multi-select steps toggle, bounded by MaxSelections.
// Picking the sentinel "none" option clears the other choices, and picking a
// real option clears the sentinel. Returns false when the toggle was refused.
func (s *SelectionStore) Toggle(step models.CheckoutStep, key string, optionID uint) bool {
	set := s.bucket(step.ID, key)

	if _, on := set[optionID]; on {
		delete(set, optionID)
		return true
	}

	opt, known := step.FindOption(optionID)
	if !known {
		return false
	}

	if !step.MultiSelect {
		for id := range set {
			delete(set, id)
		}
		set[optionID] = struct{}{}
		return true
	}

	if opt.IsNone {
		for id := range set {
			delete(set, id)
		}
		set[optionID] = struct{}{}
		return true
	}

	// adding a real option drops the sentinel
	for id := range set {
		if o, ok := step.FindOption(id); ok && o.IsNone {
			delete(set, id)
		}
	}
	if step.MaxSelections > 0 && len(set) >= step.MaxSelections {
		return false
	}
	set[optionID] = struct{}{}
	return true
}

// Selected returns the chosen option ids for a scope key, in ascending order.
func (s *SelectionStore) Selected(stepID uint, key string) []uint {
	byKey, ok := s.sel[stepID]
	if !ok {
		return nil
	}
	set, ok := byKey[key]
	if !ok || len(set) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *SelectionStore) Has(stepID uint, key string, optionID uint) bool {
	if byKey, ok := s.sel[stepID]; ok {
		if set, ok := byKey[key]; ok {
			_, on := set[optionID]
			return on
		}
	}
	return false
}

// PruneInstance drops every selection keyed by a removed cart instance so
// stale entries never leak into pricing.
func (s *SelectionStore) PruneInstance(instanceID string) {
	for _, byKey := range s.sel {
		delete(byKey, instanceID)
	}
}

func (s *SelectionStore) Clear() {
	s.sel = make(map[uint]map[string]map[uint]struct{})
}
