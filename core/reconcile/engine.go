package reconcile

import "sort"

// Diff reports the changes needed to go from prev to next.
// When a key occurs more than once in a snapshot the last occurrence wins.
func Diff[T any](prev, next []T, adapter Adapter[T]) []Change {
	prevIndex := buildIndex(prev, adapter)
	nextIndex := buildIndex(next, adapter)

	changes := []Change{}
	for key, p := range prevIndex {
		n, ok := nextIndex[key]
		if !ok {
			changes = append(changes, Change{Key: key, Kind: ChangeRemoved})
			continue
		}
		if mismatch := adapter.Compare(p, n); len(mismatch) > 0 {
			changes = append(changes, Change{Key: key, Kind: ChangeChanged, Mismatch: mismatch})
		}
	}
	for key := range nextIndex {
		if _, ok := prevIndex[key]; !ok {
			changes = append(changes, Change{Key: key, Kind: ChangeAdded})
		}
	}

	// Sort results by key for deterministic output
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Key < changes[j].Key
	})
	return changes
}

func buildIndex[T any](items []T, adapter Adapter[T]) map[string]T {
	index := make(map[string]T, len(items))
	for _, item := range items {
		index[adapter.Key(item)] = item
	}
	return index
}
