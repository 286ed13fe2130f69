package reconcile

// ChangeKind classifies a difference between two snapshots.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeRemoved ChangeKind = "removed"
	ChangeChanged ChangeKind = "changed"
)

// Change describes how a single keyed entity differs between two snapshots.
type Change struct {
	// Key identifies the entity.
	Key string `json:"key" yaml:"key"`

	// Kind is added, removed or changed.
	Kind ChangeKind `json:"kind" yaml:"kind"`

	// Mismatch lists field differences for changed entities,
	// e.g. "value_type: cfg.Item -> cfg.ItemWeapon".
	Mismatch []string `json:"mismatch,omitempty" yaml:"mismatch,omitempty"`
}

// Adapter provides the entity-specific parts of a diff.
type Adapter[T any] interface {
	// Key returns the unique key of an entity.
	Key(item T) string

	// Compare returns descriptions of the differing fields, or nil when equal.
	Compare(prev, next T) []string
}
