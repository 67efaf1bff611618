package observe

import "fmt"

// Kind classifies a change record.
type Kind int

const (
	// Update reports that the named property changed.
	Update Kind = iota + 1
	// Insert reports elements inserted in a collection.
	Insert
	// Remove reports elements removed from a collection.
	Remove
	// Replace reports that the whole content of a collection was replaced.
	Replace
)

func (k Kind) String() string {
	switch k {
	case Update:
		return "update"
	case Insert:
		return "insert"
	case Remove:
		return "remove"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Record describes a single change of an observable.
//
// OldValue always carries the state before the change: the previous value of
// the property for Update, and a snapshot of the whole collection content for
// structural kinds. Index, Removed and Added describe structural changes only.
//
// Records are shared between all observers of a batch, they must not be
// modified.
type Record struct {
	Kind     Kind
	Name     string
	OldValue any
	Subject  Observable
	Index    int
	Removed  []any
	Added    []any

	seq uint64 // position in the notifier's history, starting at 1
}

// Structural reports whether the record describes a collection change.
func (r Record) Structural() bool {
	return r.Kind == Insert || r.Kind == Remove || r.Kind == Replace
}

func (r Record) String() string {
	switch r.Kind {
	case Update:
		return fmt.Sprintf("%v %s %s (was %v)", r.Subject, r.Kind, r.Name, r.OldValue)
	default:
		return fmt.Sprintf("%v %s at %d (-%d +%d)", r.Subject, r.Kind, r.Index, len(r.Removed), len(r.Added))
	}
}
