package observe

// Property is an observable field of type T.
//
// The zero value is not usable, use NewProperty.
type Property[T any] struct {
	name  string
	value T
	equal func(a, b T) bool
}

// NewProperty returns a property holding initial. equal decides whether a
// write changes the value.
func NewProperty[T any](name string, initial T, equal func(a, b T) bool) Property[T] {
	return Property[T]{name: name, value: initial, equal: equal}
}

// Comparable is the equality of comparable types, to be used with NewProperty.
func Comparable[T comparable](a, b T) bool { return a == b }

// Name returns the property name used in records.
func (p *Property[T]) Name() string { return p.name }

// Get returns the current value.
func (p *Property[T]) Get() T { return p.value }

// Set assigns v and notifies owner's observers with the previous value.
// Writing the current value is a no-op. Set reports whether the value changed.
func (p *Property[T]) Set(owner Observable, v T) bool {
	if p.equal(p.value, v) {
		return false
	}
	old := p.value
	p.value = v
	owner.Notifier().Notify(Record{
		Kind:     Update,
		Name:     p.name,
		OldValue: old,
		Subject:  owner,
	})
	return true
}
