package observe

import (
	"fmt"
	"iter"
	"slices"
)

// Element is the constraint on collection elements: observable values with an
// identity.
type Element interface {
	comparable
	Observable
}

// Collection is an ordered, observable collection of elements.
//
// Its content can only change through Splice and the helpers built on it
// (Insert, Append, Remove, RemoveAt) or through Reset. Each change emits its
// structural record(s) in the current unit of work.
type Collection[T Element] struct {
	notifier *Notifier
	name     string
	items    []T
	validate func(next []T) error
}

// NewCollection returns a collection holding a copy of items, delivering through
// s (the default scheduler if nil).
//
// validate, if not nil, is called with the would-be content before every
// change, including this initial one; an error rejects the change.
func NewCollection[T Element](s *Scheduler, name string, items []T, validate func(next []T) error) (*Collection[T], error) {
	c := &Collection[T]{
		notifier: NewNotifier(s, name),
		name:     name,
		validate: validate,
	}
	next := slices.Clone(items)
	if err := c.check(next); err != nil {
		return nil, err
	}
	c.items = next
	return c, nil
}

// Notifier implements Observable.
func (c *Collection[T]) Notifier() *Notifier { return c.notifier }

func (c *Collection[T]) String() string { return c.name }

// Len returns the number of elements.
func (c *Collection[T]) Len() int { return len(c.items) }

// At returns the element at index i.
func (c *Collection[T]) At(i int) T { return c.items[i] }

// Items returns a copy of the content.
func (c *Collection[T]) Items() []T { return slices.Clone(c.items) }

// All iterates over the index and element pairs.
func (c *Collection[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, e := range c.items {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Index returns the first index of e, or -1.
func (c *Collection[T]) Index(e T) int { return slices.Index(c.items, e) }

// Contains reports whether e is an element.
func (c *Collection[T]) Contains(e T) bool { return c.Count(e) > 0 }

// Count returns the number of occurrences of e.
func (c *Collection[T]) Count(e T) int {
	n := 0
	for _, x := range c.items {
		if x == e {
			n++
		}
	}
	return n
}

// Insert inserts items at index i.
func (c *Collection[T]) Insert(i int, items ...T) error { return c.Splice(i, 0, items...) }

// Append inserts items at the end.
func (c *Collection[T]) Append(items ...T) error { return c.Splice(len(c.items), 0, items...) }

// RemoveAt removes the element at index i.
func (c *Collection[T]) RemoveAt(i int) error { return c.Splice(i, 1) }

// Remove removes n elements starting at index i.
func (c *Collection[T]) Remove(i, n int) error { return c.Splice(i, n) }

// Splice removes n elements at index i, then inserts items at the same index.
//
// It emits a Remove record (if n > 0) followed by an Insert record (if items
// is not empty), both delivered in the same batch.
func (c *Collection[T]) Splice(i, n int, items ...T) error {
	if i < 0 || n < 0 || i+n > len(c.items) {
		return fmt.Errorf("splice %d elements at %d of %d-element %s: %w", n, i, len(c.items), c.name, ErrInvalidArgument)
	}
	if n == 0 && len(items) == 0 {
		return nil
	}
	next := slices.Concat(c.items[:i], items, c.items[i+n:])
	if err := c.check(next); err != nil {
		return err
	}

	defer c.notifier.sched.Begin()()
	old := c.items
	c.items = next
	if n > 0 {
		c.notifier.Notify(Record{
			Kind:     Remove,
			Subject:  c,
			Index:    i,
			Removed:  toAny(old[i : i+n]),
			OldValue: old,
		})
	}
	if len(items) > 0 {
		c.notifier.Notify(Record{
			Kind:     Insert,
			Subject:  c,
			Index:    i,
			Added:    toAny(items),
			OldValue: slices.Concat(old[:i], old[i+n:]),
		})
	}
	return nil
}

// Reset replaces the whole content with items and emits a single Replace
// record. Resetting to the current content is a no-op.
func (c *Collection[T]) Reset(items ...T) error {
	if slices.Equal(c.items, items) {
		return nil
	}
	next := slices.Clone(items)
	if err := c.check(next); err != nil {
		return err
	}

	defer c.notifier.sched.Begin()()
	old := c.items
	c.items = next
	c.notifier.Notify(Record{
		Kind:     Replace,
		Subject:  c,
		Removed:  toAny(old),
		Added:    toAny(next),
		OldValue: old,
	})
	return nil
}

func (c *Collection[T]) check(next []T) error {
	var zero T
	for i, e := range next {
		if e == zero || isNil(e) {
			return fmt.Errorf("nil element at %d in %s: %w", i, c.name, ErrInvalidArgument)
		}
	}
	if c.validate != nil {
		if err := c.validate(next); err != nil {
			return fmt.Errorf("%s rejected: %w: %w", c.name, ErrInvalidArgument, err)
		}
	}
	return nil
}

func toAny[T any](s []T) []any {
	res := make([]any, len(s))
	for i, e := range s {
		res[i] = e
	}
	return res
}
