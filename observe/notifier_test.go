package observe

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// counter is a minimal observable used across the package tests.
type counter struct {
	n     *Notifier
	value Property[int]
	name  string
}

func newCounter(s *Scheduler, name string, v int) *counter {
	return &counter{n: NewNotifier(s, name), value: NewProperty("value", v, Comparable[int]), name: name}
}

func (c *counter) Notifier() *Notifier { return c.n }
func (c *counter) String() string      { return c.name }

func (c *counter) Set(v int) {
	defer c.n.Scheduler().Begin()()
	c.value.Set(c, v)
}

// recorder collects delivered batches.
type recorder struct {
	batches [][]Record
}

func (r *recorder) Observe(batch []Record) { r.batches = append(r.batches, batch) }

func (r *recorder) records() []Record {
	var res []Record
	for _, b := range r.batches {
		res = append(res, b...)
	}
	return res
}

func oldValues(records []Record) []any {
	var res []any
	for _, r := range records {
		res = append(res, r.OldValue)
	}
	return res
}

func TestNotifier_BatchDeliveredOnce(t *testing.T) {
	s := NewScheduler()
	c := newCounter(s, "c", 0)
	rec := &recorder{}
	c.Notifier().Subscribe(rec)

	s.Batch(func() {
		c.Set(1)
		c.Set(2)
		c.Set(3)
		if got := c.Notifier().Pending(); got != 3 {
			t.Errorf("Pending() inside batch = %d, want 3", got)
		}
	})

	if len(rec.batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(rec.batches))
	}
	if diff := cmp.Diff([]any{0, 1, 2}, oldValues(rec.batches[0])); diff != "" {
		t.Errorf("old values mismatch (-want +got):\n%s", diff)
	}
	if c.Notifier().Pending() != 0 {
		t.Errorf("batch not cleared after delivery")
	}
}

func TestNotifier_NoOpWriteEmitsNothing(t *testing.T) {
	s := NewScheduler()
	c := newCounter(s, "c", 7)
	rec := &recorder{}
	c.Notifier().Subscribe(rec)

	c.Set(7)

	if len(rec.batches) != 0 {
		t.Errorf("writing the current value delivered %d batches, want 0", len(rec.batches))
	}
}

func TestNotifier_SubscribeIsIdempotent(t *testing.T) {
	s := NewScheduler()
	c := newCounter(s, "c", 0)
	rec := &recorder{}
	h1 := c.Notifier().Subscribe(rec)
	h2 := c.Notifier().Subscribe(rec)
	if h1 != h2 {
		t.Errorf("subscribing twice returned different handles %v and %v", h1, h2)
	}
	c.Set(1)
	if len(rec.batches) != 1 {
		t.Errorf("got %d batches, want 1", len(rec.batches))
	}
}

// wrapped is comparable by type but holds a function.
type wrapped struct{ Observer }

func TestNotifier_SubscribeValueObserver(t *testing.T) {
	s := NewScheduler()
	c := newCounter(s, "c", 0)
	var n int
	o := wrapped{ObserverFunc(func([]Record) { n++ })}
	c.Notifier().Subscribe(o)
	c.Notifier().Subscribe(o)
	c.Notifier().Subscribe(&recorder{})
	c.Notifier().Subscribe(o)

	if got := c.Notifier().Observers(); got != 4 {
		t.Errorf("Observers() = %d, want 4", got)
	}
	c.Set(1)
	if n != 3 {
		t.Errorf("value observer called %d times, want 3", n)
	}
}

func TestNotifier_UnsubscribeIsIdempotent(t *testing.T) {
	s := NewScheduler()
	c := newCounter(s, "c", 0)
	other := newCounter(s, "other", 0)
	a, b := &recorder{}, &recorder{}
	ha := c.Notifier().Subscribe(a)
	c.Notifier().Subscribe(b)
	foreign := other.Notifier().Subscribe(&recorder{})

	ha.Unsubscribe()
	ha.Unsubscribe()
	Unsubscribe(ha)
	Unsubscribe(Handle{})
	c.Notifier().Unsubscribe(foreign)

	if got := c.Notifier().Observers(); got != 1 {
		t.Errorf("Observers() = %d, want 1", got)
	}
	if !foreign.Active() {
		t.Errorf("a handle of another notifier was removed")
	}
	c.Set(1)
	if len(a.batches) != 0 || len(b.batches) != 1 {
		t.Errorf("got %d/%d batches, want 0/1", len(a.batches), len(b.batches))
	}
}

func TestNotifier_UnsubscribeDuringDelivery(t *testing.T) {
	s := NewScheduler()
	c := newCounter(s, "c", 0)
	late := &recorder{}
	var hLate Handle
	c.Notifier().Subscribe(ObserverFunc(func([]Record) { hLate.Unsubscribe() }))
	hLate = c.Notifier().Subscribe(late)

	c.Set(1)
	if len(late.batches) != 1 {
		t.Fatalf("observer removed mid-delivery got %d batches, want the in-flight one", len(late.batches))
	}
	c.Set(2)
	if len(late.batches) != 1 {
		t.Errorf("observer removed mid-delivery got %d batches, want no more", len(late.batches))
	}
}

func TestSubscribe_InvalidArgument(t *testing.T) {
	var nilCounter *counter
	testCases := []struct {
		name string
		o    Observable
		fn   func([]Record)
	}{
		{"nil observable", nil, func([]Record) {}},
		{"nil pointer", nilCounter, func([]Record) {}},
		{"nil observer", newCounter(nil, "c", 0), nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Subscribe(tc.o, tc.fn)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Subscribe() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	testCases := []struct {
		kind Kind
		want string
	}{
		{Update, "update"},
		{Insert, "insert"},
		{Remove, "remove"},
		{Replace, "replace"},
		{Kind(42), "kind(42)"},
	}
	for _, tc := range testCases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tc.kind), got, tc.want)
		}
	}
}
