package observe

import (
	"reflect"
	"slices"
	"sync/atomic"
)

// Observable is implemented by every value that emits change records.
type Observable interface {
	Notifier() *Notifier
}

// Observer receives the batches delivered by a Notifier.
type Observer interface {
	Observe(batch []Record)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(batch []Record)

// Observe calls f(batch).
func (f ObserverFunc) Observe(batch []Record) { f(batch) }

// handleSeq makes handles unique across notifiers.
var handleSeq atomic.Uint64

// Handle identifies a subscription. The zero Handle is never registered.
type Handle struct {
	n  *Notifier
	id uint64
}

// Unsubscribe cancels the subscription. It is a no-op if the subscription is
// already gone.
func (h Handle) Unsubscribe() {
	if h.n != nil {
		h.n.Unsubscribe(h)
	}
}

// Active reports whether the subscription is still registered.
func (h Handle) Active() bool {
	if h.n == nil {
		return false
	}
	return slices.ContainsFunc(h.n.subs, func(s subscription) bool { return s.h == h })
}

type subscription struct {
	h Handle
	o Observer
}

// Notifier queues the change records of one observable and delivers them as a
// batch to its observers.
type Notifier struct {
	sched   *Scheduler
	name    string
	pending []Record
	queued  bool
	seq     uint64
	subs    []subscription
}

// NewNotifier returns a notifier delivering through s, or through the default
// scheduler if s is nil. The name is only used in logs.
func NewNotifier(s *Scheduler, name string) *Notifier {
	if s == nil {
		s = Default()
	}
	return &Notifier{sched: s, name: name}
}

// Scheduler returns the scheduler that delivers this notifier's batches.
func (n *Notifier) Scheduler() *Scheduler { return n.sched }

// Name returns the name given at creation.
func (n *Notifier) Name() string { return n.name }

// Notify appends r to the pending batch.
func (n *Notifier) Notify(r Record) {
	n.seq++
	r.seq = n.seq
	n.pending = append(n.pending, r)
	if !n.queued {
		n.queued = true
		n.sched.enqueue(n)
	}
}

// Pending returns the number of records waiting for delivery.
func (n *Notifier) Pending() int { return len(n.pending) }

// Observers returns the number of active subscriptions.
func (n *Notifier) Observers() int { return len(n.subs) }

// Subscribe registers o for the next deliveries and returns its handle.
//
// Subscribing a pointer observer that is already registered returns the
// existing handle. Other observers (functions, values) are always registered
// anew.
func (n *Notifier) Subscribe(o Observer) Handle {
	if o == nil {
		return Handle{}
	}
	if reflect.ValueOf(o).Kind() == reflect.Pointer {
		for _, s := range n.subs {
			// o is a pointer, comparing it cannot panic
			if s.o == o {
				return s.h
			}
		}
	}
	h := Handle{n: n, id: handleSeq.Add(1)}
	n.subs = append(n.subs, subscription{h: h, o: o})
	return h
}

// Unsubscribe removes the subscription identified by h. Unknown handles are
// ignored.
func (n *Notifier) Unsubscribe(h Handle) {
	n.subs = slices.DeleteFunc(n.subs, func(s subscription) bool { return s.h == h })
}

// deliver hands the pending batch to the current observers and clears it.
func (n *Notifier) deliver() (records, observers int) {
	batch := n.pending
	n.pending = nil
	n.queued = false
	if len(batch) == 0 {
		return 0, 0
	}
	// observers removed during the delivery still get this batch, observers
	// added during it do not.
	subs := slices.Clone(n.subs)
	for _, s := range subs {
		s.o.Observe(batch)
	}
	return len(batch), len(subs)
}
