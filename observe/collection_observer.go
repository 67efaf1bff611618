package observe

import "fmt"

// CollectionObserver watches a collection and every distinct element in it.
//
// It holds exactly one subscription per distinct element of the attached
// collection, re-wired as structural records are delivered. Removed elements
// are unsubscribed before OnStructure runs.
type CollectionObserver[T Element] struct {
	coll   *Collection[T]
	handle Handle
	since  uint64 // records of coll up to this sequence predate Attach
	elems  map[T]*elementSub[T]

	onStructure func(batch []Record)
	onElement   func(elem T, count int, r Record)
}

type elementSub[T Element] struct {
	count  int
	handle Handle
}

// NewCollectionObserver returns a detached observer.
//
// onStructure receives the structural records of each batch delivered by the
// collection, after subscriptions have been updated. onElement receives every
// record of the elements that are still members when it is delivered, with
// the number of times the element occurs in the collection. Either may be nil.
func NewCollectionObserver[T Element](onStructure func(batch []Record), onElement func(elem T, count int, r Record)) *CollectionObserver[T] {
	return &CollectionObserver[T]{
		elems:       make(map[T]*elementSub[T]),
		onStructure: onStructure,
		onElement:   onElement,
	}
}

// Collection returns the attached collection, nil when detached.
func (o *CollectionObserver[T]) Collection() *Collection[T] { return o.coll }

// Subscriptions returns the number of live element subscriptions.
func (o *CollectionObserver[T]) Subscriptions() int { return len(o.elems) }

// Subscribed reports whether e currently has a subscription.
func (o *CollectionObserver[T]) Subscribed(e T) bool {
	_, ok := o.elems[e]
	return ok
}

// Attach subscribes to c and to each of its elements. The observer is first
// detached from any previous collection. Records queued by c before Attach
// are not observed.
func (o *CollectionObserver[T]) Attach(c *Collection[T]) error {
	if c == nil {
		return fmt.Errorf("attach to a nil collection: %w", ErrInvalidArgument)
	}
	o.Detach()
	o.coll = c
	o.since = c.notifier.seq
	o.handle = c.notifier.Subscribe(ObserverFunc(o.observeCollection))
	for _, e := range c.items {
		o.retain(e)
	}
	return nil
}

// Detach unsubscribes from the collection and from every element.
func (o *CollectionObserver[T]) Detach() {
	if o.coll == nil {
		return
	}
	o.handle.Unsubscribe()
	for e, sub := range o.elems {
		sub.handle.Unsubscribe()
		delete(o.elems, e)
	}
	o.coll, o.handle, o.since = nil, Handle{}, 0
}

func (o *CollectionObserver[T]) retain(e T) {
	sub, ok := o.elems[e]
	if !ok {
		sub = &elementSub[T]{}
		sub.handle = e.Notifier().Subscribe(ObserverFunc(func(batch []Record) {
			o.observeElement(e, batch)
		}))
		o.elems[e] = sub
	}
	sub.count++
}

func (o *CollectionObserver[T]) release(e T) {
	sub, ok := o.elems[e]
	if !ok {
		return
	}
	sub.count--
	if sub.count <= 0 {
		sub.handle.Unsubscribe()
		delete(o.elems, e)
	}
}

func (o *CollectionObserver[T]) observeCollection(batch []Record) {
	coll := o.coll
	if coll == nil {
		return
	}
	var structural []Record
	for _, r := range batch {
		if r.Subject != Observable(coll) || r.seq <= o.since || !r.Structural() {
			continue
		}
		for _, e := range r.Removed {
			o.release(e.(T))
		}
		for _, e := range r.Added {
			o.retain(e.(T))
		}
		structural = append(structural, r)
	}
	if len(structural) > 0 && o.onStructure != nil {
		o.onStructure(structural)
	}
}

func (o *CollectionObserver[T]) observeElement(e T, batch []Record) {
	for _, r := range batch {
		// the collection may have been detached, or e removed, by a previous
		// record of this batch.
		if o.coll == nil {
			return
		}
		count := o.coll.Count(e)
		if count == 0 {
			return
		}
		if o.onElement != nil {
			o.onElement(e, count, r)
		}
	}
}
