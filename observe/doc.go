// Package observe provides the change-notification substrate used by the
// livefolio entities.
//
// Every observable value owns a [Notifier]. Mutations append [Record]s to the
// notifier's pending batch, and a [Scheduler] delivers each pending batch once,
// in order, to the observers subscribed at delivery time. Delivery is deferred
// to the end of the current unit of work so that related mutations coalesce
// into a single batch per notifier, and so that records synthesized while a
// batch is delivered (a holding reacting to its quote, a portfolio reacting to
// its holdings) are drained in the same flush, bottom-up.
//
// A unit of work is opened with [Scheduler.Begin] or [Scheduler.Batch]. In the
// default auto mode the outermost unit flushes when it ends; a scheduler built
// with [Manual] leaves the flush to the host through [Scheduler.Flush].
//
// [Property] implements the setter discipline of an observable field: compare,
// capture the old value, mutate, then notify. [Collection] is an ordered
// collection whose only mutators are structural operations that each emit a
// record, and [CollectionObserver] keeps one subscription per distinct element
// of a collection in sync with its membership.
//
// The package is single threaded: entities of one graph must be mutated from
// one goroutine.
package observe
