package observe

import "go.uber.org/zap"

// Scheduler is the deferred delivery queue shared by the notifiers of one
// entity graph.
//
// Notifiers register themselves the first time a record is queued, and Flush
// delivers their batches in that order. Batches produced while flushing are
// appended to the queue and drained by the same flush, so a chain of
// observers settles before Flush returns.
type Scheduler struct {
	queue    []*Notifier
	depth    int
	flushing bool
	manual   bool
	log      *zap.Logger
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// Manual disables the flush at the end of units of work. The host is then
// responsible for calling Flush.
func Manual() SchedulerOption {
	return func(s *Scheduler) { s.manual = true }
}

// WithLogger traces deliveries at debug level.
func WithLogger(l *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// NewScheduler returns an auto flushing scheduler unless Manual is given.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultScheduler = NewScheduler()

// Default returns the process wide auto flushing scheduler.
func Default() *Scheduler { return defaultScheduler }

func (s *Scheduler) enqueue(n *Notifier) {
	s.queue = append(s.queue, n)
}

// Pending returns the number of notifiers waiting for delivery.
func (s *Scheduler) Pending() int { return len(s.queue) }

// Begin opens a unit of work and returns the function closing it. Units nest;
// closing the outermost one flushes, unless the scheduler is manual.
//
//	defer s.Begin()()
func (s *Scheduler) Begin() (end func()) {
	s.depth++
	done := false
	return func() {
		if done {
			return
		}
		done = true
		s.depth--
		if s.depth == 0 && !s.manual {
			s.Flush()
		}
	}
}

// Batch runs fn as a single unit of work: every record it produces is
// delivered after fn returns, one batch per notifier.
func (s *Scheduler) Batch(fn func()) {
	defer s.Begin()()
	fn()
}

// Flush delivers every pending batch, including the ones produced during
// delivery. A Flush requested by an observer during a flush returns
// immediately; the running flush drains the new work.
func (s *Scheduler) Flush() {
	if s.flushing {
		return
	}
	s.flushing = true
	defer func() { s.flushing = false }()

	for len(s.queue) > 0 {
		n := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		records, observers := n.deliver()
		s.log.Debug("batch delivered",
			zap.String("notifier", n.name),
			zap.Int("records", records),
			zap.Int("observers", observers),
		)
	}
	s.queue = nil
}
