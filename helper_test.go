package livefolio

import (
	"fmt"
	"testing"

	"github.com/etnz/livefolio/observe"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// collector subscribes to observables and keeps every delivered batch.
type collector struct {
	batches [][]observe.Record
}

func collect(t *testing.T, targets ...observe.Observable) *collector {
	t.Helper()
	c := &collector{}
	for _, o := range targets {
		if _, err := observe.Subscribe(o, func(batch []observe.Record) { c.batches = append(c.batches, batch) }); err != nil {
			t.Fatalf("Subscribe(%v) error = %v", o, err)
		}
	}
	return c
}

func (c *collector) records() []observe.Record {
	var res []observe.Record
	for _, b := range c.batches {
		res = append(res, b...)
	}
	return res
}

func (c *collector) reset() { c.batches = nil }

// lines renders records as "subject name old" lines, easy to diff.
func lines(records []observe.Record) []string {
	var res []string
	for _, r := range records {
		switch r.Kind {
		case observe.Update:
			res = append(res, fmt.Sprintf("%s %s %s", Describe(r.Subject), r.Name, describeOld(r.OldValue)))
		default:
			res = append(res, fmt.Sprintf("%s %s %d", Describe(r.Subject), r.Kind, r.Index))
		}
	}
	return res
}

func describeOld(v any) string {
	switch v := v.(type) {
	case Money:
		return v.Decimal().StringFixed(2)
	case Quantity:
		return v.String()
	default:
		return fmt.Sprint(encodeValue(v))
	}
}

// graph is the sample graph (four quotes, two portfolios sharing YHOO) on its
// own scheduler.
type graph struct {
	sched                 *observe.Scheduler
	yhoo, aapl, goog, qqq *Quote
	techYHOO, techAAPL    *Holding
	techQQQ               *Holding
	netYHOO, netGOOG      *Holding
	tech, internet        *Portfolio
}

func newGraph(t *testing.T, opts ...observe.SchedulerOption) *graph {
	t.Helper()
	g := &graph{sched: observe.NewScheduler(opts...)}
	with := WithScheduler(g.sched)
	g.yhoo = must(NewQuote("YHOO", USD(40), with))
	g.aapl = must(NewQuote("AAPL", USD(543), with))
	g.goog = must(NewQuote("GOOG", USD(1117), with))
	g.qqq = must(NewQuote("QQQ", USD(86.31), with))
	g.techYHOO = must(NewHolding(g.yhoo, Q(50), with))
	g.techAAPL = must(NewHolding(g.aapl, Q(10), with))
	g.techQQQ = must(NewHolding(g.qqq, Q(200), with))
	g.netYHOO = must(NewHolding(g.yhoo, Q(500), with))
	g.netGOOG = must(NewHolding(g.goog, Q(50), with))
	g.tech = must(NewPortfolio("Tech", []*Holding{g.techYHOO, g.techAAPL, g.techQQQ}, with))
	g.internet = must(NewPortfolio("Internet", []*Holding{g.netYHOO, g.netGOOG}, with))
	return g
}
