// Package livefolio keeps portfolio valuations live.
//
// The valuation graph has three tiers:
//   - Quote: a ticker and its current price, the source of every change.
//   - Holding: a number of shares of one Quote, valued price × shares.
//   - Portfolio: a named, ordered collection of holdings, valued as the sum
//     of their values.
//
// Values are never cached, they are computed from the current inputs on every
// read. What is propagated is change: every accepted write emits a change
// record carrying the previous value, and every computed value that changed as
// a consequence gets a synthesized record with its own previous value. A price
// change of a Quote is therefore observed as a "price" record on the quote, a
// "value" record on each holding of that quote and a "value" record on each
// portfolio holding them.
//
// Records are delivered through the observe package: in batches, once per unit
// of work, bottom-up. Writes made inside observe.Scheduler.Batch are delivered
// together when the batch ends.
//
//	yhoo, _ := livefolio.NewQuote("YHOO", livefolio.M(40, "USD"))
//	h, _ := livefolio.NewHolding(yhoo, livefolio.Q(50))
//	tech, _ := livefolio.NewPortfolio("Tech", []*livefolio.Holding{h})
//	observe.Subscribe(tech, func(batch []observe.Record) { ... })
//	yhoo.SetPrice(livefolio.M(50, "USD")) // tech observes value 2000 -> 2500
//
// Scenarios (YAML) describe a set of quotes, portfolios and a list of steps;
// they drive the `lfo` command line tool.
package livefolio
