package livefolio

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/livefolio/observe"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleYAML string

// SampleYAML returns the YAML of the sample scenario.
func SampleYAML() string { return sampleYAML }

// SampleScenario returns the sample scenario: four quotes, two portfolios
// sharing YHOO, and two price moves.
func SampleScenario() *Scenario {
	s, err := LoadScenario(strings.NewReader(sampleYAML))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded sample: %v", err))
	}
	return s
}

// Amount is a decimal number in a scenario file.
type Amount struct {
	decimal.Decimal
}

// UnmarshalYAML parses the scalar as a decimal, keeping every digit.
func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a number", node.Line)
	}
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid amount %q: %w", node.Line, node.Value, err)
	}
	a.Decimal = d
	return nil
}

// Scenario describes a valuation graph and the mutations to apply to it.
type Scenario struct {
	Quotes     []QuoteSpec     `yaml:"quotes"`
	Portfolios []PortfolioSpec `yaml:"portfolios"`
	Steps      []Step          `yaml:"steps"`
}

type QuoteSpec struct {
	Ticker   string `yaml:"ticker"`
	Price    Amount `yaml:"price"`
	Currency string `yaml:"currency"`
}

type PortfolioSpec struct {
	Name     string        `yaml:"name"`
	Holdings []HoldingSpec `yaml:"holdings"`
}

type HoldingSpec struct {
	Ticker string `yaml:"ticker"`
	Shares Amount `yaml:"shares"`
}

// Step is one mutation of the graph. Exactly one field is set.
type Step struct {
	Price   *PriceStep   `yaml:"price,omitempty"`
	Shares  *SharesStep  `yaml:"shares,omitempty"`
	Insert  *InsertStep  `yaml:"insert,omitempty"`
	Remove  *RemoveStep  `yaml:"remove,omitempty"`
	Rename  *RenameStep  `yaml:"rename,omitempty"`
	Replace *ReplaceStep `yaml:"replace,omitempty"`
}

// PriceStep sets (Set) or moves (Add) the price of a quote.
type PriceStep struct {
	Ticker string  `yaml:"ticker"`
	Set    *Amount `yaml:"set,omitempty"`
	Add    *Amount `yaml:"add,omitempty"`
}

// SharesStep sets the shares of the holding at Index in a portfolio.
type SharesStep struct {
	Portfolio string `yaml:"portfolio"`
	Index     int    `yaml:"index"`
	Shares    Amount `yaml:"shares"`
}

// InsertStep inserts a new holding in a portfolio, at the end if Index is
// not set.
type InsertStep struct {
	Portfolio string `yaml:"portfolio"`
	Index     *int   `yaml:"index,omitempty"`
	Ticker    string `yaml:"ticker"`
	Shares    Amount `yaml:"shares"`
}

// RemoveStep removes Count (default 1) holdings at Index.
type RemoveStep struct {
	Portfolio string `yaml:"portfolio"`
	Index     int    `yaml:"index"`
	Count     int    `yaml:"count,omitempty"`
}

type RenameStep struct {
	Portfolio string `yaml:"portfolio"`
	Name      string `yaml:"name"`
}

// ReplaceStep replaces all the holdings of a portfolio.
type ReplaceStep struct {
	Portfolio string        `yaml:"portfolio"`
	Holdings  []HoldingSpec `yaml:"holdings"`
}

// LoadScenario decodes and validates a YAML scenario.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse scenario from YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}
	return &s, nil
}

// Validate checks the references between quotes, portfolios and steps.
func (s *Scenario) Validate() error {
	tickers := make(map[string]bool)
	for i, q := range s.Quotes {
		if q.Ticker == "" {
			return fmt.Errorf("quote %d must have a ticker", i)
		}
		if tickers[q.Ticker] {
			return fmt.Errorf("quote %q is declared twice", q.Ticker)
		}
		tickers[q.Ticker] = true
		if q.Currency != "" {
			if err := ValidateCurrency(q.Currency); err != nil {
				return fmt.Errorf("quote %q: %w", q.Ticker, err)
			}
		}
	}
	holdings := func(where string, hs []HoldingSpec) error {
		for _, h := range hs {
			if !tickers[h.Ticker] {
				return fmt.Errorf("%s: unknown ticker %q", where, h.Ticker)
			}
		}
		return nil
	}
	// names holds the current name of every portfolio, steps rename them.
	names := make(map[string]bool)
	for i, p := range s.Portfolios {
		if p.Name == "" {
			return fmt.Errorf("portfolio %d must have a name", i)
		}
		if names[p.Name] {
			return fmt.Errorf("portfolio %q is declared twice", p.Name)
		}
		names[p.Name] = true
		if err := holdings("portfolio "+p.Name, p.Holdings); err != nil {
			return err
		}
	}
	for i, st := range s.Steps {
		where := fmt.Sprintf("step %d", i+1)
		if n := st.actions(); n != 1 {
			return fmt.Errorf("%s must have exactly one action, got %d", where, n)
		}
		var portfolio string
		switch {
		case st.Price != nil:
			if !tickers[st.Price.Ticker] {
				return fmt.Errorf("%s: unknown ticker %q", where, st.Price.Ticker)
			}
			if (st.Price.Set == nil) == (st.Price.Add == nil) {
				return fmt.Errorf("%s: price needs exactly one of set or add", where)
			}
		case st.Shares != nil:
			portfolio = st.Shares.Portfolio
		case st.Insert != nil:
			portfolio = st.Insert.Portfolio
			if !tickers[st.Insert.Ticker] {
				return fmt.Errorf("%s: unknown ticker %q", where, st.Insert.Ticker)
			}
		case st.Remove != nil:
			portfolio = st.Remove.Portfolio
			if st.Remove.Count < 0 {
				return fmt.Errorf("%s: negative count", where)
			}
		case st.Rename != nil:
			portfolio = st.Rename.Portfolio
			if st.Rename.Name == "" {
				return fmt.Errorf("%s: empty name", where)
			}
		case st.Replace != nil:
			portfolio = st.Replace.Portfolio
			if err := holdings(where, st.Replace.Holdings); err != nil {
				return err
			}
		}
		if portfolio != "" && !names[portfolio] {
			return fmt.Errorf("%s: unknown portfolio %q", where, portfolio)
		}
		if r := st.Rename; r != nil && r.Name != r.Portfolio {
			if names[r.Name] {
				return fmt.Errorf("%s: portfolio %q already exists", where, r.Name)
			}
			delete(names, r.Portfolio)
			names[r.Name] = true
		}
	}
	return nil
}

func (st Step) actions() int {
	n := 0
	for _, set := range []bool{st.Price != nil, st.Shares != nil, st.Insert != nil, st.Remove != nil, st.Rename != nil, st.Replace != nil} {
		if set {
			n++
		}
	}
	return n
}

// Book is the valuation graph built from a scenario.
type Book struct {
	scheduler  *observe.Scheduler
	opts       []Option
	quotes     []*Quote
	portfolios []*Portfolio
}

// Build creates the quotes, holdings and portfolios of the scenario. Every
// entity shares one scheduler, the one given in opts or a new auto flushing
// one.
func (s *Scenario) Build(opts ...Option) (*Book, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scheduler == nil {
		o.scheduler = observe.NewScheduler()
	}
	b := &Book{scheduler: o.scheduler, opts: []Option{WithScheduler(o.scheduler)}}

	for _, qs := range s.Quotes {
		q, err := NewQuote(qs.Ticker, M(qs.Price.Decimal, qs.Currency), b.opts...)
		if err != nil {
			return nil, err
		}
		b.quotes = append(b.quotes, q)
	}
	for _, ps := range s.Portfolios {
		holdings, err := b.newHoldings(ps.Holdings)
		if err != nil {
			return nil, fmt.Errorf("portfolio %s: %w", ps.Name, err)
		}
		p, err := NewPortfolio(ps.Name, holdings, b.opts...)
		if err != nil {
			return nil, err
		}
		b.portfolios = append(b.portfolios, p)
	}
	return b, nil
}

// Scheduler returns the scheduler shared by the book's entities.
func (b *Book) Scheduler() *observe.Scheduler { return b.scheduler }

// Quotes returns the quotes in declaration order.
func (b *Book) Quotes() []*Quote { return b.quotes }

// Portfolios returns the portfolios in declaration order.
func (b *Book) Portfolios() []*Portfolio { return b.portfolios }

// Quote returns the quote of ticker.
func (b *Book) Quote(ticker string) (*Quote, bool) {
	for _, q := range b.quotes {
		if q.Ticker() == ticker {
			return q, true
		}
	}
	return nil, false
}

// Portfolio returns the portfolio currently named name.
func (b *Book) Portfolio(name string) (*Portfolio, bool) {
	for _, p := range b.portfolios {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

func (b *Book) newHoldings(specs []HoldingSpec) ([]*Holding, error) {
	var res []*Holding
	for _, hs := range specs {
		q, ok := b.Quote(hs.Ticker)
		if !ok {
			return nil, fmt.Errorf("unknown ticker %q: %w", hs.Ticker, ErrInvalidArgument)
		}
		h, err := NewHolding(q, Q(hs.Shares.Decimal), b.opts...)
		if err != nil {
			return nil, err
		}
		res = append(res, h)
	}
	return res, nil
}

// Run applies the steps in order, each one as a unit of work.
func (b *Book) Run(steps []Step) error {
	for i, st := range steps {
		if err := b.Apply(st); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Apply applies a single step as one unit of work: its records are delivered
// when it returns.
func (b *Book) Apply(st Step) (err error) {
	b.scheduler.Batch(func() { err = b.apply(st) })
	return err
}

func (b *Book) apply(st Step) error {
	portfolio := func(name string) (*Portfolio, error) {
		p, ok := b.Portfolio(name)
		if !ok {
			return nil, fmt.Errorf("unknown portfolio %q: %w", name, ErrInvalidArgument)
		}
		return p, nil
	}

	switch {
	case st.Price != nil:
		q, ok := b.Quote(st.Price.Ticker)
		if !ok {
			return fmt.Errorf("unknown ticker %q: %w", st.Price.Ticker, ErrInvalidArgument)
		}
		if st.Price.Set != nil {
			return q.SetPrice(M(st.Price.Set.Decimal, q.Currency()))
		}
		if st.Price.Add != nil {
			return q.SetPrice(q.Price().Add(M(st.Price.Add.Decimal, q.Currency())))
		}
		return nil

	case st.Shares != nil:
		p, err := portfolio(st.Shares.Portfolio)
		if err != nil {
			return err
		}
		hs := p.Holdings()
		if st.Shares.Index < 0 || st.Shares.Index >= hs.Len() {
			return fmt.Errorf("no holding %d in %s: %w", st.Shares.Index, p.Name(), ErrInvalidArgument)
		}
		hs.At(st.Shares.Index).SetShares(Q(st.Shares.Shares.Decimal))
		return nil

	case st.Insert != nil:
		p, err := portfolio(st.Insert.Portfolio)
		if err != nil {
			return err
		}
		holdings, err := b.newHoldings([]HoldingSpec{{Ticker: st.Insert.Ticker, Shares: st.Insert.Shares}})
		if err != nil {
			return err
		}
		if st.Insert.Index == nil {
			return p.Holdings().Append(holdings...)
		}
		return p.Holdings().Insert(*st.Insert.Index, holdings...)

	case st.Remove != nil:
		p, err := portfolio(st.Remove.Portfolio)
		if err != nil {
			return err
		}
		count := st.Remove.Count
		if count == 0 {
			count = 1
		}
		return p.Holdings().Remove(st.Remove.Index, count)

	case st.Rename != nil:
		p, err := portfolio(st.Rename.Portfolio)
		if err != nil {
			return err
		}
		p.SetName(st.Rename.Name)
		return nil

	case st.Replace != nil:
		p, err := portfolio(st.Replace.Portfolio)
		if err != nil {
			return err
		}
		holdings, err := b.newHoldings(st.Replace.Holdings)
		if err != nil {
			return err
		}
		return p.SetHoldings(holdings)
	}
	return fmt.Errorf("empty step: %w", ErrInvalidArgument)
}
