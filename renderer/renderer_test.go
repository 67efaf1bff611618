package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/livefolio"
	"github.com/etnz/livefolio/observe"
	"github.com/google/go-cmp/cmp"
)

func sampleBook(t *testing.T) *livefolio.Book {
	t.Helper()
	b, err := livefolio.SampleScenario().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return b
}

func TestSummaryMarkdown(t *testing.T) {
	b := sampleBook(t)
	empty, err := livefolio.NewPortfolio("Cash", nil, livefolio.WithScheduler(b.Scheduler()))
	if err != nil {
		t.Fatal(err)
	}

	got := SummaryMarkdown("Portfolios", append(b.Portfolios(), empty))

	wantLines := []string{
		"# Portfolios",
		"| Tech | 3 | $24,692.00 |",
		"| Internet | 2 | $75,850.00 |",
		"| Cash | 0 | 0.00 |",
		"## Tech",
		"| YHOO | 50 | $40.00 | $2,000.00 | 8.10% |",
		"| AAPL | 10 | $543.00 | $5,430.00 | 21.99% |",
		"| QQQ | 200 | $86.31 | $17,262.00 | 69.91% |",
		"| **Total** |  |  | **$24,692.00** |  |",
		"## Internet",
		"| YHOO | 500 | $40.00 | $20,000.00 | 26.37% |",
		"| GOOG | 50 | $1,117.00 | $55,850.00 | 73.63% |",
		"## Cash",
		"*No holdings.*",
	}
	for _, want := range wantLines {
		if !strings.Contains(got, want+"\n") {
			t.Errorf("SummaryMarkdown() is missing %q, got:\n%s", want, got)
		}
	}
	if !strings.Contains(got, "| Ticker | Shares | Price | Value | Weight |\n|:--------|--------:|--------:|--------:|--------:|\n") {
		t.Errorf("SummaryMarkdown() holdings table header is not aligned, got:\n%s", got)
	}
	if strings.Count(got, "| Ticker |") != 2 {
		t.Errorf("SummaryMarkdown() should print a holdings table for non empty portfolios only, got:\n%s", got)
	}
}

func TestRecordLine(t *testing.T) {
	b := sampleBook(t)
	tech, _ := b.Portfolio("Tech")
	yhoo, _ := b.Quote("YHOO")
	goog, _ := b.Quote("GOOG")

	var got []string
	subscribe := func(o observe.Observable) {
		if _, err := observe.Subscribe(o, func(batch []observe.Record) {
			for _, r := range batch {
				got = append(got, RecordLine(r))
			}
		}); err != nil {
			t.Fatal(err)
		}
	}
	subscribe(yhoo)
	subscribe(tech.Holdings())

	if err := yhoo.SetPrice(livefolio.M(50, "USD")); err != nil {
		t.Fatal(err)
	}
	h, err := livefolio.NewHolding(goog, livefolio.Q(1), livefolio.WithScheduler(b.Scheduler()))
	if err != nil {
		t.Fatal(err)
	}
	if err := tech.Holdings().Append(h); err != nil {
		t.Fatal(err)
	}
	if err := tech.Holdings().RemoveAt(0); err != nil {
		t.Fatal(err)
	}
	if err := tech.Holdings().Reset(h); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"YHOO price: $40.00 → $50.00 (+$10.00)",
		"holdings of Tech: inserted GOOG×1 at 3",
		"holdings of Tech: removed YHOO×50 at 0",
		"holdings of Tech: replaced AAPL×10, QQQ×200, GOOG×1 by GOOG×1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RecordLine() mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordLine_Portfolio(t *testing.T) {
	b := sampleBook(t)
	tech, _ := b.Portfolio("Tech")

	var got []string
	if _, err := observe.Subscribe(tech, func(batch []observe.Record) {
		for _, r := range batch {
			got = append(got, RecordLine(r))
		}
	}); err != nil {
		t.Fatal(err)
	}
	aapl, _ := b.Quote("AAPL")
	if err := aapl.SetPrice(livefolio.M(553, "USD")); err != nil {
		t.Fatal(err)
	}
	tech.SetName("Technology")

	want := []string{
		"Tech value: $24,692.00 → $24,792.00 (+$100.00)",
		"Technology name: Tech → Technology",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RecordLine() mismatch (-want +got):\n%s", diff)
	}
}
