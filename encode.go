package livefolio

import (
	"fmt"
	"io"

	"github.com/etnz/livefolio/observe"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Lookuper is implemented by entities that can report the current value of a
// property by name.
type Lookuper interface {
	Lookup(name string) (any, bool)
}

// EncodeRecords writes batch as JSONL, one object per record, with the fields
// in a stable order: kind, subject, name, oldValue, value, index, removed,
// added. The current value is read from the subject when it is a Lookuper.
func EncodeRecords(w io.Writer, batch []observe.Record) error {
	for _, r := range batch {
		b, err := MarshalRecord(r)
		if err != nil {
			return err
		}
		b = append(b, '\n')
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// MarshalRecord returns the JSON object of a single record.
func MarshalRecord(r observe.Record) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", r.Kind.String())
	w.Optional("subject", Describe(r.Subject))
	w.Optional("name", r.Name)
	w.Append("oldValue", encodeValue(r.OldValue))
	if r.Kind == observe.Update {
		if l, ok := r.Subject.(Lookuper); ok {
			if v, ok := l.Lookup(r.Name); ok {
				w.Append("value", encodeValue(v))
			}
		}
	}
	if r.Structural() {
		w.Append("index", r.Index)
		w.Optional("removed", describeAll(r.Removed))
		w.Optional("added", describeAll(r.Added))
	}
	return w.MarshalJSON()
}

// Describe returns the short text used to name v in reports and records.
func Describe(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case *Holding:
		return v.Ticker()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func describeAll[T any](values []T) []string {
	var res []string
	for _, v := range values {
		res = append(res, Describe(v))
	}
	return res
}

// encodeValue turns property values into JSON friendly values.
func encodeValue(v any) any {
	switch v := v.(type) {
	case Money, Quantity, string, int:
		return v
	case *observe.Collection[*Holding]:
		return describeAll(v.Items())
	case []*Holding:
		return describeAll(v)
	default:
		return Describe(v)
	}
}
