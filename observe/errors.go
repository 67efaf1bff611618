package observe

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidArgument is wrapped by every error reporting a malformed
// construction or mutation: nil dependencies, nil elements, out of range
// indexes. These are programming errors, they are never delivered through
// notifications.
var ErrInvalidArgument = errors.New("invalid argument")

// Subscribe registers fn on o's notifier.
func Subscribe(o Observable, fn func(batch []Record)) (Handle, error) {
	if isNil(o) || o.Notifier() == nil {
		return Handle{}, fmt.Errorf("subscribe to a nil observable: %w", ErrInvalidArgument)
	}
	if fn == nil {
		return Handle{}, fmt.Errorf("subscribe a nil observer: %w", ErrInvalidArgument)
	}
	return o.Notifier().Subscribe(ObserverFunc(fn)), nil
}

// Unsubscribe cancels h. Unsubscribing twice, or a handle never registered,
// does nothing.
func Unsubscribe(h Handle) { h.Unsubscribe() }

// isNil reports whether o is nil or a nil pointer wrapped in the interface.
func isNil(o Observable) bool {
	if o == nil {
		return true
	}
	v := reflect.ValueOf(o)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
