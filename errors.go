package livefolio

import "github.com/etnz/livefolio/observe"

// ErrInvalidArgument is wrapped by the errors of constructors and setters
// given malformed input.
var ErrInvalidArgument = observe.ErrInvalidArgument
