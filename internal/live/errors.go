package live

import "errors"

// ErrClosed is returned by Next once the subscription is closed.
var ErrClosed = errors.New("subscription closed")
