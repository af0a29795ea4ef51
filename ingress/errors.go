package ingress

import "errors"

// errSourceClosed is returned by a Source once its backing channel is
// closed and drained; the dispatcher treats it as a clean worker exit,
// not a failure.
var errSourceClosed = errors.New("ingress: source closed")
