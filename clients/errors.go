package clients

import "errors"

// ErrNotFound is returned for 404 responses from the platform, e.g. an
// unknown coupon code or restaurant id.
var ErrNotFound = errors.New("not found")
