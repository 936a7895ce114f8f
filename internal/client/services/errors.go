package services

import "errors"

// ErrCapabilityDenied is returned by a pre-flight capability check before
// any network activity. Advisory only: the server re-enforces every rule.
var ErrCapabilityDenied = errors.New("capability denied")
