package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure layers return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: a source (file, bucket, resource) does not exist
// - ErrUnavailable: the backing store failed, timed out or throttled
// - ErrInvalidState: stored data could not be decoded into a valid version
//
// Version stores never report absence as an error; a missing chain is an
// empty result. For validation errors use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidState = errors.New("invalid state")
)
