package timeline

import "errors"

// Sentinel errors returned by edit-API and direct-mutator functions.
// Internal invariant violations never panic; they are refused here and
// surfaced as one of these, per the "never throw past the edit API
// boundary" rule.
var (
	ErrUnknownID     = errors.New("timeline: unknown id")
	ErrOverlap       = errors.New("timeline: clip would overlap an existing clip")
	ErrInvalidRange  = errors.New("timeline: invalid time range")
	ErrWrongTrack    = errors.New("timeline: clip does not belong to that track")
	ErrDuplicateEdge = errors.New("timeline: a transition already exists for that clip pair")
	ErrCrossTrack    = errors.New("timeline: transitions between clips on different tracks are not supported")
)
