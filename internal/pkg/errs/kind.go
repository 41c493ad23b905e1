package errs

import "errors"

// Kind groups errors by how a caller is expected to react to them.
type Kind int

const (
	// KindUnknown is returned for errors that do not originate from this package.
	KindUnknown Kind = iota
	// KindConstruction marks a malformed value or a duplicate identity key.
	// The attempted construction is never partially applied.
	KindConstruction
	// KindState marks a transition that is not allowed from the current state.
	KindState
	// KindResourceExhausted marks a request that may succeed when retried later.
	KindResourceExhausted
	// KindData marks a reference to something that does not exist.
	KindData
)

func (k Kind) String() string {
	switch k {
	case KindConstruction:
		return "ConstructionError"
	case KindState:
		return "StateError"
	case KindResourceExhausted:
		return "ResourceExhausted"
	case KindData:
		return "DataError"
	default:
		return "Unknown"
	}
}

// KindOf classifies err by the first sentinel found in its chain.
// Joined errors are classified by their first classifiable member.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidState):
		return KindState
	case errors.Is(err, ErrResourceExhausted):
		return KindResourceExhausted
	case errors.Is(err, ErrObjectNotFound):
		return KindData
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrObjectAlreadyExists):
		return KindConstruction
	default:
		return KindUnknown
	}
}
