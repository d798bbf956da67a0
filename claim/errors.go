package claim

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNoProvider
	KindInvalidParameters
	KindChainMismatch
	KindBindingFailure
	KindDisputeNotFound
	KindClaimNotFound
	KindPolicyNotFound
	KindFetchFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindNoProvider:
		return "NoProvider"
	case KindInvalidParameters:
		return "InvalidParameters"
	case KindChainMismatch:
		return "ChainMismatch"
	case KindBindingFailure:
		return "BindingFailure"
	case KindDisputeNotFound:
		return "DisputeNotFound"
	case KindClaimNotFound:
		return "ClaimNotFound"
	case KindPolicyNotFound:
		return "PolicyNotFound"
	case KindFetchFailure:
		return "FetchFailure"
	default:
		return "Unknown"
	}
}

const (
	TitleBindingFailure = "Error loading item. Are you in the correct network?"
	TitleChainMismatch  = "Invalid. Mismatch between injected and provider chainID"
	TitleFetchFailure   = "Error fetching claimData. Are you in the correct network?"
)

var ErrParametersUnavailable = &Error{
	Kind: KindInvalidParameters,
	Err:  errors.New("display parameters not available"),
}

// Error is a categorized resolution failure.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Title() string {
	switch e.Kind {
	case KindChainMismatch:
		return TitleChainMismatch
	case KindBindingFailure:
		return TitleBindingFailure
	default:
		return TitleFetchFailure
	}
}

// State converts the error into what the card shows.
func (e *Error) State() ErrorState {
	return ErrorState{Title: e.Title(), Detail: e.Error()}
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func notFound(kind ErrorKind, event string) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf("No result from: %s", event)}
}

// KindOf returns the ErrorKind carried by err, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
