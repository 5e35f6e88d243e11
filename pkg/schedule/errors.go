package schedule

import (
	"context"
	"errors"
	"fmt"
)

// Error kinds surfaced by the sync engine. Wrap them with fmt.Errorf("%w") and
// classify with KindOf.
var (
	ErrNetworkUnavailable = errors.New("network unavailable")
	ErrRemoteRejected     = errors.New("remote rejected request")
	ErrTimeout            = errors.New("request timed out")
	ErrStaleDiscarded     = errors.New("stale response discarded")
	ErrUnknownScheduleID  = errors.New("unknown schedule id")
)

// ErrorKind enumerates the error classes presenters can react to.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetworkUnavailable
	KindRemoteRejected
	KindTimeout
	KindStaleDiscarded
	KindUnknownScheduleID
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetworkUnavailable:
		return "NetworkUnavailable"
	case KindRemoteRejected:
		return "RemoteRejected"
	case KindTimeout:
		return "Timeout"
	case KindStaleDiscarded:
		return "StaleDiscarded"
	case KindUnknownScheduleID:
		return "UnknownScheduleId"
	default:
		return "Unknown"
	}
}

// KindOf classifies err. A context deadline counts as a timeout.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrStaleDiscarded):
		return KindStaleDiscarded
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrUnknownScheduleID):
		return KindUnknownScheduleID
	case errors.Is(err, ErrRemoteRejected):
		return KindRemoteRejected
	case errors.Is(err, ErrNetworkUnavailable):
		return KindNetworkUnavailable
	default:
		return KindUnknown
	}
}

// RemoteError carries the status of a rejected remote call.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", ErrRemoteRejected, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrRemoteRejected, e.Status, e.Message)
}

// Is lets errors.Is(err, ErrRemoteRejected) match.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteRejected
}
