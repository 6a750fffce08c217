package sync

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrNotAuthenticated       = errors.New("not authenticated")
	ErrReconciliationMismatch = errors.New("remote items do not match local changes")
	ErrRemoteWrite            = errors.New("remote write failed")
	ErrRemoteRead             = errors.New("remote read failed")
	ErrNoRecord               = errors.New("no record loaded")
)

// RemoteError is a failed call to the remote store. Kind is one of
// ErrRemoteWrite, ErrRemoteRead or ErrNotAuthenticated once the mutator has
// classified it; stores may leave Op and Kind empty.
type RemoteError struct {
	Op      string
	Status  int
	Code    string
	Message string
	Kind    error
	Err     error
}

func (e *RemoteError) Error() string {
	message := strings.TrimSpace(e.Message)
	if message == "" && e.Err != nil {
		message = e.Err.Error()
	}
	if message == "" && e.Status != 0 {
		message = http.StatusText(e.Status)
	}
	if message == "" {
		message = "remote error"
	}
	if e.Op == "" {
		return message
	}
	return "failed to " + e.Op + ": " + message
}

func (e *RemoteError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// IsUnauthorized reports whether err carries a 401 from the remote store.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrNotAuthenticated) {
		return true
	}
	var remoteErr *RemoteError
	return errors.As(err, &remoteErr) && remoteErr.Status == http.StatusUnauthorized
}

func classify(op string, kind error, err error) *RemoteError {
	classified := &RemoteError{Op: op, Kind: kind}

	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		classified.Status = remoteErr.Status
		classified.Code = remoteErr.Code
		classified.Message = remoteErr.Message
		classified.Err = remoteErr.Err
		if classified.Message == "" && classified.Err == nil {
			classified.Err = err
		}
	} else {
		classified.Err = err
	}

	if IsUnauthorized(err) {
		classified.Kind = ErrNotAuthenticated
		if classified.Status == 0 {
			classified.Status = http.StatusUnauthorized
		}
	}
	return classified
}
