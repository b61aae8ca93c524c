package relay

import (
	"context"
	"time"
)

// Status describes how a relay attempt ended.
type Status string

const (
	StatusRelayed Status = "relayed"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result is the outcome of a single relay attempt. It is meant for logs and metrics only.
type Result struct {
	Target     string
	Status     Status
	Reason     string
	StatusCode int
	RemoteKey  string
	Err        error
	Duration   time.Duration
}

// Relayer forwards an already serialized submission to a remote system.
// Implementations never return errors; failures are reported through Result.
type Relayer interface {
	Name() string
	Relay(ctx context.Context, payload []byte) Result
}

// Relayed builds a successful result.
func Relayed(target string, statusCode int, remoteKey string) Result {
	return Result{Target: target, Status: StatusRelayed, StatusCode: statusCode, RemoteKey: remoteKey}
}

// Skipped builds a result for a relay that was not attempted.
func Skipped(target, reason string) Result {
	return Result{Target: target, Status: StatusSkipped, Reason: reason}
}

// Failed builds a result for a relay attempt that did not complete.
func Failed(target string, statusCode int, err error) Result {
	result := Result{Target: target, Status: StatusFailed, StatusCode: statusCode, Err: err}
	if err != nil {
		result.Reason = err.Error()
	}
	return result
}
