package operation

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/shiftdeck/internal/logging"
	"github.com/muurk/shiftdeck/internal/timeshift"
)

var (
	// ErrBusy is returned by Start while another operation is outstanding.
	ErrBusy = errors.New("an operation is already in progress")

	// ErrStaleHandle is returned by Poll for a handle whose result was already
	// consumed or that this executor did not issue.
	ErrStaleHandle = errors.New("operation handle is no longer outstanding")
)

// Kind is the type of mutation.
type Kind int

const (
	Create Kind = iota
	Delete
)

func (k Kind) String() string {
	switch k {
	case Create:
		return "create"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Request describes one mutation. Snapshot is only used by Delete and
// Comment only by Create.
type Request struct {
	Kind     Kind
	Device   string
	Snapshot string
	Comment  string
}

func (r Request) target() string {
	if r.Kind == Delete {
		return r.Snapshot
	}
	return r.Comment
}

// Status classifies a poll result.
type Status int

const (
	StatusNotDone Status = iota
	StatusOK
	StatusDomainError
	StatusCrashed
)

func (s Status) String() string {
	switch s {
	case StatusNotDone:
		return "not done"
	case StatusOK:
		return logging.OutcomeOK
	case StatusDomainError:
		return logging.OutcomeDomainError
	case StatusCrashed:
		return logging.OutcomeCrashed
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of a finished operation.
type Result struct {
	Status  Status
	Request Request

	// Message is the text to show the user: the timeshift diagnostic for a
	// domain error, the failure description for a crash.
	Message string

	// Err is the underlying error, nil on success.
	Err      error
	Duration time.Duration
}

// Runner performs the mutations. *timeshift.Client implements it.
type Runner interface {
	CreateSnapshot(ctx context.Context, device, comment string) error
	DeleteSnapshot(ctx context.Context, device, name string) error
}

// Handle identifies one started operation.
type Handle struct {
	request  Request
	finished chan struct{}
	result   Result
}

// Request returns the request the operation was started with.
func (h *Handle) Request() Request {
	return h.request
}

// Done is closed when the operation has finished. Receiving from it does not
// consume the result.
func (h *Handle) Done() <-chan struct{} {
	return h.finished
}

// Executor enforces a single in-flight operation.
type Executor struct {
	runner  Runner
	logger  *zap.Logger
	current *Handle
}

// NewExecutor creates an executor that runs mutations through runner.
func NewExecutor(runner Runner, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		runner: runner,
		logger: logger,
	}
}

// Busy reports whether a handle is outstanding, including a finished one
// whose result has not been polled yet.
func (e *Executor) Busy() bool {
	return e.current != nil
}

// Start launches req in the background. It returns ErrBusy, leaving the
// outstanding handle untouched, if one exists.
func (e *Executor) Start(req Request) (*Handle, error) {
	if e.current != nil {
		return nil, ErrBusy
	}

	h := &Handle{
		request:  req,
		finished: make(chan struct{}),
	}
	e.current = h

	logging.LogOperationStarted(e.logger, req.Kind.String(), req.Device, req.target())

	go e.run(h, req)

	return h, nil
}

// Poll checks h without blocking. While the operation runs it returns a
// Result with StatusNotDone. The first poll after completion returns the
// final Result and releases the executor; any later poll of h fails with
// ErrStaleHandle.
func (e *Executor) Poll(h *Handle) (Result, error) {
	if h == nil || h != e.current {
		return Result{}, ErrStaleHandle
	}

	select {
	case <-h.finished:
		e.current = nil
		return h.result, nil
	default:
		return Result{Status: StatusNotDone, Request: h.request}, nil
	}
}

// run executes on its own goroutine. h.result is written before finished is
// closed, so readers that observed the close see the complete result.
func (e *Executor) run(h *Handle, req Request) {
	start := time.Now()
	result := Result{Request: req}

	defer func() {
		if r := recover(); r != nil {
			result.Status = StatusCrashed
			result.Err = fmt.Errorf("operation panicked: %v", r)
			result.Message = result.Err.Error()
			e.logger.Debug("operation panic stack", zap.ByteString("stack", debug.Stack()))
		}
		result.Duration = time.Since(start)

		logging.LogOperationFinished(e.logger, req.Kind.String(), req.Device,
			result.Status.String(), result.Duration, result.Err)

		h.result = result
		close(h.finished)
	}()

	err := e.dispatch(req)
	result.Status, result.Message = classify(err)
	result.Err = err
}

func (e *Executor) dispatch(req Request) error {
	ctx := context.Background()

	switch req.Kind {
	case Create:
		return e.runner.CreateSnapshot(ctx, req.Device, req.Comment)
	case Delete:
		return e.runner.DeleteSnapshot(ctx, req.Device, req.Snapshot)
	default:
		return fmt.Errorf("unknown operation kind %v", req.Kind)
	}
}

func classify(err error) (Status, string) {
	if err == nil {
		return StatusOK, ""
	}

	var cmdErr *timeshift.CommandError
	if errors.As(err, &cmdErr) {
		return StatusDomainError, cmdErr.Diagnostic()
	}

	return StatusCrashed, err.Error()
}
