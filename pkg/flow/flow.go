// Package flow is a small value pipeline for chaining transformations,
// side effects, and background tasks over a single value.
//
//	out, err := flow.Start(3).
//		Pipe(double).
//		Tap(report).
//		Task("audit", writeAudit).
//		Wait("audit").
//		Value()
package flow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// PipeError reports a misused pipeline, such as waiting on an unknown
// task id or registering the same id twice.
type PipeError struct {
	Message string
}

func (e *PipeError) Error() string { return "flow: " + e.Message }

func pipeErrorf(format string, args ...interface{}) *PipeError {
	return &PipeError{Message: fmt.Sprintf(format, args...)}
}

type asyncResult struct {
	value interface{}
	err   error
}

type task struct {
	id   string
	done chan struct{}
}

// Flow carries the current value through a chain of stages. A failed
// stage latches its error and turns every later stage into a no-op, so
// callers check the error once at the terminal Value call.
type Flow struct {
	value   interface{}
	err     error
	debug   bool
	history []interface{}

	ctx     context.Context
	group   *errgroup.Group
	tasks   map[string]*task
	pending chan asyncResult
}

type Option func(*Flow)

// WithDebug records the value after every stage; History returns the
// recording.
func WithDebug() Option {
	return func(f *Flow) { f.debug = true }
}

// WithContext ties background tasks to ctx. Tasks started after ctx is
// cancelled still run; they are expected to honor the ctx they receive.
func WithContext(ctx context.Context) Option {
	return func(f *Flow) { f.ctx = ctx }
}

// Start opens a pipeline around value.
func Start(value interface{}, opts ...Option) *Flow {
	f := &Flow{
		value: value,
		ctx:   context.Background(),
		tasks: make(map[string]*task),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.group, f.ctx = errgroup.WithContext(f.ctx)
	f.record()
	return f
}

// Pipe applies fn to the current value.
func (f *Flow) Pipe(fn func(interface{}) (interface{}, error)) *Flow {
	f.resolve()
	if f.err != nil {
		return f
	}
	out, err := fn(f.value)
	if err != nil {
		f.err = err
		return f
	}
	f.value = out
	f.record()
	return f
}

// Async applies fn on a separate goroutine. The next stage blocks
// until the result is available, so chains interleave independent work
// without explicit synchronization.
func (f *Flow) Async(fn func(interface{}) (interface{}, error)) *Flow {
	f.resolve()
	if f.err != nil {
		return f
	}
	ch := make(chan asyncResult, 1)
	value := f.value
	go func() {
		out, err := fn(value)
		ch <- asyncResult{value: out, err: err}
	}()
	f.pending = ch
	return f
}

// Tap calls fn for its side effect and keeps the current value.
func (f *Flow) Tap(fn func(interface{})) *Flow {
	f.resolve()
	if f.err != nil {
		return f
	}
	fn(f.value)
	f.record()
	return f
}

// Task runs fn in the background under the pipeline's task group. The
// current value is captured at call time. An empty id gets a generated
// one; a duplicate id fails the pipeline.
func (f *Flow) Task(id string, fn func(ctx context.Context, value interface{}) error) *Flow {
	f.resolve()
	if f.err != nil {
		return f
	}
	if id == "" {
		id = uuid.NewString()
	}
	if _, exists := f.tasks[id]; exists {
		f.err = pipeErrorf("task id %q already exists", id)
		return f
	}
	t := &task{id: id, done: make(chan struct{})}
	f.tasks[id] = t
	value := f.value
	ctx := f.ctx
	f.group.Go(func() error {
		defer close(t.done)
		return fn(ctx, value)
	})
	f.record()
	return f
}

// Wait blocks until the named tasks complete. With no ids it waits for
// every task started so far. Task errors surface at the terminal Value
// call, not here.
func (f *Flow) Wait(ids ...string) *Flow {
	f.resolve()
	if f.err != nil {
		return f
	}
	if len(ids) == 0 {
		for _, t := range f.tasks {
			<-t.done
		}
		return f
	}
	for _, id := range ids {
		t, ok := f.tasks[id]
		if !ok {
			f.err = pipeErrorf("unknown task id %q", id)
			return f
		}
		<-t.done
	}
	return f
}

// Value terminates the pipeline: it joins all background tasks and
// returns the final value with the first error encountered.
func (f *Flow) Value() (interface{}, error) {
	f.resolve()
	if err := f.group.Wait(); err != nil && f.err == nil {
		f.err = err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.value, nil
}

// History returns the values recorded after each stage. Empty unless
// the pipeline was started with WithDebug.
func (f *Flow) History() []interface{} {
	out := make([]interface{}, len(f.history))
	copy(out, f.history)
	return out
}

func (f *Flow) resolve() {
	if f.pending == nil {
		return
	}
	r := <-f.pending
	f.pending = nil
	if f.err != nil {
		return
	}
	if r.err != nil {
		f.err = r.err
		return
	}
	f.value = r.value
	f.record()
}

func (f *Flow) record() {
	if f.debug {
		f.history = append(f.history, f.value)
	}
}
