package flow_test

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/funvibe/funpipe/pkg/flow"
)

func double(v interface{}) (interface{}, error) {
	return v.(int) * 2, nil
}

func TestFlow_PipeChain(t *testing.T) {
	got, err := flow.Start(3).
		Pipe(double).
		Pipe(func(v interface{}) (interface{}, error) { return v.(int) + 1, nil }).
		Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if got != 7 {
		t.Errorf("got %v, want 7", got)
	}
}

func TestFlow_TapKeepsValue(t *testing.T) {
	var seen interface{}
	got, err := flow.Start(3).
		Tap(func(v interface{}) { seen = v }).
		Pipe(double).
		Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if got != 6 {
		t.Errorf("got %v", got)
	}
	if seen != 3 {
		t.Errorf("tap saw %v, want 3", seen)
	}
}

func TestFlow_PipeErrorShortCircuits(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	_, err := flow.Start(1).
		Pipe(func(v interface{}) (interface{}, error) { return nil, boom }).
		Pipe(func(v interface{}) (interface{}, error) { calls++; return v, nil }).
		Value()
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if calls != 0 {
		t.Error("stage after a failure still ran")
	}
}

func TestFlow_AsyncResolvesBeforeNextStage(t *testing.T) {
	got, err := flow.Start(5).
		Async(func(v interface{}) (interface{}, error) {
			time.Sleep(10 * time.Millisecond)
			return v.(int) * 10, nil
		}).
		Pipe(func(v interface{}) (interface{}, error) { return v.(int) + 1, nil }).
		Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if got != 51 {
		t.Errorf("got %v, want 51", got)
	}
}

func TestFlow_AsyncErrorSurfaces(t *testing.T) {
	boom := errors.New("async boom")
	_, err := flow.Start(1).
		Async(func(v interface{}) (interface{}, error) { return nil, boom }).
		Value()
	if !errors.Is(err, boom) {
		t.Errorf("expected async boom, got %v", err)
	}
}

func TestFlow_TaskAndWait(t *testing.T) {
	var done atomic.Bool
	got, err := flow.Start(3).
		Task("slow", func(ctx context.Context, v interface{}) error {
			time.Sleep(20 * time.Millisecond)
			done.Store(true)
			return nil
		}).
		Wait("slow").
		Pipe(func(v interface{}) (interface{}, error) {
			if !done.Load() {
				return nil, errors.New("wait did not block")
			}
			return v, nil
		}).
		Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if got != 3 {
		t.Errorf("got %v", got)
	}
}

func TestFlow_WaitAllWithoutIds(t *testing.T) {
	var count atomic.Int32
	_, err := flow.Start(1).
		Task("", func(ctx context.Context, v interface{}) error { count.Add(1); return nil }).
		Task("", func(ctx context.Context, v interface{}) error { count.Add(1); return nil }).
		Wait().
		Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if count.Load() != 2 {
		t.Errorf("expected both tasks done, got %d", count.Load())
	}
}

func TestFlow_UnknownTaskId(t *testing.T) {
	_, err := flow.Start(1).Wait("ghost").Value()
	var pe *flow.PipeError
	if !errors.As(err, &pe) {
		t.Fatalf("expected a PipeError, got %v", err)
	}
}

func TestFlow_DuplicateTaskId(t *testing.T) {
	_, err := flow.Start(1).
		Task("t", func(ctx context.Context, v interface{}) error { return nil }).
		Task("t", func(ctx context.Context, v interface{}) error { return nil }).
		Value()
	var pe *flow.PipeError
	if !errors.As(err, &pe) {
		t.Fatalf("expected a PipeError, got %v", err)
	}
}

func TestFlow_TaskErrorSurfacesAtValue(t *testing.T) {
	boom := errors.New("task boom")
	_, err := flow.Start(1).
		Task("bad", func(ctx context.Context, v interface{}) error { return boom }).
		Value()
	if !errors.Is(err, boom) {
		t.Errorf("expected task boom, got %v", err)
	}
}

func TestFlow_DebugHistory(t *testing.T) {
	f := flow.Start(1, flow.WithDebug()).
		Pipe(func(v interface{}) (interface{}, error) { return v.(int) + 1, nil }).
		Pipe(double)
	if _, err := f.Value(); err != nil {
		t.Fatalf("Value: %v", err)
	}
	want := []interface{}{1, 2, 4}
	if got := f.History(); !reflect.DeepEqual(got, want) {
		t.Errorf("history: got %v, want %v", got, want)
	}
}

func TestFlow_NoHistoryWithoutDebug(t *testing.T) {
	f := flow.Start(1).Pipe(double)
	if _, err := f.Value(); err != nil {
		t.Fatalf("Value: %v", err)
	}
	if len(f.History()) != 0 {
		t.Errorf("history should be empty, got %v", f.History())
	}
}

func TestFlow_ContextReachesTasks(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "marker")
	var got interface{}
	_, err := flow.Start(1, flow.WithContext(ctx)).
		Task("probe", func(ctx context.Context, v interface{}) error {
			got = ctx.Value(key{})
			return nil
		}).
		Wait("probe").
		Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if got != "marker" {
		t.Errorf("context value: got %v", got)
	}
}
