package job

import (
	"context"
	"fmt"
	"sync"

	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/logging"
	"go.uber.org/zap"
)

// Task is the handle of one dispatched function
type Task struct {
	Name string
	done chan struct{}
	err  error
}

// Done is closed when the task returns
func (t *Task) Done() <-chan struct{} { return t.done }

// Err is the task's result, valid after Done is closed
func (t *Task) Err() error {
	<-t.done
	return t.err
}

// Dispatcher runs tasks detached from the caller's context. There is no
// admission control: every dispatched task starts immediately.
type Dispatcher struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	tasks  map[*Task]struct{} // Protected by mu
	logger *logging.Logger
}

// NewDispatcher creates a dispatcher whose tasks share one base context
func NewDispatcher(logger *logging.Logger) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(map[*Task]struct{}),
		logger: logging.OrNop(logger).Named("dispatcher"),
	}
}

// Dispatch starts fn in its own goroutine. A panic in fn becomes the
// task's error.
func (d *Dispatcher) Dispatch(name string, fn func(ctx context.Context) error) *Task {
	t := &Task{Name: name, done: make(chan struct{})}

	d.mu.Lock()
	d.tasks[t] = struct{}{}
	d.mu.Unlock()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				t.err = fmt.Errorf("task %s panicked: %v", name, r)
				d.logger.Error("task panicked", zap.String("task", name), zap.Any("panic", r))
			}
			d.mu.Lock()
			delete(d.tasks, t)
			d.mu.Unlock()
			close(t.done)
		}()
		t.err = fn(d.ctx)
	}()
	return t
}

// Running returns the number of unfinished tasks
func (d *Dispatcher) Running() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tasks)
}

// Wait blocks until every dispatched task has returned
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Shutdown cancels the shared context and waits for tasks, or for ctx
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.cancel()
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
