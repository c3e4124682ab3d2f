package widget

import (
	"fmt"
	"testing"
	"time"
)

// fakeLoader completes synchronously unless err is set.
type fakeLoader struct {
	err   error
	calls int
}

func (l *fakeLoader) Load(done func(error)) {
	l.calls++
	done(l.err)
}

// fakeElement records lifecycle calls and lets tests fire events.
type fakeElement struct {
	mounted   bool
	unmounted bool
	destroyed bool
	handlers  map[string]func()
}

func (e *fakeElement) Mount(containerID string) error {
	e.mounted = true
	return nil
}
func (e *fakeElement) Unmount()  { e.unmounted = true }
func (e *fakeElement) Destroy()  { e.destroyed = true }
func (e *fakeElement) On(event string, fn func()) {
	if e.handlers == nil {
		e.handlers = map[string]func(){}
	}
	e.handlers[event] = fn
}

func (e *fakeElement) fireReady() {
	if fn := e.handlers["ready"]; fn != nil {
		fn()
	}
}

// fakeFactory hands out fresh elements and keeps them all.
type fakeFactory struct {
	elements []*fakeElement
	err      error
}

func (f *fakeFactory) CreateElement() (Element, error) {
	if f.err != nil {
		return nil, f.err
	}
	el := &fakeElement{}
	f.elements = append(f.elements, el)
	return el, nil
}

// manualClock queues scheduled retries and runs them on demand.
type manualClock struct {
	pending []func()
}

func (c *manualClock) schedule(d time.Duration, fn func()) func() {
	c.pending = append(c.pending, fn)
	canceled := false
	idx := len(c.pending) - 1
	return func() {
		if !canceled {
			c.pending[idx] = nil
			canceled = true
		}
	}
}

// runNext runs the oldest pending retry, if any.
func (c *manualClock) runNext() bool {
	for i, fn := range c.pending {
		if fn != nil {
			c.pending[i] = nil
			fn()
			return true
		}
	}
	return false
}

func newTestBootstrapper(t *testing.T, cfg Config, clock *manualClock) *Bootstrapper {
	t.Helper()
	ResetScriptLoaded()
	t.Cleanup(ResetScriptLoaded)
	if clock != nil {
		cfg.schedule = clock.schedule
	}
	return New(cfg)
}

func TestMountHappyPath(t *testing.T) {
	factory := &fakeFactory{}
	var ready bool
	b := newTestBootstrapper(t, Config{
		Loader:      &fakeLoader{},
		Factory:     factory,
		ContainerID: "card-element",
		OnReady:     func() { ready = true },
	}, nil)

	b.EnsureMounted(true)

	if got := b.State(); got != ElementCreated {
		t.Fatalf("state = %s, want %s", got, ElementCreated)
	}
	factory.elements[0].fireReady()
	if got := b.State(); got != Mounted {
		t.Fatalf("state = %s, want %s", got, Mounted)
	}
	if !ready {
		t.Error("expected OnReady callback")
	}
	if !factory.elements[0].mounted {
		t.Error("element was never mounted")
	}
}

func TestNotVisibleIsNoop(t *testing.T) {
	loader := &fakeLoader{}
	b := newTestBootstrapper(t, Config{Loader: loader, Factory: &fakeFactory{}}, nil)

	b.EnsureMounted(false)

	if got := b.State(); got != Unmounted {
		t.Errorf("state = %s, want %s", got, Unmounted)
	}
	if loader.calls != 0 {
		t.Errorf("loader calls = %d, want 0", loader.calls)
	}
}

func TestScriptLoadErrorFails(t *testing.T) {
	var msg string
	b := newTestBootstrapper(t, Config{
		Loader:  &fakeLoader{err: fmt.Errorf("network down")},
		Factory: &fakeFactory{},
		OnError: func(m string) { msg = m },
	}, nil)

	b.EnsureMounted(true)

	if got := b.State(); got != Failed {
		t.Fatalf("state = %s, want %s", got, Failed)
	}
	if msg != ErrUnavailableMessage {
		t.Errorf("error message = %q, want %q", msg, ErrUnavailableMessage)
	}
}

func TestContainerNeverAppearsExhaustsRetries(t *testing.T) {
	clock := &manualClock{}
	var msg string
	b := newTestBootstrapper(t, Config{
		Loader:          &fakeLoader{},
		Factory:         &fakeFactory{},
		ContainerExists: func(string) bool { return false },
		MaxAttempts:     5,
		OnError:         func(m string) { msg = m },
	}, clock)

	b.EnsureMounted(true)

	retries := 0
	for clock.runNext() {
		retries++
		if retries > 20 {
			t.Fatal("retry loop did not terminate")
		}
	}

	if retries != 5 {
		t.Errorf("scheduled retries = %d, want 5", retries)
	}
	if got := b.State(); got != Failed {
		t.Errorf("state = %s, want %s", got, Failed)
	}
	if msg != ErrUnavailableMessage {
		t.Errorf("error message = %q, want %q", msg, ErrUnavailableMessage)
	}
}

func TestRepeatedEnsureMountedDoesNotStackRetries(t *testing.T) {
	clock := &manualClock{}
	b := newTestBootstrapper(t, Config{
		Loader:          &fakeLoader{},
		Factory:         &fakeFactory{},
		ContainerExists: func(string) bool { return false },
		MaxAttempts:     5,
	}, clock)

	for i := 0; i < 10; i++ {
		b.EnsureMounted(true)
	}

	pending := 0
	for _, fn := range clock.pending {
		if fn != nil {
			pending++
		}
	}
	if pending != 1 {
		t.Errorf("pending retries = %d, want 1", pending)
	}
}

func TestContainerAppearsAfterTwoRetries(t *testing.T) {
	clock := &manualClock{}
	factory := &fakeFactory{}
	probes := 0
	b := newTestBootstrapper(t, Config{
		Loader:  &fakeLoader{},
		Factory: factory,
		ContainerExists: func(string) bool {
			probes++
			return probes > 2 // absent on the first two probes
		},
	}, clock)

	b.EnsureMounted(true)
	if got := b.State(); got != ScriptReady {
		t.Fatalf("state after first probe = %s, want %s", got, ScriptReady)
	}

	clock.runNext() // second probe, still absent
	clock.runNext() // third probe, container present

	if got := b.State(); got != ElementCreated {
		t.Fatalf("state = %s, want %s", got, ElementCreated)
	}
	factory.elements[0].fireReady()
	if got := b.State(); got != Mounted {
		t.Errorf("state = %s, want %s", got, Mounted)
	}
}

func TestTeardownDestroysElementBeforeReopen(t *testing.T) {
	factory := &fakeFactory{}
	b := newTestBootstrapper(t, Config{
		Loader:      &fakeLoader{},
		Factory:     factory,
		ContainerID: "card-element",
	}, nil)

	b.EnsureMounted(true)
	factory.elements[0].fireReady()
	if got := b.State(); got != Mounted {
		t.Fatalf("state = %s, want %s", got, Mounted)
	}

	// Dialog closes, then reopens.
	b.Teardown()
	if got := b.State(); got != Unmounted {
		t.Fatalf("state after teardown = %s, want %s", got, Unmounted)
	}
	first := factory.elements[0]
	if !first.unmounted || !first.destroyed {
		t.Error("previous element must be unmounted and destroyed on teardown")
	}

	b.EnsureMounted(true)
	if len(factory.elements) != 2 {
		t.Fatalf("elements created = %d, want 2", len(factory.elements))
	}

	// A stale ready event from the destroyed element must not flip the
	// new cycle's state.
	if got := b.State(); got != ElementCreated {
		t.Fatalf("state = %s, want %s", got, ElementCreated)
	}
	first.fireReady()
	if got := b.State(); got != ElementCreated {
		t.Errorf("stale ready event changed state to %s", got)
	}
	factory.elements[1].fireReady()
	if got := b.State(); got != Mounted {
		t.Errorf("state = %s, want %s", got, Mounted)
	}
}

func TestRetryResetsAttemptCounter(t *testing.T) {
	clock := &manualClock{}
	containerPresent := false
	factory := &fakeFactory{}
	b := newTestBootstrapper(t, Config{
		Loader:          &fakeLoader{},
		Factory:         factory,
		ContainerExists: func(string) bool { return containerPresent },
		MaxAttempts:     5,
	}, clock)

	b.EnsureMounted(true)
	for clock.runNext() {
	}
	if got := b.State(); got != Failed {
		t.Fatalf("state = %s, want %s", got, Failed)
	}

	// Failed is sticky for EnsureMounted.
	b.EnsureMounted(true)
	if got := b.State(); got != Failed {
		t.Fatalf("EnsureMounted should not leave %s", Failed)
	}

	// Manual retry starts over; the container is available now.
	containerPresent = true
	b.Retry()
	if got := b.State(); got != ElementCreated {
		t.Fatalf("state after retry = %s, want %s", got, ElementCreated)
	}
	factory.elements[0].fireReady()
	if got := b.State(); got != Mounted {
		t.Errorf("state = %s, want %s", got, Mounted)
	}
}

func TestScriptLoadedOncePerProcess(t *testing.T) {
	loader := &fakeLoader{}
	factory := &fakeFactory{}
	b := newTestBootstrapper(t, Config{Loader: loader, Factory: factory}, nil)

	b.EnsureMounted(true)
	b.Teardown()
	b.EnsureMounted(true)

	if loader.calls != 1 {
		t.Errorf("loader calls = %d, want 1 (script is fetched once per process)", loader.calls)
	}
}

func TestTeardownCancelsPendingRetry(t *testing.T) {
	clock := &manualClock{}
	b := newTestBootstrapper(t, Config{
		Loader:          &fakeLoader{},
		Factory:         &fakeFactory{},
		ContainerExists: func(string) bool { return false },
	}, clock)

	b.EnsureMounted(true)
	b.Teardown()

	// The canceled retry must not advance the new cycle.
	clock.runNext()
	if got := b.State(); got != Unmounted {
		t.Errorf("state = %s, want %s", got, Unmounted)
	}
}
