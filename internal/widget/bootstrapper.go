package widget

import (
	"log/slog"
	"sync"
	"time"
)

// ErrUnavailableMessage is the single user-facing message for every
// bootstrap failure. The caller pairs it with a manual retry action.
const ErrUnavailableMessage = "Payment system unavailable. Please refresh and try again."

// Element is a mounted card-input element created by the provider
// script.
type Element interface {
	Mount(containerID string) error
	Unmount()
	Destroy()
	// On registers an event handler. Events: "ready", "change",
	// "focus", "blur". The ready event fires once the element is
	// interactive.
	On(event string, fn func())
}

// Factory creates card elements once the provider script is loaded.
type Factory interface {
	CreateElement() (Element, error)
}

// ScriptLoader loads the provider script asynchronously, invoking done
// exactly once.
type ScriptLoader interface {
	Load(done func(err error))
}

const (
	defaultRetryDelay  = 300 * time.Millisecond
	defaultMaxAttempts = 5
)

// Config wires a Bootstrapper to its host environment.
type Config struct {
	Loader      ScriptLoader
	Factory     Factory
	ContainerID string

	// ContainerExists probes whether the mount point is present in the
	// host view yet. The dialog may become visible before its layout
	// settles, so absence is retried.
	ContainerExists func(id string) bool

	// RetryDelay between container probes; MaxAttempts bounds them.
	RetryDelay  time.Duration
	MaxAttempts int

	// OnError receives the user-facing failure message; OnReady fires
	// when the element becomes interactive.
	OnError func(msg string)
	OnReady func()

	// schedule runs fn after d and returns a cancel func. Tests replace
	// it to control timing.
	schedule func(d time.Duration, fn func()) func()
}

// Bootstrapper drives the card element mount state machine for one
// payment dialog. It must be torn down and recreated across dialog
// open/close cycles; the loaded-script flag alone survives.
type Bootstrapper struct {
	cfg Config

	mu       sync.Mutex
	state    MountState
	attempts int
	element  Element
	cancel   func() // pending scheduled retry, nil if none
	gen      int    // invalidates async callbacks from torn-down cycles
}

// New creates a bootstrapper in the Unmounted state.
func New(cfg Config) *Bootstrapper {
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.ContainerExists == nil {
		cfg.ContainerExists = func(string) bool { return true }
	}
	if cfg.schedule == nil {
		cfg.schedule = func(d time.Duration, fn func()) func() {
			t := time.AfterFunc(d, fn)
			return func() { t.Stop() }
		}
	}
	return &Bootstrapper{cfg: cfg}
}

// State returns the current mount state.
func (b *Bootstrapper) State() MountState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// EnsureMounted drives the state machine toward Mounted. It is
// idempotent: a no-op when the dialog is not visible, a mount is already
// in progress, or the element is already mounted. A Failed bootstrapper
// stays failed until Retry.
func (b *Bootstrapper) EnsureMounted(visible bool) {
	if !visible {
		return
	}

	b.mu.Lock()
	var load bool
	switch b.state {
	case Unmounted:
		load = b.beginLocked()
	case ScriptReady:
		if b.cancel == nil {
			b.tryCreateLocked()
		}
	default:
		// ScriptLoading, ElementCreated: in progress.
		// Mounted: done. Failed: waiting for manual Retry.
	}
	gen := b.gen
	b.mu.Unlock()

	if load {
		b.cfg.Loader.Load(func(err error) { b.scriptLoaded(gen, err) })
	}
}

// beginLocked leaves Unmounted. It returns true when the caller must
// start the script load after releasing the lock (the loader callback
// may run synchronously and needs the lock itself).
func (b *Bootstrapper) beginLocked() bool {
	if scriptIsLoaded() {
		b.state = ScriptReady
		b.tryCreateLocked()
		return false
	}
	b.state = ScriptLoading
	return true
}

// scriptLoaded is the loader completion callback.
func (b *Bootstrapper) scriptLoaded(gen int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gen != gen {
		return // torn down while loading
	}
	if err != nil {
		slog.Error("payment script load failed", "error", err)
		b.failLocked()
		return
	}
	markScriptLoaded()
	b.state = ScriptReady
	b.tryCreateLocked()
}

// tryCreateLocked creates and mounts the element once the container
// exists, scheduling a bounded retry while it does not.
func (b *Bootstrapper) tryCreateLocked() {
	b.attempts++
	if b.attempts > b.cfg.MaxAttempts {
		b.failLocked()
		return
	}

	if !b.cfg.ContainerExists(b.cfg.ContainerID) {
		gen := b.gen
		b.cancel = b.cfg.schedule(b.cfg.RetryDelay, func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.gen != gen {
				return
			}
			b.cancel = nil
			b.tryCreateLocked()
		})
		return
	}

	el, err := b.cfg.Factory.CreateElement()
	if err != nil {
		slog.Error("creating card element failed", "error", err)
		b.failLocked()
		return
	}
	b.element = el
	b.state = ElementCreated

	gen := b.gen
	el.On("ready", func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.gen != gen || b.state != ElementCreated {
			return
		}
		b.state = Mounted
		if b.cfg.OnReady != nil {
			b.cfg.OnReady()
		}
	})

	if err := el.Mount(b.cfg.ContainerID); err != nil {
		slog.Error("mounting card element failed", "error", err)
		b.destroyElementLocked()
		b.failLocked()
		return
	}
}

// failLocked moves to Failed and surfaces the single user-facing
// message.
func (b *Bootstrapper) failLocked() {
	b.state = Failed
	if b.cfg.OnError != nil {
		b.cfg.OnError(ErrUnavailableMessage)
	}
}

// Teardown unmounts and destroys the current element and cancels any
// pending retry, returning to Unmounted. It must run before a closed
// dialog's bootstrapper is reused, so a stale element never leaks into
// the next cycle.
func (b *Bootstrapper) Teardown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.teardownLocked()
}

func (b *Bootstrapper) teardownLocked() {
	b.gen++
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.destroyElementLocked()
	b.state = Unmounted
	b.attempts = 0
}

func (b *Bootstrapper) destroyElementLocked() {
	if b.element != nil {
		b.element.Unmount()
		b.element.Destroy()
		b.element = nil
	}
}

// Retry resets the attempt counter and restarts the state machine from
// Unmounted. It is the manual recovery path offered after a failure.
func (b *Bootstrapper) Retry() {
	b.mu.Lock()
	b.teardownLocked()
	load := b.beginLocked()
	gen := b.gen
	b.mu.Unlock()

	if load {
		b.cfg.Loader.Load(func(err error) { b.scriptLoaded(gen, err) })
	}
}
