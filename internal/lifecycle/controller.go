package lifecycle

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"tools.zach/dev/scheduler/internal/config"
	"tools.zach/dev/scheduler/internal/logger"
)

// DefaultInterval is the sleep between idle-loop iterations.
const DefaultInterval = 200 * time.Millisecond

var (
	// ErrFatal is returned by Run after a failed Initialize.
	ErrFatal = errors.New("lifecycle: controller failed to initialize")
	// ErrStopped is returned by Run once the controller has already stopped.
	ErrStopped = errors.New("lifecycle: controller already stopped")
	// ErrNotStarting is returned by Initialize outside the starting state.
	ErrNotStarting = errors.New("lifecycle: controller is not starting")
)

// ///////////////////////////////////////////////
// Options
// ///////////////////////////////////////////////

// Option configures a [Controller].
type Option func(*Controller)

// WithInterval sets the idle-loop sleep. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithLogger sets the logger used until [Controller.Initialize] replaces it.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// ///////////////////////////////////////////////
// Controller
// ///////////////////////////////////////////////

// Controller owns the running flag and drives the idle loop.
type Controller struct {
	running  atomic.Bool
	state    atomic.Int32
	interval time.Duration

	log    *slog.Logger
	closer io.Closer
}

// New returns a controller in [StateStarting] with the running flag set.
func New(opts ...Option) *Controller {
	c := &Controller{
		interval: DefaultInterval,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.running.Store(true)
	c.state.Store(int32(StateStarting))
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return State(c.state.Load()) }

// Running reports whether the running flag is still set.
func (c *Controller) Running() bool { return c.running.Load() }

// Interval returns the idle-loop sleep.
func (c *Controller) Interval() time.Duration { return c.interval }

// Logger returns the controller's logger.
func (c *Controller) Logger() *slog.Logger { return c.log }

// Initialize loads the configuration at path and replaces the controller's
// logger with one built from it. Any failure moves the controller to
// [StateFatal]; the returned error wraps a [*config.LoadError] or
// [*config.ValueError] for configuration problems.
func (c *Controller) Initialize(path string) (*config.Config, error) {
	if s := c.State(); s != StateStarting {
		return nil, fmt.Errorf("%w (state %s)", ErrNotStarting, s)
	}

	cfg, err := config.Load(path)
	if err != nil {
		c.fail()
		return nil, err
	}

	log, closer, err := logger.NewLogger(cfg.Log.File, cfg.Level(), cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)
	if err != nil {
		c.fail()
		return nil, fmt.Errorf("init logger: %w", err)
	}
	c.log = log
	c.closer = closer
	return cfg, nil
}

// fail moves the controller to the terminal fatal state.
func (c *Controller) fail() {
	c.running.Store(false)
	c.state.Store(int32(StateFatal))
}

// InstallSignalHandlers routes the platform termination signals to
// [Controller.Stop] through a dedicated goroutine and moves a starting
// controller to [StateRunning]. Each delivery is recorded at trace level
// after the flag has been cleared. The returned function unregisters the
// handlers and is safe to call more than once.
func (c *Controller) InstallSignalHandlers() (restore func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, terminationSignals...)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-ch:
				stopped := c.Stop()
				logger.Trace(c.log, "termination signal received", "signal", sig.String(), "stopped", stopped)
			case <-done:
				return
			}
		}
	}()

	c.state.CompareAndSwap(int32(StateStarting), int32(StateRunning))

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
		})
	}
}

// Stop clears the running flag. It reports whether this call performed the
// transition; later calls are no-ops and return false. Stop does not log or
// block, so it is safe to call from a signal-handling goroutine.
func (c *Controller) Stop() bool {
	if !c.running.CompareAndSwap(true, false) {
		return false
	}
	for {
		s := c.state.Load()
		if State(s) != StateStarting && State(s) != StateRunning {
			return true
		}
		if c.state.CompareAndSwap(s, int32(StateStopping)) {
			return true
		}
	}
}

// Run logs a heartbeat and sleeps one interval for as long as the running
// flag is set, then logs the shutdown and moves to [StateStopped]. A stop
// request is observed after at most one pending sleep. A controller stopped
// before Run never logs the starting line.
func (c *Controller) Run() error {
	switch c.State() {
	case StateFatal:
		return ErrFatal
	case StateStopped:
		return ErrStopped
	}
	c.state.CompareAndSwap(int32(StateStarting), int32(StateRunning))

	if c.running.Load() {
		c.log.Info("scheduler starting", "interval", c.interval)
	}

	var iterations uint64
	for c.running.Load() {
		iterations++
		c.log.Info("idle, going to sleep", "iteration", iterations)
		time.Sleep(c.interval)
	}

	c.state.Store(int32(StateStopped))
	c.log.Info("shutdown clean", "iterations", iterations)
	return nil
}

// Close releases the log destination opened by Initialize.
func (c *Controller) Close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	return err
}
