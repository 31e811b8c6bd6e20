package loop

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/snake"
)

// Config describes the game a Driver runs.
type Config struct {
	Variant  registry.Variant
	Board    core.Board
	Interval time.Duration // Time between ticks (default 100ms)
	Seed     int64         // 0 seeds from the clock
	Skin     *snake.Skin   // Initial player skin, for variants that allow one
}

// Option configures a Driver.
type Option func(*Driver)

// WithRenderer sets the renderer.
func WithRenderer(r Renderer) Option {
	return func(d *Driver) { d.renderer = r }
}

// WithSound sets the sound player.
func WithSound(p SoundPlayer) Option {
	return func(d *Driver) { d.sound = p }
}

// WithHighScores sets the high score store.
func WithHighScores(s HighScoreStore) Option {
	return func(d *Driver) { d.store = s }
}

// WithScheduler replaces the default TickerScheduler.
func WithScheduler(s Scheduler) Option {
	return func(d *Driver) { d.sched = s }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

const jobQueueSize = 32

type job struct {
	name string
	run  func() error
}

// Driver runs one snake session in real time.
//
// All session access goes through mu, so ticks from the scheduler and input
// from client goroutines never overlap. Collaborators are called after mu is
// released; outMu keeps their calls in the order the transitions happened.
// High score writes run on a single background worker.
type Driver struct {
	mu      sync.Mutex
	outMu   sync.Mutex
	session *snake.Session
	gen     uint64

	sched    Scheduler
	interval time.Duration
	renderer Renderer
	sound    SoundPlayer
	store    HighScoreStore
	logger   *log.Logger

	jobsMu sync.RWMutex
	jobs   chan job
	closed bool
	wg     sync.WaitGroup
}

// New creates a driver in the Idle state. The high score is read from the
// store once; a read error is logged and play continues from 0.
func New(cfg Config, opts ...Option) *Driver {
	d := &Driver{
		interval: cfg.Interval,
		renderer: nopRenderer{},
		sound:    nopSound{},
		store:    nopStore{},
		jobs:     make(chan job, jobQueueSize),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.sched == nil {
		d.sched = NewTickerScheduler()
	}
	if d.logger == nil {
		d.logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "loop",
		})
	}
	if d.interval <= 0 {
		d.interval = core.DefaultTickInterval
	}

	high, err := d.store.Get()
	if err != nil {
		d.logger.Warn("could not read high score", "variant", cfg.Variant.ID, "error", err)
		high = 0
	}

	d.session = snake.NewSession(cfg.Variant, cfg.Board, cfg.Seed, high)
	if cfg.Skin != nil {
		if err := d.session.SetSkin(*cfg.Skin); err != nil {
			d.logger.Debug("initial skin ignored", "variant", cfg.Variant.ID, "error", err)
		}
	}

	d.wg.Add(1)
	go d.work()
	return d
}

// Start resets the game and schedules ticks. Any running schedule is
// stopped first, so calling Start twice never doubles the tick rate.
func (d *Driver) Start() {
	d.mu.Lock()
	d.sched.Stop()
	d.gen++
	gen := d.gen

	effects := d.session.Start()
	if d.session.State() == snake.StateRunning {
		d.sched.Start(d.interval, func() { d.tick(gen) })
	}
	d.emit(effects)
}

// Restart is Start. It works in any state.
func (d *Driver) Restart() {
	d.Start()
}

// Confirm starts a new game when none is running (Enter on the game-over
// screen). It returns false and does nothing while a game is in progress.
func (d *Driver) Confirm() bool {
	d.mu.Lock()
	running := d.session.State() == snake.StateRunning
	d.mu.Unlock()

	if running {
		return false
	}
	d.Start()
	return true
}

// Input requests a direction change. It returns true if it was accepted.
func (d *Driver) Input(dir core.Direction) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session.Input(dir)
}

// SetSkin changes the player's skin and redraws.
func (d *Driver) SetSkin(skin snake.Skin) error {
	d.mu.Lock()
	if err := d.session.SetSkin(skin); err != nil {
		d.mu.Unlock()
		return err
	}
	d.emit([]snake.Effect{{Kind: snake.EffectRender}})
	return nil
}

// Snapshot returns a copy of the current state.
func (d *Driver) Snapshot() snake.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session.Snapshot()
}

// State returns the lifecycle state.
func (d *Driver) State() snake.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session.State()
}

// Close stops ticking and waits for pending high score writes.
// The driver must not be used afterwards.
func (d *Driver) Close() {
	d.mu.Lock()
	d.sched.Stop()
	d.gen++
	d.mu.Unlock()

	d.jobsMu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.jobsMu.Unlock()
	d.wg.Wait()
}

func (d *Driver) tick(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.session.State() != snake.StateRunning {
		d.mu.Unlock()
		return
	}

	effects := d.session.Tick()
	if d.session.State().Over() {
		d.sched.Stop()
	}
	d.emit(effects)
}

// emit must be called with mu held. It releases mu and dispatches effects.
func (d *Driver) emit(effects []snake.Effect) {
	snap := d.session.Snapshot()
	d.outMu.Lock()
	d.mu.Unlock()
	defer d.outMu.Unlock()

	for _, e := range effects {
		switch e.Kind {
		case snake.EffectRender:
			d.renderer.Render(snap)
		case snake.EffectEatSound:
			d.sound.PlayEat()
		case snake.EffectGameOverSound:
			d.sound.PlayGameOver()
		case snake.EffectHighScore:
			score := e.Value
			d.enqueue("save high score", func() error { return d.store.Set(score) })
		case snake.EffectGameOver, snake.EffectBoardFull:
			d.logger.Info("game finished", "variant", snap.Variant, "state", snap.State, "score", e.Value, "ticks", snap.Tick)
		}
	}
}

func (d *Driver) enqueue(name string, run func() error) {
	d.jobsMu.RLock()
	defer d.jobsMu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.jobs <- job{name: name, run: run}:
	default:
		d.logger.Warn("write queue full, dropping", "job", name)
	}
}

func (d *Driver) work() {
	defer d.wg.Done()
	for j := range d.jobs {
		if err := j.run(); err != nil {
			d.logger.Warn("background write failed", "job", j.name, "error", err)
		}
	}
}
