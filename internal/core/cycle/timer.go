package cycle

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"ideabreak/internal/core/model"
	"ideabreak/internal/notify"
)

// ErrAlreadyRunning indicates Run was called while the timer is running.
var ErrAlreadyRunning = errors.New("cycle timer already running")

// Deliverer shows a notification and reports how it went.
type Deliverer interface {
	Deliver(ctx context.Context, notification notify.Notification) (notify.Result, error)
}

// Config contains runtime options for Timer.
type Config struct {
	TickInterval time.Duration
	Clock        Clock
}

// Timer alternates work and break phases and announces each phase start.
type Timer struct {
	mu        sync.Mutex
	config    model.CycleConfig
	options   Config
	ideas     IdeaList
	deliverer Deliverer
	pending   *model.CycleConfig
	counter   int
	phase     Phase
	running   bool
	paused    bool
	skip      bool
	events    []chan Event
}

// New creates a Timer with the provided configuration.
func New(config model.CycleConfig, deliverer Deliverer, options Config) (*Timer, error) {
	if deliverer == nil {
		return nil, errors.New("cycle timer needs a deliverer")
	}
	ideas, err := validateConfig(config)
	if err != nil {
		return nil, err
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = RealClock()
	}

	return &Timer{
		config:    config,
		options:   options,
		ideas:     ideas,
		deliverer: deliverer,
		phase:     PhaseWork,
	}, nil
}

func validateConfig(config model.CycleConfig) (IdeaList, error) {
	if config.WorkDuration <= 0 {
		return IdeaList{}, errors.Newf("work duration must be positive, got %s", config.WorkDuration)
	}
	if config.BreakDuration <= 0 {
		return IdeaList{}, errors.Newf("break duration must be positive, got %s", config.BreakDuration)
	}
	if config.NotificationTimeout < 0 {
		return IdeaList{}, errors.Newf("notification timeout must not be negative, got %s", config.NotificationTimeout)
	}
	return NewIdeaList(config.Ideas)
}

// UpdateConfig replaces the configuration from the next cycle on. The phase
// in progress keeps its duration and the cycle counter is not reset.
func (timer *Timer) UpdateConfig(config model.CycleConfig) error {
	if _, err := validateConfig(config); err != nil {
		return err
	}
	config.Ideas = append([]string(nil), config.Ideas...)

	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.pending = &config
	return nil
}

// Subscribe registers a new observer channel. Channels are closed when Run
// returns.
func (timer *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	timer.mu.Lock()
	timer.events = append(timer.events, ch)
	timer.mu.Unlock()
	return ch
}

// Counter returns the number of completed cycles.
func (timer *Timer) Counter() int {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.counter
}

// Phase returns the current phase.
func (timer *Timer) Phase() Phase {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.phase
}

// Paused reports whether the timer is paused.
func (timer *Timer) Paused() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.paused
}

// Pause freezes the remaining time of the current phase.
func (timer *Timer) Pause() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.paused {
		return
	}
	timer.paused = true
	timer.emitLocked(Event{
		Type:  EventPaused,
		Phase: timer.phase,
		Cycle: timer.counter + 1,
		At:    timer.options.Clock.Now(),
	})
}

// Resume unfreezes the timer.
func (timer *Timer) Resume() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if !timer.paused {
		return
	}
	timer.paused = false
	timer.emitLocked(Event{
		Type:  EventResumed,
		Phase: timer.phase,
		Cycle: timer.counter + 1,
		At:    timer.options.Clock.Now(),
	})
}

// Skip ends the current phase at the next tick.
func (timer *Timer) Skip() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.running {
		timer.skip = true
	}
}

// Run cycles through work and break phases until ctx is done.
//
// It returns ctx.Err() on cancellation, or the error of a notification the
// deliverer rejected as invalid. Sink failures are handled by the deliverer
// and never stop the loop.
func (timer *Timer) Run(ctx context.Context) error {
	timer.mu.Lock()
	if timer.running {
		timer.mu.Unlock()
		return ErrAlreadyRunning
	}
	timer.running = true
	timer.skip = false
	timer.mu.Unlock()

	defer timer.stop()

	zlog.Info().Msgf("cycle timer started: work=%s break=%s ideas=%d",
		timer.config.WorkDuration, timer.config.BreakDuration, timer.ideas.Len())

	for {
		if err := timer.runCycle(ctx); err != nil {
			return err
		}
	}
}

func (timer *Timer) runCycle(ctx context.Context) error {
	timer.mu.Lock()
	timer.applyPendingLocked()
	counter := timer.counter
	timer.mu.Unlock()
	cycle := counter + 1

	if err := timer.enterPhase(ctx, PhaseWork, cycle, "", WorkMessage(cycle)); err != nil {
		return err
	}
	if err := timer.wait(ctx, PhaseWork, cycle, timer.config.WorkDuration); err != nil {
		return err
	}

	idea := timer.ideas.At(counter)
	if err := timer.enterPhase(ctx, PhaseBreak, cycle, idea, BreakMessage(idea, timer.config.BreakDuration)); err != nil {
		return err
	}
	if err := timer.wait(ctx, PhaseBreak, cycle, timer.config.BreakDuration); err != nil {
		return err
	}

	timer.mu.Lock()
	timer.counter++
	timer.mu.Unlock()
	return nil
}

// applyPendingLocked swaps in a config passed to UpdateConfig. config and
// ideas are only written here, on the Run goroutine.
func (timer *Timer) applyPendingLocked() {
	if timer.pending == nil {
		return
	}
	ideas, err := NewIdeaList(timer.pending.Ideas)
	if err != nil {
		timer.pending = nil
		return
	}
	timer.config = *timer.pending
	timer.ideas = ideas
	timer.pending = nil
	zlog.Info().Msgf("cycle config updated: work=%s break=%s ideas=%d",
		timer.config.WorkDuration, timer.config.BreakDuration, ideas.Len())
}

func (timer *Timer) enterPhase(ctx context.Context, phase Phase, cycle int, idea, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var remaining time.Duration
	if phase == PhaseWork {
		remaining = timer.config.WorkDuration
	} else {
		remaining = timer.config.BreakDuration
	}

	timer.mu.Lock()
	timer.phase = phase
	timer.skip = false
	timer.emitLocked(Event{
		Type:      EventPhaseStart,
		Phase:     phase,
		Cycle:     cycle,
		Remaining: remaining,
		Idea:      idea,
		Message:   message,
		At:        timer.options.Clock.Now(),
	})
	timer.mu.Unlock()

	zlog.Info().Msgf("%s phase started: cycle=%d", phase, cycle)

	result, err := timer.deliverer.Deliver(ctx, notify.Notification{
		Title:   phase.Title(),
		Message: message,
		Timeout: timer.config.NotificationTimeout,
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrapf(err, "announce %s phase of cycle %d", phase, cycle)
	}
	if result == notify.ResultFallback {
		timer.emit(Event{
			Type:    EventFallback,
			Phase:   phase,
			Cycle:   cycle,
			Message: message,
			At:      timer.options.Clock.Now(),
		})
	}
	return nil
}

// wait consumes total in slices of at most TickInterval. Paused slices do not
// count towards total.
func (timer *Timer) wait(ctx context.Context, phase Phase, cycle int, total time.Duration) error {
	remaining := total
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		step := timer.options.TickInterval
		if step > remaining {
			step = remaining
		}
		if err := timer.options.Clock.Sleep(ctx, step); err != nil {
			return err
		}

		timer.mu.Lock()
		if timer.skip {
			timer.skip = false
			timer.mu.Unlock()
			zlog.Info().Msgf("%s phase skipped: cycle=%d", phase, cycle)
			return nil
		}
		if !timer.paused {
			remaining -= step
		}
		timer.emitLocked(Event{
			Type:      EventProgress,
			Phase:     phase,
			Cycle:     cycle,
			Remaining: remaining,
			Progress:  progress(total, remaining),
			At:        timer.options.Clock.Now(),
		})
		timer.mu.Unlock()
	}
	return nil
}

func (timer *Timer) stop() {
	timer.mu.Lock()
	timer.running = false
	timer.skip = false
	timer.emitLocked(Event{
		Type:  EventStopped,
		Phase: timer.phase,
		Cycle: timer.counter + 1,
		At:    timer.options.Clock.Now(),
	})
	events := timer.events
	timer.events = nil
	timer.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
	zlog.Info().Msgf("cycle timer stopped: completed_cycles=%d", timer.Counter())
}

func progress(total, remaining time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	value := float64(total-remaining) / float64(total)
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

func (timer *Timer) emit(event Event) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.emitLocked(event)
}

func (timer *Timer) emitLocked(event Event) {
	for _, ch := range timer.events {
		select {
		case ch <- event:
		default:
		}
	}
}
