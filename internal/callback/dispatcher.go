package callback

import (
	"fmt"
	"time"

	"github.com/rs/xid"

	"playstatsd/internal/event"
	"playstatsd/internal/log"
	"playstatsd/internal/statsd"
)

// LifecycleHook is the surface through which the automation runtime reports run progress.
// Start events never fail; completion events may return a MissingStartError when the
// runtime delivers them out of order.
type LifecycleHook interface {
	// OnPlaybookStart reports the beginning of a playbook run.
	OnPlaybookStart(e event.PlaybookStart)

	// OnPlayStart reports the beginning of a play.
	OnPlayStart(e event.PlayStart)

	// OnTaskStart reports the beginning of a task or handler task.
	OnTaskStart(e event.TaskStart)

	// OnHostOutcome reports the terminal status of one task execution on one host.
	OnHostOutcome(e event.HostOutcome) error

	// OnRunEnd reports the aggregate outcome counts at the end of the run.
	OnRunEnd(e event.RunEnd) error
}

// Dispatcher is a LifecycleHook implementation that translates run progress into statsd
// counter and gauge submissions. It is the exclusive owner of the naming context and the
// timing tracker, and expects events sequentially: an elapsed-time read depends on the
// start recorded by an earlier event in the same stream.
type Dispatcher struct {
	client statsd.Client
	logger log.Logger
	runID  xid.ID

	ctx    ExecutionContext
	timing *TimingTracker
	now    func() time.Time
}

// NewDispatcher creates a dispatcher submitting through the given client. Check mode is
// seeded true, so nothing is transmitted until a per-host result reports a live run.
func NewDispatcher(client statsd.Client, logger log.Logger) *Dispatcher {
	return &Dispatcher{
		client: client,
		logger: logger,
		runID:  xid.New(),
		ctx:    ExecutionContext{CheckMode: true},
		timing: NewTimingTracker(),
		now:    time.Now,
	}
}

// OnPlaybookStart records the playbook start time and seeds the naming context.
func (d *Dispatcher) OnPlaybookStart(e event.PlaybookStart) {
	d.timing.StartPlaybook(d.now())
	d.ctx.SetPlaybook(e.Basedir, e.FileName, e.Plays)

	d.logger.Debug(
		"callback: playbook started: run=%s basedir=%s playbook=%s plays=%d",
		d.runID, d.ctx.Basedir, d.ctx.Playbook, len(e.Plays),
	)
}

// OnPlayStart records the play start time and updates the naming context.
func (d *Dispatcher) OnPlayStart(e event.PlayStart) {
	d.timing.StartPlay(d.now())
	d.ctx.Play = e.Play

	d.logger.Debug("callback: play started: run=%s play=%s", d.runID, e.Play)
}

// OnTaskStart records task timing keyed by the task's unique identifier. Handler task
// starts are timed but leave the displayed task name untouched.
func (d *Dispatcher) OnTaskStart(e event.TaskStart) {
	d.timing.StartTask(e.UUID, d.now())
	if !e.Handler {
		d.ctx.Task = e.Name
	}

	d.logger.Debug(
		"callback: task started: run=%s uuid=%s handler=%t",
		d.runID, e.UUID, e.Handler,
	)
}

// OnHostOutcome composes and submits the counter and gauge for one per-host task result.
// Transport failures are logged and swallowed so one bad submission never aborts the run;
// a missing task start is returned to the caller.
func (d *Dispatcher) OnHostOutcome(e event.HostOutcome) error {
	d.ctx.CheckMode = e.CheckMode

	elapsed, err := d.timing.ElapsedTask(e.TaskUUID, d.now())
	if err != nil {
		return err
	}

	counter, gauge := ComposeEventMetrics(d.ctx, e.Host, e.Status, elapsed)

	d.logger.Debug(
		"callback: host outcome: run=%s host=%s status=%s elapsed=%f counter=%s",
		d.runID, e.Host, e.Status, elapsed, counter.Name,
	)

	d.send(counter)
	d.send(gauge)

	return nil
}

// OnRunEnd flattens the aggregate outcome counts into per-(category, host) metrics against
// the playbook's total elapsed time.
func (d *Dispatcher) OnRunEnd(e event.RunEnd) error {
	runtime, err := d.timing.ElapsedPlaybook(d.now())
	if err != nil {
		return err
	}

	lines := FlattenRunStats(d.ctx, runtime, e.Stats)

	d.logger.Debug(
		"callback: run ended: run=%s runtime=%f metrics=%d",
		d.runID, runtime, len(lines),
	)

	for _, line := range lines {
		d.send(line)
	}

	return nil
}

// HandleEvent routes a decoded event to its hook method.
func (d *Dispatcher) HandleEvent(e event.Event) error {
	switch ev := e.(type) {
	case event.PlaybookStart:
		d.OnPlaybookStart(ev)
	case event.PlayStart:
		d.OnPlayStart(ev)
	case event.TaskStart:
		d.OnTaskStart(ev)
	case event.HostOutcome:
		return d.OnHostOutcome(ev)
	case event.RunEnd:
		return d.OnRunEnd(ev)
	default:
		return fmt.Errorf("callback: unhandled event type: type=%T", e)
	}

	return nil
}

// send submits a single line, unless check mode suppresses transmission.
func (d *Dispatcher) send(line statsd.Line) {
	if d.ctx.CheckMode {
		d.logger.Debug(
			"callback: check mode; metric not transmitted: run=%s name=%s",
			d.runID, line.Name,
		)
		return
	}

	if err := d.client.Send(line); err != nil {
		d.logger.Warn(
			"callback: metric submission failed: run=%s name=%s err=%v",
			d.runID, line.Name, err,
		)
	}
}
