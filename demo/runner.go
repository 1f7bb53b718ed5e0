package demo

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/ownership/errors"
	"github.com/wippyai/ownership/lifecycle"
	"github.com/wippyai/ownership/ptr"
)

// DefaultMany is the number of elements the vector factory builds.
const DefaultMany = 300

// UnwindName labels the result holding the outer scope's cleanup.
const UnwindName = "unwind"

// Options configures a run.
type Options struct {
	// Selector chooses the shared release order. Defaults to ClockSelector.
	Selector Selector
	// Sink receives every event in addition to the run's own recorder.
	Sink lifecycle.Sink
	// Many is the vector factory size. Defaults to DefaultMany.
	Many int
	// Hazard drops two aliasing exclusive pointers, triggering a double release.
	Hazard bool
}

// Result is what one scenario did.
type Result struct {
	Name   string            `json:"name" yaml:"name"`
	Error  string            `json:"error,omitempty" yaml:"error,omitempty"`
	Notes  []string          `json:"notes" yaml:"notes"`
	Events []lifecycle.Event `json:"events" yaml:"events"`
}

// Report is the outcome of a run.
type Report struct {
	RunID        string          `json:"run_id" yaml:"run_id"`
	Results      []Result        `json:"results" yaml:"results"`
	Leaked       []int           `json:"leaked" yaml:"leaked"`
	Overreleased []int           `json:"overreleased,omitempty" yaml:"overreleased,omitempty"`
	Stats        lifecycle.Stats `json:"stats" yaml:"stats"`
	ReleaseOrder int             `json:"release_order" yaml:"release_order"`
}

// Result returns the result named name.
func (r *Report) Result(name string) (Result, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return Result{}, false
}

// Env is what a scenario runs against.
type Env struct {
	tracker *lifecycle.Tracker
	main    *ptr.Scope
	opts    *Options
	result  *Result
	order   int
}

// Tracker returns the run's tracker.
func (e *Env) Tracker() *lifecycle.Tracker {
	return e.tracker
}

// Main returns the run's outermost scope.
func (e *Env) Main() *ptr.Scope {
	return e.main
}

// Notef appends a diagnostic line to the current result.
func (e *Env) Notef(format string, args ...any) {
	e.result.Notes = append(e.result.Notes, fmt.Sprintf(format, args...))
}

// Runner executes scenarios.
type Runner struct {
	logger *zap.Logger
	opts   Options
}

// NewRunner creates a runner. A nil logger becomes a no-op.
func NewRunner(opts Options, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Selector == nil {
		opts.Selector = ClockSelector{}
	}
	if opts.Many <= 0 {
		opts.Many = DefaultMany
	}
	return &Runner{logger: logger, opts: opts}
}

// Run executes the named scenarios in registry order, or all of them if
// no names are given.
func (r *Runner) Run(names ...string) (*Report, error) {
	selected, err := selectScenarios(names)
	if err != nil {
		return nil, err
	}

	rec := lifecycle.NewRecorder()
	sinks := []lifecycle.Sink{rec}
	if r.opts.Sink != nil {
		sinks = append(sinks, r.opts.Sink)
	}
	tr := lifecycle.NewTracker(sinks...)

	report := &Report{RunID: uuid.NewString(), ReleaseOrder: -1}
	log := r.logger.With(zap.String("run_id", report.RunID))

	var mark int
	err = ptr.Run("main", func(main *ptr.Scope) error {
		env := &Env{tracker: tr, main: main, opts: &r.opts, order: -1}
		for _, sc := range selected {
			start := rec.Len()
			res := Result{Name: sc.Name}
			env.result = &res

			log.Debug("scenario start", zap.String("scenario", sc.Name))
			if err := sc.run(env); err != nil {
				res.Error = err.Error()
				log.Warn("scenario failed",
					zap.String("scenario", sc.Name),
					zap.Error(err))
			}

			res.Events = rec.Since(start)
			report.Results = append(report.Results, res)
		}
		report.ReleaseOrder = env.order
		main.DeferFunc(func() { mark = rec.Len() })
		return nil
	})
	if err != nil {
		return nil, err
	}

	report.Results = append(report.Results, Result{
		Name:   UnwindName,
		Notes:  []string{"outer scope dropped"},
		Events: rec.Since(mark),
	})
	report.Stats = tr.Stats()
	report.Leaked = tr.LiveIDs()
	report.Overreleased = tr.Overreleased()

	log.Info("run complete",
		zap.Int("scenarios", len(selected)),
		zap.Int("events", rec.Len()),
		zap.Ints("leaked", report.Leaked),
		zap.Ints("overreleased", report.Overreleased))
	return report, nil
}

func selectScenarios(names []string) ([]Scenario, error) {
	if len(names) == 0 {
		return Scenarios(), nil
	}
	want := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := Lookup(name); !ok {
			return nil, errors.NotFound(errors.PhaseConfig, "scenario", name)
		}
		want[name] = true
	}
	var out []Scenario
	for _, sc := range registry {
		if want[sc.Name] {
			out = append(out, sc)
		}
	}
	return out, nil
}
