// Package dispatch fans input records out to concurrent tasks and joins them.
//
// Each non-blank input line becomes one task. A task parses the line, expands
// it into candidates and appends the whole candidate list to the shared sink
// in a single call, so lines from different records never interleave. By
// default there is one goroutine per record; RunConfig.Workers bounds that.
//
// A malformed record fails only its own task and is reported in the Summary.
// A sink error is fatal: it cancels the run, no further records are launched,
// and Run returns the error once every started task has finished.
package dispatch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"uncreator/internal/config"
	"uncreator/internal/names"
	"uncreator/internal/sink"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1024 * 1024

// Expander turns one record into its candidate list.
type Expander interface {
	Expand(rec names.Record) ([]string, error)
}

// RecordFailure describes one input line that could not be processed.
type RecordFailure struct {
	Source string
	Line   int
	Err    error
}

func (f RecordFailure) String() string {
	return fmt.Sprintf("%s:%d: %v", f.Source, f.Line, f.Err)
}

// Summary reports what a run did.
type Summary struct {
	RunID     string
	Inputs    []string
	Launched  int
	Succeeded int
	Failed    int
	Cancelled int
	Blank     int
	Failures  []RecordFailure
}

// Complete reports whether every launched record was written.
func (s *Summary) Complete() bool {
	return s.Failed == 0 && s.Cancelled == 0
}

// Dispatcher runs generation passes over the configured inputs.
type Dispatcher struct {
	cfg      config.RunConfig
	expander Expander
	out      sink.Sink
	logger   *zap.Logger

	onLaunched func(launched int)
}

// tally collects task outcomes for one Run.
type tally struct {
	succeeded atomic.Int64
	cancelled atomic.Int64

	mu       sync.Mutex
	failures []RecordFailure
}

func (t *tally) fail(f RecordFailure) {
	t.mu.Lock()
	t.failures = append(t.failures, f)
	t.mu.Unlock()
}

// New creates a dispatcher. A nil logger disables logging.
func New(cfg config.RunConfig, expander Expander, out sink.Sink, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{cfg: cfg, expander: expander, out: out, logger: logger}
}

// OnLaunched registers fn to be called once all records are launched and
// before Run waits for them. It runs on the goroutine that called Run.
func (d *Dispatcher) OnLaunched(fn func(launched int)) {
	d.onLaunched = fn
}

// Run processes every input line and waits for all tasks before returning.
// The summary is non-nil whenever inputs were resolved, even on error.
func (d *Dispatcher) Run(ctx context.Context) (*Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	inputs, err := ResolveInputs(d.cfg.InputPath)
	if err != nil {
		return nil, err
	}

	sum := &Summary{RunID: uuid.NewString(), Inputs: inputs}
	logger := d.logger.With(zap.String("run_id", sum.RunID))
	logger.Info("Dispatch started",
		zap.Strings("inputs", inputs),
		zap.Int("workers", d.cfg.Workers),
		zap.Int("number_range", d.cfg.NumberRange),
		zap.Bool("case_sensitive", d.cfg.CaseSensitive),
		zap.Bool("special_chars", d.cfg.SpecialChars))

	if d.cfg.IncludeDefaults {
		if err := d.out.AppendLines(names.DefaultAccounts()); err != nil {
			return sum, fmt.Errorf("failed to write default accounts: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	if d.cfg.Bounded() {
		g.SetLimit(d.cfg.Workers)
	}

	t := &tally{}
	readErr := d.launchAll(gctx, g, inputs, sum, t, logger)
	logger.Debug("Records launched", zap.Int("launched", sum.Launched))
	if d.onLaunched != nil {
		d.onLaunched(sum.Launched)
	}
	waitErr := g.Wait()

	sum.Succeeded = int(t.succeeded.Load())
	sum.Cancelled = int(t.cancelled.Load())
	sum.Failures = t.failures
	sort.Slice(sum.Failures, func(i, j int) bool {
		a, b := sum.Failures[i], sum.Failures[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.Line < b.Line
	})
	sum.Failed = len(sum.Failures)

	logger.Info("Dispatch finished",
		zap.Int("launched", sum.Launched),
		zap.Int("succeeded", sum.Succeeded),
		zap.Int("failed", sum.Failed),
		zap.Int("cancelled", sum.Cancelled),
		zap.Int("blank", sum.Blank))

	if waitErr != nil {
		return sum, waitErr
	}
	if readErr != nil {
		return sum, readErr
	}
	return sum, nil
}

func (d *Dispatcher) launchAll(ctx context.Context, g *errgroup.Group, inputs []string, sum *Summary, t *tally, logger *zap.Logger) error {
	for _, path := range inputs {
		if err := d.launchFile(ctx, g, path, sum, t, logger); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) launchFile(ctx context.Context, g *errgroup.Group, path string, sum *Summary, t *tally, logger *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := scanner.Text()
		if names.IsBlank(line) {
			sum.Blank++
			continue
		}

		sum.Launched++
		src, n := path, lineNo
		g.Go(func() error {
			return d.process(ctx, t, src, n, line, logger)
		})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input %s: %w", path, err)
	}
	logger.Debug("Input consumed", zap.String("path", path), zap.Int("lines", lineNo))
	return nil
}

// process is the body of one record task.
func (d *Dispatcher) process(ctx context.Context, t *tally, source string, lineNo int, line string, logger *zap.Logger) error {
	if ctx.Err() != nil {
		t.cancelled.Add(1)
		return nil
	}

	rec, err := names.ParseRecord(line)
	var candidates []string
	if err == nil {
		candidates, err = d.expander.Expand(rec)
	}
	if err != nil {
		if !errors.Is(err, names.ErrInvalidRecord) {
			return fmt.Errorf("%s:%d: %w", source, lineNo, err)
		}
		logger.Warn("Record failed",
			zap.String("source", source),
			zap.Int("line", lineNo),
			zap.Error(err))
		t.fail(RecordFailure{Source: source, Line: lineNo, Err: err})
		return nil
	}

	if ctx.Err() != nil {
		t.cancelled.Add(1)
		return nil
	}
	if err := d.out.AppendLines(candidates); err != nil {
		logger.Error("Write failed", zap.String("source", source), zap.Int("line", lineNo), zap.Error(err))
		return fmt.Errorf("%s:%d: %w", source, lineNo, err)
	}
	t.succeeded.Add(1)
	return nil
}
