// Package diag carries errors and warnings out of the pipeline.
//
// Stages never return errors through the chain. They report to a Reporter
// and flip their health flag; the Reporter decides whether the message is
// logged, collected or dropped.
package diag

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/simonhull/kvtag/internal/types"
)

// Reporter receives diagnostics from the parser and the stages.
type Reporter interface {
	Error(err error)
	Warn(w types.Warning)
}

// Nop discards every diagnostic.
type Nop struct{}

func (Nop) Error(error)        {}
func (Nop) Warn(types.Warning) {}

// Zap reports diagnostics through a zap logger.
type Zap struct {
	log *zap.Logger
}

// NewZap returns a Reporter that logs errors at error level and warnings at
// warn level. A nil logger is replaced by zap.NewNop.
func NewZap(log *zap.Logger) *Zap {
	if log == nil {
		log = zap.NewNop()
	}
	return &Zap{log: log}
}

func (z *Zap) Error(err error) {
	z.log.Error(err.Error(), zap.String("stage", stageOf(err)))
}

func (z *Zap) Warn(w types.Warning) {
	fields := []zap.Field{zap.String("stage", w.Stage)}
	if w.Line > 0 {
		fields = append(fields, zap.Int("line", w.Line))
	}
	z.log.Warn(w.Message, fields...)
}

func stageOf(err error) string {
	var (
		pe *types.ParseError
		oe *types.OpenError
		ke *types.KeyError
		ve *types.ValueError
	)
	switch {
	case errors.As(err, &pe), errors.As(err, &oe):
		return "parser"
	case errors.As(err, &ke):
		return "filter"
	case errors.As(err, &ve):
		return ve.Stage
	case errors.Is(err, types.ErrUnresolved):
		return "replace"
	default:
		return "pipeline"
	}
}

// Recorder collects diagnostics in memory. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	errs     []error
	warnings []types.Warning
}

func (r *Recorder) Error(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *Recorder) Warn(w types.Warning) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, w)
}

// Errors returns the collected errors.
func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

// Warnings returns the collected warnings.
func (r *Recorder) Warnings() []types.Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.Warning(nil), r.warnings...)
}

// Err joins the collected errors, or returns nil.
func (r *Recorder) Err() error {
	return errors.Join(r.Errors()...)
}

// Reset drops everything collected so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = nil
	r.warnings = nil
}

type tee []Reporter

// Tee returns a Reporter that forwards to every non-nil reporter.
func Tee(reporters ...Reporter) Reporter {
	var t tee
	for _, r := range reporters {
		if r != nil {
			t = append(t, r)
		}
	}
	return t
}

func (t tee) Error(err error) {
	for _, r := range t {
		r.Error(err)
	}
}

func (t tee) Warn(w types.Warning) {
	for _, r := range t {
		r.Warn(w)
	}
}
