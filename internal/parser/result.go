// Where: internal/parser/result.go
// What: Parse results, diagnostics and per-step outcomes.
// Why: Make "log, skip this step, keep the rest" an explicit control path.
package parser

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/poruru-code/domd/internal/domain/command"
)

// Severity classifies a diagnostic.
type Severity string

const (
	// SeverityWarning marks a finding that did not drop any command.
	SeverityWarning Severity = "warning"
	// SeverityError marks a step whose contribution was dropped.
	SeverityError Severity = "error"
)

// Common step names.
const (
	StepRead = "read"
)

// Diagnostic is a soft failure recorded while parsing one file.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Step     string   `json:"step" yaml:"step"`
	Path     string   `json:"path" yaml:"path"`
	Message  string   `json:"message" yaml:"message"`
	Cause    error    `json:"-" yaml:"-"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", d.Severity, d.Step, d.Path, d.Message)
}

// Result is what a parse call produces. Commands are kept even when later
// steps fail.
type Result struct {
	Commands    []command.Command `json:"commands" yaml:"commands"`
	Diagnostics []Diagnostic      `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Outcome is the result of one parse step: a value, or the reason it could
// not be produced.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Ok wraps a successful value.
func Ok[T any](value T) Outcome[T] {
	return Outcome[T]{Value: value}
}

// Failed wraps a soft failure.
func Failed[T any](err error) Outcome[T] {
	return Outcome[T]{Err: err}
}

// OK reports whether the outcome carries a value.
func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

// Attempt runs fn and converts a returned error or a panic into a failed
// outcome.
func Attempt[T any](fn func() (T, error)) (out Outcome[T]) {
	defer func() {
		if recovered := recover(); recovered != nil {
			out = Failed[T](fmt.Errorf("unexpected failure: %v", recovered))
		}
	}()
	value, err := fn()
	if err != nil {
		return Failed[T](err)
	}
	return Ok(value)
}

// Resolve records a failed outcome on rec and reports whether the value can
// be used.
func Resolve[T any](rec *Recorder, step string, outcome Outcome[T]) (T, bool) {
	if !outcome.OK() {
		rec.Fail(step, outcome.Err)
		var zero T
		return zero, false
	}
	return outcome.Value, true
}

// Recorder accumulates commands and diagnostics for a single parse call.
// It is not shared across calls.
type Recorder struct {
	path   string
	logger *log.Logger
	result Result
}

func newRecorder(path string, logger *log.Logger) *Recorder {
	return &Recorder{path: path, logger: logger}
}

// Add appends commands in order.
func (r *Recorder) Add(commands ...command.Command) {
	r.result.Commands = append(r.result.Commands, commands...)
}

// Step runs fn as a guarded step. On error or panic the failure is recorded
// and false is returned.
func (r *Recorder) Step(step string, fn func() error) bool {
	outcome := Attempt(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	_, ok := Resolve(r, step, outcome)
	return ok
}

// Warn records a warning diagnostic.
func (r *Recorder) Warn(step string, err error) {
	r.record(SeverityWarning, step, err)
	r.logger.Warn("parse warning", "file", r.path, "step", step, "err", err)
}

// Fail records an error diagnostic.
func (r *Recorder) Fail(step string, err error) {
	r.record(SeverityError, step, err)
	r.logger.Error("parse step failed", "file", r.path, "step", step, "err", err)
}

// Result returns the accumulated result.
func (r *Recorder) Result() Result {
	return r.result
}

func (r *Recorder) record(severity Severity, step string, err error) {
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}
	r.result.Diagnostics = append(r.result.Diagnostics, Diagnostic{
		Severity: severity,
		Step:     step,
		Path:     r.path,
		Message:  message,
		Cause:    err,
	})
}
