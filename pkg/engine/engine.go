// Package engine evaluates molding scripts. It wraps zygomys in a sandboxed
// environment and produces a design.Design from user source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/chazu/molding/pkg/design"
	"github.com/chazu/molding/pkg/molding"
	zygo "github.com/glycerine/zygomys/zygo"
	"go.uber.org/zap"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalWarning is a non-fatal finding about an evaluated design.
type EvalWarning struct {
	Line    int
	Col     int
	Message string
	NodeID  design.NodeID
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithBaseParams sets the parameters every molding starts from before its
// keywords are applied. Parts are ignored.
func WithBaseParams(p molding.Params) Option {
	return func(e *Engine) {
		p.Parts = nil
		e.settings.base = p
	}
}

// WithCurveDefaults sets the bezier resolution and traversal direction used
// when a script does not give them.
func WithCurveDefaults(resolution int, reverse bool) Option {
	return func(e *Engine) {
		if resolution >= 0 {
			e.settings.resolution = resolution
		}
		e.settings.reverse = reverse
	}
}

// settings are the script-independent defaults builtins fall back to.
type settings struct {
	base       molding.Params
	resolution int
	reverse    bool
}

// DefaultResolution is the bezier samples per span when none is given.
const DefaultResolution = 12

// Engine wraps the zygomys interpreter. It is safe for concurrent use; each
// call to Evaluate creates a fresh sandbox so results depend only on source.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	log        *zap.Logger
	settings   settings
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		log:      zap.NewNop(),
		settings: settings{base: molding.DefaultParams(), resolution: DefaultResolution},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Generation returns the number of evaluations started so far.
func (e *Engine) Generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}

// Evaluate takes script source and produces a new Design.
//
// Return semantics:
//   - On success: returns design + nil errors + nil error
//   - On parse/eval failure: returns nil design + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*design.Design, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		d, evalErrs, err := e.evaluate(source)
		ch <- evalResult{design: d, errors: evalErrs, err: err}
	}()

	d, evalErrs, err := waitWithTimeout(ch, gen, &e.mu, &e.generation)
	switch {
	case err != nil:
		e.log.Warn("evaluation failed", zap.Uint64("generation", gen), zap.Error(err))
	case len(evalErrs) > 0:
		e.log.Debug("evaluation errors", zap.Uint64("generation", gen), zap.Int("errors", len(evalErrs)))
	default:
		d.Version = gen
		e.log.Debug("evaluated", zap.Uint64("generation", gen), zap.Int("moldings", d.Len()))
	}
	return d, evalErrs, err
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*design.Design, []EvalError, error) {
	d := design.New()
	d.Defaults.Profile = e.settings.base.Profile
	d.Defaults.Tolerance = e.settings.base.Tolerance
	if strings.TrimSpace(source) == "" {
		return d, nil, nil
	}

	// Sandbox mode keeps scripts away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, d, e.settings)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	return d, nil, nil
}

// Check validates d and splits the findings into blocking errors and
// warnings.
func Check(d *design.Design) ([]EvalError, []EvalWarning) {
	res := design.Validate(d)
	var errs []EvalError
	for _, v := range res.Errors {
		errs = append(errs, EvalError{Message: v.Error()})
	}
	var warns []EvalWarning
	for _, v := range res.Warnings {
		warns = append(warns, EvalWarning{Message: v.Error(), NodeID: v.NodeID})
	}
	return errs, warns
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalError values,
// extracting the line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
