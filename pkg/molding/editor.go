package molding

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/chazu/molding/pkg/kernel"
	"go.uber.org/zap"
)

var (
	// ErrAlreadyBatching is returned by BeginBatchEdit during a batch.
	ErrAlreadyBatching = errors.New("molding: batch edit already in progress")
	// ErrNotBatching is returned by CommitBatchEdit outside a batch.
	ErrNotBatching = errors.New("molding: no batch edit in progress")
)

// HostMesh receives complete buffers. Replace must swap the visible mesh
// in one step.
type HostMesh interface {
	Replace(buf *kernel.MeshBuffers) error
}

// AtomicMesh is an in-memory HostMesh.
type AtomicMesh struct {
	buf      atomic.Pointer[kernel.MeshBuffers]
	replaced atomic.Int64
}

// Replace implements HostMesh.
func (m *AtomicMesh) Replace(buf *kernel.MeshBuffers) error {
	m.buf.Store(buf)
	m.replaced.Add(1)
	return nil
}

// Load returns the current buffers, nil before the first Replace.
func (m *AtomicMesh) Load() *kernel.MeshBuffers {
	return m.buf.Load()
}

// Replacements counts calls to Replace.
func (m *AtomicMesh) Replacements() int64 {
	return m.replaced.Load()
}

// State is the editor's batch state.
type State int

const (
	Idle State = iota
	Batching
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Batching:
		return "batching"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Editor owns a parameter set and keeps a host mesh in sync with it.
// Edits made inside BeginBatchEdit/CommitBatchEdit regenerate once on
// commit. Regeneration runs one pass at a time: a request arriving during
// a pass is folded into a single follow-up pass on the latest parameters,
// and the superseded result is never handed to the host.
type Editor struct {
	host HostMesh
	log  *zap.Logger

	mu      sync.Mutex
	params  Params
	state   State
	changed bool // edited during the current batch
	running bool
	dirty   bool   // params changed while a pass was running
	gen     uint64 // regeneration passes started
}

// NewEditor returns an idle editor. Nothing is generated until the first
// update or Regenerate.
func NewEditor(params Params, host HostMesh, opts ...Option) *Editor {
	o := applyOptions(opts)
	return &Editor{host: host, log: o.log, params: params.Clone()}
}

// State returns the batch state.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Params returns a copy of the current parameters.
func (e *Editor) Params() Params {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params.Clone()
}

// Generation returns the number of regeneration passes started.
func (e *Editor) Generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen
}

// SectionAnchors returns the anchors for the current parameters.
func (e *Editor) SectionAnchors() Anchors {
	return New(e.Params(), WithLogger(e.log)).SectionAnchors()
}

// BeginBatchEdit defers regeneration until CommitBatchEdit.
func (e *Editor) BeginBatchEdit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Batching {
		return ErrAlreadyBatching
	}
	e.state = Batching
	e.changed = false
	return nil
}

// CommitBatchEdit ends the batch and regenerates once if anything changed.
func (e *Editor) CommitBatchEdit(ctx context.Context) error {
	e.mu.Lock()
	if e.state != Batching {
		e.mu.Unlock()
		return ErrNotBatching
	}
	e.state = Idle
	changed := e.changed
	e.changed = false
	e.mu.Unlock()

	if !changed {
		return nil
	}
	return e.regenerate(ctx)
}

// Update applies fn to the parameters. Outside a batch it regenerates.
func (e *Editor) Update(ctx context.Context, fn func(*Params)) error {
	e.mu.Lock()
	fn(&e.params)
	if e.state == Batching {
		e.changed = true
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()
	return e.regenerate(ctx)
}

// Regenerate forces a pass on the current parameters.
func (e *Editor) Regenerate(ctx context.Context) error {
	return e.regenerate(ctx)
}

func (e *Editor) regenerate(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.dirty = true
		e.mu.Unlock()
		e.log.Debug("regeneration queued")
		return nil
	}
	e.running = true
	defer func() {
		e.running = false
		e.mu.Unlock()
	}()

	for {
		e.dirty = false
		e.gen++
		gen := e.gen
		p := e.params.Clone()
		e.mu.Unlock()

		if err := ctx.Err(); err != nil {
			e.mu.Lock()
			// Queued edits stay in params for the next Regenerate.
			e.dirty = false
			return err
		}
		buf := New(p, WithLogger(e.log)).Generate()

		e.mu.Lock()
		if e.dirty {
			e.log.Debug("discarding superseded molding", zap.Uint64("generation", gen))
			continue
		}
		e.mu.Unlock()

		err := e.host.Replace(buf)

		e.mu.Lock()
		if err != nil {
			err = fmt.Errorf("molding: replace host mesh: %w", err)
			if !e.dirty {
				return err
			}
			// A queued edit was promised a pass; the follow-up result
			// supersedes the failed one.
			e.log.Warn("host mesh replace failed, running queued pass", zap.Error(err))
			continue
		}
		e.log.Debug("host mesh replaced",
			zap.Uint64("generation", gen),
			zap.Int("vertices", buf.VertexCount()),
			zap.Int("faces", buf.FaceCount()),
		)
		if !e.dirty {
			return nil
		}
	}
}
