// Package quote holds a live quote: the operator's inputs, the config they are
// priced against, the computed outputs and any manual overrides on top.
package quote

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/Simplici0/sanquote/internal/errors"
	"github.com/Simplici0/sanquote/internal/pricing"
	"github.com/Simplici0/sanquote/internal/services"
)

// Loader resolves the current config of a service. When it returns an error
// alongside a config, the config is a fallback and still usable.
type Loader interface {
	Load(ctx context.Context, id services.ID) (pricing.Config, error)
}

// Session is one quote being edited. It is safe for concurrent use so a
// config sync can land while inputs are being patched.
type Session struct {
	mu sync.Mutex

	id     string
	def    *services.Definition
	loader Loader
	log    *zap.Logger

	title    string
	in       services.Inputs
	cfg      pricing.Config
	synced   bool
	requests uint64
	applied  uint64
	computed services.Outputs
	fields   map[services.Field]*Overridable[float64]
	warnings []string
	updated  time.Time
}

// NewSession starts a quote priced against the compiled-in defaults until the
// first Sync.
func NewSession(def *services.Definition, loader Loader, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		id:     uuid.NewString(),
		def:    def,
		loader: loader,
		log:    log,
		cfg:    def.Defaults(),
		fields: make(map[services.Field]*Overridable[float64], len(services.Fields)),
	}
	for _, f := range services.Fields {
		s.fields[f] = &Overridable[float64]{}
	}
	s.recompute()
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Service() services.ID {
	return s.def.ID
}

// Sync loads the service config and reprices. A changed config version drops
// every override. Load failures keep the current config and are recorded as
// warnings; the returned error is only informational. A load that returns
// after a later Sync has already applied its result is discarded.
func (s *Session) Sync(ctx context.Context) error {
	if s.loader == nil {
		return nil
	}
	s.mu.Lock()
	s.requests++
	seq := s.requests
	s.mu.Unlock()

	cfg, err := s.loader.Load(ctx, s.def.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.applied {
		s.log.Debug("superseded config load dropped",
			zap.String("session", s.id),
			zap.Uint64("seq", seq),
			zap.Uint64("applied", s.applied))
		return nil
	}
	s.applied = seq

	if err != nil {
		s.warnings = append(s.warnings, err.Error())
		s.log.Warn("config load failed",
			zap.String("session", s.id),
			zap.String("service", string(s.def.ID)),
			zap.Error(err))
	}
	if cfg.Version == "" && len(cfg.Rates) == 0 && len(cfg.Blocks) == 0 {
		return err
	}
	if cfg.Version != s.cfg.Version {
		s.invalidate("config version " + cfg.Version)
	}
	s.cfg = cfg
	s.synced = true
	s.recompute()
	return err
}

// Apply merges p into the inputs and reprices. Any change besides notes
// clears all overrides.
func (s *Session) Apply(p services.Patch) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.in = s.in.Apply(p)
	if p.TouchesPricing() {
		s.invalidate("inputs changed")
	}
	s.recompute()
	return s.snapshot()
}

// SetTitle names the quote for the archive.
func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	s.title = title
	s.updated = time.Now().UTC()
	s.mu.Unlock()
}

// SetOverride pins the exposed value of f.
func (s *Session) SetOverride(f services.Field, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return apperrors.Input("override must be a finite number").With("field", string(f))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.fields[f]
	if !ok {
		return apperrors.Newf(apperrors.TypeInput, "unknown output field %q", f)
	}
	o.Pin(v)
	s.updated = time.Now().UTC()
	return nil
}

// ClearOverride unpins f. Clearing an unpinned field is a no-op.
func (s *Session) ClearOverride(f services.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.fields[f]
	if !ok {
		return apperrors.Newf(apperrors.TypeInput, "unknown output field %q", f)
	}
	o.Clear()
	s.updated = time.Now().UTC()
	return nil
}

// Value is the exposed value of f.
func (s *Session) Value(f services.Field) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.fields[f]
	if !ok {
		return 0, false
	}
	return o.Value(), true
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// invalidate is the single place overrides are dropped. Callers hold mu.
func (s *Session) invalidate(reason string) {
	n := 0
	for _, o := range s.fields {
		if _, ok := o.Override(); ok {
			o.Clear()
			n++
		}
	}
	if n > 0 {
		s.log.Debug("overrides cleared",
			zap.String("session", s.id),
			zap.String("reason", reason),
			zap.Int("count", n))
	}
}

// recompute derives outputs strictly from inputs and config. Callers hold mu.
func (s *Session) recompute() {
	s.computed = s.def.Compute(s.in, s.cfg)
	for f, o := range s.fields {
		v, _ := s.computed.Value(f)
		o.SetComputed(v)
	}
	s.updated = time.Now().UTC()
}

func (s *Session) snapshot() Snapshot {
	exposed := s.computed
	exposed.Lines = append([]services.LineItem(nil), s.computed.Lines...)
	overrides := make(map[services.Field]float64)
	for f, o := range s.fields {
		if v, ok := o.Override(); ok {
			overrides[f] = v
			exposed.Set(f, v)
		}
	}

	in := s.in
	in.Quantities = make(map[string]float64, len(s.in.Quantities))
	for k, v := range s.in.Quantities {
		in.Quantities[k] = v
	}

	return Snapshot{
		ID:            s.id,
		Service:       s.def.ID,
		Title:         s.title,
		Inputs:        in,
		Computed:      s.computed,
		Exposed:       exposed,
		Overrides:     overrides,
		ConfigVersion: s.cfg.Version,
		Pending:       !s.synced && s.loader != nil,
		Warnings:      append([]string(nil), s.warnings...),
		UpdatedAt:     s.updated,
	}
}

// Snapshot is a read-only copy of a session.
type Snapshot struct {
	ID            string                     `json:"id"`
	Service       services.ID                `json:"service"`
	Title         string                     `json:"title,omitempty"`
	Inputs        services.Inputs            `json:"inputs"`
	Computed      services.Outputs           `json:"computed"`
	Exposed       services.Outputs           `json:"exposed"`
	Overrides     map[services.Field]float64 `json:"overrides"`
	ConfigVersion string                     `json:"configVersion"`
	Pending       bool                       `json:"pending"`
	Warnings      []string                   `json:"warnings,omitempty"`
	UpdatedAt     time.Time                  `json:"updatedAt"`
}
