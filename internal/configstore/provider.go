package configstore

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/Simplici0/sanquote/internal/errors"
	"github.com/Simplici0/sanquote/internal/pricing"
	"github.com/Simplici0/sanquote/internal/services"
)

// State is the fetch state of one service config.
type State string

const (
	Pending  State = "pending"
	Resolved State = "resolved"
	Failed   State = "failed"
)

const defaultBackoff = 100 * time.Millisecond

// Options tune a Provider. Zero values mean no expiry, no retries and the
// default backoff.
type Options struct {
	TTL     time.Duration
	Retries uint64
	Backoff time.Duration
	Logger  *zap.Logger
}

// Status is the externally visible state of one service config.
type Status struct {
	Service   services.ID `json:"service"`
	State     State       `json:"state"`
	Version   string      `json:"version,omitempty"`
	FetchedAt time.Time   `json:"fetchedAt,omitempty"`
	Defaulted bool        `json:"defaulted"`
	Warning   string      `json:"warning,omitempty"`
}

type entry struct {
	cfg       pricing.Config
	state     State
	fetchedAt time.Time
	defaulted bool
	warning   string
}

type result struct {
	cfg pricing.Config
	err error
}

// Provider caches one config per service. Concurrent loads of the same
// service share a single fetch.
type Provider struct {
	src   Source
	opts  Options
	log   *zap.Logger
	group singleflight.Group
	now   func() time.Time

	mu      sync.RWMutex
	entries map[services.ID]*entry
}

func NewProvider(src Source, opts Options) *Provider {
	if opts.Backoff <= 0 {
		opts.Backoff = defaultBackoff
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{
		src:     src,
		opts:    opts,
		log:     log.Named("configstore"),
		now:     time.Now,
		entries: make(map[services.ID]*entry),
	}
}

// Load returns the config of a service, fetching it when nothing fresh is
// cached. The config is always usable: on failure it is the last good one or
// the compiled-in default, and the error explains why.
func (p *Provider) Load(ctx context.Context, id services.ID) (pricing.Config, error) {
	def, ok := services.Lookup(id)
	if !ok {
		return pricing.Config{}, apperrors.NotFound("service", string(id))
	}

	p.mu.RLock()
	e := p.entries[id]
	if e != nil && p.fresh(e) {
		cfg, warning, state := e.cfg.Clone(), e.warning, e.state
		p.mu.RUnlock()
		if state == Failed {
			return cfg, apperrors.New(apperrors.TypeConfig, warning).With("service", string(id))
		}
		return cfg, nil
	}
	p.mu.RUnlock()

	return p.fetch(ctx, def)
}

// Refresh always re-fetches, whatever the cache holds.
func (p *Provider) Refresh(ctx context.Context, id services.ID) (pricing.Config, error) {
	def, ok := services.Lookup(id)
	if !ok {
		return pricing.Config{}, apperrors.NotFound("service", string(id))
	}
	return p.fetch(ctx, def)
}

// Status reports the fetch state of a service config.
func (p *Provider) Status(id services.ID) Status {
	p.mu.RLock()
	defer p.mu.RUnlock()

	e, ok := p.entries[id]
	if !ok {
		return Status{Service: id, State: Pending}
	}
	return Status{
		Service:   id,
		State:     e.state,
		Version:   e.cfg.Version,
		FetchedAt: e.fetchedAt,
		Defaulted: e.defaulted,
		Warning:   e.warning,
	}
}

// Writer stores validated documents.
type Writer interface {
	Put(ctx context.Context, id services.ID, doc []byte, version string) error
}

// Publish validates doc, stores it and refreshes the cached config.
func (p *Provider) Publish(ctx context.Context, w Writer, id services.ID, doc []byte) (pricing.Config, error) {
	def, ok := services.Lookup(id)
	if !ok {
		return pricing.Config{}, apperrors.NotFound("service", string(id))
	}
	cfg, err := Decode(def, doc)
	if err != nil {
		return pricing.Config{}, err
	}
	if err := w.Put(ctx, id, doc, cfg.Version); err != nil {
		return pricing.Config{}, apperrors.Internal("store config", err)
	}
	p.log.Info("config published", zap.String("service", string(id)), zap.String("version", cfg.Version))
	return p.Refresh(ctx, id)
}

func (p *Provider) fresh(e *entry) bool {
	if p.opts.TTL <= 0 {
		return true
	}
	return p.now().Sub(e.fetchedAt) < p.opts.TTL
}

func (p *Provider) fetch(ctx context.Context, def *services.Definition) (pricing.Config, error) {
	v, _, _ := p.group.Do(string(def.ID), func() (any, error) {
		return p.resolve(ctx, def), nil
	})
	res := v.(result)
	return res.cfg.Clone(), res.err
}

func (p *Provider) resolve(ctx context.Context, def *services.Definition) result {
	doc, err := p.fetchDoc(ctx, def.ID)
	if errors.Is(err, ErrNotFound) {
		p.log.Debug("no stored config, using defaults", zap.String("service", string(def.ID)))
		cfg := def.Defaults()
		p.store(def.ID, &entry{cfg: cfg, state: Resolved, defaulted: true})
		return result{cfg: cfg}
	}
	if err != nil {
		return p.fallback(def, apperrors.Config("fetch config", err))
	}

	cfg, err := Decode(def, doc)
	if err != nil {
		return p.fallback(def, err)
	}
	p.store(def.ID, &entry{cfg: cfg, state: Resolved})
	return result{cfg: cfg}
}

func (p *Provider) fetchDoc(ctx context.Context, id services.ID) ([]byte, error) {
	var doc []byte
	attempt := 0
	b := retry.WithMaxRetries(p.opts.Retries, retry.NewExponential(p.opts.Backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		d, err := p.src.Fetch(ctx, id)
		if err == nil {
			doc = d
			return nil
		}
		if errors.Is(err, ErrNotFound) || ctx.Err() != nil {
			return err
		}
		p.log.Debug("config fetch attempt failed",
			zap.String("service", string(id)),
			zap.Int("attempt", attempt),
			zap.Error(err))
		return retry.RetryableError(err)
	})
	return doc, err
}

// fallback keeps the last good config, or the defaults, and marks the entry
// failed so the next Refresh tries again.
func (p *Provider) fallback(def *services.Definition, cause error) result {
	p.mu.RLock()
	prev := p.entries[def.ID]
	p.mu.RUnlock()

	cfg := def.Defaults()
	defaulted := true
	if prev != nil && !prev.defaulted {
		cfg = prev.cfg.Clone()
		defaulted = false
	}

	p.log.Warn("config unavailable, using fallback",
		zap.String("service", string(def.ID)),
		zap.Bool("defaults", defaulted),
		zap.Error(cause))
	p.store(def.ID, &entry{cfg: cfg, state: Failed, defaulted: defaulted, warning: cause.Error()})
	return result{cfg: cfg, err: cause}
}

func (p *Provider) store(id services.ID, e *entry) {
	e.fetchedAt = p.now()
	p.mu.Lock()
	p.entries[id] = e
	p.mu.Unlock()
}

// Decode parses a stored document and validates the result. Each top-level
// section present in the document replaces the default section whole, so a
// document can drop a rate, fee or region; absent sections keep the defaults.
func Decode(def *services.Definition, doc []byte) (pricing.Config, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(doc, &sections); err != nil {
		return pricing.Config{}, apperrors.Config(fmt.Sprintf("decode %s config", def.ID), err)
	}

	var cfg pricing.Config
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return pricing.Config{}, apperrors.Config(fmt.Sprintf("decode %s config", def.ID), err)
	}
	fillMissing(&cfg, def.Defaults(), sections)

	cfg.Version = Fingerprint(doc)
	if err := cfg.Validate(); err != nil {
		return pricing.Config{}, apperrors.Config(fmt.Sprintf("invalid %s config", def.ID), err)
	}
	return cfg, nil
}

func fillMissing(cfg *pricing.Config, defaults pricing.Config, present map[string]json.RawMessage) {
	missing := func(key string) bool {
		_, ok := present[key]
		return !ok
	}
	if missing("rates") {
		cfg.Rates = defaults.Rates
	}
	if missing("blocks") {
		cfg.Blocks = defaults.Blocks
	}
	if missing("frequencies") {
		cfg.Frequencies = defaults.Frequencies
	}
	if missing("allowedFrequencies") {
		cfg.AllowedFrequencies = defaults.AllowedFrequencies
	}
	if missing("defaultFrequency") {
		cfg.DefaultFrequency = defaults.DefaultFrequency
	}
	if missing("install") {
		cfg.Install = defaults.Install
	}
	if missing("tiers") {
		cfg.Tiers = defaults.Tiers
	}
	if missing("regions") {
		cfg.Regions = defaults.Regions
	}
	if missing("defaultRegion") {
		cfg.DefaultRegion = defaults.DefaultRegion
	}
	if missing("fees") {
		cfg.Fees = defaults.Fees
	}
	if missing("contract") {
		cfg.Contract = defaults.Contract
	}
}

// Fingerprint is the version of a document.
func Fingerprint(doc []byte) string {
	sum := sha256.Sum256(doc)
	return hex.EncodeToString(sum[:6])
}

// DefaultDocument renders the compiled-in config of a service as a document.
func DefaultDocument(def *services.Definition) ([]byte, error) {
	cfg := def.Defaults()
	cfg.Version = ""
	return json.MarshalIndent(cfg, "", "  ")
}
