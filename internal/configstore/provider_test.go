package configstore

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Simplici0/sanquote/internal/db"
	apperrors "github.com/Simplici0/sanquote/internal/errors"
	"github.com/Simplici0/sanquote/internal/migrations"
	"github.com/Simplici0/sanquote/internal/services"
)

type flakySource struct {
	calls    atomic.Int32
	failures int32
	doc      []byte
	gate     chan struct{}
}

func (f *flakySource) Fetch(ctx context.Context, id services.ID) ([]byte, error) {
	n := f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if n <= f.failures {
		return nil, errors.New("connection reset")
	}
	if f.doc == nil {
		return nil, ErrNotFound
	}
	return f.doc, nil
}

const carpetDoc = `{"blocks":{"area":{"unit":500,"firstRate":300,"additionalRate":150}}}`

func newProvider(src Source, retries uint64) *Provider {
	return NewProvider(src, Options{Retries: retries, Backoff: time.Millisecond})
}

func TestProvider_MissingDocumentUsesDefaults(t *testing.T) {
	p := newProvider(NewStaticSource(nil), 0)

	cfg, err := p.Load(context.Background(), services.Carpet)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Version != "default" {
		t.Fatalf("expected defaults, got version %q", cfg.Version)
	}
	st := p.Status(services.Carpet)
	if st.State != Resolved || !st.Defaulted {
		t.Fatalf("unexpected status: %+v", st)
	}
}

func TestProvider_DecodesOverDefaults(t *testing.T) {
	src := NewStaticSource(map[services.ID][]byte{services.Carpet: []byte(carpetDoc)})
	p := newProvider(src, 0)

	cfg, err := p.Load(context.Background(), services.Carpet)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Block("area").FirstRate != 300 {
		t.Fatalf("stored block not applied: %+v", cfg.Block("area"))
	}
	if cfg.Fee("visitMinimum") != 250 {
		t.Fatalf("default fee lost: %v", cfg.Fee("visitMinimum"))
	}
	if cfg.Version != Fingerprint([]byte(carpetDoc)) {
		t.Fatalf("version = %q", cfg.Version)
	}
}

func TestProvider_RetriesTransientFailures(t *testing.T) {
	src := &flakySource{failures: 2, doc: []byte(carpetDoc)}
	p := newProvider(src, 3)

	cfg, err := p.Load(context.Background(), services.Carpet)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := src.calls.Load(); got != 3 {
		t.Fatalf("expected 3 fetch attempts, got %d", got)
	}
	if cfg.Block("area").FirstRate != 300 {
		t.Fatalf("expected stored config")
	}
}

func TestProvider_FailureFallsBackAndRefreshRecovers(t *testing.T) {
	src := &flakySource{failures: 1, doc: []byte(carpetDoc)}
	p := newProvider(src, 0)

	cfg, err := p.Load(context.Background(), services.Carpet)
	if err == nil {
		t.Fatalf("expected a warning error")
	}
	if !apperrors.IsType(err, apperrors.TypeConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
	if cfg.Version != "default" {
		t.Fatalf("expected defaults on first failure, got %q", cfg.Version)
	}
	if st := p.Status(services.Carpet); st.State != Failed || st.Warning == "" {
		t.Fatalf("unexpected status: %+v", st)
	}

	// cached failure is reported without refetching
	if _, err := p.Load(context.Background(), services.Carpet); err == nil {
		t.Fatalf("expected cached warning")
	}
	if got := src.calls.Load(); got != 1 {
		t.Fatalf("expected no refetch, got %d calls", got)
	}

	cfg, err = p.Refresh(context.Background(), services.Carpet)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if cfg.Block("area").FirstRate != 300 || p.Status(services.Carpet).State != Resolved {
		t.Fatalf("refresh did not recover")
	}
}

func TestProvider_FailureKeepsLastGoodConfig(t *testing.T) {
	src := NewStaticSource(map[services.ID][]byte{services.Carpet: []byte(carpetDoc)})
	p := newProvider(src, 0)
	good, _ := p.Load(context.Background(), services.Carpet)

	src.Put(services.Carpet, []byte(`{"blocks":{"area":{"unit":0}}}`))
	cfg, err := p.Refresh(context.Background(), services.Carpet)
	if err == nil || !strings.Contains(err.Error(), "invalid carpet config") {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if cfg.Version != good.Version {
		t.Fatalf("expected last good config %q, got %q", good.Version, cfg.Version)
	}
}

func TestProvider_ConcurrentLoadsShareOneFetch(t *testing.T) {
	src := &flakySource{doc: []byte(carpetDoc), gate: make(chan struct{})}
	p := newProvider(src, 0)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.Load(context.Background(), services.Carpet); err != nil {
				t.Errorf("load: %v", err)
			}
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	if got := src.calls.Load(); got != 1 {
		t.Fatalf("expected 1 fetch, got %d", got)
	}
}

func TestProvider_TTLExpiry(t *testing.T) {
	src := &flakySource{doc: []byte(carpetDoc)}
	p := NewProvider(src, Options{TTL: time.Minute})
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	_, _ = p.Load(context.Background(), services.Carpet)
	now = now.Add(30 * time.Second)
	_, _ = p.Load(context.Background(), services.Carpet)
	if got := src.calls.Load(); got != 1 {
		t.Fatalf("expected cached config, got %d fetches", got)
	}

	now = now.Add(time.Minute)
	_, _ = p.Load(context.Background(), services.Carpet)
	if got := src.calls.Load(); got != 2 {
		t.Fatalf("expected refetch after TTL, got %d fetches", got)
	}
}

func TestProvider_UnknownService(t *testing.T) {
	p := newProvider(NewStaticSource(nil), 0)
	if _, err := p.Load(context.Background(), "pressure_wash"); !apperrors.IsType(err, apperrors.TypeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDecode_SectionsReplaceDefaults(t *testing.T) {
	def, _ := services.Lookup(services.FloorScrub)

	cfg, err := Decode(def, []byte(`{"fees":{},"regions":{"inside":{"tripCharge":5,"parking":0}}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := cfg.Fees["bundleDiscount"]; ok {
		t.Fatalf("expected bundleDiscount dropped, got %v", cfg.Fees)
	}
	if len(cfg.Regions) != 1 {
		t.Fatalf("expected only the stored region, got %v", cfg.Regions)
	}
	if cfg.Rate("fixtures", "monthly").Minimum != 175 {
		t.Fatalf("absent rates section should keep defaults")
	}

	out := def.Compute(services.Inputs{
		Quantities: map[string]float64{"fixtures": 5},
		Frequency:  "twice_monthly",
		Bundle:     true,
	}, cfg)
	if out.MonthlyBase != 350 {
		t.Fatalf("bundle without discount = %v, want 350", out.MonthlyBase)
	}
}

func TestDecode_RejectsUnknownKeys(t *testing.T) {
	def, _ := services.Lookup(services.Windows)
	if _, err := Decode(def, []byte(`{"ratez":{}}`)); err == nil {
		t.Fatalf("expected unknown key to fail")
	}
}

func TestDefaultDocument_RoundTripsToDefaults(t *testing.T) {
	for _, def := range services.All() {
		doc, err := DefaultDocument(def)
		if err != nil {
			t.Fatalf("%s: marshal: %v", def.ID, err)
		}
		cfg, err := Decode(def, doc)
		if err != nil {
			t.Fatalf("%s: decode: %v", def.ID, err)
		}
		in := services.Inputs{Quantities: map[string]float64{"fixtures": 7, "area": 1800, "pods": 3}}
		a := def.Compute(in, cfg)
		b := def.Compute(in, def.Defaults())
		if a.ContractTotal != b.ContractTotal {
			t.Fatalf("%s: stored defaults price differently: %v vs %v", def.ID, a.ContractTotal, b.ContractTotal)
		}
	}
}

func TestPublish_StoresAndRefreshes(t *testing.T) {
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()
	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	src := NewSQLSource(database)
	p := newProvider(src, 0)
	ctx := context.Background()

	if _, err := p.Publish(ctx, src, services.Carpet, []byte(`{"tiers":{"standard":1,"premium":0.5}}`)); err == nil {
		t.Fatalf("expected invalid document to be rejected")
	}
	docs, _ := src.List(ctx)
	if len(docs) != 0 {
		t.Fatalf("rejected document was stored")
	}

	cfg, err := p.Publish(ctx, src, services.Carpet, []byte(carpetDoc))
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if cfg.Block("area").FirstRate != 300 {
		t.Fatalf("published config not loaded")
	}

	docs, err = src.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 || docs[0].Version != cfg.Version {
		t.Fatalf("unexpected stored docs: %+v", docs)
	}
}

func TestSQLSource_NotFound(t *testing.T) {
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()
	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	if _, err := NewSQLSource(database).Fetch(context.Background(), services.Windows); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

