package cmd

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Simplici0/sanquote/internal/services"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("quotectl %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestServicesListsCatalog(t *testing.T) {
	out := run(t, "services")
	for _, def := range services.All() {
		if !strings.Contains(out, string(def.ID)) {
			t.Fatalf("expected %s in output:\n%s", def.ID, out)
		}
	}
}

func TestComputeJSON(t *testing.T) {
	out := run(t, "compute", "floor_scrub", "--qty", "fixtures=5", "--frequency", "monthly", "--json")

	var got services.Outputs
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode outputs: %v\n%s", err, out)
	}
	if math.Abs(got.PerVisit-175) > 1e-9 || !got.MinimumApplied {
		t.Fatalf("unexpected outputs: %+v", got)
	}
	if math.Abs(got.ContractTotal-2100) > 1e-9 {
		t.Fatalf("contract = %v, want 2100", got.ContractTotal)
	}
}

func TestComputeText(t *testing.T) {
	out := run(t, "compute", "carpet", "--qty", "area=1300")
	for _, want := range []string{"Carpet Cleaning", "per visit", "$500.00", "$2,000.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestComputeRejectsBadInput(t *testing.T) {
	for _, args := range [][]string{
		{"compute", "pressure_wash"},
		{"compute", "carpet", "--qty", "area=lots"},
	} {
		root := NewRootCmd()
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(args)
		if err := root.Execute(); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestMigrateSeedAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.db")

	if out := run(t, "--db", path, "migrate"); !strings.Contains(out, "version 2") {
		t.Fatalf("unexpected migrate output: %s", out)
	}
	if out := run(t, "--db", path, "seed"); !strings.Contains(out, "inserted 10") {
		t.Fatalf("unexpected seed output: %s", out)
	}
	if out := run(t, "--db", path, "seed"); !strings.Contains(out, "inserted 0, updated 0") {
		t.Fatalf("seed should be idempotent: %s", out)
	}

	out := run(t, "--db", path, "config", "show", "carpet")
	if !strings.Contains(out, `"version"`) || strings.Contains(out, "warning") {
		t.Fatalf("expected stored config with version:\n%s", out)
	}

	out = run(t, "--db", path, "compute", "carpet", "--qty", "area=1300", "--stored", "--json")
	var got services.Outputs
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode outputs: %v\n%s", err, out)
	}
	if math.Abs(got.PerVisit-500) > 1e-9 {
		t.Fatalf("perVisit = %v, want 500", got.PerVisit)
	}
}

func TestConfigShowDefaults(t *testing.T) {
	out := run(t, "config", "show", "restroom", "--default")
	if strings.Contains(out, `"version"`) {
		t.Fatalf("default document should carry no version:\n%s", out)
	}
	if !strings.Contains(out, `"airFresheners"`) {
		t.Fatalf("expected restroom rates:\n%s", out)
	}
}
