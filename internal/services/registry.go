package services

import (
	"fmt"

	"github.com/Simplici0/sanquote/internal/pricing"
)

var all = []*Definition{
	restroom,
	floorScrub,
	windows,
	drainFoam,
	greaseTrap,
	microfiber,
	janitorial,
	carpet,
	electrostatic,
	saniPod,
}

func init() {
	for _, d := range all {
		if d.visits == nil {
			d.visits = visitTable(d.Defaults().AllowedFrequencies)
		}
	}
}

// visitTable is the default visit count of each allowed frequency.
func visitTable(allowed []pricing.Frequency) map[pricing.Frequency]float64 {
	out := make(map[pricing.Frequency]float64, len(allowed))
	for _, f := range allowed {
		out[f] = pricing.FallbackMonthlyVisits[f]
	}
	return out
}

// All returns every service calculator in display order.
func All() []*Definition {
	out := make([]*Definition, len(all))
	copy(out, all)
	return out
}

// Lookup finds a service calculator by ID.
func Lookup(id ID) (*Definition, bool) {
	for _, d := range all {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}

// Compute is the pure computeQuote(inputs, config) entry point.
func Compute(id ID, in Inputs, cfg pricing.Config) (Outputs, error) {
	d, ok := Lookup(id)
	if !ok {
		return Outputs{}, fmt.Errorf("unknown service %q", id)
	}
	return d.Compute(in, cfg), nil
}

// Defaults returns the compiled-in config of a service.
func Defaults(id ID) (pricing.Config, bool) {
	d, ok := Lookup(id)
	if !ok {
		return pricing.Config{}, false
	}
	return d.Defaults(), true
}
