package services

import (
	"math"

	"github.com/spf13/cast"

	"github.com/Simplici0/sanquote/internal/pricing"
)

// Inputs is what an operator enters for one service instance.
type Inputs struct {
	Quantities     map[string]float64 `json:"quantities"`
	Frequency      pricing.Frequency  `json:"frequency"`
	Install        bool               `json:"install"`
	Dirty          bool               `json:"dirty"`
	TripCharge     bool               `json:"tripCharge"`
	Parking        bool               `json:"parking"`
	Bundle         bool               `json:"bundle"`
	ExactArea      bool               `json:"exactArea"`
	Region         pricing.Region     `json:"region"`
	Tier           pricing.Tier       `json:"tier"`
	ContractMonths int                `json:"contractMonths"`
	Notes          string             `json:"notes,omitempty"`
}

// Quantity returns a sanitized quantity, zero when missing.
func (in Inputs) Quantity(name string) float64 {
	return pricing.Sanitize(in.Quantities[name])
}

// Patch is a partial update of Inputs. Nil fields are left alone and
// Quantities merge key by key.
type Patch struct {
	Quantities     map[string]float64 `json:"quantities,omitempty"`
	Frequency      *pricing.Frequency `json:"frequency,omitempty"`
	Install        *bool              `json:"install,omitempty"`
	Dirty          *bool              `json:"dirty,omitempty"`
	TripCharge     *bool              `json:"tripCharge,omitempty"`
	Parking        *bool              `json:"parking,omitempty"`
	Bundle         *bool              `json:"bundle,omitempty"`
	ExactArea      *bool              `json:"exactArea,omitempty"`
	Region         *pricing.Region    `json:"region,omitempty"`
	Tier           *pricing.Tier      `json:"tier,omitempty"`
	ContractMonths *int               `json:"contractMonths,omitempty"`
	Notes          *string            `json:"notes,omitempty"`
}

// TouchesPricing reports whether the patch changes anything besides notes.
func (p Patch) TouchesPricing() bool {
	return len(p.Quantities) > 0 ||
		p.Frequency != nil ||
		p.Install != nil ||
		p.Dirty != nil ||
		p.TripCharge != nil ||
		p.Parking != nil ||
		p.Bundle != nil ||
		p.ExactArea != nil ||
		p.Region != nil ||
		p.Tier != nil ||
		p.ContractMonths != nil
}

// Apply returns a copy of in with p merged over it.
func (in Inputs) Apply(p Patch) Inputs {
	out := in
	out.Quantities = make(map[string]float64, len(in.Quantities)+len(p.Quantities))
	for k, v := range in.Quantities {
		out.Quantities[k] = v
	}
	for k, v := range p.Quantities {
		out.Quantities[k] = pricing.Sanitize(v)
	}

	if p.Frequency != nil {
		out.Frequency = *p.Frequency
	}
	setBool(&out.Install, p.Install)
	setBool(&out.Dirty, p.Dirty)
	setBool(&out.TripCharge, p.TripCharge)
	setBool(&out.Parking, p.Parking)
	setBool(&out.Bundle, p.Bundle)
	setBool(&out.ExactArea, p.ExactArea)
	if p.Region != nil {
		out.Region = *p.Region
	}
	if p.Tier != nil {
		out.Tier = *p.Tier
	}
	if p.ContractMonths != nil {
		out.ContractMonths = *p.ContractMonths
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	return out
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// PatchFromMap builds a patch from loosely typed form values. Anything that
// does not parse as a number becomes zero; nothing here returns an error.
func PatchFromMap(m map[string]any) Patch {
	var p Patch

	if raw, ok := m["quantities"]; ok {
		qs, err := cast.ToStringMapE(raw)
		if err == nil {
			p.Quantities = make(map[string]float64, len(qs))
			for k, v := range qs {
				p.Quantities[k] = toNumber(v)
			}
		}
	}
	if v, ok := m["frequency"]; ok {
		f := pricing.Frequency(cast.ToString(v))
		p.Frequency = &f
	}
	p.Install = boolField(m, "install")
	p.Dirty = boolField(m, "dirty")
	p.TripCharge = boolField(m, "tripCharge")
	p.Parking = boolField(m, "parking")
	p.Bundle = boolField(m, "bundle")
	p.ExactArea = boolField(m, "exactArea")
	if v, ok := m["region"]; ok {
		r := pricing.Region(cast.ToString(v))
		p.Region = &r
	}
	if v, ok := m["tier"]; ok {
		t := pricing.Tier(cast.ToString(v))
		p.Tier = &t
	}
	if v, ok := m["contractMonths"]; ok {
		months := toMonths(v)
		p.ContractMonths = &months
	}
	if v, ok := m["notes"]; ok {
		notes := cast.ToString(v)
		p.Notes = &notes
	}
	return p
}

func toNumber(v any) float64 {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return pricing.Sanitize(f)
}

// maxMonths caps a parsed contract length before it becomes an int; the
// config clamp brings it down to the service maximum.
const maxMonths = 1200

func toMonths(v any) int {
	return int(math.Min(toNumber(v), maxMonths))
}

func boolField(m map[string]any, key string) *bool {
	v, ok := m[key]
	if !ok {
		return nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		b = false
	}
	return &b
}
