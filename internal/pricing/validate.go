package pricing

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/multierr"
)

var isFinite = validation.By(func(value interface{}) error {
	if f, ok := value.(float64); ok && !finite(f) {
		return errors.New("must be a finite number")
	}
	return nil
})

// Validate implements validation.Validatable.
func (r Rate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UnitRate, isFinite, validation.Min(0.0)),
		validation.Field(&r.Minimum, isFinite, validation.Min(0.0)),
	)
}

// Validate implements validation.Validatable.
func (b Block) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Unit, isFinite, validation.Min(0.0).Exclusive()),
		validation.Field(&b.FirstRate, isFinite, validation.Min(0.0)),
		validation.Field(&b.AdditionalRate, isFinite, validation.Min(0.0)),
	)
}

// Validate implements validation.Validatable.
func (m InstallMultipliers) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Elevated, isFinite, validation.Min(0.0).Exclusive()),
		validation.Field(&m.Standard, isFinite, validation.Min(0.0).Exclusive()),
	)
}

// Validate implements validation.Validatable.
func (m TierMultipliers) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Standard, isFinite, validation.Min(0.0).Exclusive()),
		validation.Field(&m.Premium, isFinite, validation.Min(m.Standard)),
	)
}

// Validate implements validation.Validatable.
func (c ContractTerms) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MinMonths, validation.Min(1)),
		validation.Field(&c.MaxMonths, validation.Min(c.MinMonths)),
		validation.Field(&c.DefaultMonths, validation.Min(c.MinMonths), validation.Max(c.MaxMonths)),
	)
}

// Validate checks a whole config and reports every problem it finds.
func (c Config) Validate() error {
	var err error

	if e := c.Install.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("install: %w", e))
	}
	if e := c.Tiers.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("tiers: %w", e))
	}
	if e := c.Contract.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("contract: %w", e))
	}

	if len(c.AllowedFrequencies) == 0 {
		err = multierr.Append(err, errors.New("allowedFrequencies: cannot be blank"))
	}
	allowed := false
	for _, f := range c.AllowedFrequencies {
		if !f.Known() {
			err = multierr.Append(err, fmt.Errorf("allowedFrequencies: unknown frequency %q", f))
		}
		if f == c.DefaultFrequency {
			allowed = true
		}
	}
	if !allowed {
		err = multierr.Append(err, fmt.Errorf("defaultFrequency: %q is not an allowed frequency", c.DefaultFrequency))
	}

	if _, ok := c.Regions[c.DefaultRegion]; !ok {
		err = multierr.Append(err, fmt.Errorf("defaultRegion: %q has no fees", c.DefaultRegion))
	}

	for _, name := range sortedKeys(c.Rates) {
		t := c.Rates[name]
		if e := t.Default.Validate(); e != nil {
			err = multierr.Append(err, fmt.Errorf("rates.%s.default: %w", name, e))
		}
		for _, f := range sortedKeys(t.ByFrequency) {
			r := t.ByFrequency[f]
			if !f.Known() {
				err = multierr.Append(err, fmt.Errorf("rates.%s.byFrequency: unknown frequency %q", name, f))
				continue
			}
			if e := r.Validate(); e != nil {
				err = multierr.Append(err, fmt.Errorf("rates.%s.%s: %w", name, f, e))
			}
		}
	}
	for _, name := range sortedKeys(c.Blocks) {
		if e := c.Blocks[name].Validate(); e != nil {
			err = multierr.Append(err, fmt.Errorf("blocks.%s: %w", name, e))
		}
	}
	for _, f := range sortedKeys(c.Frequencies) {
		m := c.Frequencies[f]
		if !f.Known() {
			err = multierr.Append(err, fmt.Errorf("frequencies: unknown frequency %q", f))
			continue
		}
		if m.MonthlyMultiplier != nil && (!finite(*m.MonthlyMultiplier) || *m.MonthlyMultiplier < 0) {
			err = multierr.Append(err, fmt.Errorf("frequencies.%s.monthlyMultiplier: must be no less than 0", f))
		}
		if m.CycleMonths != nil && (!finite(*m.CycleMonths) || *m.CycleMonths <= 0) {
			err = multierr.Append(err, fmt.Errorf("frequencies.%s.cycleMonths: must be greater than 0", f))
		}
	}
	for _, name := range sortedKeys(c.Fees) {
		if v := c.Fees[name]; !finite(v) || v < 0 {
			err = multierr.Append(err, fmt.Errorf("fees.%s: must be no less than 0", name))
		}
	}
	for _, r := range sortedKeys(c.Regions) {
		fees := c.Regions[r]
		if !finite(fees.TripCharge) || fees.TripCharge < 0 || !finite(fees.Parking) || fees.Parking < 0 {
			err = multierr.Append(err, fmt.Errorf("regions.%s: fees must be no less than 0", r))
		}
	}

	return err
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
