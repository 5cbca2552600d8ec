package pricing

// Region is the location selector of a quote.
type Region string

const (
	Inside  Region = "inside"
	Outside Region = "outside"
)

// Rate is a unit rate with its minimum charge.
type Rate struct {
	UnitRate float64 `json:"unitRate"`
	Minimum  float64 `json:"minimum"`
}

// RateTable holds a line item's rate per frequency with a default.
type RateTable struct {
	Default     Rate               `json:"default"`
	ByFrequency map[Frequency]Rate `json:"byFrequency,omitempty"`
}

// For returns the rate for f, falling back to Default.
func (t RateTable) For(f Frequency) Rate {
	if r, ok := t.ByFrequency[f]; ok {
		return r
	}
	return t.Default
}

// RegionFees are the per-visit pass-through fees of a region.
type RegionFees struct {
	TripCharge float64 `json:"tripCharge"`
	Parking    float64 `json:"parking"`
}

// ContractTerms bound the contract length in months.
type ContractTerms struct {
	MinMonths     int `json:"minMonths"`
	MaxMonths     int `json:"maxMonths"`
	DefaultMonths int `json:"defaultMonths"`
}

// Clamp bounds months to the terms; zero or less means the default.
func (c ContractTerms) Clamp(months int) int {
	if months <= 0 {
		months = c.DefaultMonths
	}
	if c.MinMonths > 0 && months < c.MinMonths {
		months = c.MinMonths
	}
	if c.MaxMonths > 0 && months > c.MaxMonths {
		months = c.MaxMonths
	}
	if months < 1 {
		months = 1
	}
	return months
}

// Config is the pricing configuration of one service. It has the same shape
// whether it came from the store or from compiled-in defaults.
type Config struct {
	Version            string                      `json:"version,omitempty"`
	Rates              map[string]RateTable        `json:"rates"`
	Blocks             map[string]Block            `json:"blocks,omitempty"`
	Frequencies        map[Frequency]FrequencyMeta `json:"frequencies,omitempty"`
	AllowedFrequencies []Frequency                 `json:"allowedFrequencies"`
	DefaultFrequency   Frequency                   `json:"defaultFrequency"`
	Install            InstallMultipliers          `json:"install"`
	Tiers              TierMultipliers             `json:"tiers"`
	Regions            map[Region]RegionFees       `json:"regions"`
	DefaultRegion      Region                      `json:"defaultRegion"`
	Fees               map[string]float64          `json:"fees,omitempty"`
	Contract           ContractTerms               `json:"contract"`
}

// Rate looks up a line item's rate for f. Missing items price at zero.
func (c Config) Rate(item string, f Frequency) Rate {
	return c.Rates[item].For(f)
}

// Block looks up a block definition by line item.
func (c Config) Block(item string) Block {
	return c.Blocks[item]
}

// Fee returns a named flat fee or discount, zero when absent.
func (c Config) Fee(name string) float64 {
	return Sanitize(c.Fees[name])
}

// Region clamps r to a configured region and returns its fees.
func (c Config) Region(r Region) (Region, RegionFees) {
	if fees, ok := c.Regions[r]; ok {
		return r, fees
	}
	return c.DefaultRegion, c.Regions[c.DefaultRegion]
}

// Frequency clamps f to the allowed set of the config.
func (c Config) Frequency(f Frequency) Frequency {
	return ClampFrequency(f, c.AllowedFrequencies, c.DefaultFrequency)
}

// Clone returns a deep copy so callers can decode over it without touching the
// original.
func (c Config) Clone() Config {
	out := c
	if c.Rates != nil {
		out.Rates = make(map[string]RateTable, len(c.Rates))
		for k, t := range c.Rates {
			nt := RateTable{Default: t.Default}
			if t.ByFrequency != nil {
				nt.ByFrequency = make(map[Frequency]Rate, len(t.ByFrequency))
				for f, r := range t.ByFrequency {
					nt.ByFrequency[f] = r
				}
			}
			out.Rates[k] = nt
		}
	}
	if c.Blocks != nil {
		out.Blocks = make(map[string]Block, len(c.Blocks))
		for k, b := range c.Blocks {
			out.Blocks[k] = b
		}
	}
	if c.Frequencies != nil {
		out.Frequencies = make(map[Frequency]FrequencyMeta, len(c.Frequencies))
		for k, m := range c.Frequencies {
			out.Frequencies[k] = FrequencyMeta{
				MonthlyMultiplier: copyFloat(m.MonthlyMultiplier),
				CycleMonths:       copyFloat(m.CycleMonths),
			}
		}
	}
	if c.AllowedFrequencies != nil {
		out.AllowedFrequencies = append([]Frequency(nil), c.AllowedFrequencies...)
	}
	if c.Regions != nil {
		out.Regions = make(map[Region]RegionFees, len(c.Regions))
		for k, r := range c.Regions {
			out.Regions[k] = r
		}
	}
	if c.Fees != nil {
		out.Fees = make(map[string]float64, len(c.Fees))
		for k, v := range c.Fees {
			out.Fees[k] = v
		}
	}
	return out
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
