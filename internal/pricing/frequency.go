package pricing

import "math"

// Frequency selects how often a service is performed.
type Frequency string

const (
	OneTime      Frequency = "one_time"
	Weekly       Frequency = "weekly"
	Biweekly     Frequency = "biweekly"
	TwiceMonthly Frequency = "twice_monthly"
	Monthly      Frequency = "monthly"
	Bimonthly    Frequency = "bimonthly"
	Quarterly    Frequency = "quarterly"
	Biannual     Frequency = "biannual"
	Annual       Frequency = "annual"
)

// Class separates frequencies billed per discrete visit from those billed as a
// recurring monthly charge.
type Class string

const (
	VisitBased    Class = "visit"
	CalendarBased Class = "calendar"
)

// FallbackMonthlyVisits is used when a config carries no metadata for a frequency.
var FallbackMonthlyVisits = map[Frequency]float64{
	OneTime:      0,
	Weekly:       4.33,
	Biweekly:     2.165,
	TwiceMonthly: 2,
	Monthly:      1,
	Bimonthly:    0.5,
	Quarterly:    1.0 / 3.0,
	Biannual:     1.0 / 6.0,
	Annual:       1.0 / 12.0,
}

// Class reports whether f is billed per visit or per calendar month.
func (f Frequency) Class() Class {
	switch f {
	case OneTime, Bimonthly, Quarterly, Biannual, Annual:
		return VisitBased
	default:
		return CalendarBased
	}
}

// Known reports whether f is one of the supported frequencies.
func (f Frequency) Known() bool {
	_, ok := FallbackMonthlyVisits[f]
	return ok
}

// FrequencyMeta is the per-frequency metadata an admin may set in a config.
// MonthlyMultiplier wins over CycleMonths when both are present.
type FrequencyMeta struct {
	MonthlyMultiplier *float64 `json:"monthlyMultiplier,omitempty"`
	CycleMonths       *float64 `json:"cycleMonths,omitempty"`
}

// Visits is the resolved visit cadence for a frequency.
type Visits struct {
	Frequency Frequency
	Class     Class
	Monthly   float64
	PerYear   float64
}

// ClampFrequency returns f when it is in allowed, otherwise def. An empty
// allowed list accepts every known frequency.
func ClampFrequency(f Frequency, allowed []Frequency, def Frequency) Frequency {
	if !f.Known() {
		return def
	}
	if len(allowed) == 0 {
		return f
	}
	for _, a := range allowed {
		if a == f {
			return f
		}
	}
	return def
}

// ResolveFrequency maps f to monthly and annual visit counts. Config metadata is
// consulted first (direct multiplier, then cycle length), then fallback, then
// FallbackMonthlyVisits. Unknown keys resolve as Monthly.
func ResolveFrequency(f Frequency, meta map[Frequency]FrequencyMeta, fallback map[Frequency]float64) Visits {
	if !f.Known() {
		f = Monthly
	}

	monthly, ok := fromMeta(meta[f])
	if !ok {
		if v, found := fallback[f]; found && finite(v) && v >= 0 {
			monthly = v
		} else {
			monthly = FallbackMonthlyVisits[f]
		}
	}

	perYear := monthly * 12
	if f == OneTime {
		monthly = 0
		perYear = 1
	}

	return Visits{
		Frequency: f,
		Class:     f.Class(),
		Monthly:   monthly,
		PerYear:   perYear,
	}
}

func fromMeta(m FrequencyMeta) (float64, bool) {
	if m.MonthlyMultiplier != nil {
		v := *m.MonthlyMultiplier
		if finite(v) && v >= 0 {
			return v, true
		}
	}
	if m.CycleMonths != nil {
		c := *m.CycleMonths
		if finite(c) && c > 0 {
			return 1 / c, true
		}
	}
	return 0, false
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
