package services

import "github.com/Simplici0/sanquote/internal/pricing"

// Field names one numeric output of a quote.
type Field string

const (
	FieldPerVisit       Field = "perVisit"
	FieldFirstVisit     Field = "firstVisit"
	FieldMonthlyBase    Field = "monthlyBase"
	FieldMonthlyTrip    Field = "monthlyTrip"
	FieldMonthlyTotal   Field = "monthlyTotal"
	FieldInstallFee     Field = "installFee"
	FieldFirstPeriod    Field = "firstPeriod"
	FieldContractTotal  Field = "contractTotal"
	FieldAnnualTotal    Field = "annualTotal"
	FieldVisitsPerYear  Field = "visitsPerYear"
	FieldVisitsPerMonth Field = "visitsPerMonth"
)

// Fields lists every overridable output in display order.
var Fields = []Field{
	FieldPerVisit,
	FieldFirstVisit,
	FieldMonthlyBase,
	FieldMonthlyTrip,
	FieldMonthlyTotal,
	FieldInstallFee,
	FieldFirstPeriod,
	FieldContractTotal,
	FieldAnnualTotal,
	FieldVisitsPerYear,
	FieldVisitsPerMonth,
}

// ParseField validates a field name.
func ParseField(s string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// LineItem is one priced quantity of a quote.
type LineItem struct {
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	UnitRate       float64 `json:"unitRate"`
	Minimum        float64 `json:"minimum"`
	Raw            float64 `json:"raw"`
	Applied        float64 `json:"applied"`
	MinimumApplied bool    `json:"minimumApplied"`
}

// Outputs is a full quote computed from inputs and a config.
type Outputs struct {
	Service        ID                `json:"service"`
	Frequency      pricing.Frequency `json:"frequency"`
	Class          pricing.Class     `json:"class"`
	Region         pricing.Region    `json:"region"`
	Tier           pricing.Tier      `json:"tier"`
	ContractMonths int               `json:"contractMonths"`

	PerVisit       float64 `json:"perVisit"`
	FirstVisit     float64 `json:"firstVisit"`
	MonthlyBase    float64 `json:"monthlyBase"`
	MonthlyTrip    float64 `json:"monthlyTrip"`
	MonthlyTotal   float64 `json:"monthlyTotal"`
	InstallFee     float64 `json:"installFee"`
	FirstPeriod    float64 `json:"firstPeriod"`
	ContractTotal  float64 `json:"contractTotal"`
	AnnualTotal    float64 `json:"annualTotal"`
	VisitsPerYear  float64 `json:"visitsPerYear"`
	VisitsPerMonth float64 `json:"visitsPerMonth"`
	TotalVisits    float64 `json:"totalVisits"`

	MinimumApplied bool       `json:"minimumApplied"`
	Lines          []LineItem `json:"lines"`
}

// Value reads a numeric output by field.
func (o Outputs) Value(f Field) (float64, bool) {
	switch f {
	case FieldPerVisit:
		return o.PerVisit, true
	case FieldFirstVisit:
		return o.FirstVisit, true
	case FieldMonthlyBase:
		return o.MonthlyBase, true
	case FieldMonthlyTrip:
		return o.MonthlyTrip, true
	case FieldMonthlyTotal:
		return o.MonthlyTotal, true
	case FieldInstallFee:
		return o.InstallFee, true
	case FieldFirstPeriod:
		return o.FirstPeriod, true
	case FieldContractTotal:
		return o.ContractTotal, true
	case FieldAnnualTotal:
		return o.AnnualTotal, true
	case FieldVisitsPerYear:
		return o.VisitsPerYear, true
	case FieldVisitsPerMonth:
		return o.VisitsPerMonth, true
	}
	return 0, false
}

// Set writes a numeric output by field.
func (o *Outputs) Set(f Field, v float64) bool {
	switch f {
	case FieldPerVisit:
		o.PerVisit = v
	case FieldFirstVisit:
		o.FirstVisit = v
	case FieldMonthlyBase:
		o.MonthlyBase = v
	case FieldMonthlyTrip:
		o.MonthlyTrip = v
	case FieldMonthlyTotal:
		o.MonthlyTotal = v
	case FieldInstallFee:
		o.InstallFee = v
	case FieldFirstPeriod:
		o.FirstPeriod = v
	case FieldContractTotal:
		o.ContractTotal = v
	case FieldAnnualTotal:
		o.AnnualTotal = v
	case FieldVisitsPerYear:
		o.VisitsPerYear = v
	case FieldVisitsPerMonth:
		o.VisitsPerMonth = v
	default:
		return false
	}
	return true
}
