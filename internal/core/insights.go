package core

import "encoding/json"

// TopCountriesLimit caps the number of countries in Insights.TopCountries.
const TopCountriesLimit = 10

// Insights holds aggregate metrics for a dataset.
// A metric is nil when the columns it is computed from are absent.
// A non-nil empty Tally means the column exists but has no values.
type Insights struct {
	TotalViews         *int64
	AverageViews       *float64
	TotalWatchTime     *float64
	AverageWatchTime   *float64
	TopCountries       Tally
	AgeDistribution    Tally
	DeviceBreakdown    Tally
	GenderDistribution Tally
}

// MarshalJSON encodes only the metrics that were computed.
func (in Insights) MarshalJSON() ([]byte, error) {
	type metrics struct {
		TotalViews         *int64   `json:"total_views,omitempty"`
		AverageViews       *float64 `json:"average_views,omitempty"`
		TotalWatchTime     *float64 `json:"total_watch_time,omitempty"`
		AverageWatchTime   *float64 `json:"average_watch_time,omitempty"`
		TopCountries       *Tally   `json:"top_countries,omitempty"`
		AgeDistribution    *Tally   `json:"age_distribution,omitempty"`
		DeviceBreakdown    *Tally   `json:"device_breakdown,omitempty"`
		GenderDistribution *Tally   `json:"gender_distribution,omitempty"`
	}
	return json.Marshal(metrics{
		TotalViews:         in.TotalViews,
		AverageViews:       in.AverageViews,
		TotalWatchTime:     in.TotalWatchTime,
		AverageWatchTime:   in.AverageWatchTime,
		TopCountries:       tallyRef(in.TopCountries),
		AgeDistribution:    tallyRef(in.AgeDistribution),
		DeviceBreakdown:    tallyRef(in.DeviceBreakdown),
		GenderDistribution: tallyRef(in.GenderDistribution),
	})
}

func tallyRef(t Tally) *Tally {
	if t == nil {
		return nil
	}
	return &t
}

// GenerateInsights computes every metric whose source columns exist in t.
// Nothing is cached; each call reflects the table's current content.
func GenerateInsights(t *Table) Insights {
	var in Insights

	if col := t.Column("views"); col != nil {
		sum, mean := sumMean(col)
		total := int64(sum)
		in.TotalViews = &total
		in.AverageViews = &mean
	}

	if col := t.Column("watch_time"); col != nil {
		sum, mean := sumMean(col)
		in.TotalWatchTime = &sum
		in.AverageWatchTime = &mean
	}

	if t.Has("country", "views") {
		countries := GroupSum(t.Column("country"), t.Column("views"))
		sortDescending(countries)
		if len(countries) > TopCountriesLimit {
			countries = countries[:TopCountriesLimit]
		}
		in.TopCountries = countries
	}

	if col := t.Column("age_group"); col != nil {
		in.AgeDistribution = ValueCounts(col)
	}
	if col := t.Column("device_type"); col != nil {
		in.DeviceBreakdown = ValueCounts(col)
	}
	if col := t.Column("gender"); col != nil {
		in.GenderDistribution = ValueCounts(col)
	}

	return in
}
