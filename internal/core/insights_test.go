package core

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestGenerateInsights_TopCountries(t *testing.T) {
	tbl := Clean(mustParse(t, "views,country\n10,US\n5,US\n20,FR\n"))
	in := GenerateInsights(tbl)

	want := Tally{{Key: "FR", Value: 20}, {Key: "US", Value: 15}}
	if !reflect.DeepEqual(in.TopCountries, want) {
		t.Errorf("TopCountries = %v, want %v", in.TopCountries, want)
	}
	if in.TotalViews == nil || *in.TotalViews != 35 {
		t.Errorf("TotalViews = %v, want 35", in.TotalViews)
	}
	if in.AverageViews == nil || *in.AverageViews != 35.0/3 {
		t.Errorf("AverageViews = %v, want %v", in.AverageViews, 35.0/3)
	}
}

func TestGenerateInsights_TopCountriesLimit(t *testing.T) {
	data := "views,country\n"
	for _, c := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"} {
		data += "1," + c + "\n"
	}
	in := GenerateInsights(Clean(mustParse(t, data)))

	if len(in.TopCountries) != TopCountriesLimit {
		t.Fatalf("len(TopCountries) = %d, want %d", len(in.TopCountries), TopCountriesLimit)
	}
	// Ties keep first-encounter order.
	if got := in.TopCountries.Keys()[0]; got != "A" {
		t.Errorf("TopCountries[0] = %q, want A", got)
	}
}

func TestGenerateInsights_KeysFollowColumns(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		present []string
		absent  []string
	}{
		{
			name:    "views only",
			data:    "views\n1\n",
			present: []string{"total_views", "average_views"},
			absent:  []string{"total_watch_time", "top_countries", "gender_distribution"},
		},
		{
			name:    "no gender",
			data:    "views,watch_time,country,age_group,device_type\n1,2,US,18-24,mobile\n",
			present: []string{"total_views", "total_watch_time", "average_watch_time", "top_countries", "age_distribution", "device_breakdown"},
			absent:  []string{"gender_distribution"},
		},
		{
			name:    "country without views",
			data:    "country,gender\nUS,F\n",
			present: []string{"gender_distribution"},
			absent:  []string{"top_countries", "total_views"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(GenerateInsights(Clean(mustParse(t, tt.data))))
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			var got map[string]any
			if err := json.Unmarshal(b, &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			for _, k := range tt.present {
				if _, ok := got[k]; !ok {
					t.Errorf("key %q missing from %s", k, b)
				}
			}
			for _, k := range tt.absent {
				if _, ok := got[k]; ok {
					t.Errorf("key %q present in %s", k, b)
				}
			}
		})
	}
}

func TestInsights_MarshalJSONOrder(t *testing.T) {
	tbl := Clean(mustParse(t, "device_type\ntablet\nmobile\nmobile\ndesktop\n"))
	b, err := json.Marshal(GenerateInsights(tbl))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"device_breakdown":{"mobile":2,"tablet":1,"desktop":1}}`
	if string(b) != want {
		t.Errorf("Marshal() = %s, want %s", b, want)
	}
}

func TestGenerateInsights_EmptyTable(t *testing.T) {
	tbl := &Table{Columns: []*Column{{Name: "views", Type: ColumnNumeric}}}
	in := GenerateInsights(tbl)

	if in.TotalViews == nil || *in.TotalViews != 0 {
		t.Errorf("TotalViews = %v, want 0", in.TotalViews)
	}
	if in.AverageViews == nil || *in.AverageViews != 0 {
		t.Errorf("AverageViews = %v, want 0", in.AverageViews)
	}
}
