package date

import (
	"encoding/json"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2026-02-28", want: "2026-02-28"},
		{in: " 2026-12-01 ", want: "2026-12-01"},
		{in: "2026-02-30", wantErr: true},
		{in: "28/02/2026", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.in, d)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if d.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, d, tt.want)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "09:30", want: TimeOfDay{Hour: 9, Minute: 30}},
		{in: "23:59", want: TimeOfDay{Hour: 23, Minute: 59}},
		{in: "00:00", want: TimeOfDay{}},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTime(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTime(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTime(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAtStartOfDayWithoutTime(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	d := New(2026, time.May, 10)

	got := d.At(nil, loc)
	want := time.Date(2026, time.May, 10, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("At(nil) = %v, want %v", got, want)
	}

	tod := NewTime(18, 45)
	got = d.At(&tod, loc)
	want = time.Date(2026, time.May, 10, 18, 45, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("At(18:45) = %v, want %v", got, want)
	}
}

func TestOfUsesOwnLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	instant := time.Date(2026, time.May, 10, 20, 0, 0, 0, time.UTC) // 05:00 next day in UTC+9
	if got := Of(instant.In(loc)); !got.Equal(New(2026, time.May, 11)) {
		t.Fatalf("Of = %s, want 2026-05-11", got)
	}
}

func TestEncodingRoundTrip(t *testing.T) {
	type doc struct {
		Date Date       `yaml:"date" json:"date"`
		Time *TimeOfDay `yaml:"time,omitempty" json:"time,omitempty"`
	}
	tod := NewTime(7, 5)
	in := doc{Date: New(2026, time.January, 2), Time: &tod}

	y, err := yaml.Marshal(in)
	if err != nil {
		t.Fatalf("yaml marshal: %v", err)
	}
	var fromYAML doc
	if err := yaml.Unmarshal(y, &fromYAML); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}
	if !fromYAML.Date.Equal(in.Date) || *fromYAML.Time != tod {
		t.Errorf("yaml round trip = %+v", fromYAML)
	}

	j, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	if string(j) != `{"date":"2026-01-02","time":"07:05"}` {
		t.Errorf("json = %s", j)
	}
	var fromJSON doc
	if err := json.Unmarshal([]byte(`{"date":"2026-01-02","time":"25:00"}`), &fromJSON); err == nil {
		t.Error("expected error for out-of-range time")
	}
}
