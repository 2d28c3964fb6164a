package models

import (
	"testing"
	"time"
)

func TestDateScan(t *testing.T) {
	want := Date{Year: 2024, Month: time.March, Day: 1}

	tests := []struct {
		name string
		src  any
	}{
		{"time value", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"plain text", "2024-03-01"},
		{"bytes", []byte("2024-03-01")},
		{"sqlite timestamp text", "2024-03-01T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := d.Scan(tt.src); err != nil {
				t.Fatalf("Scan(%v) error = %v", tt.src, err)
			}
			if d != want {
				t.Errorf("Scan(%v) = %v, want %v", tt.src, d, want)
			}
		})
	}
}

func TestDateScanRejectsUnknown(t *testing.T) {
	var d Date
	if err := d.Scan(42); err == nil {
		t.Fatal("Scan(42) should fail")
	}
	if err := d.Scan("03/01/2024"); err == nil {
		t.Fatal("Scan of a non ISO date should fail")
	}
}

func TestTimeOfDayScan(t *testing.T) {
	want := TimeOfDay{Hour: 14, Minute: 30}

	tests := []struct {
		name string
		src  any
	}{
		{"hh:mm", "14:30"},
		{"hh:mm:ss bytes", []byte("14:30:00")},
		{"pgx microseconds", "14:30:00.000000"},
		{"time value", time.Date(0, 1, 1, 14, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TimeOfDay
			if err := got.Scan(tt.src); err != nil {
				t.Fatalf("Scan(%v) error = %v", tt.src, err)
			}
			if got != want {
				t.Errorf("Scan(%v) = %v, want %v", tt.src, got, want)
			}
		})
	}
}

func TestCivilValues(t *testing.T) {
	d := Date{Year: 2023, Month: time.December, Day: 5}
	v, err := d.Value()
	if err != nil || v != "2023-12-05" {
		t.Errorf("Date.Value() = %v, %v", v, err)
	}

	tod := TimeOfDay{Hour: 9, Minute: 5}
	v, err = tod.Value()
	if err != nil || v != "09:05:00" {
		t.Errorf("TimeOfDay.Value() = %v, %v", v, err)
	}
	if tod.String() != "09:05" {
		t.Errorf("TimeOfDay.String() = %q", tod.String())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Error("ParseDate should reject month 13")
	}
	if _, err := ParseTimeOfDay("24:00"); err == nil {
		t.Error("ParseTimeOfDay should reject 24:00")
	}
	if _, err := ParseTimeOfDay("2:30pm"); err == nil {
		t.Error("ParseTimeOfDay should reject 12-hour clock")
	}
}
