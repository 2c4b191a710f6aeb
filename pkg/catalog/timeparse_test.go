package catalog

import (
	"reflect"
	"testing"
)

func TestParseTimeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TimeSlot
	}{
		{
			name:  "single day",
			input: "Fr 09:00AM - 11:50AM",
			want:  []TimeSlot{{Weekday: 5, StartMin: 540, EndMin: 710}},
		},
		{
			name:  "several days share the time range",
			input: "MoWeFr 10:00AM - 11:00AM",
			want: []TimeSlot{
				{Weekday: 1, StartMin: 600, EndMin: 660},
				{Weekday: 3, StartMin: 600, EndMin: 660},
				{Weekday: 5, StartMin: 600, EndMin: 660},
			},
		},
		{
			name:  "date range before the weekday",
			input: "01-SEP-2025 - 05-SEP-2025Tu 09:00AM - 09:50AM",
			want:  []TimeSlot{{Weekday: 2, StartMin: 540, EndMin: 590}},
		},
		{
			name:  "afternoon",
			input: "TuTh 03:00PM - 04:20PM",
			want: []TimeSlot{
				{Weekday: 2, StartMin: 900, EndMin: 980},
				{Weekday: 4, StartMin: 900, EndMin: 980},
			},
		},
		{
			name:  "noon and single digit hour",
			input: "Sa 12:00PM - 1:30PM",
			want:  []TimeSlot{{Weekday: 6, StartMin: 720, EndMin: 810}},
		},
		{
			name:  "repeated weekday kept once",
			input: "MoWeMo 10:00AM - 11:00AM",
			want: []TimeSlot{
				{Weekday: 1, StartMin: 600, EndMin: 660},
				{Weekday: 3, StartMin: 600, EndMin: 660},
			},
		},
		{
			name:  "midnight",
			input: "Su 12:00AM - 01:00AM",
			want:  []TimeSlot{{Weekday: 7, StartMin: 0, EndMin: 60}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimeString(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTimeString(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			for _, slot := range got {
				if !slot.Valid() {
					t.Errorf("expected valid slot, got %+v", slot)
				}
			}
		})
	}
}

func TestParseTimeString_Unparseable(t *testing.T) {
	inputs := []string{
		"",
		"TBA",
		"09:00AM - 09:50AM",            // no weekday
		"Mo 09:00AM",                   // one time
		"Mo 09:00AM - 09:50AM 10:00AM", // three times
		"Mo 13:00PM - 14:00PM",         // not a 12-hour clock
		"We 10:75AM - 11:00AM",         // bad minute
		"Th 10:00 - 11:00",             // no meridiem
		"Mo 02:00PM - 01:00PM",         // ends before it starts
		"Tu 10:00AM - 10:00AM",         // zero length
	}

	for _, in := range inputs {
		if got := ParseTimeString(in); len(got) != 0 {
			t.Errorf("ParseTimeString(%q) = %+v, expected no slots", in, got)
		}
	}
}

func TestClock(t *testing.T) {
	if got := Clock(545); got != "09:05" {
		t.Errorf("expected 09:05, got %s", got)
	}
	if got := Clock(0); got != "00:00" {
		t.Errorf("expected 00:00, got %s", got)
	}
}
