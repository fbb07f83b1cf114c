package models

import "testing"

func TestParsePourType(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want PourType
	}{
		{"center", "center", PourCenter},
		{"circle", "circle", PourCircle},
		{"ice", "ice", PourIce},
		{"other", "other", PourOther},
		{"legacy spiral coerces to circle", "spiral", PourCircle},
		{"empty coerces to circle", "", PourCircle},
		{"garbage coerces to circle", "sideways", PourCircle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePourType(tt.in); got != tt.want {
				t.Errorf("ParsePourType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPourTypeLabel(t *testing.T) {
	tests := []struct {
		p    PourType
		want string
	}{
		{PourCenter, "中心注水"},
		{PourCircle, "绕圈注水"},
		{PourIce, "冰块注水"},
		{PourOther, "其他方式"},
		{PourType("spiral"), "绕圈注水"},
	}
	for _, tt := range tests {
		if got := tt.p.Label(); got != tt.want {
			t.Errorf("%q.Label() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestParseValveStatus(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ValveStatus
	}{
		{"open", "open", ValveOpen},
		{"closed", "closed", ValveClosed},
		{"empty", "", ValveNone},
		{"halfopen coerces to empty", "halfopen", ValveNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseValveStatus(tt.in); got != tt.want {
				t.Errorf("ParseValveStatus(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
