package utils

import "testing"

func TestParsePositiveAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    int
		numeric bool
	}{
		{"integer", "50", 50, true},
		{"integer with spaces", "  3 ", 3, true},
		{"decimal rounds", "49.6", 50, true},
		{"not a number", "abc", 0, false},
		{"empty", "", 0, false},
		{"mixed", "12kg", 0, false},
		{"zero", "0", 0, true},
		{"negative", "-5", 0, true},
		{"rounds below one", "0.2", 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, numeric := ParsePositiveAmount(tt.input)
			if numeric != tt.numeric {
				t.Errorf("numeric = %v, want %v", numeric, tt.numeric)
			}
			if got != tt.want {
				t.Errorf("value = %d, want %d", got, tt.want)
			}
		})
	}
}
