package util

import "testing"

func TestToValue(t *testing.T) {
	tests := []struct {
		name    string
		include bool
		want    int
	}{
		{
			name:    "True maps to one",
			include: true,
			want:    1,
		},
		{
			name:    "False maps to zero",
			include: false,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToValue(tt.include); got != tt.want {
				t.Errorf("ToValue(%v) = %d, want %d", tt.include, got, tt.want)
			}
		})
	}
}
