package models

import "testing"

func TestValidAspectRatio(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"square", "1:1", true},
		{"landscape", "16:9", true},
		{"portrait", "9:16", true},
		{"classic landscape", "4:3", true},
		{"classic portrait", "3:4", true},
		{"empty", "", false},
		{"reversed separator", "16x9", false},
		{"unsupported", "21:9", false},
		{"whitespace", " 16:9", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidAspectRatio(tt.in); got != tt.want {
				t.Errorf("ValidAspectRatio(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
