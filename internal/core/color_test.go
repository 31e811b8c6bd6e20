package core

import "testing"

func TestNearestColor(t *testing.T) {
	tests := []struct {
		hex      string
		expected Color
	}{
		{"#00FF00", ColorBrightGreen},
		{"#FF0000", ColorBrightRed},
		{"#FFFF00", ColorBrightYellow},
		{"#ff00ffff", ColorBrightMagenta},
		{"#ff4400ff", ColorOrange},
		{"#fff", ColorBrightWhite},
		{"#32CD32", ColorGreen},
		{"not-a-color", ColorDefault},
		{"", ColorDefault},
	}

	for _, tc := range tests {
		t.Run(tc.hex, func(t *testing.T) {
			if got := NearestColor(tc.hex); got != tc.expected {
				t.Errorf("NearestColor(%q) = %d, expected %d", tc.hex, got, tc.expected)
			}
		})
	}
}
