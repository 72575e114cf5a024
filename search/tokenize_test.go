package search

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple", "missing items", []string{"missing", "items"}},
		{"mixed_case_and_punctuation", "Items-at Parap@raumu!!", []string{"items", "at", "parap", "raumu"}},
		{"digits_kept", "error 404 on PAC2", []string{"error", "404", "on", "pac2"}},
		{"empty", "", []string{}},
		{"only_delimiters", "--- !!! ---", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
