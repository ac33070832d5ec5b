package errors

import (
	"strings"
	"testing"
)

func TestValidateColumnName(t *testing.T) {
	tests := []struct {
		name    string
		column  string
		wantErr bool
	}{
		{"simple", "CellType", false},
		{"with spaces", "Cell Type", false},
		{"with underscore", "cat_a", false},
		{"empty", "", true},
		{"control character", "bad\x00name", true},
		{"too long", strings.Repeat("a", 257), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColumnName(tt.column)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColumnName(%q) error = %v, wantErr %v", tt.column, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		name    string
		color   string
		wantErr bool
	}{
		{"six digit hex", "#ad310f", false},
		{"three digit hex", "#fff", false},
		{"eight digit hex", "#ad310fcc", false},
		{"uppercase hex", "#AD310F", false},
		{"named white", "white", false},
		{"named grey", "grey", false},
		{"empty", "", true},
		{"missing hash", "ad310f", true},
		{"wrong length", "#ad31", true},
		{"not a color", "shiny", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColor(tt.color)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative", "plots/figure.svg", false},
		{"absolute", "/tmp/figure.png", false},
		{"empty", "", true},
		{"null byte", "fig\x00.svg", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
