package errors

import (
	"testing"
)

func TestValidateContigName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"chromosome", "chr1", false},
		{"scaffold with dots", "scaffold_12.1", false},
		{"with pipe", "gi|12345|ref", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"newline", "chr1\nchr2", true},
		{"null byte", "chr\x001", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContigName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateContigName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestValidateDatasetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "hg38", false},
		{"with dash", "mm10-repeats", false},
		{"with dot", "danRer11.v2", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal", "..", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"mongo operator", "$where", true},
		{"control char", "hg\x0138", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatasetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDatasetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
