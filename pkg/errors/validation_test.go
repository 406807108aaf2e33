package errors

import (
	"strings"
	"testing"
)

func TestValidateTaskID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Task 0", false},
		{"valid dashed", "project-1", false},
		{"valid unicode", "ภารกิจ", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"slash", "foo/bar", true},
		{"backslash", "foo\\bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTaskID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTaskID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidTask) {
				t.Errorf("ValidateTaskID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidTask)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"#fff", false},
		{"#ffeb3b", false},
		{"#ffeb3b80", false},
		{"red", false},
		{"rgba(252, 248, 227, 0.5)", false},

		{"#ff", true},
		{"#gggggg", true},
		{"url(javascript:alert(1))", true},
		{`red" onload="x`, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid file", "tasks.yaml", false},
		{"valid nested", "plans/q3/tasks.json", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../secret", true},
		{"control", "tasks\x01.json", true},
		{"too long", strings.Repeat("a", 600), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMongoURI(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"mongodb://localhost:27017", false},
		{"mongodb+srv://cluster.example.net", false},
		{"", true},
		{"http://localhost:27017", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateMongoURI(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMongoURI(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
