package dbprep

import "testing"

func TestIsValidDatabaseName(t *testing.T) {
	tests := []struct {
		name     string
		dbName   string
		expected bool
	}{
		{"simple name", "testing_1", true},
		{"empty", "", false},
		{"quote", "testing'1", false},
		{"semicolon", "testing;1", false},
		{"comment", "testing--1", false},
		{"drop keyword", "drop_tables", false},
		{"too long", string(make([]byte, 65)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidDatabaseName(tt.dbName); got != tt.expected {
				t.Errorf("isValidDatabaseName(%q) = %v, want %v", tt.dbName, got, tt.expected)
			}
		})
	}
}
