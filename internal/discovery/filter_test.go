package discovery

import (
	"testing"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		files    []string
		pattern  string
		expected int // Expected number of matches
	}{
		{
			name:     "empty pattern returns all",
			files:    []string{"login.scenario.yaml", "payment.scenario.yaml", "order.scenario.yaml"},
			pattern:  "",
			expected: 3,
		},
		{
			name:     "wildcard pattern matches suffix",
			files:    []string{"login.scenario.yaml", "payment.scenario.yaml", "order.scenario.yaml"},
			pattern:  "*login.scenario.yaml",
			expected: 1,
		},
		{
			name:     "wildcard pattern matches substring",
			files:    []string{"login.scenario.yaml", "payment.scenario.yaml", "payment_refund.scenario.yaml"},
			pattern:  "*payment*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			files:    []string{"login.scenario.yaml", "payment.scenario.yaml", "order.scenario.yaml"},
			pattern:  "payment",
			expected: 1,
		},
		{
			name:     "no matches",
			files:    []string{"login.scenario.yaml", "payment.scenario.yaml"},
			pattern:  "*nonexistent*",
			expected: 0,
		},
		{
			name:     "full path with wildcard",
			files:    []string{"/path/to/login.scenario.yaml", "/path/to/payment.scenario.yaml"},
			pattern:  "*login.scenario.yaml",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(tt.files, tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}

func TestFilter_FilterByName_EdgeCases(t *testing.T) {
	filter := NewFilter()

	t.Run("empty file list", func(t *testing.T) {
		result := filter.FilterByName([]string{}, "*.scenario.yaml")
		if len(result) != 0 {
			t.Errorf("expected empty result, got %d items", len(result))
		}
	})

	t.Run("pattern with multiple wildcards", func(t *testing.T) {
		files := []string{"auth_login.scenario.yaml", "auth_logout.scenario.yaml", "payment.scenario.yaml"}
		result := filter.FilterByName(files, "*auth*.scenario.yaml")
		if len(result) < 2 {
			t.Errorf("expected at least 2 matches, got %d", len(result))
		}
	})
}
