package ui

import "testing"

func TestNormalizedPathForKey(t *testing.T) {
	tests := []struct {
		name        string
		projectPath string
		path        string
		expected    string
	}{
		{
			name:        "relative to project",
			projectPath: "/home/user/project",
			path:        "/home/user/project/scenarios/Login.scenario.yaml",
			expected:    "scenarios/login",
		},
		{
			name:        "outside project kept as-is",
			projectPath: "/home/user/project",
			path:        "/tmp/other/login.scenario.yaml",
			expected:    "/tmp/other/login",
		},
		{
			name:        "no project path",
			projectPath: "",
			path:        "scenarios/login.scenario.yaml",
			expected:    "scenarios/login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizedPathForKey(tt.projectPath, tt.path)
			if got != tt.expected {
				t.Errorf("normalizedPathForKey(%q, %q) = %q, want %q", tt.projectPath, tt.path, got, tt.expected)
			}
		})
	}
}
