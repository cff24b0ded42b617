// ABOUTME: Tests for shared utility functions used by CLI commands
// ABOUTME: Verifies truncate, formatTime, and validation helpers

package commands

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "short string unchanged",
			input:  "hello",
			maxLen: 10,
			want:   "hello",
		},
		{
			name:   "exact length unchanged",
			input:  "hello",
			maxLen: 5,
			want:   "hello",
		},
		{
			name:   "long string truncated",
			input:  "hello world",
			maxLen: 8,
			want:   "hello...",
		},
		{
			name:   "very short maxLen",
			input:  "hello",
			maxLen: 2,
			want:   "he",
		},
		{
			name:   "empty string",
			input:  "",
			maxLen: 10,
			want:   "",
		},
		{
			name:   "unicode truncated with ellipsis",
			input:  "你好世界你好世界",
			maxLen: 5,
			want:   "你好...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		input    time.Time
		contains string
	}{
		{
			name:     "just now (seconds ago)",
			input:    now.Add(-30 * time.Second),
			contains: "just now",
		},
		{
			name:     "minutes ago",
			input:    now.Add(-5 * time.Minute),
			contains: "m ago",
		},
		{
			name:     "hours ago",
			input:    now.Add(-3 * time.Hour),
			contains: "h ago",
		},
		{
			name:     "days ago",
			input:    now.Add(-2 * 24 * time.Hour),
			contains: "d ago",
		},
		{
			name:     "weeks ago (shows date)",
			input:    now.Add(-14 * 24 * time.Hour),
			contains: "-", // Date format contains hyphens
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatTime(tt.input)
			if !findSubstring(got, tt.contains) {
				t.Errorf("formatTime() = %q, want to contain %q", got, tt.contains)
			}
		})
	}
}

func TestValidatePositiveInt(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		fieldName string
		wantErr   bool
	}{
		{
			name:      "positive value",
			n:         5,
			fieldName: "top-k",
			wantErr:   false,
		},
		{
			name:      "zero value",
			n:         0,
			fieldName: "top-k",
			wantErr:   true,
		},
		{
			name:      "negative value",
			n:         -1,
			fieldName: "max-tokens",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePositiveInt(tt.n, tt.fieldName)
			if (err != nil) != tt.wantErr {
				t.Errorf("validatePositiveInt(%d, %q) error = %v, wantErr %v", tt.n, tt.fieldName, err, tt.wantErr)
			}
			if tt.wantErr && err != nil {
				if !findSubstring(err.Error(), tt.fieldName) {
					t.Errorf("Error message should contain field name %q: %v", tt.fieldName, err)
				}
			}
		})
	}
}

// findSubstring reports whether s contains substr
func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
