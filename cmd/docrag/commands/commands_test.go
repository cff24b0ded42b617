// ABOUTME: Structure tests for the CLI subcommands
// ABOUTME: Verifies Use strings, flags, defaults, and argument validators

package commands

import (
	"testing"
)

func TestNewProcessCmd(t *testing.T) {
	cmd := NewProcessCmd()

	if cmd.Use != "process <file>..." {
		t.Errorf("Use = %q, want %q", cmd.Use, "process <file>...")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Args == nil {
		t.Error("Args validator should be set")
	}

	forceFlag := cmd.Flags().Lookup("force")
	if forceFlag == nil {
		t.Fatal("--force flag not found")
	}
	if forceFlag.DefValue != "false" {
		t.Errorf("--force default = %q, want %q", forceFlag.DefValue, "false")
	}
}

func TestNewSearchCmd(t *testing.T) {
	cmd := NewSearchCmd()

	if cmd.Use != "search <query>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "search <query>")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}

	if cmd.Args == nil {
		t.Error("Args validator should be set")
	}
}

func TestSearchCmd_Flags(t *testing.T) {
	cmd := NewSearchCmd()

	topKFlag := cmd.Flags().Lookup("top-k")
	if topKFlag == nil {
		t.Fatal("--top-k flag not found")
	}
	if topKFlag.DefValue != "5" {
		t.Errorf("--top-k default = %q, want %q", topKFlag.DefValue, "5")
	}

	if cmd.Flags().Lookup("file") == nil {
		t.Error("--file flag not found")
	}
	if cmd.Flags().Lookup("min-similarity") == nil {
		t.Error("--min-similarity flag not found")
	}
}

func TestNewChatCmd(t *testing.T) {
	cmd := NewChatCmd()

	if cmd.Use != "chat <question>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "chat <question>")
	}

	if cmd.Args == nil {
		t.Error("Args validator should be set")
	}
}

func TestChatCmd_Flags(t *testing.T) {
	cmd := NewChatCmd()

	modeFlag := cmd.Flags().Lookup("mode")
	if modeFlag == nil {
		t.Fatal("--mode flag not found")
	}
	if modeFlag.DefValue != "standard" {
		t.Errorf("--mode default = %q, want %q", modeFlag.DefValue, "standard")
	}

	maxTokensFlag := cmd.Flags().Lookup("max-tokens")
	if maxTokensFlag == nil {
		t.Fatal("--max-tokens flag not found")
	}
	if maxTokensFlag.DefValue != "1000" {
		t.Errorf("--max-tokens default = %q, want %q", maxTokensFlag.DefValue, "1000")
	}

	if cmd.Flags().Lookup("top-k") == nil {
		t.Error("--top-k flag not found")
	}
	if cmd.Flags().Lookup("file") == nil {
		t.Error("--file flag not found")
	}
	if cmd.Flags().Lookup("no-stream") == nil {
		t.Error("--no-stream flag not found")
	}
}

func TestNewListCmd(t *testing.T) {
	cmd := NewListCmd()

	if cmd.Use != "list" {
		t.Errorf("Use = %q, want %q", cmd.Use, "list")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}
}

func TestNewRmCmd(t *testing.T) {
	cmd := NewRmCmd()

	if cmd.Use != "rm <file>..." {
		t.Errorf("Use = %q, want %q", cmd.Use, "rm <file>...")
	}

	if cmd.Args == nil {
		t.Error("Args validator should be set")
	}
}

func TestNewStatsCmd(t *testing.T) {
	cmd := NewStatsCmd()

	if cmd.Use != "stats" {
		t.Errorf("Use = %q, want %q", cmd.Use, "stats")
	}

	if !findSubstring(cmd.Long, "--format json") {
		t.Error("Long description should contain a --format json example")
	}
}

func TestNewServeCmd(t *testing.T) {
	cmd := NewServeCmd()

	if cmd.Use != "serve" {
		t.Errorf("Use = %q, want %q", cmd.Use, "serve")
	}

	if cmd.Flags().Lookup("addr") == nil {
		t.Error("--addr flag not found")
	}
}

func TestNewMCPCmd(t *testing.T) {
	cmd := NewMCPCmd()

	if cmd.Use != "mcp" {
		t.Errorf("Use = %q, want %q", cmd.Use, "mcp")
	}

	if cmd.Example == "" {
		t.Error("Example should not be empty")
	}
}

func TestNewVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()

	if cmd.Use != "version" {
		t.Errorf("Use = %q, want %q", cmd.Use, "version")
	}
}

func TestSetVersion(t *testing.T) {
	orig := versionInfo
	defer func() { versionInfo = orig }()

	SetVersion("1.2.3", "abc123", "2026-01-01")

	if versionInfo.Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", versionInfo.Version, "1.2.3")
	}
	if versionInfo.Commit != "abc123" {
		t.Errorf("Commit = %q, want %q", versionInfo.Commit, "abc123")
	}
	if versionInfo.Date != "2026-01-01" {
		t.Errorf("Date = %q, want %q", versionInfo.Date, "2026-01-01")
	}
}
