package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDeriveOutputPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"flows.csv", "flows.geoip.csv"},
		{"data/flows.csv", "data/flows.geoip.csv"},
		{"flows.tsv", "flows.geoip.csv"},
		{"flows", "flows.geoip.csv"},
		{"archive.2024.csv", "archive.2024.geoip.csv"},
	}

	for _, tt := range tests {
		if got := deriveOutputPath(tt.input); got != tt.want {
			t.Errorf("deriveOutputPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSingleRune(t *testing.T) {
	tests := []struct {
		value   string
		want    rune
		wantErr bool
	}{
		{",", ',', false},
		{";", ';', false},
		{"\t", '\t', false},
		{"", 0, true},
		{",,", 0, true},
		{"ab", 0, true},
	}

	for _, tt := range tests {
		got, err := singleRune("--sep", tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("singleRune(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("singleRune(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestRun_MissingRequiredFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errContains string
	}{
		{
			name:        "no input",
			args:        []string{"--db", "city.mmdb"},
			errContains: "--in",
		},
		{
			name:        "no database",
			args:        []string{"--in", "flows.csv"},
			errContains: "--db",
		},
		{
			name:        "multi-character delimiter",
			args:        []string{"--in", "flows.csv", "--db", "city.mmdb", "--sep", "ab"},
			errContains: "--sep",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs(tt.args)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			err := cmd.Execute()
			if err == nil {
				t.Fatal("Execute() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not mention %q", err, tt.errContains)
			}
		})
	}
}

func TestRun_MissingDatabaseLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "flows.csv")
	writeTestFile(t, input, "ip\n8.8.8.8\n")
	output := filepath.Join(dir, "out.csv")

	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"--in", input,
		"--out", output,
		"--db", filepath.Join(dir, "missing.mmdb"),
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.Execute(); err == nil {
		t.Fatal("Execute() succeeded with a missing database, want error")
	}

	if fileExists(output) {
		t.Error("output file was created despite a fatal configuration error")
	}
}

func TestLazyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	lf := &lazyFile{path: path}

	// No write, no file.
	if err := lf.Sync(); err != nil {
		t.Errorf("Sync() before write error: %v", err)
	}
	if err := lf.Close(); err != nil {
		t.Errorf("Close() before write error: %v", err)
	}
	if fileExists(path) {
		t.Fatal("lazyFile created the file without a write")
	}

	lf = &lazyFile{path: path}
	if _, err := lf.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := lf.Sync(); err != nil {
		t.Errorf("Sync() error: %v", err)
	}
	if err := lf.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if !fileExists(path) {
		t.Fatal("lazyFile did not create the file on write")
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
