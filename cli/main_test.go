package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunRequiresInput(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "--input/-i") {
		t.Errorf("stderr missing required flag message: %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Errorf("stderr missing usage: %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
}

func TestRunHelp(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-h"}, &stdout, &stderr); code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stderr.String(), "-title") {
		t.Errorf("usage does not list -title: %q", stderr.String())
	}
}

func TestRunMissingClientSecret(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("YTSLIDES_CLIENT_SECRET", filepath.Join(dir, "absent.json"))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-i", "links.txt", "-t", "Deck"}, &stdout, &stderr)

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr.String(), "Error: ") {
		t.Errorf("stderr = %q, want Error: prefix", stderr.String())
	}
	if !strings.Contains(stderr.String(), "client secret") {
		t.Errorf("stderr = %q, want client secret hint", stderr.String())
	}
}

func TestRunHelpIgnoresBadConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("YTSLIDES_PAGE_RPS", "-1")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--help"}, &stdout, &stderr); code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if strings.Contains(stderr.String(), "Error loading config") {
		t.Errorf("help loaded config: %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Errorf("stderr missing usage: %q", stderr.String())
	}
}

func TestRunMissingInputIgnoresBadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	if err := os.WriteFile(filepath.Join(dir, "ytslides.json"), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "--input/-i") || !strings.Contains(stderr.String(), "Usage:") {
		t.Errorf("stderr = %q, want required flag message and usage", stderr.String())
	}
	if strings.Contains(stderr.String(), "Error loading config") {
		t.Errorf("config loaded before flags were checked: %q", stderr.String())
	}
}

func TestRunBadConfigWithInput(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("YTSLIDES_PAGE_RPS", "-1")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-i", "links.txt"}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr.String(), "Error loading config: ") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestFlagSet(t *testing.T) {
	for _, tc := range []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"-i", "x"}, false},
		{[]string{"-t", "Deck"}, true},
		{[]string{"--title", ""}, true},
	} {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		fs.String("i", "", "")
		fs.String("t", "", "")
		fs.String("title", "", "")
		if err := fs.Parse(tc.args); err != nil {
			t.Fatal(err)
		}
		if got := flagSet(fs, "title", "t"); got != tc.want {
			t.Errorf("flagSet(%v) = %v, want %v", tc.args, got, tc.want)
		}
	}
}
