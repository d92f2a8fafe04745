package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunExitCodes(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("APP_ENV", "")

	cases := []struct {
		name   string
		args   []string
		input  string
		code   int
		stdout string
	}{
		{"example", nil, "1abc2\npqr3stu8vwx\na1b2c3d4e5f\ntreb7uchet\n", 0, "12\n38\n15\n77\n142\n"},
		{"spelled", nil, "two1nine\n", 0, "29\n29\n"},
		{"empty input", nil, "", 0, "0\n"},
		// earlier values stay printed, the tally never is
		{"line without digits", nil, "1abc2\nabcdef\n7\n", 1, "12\n"},
		{"unknown flag", []string{"-nope"}, "1\n", 1, ""},
		{"missing config", []string{"-config", filepath.Join(os.TempDir(), "trebuchet-missing.yml")}, "1\n", 1, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out bytes.Buffer
			if code := run(c.args, strings.NewReader(c.input), &out); code != c.code {
				t.Fatalf("exit code = %d, want %d", code, c.code)
			}
			if out.String() != c.stdout {
				t.Fatalf("stdout = %q, want %q", out.String(), c.stdout)
			}
		})
	}
}

func TestRunWithConfigFile(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("APP_ENV", "")

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("extractor:\n  spelled_words: false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out bytes.Buffer
	if code := run([]string{"-config", path}, strings.NewReader("two1nine\n"), &out); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if out.String() != "11\n11\n" {
		t.Fatalf("stdout = %q", out.String())
	}
}
