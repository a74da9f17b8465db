package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

func TestResolveVersionInfo(t *testing.T) {
	tests := []struct {
		name          string
		v, c, d       string
		moduleVersion string
		settings      map[string]string
		want          [3]string
	}{
		{
			name: "ldflags win",
			v:    "1.2.0", c: "abc", d: "2026-01-01",
			moduleVersion: "v9.9.9",
			settings:      map[string]string{"vcs.revision": "ffffffffffffffff"},
			want:          [3]string{"1.2.0", "abc", "2026-01-01"},
		},
		{
			name: "build info fills defaults",
			v:    "dev", c: "none", d: "unknown",
			moduleVersion: "v0.3.1",
			settings:      map[string]string{"vcs.revision": "0123456789abcdef", "vcs.time": "2026-02-03T04:05:06Z"},
			want:          [3]string{"v0.3.1", "0123456789ab", "2026-02-03T04:05:06Z"},
		},
		{
			name: "devel module keeps dev",
			v:    "dev", c: "none", d: "unknown",
			moduleVersion: "(devel)",
			settings:      map[string]string{"vcs.revision": "abc"},
			want:          [3]string{"dev", "abc", "unknown"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, c, d := resolveVersionInfo(tc.v, tc.c, tc.d, tc.moduleVersion, tc.settings)
			if got := [3]string{v, c, d}; got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"version", "accounts"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Fatalf("missing %q subcommand: %v", name, err)
		}
	}
	for _, flag := range []string{"instance", "config", "log-file", "log-level"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Fatalf("missing --%s flag", flag)
		}
	}
}

func TestVersionCommandShort(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--short"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Fatalf("expected a version number")
	}
}

func TestPrintAccounts(t *testing.T) {
	var out bytes.Buffer
	printAccounts(&out, domain.Preferences{
		Accounts: []domain.Session{
			{InstanceURL: "https://lemmy.ml"},
			{InstanceURL: "https://beehaw.org", JWT: "jwt", AccountName: "alice"},
			{},
		},
		CurrentIndex: 1,
	})
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and three rows, got %q", out.String())
	}
	if !strings.Contains(lines[1], "(anonymous)") || strings.HasPrefix(strings.TrimSpace(lines[1]), "*") {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[2]), "*") || !strings.Contains(lines[2], "alice") {
		t.Fatalf("active account not marked: %q", lines[2])
	}
	if !strings.Contains(lines[3], "(none)") {
		t.Fatalf("blank account not shown: %q", lines[3])
	}
}
