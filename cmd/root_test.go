package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"run", "format", "expand", "steps", "init"} {
		t.Run(name, func(t *testing.T) {
			var found bool
			for _, sub := range root.Commands() {
				if sub.Name() == name {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected %q subcommand registered on root command", name)
			}
		})
	}
}

func TestBuildCommandTree_AllCommandsHaveRunE(t *testing.T) {
	root := NewRootCmd()
	for _, sub := range root.Commands() {
		c := sub
		t.Run(c.Name(), func(t *testing.T) {
			if c.RunE == nil {
				t.Errorf("command %q has nil RunE; must wire RunE for error visibility", c.Name())
			}
		})
	}
}

func TestResolveProject_UsesProjectWhenSet(t *testing.T) {
	got, err := resolveProject("/my/project/", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Clean("/my/project")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveProject_UsesCWDWhenProjectEmpty(t *testing.T) {
	got, err := resolveProject("", func() (string, error) { return "/cwd", nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/cwd" {
		t.Errorf("got %q, want %q", got, "/cwd")
	}
}

func TestResolveProject_ReturnsErrorWhenGetCWDFails(t *testing.T) {
	_, err := resolveProject("", func() (string, error) { return "", errors.New("getwd failed") })
	if err == nil {
		t.Error("expected error when getwd fails")
	}
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "behave") {
		t.Errorf("expected help output to contain \"behave\", got: %s", out.String())
	}
}
