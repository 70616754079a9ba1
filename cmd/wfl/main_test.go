package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const skirmishPath = "../../scenario/testdata/skirmish.yaml"

func executeCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRunCLIHelp(t *testing.T) {
	if err := runCLI([]string{"--help"}); err != nil {
		t.Fatalf("runCLI help failed: %v", err)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	_, err := executeCLI(t, "unknown")
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScenarioFlagRequired(t *testing.T) {
	_, err := executeCLI(t, "check")
	if err == nil || !strings.Contains(err.Error(), "--scenario is required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckCommand(t *testing.T) {
	out, err := executeCLI(t, "check", "-s", skirmishPath)
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Crossroads Skirmish: ok (10 callables") {
		t.Fatalf("unexpected output: %q", out)
	}

	out, err = executeCLI(t, "check", "-s", skirmishPath, "--me", "konrad")
	if err != nil {
		t.Fatalf("check with me failed: %v", err)
	}
	if !strings.Contains(out, "ok (11 callables") {
		t.Fatalf("me should be checked too: %q", out)
	}
}

func TestCheckCommandReportsLoadErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("map: {tiles: [\"Zz\"]}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := executeCLI(t, "check", "-s", path)
	if err == nil || !strings.Contains(err.Error(), `unknown terrain "Zz"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInspectLocation(t *testing.T) {
	out, err := executeCLI(t, "inspect", "-s", skirmishPath, "--me", "konrad", "me.loc")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || lines[0] != "location loc(2,2)" {
		t.Fatalf("unexpected output: %q", out)
	}
	if strings.Join(strings.Fields(lines[1]), " ") != "x = 2" {
		t.Fatalf("unexpected x line: %q", lines[1])
	}
}

func TestInspectRootListsBindings(t *testing.T) {
	out, err := executeCLI(t, "inspect", "-s", skirmishPath)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if !strings.HasPrefix(out, "chain\n") {
		t.Fatalf("unexpected header: %q", out)
	}
	for _, name := range []string{"map", "teams", "units", "unit_types", "config"} {
		if !strings.Contains(out, "  "+name+" ") {
			t.Fatalf("missing binding %s in %q", name, out)
		}
	}
}

func TestInspectGuardedQuery(t *testing.T) {
	out, err := executeCLI(t, "inspect", "-s", skirmishPath, "--me", "konrad", "me.wings ?? status")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if strings.TrimSpace(out) != "-1" {
		t.Fatalf("unexpected output: %q", out)
	}

	_, err = executeCLI(t, "inspect", "-s", skirmishPath, "--me", "konrad", "me.wings")
	if err == nil || !strings.HasPrefix(err.Error(), "attribute_not_found:") {
		t.Fatalf("unexpected error: %v", err)
	}
}
