package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/ownership/demo"
)

// executeCommand runs a fresh root command with args and returns captured output
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()
	if root.Use != "smartptr" {
		t.Errorf("Use = %q, want smartptr", root.Use)
	}

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"run", "list", "interactive"} {
		if !slices.Contains(names, want) {
			t.Errorf("subcommand %q not found in %v", want, names)
		}
	}
}

func TestRunCommand_JSON(t *testing.T) {
	out, err := executeCommand(t, "run", "--format", "json", "--order", "1", "--many", "5")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}

	var report demo.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not a JSON report: %v\n%s", err, out)
	}
	if report.RunID == "" {
		t.Error("missing run id")
	}
	if got, want := len(report.Results), len(demo.Scenarios())+1; got != want {
		t.Errorf("got %d results, want %d", got, want)
	}
	if report.ReleaseOrder != 1 {
		t.Errorf("ReleaseOrder = %d, want 1", report.ReleaseOrder)
	}
	if !slices.Equal(report.Leaked, []int{2, 6, 8}) {
		t.Errorf("Leaked = %v, want [2 6 8]", report.Leaked)
	}
}

func TestRunCommand_YAMLSubset(t *testing.T) {
	out, err := executeCommand(t, "run", "--format", "yaml", "--scenario", "shared", "--scenario", "stack", "--order", "0")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}

	var report demo.Report
	if err := yaml.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not a YAML report: %v\n%s", err, out)
	}
	var names []string
	for _, res := range report.Results {
		names = append(names, res.Name)
	}
	if want := []string{"stack", "shared", demo.UnwindName}; !slices.Equal(names, want) {
		t.Fatalf("results = %v, want %v", names, want)
	}
	if len(report.Leaked) != 0 {
		t.Fatalf("Leaked = %v, want none", report.Leaked)
	}
}

func TestRunCommand_Text(t *testing.T) {
	out, err := executeCommand(t, "run", "--scenario", "raw-leak", "--color", "never")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	for _, want := range []string{"== raw-leak ==", "constructed(2)", "== unwind ==", "leaked 1: [2]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("--color never produced escape codes:\n%q", out)
	}
}

func TestRunCommand_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smartptr.yaml")
	content := "demo:\n  scenarios: [baton]\noutput:\n  format: json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(t, "--config", path, "run")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	var report demo.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("config format not applied: %v\n%s", err, out)
	}
	if _, ok := report.Result("baton"); !ok || len(report.Results) != 2 {
		t.Fatalf("config scenarios not applied: %+v", report.Results)
	}
}

func TestRunCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown scenario", []string{"run", "--scenario", "nope"}, "demo.scenarios"},
		{"bad order", []string{"run", "--order", "sideways"}, "demo.order"},
		{"bad format", []string{"run", "--format", "xml"}, "output.format"},
		{"bad log level", []string{"--log-level", "loud", "run"}, "logging.level"},
		{"missing config", []string{"--config", "/nonexistent/smartptr.yaml", "run"}, "read config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestListCommand(t *testing.T) {
	out, err := executeCommand(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(demo.Scenarios()) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(demo.Scenarios()), out)
	}
	for i, sc := range demo.Scenarios() {
		if !strings.HasPrefix(lines[i], sc.Name) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], sc.Name)
		}
	}
}

func TestInteractiveModel(t *testing.T) {
	run := func(names ...string) (*demo.Report, error) {
		return demo.NewRunner(demo.Options{Selector: demo.FixedSelector(0)}, nil).Run(names...)
	}
	m := newInteractiveModel(run)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})

	if !strings.Contains(m.View(), "Select a scenario") {
		t.Fatalf("initial view:\n%s", m.View())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.selected != 1 {
		t.Fatalf("selected = %d, want 1", m.selected)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateRunning || cmd == nil {
		t.Fatalf("enter did not start a run: state=%d", m.state)
	}
	m.Update(cmd())

	if m.state != stateShowTrace {
		t.Fatalf("state = %d, want trace", m.state)
	}
	if m.report == nil || !slices.Equal(m.report.Leaked, []int{2}) {
		t.Fatalf("report = %+v", m.report)
	}
	if view := m.View(); !strings.Contains(view, "raw-leak") {
		t.Fatalf("trace view missing scenario:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateSelect || m.report != nil {
		t.Fatalf("esc did not return to the list: state=%d", m.state)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not return tea.Quit")
	}
}
