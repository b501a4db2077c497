package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv keeps BIONET_* settings from the caller's shell out of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BIONET_SOURCE", "BIONET_OUTPUT", "BIONET_FORMAT", "BIONET_GENERATOR",
		"BIONET_LOG_LEVEL", "BIONET_DECISION_DIR", "BIONET_MIN_WEIGHT",
		"BIONET_MAX_WEIGHT", "BIONET_SEED",
	} {
		t.Setenv(k, "")
	}
}

// writeWorkbook creates a CSV-directory workbook with one sensory neuron,
// one motor target and two other neurons.
func writeWorkbook(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "tables")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"connections.csv": "Origin,Target,Type,Num,Neurotransmitter\n" +
			"ASHL,AVAL,Send,2,Glutamate\n" +
			"AVAL,DD1,GapJunction,1,Acetylcholine\n" +
			"DD1,AVAL,GABA,1,GABA\n",
		"motor.csv":   "Neuron,Muscle,Num,Neurotransmitter\nDD1,MuscleA,3,GABA\n",
		"sensory.csv": "Neuron,Landmark,Function\nASHL,,nociception\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd := newRootCmd()
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommands(t *testing.T) {
	rootCmd := newRootCmd()
	want := []string{"build", "config", "export", "graph", "inspect", "mcp-server", "version"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
	for _, flag := range []string{"json", "config", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "bionet version "+version) {
		t.Errorf("unexpected output %q", out)
	}

	out, _, err = run(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json: %v", err)
	}
	var v map[string]string
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if v["version"] != version {
		t.Errorf("version = %q, want %q", v["version"], version)
	}
}

func TestBuildCmd(t *testing.T) {
	clearEnv(t)
	source := writeWorkbook(t)
	output := filepath.Join(t.TempDir(), "network.txt")

	out, _, err := run(t, "build", "--connectome", source, "-o", output)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(out, "Wrote "+output) {
		t.Errorf("unexpected summary:\n%s", out)
	}
	if !strings.Contains(out, "4 (1 sensory, 1 motor, 2 other; 3 excitatory)") {
		t.Errorf("unexpected neuron summary:\n%s", out)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "4\n") {
		t.Errorf("network file should start with the neuron count, got %q", string(data)[:10])
	}
}

func TestBuildCmd_JSON(t *testing.T) {
	clearEnv(t)
	source := writeWorkbook(t)
	output := filepath.Join(t.TempDir(), "network.txt")

	out, _, err := run(t, "build", "--json", "--connectome", source, "-o", output,
		"--format", "legacy", "--seed", "42", "--generator", "java")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var res map[string]interface{}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if res["format"] != "legacy" || res["seed"] != float64(42) || res["generator"] != "java" {
		t.Errorf("flags not applied: %v", res)
	}
	if res["synapses"] != float64(7) || res["groups"] != float64(4) {
		t.Errorf("unexpected counts: %v", res)
	}
}

func TestBuildCmd_Errors(t *testing.T) {
	clearEnv(t)
	source := writeWorkbook(t)
	output := filepath.Join(t.TempDir(), "network.txt")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"inverted bounds", []string{"--min-weight", "0.8", "--max-weight", "0.2"}, "weights.min"},
		{"bad format", []string{"--format", "csv"}, "output.format"},
		{"bad log level", []string{"--log-level", "loud"}, "logging.level"},
		{"missing workbook", []string{"--connectome", filepath.Join(t.TempDir(), "none.xls")}, "none.xls"},
		{"positional arg", []string{"extra"}, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"build", "--connectome", source, "-o", output}, tt.args...)
			_, _, err := run(t, args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestBuildCmd_ConfigFileAndEnv(t *testing.T) {
	clearEnv(t)
	source := writeWorkbook(t)
	dir := t.TempDir()
	output := filepath.Join(dir, "from-config.txt")

	configPath := filepath.Join(dir, "bionet.yaml")
	content := "source: " + source + "\noutput:\n  path: " + output + "\n  format: legacy\nrandom:\n  seed: 7\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BIONET_SEED", "9")

	out, _, err := run(t, "build", "--json", "--config", configPath)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var res map[string]interface{}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if res["output"] != output || res["format"] != "legacy" {
		t.Errorf("config file not applied: %v", res)
	}
	if res["seed"] != float64(9) {
		t.Errorf("environment should override the file: seed = %v", res["seed"])
	}

	out, _, err = run(t, "build", "--json", "--config", configPath, "--seed", "11")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if res["seed"] != float64(11) {
		t.Errorf("flag should override the environment: seed = %v", res["seed"])
	}
}

func TestBuildCmd_DecisionLog(t *testing.T) {
	clearEnv(t)
	source := writeWorkbook(t)
	logDir := t.TempDir()
	t.Setenv("BIONET_DECISION_DIR", logDir)

	_, stderr, err := run(t, "build", "--log-level", "trace",
		"--connectome", source, "-o", filepath.Join(t.TempDir(), "n.txt"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(stderr, "decision log enabled") {
		t.Errorf("expected debug log line on stderr, got %q", stderr)
	}

	data, err := os.ReadFile(filepath.Join(logDir, "decisions.jsonl"))
	if err != nil {
		t.Fatalf("read decision log: %v", err)
	}
	for _, event := range []string{"neuron_indexed", "synapse_weighted"} {
		if !strings.Contains(string(data), event) {
			t.Errorf("expected %s events in decision log", event)
		}
	}
}

func TestInspectCmd(t *testing.T) {
	clearEnv(t)
	source := writeWorkbook(t)
	output := filepath.Join(t.TempDir(), "network.txt")
	if _, _, err := run(t, "build", "--connectome", source, "-o", output); err != nil {
		t.Fatalf("build: %v", err)
	}

	out, _, err := run(t, "inspect", output)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"neurons:       4", "sensory:     1", "excitatory:    3 (75.0%)", "synapses:      7 in 4 groups"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}

	if _, _, err := run(t, "inspect", output, "--format", "legacy"); err == nil {
		t.Error("reading an expanded file as legacy should fail")
	}
	if _, _, err := run(t, "inspect"); err == nil {
		t.Error("expected error without a path")
	}
}

func TestGraphCmd(t *testing.T) {
	clearEnv(t)
	source := writeWorkbook(t)

	out, _, err := run(t, "graph", "--connectome", source)
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	if !strings.HasPrefix(out, "digraph bionet {") {
		t.Errorf("expected DOT output, got %q", out)
	}

	out, _, err = run(t, "graph", "--connectome", source, "--graph-format", "json")
	if err != nil {
		t.Fatalf("graph json: %v", err)
	}
	var g map[string]interface{}
	if err := json.Unmarshal([]byte(out), &g); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if g["node_count"] != float64(4) || g["edge_count"] != float64(4) {
		t.Errorf("unexpected graph counts: %v", g)
	}

	if _, _, err := run(t, "graph", "--connectome", source, "--graph-format", "html"); err == nil {
		t.Error("expected error for unknown graph format")
	}
}

func TestExportCmd(t *testing.T) {
	clearEnv(t)
	source := writeWorkbook(t)
	dbPath := filepath.Join(t.TempDir(), "network.db")

	out, _, err := run(t, "export", "--connectome", source, "--db", dbPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "Exported 4 neurons and 4 synapse groups (7 synapses)") {
		t.Errorf("unexpected output %q", out)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database not written: %v", err)
	}
}

func TestConfigCmds(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bionet.yaml")

	out, _, err := run(t, "config", "init", path)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("unexpected output %q", out)
	}
	if _, _, err := run(t, "config", "init", path); err == nil {
		t.Error("second init should refuse to overwrite")
	}

	t.Setenv("BIONET_GENERATOR", "java")
	out, _, err = run(t, "config", "list", "--config", path)
	if err != nil {
		t.Fatalf("config list: %v", err)
	}
	for _, want := range []string{"random.seed:          4517", "random.generator:     java", "logging.decision_dir: (disabled)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}

	out, _, err = run(t, "config", "list", "--config", path, "--json")
	if err != nil {
		t.Fatalf("config list --json: %v", err)
	}
	var cfg map[string]interface{}
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if cfg["source"] != "../data/CElegansNeuronTables.xls" {
		t.Errorf("source = %v", cfg["source"])
	}
}
