package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/nvandessel/bionet/internal/config"
	"github.com/nvandessel/bionet/internal/ratelimit"
)

// setupTestServer creates a server whose defaults point at a small CSV
// workbook and an output file inside a temp dir.
func setupTestServer(t *testing.T) *Server {
	t.Helper()
	tmpDir := t.TempDir()

	tables := filepath.Join(tmpDir, "tables")
	if err := os.MkdirAll(tables, 0755); err != nil {
		t.Fatalf("create tables dir: %v", err)
	}
	files := map[string]string{
		"connections.csv": "Origin,Target,Type,Num,Neurotransmitter\nASHL,AVAL,Send,2,Glutamate\nAVAL,DD1,GapJunction,1,Acetylcholine\n",
		"motor.csv":       "Neuron,Muscle,Num,Neurotransmitter\nDD1,MuscleA,3,GABA\n",
		"sensory.csv":     "Neuron,Landmark,Function\nASHL,,nociception\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(tables, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	defaults := config.Default()
	defaults.Source = tables
	defaults.Output.Path = filepath.Join(tmpDir, "network.txt")

	server, err := NewServer(&Config{Name: "bionet-test", Version: "v0.0.0", Defaults: defaults})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

func TestNewServer_RequiresDefaults(t *testing.T) {
	if _, err := NewServer(&Config{Name: "bionet"}); err == nil {
		t.Error("expected error without defaults")
	}
}

func TestHandleBuild(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	_, out, err := server.handleBuild(ctx, nil, BuildInput{})
	if err != nil {
		t.Fatalf("handleBuild failed: %v", err)
	}

	if out.Output != server.defaults.Output.Path {
		t.Errorf("Output = %q, want %q", out.Output, server.defaults.Output.Path)
	}
	if out.Format != "expanded" || out.Seed != 4517 {
		t.Errorf("unexpected output %+v", out)
	}
	if out.Stats.Neurons != 4 || out.Stats.Sensors != 1 || out.Stats.Motors != 1 {
		t.Errorf("unexpected stats %+v", out.Stats)
	}
	if out.Stats.Synapses != 6 || out.Stats.GapJunctions != 1 {
		t.Errorf("unexpected synapse counts %+v", out.Stats)
	}
	if !strings.Contains(out.Message, "network.txt") {
		t.Errorf("Message = %q", out.Message)
	}
	if _, err := os.Stat(out.Output); err != nil {
		t.Errorf("network file not written: %v", err)
	}
}

func TestHandleBuild_Overrides(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	output := filepath.Join(filepath.Dir(server.defaults.Output.Path), "legacy.txt")
	seed := int64(42)
	lo, hi := 0.5, 0.5
	_, out, err := server.handleBuild(ctx, nil, BuildInput{
		Output:    output,
		Format:    "legacy",
		Seed:      &seed,
		MinWeight: &lo,
		MaxWeight: &hi,
		Generator: "java",
	})
	if err != nil {
		t.Fatalf("handleBuild failed: %v", err)
	}
	if filepath.Base(out.Output) != "legacy.txt" || out.Format != "legacy" || out.Seed != 42 {
		t.Errorf("overrides not applied: %+v", out)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n0.5\n") {
		t.Errorf("expected fixed weight 0.5 in output:\n%s", data)
	}

	// Defaults are untouched by a call.
	if server.defaults.Output.Format != "expanded" || server.defaults.Random.Seed != 4517 {
		t.Errorf("defaults mutated: %+v", server.defaults)
	}
}

func TestHandleBuild_InvalidArgs(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	lo := 0.9
	hi := 0.1
	tests := []struct {
		name string
		args BuildInput
	}{
		{"inverted bounds", BuildInput{MinWeight: &lo, MaxWeight: &hi}},
		{"unknown format", BuildInput{Format: "csv"}},
		{"unknown generator", BuildInput{Generator: "mt19937"}},
		{"missing workbook", BuildInput{Connectome: filepath.Join(t.TempDir(), "missing.xlsx")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := server.handleBuild(ctx, nil, tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	if _, _, err := server.handleBuild(ctx, nil, BuildInput{}); err != nil {
		t.Fatalf("handleBuild failed: %v", err)
	}

	_, out, err := server.handleInspect(ctx, nil, InspectInput{})
	if err != nil {
		t.Fatalf("handleInspect failed: %v", err)
	}
	if out.Path != server.defaults.Output.Path {
		t.Errorf("Path = %q", out.Path)
	}
	if out.Stats.Neurons != 4 || out.Stats.Groups != 3 || out.Stats.Synapses != 6 {
		t.Errorf("unexpected stats %+v", out.Stats)
	}
	if out.Stats.Excitatory != 4 {
		t.Errorf("Excitatory = %d, want 4", out.Stats.Excitatory)
	}

	if _, _, err := server.handleInspect(ctx, nil, InspectInput{Path: filepath.Join(t.TempDir(), "none.txt")}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHandleGraph(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	_, out, err := server.handleGraph(ctx, nil, GraphInput{})
	if err != nil {
		t.Fatalf("handleGraph failed: %v", err)
	}
	dot, ok := out.Graph.(string)
	if !ok || !strings.HasPrefix(dot, "digraph bionet") {
		t.Errorf("expected DOT source, got %T", out.Graph)
	}

	_, out, err = server.handleGraph(ctx, nil, GraphInput{Format: "json"})
	if err != nil {
		t.Fatalf("handleGraph json failed: %v", err)
	}
	graph, ok := out.Graph.(map[string]interface{})
	if !ok || graph["node_count"] != 4 {
		t.Errorf("unexpected JSON graph %v", out.Graph)
	}

	if _, _, err := server.handleGraph(ctx, nil, GraphInput{Format: "svg"}); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := os.Stat(server.defaults.Output.Path); err == nil {
		t.Error("graph should not write a network file")
	}
}

func TestHandleBuild_RateLimited(t *testing.T) {
	server := setupTestServer(t)
	server.toolLimiters[ratelimit.ToolBuild] = rate.NewLimiter(ratelimit.Every(1, time.Hour), 1)
	ctx := context.Background()

	if _, _, err := server.handleBuild(ctx, nil, BuildInput{}); err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	_, _, err := server.handleBuild(ctx, nil, BuildInput{})
	if err == nil || !strings.Contains(err.Error(), "rate limit") {
		t.Errorf("expected rate limit error, got %v", err)
	}
}

func TestHandlers_PathsConfinedToRoots(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	outside := t.TempDir()

	_, _, err := server.handleBuild(ctx, nil, BuildInput{Output: filepath.Join(outside, "network.txt")})
	if err == nil || !strings.Contains(err.Error(), "outside the allowed directories") {
		t.Errorf("expected confinement error for output, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(outside, "network.txt")); err == nil {
		t.Error("network file written outside the roots")
	}

	_, _, err = server.handleGraph(ctx, nil, GraphInput{Connectome: filepath.Join(outside, "connectome.xlsx")})
	if err == nil || !strings.Contains(err.Error(), "outside the allowed directories") {
		t.Errorf("expected confinement error for connectome, got %v", err)
	}

	_, _, err = server.handleInspect(ctx, nil, InspectInput{Path: filepath.Join(outside, "..", "network.txt")})
	if err == nil || !strings.Contains(err.Error(), "outside the allowed directories") {
		t.Errorf("expected confinement error for inspect, got %v", err)
	}
}

func TestNewServer_ExplicitRoots(t *testing.T) {
	root := t.TempDir()
	server, err := NewServer(&Config{Name: "bionet", Defaults: config.Default(), Roots: []string{root}})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	if len(server.roots) != 1 || server.roots[0] != root {
		t.Errorf("roots = %v, want [%s]", server.roots, root)
	}
}
