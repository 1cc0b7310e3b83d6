package insight

import (
	"context"
	"strings"
	"testing"

	"github.com/kostscope/kostscope/internal/model"
)

func sampleCluster() model.ClusterInfo {
	return model.ClusterInfo{
		ID:       "c1",
		Name:     "production-cluster-1",
		Provider: "AWS",
		Region:   "us-east-1",
		Nodes: []model.ClusterNode{
			{CPUCapacity: 2, MemoryCapacity: 4, CPUUsage: 40, MemoryUsage: 50, CostPerHour: 0.0416},
			{CPUCapacity: 4, MemoryCapacity: 16, CPUUsage: 60, MemoryUsage: 70, CostPerHour: 0.1664},
		},
		TotalCost: 149.76,
	}
}

func TestAnalyzeClusterCosts_Disabled(t *testing.T) {
	svc := New(Config{Enabled: false})

	got := svc.AnalyzeClusterCosts(context.Background(), sampleCluster())
	if got != unavailableMessage {
		t.Errorf("AnalyzeClusterCosts = %q, want unavailable message", got)
	}
}

func TestAnalyzeClusterCosts_NilService(t *testing.T) {
	var svc *Service

	got := svc.AnalyzeClusterCosts(context.Background(), sampleCluster())
	if got != unavailableMessage {
		t.Errorf("nil service AnalyzeClusterCosts = %q, want unavailable message", got)
	}
}

func TestGenerateRecommendations_Disabled_ReturnsStaticList(t *testing.T) {
	svc := New(Config{Enabled: false})

	got := svc.GenerateRecommendations(context.Background(), sampleCluster())
	if len(got) != len(staticRecommendations) {
		t.Fatalf("GenerateRecommendations = %d items, want %d", len(got), len(staticRecommendations))
	}
	for i, rec := range got {
		if rec != staticRecommendations[i] {
			t.Errorf("recommendation[%d] = %q, want %q", i, rec, staticRecommendations[i])
		}
	}
}

func TestBuildAnalysisPrompt_EmbedsClusterMetrics(t *testing.T) {
	prompt := buildAnalysisPrompt(sampleCluster())

	for _, want := range []string{
		"production-cluster-1 (AWS)",
		"Monthly Cost: $149.76",
		"Nodes: 2",
		"Total CPU: 6 cores",
		"Total Memory: 20 GB",
		"Avg CPU Utilization: 50.0%",
		"Avg Memory Utilization: 60.0%",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("analysis prompt missing %q\nprompt:\n%s", want, prompt)
		}
	}
}

func TestBuildRecommendationsPrompt_AsksForNumberedList(t *testing.T) {
	prompt := buildRecommendationsPrompt(sampleCluster())

	if !strings.Contains(prompt, "Generate 5 specific, actionable optimization recommendations") {
		t.Error("recommendations prompt missing the request preamble")
	}
	if !strings.Contains(prompt, "numbered list") {
		t.Error("recommendations prompt does not ask for a numbered list")
	}
}

func TestParseNumberedList(t *testing.T) {
	text := `Here are my recommendations:

1. Enable cluster autoscaling
2. Right-size node pools
  3) Use spot instances
This line is prose and should be dropped.
4. Consolidate underutilized nodes
5. Review storage classes
6. One too many`

	got := parseNumberedList(text, 5)

	want := []string{
		"1. Enable cluster autoscaling",
		"2. Right-size node pools",
		"3) Use spot instances",
		"4. Consolidate underutilized nodes",
		"5. Review storage classes",
	}
	if len(got) != len(want) {
		t.Fatalf("parseNumberedList = %d items, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseNumberedList_NoListItems(t *testing.T) {
	if got := parseNumberedList("No numbers here.\nJust prose.", 5); len(got) != 0 {
		t.Errorf("parseNumberedList = %v, want empty", got)
	}
}

func TestParseNumberedList_DigitMustBeInFirstThreeChars(t *testing.T) {
	text := "Recommendation number 1 appears too late in this line to count"
	if got := parseNumberedList(text, 5); len(got) != 0 {
		t.Errorf("parseNumberedList kept a line without a leading digit: %v", got)
	}
}
