package insight

import (
	"fmt"
	"strings"

	"github.com/kostscope/kostscope/internal/aggregate"
	"github.com/kostscope/kostscope/internal/model"
)

const systemPrompt = `You are an expert Kubernetes cost optimization analyst. Provide detailed, actionable insights about cluster costs, resource utilization, and optimization opportunities. Always include specific recommendations and estimated savings.`

// staticRecommendations is returned when the completion API is not configured.
var staticRecommendations = []string{
	"Enable cluster autoscaling to optimize node count",
	"Review resource requests and limits for over-provisioning",
	"Consider spot/preemptible instances for non-critical workloads",
}

// fallbackRecommendations is returned when the API responded but nothing in
// the response looked like a numbered list item.
var fallbackRecommendations = []string{
	"Enable horizontal pod autoscaling for better resource utilization",
	"Implement resource quotas to prevent over-provisioning",
	"Use node affinity rules to optimize workload placement",
	"Consider reserved instances for predictable workloads",
	"Implement pod disruption budgets for safer scaling",
}

// buildAnalysisPrompt embeds the cluster's cost and utilization summary into
// the analysis request.
func buildAnalysisPrompt(c model.ClusterInfo) string {
	var totalCPU, totalMem float64
	for _, n := range c.Nodes {
		totalCPU += n.CPUCapacity
		totalMem += n.MemoryCapacity
	}

	var b strings.Builder
	b.WriteString("Analyze this Kubernetes cluster for cost optimization opportunities:\n\n")
	b.WriteString(fmt.Sprintf("Cluster: %s (%s)\n", c.Name, c.Provider))
	b.WriteString(fmt.Sprintf("Monthly Cost: $%.2f\n", c.TotalCost))
	b.WriteString(fmt.Sprintf("Nodes: %d\n", len(c.Nodes)))
	b.WriteString(fmt.Sprintf("Total CPU: %g cores\n", totalCPU))
	b.WriteString(fmt.Sprintf("Total Memory: %g GB\n", totalMem))
	b.WriteString(fmt.Sprintf("Avg CPU Utilization: %.1f%%\n", aggregate.AvgCPUUsage(c.Nodes)))
	b.WriteString(fmt.Sprintf("Avg Memory Utilization: %.1f%%\n", aggregate.AvgMemoryUsage(c.Nodes)))
	b.WriteString("\nProvide a comprehensive cost analysis including:\n")
	b.WriteString("1. Current cost efficiency assessment\n")
	b.WriteString("2. Resource utilization insights\n")
	b.WriteString("3. Specific optimization recommendations\n")
	b.WriteString("4. Estimated potential savings\n")
	b.WriteString("5. Priority action items\n")
	return b.String()
}

// buildRecommendationsPrompt asks for exactly five numbered recommendations.
func buildRecommendationsPrompt(c model.ClusterInfo) string {
	var b strings.Builder
	b.WriteString("Generate 5 specific, actionable optimization recommendations for this Kubernetes cluster:\n\n")
	b.WriteString(fmt.Sprintf("Cluster: %s\n", c.Name))
	b.WriteString(fmt.Sprintf("Provider: %s\n", c.Provider))
	b.WriteString(fmt.Sprintf("Current monthly cost: $%.2f\n", c.TotalCost))
	b.WriteString(fmt.Sprintf("Nodes: %d\n", len(c.Nodes)))
	b.WriteString("\nFocus on recommendations that can provide immediate cost savings while maintaining performance.\n")
	b.WriteString("Return only the recommendations as a numbered list.\n")
	return b.String()
}

// parseNumberedList keeps lines that look like numbered list items: non-empty
// after trimming, with a digit somewhere in the first three characters.
// At most max items are returned.
func parseNumberedList(text string, max int) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !hasDigitPrefix(line) {
			continue
		}
		items = append(items, line)
		if len(items) == max {
			break
		}
	}
	return items
}

func hasDigitPrefix(s string) bool {
	limit := 3
	if len(s) < limit {
		limit = len(s)
	}
	for i := 0; i < limit; i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}
