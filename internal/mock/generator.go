// Package mock produces plausible synthetic clusters, nodes and alerts used
// to seed an empty store for demos. The randomness is intentionally
// unseeded; there is no reproducibility contract.
package mock

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/kostscope/kostscope/internal/aggregate"
	"github.com/kostscope/kostscope/internal/model"
)

// nodeSpec is the fixed capacity and pricing catalog for a node type.
type nodeSpec struct {
	cpu    float64 // cores
	memory float64 // GiB
	hourly float64 // USD
}

var nodeCatalog = map[string]nodeSpec{
	"t3.medium": {cpu: 2, memory: 4, hourly: 0.0416},
	"t3.large":  {cpu: 2, memory: 8, hourly: 0.0832},
	"t3.xlarge": {cpu: 4, memory: 16, hourly: 0.1664},
	"m5.large":  {cpu: 2, memory: 8, hourly: 0.096},
	"m5.xlarge": {cpu: 4, memory: 16, hourly: 0.192},
}

var nodeTypes = []string{"t3.medium", "t3.large", "t3.xlarge", "m5.large", "m5.xlarge"}

var zones = []string{"us-east-1a", "us-east-1b", "us-east-1c"}

var providers = []string{"AWS", "GCP", "Azure"}

var regions = []string{"us-east-1", "us-west-2", "europe-west1"}

var alertTypes = []string{"cost_spike", "resource_waste", "scaling_issue"}

var severities = []string{"low", "medium", "high"}

// Nodes generates count synthetic cluster nodes from the fixed catalog.
func Nodes(count int) []model.ClusterNode {
	nodes := make([]model.ClusterNode, 0, count)
	for i := 0; i < count; i++ {
		nodeType := nodeTypes[rand.Intn(len(nodeTypes))]
		spec := nodeCatalog[nodeType]

		nodes = append(nodes, model.ClusterNode{
			ID:             uuid.NewString(),
			Name:           fmt.Sprintf("node-%d", i+1),
			CPUCapacity:    spec.cpu,
			MemoryCapacity: spec.memory,
			CPUUsage:       uniform(20, 80),
			MemoryUsage:    uniform(30, 85),
			CostPerHour:    spec.hourly,
			NodeType:       nodeType,
			Zone:           zones[rand.Intn(len(zones))],
			Status:         "Ready",
		})
	}
	return nodes
}

// Clusters generates count synthetic clusters, each with 3-8 nodes and a
// derived monthly total cost.
func Clusters(count int) []model.ClusterInfo {
	clusters := make([]model.ClusterInfo, 0, count)
	for i := 0; i < count; i++ {
		nodes := Nodes(3 + rand.Intn(6))

		clusters = append(clusters, model.ClusterInfo{
			ID:        uuid.NewString(),
			Name:      fmt.Sprintf("production-cluster-%d", i+1),
			Provider:  providers[rand.Intn(len(providers))],
			Region:    regions[rand.Intn(len(regions))],
			Nodes:     nodes,
			TotalCost: aggregate.MonthlyCost(nodes),
			CreatedAt: time.Now().UTC(),
		})
	}
	return clusters
}

// Alerts generates 3-6 synthetic anomaly alerts, each referencing a random
// cluster from the given list. Returns nil when there are no clusters.
func Alerts(clusters []model.ClusterInfo) []model.AnomalyAlert {
	if len(clusters) == 0 {
		return nil
	}

	count := 3 + rand.Intn(4)
	alerts := make([]model.AnomalyAlert, 0, count)
	for i := 0; i < count; i++ {
		c := clusters[rand.Intn(len(clusters))]
		alerts = append(alerts, model.AnomalyAlert{
			ID:          uuid.NewString(),
			ClusterID:   c.ID,
			AlertType:   alertTypes[rand.Intn(len(alertTypes))],
			Description: fmt.Sprintf("Unusual cost pattern detected in %s", c.Name),
			Severity:    severities[rand.Intn(len(severities))],
			DetectedAt:  time.Now().UTC(),
			Resolved:    false,
		})
	}
	return alerts
}

func uniform(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}
