package mock

import (
	"math"
	"testing"

	"github.com/kostscope/kostscope/internal/aggregate"
)

func TestNodes_CatalogAndRanges(t *testing.T) {
	nodes := Nodes(20)

	if len(nodes) != 20 {
		t.Fatalf("Nodes(20) = %d nodes, want 20", len(nodes))
	}

	seen := map[string]bool{}
	for _, n := range nodes {
		spec, ok := nodeCatalog[n.NodeType]
		if !ok {
			t.Fatalf("node type %q not in catalog", n.NodeType)
		}
		if n.CPUCapacity != spec.cpu || n.MemoryCapacity != spec.memory || n.CostPerHour != spec.hourly {
			t.Errorf("node %q capacities/cost = (%v, %v, %v), want (%v, %v, %v)",
				n.NodeType, n.CPUCapacity, n.MemoryCapacity, n.CostPerHour, spec.cpu, spec.memory, spec.hourly)
		}
		if n.CPUUsage < 20 || n.CPUUsage > 80 {
			t.Errorf("cpu_usage %v outside [20,80]", n.CPUUsage)
		}
		if n.MemoryUsage < 30 || n.MemoryUsage > 85 {
			t.Errorf("memory_usage %v outside [30,85]", n.MemoryUsage)
		}
		if n.Status != "Ready" {
			t.Errorf("status = %q, want Ready", n.Status)
		}
		if n.ID == "" {
			t.Error("node generated without id")
		}
		if seen[n.ID] {
			t.Errorf("duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}
}

func TestClusters_NodeCountAndDerivedCost(t *testing.T) {
	clusters := Clusters(10)

	if len(clusters) != 10 {
		t.Fatalf("Clusters(10) = %d clusters, want 10", len(clusters))
	}

	for _, c := range clusters {
		if len(c.Nodes) < 3 || len(c.Nodes) > 8 {
			t.Errorf("cluster %q has %d nodes, want in [3,8]", c.Name, len(c.Nodes))
		}
		if want := aggregate.MonthlyCost(c.Nodes); math.Abs(c.TotalCost-want) > 1e-9 {
			t.Errorf("cluster %q total_cost = %v, want derived %v", c.Name, c.TotalCost, want)
		}
		if c.Provider == "" || c.Region == "" {
			t.Errorf("cluster %q missing provider/region", c.Name)
		}
	}
}

func TestAlerts_ReferenceExistingClusters(t *testing.T) {
	clusters := Clusters(3)
	ids := map[string]bool{}
	for _, c := range clusters {
		ids[c.ID] = true
	}

	alerts := Alerts(clusters)

	if len(alerts) < 3 || len(alerts) > 6 {
		t.Fatalf("Alerts produced %d alerts, want in [3,6]", len(alerts))
	}
	for _, a := range alerts {
		if !ids[a.ClusterID] {
			t.Errorf("alert %q references unknown cluster %q", a.ID, a.ClusterID)
		}
		if a.Resolved {
			t.Errorf("alert %q generated already resolved", a.ID)
		}
		switch a.Severity {
		case "low", "medium", "high":
		default:
			t.Errorf("alert severity = %q, want low/medium/high", a.Severity)
		}
	}
}

func TestAlerts_NoClusters_ReturnsNone(t *testing.T) {
	if alerts := Alerts(nil); len(alerts) != 0 {
		t.Errorf("Alerts(nil) = %d alerts, want 0", len(alerts))
	}
}
