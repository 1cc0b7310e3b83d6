// Package model defines the records served and persisted by the API.
// JSON field names follow the dashboard wire format (snake_case).
package model

import "time"

// ClusterNode is a single compute node within a cluster. Usage values are
// percentages in [0,100]; capacities are cores and GiB.
type ClusterNode struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	CPUCapacity    float64 `json:"cpu_capacity"`
	MemoryCapacity float64 `json:"memory_capacity"`
	CPUUsage       float64 `json:"cpu_usage"`
	MemoryUsage    float64 `json:"memory_usage"`
	CostPerHour    float64 `json:"cost_per_hour"`
	NodeType       string  `json:"node_type"`
	Zone           string  `json:"zone"`
	Status         string  `json:"status"`
}

// ClusterInfo is a named collection of nodes with an aggregate monthly cost.
// Nodes are owned by the cluster and stored with it.
type ClusterInfo struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Provider  string        `json:"provider"`
	Region    string        `json:"region"`
	Nodes     []ClusterNode `json:"nodes"`
	TotalCost float64       `json:"total_cost"`
	CreatedAt time.Time     `json:"created_at"`
}

// CostAnalysis is the persisted result of one analyze call. Append-only.
type CostAnalysis struct {
	ID               string    `json:"id"`
	ClusterID        string    `json:"cluster_id"`
	AnalysisType     string    `json:"analysis_type"`
	Recommendations  []string  `json:"recommendations"`
	PotentialSavings float64   `json:"potential_savings"`
	ConfidenceScore  float64   `json:"confidence_score"`
	AIInsights       string    `json:"ai_insights"`
	CreatedAt        time.Time `json:"created_at"`
}

// OptimizationRecommendation is generated fresh per request, never persisted.
type OptimizationRecommendation struct {
	ID                       string  `json:"id"`
	ClusterID                string  `json:"cluster_id"`
	Type                     string  `json:"type"`
	Description              string  `json:"description"`
	Impact                   string  `json:"impact"`
	SavingsEstimate          float64 `json:"savings_estimate"`
	ImplementationComplexity string  `json:"implementation_complexity"`
	Priority                 string  `json:"priority"`
}

// AnomalyAlert flags a cost or utilization irregularity. Resolved is
// monotone: it only ever transitions false -> true.
type AnomalyAlert struct {
	ID          string    `json:"id"`
	ClusterID   string    `json:"cluster_id"`
	AlertType   string    `json:"alert_type"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	DetectedAt  time.Time `json:"detected_at"`
	Resolved    bool      `json:"resolved"`
}
