// Package aggregate computes dashboard totals, averages and the savings
// heuristics from cluster and node lists. All functions are single-pass
// arithmetic over their inputs; only the trend points and the decorative
// alert count draw randomness.
package aggregate

import (
	"math"
	"math/rand"
	"time"

	"github.com/kostscope/kostscope/internal/model"
)

// HoursPerMonth is the demo billing convention: a flat 30-day month.
// Cluster total_cost is defined as the sum of node hourly cost times this.
const HoursPerMonth = 24 * 30

// overviewSavingsRate is the fixed fraction of total monthly cost reported
// as dashboard-wide potential savings.
const overviewSavingsRate = 0.25

// clusterSavingsRate scales the per-cluster idle-capacity savings estimate.
const clusterSavingsRate = 0.3

// Overview is the aggregate dashboard payload.
type Overview struct {
	TotalClusters        int          `json:"total_clusters"`
	TotalMonthlyCost     float64      `json:"total_monthly_cost"`
	TotalNodes           int          `json:"total_nodes"`
	AvgCPUUtilization    float64      `json:"avg_cpu_utilization"`
	AvgMemoryUtilization float64      `json:"avg_memory_utilization"`
	CostTrends           []TrendPoint `json:"cost_trends"`
	PotentialSavings     float64      `json:"potential_savings"`
	AlertsCount          int          `json:"alerts_count"`
}

// TrendPoint is one synthetic daily cost sample.
type TrendPoint struct {
	Date string  `json:"date"`
	Cost float64 `json:"cost"`
}

// MonthlyCost derives a cluster's total monthly cost from its nodes.
func MonthlyCost(nodes []model.ClusterNode) float64 {
	total := 0.0
	for _, n := range nodes {
		total += n.CostPerHour * HoursPerMonth
	}
	return total
}

// AvgCPUUsage returns the mean cpu_usage over nodes, 0 when empty.
func AvgCPUUsage(nodes []model.ClusterNode) float64 {
	if len(nodes) == 0 {
		return 0
	}
	sum := 0.0
	for _, n := range nodes {
		sum += n.CPUUsage
	}
	return sum / float64(len(nodes))
}

// AvgMemoryUsage returns the mean memory_usage over nodes, 0 when empty.
func AvgMemoryUsage(nodes []model.ClusterNode) float64 {
	if len(nodes) == 0 {
		return 0
	}
	sum := 0.0
	for _, n := range nodes {
		sum += n.MemoryUsage
	}
	return sum / float64(len(nodes))
}

// SavingsEstimate is the per-cluster heuristic used by the analyze endpoint:
// lower utilization yields a larger nominal savings estimate. Not predictive.
func SavingsEstimate(totalCost, avgCPUUsage float64) float64 {
	return totalCost * (100 - avgCPUUsage) / 100 * clusterSavingsRate
}

// BuildOverview computes the dashboard overview for the given clusters.
// Trend points cover the 7 days ending at now's UTC date, oldest first.
func BuildOverview(clusters []model.ClusterInfo, now time.Time) Overview {
	totalCost := 0.0
	totalNodes := 0
	cpuSum := 0.0
	memSum := 0.0

	for _, c := range clusters {
		totalCost += c.TotalCost
		totalNodes += len(c.Nodes)
		for _, n := range c.Nodes {
			cpuSum += n.CPUUsage
			memSum += n.MemoryUsage
		}
	}

	avgCPU := 0.0
	avgMem := 0.0
	if totalNodes > 0 {
		avgCPU = cpuSum / float64(totalNodes)
		avgMem = memSum / float64(totalNodes)
	}

	return Overview{
		TotalClusters:        len(clusters),
		TotalMonthlyCost:     round2(totalCost),
		TotalNodes:           totalNodes,
		AvgCPUUtilization:    avgCPU,
		AvgMemoryUtilization: avgMem,
		CostTrends:           CostTrends(totalCost, now),
		PotentialSavings:     round2(totalCost * overviewSavingsRate),
		AlertsCount:          2 + rand.Intn(7), // decorative, not derived from stored alerts
	}
}

// CostTrends produces exactly 7 synthetic daily points ending at now's UTC
// date inclusive, oldest first. Each point jitters the daily cost by ±10%.
func CostTrends(totalMonthlyCost float64, now time.Time) []TrendPoint {
	daily := totalMonthlyCost / 30
	trends := make([]TrendPoint, 0, 7)
	for i := 0; i < 7; i++ {
		date := now.UTC().AddDate(0, 0, -(6 - i))
		trends = append(trends, TrendPoint{
			Date: date.Format("2006-01-02"),
			Cost: round2(daily * (0.9 + rand.Float64()*0.2)),
		})
	}
	return trends
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
