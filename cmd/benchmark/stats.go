package main

import (
	"math"
	"slices"
	"time"
)

type Metrics struct {
	Latencies     []time.Duration
	SuccessCount  int64
	ConflictCount int64
	ErrorCount    int64
	TotalTime     time.Duration
}

type BenchmarkResult struct {
	Operation     string
	Middleware    string
	TotalRequests int
	SuccessRate   float64
	Conflicts     int64
	AvgLatency    time.Duration
	P50Latency    time.Duration
	P95Latency    time.Duration
	P99Latency    time.Duration
	Throughput    float64
}

func calculatePercentile(latencies []time.Duration, percentile float64) time.Duration {
	if len(latencies) == 0 {
		return 0
	}
	sorted := slices.Clone(latencies)
	slices.Sort(sorted)
	index := int(math.Ceil(float64(len(sorted))*percentile/100.0)) - 1
	index = max(0, min(index, len(sorted)-1))
	return sorted[index]
}

func calculateMetrics(m Metrics) BenchmarkResult {
	if len(m.Latencies) == 0 {
		return BenchmarkResult{}
	}

	total := len(m.Latencies)

	var sum time.Duration
	for _, lat := range m.Latencies {
		sum += lat
	}

	var throughput float64
	if m.TotalTime > 0 {
		throughput = float64(total) / m.TotalTime.Seconds()
	}

	return BenchmarkResult{
		TotalRequests: total,
		SuccessRate:   float64(m.SuccessCount) / float64(total) * 100.0,
		Conflicts:     m.ConflictCount,
		AvgLatency:    sum / time.Duration(total),
		P50Latency:    calculatePercentile(m.Latencies, 50),
		P95Latency:    calculatePercentile(m.Latencies, 95),
		P99Latency:    calculatePercentile(m.Latencies, 99),
		Throughput:    throughput,
	}
}

// stay devolve a i-ésima estadia de duas noites a partir de base, sem
// sobreposição entre índices consecutivos.
func stay(base time.Time, i int) (string, string) {
	start := base.AddDate(0, 0, 3*i)
	end := start.AddDate(0, 0, 2)
	return start.Format(time.DateOnly), end.Format(time.DateOnly)
}
