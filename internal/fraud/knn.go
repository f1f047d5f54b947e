package fraud

import (
	"math"
	"sort"
)

// Known fraud shapes expressed over six boolean features: price too low,
// urgent sale, no documents, no inspection, hidden fees, atypical payment.
var trainingSet = []struct {
	category string
	features []float64
}{
	{"price_anomaly", []float64{1, 1, 0, 0, 0, 0}},
	{"documentation_fraud", []float64{0, 0, 1, 0, 0, 0}},
	{"inspection_fraud", []float64{0, 1, 0, 1, 0, 0}},
	{"payment_fraud", []float64{0, 1, 0, 0, 1, 1}},
	{"multiple_red_flags", []float64{1, 1, 1, 1, 0, 0}},
}

// classifyKNN labels a feature vector by majority vote among its k
// nearest training patterns (euclidean distance).
func classifyKNN(features []float64, k int) string {
	type neighbor struct {
		distance float64
		label    string
	}

	neighbors := make([]neighbor, 0, len(trainingSet))
	for _, sample := range trainingSet {
		var sum float64
		for i, v := range sample.features {
			d := v - features[i]
			sum += d * d
		}
		neighbors = append(neighbors, neighbor{distance: math.Sqrt(sum), label: sample.category})
	}

	sort.Slice(neighbors, func(i, j int) bool {
		return neighbors[i].distance < neighbors[j].distance
	})
	if k > len(neighbors) {
		k = len(neighbors)
	}

	counts := make(map[string]int)
	for _, n := range neighbors[:k] {
		counts[n.label]++
	}

	best := ""
	bestCount := 0
	for _, n := range neighbors[:k] {
		if counts[n.label] > bestCount {
			bestCount = counts[n.label]
			best = n.label
		}
	}
	return best
}
