package evaluate

import (
	"math"
	"sort"
)

// AUC returns the area under the ROC curve of every learner in res. With two
// class values it is the AUC of the second value's probability. With more it
// is the one-against-rest AUC of each class weighted by its prevalence.
// Rows of unknown class are ignored. Tied scores count half.
func AUC(res *Results) []float64 {
	out := make([]float64, len(res.Probabilities))

	for l, probs := range res.Probabilities {
		out[l] = learnerAUC(res.Actual, probs)
	}

	return out
}

func learnerAUC(actual []float64, probs [][]float64) float64 {
	if len(probs) == 0 {
		return math.NaN()
	}

	var (
		rows   []int
		labels []int
	)

	for i, a := range actual {
		if !math.IsNaN(a) {
			rows = append(rows, i)
			labels = append(labels, int(a))
		}
	}

	scores := make([]float64, len(rows))
	column := func(k int) []float64 {
		for j, i := range rows {
			scores[j] = probs[i][k]
		}

		return scores
	}

	nClasses := len(probs[0])
	if nClasses == 2 {
		return BinaryAUC(column(1), positives(labels, 1))
	}

	var sum, weight float64

	for k := range nClasses {
		pos := positives(labels, k)

		n := 0
		for _, p := range pos {
			if p {
				n++
			}
		}

		auc := BinaryAUC(column(k), pos)
		if math.IsNaN(auc) {
			continue
		}

		sum += float64(n) * auc
		weight += float64(n)
	}

	if weight == 0 {
		return math.NaN()
	}

	return sum / weight
}

func positives(labels []int, k int) []bool {
	out := make([]bool, len(labels))
	for i, l := range labels {
		out[i] = l == k
	}

	return out
}

// BinaryAUC returns the probability that a random positive scores higher
// than a random negative, counting ties as one half (the Mann-Whitney U
// statistic normalized by the number of pairs). It is NaN when either
// class is empty.
func BinaryAUC(scores []float64, positive []bool) float64 {
	n := len(scores)
	order := make([]int, n)

	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] < scores[order[b]] })

	var (
		rankSum float64
		nPos    int
	)

	for i := 0; i < n; {
		j := i
		for j+1 < n && scores[order[j+1]] == scores[order[i]] {
			j++
		}

		// Average 1-based rank of the tie group i..j.
		rank := float64(i+j)/2 + 1

		for k := i; k <= j; k++ {
			if positive[order[k]] {
				rankSum += rank
				nPos++
			}
		}

		i = j + 1
	}

	nNeg := n - nPos
	if nPos == 0 || nNeg == 0 {
		return math.NaN()
	}

	u := rankSum - float64(nPos)*float64(nPos+1)/2

	return u / (float64(nPos) * float64(nNeg))
}
