package metrics

import "math"

// ClassStats holds the per-class counts and ratios derived from a
// confusion matrix.
type ClassStats struct {
	Label       string
	TP          int
	TN          int
	FP          int
	FN          int
	Support     int
	Population  int
	Precision   float64
	Recall      float64
	Specificity float64
	FPR         float64
	FNR         float64
	NPV         float64
	F1          float64
	Accuracy    float64
}

// Overall holds the whole-matrix summary statistics. Precision, Recall,
// and F1 are weighted by class support.
type Overall struct {
	Classes   int
	Images    int
	TP        int
	TN        int
	FP        int
	FN        int
	Precision float64
	Recall    float64
	Accuracy  float64
	F1        float64
	MCC       float64
}

// PerClass derives one ClassStats entry per label, in label order.
func PerClass(m *Matrix) []ClassStats {
	total := m.Total()
	stats := make([]ClassStats, 0, len(m.labels))
	for i, label := range m.labels {
		tp := m.counts[i][i]
		fn := m.rowSum(i) - tp
		fp := m.colSum(i) - tp
		tn := total - tp - fn - fp
		stats = append(stats, ClassStats{
			Label:       label,
			TP:          tp,
			TN:          tn,
			FP:          fp,
			FN:          fn,
			Support:     tp + fn,
			Population:  total,
			Precision:   ratio(tp, tp+fp),
			Recall:      ratio(tp, tp+fn),
			Specificity: ratio(tn, tn+fp),
			FPR:         ratio(fp, fp+tn),
			FNR:         ratio(fn, fn+tp),
			NPV:         ratio(tn, tn+fn),
			F1:          f1(ratio(tp, tp+fp), ratio(tp, tp+fn)),
			Accuracy:    ratio(tp+tn, total),
		})
	}
	return stats
}

// Summarize derives the overall statistics for a matrix.
func Summarize(m *Matrix) Overall {
	perClass := PerClass(m)
	total := m.Total()
	overall := Overall{
		Classes: len(perClass),
		Images:  total,
	}
	var weightedPrecision, weightedRecall, weightedF1 float64
	for _, class := range perClass {
		overall.TP += class.TP
		overall.TN += class.TN
		overall.FP += class.FP
		overall.FN += class.FN
		weight := float64(class.Support)
		weightedPrecision += weight * class.Precision
		weightedRecall += weight * class.Recall
		weightedF1 += weight * class.F1
	}
	if total > 0 {
		overall.Precision = weightedPrecision / float64(total)
		overall.Recall = weightedRecall / float64(total)
		overall.F1 = weightedF1 / float64(total)
		overall.Accuracy = float64(m.diagonal()) / float64(total)
	}
	overall.MCC = mcc(m)
	return overall
}

// mcc computes the multi-class Matthews correlation coefficient:
//
//	(c*s - sum(p_k*t_k)) / sqrt((s^2 - sum(p_k^2)) * (s^2 - sum(t_k^2)))
//
// with c the diagonal sum, s the total, p_k the column sums, and t_k
// the row sums. A zero denominator yields 0.
func mcc(m *Matrix) float64 {
	c := float64(m.diagonal())
	s := float64(m.Total())
	var sumPT, sumPP, sumTT float64
	for k := range m.labels {
		p := float64(m.colSum(k))
		t := float64(m.rowSum(k))
		sumPT += p * t
		sumPP += p * p
		sumTT += t * t
	}
	denominator := math.Sqrt((s*s - sumPP) * (s*s - sumTT))
	if denominator == 0 {
		return 0
	}
	return (c*s - sumPT) / denominator
}

// ratio returns numerator/denominator, or 0 when undefined.
func ratio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

// f1 returns the harmonic mean of precision and recall.
func f1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}
