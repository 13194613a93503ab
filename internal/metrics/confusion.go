package metrics

import (
	"fmt"
	"sort"
)

// Matrix is a confusion matrix over the labels seen in the truth and
// predicted sequences. Rows are actual labels, columns are predicted.
type Matrix struct {
	labels []string
	index  map[string]int
	counts [][]int
	total  int
}

// Build constructs a confusion matrix from index-aligned truth and
// predicted label sequences.
func Build(truth, predicted []string) (*Matrix, error) {
	if len(truth) != len(predicted) {
		return nil, fmt.Errorf("truth and predicted lengths differ: %d vs %d", len(truth), len(predicted))
	}
	seen := map[string]struct{}{}
	for _, label := range truth {
		seen[label] = struct{}{}
	}
	for _, label := range predicted {
		seen[label] = struct{}{}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	index := make(map[string]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}
	counts := make([][]int, len(labels))
	for i := range counts {
		counts[i] = make([]int, len(labels))
	}
	m := &Matrix{labels: labels, index: index, counts: counts}
	for i := range truth {
		m.counts[index[truth[i]]][index[predicted[i]]]++
		m.total++
	}
	return m, nil
}

// Labels returns the sorted label set covered by the matrix.
func (m *Matrix) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// Count returns the number of samples with the given actual and
// predicted labels.
func (m *Matrix) Count(actual, predicted string) int {
	row, ok := m.index[actual]
	if !ok {
		return 0
	}
	col, ok := m.index[predicted]
	if !ok {
		return 0
	}
	return m.counts[row][col]
}

// Total returns the number of samples in the matrix.
func (m *Matrix) Total() int {
	return m.total
}

// rowSum returns the actual-label support for a row index.
func (m *Matrix) rowSum(row int) int {
	sum := 0
	for _, count := range m.counts[row] {
		sum += count
	}
	return sum
}

// colSum returns the predicted-positive count for a column index.
func (m *Matrix) colSum(col int) int {
	sum := 0
	for row := range m.counts {
		sum += m.counts[row][col]
	}
	return sum
}

// diagonal returns the number of correctly classified samples.
func (m *Matrix) diagonal() int {
	sum := 0
	for i := range m.counts {
		sum += m.counts[i][i]
	}
	return sum
}
