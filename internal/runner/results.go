package runner

import "time"

type Results struct {
	RunID      string           `json:"run_id"`
	Endpoint   string           `json:"endpoint"`
	InputRoot  string           `json:"input_root"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Categories []CategoryResult `json:"categories"`
	Files      []FileResult     `json:"files"`
	Summary    RunSummary       `json:"summary"`
}

type CategoryResult struct {
	Directory  string `json:"directory"`
	Label      string `json:"label"`
	Files      int    `json:"files"`
	Classified int    `json:"classified"`
	Failed     int    `json:"failed"`
	Skipped    int    `json:"skipped"`
}

// FileResult pairs one file's ground truth with its prediction.
type FileResult struct {
	Category   string   `json:"category"`
	Truth      string   `json:"truth"`
	Filename   string   `json:"filename"`
	Label      string   `json:"label"`
	Confidence *float64 `json:"confidence"`
	DurationMS float64  `json:"duration_ms"`
	Status     string   `json:"status"`
}

type RunSummary struct {
	Classes   int     `json:"classes"`
	Images    int     `json:"images"`
	TP        int     `json:"tp"`
	TN        int     `json:"tn"`
	FP        int     `json:"fp"`
	FN        int     `json:"fn"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	Accuracy  float64 `json:"accuracy"`
	F1        float64 `json:"f1"`
	MCC       float64 `json:"mcc"`
}

// File result status values.
const (
	StatusClassified = "classified"
	StatusFailed     = "failed"
)

// Pairs returns the index-aligned truth and predicted label sequences.
// Entry i of both derives from Files[i].
func (r Results) Pairs() (truth []string, predicted []string) {
	truth = make([]string, 0, len(r.Files))
	predicted = make([]string, 0, len(r.Files))
	for _, file := range r.Files {
		truth = append(truth, file.Truth)
		predicted = append(predicted, file.Label)
	}
	return truth, predicted
}
