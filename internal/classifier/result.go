package classifier

import "time"

// PlaceholderLabel marks a file whose classification could not be obtained.
const PlaceholderLabel = "None"

// Result records the outcome of classifying a single image file.
// Confidence is nil when the endpoint did not supply one.
type Result struct {
	Filename   string
	Label      string
	Confidence *float64
	Duration   time.Duration
}

// Placeholder returns the result recorded for a failed classification.
func Placeholder(filename string, duration time.Duration) Result {
	return Result{
		Filename: filename,
		Label:    PlaceholderLabel,
		Duration: duration,
	}
}

// DurationMS returns the round-trip time in milliseconds.
func (r Result) DurationMS() float64 {
	return float64(r.Duration) / float64(time.Millisecond)
}
