// ABOUTME: Step labels shown while the backend processes an image
// ABOUTME: The screen advances one step per tick until the process call returns

package study

import "time"

// StepInterval is how often the processing screen advances
const StepInterval = 2 * time.Second

// ProcessingSteps are shown in order while processing runs
var ProcessingSteps = []string{
	"Analyzing image...",
	"Extracting text...",
	"Generating summaries...",
	"Creating flashcards...",
	"Building quiz...",
	"Almost done...",
}

// Step clamps n to the last step and returns its label
func Step(n int) string {
	if n < 0 {
		n = 0
	}
	if n >= len(ProcessingSteps) {
		n = len(ProcessingSteps) - 1
	}
	return ProcessingSteps[n]
}

// Progress returns the completed fraction after n ticks, never reaching 1
// before the backend answers.
func Progress(n int) float64 {
	if n < 0 {
		return 0
	}
	total := len(ProcessingSteps)
	if n >= total {
		n = total - 1
	}
	return float64(n+1) / float64(total+1)
}
