// ABOUTME: Quiz state: one answer per question, score, and retry
// ABOUTME: Verdict thresholds match the results screen

package study

import (
	"errors"
	"math"
	"sort"

	"github.com/Zubimendi/neurostudy/cli/internal/client"
)

// ErrAlreadyAnswered is returned when a question is answered twice
var ErrAlreadyAnswered = errors.New("question already answered")

// ErrUnknownOption is returned for an option key the question does not offer
var ErrUnknownOption = errors.New("unknown option")

// Quiz tracks progress through a list of questions
type Quiz struct {
	questions []client.QuizQuestion
	index     int
	selected  string
	score     int
	done      bool
}

// NewQuiz creates a quiz positioned on the first question
func NewQuiz(questions []client.QuizQuestion) *Quiz {
	return &Quiz{questions: questions, done: len(questions) == 0}
}

// Len returns the number of questions
func (q *Quiz) Len() int { return len(q.questions) }

// Index returns the zero-based position of the current question
func (q *Quiz) Index() int { return q.index }

// Score returns the number of correct answers so far
func (q *Quiz) Score() int { return q.score }

// Done reports whether the quiz is complete
func (q *Quiz) Done() bool { return q.done }

// Current returns the current question; ok is false once done
func (q *Quiz) Current() (question client.QuizQuestion, ok bool) {
	if q.done {
		return client.QuizQuestion{}, false
	}
	return q.questions[q.index], true
}

// Selected returns the option chosen for the current question, "" if unanswered
func (q *Quiz) Selected() string { return q.selected }

// Answered reports whether the current question has been answered
func (q *Quiz) Answered() bool { return q.selected != "" }

// Answer records key for the current question and reports whether it was correct
func (q *Quiz) Answer(key string) (bool, error) {
	cur, ok := q.Current()
	if !ok {
		return false, errors.New("quiz is complete")
	}
	if q.selected != "" {
		return false, ErrAlreadyAnswered
	}
	if _, ok := cur.Options[key]; !ok {
		return false, ErrUnknownOption
	}

	q.selected = key
	correct := key == cur.CorrectAnswer
	if correct {
		q.score++
	}
	return correct, nil
}

// Next advances to the next question, completing the quiz after the last one.
// It does nothing until the current question is answered.
func (q *Quiz) Next() {
	if q.done || q.selected == "" {
		return
	}
	q.selected = ""
	if q.index >= len(q.questions)-1 {
		q.done = true
		return
	}
	q.index++
}

// Retry resets the quiz to the first question with a zero score
func (q *Quiz) Retry() {
	q.index = 0
	q.selected = ""
	q.score = 0
	q.done = len(q.questions) == 0
}

// Percentage returns the rounded score percentage
func (q *Quiz) Percentage() int {
	if len(q.questions) == 0 {
		return 0
	}
	return int(math.Round(float64(q.score) / float64(len(q.questions)) * 100))
}

// Verdict returns the encouragement line for a percentage
func Verdict(pct int) string {
	switch {
	case pct >= 80:
		return "Excellent work!"
	case pct >= 60:
		return "Good job!"
	default:
		return "Keep practicing!"
	}
}

// OptionKeys returns a question's option keys in display order
func OptionKeys(question client.QuizQuestion) []string {
	keys := make([]string, 0, len(question.Options))
	for k := range question.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
