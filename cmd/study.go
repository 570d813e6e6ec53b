// ABOUTME: Study commands for the neurostudy CLI
// ABOUTME: scan uploads and processes a page; show and history read generated sessions

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Zubimendi/neurostudy/cli/internal/client"
	"github.com/Zubimendi/neurostudy/cli/internal/output"
	"github.com/Zubimendi/neurostudy/cli/internal/study"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/gallery"
)

// Sections accepted by show --section
const (
	sectionAll        = ""
	sectionSummary    = "summary"
	sectionExplain    = "explain"
	sectionConcepts   = "concepts"
	sectionFlashcards = "flashcards"
	sectionQuiz       = "quiz"
)

var validSections = []string{sectionSummary, sectionExplain, sectionConcepts, sectionFlashcards, sectionQuiz}

var (
	waitFlag    bool
	sectionFlag string
	detailsFlag bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Upload a textbook page and generate study material",
	Long: `Upload an image of a textbook page and run the study pipeline on it.
Prints the new session id; use 'neurostudy show <id>' to read the results.

Supported images: jpg, jpeg, png, gif, webp, heic. Maximum size 10MB.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		exit(runScan(ctx, os.Stdout, args[0], waitFlag))
	},
}

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a study session",
	Long: `Show the summaries, explanation, key concepts, flashcards, and quiz of a session.
Use --section to print only one of: ` + strings.Join(validSections, ", ") + `.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		exit(runShow(ctx, os.Stdout, args[0], sectionFlag))
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent study sessions",
	Long:  `List recent study sessions, newest first. --details fetches each session for card and question counts.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		exit(runHistory(ctx, os.Stdout, detailsFlag))
	},
}

func init() {
	scanCmd.Flags().BoolVar(&waitFlag, "wait", true, "Process the page after uploading")
	showCmd.Flags().StringVar(&sectionFlag, "section", "", "Only show one section ("+strings.Join(validSections, "|")+")")
	historyCmd.Flags().BoolVar(&detailsFlag, "details", false, "Fetch flashcard and quiz counts for each session")

	rootCmd.AddCommand(scanCmd, showCmd, historyCmd)
}

// scanResult is the JSON shape printed by scan
type scanResult struct {
	SessionID string `json:"session_id"`
	ImageURL  string `json:"image_url"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

// runScan uploads path, optionally processes it, and returns exit code
func runScan(ctx context.Context, w io.Writer, path string, wait bool) int {
	svc := newServices()
	p := newPrinter(w)
	if _, ok := svc.requireLogin(ctx, p); !ok {
		return exitFailure
	}

	if !gallery.IsImage(path) {
		p.Error("Unsupported image type: %s", path)
		return exitFailure
	}

	upload, err := svc.study.UploadImage(ctx, path)
	if err != nil {
		return report(p, err)
	}
	result := scanResult{SessionID: upload.SessionID, ImageURL: upload.ImageURL, Status: "uploaded"}

	if wait {
		if !IsJSONOutput() {
			p.Info("Processing page...")
		}
		processed, err := svc.study.ProcessImage(ctx, upload.SessionID, upload.ImageURL)
		if err != nil {
			return report(p, err)
		}
		result.Status, result.Message = processed.Status, processed.Message
	}

	if IsJSONOutput() {
		if err := p.JSON(result); err != nil {
			return report(p, err)
		}
		return exitOK
	}

	p.Success("Session %s %s", result.SessionID, result.Status)
	if wait {
		p.Print("Run 'neurostudy show %s' to read the results.", result.SessionID)
	} else {
		p.Print("Uploaded without processing. Image: %s", result.ImageURL)
	}
	return exitOK
}

// runShow prints one session and returns exit code
func runShow(ctx context.Context, w io.Writer, id, section string) int {
	p := newPrinter(w)
	if _, err := uuid.Parse(id); err != nil {
		p.Error("Invalid session id %q", id)
		return exitFailure
	}
	if section != sectionAll && !validSection(section) {
		p.Error("Invalid section %q: must be one of %s", section, strings.Join(validSections, ", "))
		return exitFailure
	}

	svc := newServices()
	if _, ok := svc.requireLogin(ctx, p); !ok {
		return exitFailure
	}

	sess, err := svc.study.Session(ctx, id)
	if err != nil {
		return report(p, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatSessionJSON(sess, section))
		return exitOK
	}
	renderSession(p, sess, section)
	return exitOK
}

func validSection(section string) bool {
	for _, s := range validSections {
		if s == section {
			return true
		}
	}
	return false
}

// renderSession prints the requested sections of sess
func renderSession(p *output.Printer, sess *client.StudySession, section string) {
	show := func(name string) bool { return section == sectionAll || section == name }

	title := sess.Title
	if title == "" {
		title = "Study Session"
	}
	p.Print("%s  %s", p.Bold(title), p.StatusBadge(sess.Status))
	if sess.Topic != "" {
		p.Print("%s", p.Dim("Topic: "+sess.Topic))
	}

	if show(sectionSummary) {
		p.Header("Quick Summary")
		p.Print("%s", orNone(sess.ShortSummary))
		p.Header("Detailed Summary")
		p.Print("%s", orNone(sess.DetailedSummary))
	}
	if show(sectionExplain) {
		p.Header("Simplified Explanation")
		p.Print("%s", orNone(sess.SimplifiedExplanation))
	}
	if show(sectionConcepts) {
		p.Header("Key Concepts")
		if len(sess.KeyConcepts) == 0 {
			p.Print("%s", orNone(""))
		}
		for i, c := range sess.KeyConcepts {
			p.Print("%d. %s", i+1, c)
		}
	}
	if show(sectionFlashcards) {
		p.Header(fmt.Sprintf("Flashcards (%d)", len(sess.Flashcards)))
		for i, card := range sess.Flashcards {
			p.Print("%d. Q: %s", i+1, card.Front)
			p.Print("   A: %s", card.Back)
		}
	}
	if show(sectionQuiz) {
		p.Header(fmt.Sprintf("Quiz (%d)", len(sess.QuizQuestions)))
		for i, q := range sess.QuizQuestions {
			p.Print("%d. %s", i+1, q.Question)
			for _, key := range study.OptionKeys(q) {
				marker := " "
				if key == q.CorrectAnswer {
					marker = "*"
				}
				p.Print("  %s %s) %s", marker, key, q.Options[key])
			}
			if q.Explanation != "" {
				p.Print("   %s", p.Dim(q.Explanation))
			}
		}
	}
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return s
}

// formatSessionJSON formats a session, or just one section of it, as JSON
func formatSessionJSON(sess *client.StudySession, section string) string {
	var v any = sess
	switch section {
	case sectionSummary:
		v = map[string]string{"short_summary": sess.ShortSummary, "detailed_summary": sess.DetailedSummary}
	case sectionExplain:
		v = map[string]string{"simplified_explanation": sess.SimplifiedExplanation}
	case sectionConcepts:
		v = map[string][]string{"key_concepts": sess.KeyConcepts}
	case sectionFlashcards:
		v = map[string][]client.Flashcard{"flashcards": sess.Flashcards}
	case sectionQuiz:
		v = map[string][]client.QuizQuestion{"quiz_questions": sess.QuizQuestions}
	}
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}

// historyRow is one line of the history output
type historyRow struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Topic      string    `json:"topic"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	Flashcards *int      `json:"flashcards,omitempty"`
	Questions  *int      `json:"quiz_questions,omitempty"`
}

// runHistory lists recent sessions and returns exit code
func runHistory(ctx context.Context, w io.Writer, details bool) int {
	svc := newServices()
	p := newPrinter(w)
	if _, ok := svc.requireLogin(ctx, p); !ok {
		return exitFailure
	}

	list, err := svc.study.RecentSessions(ctx)
	if err != nil {
		return report(p, err)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })

	rows := make([]historyRow, len(list))
	for i, s := range list {
		rows[i] = historyRow{ID: s.ID, Title: s.Title, Topic: s.Topic, Status: s.Status, CreatedAt: s.CreatedAt}
	}

	if details && len(list) > 0 {
		ids := make([]string, len(list))
		for i, s := range list {
			ids[i] = s.ID
		}
		full, err := svc.study.SessionDetails(ctx, ids, study.DefaultDetailsLimit)
		if err != nil {
			return report(p, err)
		}
		for i, sess := range full {
			cards, questions := len(sess.Flashcards), len(sess.QuizQuestions)
			rows[i].Flashcards, rows[i].Questions = &cards, &questions
		}
	}

	if IsJSONOutput() {
		if err := p.JSON(rows); err != nil {
			return report(p, err)
		}
		return exitOK
	}

	if len(rows) == 0 {
		p.Print("No study sessions yet. Run 'neurostudy scan <image>' to get started.")
		return exitOK
	}
	if err := renderHistoryTable(w, rows, details); err != nil {
		return report(p, err)
	}
	p.Print("\n%d sessions", len(rows))
	return exitOK
}

func renderHistoryTable(w io.Writer, rows []historyRow, details bool) error {
	headers := []string{"ID", "Title", "Topic", "Status", "Created"}
	if details {
		headers = append(headers, "Cards", "Questions")
	}

	t := output.NewTable(w, headers)
	for _, r := range rows {
		title := r.Title
		if title == "" {
			title = "Untitled Session"
		}
		row := []string{r.ID, title, r.Topic, r.Status, r.CreatedAt.Local().Format("2006-01-02 15:04")}
		if details {
			row = append(row, countOrDash(r.Flashcards), countOrDash(r.Questions))
		}
		t.AddRow(row...)
	}
	return t.Render()
}

func countOrDash(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprint(*n)
}
