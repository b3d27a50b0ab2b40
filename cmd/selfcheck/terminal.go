package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mentallify/assistant/internal/selfcheck"
	"github.com/mentallify/assistant/internal/symptom"
)

const barWidth = 20

// terminalView renders controller output as plain text lines.
type terminalView struct {
	mu  sync.Mutex
	out io.Writer
}

var _ selfcheck.View = (*terminalView)(nil)

func newTerminalView(out io.Writer) *terminalView {
	return &terminalView{out: out}
}

func (v *terminalView) printf(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, format, args...)
}

func (v *terminalView) Prompt() {
	v.printf("> ")
}

func (v *terminalView) Say(text string) {
	v.printf("assistant: %s\n", text)
}

func (v *terminalView) AskQuestion(q symptom.Question, number, total int) {
	v.printf("Q%d/%d: %s (yes/no)\n", number, total, q.Text)
}

func (v *terminalView) ShowProgress(p selfcheck.Progress) {
	filled := int(p.Fraction * barWidth)
	v.printf("[%s%s] %d/%d\n", strings.Repeat("#", filled), strings.Repeat(".", barWidth-filled), p.Completed, p.Total)
}

func (v *terminalView) Celebrate() {
	v.printf("*** All questions answered! ***\n")
}

func (v *terminalView) ClearProgress() {}

func (v *terminalView) OfferFinish() {
	v.printf("Type /finish to see your results.\n")
}

func (v *terminalView) ShowResults(results []symptom.ScoreResult, source selfcheck.Source) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "%s (%s)\n", selfcheck.MsgResultsHeading, source)
	writeResults(v.out, results)
}

func writeResults(out io.Writer, results []symptom.ScoreResult) {
	for i, r := range results {
		fmt.Fprintf(out, "%d. %s  score %.3f", i+1, r.Condition, r.Score)
		if len(r.MatchedSymptoms) > 0 {
			fmt.Fprintf(out, "  matched: %s", strings.Join(r.MatchedSymptoms, ", "))
		}
		fmt.Fprintln(out)
		if r.Precautions != "" {
			fmt.Fprintf(out, "   %s\n", r.Precautions)
		}
	}
}
