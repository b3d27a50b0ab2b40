package selfcheck

import (
	"github.com/mentallify/assistant/internal/symptom"
)

// View renders controller output. The controller calls it while holding its
// lock, so implementations must not call back into the controller.
type View interface {
	ProgressView
	Say(text string)
	AskQuestion(q symptom.Question, number, total int)
	ClearProgress()
	OfferFinish()
	ShowResults(results []symptom.ScoreResult, source Source)
}

// Assistant phrasing.
const (
	MsgIntro          = "Let's do a quick self-check. I'll ask a few yes/no questions. Answer honestly; this is not a diagnosis."
	MsgReprompt       = "Please answer 'Yes' or 'No' for the current question (or use the quick buttons)."
	MsgAllAnswered    = "That's all. Tap Finish to see results or type 'Finish'."
	MsgChecking       = "Checking results..."
	MsgScoringFailed  = "Sorry, couldn't fetch results. Showing client-side suggestions."
	MsgNoMatches      = "No strong matches were found. If you're struggling, please reach out to a professional."
	MsgCannotStart    = "Sorry, the self-check can't start right now."
	MsgNotActive      = "There is no self-check running. Type 'self-check' to start one."
	MsgResultsHeading = "Top possible matches (not a diagnosis):"
)
