package assistant

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mentallify/assistant/internal/selfcheck"
	"github.com/mentallify/assistant/internal/symptom"
	"github.com/mentallify/assistant/pkg/http/ws"
)

type sender interface {
	Send(msg ws.Message) error
}

// hubRoute delivers through the hub by connection ID, so output produced after
// the connection was unregistered is dropped.
type hubRoute struct {
	hub *ws.Hub
	id  uuid.UUID
}

func (r hubRoute) Send(msg ws.Message) error {
	return r.hub.Send(r.id, msg)
}

// socketView renders controller output as WebSocket messages. Sends only
// enqueue, so it is safe under the controller lock.
type socketView struct {
	conn   sender
	logger zerolog.Logger
}

var _ selfcheck.View = (*socketView)(nil)

func (v *socketView) emit(msgType string, payload any) {
	msg, err := ws.NewMessage(msgType, payload)
	if err == nil {
		err = v.conn.Send(msg)
	}
	if err != nil {
		v.logger.Warn().Err(err).Str("type", msgType).Msg("dropping message")
	}
}

func (v *socketView) Say(text string) {
	v.emit(ws.TypeSay, ws.SayPayload{Text: text})
}

func (v *socketView) AskQuestion(q symptom.Question, number, total int) {
	v.emit(ws.TypeQuestion, ws.QuestionPayload{Number: number, Total: total, Text: q.Text, SymptomKey: q.SymptomKey})
}

func (v *socketView) ShowProgress(p selfcheck.Progress) {
	v.emit(ws.TypeProgress, ws.ProgressPayload{Completed: p.Completed, Total: p.Total, Fraction: p.Fraction})
}

func (v *socketView) Celebrate() {
	v.emit(ws.TypeCelebrate, nil)
}

func (v *socketView) ClearProgress() {
	v.emit(ws.TypeProgressClear, nil)
}

func (v *socketView) OfferFinish() {
	v.emit(ws.TypeFinishPrompt, nil)
}

func (v *socketView) ShowResults(results []symptom.ScoreResult, source selfcheck.Source) {
	entries := make([]ws.ResultEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, ws.ResultEntry{
			Condition:       r.Condition,
			Score:           r.Score,
			MatchedSymptoms: r.MatchedSymptoms,
			Precautions:     r.Precautions,
		})
	}
	v.emit(ws.TypeResults, ws.ResultsPayload{Source: string(source), Heading: selfcheck.MsgResultsHeading, Results: entries})
}
