package selfcheck

import (
	"github.com/mentallify/assistant/internal/symptom"
)

// State of a self-check session.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "idle"
	}
}

// Session is one self-check run. Index is the next unanswered question and
// equals len(Questions) once every question has been answered.
type Session struct {
	ID        uint64
	State     State
	Questions []symptom.Question
	Index     int
	Symptoms  []string
}

// Engine is the self-check state machine. It owns at most one session;
// Start replaces it wholesale. Engine is not safe for concurrent use; the
// Controller serialises access.
type Engine struct {
	nextID  uint64
	current *Session
}

// NewEngine returns an idle engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Start discards any previous session and begins a new one.
func (e *Engine) Start(questions []symptom.Question) (uint64, error) {
	if len(questions) == 0 {
		return 0, ErrEmptyQuestionBank
	}
	e.nextID++
	qs := make([]symptom.Question, len(questions))
	copy(qs, questions)
	e.current = &Session{
		ID:        e.nextID,
		State:     StateRunning,
		Questions: qs,
		Symptoms:  []string{},
	}
	return e.nextID, nil
}

// Answer records the answer to the current question and advances by one.
func (e *Engine) Answer(yes bool) error {
	s := e.current
	if s == nil || s.State != StateRunning || s.Index >= len(s.Questions) {
		return ErrNotActive
	}
	if yes {
		key := s.Questions[s.Index].SymptomKey
		if key != "" && !containsKey(s.Symptoms, key) {
			s.Symptoms = append(s.Symptoms, key)
		}
	}
	s.Index++
	return nil
}

// IsComplete reports whether every question has been answered.
func (e *Engine) IsComplete() bool {
	return e.current != nil && e.current.Index == len(e.current.Questions)
}

// Active reports whether a session is running.
func (e *Engine) Active() bool {
	return e.current != nil && e.current.State == StateRunning
}

// Finish completes the running session, early or not, and returns a copy of
// the collected symptom keys.
func (e *Engine) Finish() ([]string, error) {
	if !e.Active() {
		return nil, ErrNotActive
	}
	e.current.State = StateCompleted
	out := make([]string, len(e.current.Symptoms))
	copy(out, e.current.Symptoms)
	return out, nil
}

// Abort returns a running session to idle without scoring it.
func (e *Engine) Abort() bool {
	if !e.Active() {
		return false
	}
	e.current.State = StateIdle
	return true
}

// SessionID is the identity of the current session, 0 when there is none.
func (e *Engine) SessionID() uint64 {
	if e.current == nil {
		return 0
	}
	return e.current.ID
}

// Question returns the next unanswered question of the running session.
func (e *Engine) Question() (symptom.Question, bool) {
	if !e.Active() || e.current.Index >= len(e.current.Questions) {
		return symptom.Question{}, false
	}
	return e.current.Questions[e.current.Index], true
}

// Progress returns answered and total question counts.
func (e *Engine) Progress() (completed, total int) {
	if e.current == nil {
		return 0, 0
	}
	return e.current.Index, len(e.current.Questions)
}

// Snapshot returns a copy of the current session.
func (e *Engine) Snapshot() Session {
	if e.current == nil {
		return Session{}
	}
	s := *e.current
	s.Questions = append([]symptom.Question(nil), e.current.Questions...)
	s.Symptoms = append([]string{}, e.current.Symptoms...)
	return s
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
