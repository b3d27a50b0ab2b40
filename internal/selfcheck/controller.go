package selfcheck

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mentallify/assistant/internal/metrics"
	"github.com/mentallify/assistant/internal/symptom"
)

// DefaultAutoStartDelay separates a clarifying reply from the automatic start.
const DefaultAutoStartDelay = 700 * time.Millisecond

// DefaultStartCommands start a session when typed outside one.
var DefaultStartCommands = []string{"self-check", "start self-check", "start quiz", "self check"}

// ChatSource answers free-text messages remotely.
type ChatSource interface {
	Chat(ctx context.Context, message string) (string, error)
}

type Options struct {
	QuestionCount  int
	AutoStartDelay time.Duration
	StartCommands  []string
}

// Controller routes user input to the chat path or the running self-check and
// renders everything through a View. It is safe for concurrent use; its lock
// is never held across remote calls.
type Controller struct {
	mu         sync.Mutex
	view       View
	engine     *Engine
	tracker    *Tracker
	bank       *QuestionBank
	scorer     *Scorer
	chat       ChatSource
	classifier *symptom.Classifier
	polarity   *PolarityClassifier
	logger     zerolog.Logger

	questionCount  int
	autoStartDelay time.Duration
	startCommands  map[string]struct{}

	// ticket changes on every start request and abort; a question load that
	// returns under an older ticket is dropped.
	ticket uint64
	// liveSession is the only session whose results may still be rendered.
	liveSession uint64

	pending    *time.Timer
	pendingSeq uint64
	closed     bool
	timers     sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewController wires a controller. chat may be nil, in which case every
// free-text message is answered by the keyword classifier.
func NewController(view View, bank *QuestionBank, scorer *Scorer, chat ChatSource, keywords symptom.KeywordSet, opts Options, logger zerolog.Logger) *Controller {
	if opts.QuestionCount <= 0 {
		opts.QuestionCount = symptom.DefaultQuestionCount
	}
	if opts.AutoStartDelay <= 0 {
		opts.AutoStartDelay = DefaultAutoStartDelay
	}
	if len(opts.StartCommands) == 0 {
		opts.StartCommands = DefaultStartCommands
	}
	commands := make(map[string]struct{}, len(opts.StartCommands))
	for _, cmd := range opts.StartCommands {
		commands[strings.ToLower(strings.TrimSpace(cmd))] = struct{}{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		view:           view,
		engine:         NewEngine(),
		tracker:        NewTracker(view),
		bank:           bank,
		scorer:         scorer,
		chat:           chat,
		classifier:     symptom.NewClassifier(keywords),
		polarity:       NewPolarityClassifier(keywords.Affirmative, keywords.Negative, keywords.Unsure),
		logger:         logger.With().Str("component", "selfcheck").Logger(),
		questionCount:  opts.QuestionCount,
		autoStartDelay: opts.AutoStartDelay,
		startCommands:  commands,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// HandleInput processes one typed message. A yes/no answer is checked against
// the running session and applied under a single lock, so a restart racing
// with the message never receives an answer typed for the previous session.
func (c *Controller) HandleInput(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	cmd := strings.ToLower(text)
	polarity := c.polarity.Classify(text)

	c.mu.Lock()
	if c.engine.Active() {
		id := c.engine.SessionID()
		switch cmd {
		case "finish":
			c.mu.Unlock()
			return c.finish(ctx, id)
		case "restart":
			c.mu.Unlock()
			return c.Restart(ctx)
		}
		defer c.mu.Unlock()
		switch polarity {
		case Affirmative:
			return c.answerLocked(true)
		case Negative:
			return c.answerLocked(false)
		default:
			c.view.Say(MsgReprompt)
			return ErrInvalidAnswer
		}
	}
	c.mu.Unlock()

	if _, ok := c.startCommands[cmd]; ok {
		return c.Start(ctx)
	}
	return c.converse(ctx, text)
}

// Answer records an explicit yes/no for the current question.
func (c *Controller) Answer(yes bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.answerLocked(yes)
}

func (c *Controller) answerLocked(yes bool) error {
	if err := c.engine.Answer(yes); err != nil {
		if c.engine.Active() && c.engine.IsComplete() {
			c.view.Say(MsgAllAnswered)
			c.view.OfferFinish()
		} else {
			c.view.Say(MsgNotActive)
		}
		return err
	}
	c.advanceLocked()
	return nil
}

// Start discards any previous session and begins a new one.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.cancelPendingLocked()
	c.dropSessionLocked()
	c.ticket++
	ticket := c.ticket
	c.mu.Unlock()

	questions, source := c.bank.Load(ctx, c.questionCount)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || ticket != c.ticket {
		c.logger.Debug().Uint64("ticket", ticket).Msg("discarding superseded question load")
		return nil
	}
	id, err := c.engine.Start(questions)
	if err != nil {
		c.logger.Error().Err(err).Msg("cannot start self-check")
		c.view.Say(MsgCannotStart)
		return err
	}
	c.liveSession = id
	metrics.Session(metrics.EventStarted)
	c.logger.Info().
		Uint64("session_id", id).
		Str("source", string(source)).
		Int("questions", len(questions)).
		Msg("self-check started")

	c.view.Say(MsgIntro)
	c.advanceLocked()
	return nil
}

// Restart abandons the current session and starts over.
func (c *Controller) Restart(ctx context.Context) error {
	return c.Start(ctx)
}

// Finish scores the running session, early or complete. Results that arrive
// after the session was replaced are dropped.
func (c *Controller) Finish(ctx context.Context) error {
	return c.finish(ctx, 0)
}

// finish scores the running session when it is session want; zero accepts
// whichever session is running.
func (c *Controller) finish(ctx context.Context, want uint64) error {
	c.mu.Lock()
	if want != 0 && (!c.engine.Active() || c.engine.SessionID() != want) {
		c.view.Say(MsgNotActive)
		c.mu.Unlock()
		return ErrNotActive
	}
	symptoms, err := c.engine.Finish()
	if err != nil {
		c.view.Say(MsgNotActive)
		c.mu.Unlock()
		return err
	}
	id := c.engine.SessionID()
	c.view.Say(MsgChecking)
	c.mu.Unlock()

	results, source := c.scorer.Score(ctx, symptoms)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.liveSession != id {
		c.logger.Debug().Uint64("session_id", id).Msg("discarding stale results")
		return nil
	}
	c.liveSession = 0
	metrics.Session(metrics.EventCompleted)
	c.logger.Info().
		Uint64("session_id", id).
		Str("source", string(source)).
		Int("symptoms", len(symptoms)).
		Msg("self-check finished")

	if source == SourceLocal && c.scorer.remote != nil {
		c.view.Say(MsgScoringFailed)
	}
	top := symptom.Top(results, symptom.TopResults)
	c.view.ClearProgress()
	c.view.ShowResults(top, source)
	if len(top) == 0 {
		c.view.Say(MsgNoMatches)
	}
	return nil
}

// Abort stops the running session and cancels any pending automatic start.
func (c *Controller) Abort() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPendingLocked()
	c.dropSessionLocked()
	c.ticket++
}

// Close aborts outstanding work and waits for timer callbacks to return.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.cancelPendingLocked()
	c.mu.Unlock()
	c.cancel()
	c.timers.Wait()
}

// Snapshot returns a copy of the current session.
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Snapshot()
}

func (c *Controller) converse(ctx context.Context, text string) error {
	var reply string
	if c.chat != nil {
		r, err := c.chat.Chat(ctx, text)
		if err != nil {
			c.logger.Warn().Err(&TransportError{Op: "chat", Err: err}).Msg("answering locally")
			metrics.Fallback(metrics.PathChat)
		} else {
			reply = r
		}
	}
	if strings.TrimSpace(reply) == "" {
		reply = c.classifier.Reply(text)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.view.Say(reply)
	c.scheduleAutoStartLocked(reply)
	return nil
}

// scheduleAutoStartLocked arms at most one automatic start after a
// clarifying reply.
func (c *Controller) scheduleAutoStartLocked(reply string) {
	if c.engine.Active() || c.pending != nil || !c.classifier.IsClarifyingQuestion(reply) {
		return
	}
	c.pendingSeq++
	seq := c.pendingSeq
	c.timers.Add(1)
	c.pending = time.AfterFunc(c.autoStartDelay, func() {
		defer c.timers.Done()
		c.mu.Lock()
		if c.closed || c.pending == nil || c.pendingSeq != seq || c.engine.Active() {
			c.mu.Unlock()
			return
		}
		c.pending = nil
		c.mu.Unlock()
		if err := c.Start(c.ctx); err != nil {
			c.logger.Warn().Err(err).Msg("automatic self-check start failed")
		}
	})
}

func (c *Controller) cancelPendingLocked() {
	if c.pending == nil {
		return
	}
	if c.pending.Stop() {
		c.timers.Done()
	}
	c.pending = nil
}

func (c *Controller) dropSessionLocked() {
	if c.engine.Abort() {
		metrics.Session(metrics.EventAborted)
	}
	c.liveSession = 0
	c.tracker.Reset()
	c.view.ClearProgress()
}

func (c *Controller) advanceLocked() {
	completed, total := c.engine.Progress()
	c.tracker.Update(completed, total)
	if c.engine.IsComplete() {
		c.view.Say(MsgAllAnswered)
		c.view.OfferFinish()
		return
	}
	if q, ok := c.engine.Question(); ok {
		c.view.AskQuestion(q, completed+1, total)
	}
}
