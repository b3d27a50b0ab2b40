package selfcheck

// Progress is the rendered position within a session.
type Progress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Fraction  float64 `json:"fraction"`
}

// ProgressView draws the progress indicator.
type ProgressView interface {
	ShowProgress(p Progress)
	Celebrate()
}

// ComputeFraction returns completed/total clamped to [0, 1], 0 when total is not positive.
func ComputeFraction(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	f := float64(completed) / float64(total)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Tracker renders progress and fires the completion celebration exactly once
// per transition into a full bar.
type Tracker struct {
	view ProgressView
	last float64
}

func NewTracker(view ProgressView) *Tracker {
	return &Tracker{view: view}
}

// Update renders completed/total and reports whether the celebration fired.
// Completed is clamped to [0, total] like the fraction.
func (t *Tracker) Update(completed, total int) bool {
	if total < 0 {
		total = 0
	}
	completed = min(max(completed, 0), total)
	p := Progress{Completed: completed, Total: total, Fraction: ComputeFraction(completed, total)}
	t.view.ShowProgress(p)
	fire := p.Fraction >= 1 && t.last < 1
	t.last = p.Fraction
	if fire {
		t.view.Celebrate()
	}
	return fire
}

// Reset re-arms the celebration for a new session.
func (t *Tracker) Reset() {
	t.last = 0
}
