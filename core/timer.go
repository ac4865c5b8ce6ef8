package core

// timerEpsilon absorbs float accumulation error so a period reached by
// repeated equal steps fires on the step that reaches it
const timerEpsilon = 1e-9

// Timer accumulates elapsed time against a period
// Units are whatever the caller feeds in (seconds or milliseconds), a zero Period never fires
type Timer struct {
	Elapsed float64
	Period  float64
}

// NewTimer returns a timer with zero elapsed time
func NewTimer(period float64) Timer {
	return Timer{Period: period}
}

// Step advances the timer by dt and reports whether the period was reached
// A fired timer restarts from zero, any overshoot is discarded
func (t Timer) Step(dt float64) (Timer, bool) {
	if dt > 0 {
		t.Elapsed += dt
	}
	if t.Period > 0 && t.Elapsed+timerEpsilon >= t.Period {
		t.Elapsed = 0
		return t, true
	}
	return t, false
}

// Reset returns the timer with elapsed time cleared
func (t Timer) Reset() Timer {
	t.Elapsed = 0
	return t
}

// Progress returns elapsed/period clamped to [0,1]
func (t Timer) Progress() float64 {
	if t.Period <= 0 {
		return 0
	}
	p := t.Elapsed / t.Period
	if p > 1 {
		return 1
	}
	return p
}
