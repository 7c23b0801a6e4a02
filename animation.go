package avatar

import "time"

// PulseDuration is the total length of the long-press pulse, split evenly
// between the grow and shrink phases.
const PulseDuration = 300 * time.Millisecond

// defaultFrameInterval is used by Pulse.Frames when no interval is given.
const defaultFrameInterval = 16 * time.Millisecond

// Phase identifies where a pulse is at a given elapsed time.
type Phase uint8

const (
	// PhaseGrow runs from the resting size up to twice the resting size.
	PhaseGrow Phase = iota

	// PhaseShrink runs back down to the resting size.
	PhaseShrink

	// PhaseDone means the pulse has finished.
	PhaseDone
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseGrow:
		return "grow"
	case PhaseShrink:
		return "shrink"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Pulse describes the size animation played on a long press: a linear
// grow from From to To followed by the same path in reverse.
//
// Pulse only computes values. The host owns the timer and feeds the sizes
// back to the widget through OnAnimationTick, OnAnimationRepeat and
// OnAnimationEnd, or hands the whole sequence to Widget.Play.
type Pulse struct {
	From     int
	To       int
	Duration time.Duration
}

// NewPulse returns the pulse for a widget whose resting size is resting.
func NewPulse(resting int) Pulse {
	return Pulse{From: resting, To: 2 * resting, Duration: PulseDuration}
}

func (p Pulse) half() time.Duration { return p.Duration / 2 }

// PhaseAt returns the phase at elapsed time since the pulse started.
func (p Pulse) PhaseAt(elapsed time.Duration) Phase {
	switch {
	case elapsed >= p.Duration:
		return PhaseDone
	case elapsed >= p.half():
		return PhaseShrink
	default:
		return PhaseGrow
	}
}

// SizeAt returns the animated size at elapsed time since the pulse started.
// Sizes are interpolated linearly and truncated toward From.
func (p Pulse) SizeAt(elapsed time.Duration) int {
	h := p.half()
	if h <= 0 || elapsed <= 0 || elapsed >= p.Duration {
		return p.From
	}
	var fraction float64
	if elapsed < h {
		fraction = float64(elapsed) / float64(h)
	} else {
		fraction = max(float64(2*h-elapsed)/float64(h), 0)
	}
	return p.From + int(fraction*float64(p.To-p.From))
}

// Frame is one value delivered by the animation driver.
type Frame struct {
	// Elapsed is the time since the pulse started.
	Elapsed time.Duration

	// Size is the animated size for this frame.
	Size int

	// Repeat is set on the first frame at or past the grow/shrink boundary.
	Repeat bool

	// End is set on the last frame.
	End bool
}

// Frames returns the finite, ordered sequence of frames a driver ticking
// every interval would deliver. The last frame lands exactly on Duration,
// carries the resting size and is marked End. Exactly one frame is marked
// Repeat. A non-positive interval selects 16ms.
func (p Pulse) Frames(interval time.Duration) []Frame {
	if interval <= 0 {
		interval = defaultFrameInterval
	}
	if p.Duration <= 0 {
		return []Frame{{Size: p.From, Repeat: true, End: true}}
	}

	frames := make([]Frame, 0, int(p.Duration/interval)+1)
	repeated := false
	for t := interval; ; t += interval {
		if t > p.Duration {
			t = p.Duration
		}
		f := Frame{Elapsed: t, Size: p.SizeAt(t)}
		if !repeated && t >= p.half() {
			f.Repeat = true
			repeated = true
		}
		if t == p.Duration {
			f.End = true
			frames = append(frames, f)
			return frames
		}
		frames = append(frames, f)
	}
}
