package playback

import (
	"time"

	"github.com/kaelstudio/motif"
)

// Clock maps wallclock time onto timeline time (spec.md 4.5 "Clock"). It
// holds (startWallclock, startPosition, playbackRate, duration, isPlaying)
// exactly as spec.md names them; every field is mutated only through the
// methods below.
type Clock struct {
	startWallclock time.Time
	startPosition  float64
	rate           float64
	duration       float64
	playing        bool

	onEnded func()

	// now is overridable in tests; production callers get NewClock's
	// time.Now default.
	now func() time.Time
}

// NewClock constructs a paused Clock at position 0 with playbackRate 1.
func NewClock(duration float64) *Clock {
	return &Clock{duration: duration, rate: 1, now: time.Now}
}

// CurrentTime returns startPosition + (wallclockNow-startWallclock)*rate
// while playing, clamped to [0, duration]; the frozen startPosition while
// paused (spec.md 4.5 "Clock").
func (c *Clock) CurrentTime() float64 {
	if !c.playing {
		return c.startPosition
	}
	t := c.startPosition + c.now().Sub(c.startWallclock).Seconds()*c.rate
	switch {
	case t < 0:
		return 0
	case t > c.duration:
		return c.duration
	default:
		return t
	}
}

// Play resumes playback from the current frozen position, resetting the
// wallclock epoch.
func (c *Clock) Play() {
	if c.playing {
		return
	}
	c.startPosition = c.CurrentTime()
	c.startWallclock = c.now()
	c.playing = true
}

// Pause freezes the clock by sampling CurrentTime into startPosition.
func (c *Clock) Pause() {
	if !c.playing {
		return
	}
	c.startPosition = c.CurrentTime()
	c.playing = false
}

// Seek updates the clock's position and, if playing, resets the epoch so
// CurrentTime continues advancing from t.
func (c *Clock) Seek(t float64) {
	c.startPosition = motif.Clamp(t, 0, c.duration)
	if c.playing {
		c.startWallclock = c.now()
	}
}

// SetRate changes the playback rate (1 = normal speed).
func (c *Clock) SetRate(rate float64) {
	// Re-anchor first so the new rate only affects time from this instant
	// forward, not retroactively across the whole elapsed epoch.
	c.startPosition = c.CurrentTime()
	if c.playing {
		c.startWallclock = c.now()
	}
	c.rate = rate
}

func (c *Clock) Rate() float64       { return c.rate }
func (c *Clock) IsPlaying() bool     { return c.playing }
func (c *Clock) Duration() float64   { return c.duration }
func (c *Clock) SetDuration(d float64) {
	c.duration = d
}

// OnEnded registers the callback CheckEnded fires when playback reaches
// the end of the timeline.
func (c *Clock) OnEnded(fn func()) { c.onEnded = fn }

// CheckEnded returns true exactly once per play-through, the instant
// CurrentTime reaches duration while playing; it then rewinds the clock to
// 0, paused, and fires the onEnded callback (spec.md 4.5 "Clock").
func (c *Clock) CheckEnded() bool {
	if !c.playing || c.CurrentTime() < c.duration {
		return false
	}
	c.startPosition = 0
	c.playing = false
	if c.onEnded != nil {
		c.onEnded()
	}
	return true
}
