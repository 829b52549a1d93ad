package playback

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/kaelstudio/motif/timeline"
)

// Drift thresholds past which the Controller reseeks a bound element
// rather than letting it free-run (spec.md 4.5 "Controller tick": "0.1 s
// playing, 0.05 s paused").
const (
	driftPlaying = 0.1
	driftPaused  = 0.05
)

// seekDeadline bounds how long Seek waits for a Decoder.Seek call to
// return before giving up on it for this frame (spec.md 4.5
// "Cancellation": "a 100 ms deadline").
const seekDeadline = 100 * time.Millisecond

// Controller is the Playback Scheduler's per-frame tick (spec.md 4.5
// "Controller tick"). It owns a Clock and a VideoPool, resolves which
// clips are active against a timeline.World, keeps bound media elements
// seeked to the right source time, and drives Warmup. Controller
// implements composition.FrameSource, so a composition.Pipeline can pull
// decoded frames from one directly.
type Controller struct {
	Logger *logrus.Logger

	Clock *Clock
	Pool  *VideoPool
	World *timeline.World

	LookBehind float64
	LookAhead  float64

	mu         sync.Mutex
	boundVideo timeline.MaterialID
	boundAudio timeline.MaterialID
	warmup     warmupQueue
}

// NewController constructs a Controller over world and pool, with a Clock
// sized to the timeline's current duration.
func NewController(world *timeline.World, pool *VideoPool, logger *logrus.Logger) *Controller {
	return &Controller{
		Logger:     logger,
		Clock:      NewClock(world.Duration()),
		Pool:       pool,
		World:      world,
		LookBehind: DefaultLookBehind,
		LookAhead:  DefaultLookAhead,
	}
}

// TickResult reports what Tick observed this frame.
type TickResult struct {
	// Ended is spec.md 4.5's "sentinel end-of-stream": true exactly once,
	// the frame playback reaches the end of the timeline.
	Ended bool
}

// Tick advances playback by one render frame (spec.md 4.5 "Controller
// tick"): checks for end-of-stream, rebinds the active video/audio
// elements, corrects drift, drives warmup, and starts/stops playback on
// the bound elements to match the Clock.
func (c *Controller) Tick(ctx context.Context) TickResult {
	if c.Clock.CheckEnded() {
		return TickResult{Ended: true}
	}

	t := c.Clock.CurrentTime()
	playing := c.Clock.IsPlaying()

	videoClip, hasVideo := c.activeMaterialClip(timeline.TrackVideo, t)
	audioClip, hasAudio := c.activeMaterialClip(timeline.TrackAudio, t)

	if hasVideo {
		c.rebindAndSeek(ctx, videoClip, t, playing, &c.boundVideo)
		if h, ok := c.Pool.Get(videoClip.MaterialID); ok {
			c.Pool.Decoder.SetPlaying(h, playing)
		}
	}
	if hasAudio {
		c.rebindAndSeek(ctx, audioClip, t, playing, &c.boundAudio)
		if h, ok := c.Pool.Get(audioClip.MaterialID); ok {
			c.Pool.Decoder.SetPlaying(h, playing)
		}
	}

	c.Warmup(ctx, WarmupContext{
		CurrentTime: t,
		IsPlaying:   playing,
		LookBehind:  c.LookBehind,
		LookAhead:   c.LookAhead,
	})

	return TickResult{}
}

// activeMaterialClip returns the active clip of kind at t, provided it
// actually carries a Material (text clips on an audio/video-kind track
// would be a modeling error, but HasMaterial guards it regardless).
func (c *Controller) activeMaterialClip(kind timeline.TrackKind, t float64) (timeline.Clip, bool) {
	for _, clip := range c.World.ActiveClipsByKind(kind, t) {
		if clip.HasMaterial {
			return clip, true
		}
	}
	return timeline.Clip{}, false
}

func (c *Controller) rebindAndSeek(ctx context.Context, clip timeline.Clip, t float64, playing bool, bound *timeline.MaterialID) {
	if *bound != clip.MaterialID {
		if mat, ok := c.World.Material(clip.MaterialID); ok {
			if err := c.Pool.Preload(ctx, clip.MaterialID, mat.Primary); err != nil && c.Logger != nil {
				c.Logger.WithError(err).
					WithField("material", clip.MaterialID.String()).
					Warn("playback: rebind preload failed")
			}
		}
		*bound = clip.MaterialID
	}

	h, ok := c.Pool.Get(clip.MaterialID)
	if !ok {
		return
	}
	desired := clip.SourceTime(t)
	drift := driftPlaying
	if !playing {
		drift = driftPaused
	}
	if math.Abs(c.Pool.Decoder.CurrentTime(h)-desired) > drift {
		if err := c.Pool.Decoder.Seek(h, desired); err != nil && c.Logger != nil {
			c.Logger.WithError(err).
				WithField("material", clip.MaterialID.String()).
				Warn("playback: drift-correction seek failed")
		}
	}
}

// Seek moves the playhead to t and reseeks the currently active elements,
// each bounded by seekDeadline (spec.md 4.5 "Cancellation": "seek mid-play
// triggers: clock.seek -> element seeks -> await ... or a 100 ms
// deadline").
func (c *Controller) Seek(ctx context.Context, t float64) {
	c.Clock.Seek(t)

	seekCtx, cancel := context.WithTimeout(ctx, seekDeadline)
	defer cancel()

	for _, kind := range [2]timeline.TrackKind{timeline.TrackVideo, timeline.TrackAudio} {
		clip, ok := c.activeMaterialClip(kind, t)
		if !ok {
			continue
		}
		h, ok := c.Pool.Get(clip.MaterialID)
		if !ok {
			continue
		}
		done := make(chan error, 1)
		go func() { done <- c.Pool.Decoder.Seek(h, clip.SourceTime(t)) }()
		select {
		case err := <-done:
			if err != nil && c.Logger != nil {
				c.Logger.WithError(err).Warn("playback: seek failed")
			}
		case <-seekCtx.Done():
			if c.Logger != nil {
				c.Logger.WithField("material", clip.MaterialID.String()).
					Warn("playback: seek deadline exceeded")
			}
		}
	}
}

// FrameAt implements composition.FrameSource: the Controller keeps its
// bound elements seeked to the right source time via Tick, so serving a
// frame is just "the ready handle's current surface, if id has one".
func (c *Controller) FrameAt(id timeline.MaterialID, sourceTime float64) (*ebiten.Image, bool) {
	h, ok := c.Pool.Get(id)
	if !ok {
		return nil, false
	}
	return c.Pool.Decoder.Frame(h)
}
