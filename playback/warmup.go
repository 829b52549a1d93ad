package playback

import (
	"context"
	"math"
	"runtime"
	"sort"

	"github.com/kaelstudio/motif/timeline"
)

// Default lookbehind/lookahead windows for the warmup priority scan
// (spec.md 4.5 "Warmup": "default 1 s, 3 s").
const (
	DefaultLookBehind = 1.0
	DefaultLookAhead  = 3.0
)

// WarmupContext is the snapshot a Warmup pass ranks clips against
// (spec.md 4.5 "Warmup": "context = {currentTime, isPlaying, all video
// clips, transitions' adjacent clips}"). IsPlaying is accepted for parity
// with the source design; the current scan treats playing and paused
// scrubbing identically (both want nearby material warm).
type WarmupContext struct {
	CurrentTime float64
	IsPlaying   bool
	LookBehind  float64 // 0 means DefaultLookBehind
	LookAhead   float64 // 0 means DefaultLookAhead
}

// warmupItem is one candidate in the priority list Warmup builds.
type warmupItem struct {
	materialID timeline.MaterialID
	priority   int     // 0 = transition-adjacent (highest)
	future     bool    // clips starting at/after now rank before past clips
	distance   float64 // |clip.StartTime - now|, tiebreaker within a band
}

// warmupQueue holds the pending preload plan plus the monotonic
// cancellation token (spec.md 4.5 "Warmup" step 4: "cancelWarmup bumps a
// monotonic token; running task aborts at next yield"), generalized from
// the scrollAnim tween-replacement idiom (camera.go) from "replace a
// pointer" to "bump a token checked at yield points".
type warmupQueue struct {
	items   []warmupItem
	token   int
	running bool
}

// Warmup rebuilds the priority list and, if no pump task is already
// running, starts one (spec.md 4.5 "Warmup" steps 1-3).
func (c *Controller) Warmup(ctx context.Context, wctx WarmupContext) {
	items := c.buildWarmupPriority(wctx)

	c.mu.Lock()
	c.warmup.items = items
	token := c.warmup.token
	alreadyRunning := c.warmup.running
	c.warmup.running = true
	c.mu.Unlock()

	if alreadyRunning {
		return
	}
	go c.pumpWarmup(ctx, token)
}

// CancelWarmup bumps the token so the running pump task aborts at its next
// yield point and drops the pending queue (spec.md 4.5 "Warmup" step 4).
func (c *Controller) CancelWarmup() {
	c.mu.Lock()
	c.warmup.token++
	c.warmup.items = nil
	c.mu.Unlock()
}

func (c *Controller) pumpWarmup(ctx context.Context, token int) {
	for {
		c.mu.Lock()
		if c.warmup.token != token || len(c.warmup.items) == 0 {
			c.warmup.running = false
			c.mu.Unlock()
			return
		}
		item := c.warmup.items[0]
		c.warmup.items = c.warmup.items[1:]
		c.mu.Unlock()

		var source timeline.MaterialSource
		if mat, ok := c.World.Material(item.materialID); ok {
			source = mat.Primary
		}
		if err := c.Pool.Preload(ctx, item.materialID, source); err != nil && c.Logger != nil {
			c.Logger.WithError(err).
				WithField("material", item.materialID.String()).
				Debug("playback: warmup preload failed")
		}
		// Yield between items so warmup never monopolizes the scheduler
		// (spec.md 4.5: "single-task guarantee prevents pool thrash").
		runtime.Gosched()
	}
}

// buildWarmupPriority ranks transition-adjacent clips first, then clips
// whose window intersects [now-lookBehind, now+lookAhead], futures before
// pasts, closer before farther (spec.md 4.5 "Warmup" step 1).
func (c *Controller) buildWarmupPriority(wctx WarmupContext) []warmupItem {
	adjacent := make(map[timeline.MaterialID]bool)
	for _, tr := range c.World.Transitions() {
		for _, cid := range [2]timeline.ClipID{tr.ClipA, tr.ClipB} {
			if clip, ok := c.World.Clip(cid); ok && clip.HasMaterial {
				adjacent[clip.MaterialID] = true
			}
		}
	}

	lookBehind, lookAhead := wctx.LookBehind, wctx.LookAhead
	if lookBehind <= 0 {
		lookBehind = DefaultLookBehind
	}
	if lookAhead <= 0 {
		lookAhead = DefaultLookAhead
	}
	windowStart := wctx.CurrentTime - lookBehind
	windowEnd := wctx.CurrentTime + lookAhead

	seen := make(map[timeline.MaterialID]bool)
	var items []warmupItem

	consider := func(clip timeline.Clip) {
		if !clip.HasMaterial || seen[clip.MaterialID] || c.Pool.Has(clip.MaterialID) {
			return // already loaded or pending (step 2)
		}
		seen[clip.MaterialID] = true
		priority := 1
		if adjacent[clip.MaterialID] {
			priority = 0
		}
		items = append(items, warmupItem{
			materialID: clip.MaterialID,
			priority:   priority,
			future:     clip.StartTime >= wctx.CurrentTime,
			distance:   math.Abs(clip.StartTime - wctx.CurrentTime),
		})
	}

	for _, clip := range c.clipsByKind(timeline.TrackVideo) {
		if adjacent[clip.MaterialID] {
			consider(clip)
			continue
		}
		if clip.End() < windowStart || clip.StartTime > windowEnd {
			continue
		}
		consider(clip)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].priority != items[j].priority {
			return items[i].priority < items[j].priority
		}
		if items[i].future != items[j].future {
			return items[i].future
		}
		return items[i].distance < items[j].distance
	})
	return items
}

// clipsByKind returns every clip on every track of the given kind,
// regardless of whether it is active at any particular time (unlike
// timeline.World.ActiveClipsByKind, which filters by a single instant).
func (c *Controller) clipsByKind(kind timeline.TrackKind) []timeline.Clip {
	var out []timeline.Clip
	for _, tr := range c.World.Tracks() {
		if tr.Kind != kind {
			continue
		}
		for _, cid := range tr.ClipIDs {
			if clip, ok := c.World.Clip(cid); ok {
				out = append(out, clip)
			}
		}
	}
	return out
}
