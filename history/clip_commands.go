package history

import (
	"github.com/sirupsen/logrus"

	"github.com/kaelstudio/motif/timeline"
)

// ClipPatch is a partial clip update: a nil field means "leave this value
// alone." UpdateClipCommand and MoveClipCommand both apply/capture
// through it.
type ClipPatch struct {
	StartTime *float64
	Duration  *float64
	InPoint   *float64
	OutPoint  *float64
	Transform *timeline.StaticTransform
	Filter    *timeline.ClipFilter
	Text      *string
}

func (p ClipPatch) snapshot(c timeline.Clip) ClipPatch {
	var out ClipPatch
	if p.StartTime != nil {
		v := c.StartTime
		out.StartTime = &v
	}
	if p.Duration != nil {
		v := c.Duration
		out.Duration = &v
	}
	if p.InPoint != nil {
		v := c.InPoint
		out.InPoint = &v
	}
	if p.OutPoint != nil {
		v := c.OutPoint
		out.OutPoint = &v
	}
	if p.Transform != nil {
		v := c.Transform
		out.Transform = &v
	}
	if p.Filter != nil {
		v := c.Filter
		out.Filter = &v
	}
	if p.Text != nil {
		v := c.Text
		out.Text = &v
	}
	return out
}

func (p ClipPatch) apply(c *timeline.Clip) {
	if p.StartTime != nil {
		c.StartTime = *p.StartTime
	}
	if p.Duration != nil {
		c.Duration = *p.Duration
	}
	if p.InPoint != nil {
		c.InPoint = *p.InPoint
	}
	if p.OutPoint != nil {
		c.OutPoint = *p.OutPoint
	}
	if p.Transform != nil {
		c.Transform = *p.Transform
	}
	if p.Filter != nil {
		c.Filter = *p.Filter
	}
	if p.Text != nil {
		c.Text = *p.Text
	}
}

// unionPatch returns a patch with every field newer sets, falling back to
// older's for fields newer leaves nil.
func unionPatch(older, newer ClipPatch) ClipPatch {
	out := newer
	if out.StartTime == nil {
		out.StartTime = older.StartTime
	}
	if out.Duration == nil {
		out.Duration = older.Duration
	}
	if out.InPoint == nil {
		out.InPoint = older.InPoint
	}
	if out.OutPoint == nil {
		out.OutPoint = older.OutPoint
	}
	if out.Transform == nil {
		out.Transform = older.Transform
	}
	if out.Filter == nil {
		out.Filter = older.Filter
	}
	if out.Text == nil {
		out.Text = older.Text
	}
	return out
}

// AddClipCommand adds a clip to trackID on Execute and removes it on Undo
// (spec.md 4.6 "AddClipCommand"). Redo reinserts at the same resolved
// start time the first Execute landed on.
type AddClipCommand struct {
	base
	world   *timeline.World
	logger  *logrus.Logger
	trackID timeline.TrackID
	draft   timeline.ClipDraft
	clipID  timeline.ClipID
}

// NewAddClipCommand constructs an AddClipCommand. Call History.Execute
// with the result to apply and record it.
func NewAddClipCommand(h *History, world *timeline.World, logger *logrus.Logger, trackID timeline.TrackID, draft timeline.ClipDraft) *AddClipCommand {
	return &AddClipCommand{
		base:    newBase(h.NewID(), "Add Clip", h.Now()),
		world:   world,
		logger:  logger,
		trackID: trackID,
		draft:   draft,
	}
}

// ClipID returns the id of the clip this command most recently created.
func (c *AddClipCommand) ClipID() timeline.ClipID { return c.clipID }

func (c *AddClipCommand) Execute() {
	created, err := c.world.AddClipDirect(c.trackID, c.draft)
	if err != nil {
		if c.logger != nil {
			c.logger.WithError(err).Warn("history: AddClipCommand execute failed")
		}
		return
	}
	c.clipID = created.ID
	c.draft.StartTime = created.StartTime // pin so redo lands in the same place
}

func (c *AddClipCommand) Undo() {
	if err := c.world.RemoveClipDirect(c.clipID); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: AddClipCommand undo failed")
	}
}

var _ Command = (*AddClipCommand)(nil)

// RemoveClipCommand removes a clip on Execute and fully restores it
// (including effects, subtitles, filter, and animation) on Undo.
type RemoveClipCommand struct {
	base
	world    *timeline.World
	logger   *logrus.Logger
	clipID   timeline.ClipID
	snapshot timeline.Clip
}

func NewRemoveClipCommand(h *History, world *timeline.World, logger *logrus.Logger, clipID timeline.ClipID) *RemoveClipCommand {
	return &RemoveClipCommand{
		base:   newBase(h.NewID(), "Remove Clip", h.Now()),
		world:  world,
		logger: logger,
		clipID: clipID,
	}
}

func (c *RemoveClipCommand) Execute() {
	if snap, ok := c.world.Clip(c.clipID); ok {
		c.snapshot = snap
	}
	if err := c.world.RemoveClipDirect(c.clipID); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: RemoveClipCommand execute failed")
	}
}

func (c *RemoveClipCommand) Undo() {
	s := c.snapshot
	created, err := c.world.AddClipDirect(s.TrackID, timeline.ClipDraft{
		MaterialID:  s.MaterialID,
		HasMaterial: s.HasMaterial,
		StartTime:   s.StartTime,
		Duration:    s.Duration,
		InPoint:     s.InPoint,
		OutPoint:    s.OutPoint,
		Transform:   s.Transform,
		Text:        s.Text,
	})
	if err != nil {
		if c.logger != nil {
			c.logger.WithError(err).Warn("history: RemoveClipCommand undo failed")
		}
		return
	}
	c.clipID = created.ID
	_ = c.world.UpdateClipDirect(c.clipID, func(cl *timeline.Clip) {
		cl.Effects = append([]timeline.EffectInstance(nil), s.Effects...)
		cl.Subtitles = append([]timeline.Subtitle(nil), s.Subtitles...)
		cl.Filter = s.Filter
		cl.Animation = s.Animation
	})
}

var _ Command = (*RemoveClipCommand)(nil)

// UpdateClipCommand applies a partial update to a clip, capturing only the
// prior values of the fields being changed so Undo restores exactly those
// (spec.md 4.6 "UpdateClipCommand").
type UpdateClipCommand struct {
	base
	world     *timeline.World
	logger    *logrus.Logger
	clipID   timeline.ClipID
	patch    ClipPatch
	old      ClipPatch
	captured bool
}

func NewUpdateClipCommand(h *History, world *timeline.World, logger *logrus.Logger, clipID timeline.ClipID, patch ClipPatch) *UpdateClipCommand {
	return &UpdateClipCommand{
		base:   newBase(h.NewID(), "Update Clip", h.Now()),
		world:  world,
		logger: logger,
		clipID: clipID,
		patch:  patch,
	}
}

func (c *UpdateClipCommand) Execute() {
	if !c.captured {
		if clip, ok := c.world.Clip(c.clipID); ok {
			c.old = c.patch.snapshot(clip)
		}
		c.captured = true
	}
	if err := c.world.UpdateClipDirect(c.clipID, c.patch.apply); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: UpdateClipCommand execute failed")
	}
}

func (c *UpdateClipCommand) Undo() {
	if err := c.world.UpdateClipDirect(c.clipID, c.old.apply); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: UpdateClipCommand undo failed")
	}
}

// CanMergeWith reports whether other is an UpdateClipCommand on the same
// clip.
func (c *UpdateClipCommand) CanMergeWith(other Command) bool {
	o, ok := other.(*UpdateClipCommand)
	return ok && o.clipID == c.clipID
}

// MergeWith collapses c and other into one command: the union of both
// patches' new values (other's taking precedence where both set a field),
// but c's original oldValues preserved for any field it already captured.
func (c *UpdateClipCommand) MergeWith(other Command) Command {
	o := other.(*UpdateClipCommand)
	oOld := o.old
	if !o.captured {
		// History merges before other executes, so snapshot other's fields
		// now: the clip still holds their values from before other.
		if clip, ok := c.world.Clip(c.clipID); ok {
			oOld = o.patch.snapshot(clip)
		}
	}
	merged := &UpdateClipCommand{
		base:     newBase(c.id, c.desc, c.timestamp),
		world:    c.world,
		logger:   c.logger,
		clipID:   c.clipID,
		patch:    unionPatch(c.patch, o.patch),
		old:      unionPatch(oOld, c.old), // c's old wins where both captured it
		captured: c.captured || o.captured,
	}
	return merged
}

var _ Mergeable = (*UpdateClipCommand)(nil)

// MoveClipCommand relocates a clip to newStart, mergeable with another
// MoveClipCommand on the same clip (spec.md 4.6 "MoveClipCommand").
type MoveClipCommand struct {
	base
	world    *timeline.World
	logger   *logrus.Logger
	clipID   timeline.ClipID
	newStart float64
	oldStart float64
	captured bool
}

func NewMoveClipCommand(h *History, world *timeline.World, logger *logrus.Logger, clipID timeline.ClipID, newStart float64) *MoveClipCommand {
	return &MoveClipCommand{
		base:     newBase(h.NewID(), "Move Clip", h.Now()),
		world:    world,
		logger:   logger,
		clipID:   clipID,
		newStart: newStart,
	}
}

func (c *MoveClipCommand) Execute() {
	if !c.captured {
		if clip, ok := c.world.Clip(c.clipID); ok {
			c.oldStart = clip.StartTime
		}
		c.captured = true
	}
	if _, err := c.world.MoveClipDirect(c.clipID, c.newStart); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: MoveClipCommand execute failed")
	}
}

func (c *MoveClipCommand) Undo() {
	if _, err := c.world.MoveClipDirect(c.clipID, c.oldStart); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: MoveClipCommand undo failed")
	}
}

func (c *MoveClipCommand) CanMergeWith(other Command) bool {
	o, ok := other.(*MoveClipCommand)
	return ok && o.clipID == c.clipID
}

func (c *MoveClipCommand) MergeWith(other Command) Command {
	o := other.(*MoveClipCommand)
	return &MoveClipCommand{
		base:     newBase(c.id, c.desc, c.timestamp),
		world:    c.world,
		logger:   c.logger,
		clipID:   c.clipID,
		newStart: o.newStart,
		oldStart: c.oldStart,
		captured: true,
	}
}

var _ Mergeable = (*MoveClipCommand)(nil)

// SplitClipCommand splits a clip at splitTime into two, capturing the
// original so Undo can delete both halves and restore it (spec.md 4.6
// "SplitClipCommand").
type SplitClipCommand struct {
	base
	world     *timeline.World
	logger    *logrus.Logger
	clipID    timeline.ClipID
	splitTime float64
	original  timeline.Clip
	leftID    timeline.ClipID
	rightID   timeline.ClipID
}

func NewSplitClipCommand(h *History, world *timeline.World, logger *logrus.Logger, clipID timeline.ClipID, splitTime float64) *SplitClipCommand {
	return &SplitClipCommand{
		base:      newBase(h.NewID(), "Split Clip", h.Now()),
		world:     world,
		logger:    logger,
		clipID:    clipID,
		splitTime: splitTime,
	}
}

// LeftID and RightID return the two clip ids produced by the most recent
// Execute.
func (c *SplitClipCommand) LeftID() timeline.ClipID  { return c.leftID }
func (c *SplitClipCommand) RightID() timeline.ClipID { return c.rightID }

func (c *SplitClipCommand) Execute() {
	if snap, ok := c.world.Clip(c.clipID); ok {
		c.original = snap
	}
	left, right, err := c.world.SplitClipDirect(c.clipID, c.splitTime)
	if err != nil {
		if c.logger != nil {
			c.logger.WithError(err).Warn("history: SplitClipCommand execute failed")
		}
		return
	}
	c.leftID, c.rightID = left.ID, right.ID
}

func (c *SplitClipCommand) Undo() {
	_ = c.world.RemoveClipDirect(c.leftID)
	_ = c.world.RemoveClipDirect(c.rightID)
	s := c.original
	created, err := c.world.AddClipDirect(s.TrackID, timeline.ClipDraft{
		MaterialID:  s.MaterialID,
		HasMaterial: s.HasMaterial,
		StartTime:   s.StartTime,
		Duration:    s.Duration,
		InPoint:     s.InPoint,
		OutPoint:    s.OutPoint,
		Transform:   s.Transform,
		Text:        s.Text,
	})
	if err != nil {
		if c.logger != nil {
			c.logger.WithError(err).Warn("history: SplitClipCommand undo failed")
		}
		return
	}
	c.clipID = created.ID
	_ = c.world.UpdateClipDirect(c.clipID, func(cl *timeline.Clip) {
		cl.Effects = append([]timeline.EffectInstance(nil), s.Effects...)
		cl.Subtitles = append([]timeline.Subtitle(nil), s.Subtitles...)
		cl.Filter = s.Filter
		cl.Animation = s.Animation
	})
}

var _ Command = (*SplitClipCommand)(nil)
