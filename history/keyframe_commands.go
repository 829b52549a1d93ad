package history

import (
	"github.com/sirupsen/logrus"

	"github.com/kaelstudio/motif/anim"
	"github.com/kaelstudio/motif/timeline"
)

// AddKeyframeCommand inserts a keyframe on a clip's animation track. When
// kf.ID is empty, the constructor generates the keyframe id once, so every
// redo re-adds the keyframe under the same id.
type AddKeyframeCommand struct {
	base
	world  *timeline.World
	logger *logrus.Logger
	clipID timeline.ClipID
	prop   anim.Property
	kf     anim.Keyframe
}

func NewAddKeyframeCommand(h *History, world *timeline.World, logger *logrus.Logger, clipID timeline.ClipID, prop anim.Property, kf anim.Keyframe) *AddKeyframeCommand {
	if kf.ID == "" {
		kf.ID = h.NewID()
	}
	return &AddKeyframeCommand{
		base:   newBase(h.NewID(), "Add Keyframe", h.Now()),
		world:  world,
		logger: logger,
		clipID: clipID,
		prop:   prop,
		kf:     kf,
	}
}

// KeyframeID returns the id of the keyframe this command adds.
func (c *AddKeyframeCommand) KeyframeID() string { return c.kf.ID }

func (c *AddKeyframeCommand) Execute() {
	if err := c.world.AddKeyframeDirect(c.clipID, c.prop, c.kf); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: AddKeyframeCommand execute failed")
	}
}

func (c *AddKeyframeCommand) Undo() {
	if err := c.world.RemoveKeyframeDirect(c.clipID, c.prop, c.kf.ID); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: AddKeyframeCommand undo failed")
	}
}

var _ Command = (*AddKeyframeCommand)(nil)

// RemoveKeyframeCommand removes a keyframe on Execute and restores it
// (same id, time, value, easing) on Undo.
type RemoveKeyframeCommand struct {
	base
	world      *timeline.World
	logger     *logrus.Logger
	clipID     timeline.ClipID
	prop       anim.Property
	keyframeID string
	snapshot   anim.Keyframe
}

func NewRemoveKeyframeCommand(h *History, world *timeline.World, logger *logrus.Logger, clipID timeline.ClipID, prop anim.Property, keyframeID string) *RemoveKeyframeCommand {
	return &RemoveKeyframeCommand{
		base:       newBase(h.NewID(), "Remove Keyframe", h.Now()),
		world:      world,
		logger:     logger,
		clipID:     clipID,
		prop:       prop,
		keyframeID: keyframeID,
	}
}

func (c *RemoveKeyframeCommand) Execute() {
	if clip, ok := c.world.Clip(c.clipID); ok {
		if track := clip.Animation.Track(c.prop); track != nil {
			for _, kf := range track.Keyframes {
				if kf.ID == c.keyframeID {
					c.snapshot = kf
					break
				}
			}
		}
	}
	if err := c.world.RemoveKeyframeDirect(c.clipID, c.prop, c.keyframeID); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: RemoveKeyframeCommand execute failed")
	}
}

func (c *RemoveKeyframeCommand) Undo() {
	if err := c.world.AddKeyframeDirect(c.clipID, c.prop, c.snapshot); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: RemoveKeyframeCommand undo failed")
	}
}

var _ Command = (*RemoveKeyframeCommand)(nil)

// UpdateKeyframeCommand applies fn-style field changes to an existing
// keyframe (time, value, or easing), capturing the prior values for Undo.
// Mergeable with another UpdateKeyframeCommand on the same keyframe.
type UpdateKeyframeCommand struct {
	base
	world      *timeline.World
	logger     *logrus.Logger
	clipID     timeline.ClipID
	prop       anim.Property
	keyframeID string
	newValue   anim.Keyframe // Time/Value/Easing carried; ID/ ignored on apply
	oldValue   anim.Keyframe
	captured   bool
}

// NewUpdateKeyframeCommand builds a command that overwrites the keyframe's
// Time/Value/Easing with updated (its ID field is ignored; the keyframe
// keeps its original id).
func NewUpdateKeyframeCommand(h *History, world *timeline.World, logger *logrus.Logger, clipID timeline.ClipID, prop anim.Property, keyframeID string, updated anim.Keyframe) *UpdateKeyframeCommand {
	return &UpdateKeyframeCommand{
		base:       newBase(h.NewID(), "Update Keyframe", h.Now()),
		world:      world,
		logger:     logger,
		clipID:     clipID,
		prop:       prop,
		keyframeID: keyframeID,
		newValue:   updated,
	}
}

func (c *UpdateKeyframeCommand) apply(kf *anim.Keyframe) {
	kf.Time = c.newValue.Time
	kf.Value = c.newValue.Value
	kf.Easing = c.newValue.Easing
}

func (c *UpdateKeyframeCommand) Execute() {
	if !c.captured {
		if clip, ok := c.world.Clip(c.clipID); ok {
			if track := clip.Animation.Track(c.prop); track != nil {
				for _, kf := range track.Keyframes {
					if kf.ID == c.keyframeID {
						c.oldValue = kf
						break
					}
				}
			}
		}
		c.captured = true
	}
	if err := c.world.UpdateKeyframeDirect(c.clipID, c.prop, c.keyframeID, c.apply); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: UpdateKeyframeCommand execute failed")
	}
}

func (c *UpdateKeyframeCommand) Undo() {
	old := c.oldValue
	err := c.world.UpdateKeyframeDirect(c.clipID, c.prop, c.keyframeID, func(kf *anim.Keyframe) {
		kf.Time = old.Time
		kf.Value = old.Value
		kf.Easing = old.Easing
	})
	if err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: UpdateKeyframeCommand undo failed")
	}
}

func (c *UpdateKeyframeCommand) CanMergeWith(other Command) bool {
	o, ok := other.(*UpdateKeyframeCommand)
	return ok && o.clipID == c.clipID && o.prop == c.prop && o.keyframeID == c.keyframeID
}

func (c *UpdateKeyframeCommand) MergeWith(other Command) Command {
	o := other.(*UpdateKeyframeCommand)
	return &UpdateKeyframeCommand{
		base:       newBase(c.id, c.desc, c.timestamp),
		world:      c.world,
		logger:     c.logger,
		clipID:     c.clipID,
		prop:       c.prop,
		keyframeID: c.keyframeID,
		newValue:   o.newValue,
		oldValue:   c.oldValue,
		captured:   true,
	}
}

var _ Mergeable = (*UpdateKeyframeCommand)(nil)
