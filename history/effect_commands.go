package history

import (
	"github.com/sirupsen/logrus"

	"github.com/kaelstudio/motif/timeline"
)

// AddEffectCommand attaches an effect to a clip on Execute, detaches it on
// Undo.
type AddEffectCommand struct {
	base
	world     *timeline.World
	logger    *logrus.Logger
	clipID    timeline.ClipID
	kind      timeline.EffectKind
	startTime float64
	duration  float64
	effectID  timeline.EffectID
}

func NewAddEffectCommand(h *History, world *timeline.World, logger *logrus.Logger, clipID timeline.ClipID, kind timeline.EffectKind, startTime, duration float64) *AddEffectCommand {
	return &AddEffectCommand{
		base:      newBase(h.NewID(), "Add Effect", h.Now()),
		world:     world,
		logger:    logger,
		clipID:    clipID,
		kind:      kind,
		startTime: startTime,
		duration:  duration,
	}
}

// EffectID returns the id of the effect instance this command most
// recently created.
func (c *AddEffectCommand) EffectID() timeline.EffectID { return c.effectID }

func (c *AddEffectCommand) Execute() {
	created, err := c.world.AddEffectDirect(c.clipID, c.kind, c.startTime, c.duration)
	if err != nil {
		if c.logger != nil {
			c.logger.WithError(err).Warn("history: AddEffectCommand execute failed")
		}
		return
	}
	c.effectID = created.ID
}

func (c *AddEffectCommand) Undo() {
	if err := c.world.RemoveEffectDirect(c.clipID, c.effectID); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: AddEffectCommand undo failed")
	}
}

var _ Command = (*AddEffectCommand)(nil)

// RemoveEffectCommand detaches an effect on Execute and restores the exact
// instance (intensity, params, envelopes, order) on Undo.
type RemoveEffectCommand struct {
	base
	world    *timeline.World
	logger   *logrus.Logger
	clipID   timeline.ClipID
	effectID timeline.EffectID
	snapshot timeline.EffectInstance
}

func NewRemoveEffectCommand(h *History, world *timeline.World, logger *logrus.Logger, clipID timeline.ClipID, effectID timeline.EffectID) *RemoveEffectCommand {
	return &RemoveEffectCommand{
		base:     newBase(h.NewID(), "Remove Effect", h.Now()),
		world:    world,
		logger:   logger,
		clipID:   clipID,
		effectID: effectID,
	}
}

func (c *RemoveEffectCommand) Execute() {
	if clip, ok := c.world.Clip(c.clipID); ok {
		for _, e := range clip.Effects {
			if e.ID == c.effectID {
				c.snapshot = e
				break
			}
		}
	}
	if err := c.world.RemoveEffectDirect(c.clipID, c.effectID); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: RemoveEffectCommand execute failed")
	}
}

func (c *RemoveEffectCommand) Undo() {
	s := c.snapshot
	created, err := c.world.AddEffectDirect(c.clipID, s.Kind, s.StartTime, s.Duration)
	if err != nil {
		if c.logger != nil {
			c.logger.WithError(err).Warn("history: RemoveEffectCommand undo failed")
		}
		return
	}
	c.effectID = created.ID
	_ = c.world.UpdateEffectDirect(c.clipID, c.effectID, func(e *timeline.EffectInstance) {
		e.Intensity = s.Intensity
		e.Params = s.Params
		e.Enter = s.Enter
		e.Exit = s.Exit
		e.Enabled = s.Enabled
		e.Order = s.Order
	})
}

var _ Command = (*RemoveEffectCommand)(nil)

// EffectPatch is a partial update to an effect instance, mirroring
// ClipPatch's nil-means-unchanged convention.
type EffectPatch struct {
	Intensity *float64
	Enter     *timeline.EffectTransition
	Exit      *timeline.EffectTransition
}

func (p EffectPatch) snapshot(e timeline.EffectInstance) EffectPatch {
	var out EffectPatch
	if p.Intensity != nil {
		v := e.Intensity
		out.Intensity = &v
	}
	if p.Enter != nil {
		v := e.Enter
		out.Enter = &v
	}
	if p.Exit != nil {
		v := e.Exit
		out.Exit = &v
	}
	return out
}

func (p EffectPatch) apply(e *timeline.EffectInstance) {
	if p.Intensity != nil {
		e.Intensity = *p.Intensity
	}
	if p.Enter != nil {
		e.Enter = *p.Enter
	}
	if p.Exit != nil {
		e.Exit = *p.Exit
	}
}

// UpdateEffectCommand applies a partial update to an effect instance.
type UpdateEffectCommand struct {
	base
	world    *timeline.World
	logger   *logrus.Logger
	clipID   timeline.ClipID
	effectID timeline.EffectID
	patch    EffectPatch
	old      EffectPatch
	captured bool
}

func NewUpdateEffectCommand(h *History, world *timeline.World, logger *logrus.Logger, clipID timeline.ClipID, effectID timeline.EffectID, patch EffectPatch) *UpdateEffectCommand {
	return &UpdateEffectCommand{
		base:     newBase(h.NewID(), "Update Effect", h.Now()),
		world:    world,
		logger:   logger,
		clipID:   clipID,
		effectID: effectID,
		patch:    patch,
	}
}

func (c *UpdateEffectCommand) Execute() {
	if !c.captured {
		if clip, ok := c.world.Clip(c.clipID); ok {
			for _, e := range clip.Effects {
				if e.ID == c.effectID {
					c.old = c.patch.snapshot(e)
					break
				}
			}
		}
		c.captured = true
	}
	if err := c.world.UpdateEffectDirect(c.clipID, c.effectID, c.patch.apply); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: UpdateEffectCommand execute failed")
	}
}

func (c *UpdateEffectCommand) Undo() {
	if err := c.world.UpdateEffectDirect(c.clipID, c.effectID, c.old.apply); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: UpdateEffectCommand undo failed")
	}
}

var _ Command = (*UpdateEffectCommand)(nil)

// UpdateEffectParamCommand sets one named effect parameter, capturing its
// prior value for Undo (spec.md 4.6 "UpdateEffectParamCommand").
type UpdateEffectParamCommand struct {
	base
	world    *timeline.World
	logger   *logrus.Logger
	clipID   timeline.ClipID
	effectID timeline.EffectID
	name     string
	value    float64
	oldValue float64
	captured bool
}

func NewUpdateEffectParamCommand(h *History, world *timeline.World, logger *logrus.Logger, clipID timeline.ClipID, effectID timeline.EffectID, name string, value float64) *UpdateEffectParamCommand {
	return &UpdateEffectParamCommand{
		base:     newBase(h.NewID(), "Update Effect Parameter", h.Now()),
		world:    world,
		logger:   logger,
		clipID:   clipID,
		effectID: effectID,
		name:     name,
		value:    value,
	}
}

func (c *UpdateEffectParamCommand) Execute() {
	if !c.captured {
		if clip, ok := c.world.Clip(c.clipID); ok {
			for _, e := range clip.Effects {
				if e.ID == c.effectID {
					c.oldValue = e.Params[c.name]
					break
				}
			}
		}
		c.captured = true
	}
	if err := c.world.UpdateEffectParamDirect(c.clipID, c.effectID, c.name, c.value); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: UpdateEffectParamCommand execute failed")
	}
}

func (c *UpdateEffectParamCommand) Undo() {
	if err := c.world.UpdateEffectParamDirect(c.clipID, c.effectID, c.name, c.oldValue); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: UpdateEffectParamCommand undo failed")
	}
}

func (c *UpdateEffectParamCommand) CanMergeWith(other Command) bool {
	o, ok := other.(*UpdateEffectParamCommand)
	return ok && o.clipID == c.clipID && o.effectID == c.effectID && o.name == c.name
}

func (c *UpdateEffectParamCommand) MergeWith(other Command) Command {
	o := other.(*UpdateEffectParamCommand)
	return &UpdateEffectParamCommand{
		base:     newBase(c.id, c.desc, c.timestamp),
		world:    c.world,
		logger:   c.logger,
		clipID:   c.clipID,
		effectID: c.effectID,
		name:     c.name,
		value:    o.value,
		oldValue: c.oldValue,
		captured: true,
	}
}

var _ Mergeable = (*UpdateEffectParamCommand)(nil)

// ToggleEffectCommand flips an effect's Enabled flag; self-inverse.
type ToggleEffectCommand struct {
	base
	world    *timeline.World
	logger   *logrus.Logger
	clipID   timeline.ClipID
	effectID timeline.EffectID
}

func NewToggleEffectCommand(h *History, world *timeline.World, logger *logrus.Logger, clipID timeline.ClipID, effectID timeline.EffectID) *ToggleEffectCommand {
	return &ToggleEffectCommand{
		base:     newBase(h.NewID(), "Toggle Effect", h.Now()),
		world:    world,
		logger:   logger,
		clipID:   clipID,
		effectID: effectID,
	}
}

func (c *ToggleEffectCommand) Execute() { c.toggle() }
func (c *ToggleEffectCommand) Undo()    { c.toggle() }

func (c *ToggleEffectCommand) toggle() {
	if _, err := c.world.ToggleEffectDirect(c.clipID, c.effectID); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: ToggleEffectCommand failed")
	}
}

var _ Command = (*ToggleEffectCommand)(nil)
