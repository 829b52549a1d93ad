package history

import (
	"github.com/sirupsen/logrus"

	"github.com/kaelstudio/motif/timeline"
)

// AddTrackCommand adds a track on Execute and removes it on Undo.
type AddTrackCommand struct {
	base
	world   *timeline.World
	logger  *logrus.Logger
	kind    timeline.TrackKind
	name    string
	trackID timeline.TrackID
}

func NewAddTrackCommand(h *History, world *timeline.World, logger *logrus.Logger, kind timeline.TrackKind, name string) *AddTrackCommand {
	return &AddTrackCommand{
		base:   newBase(h.NewID(), "Add Track", h.Now()),
		world:  world,
		logger: logger,
		kind:   kind,
		name:   name,
	}
}

// TrackID returns the id of the track this command most recently created.
func (c *AddTrackCommand) TrackID() timeline.TrackID { return c.trackID }

func (c *AddTrackCommand) Execute() {
	c.trackID = c.world.AddTrackDirect(c.kind, c.name)
}

func (c *AddTrackCommand) Undo() {
	if err := c.world.RemoveTrackDirect(c.trackID); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: AddTrackCommand undo failed")
	}
}

var _ Command = (*AddTrackCommand)(nil)

// RemoveTrackCommand removes a track (and, with it, every clip the World
// itself frees as part of removal) on Execute, and restores the track and
// its clips on Undo.
type RemoveTrackCommand struct {
	base
	world    *timeline.World
	logger   *logrus.Logger
	trackID  timeline.TrackID
	snapshot timeline.Track
	clips    []timeline.Clip
}

func NewRemoveTrackCommand(h *History, world *timeline.World, logger *logrus.Logger, trackID timeline.TrackID) *RemoveTrackCommand {
	return &RemoveTrackCommand{
		base:    newBase(h.NewID(), "Remove Track", h.Now()),
		world:   world,
		logger:  logger,
		trackID: trackID,
	}
}

func (c *RemoveTrackCommand) Execute() {
	if track, ok := c.world.Track(c.trackID); ok {
		c.snapshot = track
		c.clips = c.clips[:0]
		for _, id := range track.ClipIDs {
			if clip, ok := c.world.Clip(id); ok {
				c.clips = append(c.clips, clip)
			}
		}
	}
	if err := c.world.RemoveTrackDirect(c.trackID); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: RemoveTrackCommand execute failed")
	}
}

func (c *RemoveTrackCommand) Undo() {
	c.trackID = c.world.AddTrackDirect(c.snapshot.Kind, c.snapshot.Name)
	if c.snapshot.Muted {
		_, _ = c.world.ToggleTrackMuteDirect(c.trackID)
	}
	if c.snapshot.Locked {
		_, _ = c.world.ToggleTrackLockDirect(c.trackID)
	}
	for _, s := range c.clips {
		created, err := c.world.AddClipDirect(c.trackID, timeline.ClipDraft{
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
				c.logger.WithError(err).Warn("history: RemoveTrackCommand undo failed restoring a clip")
			}
			continue
		}
		_ = c.world.UpdateClipDirect(created.ID, func(cl *timeline.Clip) {
			cl.Effects = append([]timeline.EffectInstance(nil), s.Effects...)
			cl.Subtitles = append([]timeline.Subtitle(nil), s.Subtitles...)
			cl.Filter = s.Filter
			cl.Animation = s.Animation
		})
	}
}

var _ Command = (*RemoveTrackCommand)(nil)

// ToggleTrackMuteCommand flips a track's Muted flag; self-inverse, so
// Undo just calls the same toggle again (spec.md 4.6 "Toggle*Command ...
// toggles are self-inverse").
type ToggleTrackMuteCommand struct {
	base
	world   *timeline.World
	logger  *logrus.Logger
	trackID timeline.TrackID
}

func NewToggleTrackMuteCommand(h *History, world *timeline.World, logger *logrus.Logger, trackID timeline.TrackID) *ToggleTrackMuteCommand {
	return &ToggleTrackMuteCommand{
		base:    newBase(h.NewID(), "Toggle Track Mute", h.Now()),
		world:   world,
		logger:  logger,
		trackID: trackID,
	}
}

func (c *ToggleTrackMuteCommand) Execute() { c.toggle() }
func (c *ToggleTrackMuteCommand) Undo()    { c.toggle() }

func (c *ToggleTrackMuteCommand) toggle() {
	if _, err := c.world.ToggleTrackMuteDirect(c.trackID); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: ToggleTrackMuteCommand failed")
	}
}

var _ Command = (*ToggleTrackMuteCommand)(nil)

// ToggleTrackLockCommand flips a track's Locked flag; self-inverse.
type ToggleTrackLockCommand struct {
	base
	world   *timeline.World
	logger  *logrus.Logger
	trackID timeline.TrackID
}

func NewToggleTrackLockCommand(h *History, world *timeline.World, logger *logrus.Logger, trackID timeline.TrackID) *ToggleTrackLockCommand {
	return &ToggleTrackLockCommand{
		base:    newBase(h.NewID(), "Toggle Track Lock", h.Now()),
		world:   world,
		logger:  logger,
		trackID: trackID,
	}
}

func (c *ToggleTrackLockCommand) Execute() { c.toggle() }
func (c *ToggleTrackLockCommand) Undo()    { c.toggle() }

func (c *ToggleTrackLockCommand) toggle() {
	if _, err := c.world.ToggleTrackLockDirect(c.trackID); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("history: ToggleTrackLockCommand failed")
	}
}

var _ Command = (*ToggleTrackLockCommand)(nil)
