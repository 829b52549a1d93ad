package timeline

// TrackKind enumerates the track types a Timeline may contain.
type TrackKind uint8

const (
	TrackVideo TrackKind = iota
	TrackSticker
	TrackText
	TrackAudio
)

// Track is an ordered, non-overlapping collection of clips.
type Track struct {
	ID      TrackID
	Kind    TrackKind
	Name    string
	Muted   bool
	Locked  bool
	ClipIDs []ClipID
}
