package timeline

// MaterialKind enumerates the kinds of media a Material can wrap.
type MaterialKind uint8

const (
	MaterialVideo MaterialKind = iota
	MaterialAudio
	MaterialImage
	MaterialSticker
)

// ThumbnailSprite locates a preview frame in a shared sprite sheet, mirroring
// the way atlas.go packs many small images into one texture.
type ThumbnailSprite struct {
	AtlasURL string
	X, Y, W, H int
}

// MaterialSource names a playable handle for a Material: the primary stream
// plus any alternative renditions (e.g. a lower-bitrate fallback). Resolving
// a MaterialSource to bytes or a decode session is a host-application
// concern (spec.md names media decoding as an external collaborator); motif
// only carries the handle.
type MaterialSource struct {
	URL   string
	Label string // e.g. "1080p", "480p"; empty for the primary source
}

// Material is an opaque media asset referenced by zero or more clips.
type Material struct {
	ID                    MaterialID
	Kind                  MaterialKind
	Duration              float64
	Width, Height         int
	Primary               MaterialSource
	Alternatives          []MaterialSource
	Thumbnail             *ThumbnailSprite
}
