package export

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/kaelstudio/motif/composition"
	"github.com/kaelstudio/motif/playback"
	"github.com/kaelstudio/motif/timeline"
)

// Encoder receives composited frames in presentation order and produces
// the final container/codec bitstream. Encoding itself is a host concern
// (no different from playback.Decoder delegating decode to the host);
// Exporter only calls AddFrame/Finalize in order.
type Encoder interface {
	AddFrame(frame *ebiten.Image) error
	Finalize() ([]byte, error)
}

// AudioMixer renders the full mixed audio track offline, independent of
// the per-frame video loop (spec.md 6: "Mix audio offline via an
// audio-graph equivalent").
type AudioMixer interface {
	MixAudio(ctx context.Context, world *timeline.World) ([]byte, error)
}

// Options configures one export run (spec.md 6 "Export API").
type Options struct {
	Width, Height int
	FrameRate     float64
	VideoBitrate  int
	Quality       float64
}

// ProgressFunc reports export progress in [0, 0.99]; Run emits a final
// 1.0 after Finalize succeeds, per spec.md 6.
type ProgressFunc func(fraction float64)

// Result is what a completed (or aborted) export produced.
type Result struct {
	Video   []byte
	Audio   []byte
	Aborted bool
}

// Exporter owns an isolated composition.Pipeline and playback.VideoPool,
// used only for the duration of one Run, never shared with a live player
// (spec.md 5 "Shared-resource policy").
type Exporter struct {
	Logger *logrus.Logger

	pipeline *composition.Pipeline
	pool     *playback.VideoPool
	frames   *exportFrameSource
}

// NewExporter constructs an Exporter sized to opts, wrapping decoder in a
// VideoPool private to this export run.
func NewExporter(opts Options, decoder playback.Decoder, logger *logrus.Logger) *Exporter {
	pool := playback.NewVideoPool(playback.DefaultCapacity, decoder, logger)
	return &Exporter{
		Logger:   logger,
		pipeline: composition.NewPipeline(opts.Width, opts.Height, logger),
		pool:     pool,
		frames:   &exportFrameSource{pool: pool},
	}
}

// Destroy releases the export Pipeline's GPU resources and the pool's
// media handles.
func (e *Exporter) Destroy() {
	e.pipeline.Destroy()
	e.pool.Destroy()
}

// Run iterates frame i over [0, totalFrames), seek-syncing every active
// media element to timelineTime = i/rate before compositing and handing
// the frame to encoder, per spec.md 6's frame-exact iteration. Audio is
// mixed once, offline, via mixer (nil skips audio entirely). ctx
// cancellation is this package's abort(): checked once per frame, it
// exits the loop cleanly and still finalizes and returns whatever frames
// were already encoded (spec.md 5 "the export loop exits cleanly,
// finalizes, and returns the partial buffer").
func (e *Exporter) Run(ctx context.Context, world *timeline.World, rate float64, totalFrames int, encoder Encoder, mixer AudioMixer, progress ProgressFunc) (Result, error) {
	canvas := ebiten.NewImage(e.widthHeight())
	defer canvas.Dispose()

	var result Result
	for i := 0; i < totalFrames; i++ {
		select {
		case <-ctx.Done():
			result.Aborted = true
		default:
		}
		if result.Aborted {
			break
		}

		t := float64(i) / rate
		if err := e.seekActiveElements(ctx, world, t); err != nil && e.Logger != nil {
			e.Logger.WithError(err).WithField("frame", i).Warn("export: seek failed")
		}

		canvas.Clear()
		// globalTime == t: export has no wallclock to drive time-based
		// effects independently of the playhead, so the timeline time
		// stands in for it, keeping every run of the same export
		// deterministic.
		e.pipeline.Compose(world, t, t, e.frames, canvas)
		if err := encoder.AddFrame(canvas); err != nil {
			return result, fmt.Errorf("export: encode frame %d: %w", i, err)
		}

		if progress != nil && totalFrames > 0 {
			progress(0.99 * float64(i+1) / float64(totalFrames))
		}
	}

	if mixer != nil && !result.Aborted {
		audio, err := mixer.MixAudio(ctx, world)
		if err != nil {
			return result, fmt.Errorf("export: mix audio: %w", err)
		}
		result.Audio = audio
	}

	video, err := encoder.Finalize()
	if err != nil {
		return result, fmt.Errorf("export: finalize: %w", err)
	}
	result.Video = video

	if progress != nil && !result.Aborted {
		progress(1.0)
	}
	return result, nil
}

func (e *Exporter) widthHeight() (int, int) {
	w, h := e.pipeline.Size()
	return w, h
}

// seekActiveElements preloads (if necessary) and seeks the media element
// for every clip active at t, across every track kind that carries
// materials.
func (e *Exporter) seekActiveElements(ctx context.Context, world *timeline.World, t float64) error {
	for _, kind := range [2]timeline.TrackKind{timeline.TrackVideo, timeline.TrackAudio} {
		for _, clip := range world.ActiveClipsByKind(kind, t) {
			if !clip.HasMaterial {
				continue
			}
			mat, ok := world.Material(clip.MaterialID)
			if !ok {
				continue
			}
			if !e.pool.Has(clip.MaterialID) {
				if err := e.pool.Preload(ctx, clip.MaterialID, mat.Primary); err != nil {
					return err
				}
			}
			h, ok := e.pool.Get(clip.MaterialID)
			if !ok {
				continue
			}
			if err := e.pool.Decoder.Seek(h, clip.SourceTime(t)); err != nil {
				return err
			}
		}
	}
	return nil
}
