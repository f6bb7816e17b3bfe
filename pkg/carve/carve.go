// Package carve recovers MP3 streams from a buffer obfuscated with an
// unknown swap phase.
package carve

import (
	"context"
	"slices"

	"github.com/grafana/dskit/concurrency"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zachfi/mp3carve/pkg/mp3"
	"github.com/zachfi/mp3carve/pkg/swap"
)

var tracer = otel.Tracer("github.com/zachfi/mp3carve/pkg/carve")

// Stream is a run of frames recovered under one phase.
type Stream struct {
	Phase  int
	Offset int
	Frames int
	Data   []byte
}

func (s Stream) Len() int {
	return len(s.Data)
}

type Options struct {
	// Concurrency bounds the number of phases scanned at once. Values
	// below 1 scan every phase in parallel.
	Concurrency int
	// MinSize overrides the run length threshold when positive.
	MinSize int
}

// Carve tries every swap phase on buf and returns the recovered streams
// ordered by offset. Streams at the same offset keep phase order. buf is
// not modified; every phase works on its own copy.
func Carve(ctx context.Context, buf []byte, opts Options) ([]Stream, error) {
	ctx, span := tracer.Start(ctx, "Carve")
	defer span.End()

	phases := swap.Phases()

	workers := opts.Concurrency
	if workers < 1 || workers > len(phases) {
		workers = len(phases)
	}

	extractor := &mp3.Extractor{MinSize: opts.MinSize}
	results := make([][]Stream, len(phases))

	err := concurrency.ForEachJob(ctx, len(phases), workers, func(ctx context.Context, idx int) error {
		phase := phases[idx]

		_, span := tracer.Start(ctx, "Carve.phase")
		span.SetAttributes(attribute.Int("phase", phase))
		defer span.End()

		runs := extractor.Extract(swap.Deobfuscate(buf, phase))

		streams := make([]Stream, 0, len(runs))
		for _, r := range runs {
			streams = append(streams, Stream{
				Phase:  phase,
				Offset: r.Offset,
				Frames: mp3.CountFrames(r.Data),
				Data:   r.Data,
			})
		}
		results[idx] = streams

		span.SetAttributes(attribute.Int("streams", len(streams)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return merge(results), nil
}

func merge(results [][]Stream) []Stream {
	var out []Stream
	for _, r := range results {
		out = append(out, r...)
	}

	slices.SortStableFunc(out, func(a, b Stream) int {
		return a.Offset - b.Offset
	})

	return out
}
