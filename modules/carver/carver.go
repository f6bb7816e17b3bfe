package carver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/grafana/dskit/concurrency"
	"github.com/grafana/dskit/modules"
	"github.com/grafana/dskit/services"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zachfi/mp3carve/pkg/carve"
)

var module = "carver"

// ErrOutputCollision is returned when two inputs would write streams under
// the same names.
var ErrOutputCollision = errors.New("inputs share output names")

var tracer = otel.Tracer("github.com/zachfi/mp3carve/modules/carver")

// Carver recovers MP3 streams from every configured input file, then stops
// the process.
type Carver struct {
	services.Service
	cfg    *Config
	logger *slog.Logger
}

// New creates and returns a new Carver.
func New(cfg Config, logger slog.Logger) (*Carver, error) {
	if cfg.WriteBufferSize == 0 {
		cfg.WriteBufferSize = defaultWriteBufferSize
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}

	c := &Carver{
		cfg:    &cfg,
		logger: logger.With("module", module),
	}

	c.Service = services.NewBasicService(c.starting, c.running, c.stopping)

	return c, nil
}

func (c *Carver) starting(_ context.Context) error {
	if len(c.cfg.Inputs) == 0 {
		return errors.New("no input files")
	}

	outputs := make(map[string]string, len(c.cfg.Inputs))
	for _, in := range c.cfg.Inputs {
		info, err := os.Stat(in)
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fmt.Errorf("input %s is a directory", in)
		}

		name := filepath.Clean(c.outputPath(in, 1))
		if prev, ok := outputs[name]; ok {
			return fmt.Errorf("%w: %s and %s both write %s", ErrOutputCollision, prev, in, name)
		}
		outputs[name] = in
	}

	if c.cfg.Dir != "" && !c.cfg.DryRun {
		if err := os.MkdirAll(c.cfg.Dir, os.ModePerm); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	return nil
}

func (c *Carver) running(ctx context.Context) error {
	inputs := c.cfg.Inputs
	errs := make([]error, len(inputs))

	err := concurrency.ForEachJob(ctx, len(inputs), c.cfg.Concurrency, func(ctx context.Context, idx int) error {
		errs[idx] = c.processFile(ctx, inputs[idx])
		return nil
	})
	if err != nil {
		return err
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	c.logger.Info("all files carved", "files", len(inputs))

	return modules.ErrStopProcess
}

func (c *Carver) stopping(_ error) error {
	c.logger.Info("stopping")
	return nil
}

// processFile carves a single input and writes every recovered stream.
func (c *Carver) processFile(ctx context.Context, path string) error {
	ctx, span := tracer.Start(ctx, "Carver.processFile", trace.WithAttributes(
		attribute.String("path", path),
	))

	start := time.Now()
	n, err := c.carveFile(ctx, path)
	metricCarveDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metricFilesProcessed.WithLabelValues("error").Inc()
		err = fmt.Errorf("%s: %w", path, err)
	} else {
		metricFilesProcessed.WithLabelValues("ok").Inc()
		span.SetAttributes(attribute.Int("streams", n))
		c.logger.Info("carved file", "path", path, "streams", n, "duration", time.Since(start))
	}

	return c.endSpan(span, err, "failed to carve file")
}

// endSpan records err on span, logs it and ends the span.
func (c *Carver) endSpan(span trace.Span, err error, message string) error {
	defer span.End()

	if err != nil {
		c.logger.Error(message, "err", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, message)
	} else {
		span.SetStatus(codes.Ok, "ok")
	}

	return err
}

func (c *Carver) carveFile(ctx context.Context, path string) (int, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	c.logger.Debug("scanning", "path", path, "size", ByteCountIEC(int64(len(buf))))

	streams, err := carve.Carve(ctx, buf, carve.Options{
		Concurrency: c.cfg.PhaseConcurrency,
		MinSize:     c.cfg.MinStreamSize,
	})
	if err != nil {
		return 0, err
	}

	for i, s := range streams {
		name := c.outputPath(path, i+1)

		c.logger.Info("recovered stream",
			"path", name,
			"offset", s.Offset,
			"phase", s.Phase,
			"frames", s.Frames,
			"size", ByteCountIEC(int64(s.Len())),
		)

		metricStreamsExtracted.WithLabelValues(strconv.Itoa(s.Phase)).Inc()
		metricStreamBytes.Add(float64(s.Len()))

		if c.cfg.DryRun {
			continue
		}

		if err := c.writeStream(name, s.Data); err != nil {
			return i, err
		}
	}

	return len(streams), nil
}

// outputPath names the n-th stream recovered from input, counting from 1.
func (c *Carver) outputPath(input string, n int) string {
	base := input
	if c.cfg.Dir != "" {
		base = filepath.Join(c.cfg.Dir, filepath.Base(input))
	}
	return base + "." + strconv.Itoa(n) + ".mp3"
}
