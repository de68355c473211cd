package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/c360studio/semstreams/metric"

	"github.com/aquariumbio/aquarium-opil/config"
	"github.com/aquariumbio/aquarium-opil/export"
	"github.com/aquariumbio/aquarium-opil/graph"
	"github.com/aquariumbio/aquarium-opil/htc"
	"github.com/aquariumbio/aquarium-opil/metrics"
	"github.com/aquariumbio/aquarium-opil/storage"
	"github.com/aquariumbio/aquarium-opil/watch"
)

// Failure stages reported to metrics.
const (
	stageConfig   = "config"
	stageGenerate = "generate"
	stagePublish  = "publish"
	stageStore    = "store"
)

// runner performs generation runs with a fixed set of flags and the
// connections opened at startup.
type runner struct {
	cfg    *config.Config
	flags  flags
	stdout io.Writer
	logger *slog.Logger
	now    func() time.Time

	metrics   *metrics.Generation
	publisher *graph.Publisher
	store     *storage.Store // nil unless nats.bucket is set
	bucket    string
	closeNATS func()
}

func newRunner(ctx context.Context, cfg *config.Config, f flags, stdout io.Writer, logger *slog.Logger) (*runner, error) {
	if err := applyFlags(cfg, f); err != nil {
		return nil, err
	}

	gen, err := metrics.New(metric.NewMetricsRegistry())
	if err != nil {
		return nil, err
	}

	r := &runner{
		cfg:       cfg,
		flags:     f,
		stdout:    stdout,
		logger:    logger,
		now:       time.Now,
		metrics:   gen,
		closeNATS: func() {},
	}

	// A nil stream keeps the publisher disabled.
	var stream graph.StreamPublisher
	if cfg.NATS.URL != "" {
		client, err := graph.Connect(ctx, cfg.NATS.URL, cfg.NATS.Timeout, logger)
		if err != nil {
			return nil, err
		}
		stream = client
		r.closeNATS = func() {
			if err := client.Close(context.Background()); err != nil {
				logger.Warn("Failed to close NATS client", "error", err)
			}
		}

		if cfg.NATS.Bucket != "" {
			js, err := client.JetStream()
			if err != nil {
				r.Close()
				return nil, fmt.Errorf("get JetStream: %w", err)
			}
			if r.store, err = storage.NewStore(ctx, js, cfg.NATS.Bucket); err != nil {
				r.Close()
				return nil, err
			}
			r.bucket = cfg.NATS.Bucket
		}
	} else if cfg.NATS.Bucket != "" {
		logger.Warn("nats.bucket is set without nats.url; documents will not be stored")
	}
	r.publisher = graph.NewPublisher(stream, logger)

	return r, nil
}

// Close releases the NATS connection, if any.
func (r *runner) Close() {
	r.closeNATS()
}

// applyFlags overrides config values with explicitly given flags.
func applyFlags(cfg *config.Config, f flags) error {
	if f.formatSet {
		cfg.Output.Format = f.format
	}
	if f.datedSet {
		cfg.Output.Dated = config.Bool(f.dated)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// resolveOutput returns the output file and format. An explicit --output
// path infers its format from the extension unless --format is given.
func resolveOutput(cfg *config.Config, f flags, now time.Time) (string, export.Format, error) {
	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return "", "", err
	}

	if f.output == "" {
		return htc.OutputPath(cfg.Output.Dir, cfg.Output.Name, format, cfg.OutputDated(), now), format, nil
	}

	if !f.formatSet {
		if inferred, ok := export.FormatFromExtension(filepath.Ext(f.output)); ok {
			format = inferred
		}
	}
	return f.output, format, nil
}

// Once generates the document, publishes and stores it when NATS is
// configured and records metrics. It prints the written path to stdout.
func (r *runner) Once(ctx context.Context) (*htc.Result, error) {
	defer r.writeMetrics()

	path, format, err := resolveOutput(r.cfg, r.flags, r.now())
	if err != nil {
		r.metrics.ObserveFailure(stageConfig)
		return nil, err
	}

	gen := htc.NewGenerator(htc.Options{
		Namespace:  r.cfg.Document.Namespace,
		Parameters: r.cfg.ParametersEnabled(),
		Provenance: r.cfg.ProvenanceEnabled(),
		OutputPath: path,
		Format:     format,
		Now:        r.now,
	}, r.logger)

	result, err := gen.Generate(ctx)
	if err != nil {
		r.metrics.ObserveFailure(stageGenerate)
		return nil, fmt.Errorf("generate: %w", err)
	}

	if err := r.publish(ctx, result); err != nil {
		r.metrics.ObserveFailure(stagePublish)
		return nil, err
	}

	if err := r.storeDocument(ctx, result); err != nil {
		r.metrics.ObserveFailure(stageStore)
		return nil, err
	}

	r.metrics.ObserveRun(metrics.Run{
		ClassCounts: result.Document.ClassCounts(),
		Triples:     result.Triples,
		Bytes:       result.Bytes,
		Duration:    result.Duration,
		FinishedAt:  r.now(),
	})

	fmt.Fprintln(r.stdout, result.Path)
	return result, nil
}

func (r *runner) publish(ctx context.Context, result *htc.Result) error {
	pubCtx, cancel := context.WithTimeout(ctx, r.natsTimeout())
	defer cancel()

	n, err := r.publisher.Publish(pubCtx, result.Document)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	r.metrics.ObservePublished(n)
	return nil
}

func (r *runner) storeDocument(ctx context.Context, result *htc.Result) error {
	if r.store == nil {
		return nil
	}
	storeCtx, cancel := context.WithTimeout(ctx, r.natsTimeout())
	defer cancel()

	key := storage.Key(result.Protocol.DisplayID(), result.Format)
	record, err := r.store.Put(storeCtx, key, result.Document, result.Format, r.now())
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	r.logger.Info("Stored document", "bucket", r.bucket, "key", key, "revision", record.Revision)
	return nil
}

func (r *runner) natsTimeout() time.Duration {
	if r.cfg.NATS.Timeout > 0 {
		return r.cfg.NATS.Timeout
	}
	return config.DefaultConfig().NATS.Timeout
}

func (r *runner) writeMetrics() {
	if r.cfg.Metrics.Textfile == "" {
		return
	}
	if err := r.metrics.WriteTextfile(r.cfg.Metrics.Textfile); err != nil {
		r.logger.Warn("Failed to write metrics", "path", r.cfg.Metrics.Textfile, "error", err)
	}
}

// Watch regenerates whenever the config file at path changes. Each change
// reloads the config; an invalid config is logged and the previous output
// is kept. The NATS connection opened at startup is reused.
func (r *runner) Watch(ctx context.Context, loader *config.Loader, path string) error {
	r.logger.Info("Watching for config changes", "path", path)

	err := watch.Run(ctx, []string{path}, r.cfg.Watch.Debounce, r.logger, func(ctx context.Context, _ watch.Event) error {
		cfg, _, err := loader.Load(path)
		if err == nil {
			err = applyFlags(cfg, r.flags)
		}
		if err != nil {
			r.metrics.ObserveFailure(stageConfig)
			r.writeMetrics()
			return fmt.Errorf("reload config: %w", err)
		}
		if cfg.NATS.URL != r.cfg.NATS.URL || cfg.NATS.Bucket != r.cfg.NATS.Bucket {
			r.logger.Warn("NATS settings changed; restart to apply them",
				"url", cfg.NATS.URL, "bucket", cfg.NATS.Bucket)
		}
		r.cfg = cfg
		_, err = r.Once(ctx)
		return err
	})

	if errors.Is(err, context.Canceled) {
		r.logger.Info("Watch stopped")
		return nil
	}
	return err
}
