// Package pipeline runs the merge: collect namespaces, load the schema,
// validate the merged document, then write it.
//
// Stages run strictly in order and the first failure aborts the run. The
// output file is only touched after validation succeeds. A missing input
// directory is not an error: Run returns a Result with StatusSkipped.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/nsmerge/pkg/document"
	"github.com/agentstation/nsmerge/pkg/errors"
	"github.com/agentstation/nsmerge/pkg/logging"
	"github.com/agentstation/nsmerge/pkg/namespaces"
	"github.com/agentstation/nsmerge/pkg/save"
	"github.com/agentstation/nsmerge/pkg/schema"
)

// Status is the outcome of a run that did not fail.
type Status int

// Run outcomes.
const (
	// StatusWritten means the document validated and was written.
	StatusWritten Status = iota
	// StatusValidated means the document validated and writing was disabled.
	StatusValidated
	// StatusCollected means only collection ran (no schema, no write).
	StatusCollected
	// StatusSkipped means the input directory does not exist.
	StatusSkipped
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusWritten:
		return "written"
	case StatusValidated:
		return "validated"
	case StatusCollected:
		return "collected"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Progress is the pipeline position, updated as the run advances.
type Progress struct {
	Stage     errors.Stage
	Namespace string
	File      string
}

// Result summarizes a run.
type Result struct {
	Status     Status
	Document   *document.Object
	Namespaces []string
	Files      int
	Output     string
	Duration   time.Duration
}

// Pipeline holds the configuration for merge runs. A Pipeline may be run
// repeatedly but not concurrently.
type Pipeline struct {
	config   Config
	logger   *zerolog.Logger
	progress Progress
}

// New creates a pipeline from cfg.
func New(cfg Config, opts ...Option) *Pipeline {
	p := &Pipeline{config: cfg.withDefaults()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used when the context carries none.
func WithLogger(logger *zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// Config returns the effective configuration.
func (p *Pipeline) Config() Config {
	return p.config
}

// Progress returns the position reached by the last run, which is where a
// failed run stopped.
func (p *Pipeline) Progress() Progress {
	return p.progress
}

// Run executes every stage and writes the output file.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	return p.run(ctx, modeWrite)
}

// Validate executes collection and validation without writing.
func (p *Pipeline) Validate(ctx context.Context) (*Result, error) {
	return p.run(ctx, modeValidate)
}

// Collect executes collection only.
func (p *Pipeline) Collect(ctx context.Context) (*Result, error) {
	return p.run(ctx, modeCollect)
}

type mode int

const (
	modeWrite mode = iota
	modeValidate
	modeCollect
)

func (p *Pipeline) run(ctx context.Context, m mode) (*Result, error) {
	start := time.Now()
	p.progress = Progress{}

	if p.logger != nil && logging.FromContext(ctx) == logging.Default() {
		ctx = logging.WithLogger(ctx, p.logger)
	}
	logger := logging.FromContext(ctx)

	// Collect
	p.enter(errors.StageCollect, "")
	files := 0
	collector := namespaces.NewCollector(p.config.InputDir,
		namespaces.WithExclude(p.config.Exclude...),
		namespaces.WithProgress(func(np namespaces.Progress) {
			p.progress.Namespace = np.Namespace
			p.progress.File = np.File
			if np.File != "" {
				files++
			}
		}),
	)

	merged, err := collector.Collect(logging.WithStage(ctx, string(errors.StageCollect)))
	if err != nil {
		if errors.IsInputNotFound(err) {
			logger.Warn().Str("input_dir", p.config.InputDir).Msg("Input directory does not exist")
			return &Result{Status: StatusSkipped, Duration: time.Since(start)}, nil
		}
		return nil, err
	}

	result := &Result{
		Document:   merged,
		Namespaces: merged.Keys(),
		Files:      files,
		Output:     p.config.OutputFile,
	}
	p.progress.Namespace = ""

	if m == modeCollect {
		result.Status = StatusCollected
		result.Duration = time.Since(start)
		return result, nil
	}

	// LoadSchema
	if err := p.checkpoint(ctx, errors.StageLoadSchema, p.config.SchemaFile); err != nil {
		return nil, err
	}
	logger.Info().Str("schema", p.config.SchemaFile).Msg("Loading schema")
	s, err := schema.Load(p.config.SchemaFile)
	if err != nil {
		return nil, p.fail(err)
	}

	// Validate
	if err := p.checkpoint(ctx, errors.StageValidate, p.config.SchemaFile); err != nil {
		return nil, err
	}
	logger.Info().Msg("Validating merged data against schema")
	v, err := schema.NewValidator(s)
	if err != nil {
		return nil, p.fail(err)
	}
	if err := v.Validate(merged); err != nil {
		return nil, p.fail(err)
	}
	logger.Info().Msg("Merged document is valid")

	if m == modeValidate {
		result.Status = StatusValidated
		result.Output = ""
		result.Duration = time.Since(start)
		return result, nil
	}

	// Write
	if err := p.checkpoint(ctx, errors.StageWrite, p.config.OutputFile); err != nil {
		return nil, err
	}
	logger.Info().Str("output", p.config.OutputFile).Msg("Writing output")
	if err := save.Write(merged, save.WithPath(p.config.OutputFile)); err != nil {
		return nil, p.fail(err)
	}

	result.Status = StatusWritten
	result.Duration = time.Since(start)
	logger.Info().
		Str("output", p.config.OutputFile).
		Int("namespaces", len(result.Namespaces)).
		Dur("duration", result.Duration).
		Msg("Merged document written")
	return result, nil
}

func (p *Pipeline) enter(stage errors.Stage, file string) {
	p.progress.Stage = stage
	p.progress.File = file
}

// checkpoint moves to the next stage unless the run was interrupted.
func (p *Pipeline) checkpoint(ctx context.Context, stage errors.Stage, file string) error {
	if err := ctx.Err(); err != nil {
		return p.fail(errors.WrapCanceled(err))
	}
	p.enter(stage, file)
	return nil
}

// fail wraps err with the current position.
func (p *Pipeline) fail(err error) error {
	return errors.NewPipelineError(p.progress.Stage, p.progress.Namespace, p.progress.File, err)
}
