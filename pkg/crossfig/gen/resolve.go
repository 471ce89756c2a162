package gen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bushrat011899/crossfig/pkg/crossfig"
	"github.com/bushrat011899/crossfig/pkg/crossfig/buildenv"
	"github.com/bushrat011899/crossfig/pkg/crossfig/manifest"
	"github.com/bushrat011899/crossfig/pkg/crossfig/observability"
)

// ResolvedAlias is an identity together with the textual condition it
// was declared from, kept for generated doc comments.
type ResolvedAlias struct {
	crossfig.Identity
	// Cond is the textual condition the alias was resolved from.
	Cond string
}

// Selection is a switch outcome bound to its output file.
type Selection struct {
	crossfig.Selection
	// File is the generated file name for the switch.
	File string
}

// Result is a fully resolved manifest: every alias has a fixed kind and
// every switch has selected exactly one block. Render turns a Result
// into source files.
type Result struct {
	// RunID identifies the resolution run.
	RunID string
	// Manifest labels the source of the declarations (usually a path).
	Manifest string
	// Package is the Go package name of the generated files.
	Package string
	// Output is the directory generated files belong in.
	Output string
	// Vars are substituted into blocks as ${name}.
	Vars map[string]string
	// Aliases are the resolved declarations, in declaration order.
	Aliases []ResolvedAlias
	// Selections hold the surviving block of each switch.
	Selections []Selection
}

// Resolver resolves manifests against a build environment.
type Resolver struct {
	env     crossfig.Env
	logger  *slog.Logger
	spans   observability.SpanManager
	metrics observability.MetricsRecorder
	runID   string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithEnv overrides the build environment. By default the environment
// is built from the manifest's build section with host target defaults.
func WithEnv(env crossfig.Env) Option {
	return func(r *Resolver) { r.env = env }
}

// WithLogger enables structured logging of the resolution.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// WithSpanManager enables tracing of the resolution.
func WithSpanManager(spans observability.SpanManager) Option {
	return func(r *Resolver) { r.spans = spans }
}

// WithMetrics enables metrics for the resolution.
func WithMetrics(metrics observability.MetricsRecorder) Option {
	return func(r *Resolver) { r.metrics = metrics }
}

// WithRunID fixes the run ID instead of generating one.
func WithRunID(id string) Option {
	return func(r *Resolver) { r.runID = id }
}

// NewResolver creates a resolver. Observability is off by default.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		spans:   observability.NoopSpanManager{},
		metrics: observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve validates the manifest and resolves it: aliases top to
// bottom, then each switch in order. Any declaration failure aborts
// with a diagnostic naming the offending declaration; there is no
// partial output.
func (r *Resolver) Resolve(ctx context.Context, m manifest.Manifest, label string) (*Result, error) {
	start := time.Now()

	runID := r.runID
	if runID == "" {
		runID = uuid.NewString()
	}

	ctx, runSpan := r.spans.StartRunSpan(ctx, label, runID)
	observability.LogRunStart(r.logger, runID, label)

	res, err := r.resolve(ctx, m, label, runID)

	r.metrics.RecordRun(ctx, err == nil, time.Since(start))
	r.spans.EndSpanWithError(runSpan, err)
	if err != nil {
		observability.LogRunError(r.logger, runID, err)
		return nil, err
	}
	observability.LogRunComplete(r.logger, runID,
		float64(time.Since(start).Milliseconds()),
		len(res.Aliases), len(res.Selections))
	return res, nil
}

func (r *Resolver) resolve(ctx context.Context, m manifest.Manifest, label, runID string) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	env := r.env
	if env == nil {
		env = buildenv.New(
			buildenv.WithFeatures(m.Build.Features...),
			buildenv.WithTags(m.Build.Tags...),
			buildenv.WithTarget(m.Build.OS, m.Build.Arch),
		)
	}

	res := &Result{
		RunID:    runID,
		Manifest: label,
		Package:  m.Package,
		Output:   m.Output,
		Vars:     m.Vars,
	}

	scope := crossfig.NewScope()
	for _, a := range m.Aliases {
		cond, err := crossfig.ParseCond(a.Cond)
		if err != nil {
			// Validate already parsed every condition; a failure here
			// means the manifest changed underneath us.
			return nil, fmt.Errorf("alias %q: %w", a.Name, err)
		}

		_, declSpan := r.spans.StartDeclSpan(ctx, "alias", a.Name)
		ids, err := scope.Declare(env, crossfig.AliasDecl{
			Name: a.Name,
			Doc:  a.Doc,
			Pub:  a.Pub,
			Cond: cond,
		})
		r.spans.EndSpanWithError(declSpan, err)
		if err != nil {
			return nil, err
		}

		id := ids[0]
		observability.LogAliasResolved(r.logger, id.Name(), id.Bool(), id.Exported())
		r.metrics.RecordAliasResolution(ctx, id.Name(), id.Bool())
		res.Aliases = append(res.Aliases, ResolvedAlias{Identity: id, Cond: a.Cond})
	}

	ev := crossfig.NewEvaluator(scope, env)
	for _, sw := range m.Switches {
		builder := crossfig.NewSwitch(sw.Name)
		for _, arm := range sw.Arms {
			if arm.Default {
				builder.Default(arm.Block)
				continue
			}
			cond, err := crossfig.ParseCond(arm.Cond)
			if err != nil {
				return nil, fmt.Errorf("switch %q: %w", sw.Name, err)
			}
			builder.Case(cond, arm.Block)
		}

		_, declSpan := r.spans.StartDeclSpan(ctx, "switch", sw.Name)
		sel, err := builder.Resolve(ev)
		r.spans.EndSpanWithError(declSpan, err)
		if err != nil {
			return nil, err
		}

		observability.LogSwitchResolved(r.logger, sw.Name, sel.Arm, sel.Fallback)
		r.metrics.RecordSwitchResolution(ctx, sw.Name, sel.Fallback)
		res.Selections = append(res.Selections, Selection{Selection: sel, File: sw.OutputFile()})
	}

	return res, nil
}
