package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/textsentry/textsentry/pkg/analysis"
	"github.com/textsentry/textsentry/pkg/analysis/contextual"
	"github.com/textsentry/textsentry/pkg/analysis/normalizer"
	"github.com/textsentry/textsentry/pkg/analysis/sarcasm"
	"github.com/textsentry/textsentry/pkg/infra/prometheus"
)

// Stage names used in logs, metrics and health reporting.
const (
	StageNormalization  = "normalization"
	StageSarcasm        = "sarcasm"
	StageContextual     = "contextual"
	StageBaseClassifier = "base_classifier"
)

// DefaultThreshold is the combined-score cutoff when the caller supplies no
// sensitivity.
const DefaultThreshold = 0.7

// UseDefaultThreshold as the threshold argument to Detect selects the
// configured threshold. Zero is a real threshold that flags every input.
const UseDefaultThreshold = -1

// Classifier is the external pretrained scorer collaborator. It may be nil
// when no backend is configured; the pipeline then scores from the static
// stages alone.
type Classifier interface {
	Score(ctx context.Context, text string) (analysis.BaseScore, error)
	Available() bool
}

// Weights configure the fixed-weight fusion. Weights of absent components
// are redistributed proportionally across present ones, so the effective
// weights always sum to 1.
type Weights struct {
	Base          float64 `mapstructure:"base"`
	Contextual    float64 `mapstructure:"contextual"`
	Sarcasm       float64 `mapstructure:"sarcasm"`
	Normalization float64 `mapstructure:"normalization"`
}

func DefaultWeights() Weights {
	return Weights{
		Base:          0.40,
		Contextual:    0.35,
		Sarcasm:       0.15,
		Normalization: 0.10,
	}
}

type Config struct {
	Threshold         float64
	StageTimeout      time.Duration
	ClassifierTimeout time.Duration
	Weights           Weights
}

func (c Config) withDefaults() Config {
	if c.Threshold <= 0 || c.Threshold > 1 {
		c.Threshold = DefaultThreshold
	}
	if c.StageTimeout <= 0 {
		c.StageTimeout = 2 * time.Second
	}
	if c.ClassifierTimeout <= 0 {
		c.ClassifierTimeout = 5 * time.Second
	}
	zero := Weights{}
	if c.Weights == zero {
		c.Weights = DefaultWeights()
	}
	return c
}

// Pipeline orchestrates the analysis stages and fuses their outputs into a
// single verdict. All stages share the static rule tables, which are
// read-only after init, so one Pipeline serves concurrent requests.
type Pipeline struct {
	normalizer *normalizer.Normalizer
	sarcasm    *sarcasm.Detector
	contextual *contextual.Analyzer
	classifier Classifier
	logger     *logrus.Logger
	cfg        Config
}

func New(classifier Classifier, logger *logrus.Logger, cfg Config) *Pipeline {
	return &Pipeline{
		normalizer: normalizer.New(),
		sarcasm:    sarcasm.New(),
		contextual: contextual.New(),
		classifier: classifier,
		logger:     logger,
		cfg:        cfg.withDefaults(),
	}
}

// Normalize runs only the normalization stage.
func (p *Pipeline) Normalize(text string) (analysis.NormalizationResult, error) {
	if err := validateInput(text); err != nil {
		return analysis.NormalizationResult{}, err
	}
	return p.normalizer.Normalize(text), nil
}

// AnalyzeSarcasm runs only the sarcasm stage on the raw text.
func (p *Pipeline) AnalyzeSarcasm(text string) (analysis.SarcasmResult, error) {
	if err := validateInput(text); err != nil {
		return analysis.SarcasmResult{}, err
	}
	return p.sarcasm.Analyze(text), nil
}

// AnalyzeContext runs normalization followed by the contextual stage.
func (p *Pipeline) AnalyzeContext(text string) (analysis.ContextualResult, error) {
	if err := validateInput(text); err != nil {
		return analysis.ContextualResult{}, err
	}
	return p.contextual.AnalyzeNormalized(p.normalizer.Normalize(text)), nil
}

// Health reports per-feature availability. The static stages are always
// available once the process is up; the classifier depends on its breaker.
func (p *Pipeline) Health() map[string]bool {
	return map[string]bool{
		StageNormalization:  true,
		StageSarcasm:        true,
		StageContextual:     true,
		StageBaseClassifier: p.classifier != nil && p.classifier.Available(),
	}
}

// Detect runs the full pipeline. Normalization feeds the remaining stages,
// which run concurrently; any stage that fails or times out is dropped from
// the fusion rather than failing the request. Only when every component
// fails does Detect return ErrAllStagesFailed, and even then the returned
// result is well formed.
func (p *Pipeline) Detect(ctx context.Context, text string, threshold float64) (analysis.FusedResult, error) {
	if err := validateInput(text); err != nil {
		return analysis.FusedResult{}, err
	}
	if threshold == UseDefaultThreshold {
		threshold = p.cfg.Threshold
	}
	if threshold < 0 || threshold > 1 {
		return analysis.FusedResult{}, ErrInvalidInput
	}

	norm, normErr := runStage(ctx, p.cfg.StageTimeout, StageNormalization,
		func(context.Context) (analysis.NormalizationResult, error) {
			return p.normalizer.Normalize(text), nil
		})
	if normErr != nil {
		p.logger.WithError(normErr).Warn("normalization stage unavailable")
	}

	analyzed := text
	if normErr == nil {
		analyzed = norm.Normalized
	}

	var (
		sarcRes analysis.SarcasmResult
		sarcErr error
		ctxRes  analysis.ContextualResult
		ctxErr  error
		base    analysis.BaseScore
		baseErr error
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		sarcRes, sarcErr = runStage(ctx, p.cfg.StageTimeout, StageSarcasm,
			func(context.Context) (analysis.SarcasmResult, error) {
				if normErr == nil {
					return p.sarcasm.AnalyzeNormalized(norm), nil
				}
				return p.sarcasm.Analyze(analyzed), nil
			})
		return nil
	})
	g.Go(func() error {
		ctxRes, ctxErr = runStage(ctx, p.cfg.StageTimeout, StageContextual,
			func(context.Context) (analysis.ContextualResult, error) {
				if normErr == nil {
					return p.contextual.AnalyzeNormalized(norm), nil
				}
				return p.contextual.Analyze(analyzed), nil
			})
		return nil
	})
	g.Go(func() error {
		if p.classifier == nil {
			baseErr = &StageError{Stage: StageBaseClassifier, Err: errNoClassifier}
			return nil
		}
		base, baseErr = runStage(ctx, p.cfg.ClassifierTimeout, StageBaseClassifier,
			func(stageCtx context.Context) (analysis.BaseScore, error) {
				return p.classifier.Score(stageCtx, analyzed)
			})
		return nil
	})
	_ = g.Wait()

	for stage, err := range map[string]error{
		StageSarcasm:        sarcErr,
		StageContextual:     ctxErr,
		StageBaseClassifier: baseErr,
	} {
		if err != nil {
			p.logger.WithError(err).WithField("stage", stage).Warn("stage unavailable, continuing degraded")
		}
	}

	in := fusionInput{
		original:  text,
		threshold: threshold,
	}
	if normErr == nil {
		in.norm = &norm
	}
	if sarcErr == nil {
		in.sarcasm = &sarcRes
	}
	if ctxErr == nil {
		in.contextual = &ctxRes
	}
	if baseErr == nil {
		in.base = &base
	}

	result := p.fuse(in)

	verdict := "clean"
	if result.IsToxic {
		verdict = "toxic"
	}
	prometheus.ToxicVerdicts.WithLabelValues(verdict).Inc()

	if normErr != nil && sarcErr != nil && ctxErr != nil && baseErr != nil {
		return result, ErrAllStagesFailed
	}
	return result, nil
}

func validateInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrInvalidInput
	}
	return nil
}

// runStage executes fn with a bounded duration, recording latency and
// failures. A stage that overruns its timeout is reported failed; the
// goroutine is left to finish on its own since all stages are side-effect
// free.
func runStage[T any](ctx context.Context, timeout time.Duration, stage string, fn func(context.Context) (T, error)) (T, error) {
	stageCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var zero T
	if err := stageCtx.Err(); err != nil {
		prometheus.StageFailures.WithLabelValues(stage, "timeout").Inc()
		return zero, &StageError{Stage: stage, Err: err}
	}

	type outcome struct {
		value T
		err   error
	}
	ch := make(chan outcome, 1)
	start := time.Now()
	go func() {
		v, err := fn(stageCtx)
		ch <- outcome{value: v, err: err}
	}()

	select {
	case out := <-ch:
		prometheus.StageLatency.WithLabelValues(stage).Observe(float64(time.Since(start).Milliseconds()))
		if out.err != nil {
			prometheus.StageFailures.WithLabelValues(stage, "error").Inc()
			return zero, &StageError{Stage: stage, Err: out.err}
		}
		return out.value, nil
	case <-stageCtx.Done():
		prometheus.StageFailures.WithLabelValues(stage, "timeout").Inc()
		return zero, &StageError{Stage: stage, Err: stageCtx.Err()}
	}
}
