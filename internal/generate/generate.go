// Package generate turns a prompt into a validated, identified UI document.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nlui/studio/internal/brain"
	"github.com/nlui/studio/internal/observability"
	"github.com/nlui/studio/internal/uidoc"
)

// Defaults for the completion request.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2000
)

// ErrEmptyPrompt is returned before any provider call when the prompt is blank.
var ErrEmptyPrompt = errors.New("generate: empty prompt")

// Class partitions generation failures.
type Class string

const (
	ClassSchema    Class = "schema"
	ClassAuth      Class = "auth"
	ClassRateLimit Class = "rate_limit"
	ClassFailure   Class = "failure"
)

// Error is a terminal generation failure. Every class leaves the caller's
// current document untouched; none is retried.
type Error struct {
	Class Class
	Err   error
}

func (e *Error) Error() string {
	switch e.Class {
	case ClassSchema:
		return "Invalid JSON schema: " + e.Err.Error()
	case ClassAuth:
		return "Authentication failed - check API keys"
	case ClassRateLimit:
		return "Rate limit exceeded - please try again later"
	default:
		return "LLM request failed: " + e.Err.Error()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// ClassOf returns the class of err, or "" when err is not a generation error.
func ClassOf(err error) Class {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Class
	}
	return ""
}

// classify maps a provider or parse failure onto a Class.
func classify(err error) Class {
	var se *uidoc.SchemaError
	if errors.As(err, &se) {
		return ClassSchema
	}
	var apiErr *brain.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Unauthorized():
			return ClassAuth
		case apiErr.RateLimited():
			return ClassRateLimit
		}
	}
	return ClassFailure
}

// Result is a successful generation.
type Result struct {
	Document    *uidoc.Document    `json:"document"`
	Diagnostics []uidoc.Diagnostic `json:"diagnostics,omitempty"`
	Model       string             `json:"model"`
	LatencyMs   int64              `json:"latency_ms"`
	CostUSD     float64            `json:"cost_usd"`
}

// Generator is the contract the server depends on.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*Result, error)
}

// Option configures a Service.
type Option func(*Service)

// WithModel pins the model; empty uses the provider default.
func WithModel(model string) Option {
	return func(s *Service) { s.model = model }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(s *Service) { s.temperature = t }
}

// WithMaxTokens caps the completion length.
func WithMaxTokens(n int) Option {
	return func(s *Service) { s.maxTokens = n }
}

// WithLogger attaches a logger.
func WithLogger(l *observability.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithMetrics attaches a metrics collector.
func WithMetrics(m *observability.MetricsCollector) Option {
	return func(s *Service) { s.metrics = m }
}

// Service is the Generation Service: one provider call per prompt, no retry.
type Service struct {
	llm         brain.LLMProvider
	model       string
	temperature float64
	maxTokens   int
	system      string
	log         *observability.Logger
	metrics     *observability.MetricsCollector
}

// New creates a Service backed by llm.
func New(llm brain.LLMProvider, opts ...Option) *Service {
	s := &Service{
		llm:         llm,
		temperature: DefaultTemperature,
		maxTokens:   DefaultMaxTokens,
		system:      SystemPrompt(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = observability.OrNop(s.log).Component("generate")
	return s
}

// Provider returns the underlying provider.
func (s *Service) Provider() brain.LLMProvider { return s.llm }

// Generate sends prompt to the provider and returns the validated document
// with ids assigned. Failures are *Error values except ErrEmptyPrompt.
func (s *Service) Generate(ctx context.Context, prompt string) (*Result, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	start := time.Now()
	res, err := s.generate(ctx, prompt)
	dur := time.Since(start).Milliseconds()

	if err != nil {
		class := classify(err)
		s.log.Generation(prompt, string(class), dur, "provider", s.llm.Name(), "error", err.Error())
		s.record(observability.MetricGenerationErrors, 1, class)
		return nil, &Error{Class: class, Err: err}
	}

	s.log.Generation(prompt, "ok", dur, "provider", s.llm.Name(), "model", res.Model, "nodes", uidoc.Count(res.Document.Tree))
	s.record(observability.MetricGenerations, 1, "")
	s.record(observability.MetricGenerationLatency, float64(dur), "")
	s.record(observability.MetricGenerationCost, res.CostUSD, "")
	return res, nil
}

func (s *Service) generate(ctx context.Context, prompt string) (*Result, error) {
	resp, err := s.llm.Complete(ctx, brain.LLMRequest{
		Messages: []brain.Message{
			{Role: "system", Content: s.system},
			{Role: "user", Content: prompt},
		},
		Model:       s.model,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Content) == "" {
		return nil, errors.New("no content returned from LLM")
	}

	doc, err := uidoc.Parse([]byte(extractJSON(resp.Content)))
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	doc = uidoc.AssignIDs(doc)

	return &Result{
		Document:    doc,
		Diagnostics: uidoc.Diagnose(doc),
		Model:       resp.Model,
		LatencyMs:   resp.LatencyMs,
		CostUSD:     resp.CostUSD,
	}, nil
}

func (s *Service) record(mt observability.MetricType, v float64, class Class) {
	if s.metrics == nil {
		return
	}
	var labels observability.Labels
	if class != "" {
		labels = observability.Labels{"class": string(class)}
	}
	s.metrics.Record(mt, v, labels)
	s.metrics.Increment(string(mt))
}
