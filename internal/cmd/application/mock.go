// Package application provides test doubles for the command application interface.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/nsmerge/cmd/application"
	"github.com/agentstation/nsmerge/internal/cmd/alerts"
	"github.com/agentstation/nsmerge/pkg/pipeline"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	LoggerFunc         func() *zerolog.Logger
	PipelineConfigFunc func() pipeline.Config
	AlertsFunc         func() alerts.Writer
	VersionFunc        func() string
	CommitFunc         func() string
	DateFunc           func() string
	BuiltByFunc        func() string
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// PipelineConfig returns the mock config or pipeline defaults.
func (m *Mock) PipelineConfig() pipeline.Config {
	if m.PipelineConfigFunc != nil {
		return m.PipelineConfigFunc()
	}
	return pipeline.DefaultConfig()
}

// Alerts returns the mock writer or one that discards everything.
func (m *Mock) Alerts() alerts.Writer {
	if m.AlertsFunc != nil {
		return m.AlertsFunc()
	}
	return alerts.DiscardWriter
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ application.Application = (*Mock)(nil)
