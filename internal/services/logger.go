package services

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ServiceIdentifier interface {
	ID() string
}

// ServiceLogger is a zerolog logger pre-tagged with the owning service's ID,
// so every line a service emits carries its origin without repeating it at
// each call site.
type ServiceLogger struct {
	logger zerolog.Logger
}

func NewServiceLogger(svc ServiceIdentifier) *ServiceLogger {
	return &ServiceLogger{logger: log.With().Str("service", svc.ID()).Logger()}
}

// WithComponent narrows the logger to a sub-component within the service.
func (l *ServiceLogger) WithComponent(name string) *ServiceLogger {
	return &ServiceLogger{logger: l.logger.With().Str("component", name).Logger()}
}

func (l *ServiceLogger) Debug() *zerolog.Event { return l.logger.Debug() }
func (l *ServiceLogger) Info() *zerolog.Event  { return l.logger.Info() }
func (l *ServiceLogger) Warn() *zerolog.Event  { return l.logger.Warn() }
func (l *ServiceLogger) Error() *zerolog.Event { return l.logger.Error() }
