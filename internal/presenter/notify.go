// Package presenter holds the presentation-side collaborators of the entity
// stores: form validation, submit and list flows, navigation and notifications.
package presenter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Severity of a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a short user-facing message.
type Notification struct {
	Severity Severity
	Summary  string
	Detail   string
}

// Sink surfaces notifications to the user.
type Sink interface {
	Notify(ctx context.Context, n Notification) error
}

// SinkFunc allows plain functions to satisfy Sink.
type SinkFunc func(ctx context.Context, n Notification) error

// Notify calls fn.
func (fn SinkFunc) Notify(ctx context.Context, n Notification) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, n)
}

// Sinks fans a notification out to every sink, joining their errors.
type Sinks []Sink

// Notify forwards n to all sinks.
func (s Sinks) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, sink := range s {
		if sink == nil {
			continue
		}
		if err := sink.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogSink writes notifications to a zap logger.
type LogSink struct {
	log *zap.SugaredLogger
}

// NewLogSink creates a sink logging under "notify".
func NewLogSink(log *zap.SugaredLogger) *LogSink {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &LogSink{log: log.Named("notify")}
}

// Notify logs n at info level for success and warn level for errors.
func (s *LogSink) Notify(_ context.Context, n Notification) error {
	if n.Severity == SeverityError {
		s.log.Warnw(n.Summary, "detail", n.Detail)
		return nil
	}
	s.log.Infow(n.Summary, "detail", n.Detail)
	return nil
}

// WriterSink prints notifications as single lines, e.g. "[error] Error 404: Not found.".
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Notify writes n.
func (s *WriterSink) Notify(_ context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := fmt.Sprintf("[%s] %s", n.Severity, n.Summary)
	if strings.TrimSpace(n.Detail) != "" {
		line += ": " + n.Detail
	}
	_, err := fmt.Fprintln(s.w, line)
	return err
}
