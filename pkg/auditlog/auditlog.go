package auditlog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/unahur-dev/academico-api/pkg/jobs"
)

// Sink is an append-only text log. Every entry is a complete
// "<RFC3339 timestamp>: <message>" line; appends are fire-and-forget and run
// on a single background worker so concurrent callers never interleave lines.
// Write failures are reported through the process logger and swallowed.
type Sink struct {
	path   string
	logger *zap.Logger

	mu    sync.Mutex
	queue *jobs.Queue
}

// NewSink builds a sink writing to path and starts its worker.
func NewSink(path string, logger *zap.Logger) *Sink {
	if path == "" {
		path = "logs.txt"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Sink{path: path, logger: logger}
	s.queue = jobs.NewQueue("auditlog", s.handle, jobs.QueueConfig{
		Workers: 1,
		Logger:  logger,
	})
	s.queue.Start()
	return s
}

// Append queues a log entry. The timestamp is taken at call time, not at
// write time. The call never blocks and never reports failure to the caller.
func (s *Sink) Append(message string) {
	line := fmt.Sprintf("%s: %s\n", time.Now().UTC().Format(time.RFC3339), message)
	s.queue.Enqueue(jobs.Job{Type: "append", Payload: line})
}

// Entries returns every complete line currently in the log file, oldest
// first. A missing file reads as an empty log.
func (s *Sink) Entries() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read audit log: %w", err)
	}

	raw := strings.Split(string(data), "\n")
	entries := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			entries = append(entries, line)
		}
	}
	return entries, nil
}

// Close drains pending appends and stops the worker.
func (s *Sink) Close() {
	s.queue.Stop()
}

func (s *Sink) handle(_ context.Context, job jobs.Job) error {
	line, ok := job.Payload.(string)
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.logger.Warn("audit log open failed", zap.Error(err))
		return nil
	}
	defer file.Close() //nolint:errcheck

	if _, err := file.WriteString(line); err != nil {
		s.logger.Warn("audit log write failed", zap.Error(err))
	}
	return nil
}
