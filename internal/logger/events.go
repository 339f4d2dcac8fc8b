package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// event is a single pending event log line
type event struct {
	message  string
	fileName string
	when     time.Time
}

// EventLogger appends tab-separated event lines to per-name log files under a
// directory. Writes are fire-and-forget: Log never blocks the caller and write
// failures never propagate to the request path. Each line is
// "yyyyMMdd<TAB>HH:mm:ss<TAB><uuid><TAB><message>".
type EventLogger struct {
	dir    string
	logger *zap.Logger

	events chan event
	done   chan struct{}

	mu    sync.Mutex
	files map[string]*os.File

	closeOnce sync.Once
}

// NewEventLogger creates an event logger writing under dir and starts its writer
// goroutine. The directory is created on first write if it does not exist.
func NewEventLogger(dir string, logger *zap.Logger) *EventLogger {
	el := &EventLogger{
		dir:    dir,
		logger: logger,
		events: make(chan event, 256),
		done:   make(chan struct{}),
		files:  make(map[string]*os.File),
	}
	go el.run()
	return el
}

// Log queues an event line for fileName. When the queue is full the line is
// dropped rather than blocking the caller.
func (el *EventLogger) Log(message, fileName string) {
	select {
	case el.events <- event{message: message, fileName: fileName, when: time.Now()}:
	default:
		// queue full, drop the line
	}
}

// Close stops the writer goroutine after draining queued events and closes the
// open log files.
func (el *EventLogger) Close() {
	el.closeOnce.Do(func() {
		close(el.events)
		<-el.done

		el.mu.Lock()
		defer el.mu.Unlock()
		for _, f := range el.files {
			_ = f.Close()
		}
		el.files = map[string]*os.File{}
	})
}

func (el *EventLogger) run() {
	defer close(el.done)
	for ev := range el.events {
		if err := el.write(ev); err != nil && el.logger != nil {
			el.logger.Warn("event log write failed",
				zap.String("file", ev.fileName),
				zap.Error(err),
			)
		}
	}
}

func (el *EventLogger) write(ev event) error {
	f, err := el.file(ev.fileName)
	if err != nil {
		return err
	}

	line := fmt.Sprintf("%s\t%s\t%s\t%s\n",
		ev.when.Format("20060102"),
		ev.when.Format("15:04:05"),
		uuid.New().String(),
		ev.message,
	)
	_, err = f.WriteString(line)
	return err
}

func (el *EventLogger) file(name string) (*os.File, error) {
	el.mu.Lock()
	defer el.mu.Unlock()

	if f, ok := el.files[name]; ok {
		return f, nil
	}

	if err := os.MkdirAll(el.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(el.dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", name, err)
	}
	el.files[name] = f
	return f, nil
}
