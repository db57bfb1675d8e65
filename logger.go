package dinneragent

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// InvocationLogger is the interface for pipeline invocation audit logging.
type InvocationLogger interface {
	LogInvocation(inv InvocationLog) error
}

// NewInvocationLogFilePath returns a file path keyed by pipeline name so logs
// from the generator and the consumer are easy to tell apart.
func NewInvocationLogFilePath(pipeline string) string {
	return fmt.Sprintf("./logs/%d.%s.json", time.Now().Unix(), pipeline)
}

// InvocationLog records one pipeline invocation end to end.
type InvocationLog struct {
	Pipeline   string    `json:"pipeline"`
	Timestamp  time.Time `json:"timestamp"`
	PromptSize int       `json:"prompt_size,omitempty"`
	ReplySize  int       `json:"reply_size,omitempty"`
	MealID     string    `json:"meal_id,omitempty"`
	Updated    int       `json:"updated,omitempty"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
}

// FileInvocationLogger buffers invocations and flushes them as one document.
type FileInvocationLogger struct {
	invocations []InvocationLog
	writer      io.Writer
}

func NewFileInvocationLogger(writer io.Writer) *FileInvocationLogger {
	return &FileInvocationLogger{
		invocations: make([]InvocationLog, 0),
		writer:      writer,
	}
}

// LogInvocation appends to the buffer (does not flush immediately).
func (l *FileInvocationLogger) LogInvocation(inv InvocationLog) error {
	l.invocations = append(l.invocations, inv)
	return nil
}

// Flush writes all buffered invocations to the writer.
func (l *FileInvocationLogger) Flush() error {
	if l.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"invocation_session": map[string]any{
			"timestamp":   time.Now(),
			"invocations": l.invocations,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal invocation log: %w", err)
	}

	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write invocation log: %w", err)
	}

	l.invocations = l.invocations[:0]
	return nil
}

// NoOpInvocationLogger discards all entries.
type NoOpInvocationLogger struct{}

func NewNoOpInvocationLogger() *NoOpInvocationLogger {
	return &NoOpInvocationLogger{}
}

func (NoOpInvocationLogger) LogInvocation(inv InvocationLog) error {
	return nil
}

// StdoutInvocationLogger writes each invocation as a JSON line to stdout
// (for Lambda/CloudWatch).
type StdoutInvocationLogger struct{}

func NewStdoutInvocationLogger() *StdoutInvocationLogger {
	return &StdoutInvocationLogger{}
}

func (StdoutInvocationLogger) LogInvocation(inv InvocationLog) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
