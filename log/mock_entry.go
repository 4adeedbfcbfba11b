package log

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
)

// NewMockEntry returns a null logger entry with an attached hook
// that records all logged messages for assertions in tests.
func NewMockEntry() (*logrus.Entry, *MockLoggerHook) {
	logger, _ := test.NewNullLogger()
	logger.Level = logrus.TraceLevel

	entry := logrus.Entry{Logger: logger}
	hook := MockLoggerHook{}

	entry.Logger.AddHook(&hook)

	hook.On("Fire", mock.Anything).Return(nil)

	return &entry, &hook
}

type MockLoggerHook struct {
	mock.Mock

	Messages []string
	levels   []logrus.Level
	mu       sync.Mutex
}

// Levels implements `logrus.Hook`.
func (h *MockLoggerHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements `logrus.Hook`.
func (h *MockLoggerHook) Fire(entry *logrus.Entry) error {
	_ = h.Called()

	h.mu.Lock()
	defer h.mu.Unlock()

	h.Messages = append(h.Messages, entry.Message)
	h.levels = append(h.levels, entry.Level)

	return nil
}

// MessagesAtLevel returns the recorded messages logged with the given level.
func (h *MockLoggerHook) MessagesAtLevel(level logrus.Level) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var result []string

	for i, msg := range h.Messages {
		if h.levels[i] == level {
			result = append(result, msg)
		}
	}

	return result
}

// HasMessageContaining reports whether any recorded message contains substr.
func (h *MockLoggerHook) HasMessageContaining(substr string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, msg := range h.Messages {
		if strings.Contains(msg, substr) {
			return true
		}
	}

	return false
}

// Reset clears the recorded messages.
func (h *MockLoggerHook) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Messages = nil
	h.levels = nil
}
