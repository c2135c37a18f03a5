// Package notify carries cart feedback to whatever surface shows it: the
// item-count badge and short toast messages.
package notify

import "go.uber.org/zap"

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier receives badge and toast updates. Badge(0) hides the badge.
type Notifier interface {
	Badge(count int)
	Toast(level Level, message string)
}

// LogNotifier writes every update to a zap logger.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Badge(count int) {
	n.logger.Debug("🛒 badge", zap.Int("count", count), zap.Bool("hidden", count == 0))
}

func (n *LogNotifier) Toast(level Level, message string) {
	switch level {
	case LevelError:
		n.logger.Error("❌ "+message, zap.String("toast", string(level)))
	case LevelWarning:
		n.logger.Warn("⚠️ "+message, zap.String("toast", string(level)))
	default:
		n.logger.Info("✅ "+message, zap.String("toast", string(level)))
	}
}

type multi []Notifier

// Multi fans every update out to each notifier in order.
func Multi(notifiers ...Notifier) Notifier {
	return multi(notifiers)
}

func (m multi) Badge(count int) {
	for _, n := range m {
		n.Badge(count)
	}
}

func (m multi) Toast(level Level, message string) {
	for _, n := range m {
		n.Toast(level, message)
	}
}

// Discard drops every update.
var Discard Notifier = multi(nil)
