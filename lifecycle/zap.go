package lifecycle

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapSink writes each event as a structured log entry.
type ZapSink struct {
	logger *zap.Logger
	level  zapcore.Level
}

// NewZapSink logs events at debug level. A nil logger becomes a no-op.
func NewZapSink(logger *zap.Logger) *ZapSink {
	return NewZapSinkAt(logger, zapcore.DebugLevel)
}

// NewZapSinkAt logs events at the given level.
func NewZapSinkAt(logger *zap.Logger, level zapcore.Level) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{logger: logger, level: level}
}

// Record implements Sink.
func (s *ZapSink) Record(e Event) {
	if ce := s.logger.Check(s.level, "lifecycle"); ce != nil {
		ce.Write(
			zap.Uint64("seq", e.Seq),
			zap.String("kind", e.Kind.String()),
			zap.Int("id", e.ID),
		)
	}
}
