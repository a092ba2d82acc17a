package adapter

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

type WriterSink struct {
	w io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Log implements domain.Sink.
func (s *WriterSink) Log(label, value string) error {
	_, err := fmt.Fprintf(s.w, "%s: %s\n", label, value)
	return err
}

// LogSink writes each line as a level-less event on a zerolog logger, so a
// raised log level never hides the report.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Log implements domain.Sink.
func (s *LogSink) Log(label, value string) error {
	s.logger.Log().Msg(label + ": " + value)
	return nil
}
