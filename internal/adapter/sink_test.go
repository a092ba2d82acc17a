package adapter_test

import (
	"bytes"
	"testing"

	"github.com/h2hsecure/tokenreport/internal/adapter"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
)

func TestWriterSink(t *testing.T) {
	RegisterTestingT(t)
	var out bytes.Buffer

	sink := adapter.NewWriterSink(&out)
	Expect(sink.Log("access token", "T1")).To(Succeed())
	Expect(sink.Log("Open ID", "a")).To(Succeed())

	Expect(out.String()).To(Equal("access token: T1\nOpen ID: a\n"))
}

func TestLogSink(t *testing.T) {
	RegisterTestingT(t)
	var out bytes.Buffer

	sink := adapter.NewLogSink(zerolog.New(&out))
	Expect(sink.Log("Open ID", "a")).To(Succeed())

	Expect(out.String()).To(Equal(`{"message":"Open ID: a"}` + "\n"))
}

func TestLogSinkIgnoresLevel(t *testing.T) {
	RegisterTestingT(t)
	var out bytes.Buffer

	previous := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	defer zerolog.SetGlobalLevel(previous)

	sink := adapter.NewLogSink(zerolog.New(&out).Level(zerolog.ErrorLevel))
	Expect(sink.Log("access token", "T1")).To(Succeed())
	Expect(sink.Log("Open ID", "a")).To(Succeed())

	Expect(out.String()).To(Equal(`{"message":"access token: T1"}` + "\n" + `{"message":"Open ID: a"}` + "\n"))
}
