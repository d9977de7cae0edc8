package appcore

import (
	"io"

	"bwaidx/internal/engine"
	"bwaidx/internal/output"
	"bwaidx/internal/writers"
)

// SMEMWriterFactory starts the writer for `bwaidx smem`.
type SMEMWriterFactory struct {
	Format string
	Header bool
	Seq    bool
}

// NewSMEMWriterFactory builds a factory for format.
func NewSMEMWriterFactory(format string, header, seq bool) SMEMWriterFactory {
	return SMEMWriterFactory{Format: format, Header: header, Seq: seq}
}

// NeedSeq reports whether hits must carry matched bases.
func (w SMEMWriterFactory) NeedSeq() bool {
	return w.Seq && w.Format != output.FormatTSV
}

func (w SMEMWriterFactory) Start(out io.Writer, bufSize int) (chan<- engine.Hit, <-chan error) {
	return writers.StartSMEMWriter(out, w.Format, w.Header && w.Format == output.FormatTSV, bufSize)
}
