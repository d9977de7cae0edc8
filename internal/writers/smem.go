// internal/writers/smem.go
package writers

import (
	"encoding/json"
	"io"

	"bwaidx/internal/engine"
	"bwaidx/internal/jsonlutil"
	"bwaidx/internal/output"
)

func init() {
	RegisterSMEM(output.FormatTSV, output.StreamTSV)
	RegisterSMEM(output.FormatJSON, func(out io.Writer, in <-chan engine.Hit, _ bool) error {
		var buf []engine.Hit
		for h := range in {
			buf = append(buf, h)
		}
		return output.WriteJSON(out, buf)
	})
	RegisterSMEM(output.FormatJSONL, func(out io.Writer, in <-chan engine.Hit, _ bool) error {
		return writeJSONL(out, in)
	})
}

// writeJSONL streams each hit as one JSON line (v1).
func writeJSONL(out io.Writer, in <-chan engine.Hit) error {
	enc, done := StartSMEMJSONLWriter(out, cap(in))
	for h := range in {
		enc <- h
	}
	close(enc)
	return <-done
}

// StartSMEMJSONLWriter streams each engine.Hit as one JSON line (v1).
func StartSMEMJSONLWriter(out io.Writer, bufSize int) (chan<- engine.Hit, <-chan error) {
	return jsonlutil.Start[engine.Hit](out, bufSize,
		func(enc *json.Encoder, h engine.Hit) error {
			return enc.Encode(output.ToAPISMEM(h))
		},
		IsBrokenPipe,
	)
}
