// Package codec implements the Codec component of spec §2.2: fixed-width
// big-endian serialization of field/curve elements and the composite
// records of spec §3. The field/curve element widths themselves live next
// to the types that own them (field.Fp.Bytes(), field.G1.Bytes(), ...);
// this package supplies the shared transcript-building and uint32
// helpers every protocol message and Fiat-Shamir transcript needs on top
// of those.
package codec

import (
	"encoding/binary"

	"github.com/epid-go/member/field"
)

// TranscriptWriter accumulates the exact-width, concatenated byte string
// that HashToFp absorbs for a Fiat-Shamir challenge (spec §4.7 T1, §4.8
// T2/T3). Every Write* method appends a fixed number of bytes so the
// resulting transcript is byte-exact regardless of the values written.
type TranscriptWriter struct {
	buf []byte
}

func NewTranscriptWriter() *TranscriptWriter {
	return &TranscriptWriter{}
}

func (w *TranscriptWriter) WriteFp(f field.Fp) *TranscriptWriter {
	b := f.Bytes()
	w.buf = append(w.buf, b[:]...)
	return w
}

func (w *TranscriptWriter) WriteG1(g field.G1) *TranscriptWriter {
	b := g.Bytes()
	w.buf = append(w.buf, b[:]...)
	return w
}

func (w *TranscriptWriter) WriteG2(g field.G2) *TranscriptWriter {
	b := g.Bytes()
	w.buf = append(w.buf, b[:]...)
	return w
}

func (w *TranscriptWriter) WriteGT(g field.GT) *TranscriptWriter {
	b := g.Bytes()
	w.buf = append(w.buf, b[:]...)
	return w
}

// WriteRaw appends an already-sized byte string verbatim (a nonce, the
// caller's message, or a basename).
func (w *TranscriptWriter) WriteRaw(b []byte) *TranscriptWriter {
	w.buf = append(w.buf, b...)
	return w
}

func (w *TranscriptWriter) Bytes() []byte {
	return w.buf
}

// PutUint32 and Uint32 encode/decode the 32-bit big-endian counters used
// by SigRL.version, SigRL.n2, and EpidSignature's header (spec §6).
func PutUint32(dst []byte, v uint32) {
	binary.BigEndian.PutUint32(dst, v)
}

func Uint32(src []byte) uint32 {
	return binary.BigEndian.Uint32(src)
}
