// Package bitsupplier defines the BitSupplier abstraction (spec §6): the
// one I/O-shaped dependency the member subsystem has. Every caller that
// needs randomness goes through this interface so the core stays testable
// (a deterministic supplier can be swapped in) and swappable onto
// hardware-backed sources without the core knowing the difference.
package bitsupplier

import (
	"crypto/rand"
	"io"

	"github.com/epid-go/member/epiderr"
)

// BitSupplier fills buf with num_bits worth of random bits (num_bits is
// always a multiple of 8 in this implementation — the member subsystem
// only ever asks for whole bytes) and returns an error on exhaustion or
// failure, per spec §6. userCtx is opaque to the core and passed through
// to whatever closure the caller supplied.
type BitSupplier func(buf []byte, numBits int, userCtx any) error

// Call invokes fn and maps any error to epiderr.BitSupplierErr, matching
// spec §5's "random supplier fails -> current operation unwinds ... and
// returns BitSupplier".
func (fn BitSupplier) Call(buf []byte, numBits int, userCtx any) error {
	if fn == nil {
		return epiderr.BitSupplierErr
	}
	if err := fn(buf, numBits, userCtx); err != nil {
		return epiderr.BitSupplierErr
	}
	return nil
}

// System returns a BitSupplier backed by crypto/rand, the default source
// an embedder should use outside of tests.
func System() BitSupplier {
	return func(buf []byte, numBits int, _ any) error {
		_, err := io.ReadFull(rand.Reader, buf)
		return err
	}
}

// Zero returns a BitSupplier that always yields all-zero blocks. It exists
// to exercise the rejection-sampling bound (spec §8: "a random supplier
// that always returns zero-valued 32-byte blocks" must make sign fail
// with RandMaxIter, never loop).
func Zero() BitSupplier {
	return func(buf []byte, numBits int, _ any) error {
		for i := range buf {
			buf[i] = 0
		}
		return nil
	}
}

// Failing returns a BitSupplier that always fails, exercising the
// BitSupplierErr propagation path.
func Failing() BitSupplier {
	return func(buf []byte, numBits int, _ any) error {
		return io.ErrUnexpectedEOF
	}
}
