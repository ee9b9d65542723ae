/*
NAME
  simd.go

DESCRIPTION
  simd.go provides CPU feature detection used to select between SIMD-width
  and scalar implementations of the RLAD codec's hot loops (sample
  conversion and lossy shift passes). The level is detected once, at
  package initialization, and cached.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package simd selects between 256-bit, 128-bit and scalar code paths for
// the small set of bulk numeric operations the RLAD codec needs: the
// short<->float sample conversion of spec §4.1, and the lossy ×16/÷16
// quantization passes of spec §4.2.
//
// There is no portable SIMD intrinsic surface in the Go language itself,
// so each "width" below is a pure-Go loop processing that many lanes per
// iteration, compiled as ordinary scalar Go rather than vector
// instructions. What
// matters for the codec's correctness contract is that every Level
// produces bit-identical output (spec §8, "SIMD equivalence") — the
// dispatch exists to exercise and document the three code paths the
// original implementation distinguished, not to hand-write vector
// intrinsics.
package simd

import "golang.org/x/sys/cpu"

// Level identifies a lane width used for the bulk sample operations.
type Level int

const (
	// Scalar processes one sample per iteration.
	Scalar Level = iota
	// Width128 processes 4 samples per iteration, matching a 128-bit
	// SIMD register of float32s.
	Width128
	// Width256 processes 8 samples per iteration, matching a 256-bit
	// SIMD register.
	Width256
)

// String implements fmt.Stringer.
func (l Level) String() string {
	switch l {
	case Scalar:
		return "scalar"
	case Width128:
		return "128-bit"
	case Width256:
		return "256-bit"
	default:
		return "unknown"
	}
}

var detected Level
var forced bool

func init() {
	detected = detect()
}

// detect inspects the running CPU's feature bits once and picks the
// widest path available.
func detect() Level {
	switch {
	case cpu.X86.HasAVX2:
		return Width256
	case cpu.X86.HasSSE41:
		return Width128
	case cpu.ARM64.HasASIMD:
		return Width128
	default:
		return Scalar
	}
}

// Detect returns the cached CPU feature level, as determined at package
// initialization (or as set by Force).
func Detect() Level {
	return detected
}

// Force overrides the detected level. This replaces the reflection-based
// private-field manipulation the original test suite used to pin a code
// path under test; callers (principally tests) call Force to make the
// dispatch deterministic, and Reset to restore normal detection.
func Force(l Level) {
	detected = l
	forced = true
}

// Reset restores CPU-detected dispatch after a call to Force.
func Reset() {
	if !forced {
		return
	}
	detected = detect()
	forced = false
}
