/*
NAME
  mode.go

DESCRIPTION
  mode.go defines RLAD's two coding modes, lossless and lossy (spec §1).

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package rlad

// Mode selects between RLAD's two coding modes.
type Mode byte

const (
	// Lossless stores full 16-bit-precision deltas; reconstruction is
	// bit-exact.
	Lossless Mode = iota
	// Lossy stores 12-bit-max deltas after a ×16 quantization pass;
	// reconstruction matches the input with its low 4 bits zeroed.
	Lossy
)

// String returns the mode's name.
func (m Mode) String() string {
	if m == Lossy {
		return "lossy"
	}
	return "lossless"
}
