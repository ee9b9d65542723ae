/*
NAME
  tier.go

DESCRIPTION
  tier.go defines the four RLAD precision tiers and their bits-per-sample
  and signed-range tables for lossless and lossy mode (spec §3, table in
  section "Precision tier").

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

// Tier is one of the four RLAD precision tiers, in narrowest-to-widest
// order.
type Tier byte

const (
	Tiny Tier = iota
	Small
	Medium
	Full
)

// tiersNarrowToWide is the fixed order used when classifying a chunk:
// the narrowest tier whose range contains every delta is selected.
var tiersNarrowToWide = [4]Tier{Tiny, Small, Medium, Full}

// losslessBPS maps a tier to its lossless bits-per-sample.
var losslessBPS = [4]int{Tiny: 4, Small: 8, Medium: 12, Full: 16}

// lossyBPS maps a tier to its lossy bits-per-sample.
var lossyBPS = [4]int{Tiny: 2, Small: 4, Medium: 8, Full: 12}

// BPS returns the bits-per-sample for t under the given mode.
func (t Tier) BPS(mode Mode) int {
	if mode == Lossy {
		return lossyBPS[t]
	}
	return losslessBPS[t]
}

// signedRange returns the inclusive [low, high] range of values
// representable in bps-bit two's complement.
func signedRange(bps int) (low, high int32) {
	half := int32(1) << (uint(bps) - 1)
	return -half, half - 1
}

// fits reports whether every value in deltas lies within t's signed
// range under mode.
func (t Tier) fits(deltas [SamplesPerChunk]int16, mode Mode) bool {
	low, high := signedRange(t.BPS(mode))
	for _, d := range deltas {
		v := int32(d)
		if v < low || v > high {
			return false
		}
	}
	return true
}

// String returns the tier's name.
func (t Tier) String() string {
	switch t {
	case Tiny:
		return "tiny"
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}
