/*
NAME
  classify.go

DESCRIPTION
  classify.go computes per-sample deltas for one channel and classifies
  each 8-sample chunk into the narrowest precision tier that can hold it,
  then compresses adjacent same-tier chunks into runs (spec §4.3).

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

import "fmt"

// classifyChannel computes the delta sequence for one channel's 512
// samples (seeded with last=0, per the fixed-zero seed decision recorded
// in DESIGN.md) and the per-chunk tier assigned to each of the 64 chunks.
//
// In lossy mode, a delta that doesn't fit even the widest (Full) tier is
// an encode-time error (spec §4.3 edge cases; see DESIGN.md for the
// Open Question this resolves).
func classifyChannel(samples [FramesPerBlock]int16, mode Mode) (deltas [FramesPerBlock]int16, tiers [ChunksPerBlock]Tier, err error) {
	var last int16
	for c := 0; c < ChunksPerBlock; c++ {
		base := c * SamplesPerChunk
		var chunkDeltas [SamplesPerChunk]int16
		for j := 0; j < SamplesPerChunk; j++ {
			s := samples[base+j]
			chunkDeltas[j] = s - last
			last = s
		}
		for j := 0; j < SamplesPerChunk; j++ {
			deltas[base+j] = chunkDeltas[j]
		}

		tier, ok := classifyChunk(chunkDeltas, mode)
		if !ok {
			return deltas, tiers, argumentOutOfRange(fmt.Sprintf("delta at chunk %d", c), int(maxAbsDelta(chunkDeltas)))
		}
		tiers[c] = tier
	}
	return deltas, tiers, nil
}

// classifyChunk selects the narrowest tier whose signed range contains
// every delta in the chunk. If all deltas are zero, Tiny always fits.
func classifyChunk(deltas [SamplesPerChunk]int16, mode Mode) (Tier, bool) {
	for _, t := range tiersNarrowToWide {
		if t.fits(deltas, mode) {
			return t, true
		}
	}
	return Full, false
}

// maxAbsDelta returns the largest absolute value among the chunk's
// deltas, used only for error reporting.
func maxAbsDelta(deltas [SamplesPerChunk]int16) int32 {
	var max int32
	for _, d := range deltas {
		v := int32(d)
		if v < 0 {
			v = -v
		}
		if v > max {
			max = v
		}
	}
	return max
}

// run is a maximal contiguous sequence of chunks sharing one tier.
type run struct {
	tier  Tier
	count int // number of chunks, 1-64
}

// compressRuns folds the 64 per-chunk tier labels into an ordered list of
// runs.
func compressRuns(tiers [ChunksPerBlock]Tier) []run {
	runs := make([]run, 0, ChunksPerBlock)
	for i := 0; i < ChunksPerBlock; i++ {
		if i > 0 && tiers[i] == runs[len(runs)-1].tier {
			runs[len(runs)-1].count++
			continue
		}
		runs = append(runs, run{tier: tiers[i], count: 1})
	}
	return runs
}
