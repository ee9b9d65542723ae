/*
NAME
  header.go

DESCRIPTION
  header.go is the in-memory and on-wire representation of a block's
  size, terminal flag, and per-channel run tables (spec §3 "BlockHeader",
  §4.5).

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

import "encoding/binary"

// maxRunsPerChannel is the largest number of runs one channel's 64
// chunks can compress into.
const maxRunsPerChannel = ChunksPerBlock

// maxDataSize is the hard per-block payload size limit (15 bits).
const maxDataSize = 0x7FFF

// RunHeader packs a run's tier and chunk count into one byte: bits 6-7
// are the tier, bits 0-5 are count-1 (spec §3 "RunHeader", §6).
type RunHeader byte

// newRunHeader builds a RunHeader from a tier and a chunk count in [1,64].
func newRunHeader(t Tier, count int) RunHeader {
	return RunHeader(byte(t)<<6 | byte(count-1)&0x3F)
}

// Tier returns the run's precision tier.
func (h RunHeader) Tier() Tier { return Tier(h >> 6) }

// Count returns the run's chunk count, 1-64.
func (h RunHeader) Count() int { return int(h&0x3F) + 1 }

// TotalSamples returns the number of samples the run covers.
func (h RunHeader) TotalSamples() int { return h.Count() * SamplesPerChunk }

// BlockHeader is the in-memory representation of one block's header:
// payload size, terminal flag, and one run table per channel.
type BlockHeader struct {
	DataSize    int // payload byte length, 0-32767.
	IsLastBlock bool
	Channels    AudioChannels
	RunCount    [MaxChannels]int
	Runs        [MaxChannels][maxRunsPerChannel]RunHeader
}

// WireSize returns the number of bytes the header occupies on the wire:
// the 2-byte size word, one run-count byte per channel, and one
// RunHeader byte per run.
func (h *BlockHeader) WireSize() int {
	n := 2 + int(h.Channels)
	for c := 0; c < int(h.Channels); c++ {
		n += h.RunCount[c]
	}
	return n
}

// WriteTo serializes h to dst per spec §4.5 and returns the number of
// bytes written. dst must be at least WireSize() bytes.
func (h *BlockHeader) WriteTo(dst []byte) int {
	word := uint16(h.DataSize) & 0x7FFF
	if h.IsLastBlock {
		word |= 0x8000
	}
	binary.LittleEndian.PutUint16(dst, word)
	pos := 2

	for c := 0; c < int(h.Channels); c++ {
		dst[pos] = byte(h.RunCount[c])
		pos++
	}
	for c := 0; c < int(h.Channels); c++ {
		for i := 0; i < h.RunCount[c]; i++ {
			dst[pos] = byte(h.Runs[c][i])
			pos++
		}
	}
	return pos
}

// ReadBlockHeader parses a BlockHeader for a stream with the given
// channel count from src. It returns the header and the number of bytes
// consumed.
func ReadBlockHeader(src []byte, channels AudioChannels) (BlockHeader, int, error) {
	var h BlockHeader
	h.Channels = channels

	if len(src) < 2 {
		return h, 0, incompleteHeader("block size")
	}
	word := binary.LittleEndian.Uint16(src)
	h.DataSize = int(word & 0x7FFF)
	h.IsLastBlock = word&0x8000 != 0
	pos := 2

	if len(src) < pos+int(channels) {
		return h, 0, incompleteHeader("run counts")
	}
	for c := 0; c < int(channels); c++ {
		h.RunCount[c] = int(src[pos])
		pos++
	}

	for c := 0; c < int(channels); c++ {
		n := h.RunCount[c]
		if len(src) < pos+n {
			return h, 0, incompleteHeader("run headers")
		}
		for i := 0; i < n; i++ {
			h.Runs[c][i] = RunHeader(src[pos])
			pos++
		}
	}

	return h, pos, nil
}
