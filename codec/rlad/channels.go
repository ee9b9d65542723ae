/*
NAME
  channels.go

DESCRIPTION
  channels.go defines the supported RLAD channel layouts (spec §3).

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

// AudioChannels enumerates the channel layouts RLAD supports. Its integer
// value is the channel count.
type AudioChannels byte

const (
	Mono          AudioChannels = 1
	Stereo        AudioChannels = 2
	Quadraphonic  AudioChannels = 4
	FiveOne       AudioChannels = 6
	SevenOne      AudioChannels = 8
)

// MaxChannels is the largest channel count RLAD supports.
const MaxChannels = 8

// FramesPerBlock is the fixed number of frames encoded per block, except
// possibly the last (spec §3, "Block").
const FramesPerBlock = 512

// SamplesPerChunk is the fixed chunk size used for delta classification
// and bit packing (spec §3, "Chunk").
const SamplesPerChunk = 8

// ChunksPerBlock is the number of chunks of one channel in a full block.
const ChunksPerBlock = FramesPerBlock / SamplesPerChunk

// Valid reports whether c is one of the enumerated channel layouts.
func (c AudioChannels) Valid() bool {
	switch c {
	case Mono, Stereo, Quadraphonic, FiveOne, SevenOne:
		return true
	default:
		return false
	}
}

// String returns the canonical name of the channel layout.
func (c AudioChannels) String() string {
	switch c {
	case Mono:
		return "mono"
	case Stereo:
		return "stereo"
	case Quadraphonic:
		return "quadraphonic"
	case FiveOne:
		return "5.1"
	case SevenOne:
		return "7.1"
	default:
		return "unknown"
	}
}
