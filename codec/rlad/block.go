/*
NAME
  block.go

DESCRIPTION
  block.go implements end-to-end encode and decode of one 512-frame RLAD
  block: samples -> deltas -> classify -> pack -> header (encode), and
  header+packed -> unpack -> accumulate -> dequantize (decode). See
  spec §4.4.

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

import (
	"github.com/ausocean/rlad/codec/sample"
	"github.com/ausocean/rlad/internal/simd"
)

// Codec encodes and decodes single RLAD blocks for a fixed mode and
// channel count. One BlockHeader is produced per Encode call and
// consumed per Decode call; if the Codec is reused, previous header
// state is overwritten (spec §4.4, "Concurrent-encode contract").
//
// A Codec is not safe for concurrent use; see spec §5.
type Codec struct {
	mode     Mode
	channels AudioChannels

	header    BlockHeader
	hasHeader bool
}

// New returns a Codec for the given mode and channel layout.
func New(mode Mode, channels AudioChannels) (*Codec, error) {
	if !channels.Valid() {
		return nil, argumentOutOfRange("channels", int(channels))
	}
	return &Codec{mode: mode, channels: channels}, nil
}

// Options configures a Codec via NewFromOptions, as an alternative to
// New's positional arguments for callers that build configuration from
// e.g. flags or a config file (spec §1).
type Options struct {
	Mode     Mode
	Channels AudioChannels
}

// NewFromOptions is equivalent to New(o.Mode, o.Channels).
func NewFromOptions(o Options) (*Codec, error) {
	return New(o.Mode, o.Channels)
}

// Mode returns the codec's coding mode.
func (c *Codec) Mode() Mode { return c.mode }

// Channels returns the codec's channel layout.
func (c *Codec) Channels() AudioChannels { return c.channels }

// Header returns the BlockHeader produced by the last Encode call, or
// set by SetHeader for a subsequent Decode call.
func (c *Codec) Header() BlockHeader { return c.header }

// SetHeader installs the header a subsequent Decode call will use, as
// parsed from a stream by ReadBlockHeader.
func (c *Codec) SetHeader(h BlockHeader) {
	c.header = h
	c.hasHeader = true
}

// MaxPayloadSize returns the largest payload size Encode can produce for
// this codec's mode, one Full-tier run per channel.
func (c *Codec) MaxPayloadSize() int {
	return int(c.channels) * ChunksPerBlock * SamplesPerChunk * Full.BPS(c.mode) / 8
}

// Encode encodes 512 frames of interleaved 16-bit PCM samples into dst,
// producing a BlockHeader retrievable via Header. samples must contain
// exactly 512*Channels() values. isLast marks the header's terminal-block
// flag. It returns the number of payload bytes written to dst.
func (c *Codec) Encode(samples []int16, isLast bool, dst []byte) (int, error) {
	want := FramesPerBlock * int(c.channels)
	if len(samples) != want {
		return 0, invalidOperation("RLAD encoding must be given exactly %d samples (512 frames * %d channels), got %d", want, c.channels, len(samples))
	}

	var header BlockHeader
	header.Channels = c.channels
	header.IsLastBlock = isLast

	pos := 0
	for ch := 0; ch < int(c.channels); ch++ {
		var chanSamples [FramesPerBlock]int16
		for f := 0; f < FramesPerBlock; f++ {
			chanSamples[f] = samples[f*int(c.channels)+ch]
		}

		if c.mode == Lossy {
			quantized := chanSamples[:]
			simd.ShiftRight4(quantized)
		}

		deltas, tiers, err := classifyChannel(chanSamples, c.mode)
		if err != nil {
			return 0, err
		}
		runs := compressRuns(tiers)
		if len(runs) > maxRunsPerChannel {
			return 0, argumentOutOfRange("run count", len(runs))
		}
		header.RunCount[ch] = len(runs)

		chunkIdx := 0
		for i, r := range runs {
			header.Runs[ch][i] = newRunHeader(r.tier, r.count)
			bps := r.tier.BPS(c.mode)
			cb := chunkBytes(bps)
			for k := 0; k < r.count; k++ {
				var chunkDeltas [SamplesPerChunk]int16
				base := chunkIdx * SamplesPerChunk
				copy(chunkDeltas[:], deltas[base:base+SamplesPerChunk])
				if pos+cb > len(dst) {
					return 0, incompleteData("RLAD block encode", pos+cb-len(dst))
				}
				packChunk(bps, chunkDeltas, dst[pos:pos+cb])
				pos += cb
				chunkIdx++
			}
		}
	}

	header.DataSize = pos
	if header.DataSize > maxDataSize {
		return 0, argumentOutOfRange("dataSize", header.DataSize)
	}
	c.header = header
	c.hasHeader = true
	return pos, nil
}

// Decode decodes one block's packed payload (src) into dst, exactly
// 512*Channels() signed 16-bit samples, using the BlockHeader previously
// installed via Encode or SetHeader.
func (c *Codec) Decode(src []byte, dst []int16) (int, error) {
	if !c.hasHeader {
		return 0, invalidOperation("No block header has been set; call SetHeader or Encode first")
	}
	h := c.header
	if len(src) < h.DataSize {
		return 0, incompleteData("RLAD data decode", h.DataSize-len(src))
	}
	want := FramesPerBlock * int(c.channels)
	if len(dst) < want {
		return 0, invalidOperation("RLAD decoding requires a destination of at least %d samples, got %d", want, len(dst))
	}

	pos := 0
	for ch := 0; ch < int(c.channels); ch++ {
		var sum int16
		frame := 0
		for i := 0; i < h.RunCount[ch]; i++ {
			rh := h.Runs[ch][i]
			bps := rh.Tier().BPS(c.mode)
			cb := chunkBytes(bps)
			for k := 0; k < rh.Count(); k++ {
				if pos+cb > len(src) {
					return 0, incompleteData("RLAD data decode", pos+cb-len(src))
				}
				chunkDeltas := unpackChunk(bps, src[pos:pos+cb])
				pos += cb
				for _, d := range chunkDeltas {
					sum += d // modular 16-bit accumulation, matching the source's short-typed accumulator.
					dst[frame*int(c.channels)+ch] = sum
					frame++
				}
			}
		}
	}

	if c.mode == Lossy {
		simd.ShiftLeft4(dst[:want])
	}

	return want, nil
}

// DecodeFloat decodes like Decode, additionally converting the result to
// normalized float32 samples via codec/sample.
func (c *Codec) DecodeFloat(src []byte, dst []float32) (int, error) {
	want := FramesPerBlock * int(c.channels)
	if len(dst) < want {
		return 0, invalidOperation("RLAD decoding requires a destination of at least %d samples, got %d", want, len(dst))
	}
	scratch := make([]int16, want)
	n, err := c.Decode(src, scratch)
	if err != nil {
		return 0, err
	}
	sample.ConvertShortToFloat(scratch[:n], dst[:n])
	return n, nil
}
