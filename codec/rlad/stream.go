/*
NAME
  stream.go

DESCRIPTION
  stream.go implements the RLAD stream container: the file-level header
  (spec §3 "StreamHeader"), and a buffered Reader that decodes the block
  stream block-by-block while carrying over any partial-block overflow to
  satisfy arbitrary-sized reads (spec §4.6).

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
	"encoding/binary"
	"io"

	"github.com/ausocean/rlad/codec/codecutil"
	"github.com/ausocean/rlad/codec/sample"
	"github.com/ausocean/rlad/internal/rladlog"
)

// magic is the 4-byte RLAD file magic, little-endian literal 0x44414C52.
var magic = [4]byte{'R', 'L', 'A', 'D'}

// StreamHeaderSize is the fixed size, in bytes, of the RLAD file header.
const StreamHeaderSize = 16

// StreamHeader is the file-level header of an RLAD stream (spec §3).
type StreamHeader struct {
	Lossless        bool
	Channels        AudioChannels
	LastBlockFrames int
	SampleRate      uint32
	BlockCount      uint32
}

// FrameCount returns the total number of live frames described by h.
func (h StreamHeader) FrameCount() int64 {
	if h.BlockCount == 0 {
		return 0
	}
	return int64(h.BlockCount-1)*FramesPerBlock + int64(h.LastBlockFrames)
}

// Mode returns the coding mode implied by h.Lossless.
func (h StreamHeader) Mode() Mode {
	if h.Lossless {
		return Lossless
	}
	return Lossy
}

// WriteTo serializes h into dst, which must be at least StreamHeaderSize
// bytes, and returns the number of bytes written.
func (h StreamHeader) WriteTo(dst []byte) int {
	copy(dst[0:4], magic[:])
	if h.Lossless {
		dst[4] = 0xFF
	} else {
		dst[4] = 0x00
	}
	dst[5] = byte(h.Channels)
	binary.LittleEndian.PutUint16(dst[6:8], uint16(h.LastBlockFrames))
	binary.LittleEndian.PutUint32(dst[8:12], h.SampleRate)
	binary.LittleEndian.PutUint32(dst[12:16], h.BlockCount)
	return StreamHeaderSize
}

// ReadStreamHeader parses the StreamHeader from the first StreamHeaderSize
// bytes of src.
func ReadStreamHeader(src []byte) (StreamHeader, error) {
	var h StreamHeader
	if len(src) < StreamHeaderSize {
		return h, incompleteHeader("RLAD stream header")
	}
	if src[0] != magic[0] || src[1] != magic[1] || src[2] != magic[2] || src[3] != magic[3] {
		return h, badFormat("RLAD", "bad magic bytes")
	}
	switch src[4] {
	case 0xFF:
		h.Lossless = true
	case 0x00:
		h.Lossless = false
	default:
		return h, badFormat("RLAD", "invalid lossless flag byte")
	}
	h.Channels = AudioChannels(src[5])
	if !h.Channels.Valid() {
		return h, badFormat("RLAD", "invalid channel count in stream header")
	}
	h.LastBlockFrames = int(binary.LittleEndian.Uint16(src[6:8]))
	if h.LastBlockFrames < 1 || h.LastBlockFrames > FramesPerBlock {
		return h, badFormat("RLAD", "invalid last-block frame count")
	}
	h.SampleRate = binary.LittleEndian.Uint32(src[8:12])
	h.BlockCount = binary.LittleEndian.Uint32(src[12:16])
	if h.BlockCount < 1 {
		return h, badFormat("RLAD", "block count must be at least 1")
	}
	return h, nil
}

// Reader decodes an RLAD stream block-by-block, presenting it to callers
// as a flat sequence of frames via Read. A Reader owns its source, its
// scratch decode buffer, and its overflow buffer exclusively for its
// lifetime; it is not safe for concurrent use, and its position is
// undefined after any error (spec §5, §7).
type Reader struct {
	src      *codecutil.ByteScanner
	header   StreamHeader
	codec    *Codec
	blockIdx uint32

	// scratch holds one block's decoded samples (int16), sized
	// 512*channels.
	scratch []int16

	// overflow holds decoded samples from the current block that the
	// caller has not yet consumed.
	overflow    []int16
	overflowLen int
	overflowOff int

	delivered int64
	done      bool

	// logger receives Debug-level per-block decode events and
	// Error-level failures; nil means no-op (spec §10.2).
	logger rladlog.Logger
}

// log is a nil-safe helper so call sites don't need to check r.logger.
func (r *Reader) log(level int8, message string, params ...interface{}) {
	if r.logger == nil {
		return
	}
	r.logger.Log(level, message, params...)
}

// isShortRead reports whether err is io.ReadFull's signal for a short or
// empty read rather than some other, genuine I/O failure. Only short
// reads are turned into RLAD's typed incomplete-data/header errors; any
// other error is surfaced unchanged from the byte source (spec §7).
func isShortRead(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}

// Open parses an RLAD stream header from r and returns a Reader
// positioned at the first block. logger may be nil, in which case the
// Reader logs nothing.
func Open(r io.Reader, logger rladlog.Logger) (*Reader, error) {
	hdrBuf := make([]byte, StreamHeaderSize)
	scanner := codecutil.NewByteScanner(r, make([]byte, 32*1024))
	_, err := io.ReadFull(scanner, hdrBuf)
	if err != nil {
		if isShortRead(err) {
			return nil, incompleteHeader("RLAD stream header")
		}
		return nil, err
	}
	header, err := ReadStreamHeader(hdrBuf)
	if err != nil {
		return nil, err
	}
	codec, err := New(header.Mode(), header.Channels)
	if err != nil {
		return nil, err
	}

	frameSize := FramesPerBlock * int(header.Channels)
	return &Reader{
		src:      scanner,
		header:   header,
		codec:    codec,
		scratch:  make([]int16, frameSize),
		overflow: make([]int16, frameSize),
		logger:   logger,
	}, nil
}

// Channels returns the stream's channel layout.
func (r *Reader) Channels() AudioChannels { return r.header.Channels }

// SampleRate returns the stream's sample rate in Hz.
func (r *Reader) SampleRate() uint32 { return r.header.SampleRate }

// FrameCount returns the total number of live frames in the stream.
func (r *Reader) FrameCount() int64 { return r.header.FrameCount() }

// Remaining returns the number of frames not yet delivered by Read.
func (r *Reader) Remaining() int64 {
	return r.header.FrameCount() - r.delivered
}

// Read serves decoded frames into dst, a flat, channel-interleaved
// buffer of int16 samples. dst's length is rounded
// down to a whole number of frames. It returns the number of frames
// written; 0 once the stream is exhausted.
func (r *Reader) Read(dst []int16) (int, error) {
	return r.read(dst, nil)
}

// ReadFloat is like Read but converts decoded samples to normalized
// float32 via codec/sample.
func (r *Reader) ReadFloat(dst []float32) (int, error) {
	return r.read(nil, dst)
}

func (r *Reader) read(dstInt []int16, dstFloat []float32) (int, error) {
	channels := int(r.header.Channels)
	var frameCap int
	if dstInt != nil {
		frameCap = len(dstInt) / channels
	} else {
		frameCap = len(dstFloat) / channels
	}

	framesWritten := 0
	writeFrame := func(frame []int16) {
		if dstInt != nil {
			copy(dstInt[framesWritten*channels:], frame)
		} else {
			sample.ConvertShortToFloat(frame, dstFloat[framesWritten*channels:(framesWritten+1)*channels])
		}
		framesWritten++
		r.delivered++
	}

	// Serve from the overflow first.
	for framesWritten < frameCap && r.overflowOff < r.overflowLen {
		frame := r.overflow[r.overflowOff : r.overflowOff+channels]
		writeFrame(frame)
		r.overflowOff += channels
	}

	for framesWritten < frameCap && !r.done {
		if r.blockIdx >= r.header.BlockCount {
			r.done = true
			break
		}

		var sizeWord [2]byte
		if _, err := io.ReadFull(r.src, sizeWord[:]); err != nil {
			if isShortRead(err) {
				return framesWritten, incompleteHeader("block size")
			}
			r.log(rladlog.Error, "block size read failed", "error", err)
			return framesWritten, err
		}
		word := binary.LittleEndian.Uint16(sizeWord[:])
		dataSize := int(word & 0x7FFF)
		isLast := word&0x8000 != 0

		runCounts := make([]byte, channels)
		if _, err := io.ReadFull(r.src, runCounts); err != nil {
			if isShortRead(err) {
				return framesWritten, incompleteHeader("run counts")
			}
			r.log(rladlog.Error, "run counts read failed", "error", err)
			return framesWritten, err
		}

		var bh BlockHeader
		bh.Channels = r.header.Channels
		bh.DataSize = dataSize
		bh.IsLastBlock = isLast
		totalRuns := 0
		for c := 0; c < channels; c++ {
			bh.RunCount[c] = int(runCounts[c])
			totalRuns += bh.RunCount[c]
		}
		runBuf := make([]byte, totalRuns)
		if _, err := io.ReadFull(r.src, runBuf); err != nil {
			if isShortRead(err) {
				return framesWritten, incompleteHeader("run headers")
			}
			r.log(rladlog.Error, "run headers read failed", "error", err)
			return framesWritten, err
		}
		pos := 0
		for c := 0; c < channels; c++ {
			for i := 0; i < bh.RunCount[c]; i++ {
				bh.Runs[c][i] = RunHeader(runBuf[pos])
				pos++
			}
		}

		payload := make([]byte, dataSize)
		if _, err := io.ReadFull(r.src, payload); err != nil {
			if isShortRead(err) {
				return framesWritten, incompleteData("block data read", dataSize)
			}
			r.log(rladlog.Error, "block payload read failed", "error", err)
			return framesWritten, err
		}

		r.codec.SetHeader(bh)
		liveFrames := FramesPerBlock
		isLastStreamBlock := r.blockIdx == r.header.BlockCount-1
		if isLastStreamBlock {
			liveFrames = r.header.LastBlockFrames
		}
		r.blockIdx++
		r.log(rladlog.Debug, "decoded block", "index", r.blockIdx-1, "dataSize", dataSize, "liveFrames", liveFrames)

		if _, err := r.codec.Decode(payload, r.scratch); err != nil {
			return framesWritten, err
		}

		// Serve directly into the caller's buffer while there's room,
		// then carry the rest into overflow.
		f := 0
		for ; f < liveFrames && framesWritten < frameCap; f++ {
			frame := r.scratch[f*channels : (f+1)*channels]
			writeFrame(frame)
		}
		r.overflowLen = 0
		r.overflowOff = 0
		for ; f < liveFrames; f++ {
			copy(r.overflow[r.overflowLen:], r.scratch[f*channels:(f+1)*channels])
			r.overflowLen += channels
		}

		if isLastStreamBlock {
			r.done = true
		}
	}

	return framesWritten, nil
}
