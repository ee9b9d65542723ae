/*
NAME
  format.go

DESCRIPTION
  format.go replaces the base-class polymorphism of the original
  implementation with a small Go sum type: a Kind enum plus a Source
  interface that codec/rlad's Reader and a raw PCM passthrough both
  satisfy, so any of the four supported formats can be opened through
  one call; cmd/rladtool uses it to open RLAD streams.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package format provides a uniform decode-side interface over the
// formats this repository understands: raw PCM, raw float32 PCM, and
// RLAD lossless/lossy.
package format

import (
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/ausocean/rlad/codec/codecutil"
	"github.com/ausocean/rlad/codec/rlad"
	"github.com/ausocean/rlad/internal/rladlog"
)

// Kind identifies one of the formats this package can open a Source for.
type Kind string

// The formats known to this package, matching codecutil's format list.
const (
	RawPCM       Kind = codecutil.PCM
	RawFloat     Kind = codecutil.PCMFloat
	RladLossless Kind = codecutil.RladLossless
	RladLossy    Kind = codecutil.RladLossy
)

// Valid reports whether k is one of the Kinds this package supports.
func (k Kind) Valid() bool { return codecutil.IsValid(string(k)) }

// Mode returns the rlad.Mode implied by k, and false if k isn't one of
// the RLAD kinds.
func (k Kind) Mode() (rlad.Mode, bool) {
	switch k {
	case RladLossless:
		return rlad.Lossless, true
	case RladLossy:
		return rlad.Lossy, true
	default:
		return 0, false
	}
}

// Source is a decodable audio source: a stream of interleaved samples
// with a known channel layout and sample rate. codec/rlad.Reader and the
// rawSource defined in this package both implement it.
type Source interface {
	// Channels returns the number of interleaved channels.
	Channels() rlad.AudioChannels

	// SampleRate returns the sample rate in Hz, or 0 if the format has
	// no embedded rate (RawPCM, RawFloat).
	SampleRate() uint32

	// Read fills dst, a flat interleaved int16 buffer, and returns the
	// number of frames written. 0, nil at end of source.
	Read(dst []int16) (int, error)

	// ReadFloat is like Read but produces normalized float32 samples.
	ReadFloat(dst []float32) (int, error)
}

// Open returns a Source over r for the given Kind. channels and
// sampleRate are required for RawPCM and RawFloat, which carry no
// embedded header; they are ignored for the RLAD kinds, which read
// their own stream header from r. logger may be nil, in which case the
// RLAD kinds log nothing; it's unused for the raw kinds.
func Open(k Kind, r io.Reader, channels rlad.AudioChannels, sampleRate uint32, logger rladlog.Logger) (Source, error) {
	switch k {
	case RladLossless, RladLossy:
		rr, err := rlad.Open(r, logger)
		if err != nil {
			return nil, errors.Wrap(err, "format: opening RLAD stream")
		}
		return rr, nil
	case RawPCM, RawFloat:
		if !channels.Valid() {
			return nil, errors.Errorf("format: invalid channel count %d for raw source", channels)
		}
		return &rawSource{r: r, channels: channels, sampleRate: sampleRate, float: k == RawFloat}, nil
	default:
		return nil, errors.Errorf("format: unknown kind %q", k)
	}
}

// rawSource adapts an io.Reader of raw, headerless interleaved PCM (int16
// or float32, depending on kind) to the Source interface.
type rawSource struct {
	r          io.Reader
	channels   rlad.AudioChannels
	sampleRate uint32
	float      bool
}

func (s *rawSource) Channels() rlad.AudioChannels { return s.channels }
func (s *rawSource) SampleRate() uint32           { return s.sampleRate }

func (s *rawSource) Read(dst []int16) (int, error) {
	if s.float {
		return 0, errors.New("format: raw float32 source cannot be read as int16; use ReadFloat")
	}
	buf := make([]byte, len(dst)*2)
	n, err := io.ReadFull(s.r, buf)
	frames := (n / 2) / int(s.channels)
	samples := frames * int(s.channels)
	for i := 0; i < samples; i++ {
		dst[i] = int16(uint16(buf[i*2]) | uint16(buf[i*2+1])<<8)
	}
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		err = nil
	}
	return frames, err
}

func (s *rawSource) ReadFloat(dst []float32) (int, error) {
	if !s.float {
		return 0, errors.New("format: raw int16 source cannot be read as float32; use Read")
	}
	buf := make([]byte, len(dst)*4)
	n, err := io.ReadFull(s.r, buf)
	frames := (n / 4) / int(s.channels)
	samples := frames * int(s.channels)
	for i := 0; i < samples; i++ {
		bits := uint32(buf[i*4]) | uint32(buf[i*4+1])<<8 | uint32(buf[i*4+2])<<16 | uint32(buf[i*4+3])<<24
		dst[i] = math.Float32frombits(bits)
	}
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		err = nil
	}
	return frames, err
}
