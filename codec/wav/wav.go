/*
NAME
  wav.go

DESCRIPTION
  wav.go builds a WAV container directly from RLAD-decoded int16
  samples. RLAD streams always decode to signed 16-bit PCM, so unlike a
  general-purpose WAV writer this package carries no bit-depth or
  format negotiation: every WAV it produces is PCMFormat, 16-bit.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package wav provides functions for building a WAV container from
// RLAD-decoded PCM audio.
package wav

import (
	"encoding/binary"
	"fmt"
)

// PCMFormat is the WAV-standard format tag for linear PCM.
const PCMFormat = 1

// bitDepth is fixed: RLAD always decodes to signed 16-bit samples.
const bitDepth = 16

var (
	errInvalidChannels = fmt.Errorf("invalid or no number of channels defined")
	errInvalidRate     = fmt.Errorf("invalid or no sample rate defined")
)

// Metadata defines the format of the audio a WAV holds.
type Metadata struct {
	Channels   int
	SampleRate int
}

// WAV holds a WAV container's metadata and its fully encoded bytes.
type WAV struct {
	Metadata Metadata
	Audio    []byte
}

// New builds a WAV containing the given interleaved 16-bit PCM samples
// at the given sample rate and channel count, as decoded by
// codec/rlad.Reader.
func New(samples []int16, sampleRate, channels int) (*WAV, error) {
	w := &WAV{Metadata: Metadata{Channels: channels, SampleRate: sampleRate}}
	if err := w.encode(samples); err != nil {
		return nil, err
	}
	return w, nil
}

// encode writes samples to w.Audio, header followed by data.
func (w *WAV) encode(samples []int16) error {
	if w.Metadata.Channels == 0 {
		return errInvalidChannels
	}
	if w.Metadata.SampleRate == 0 {
		return errInvalidRate
	}

	dataSize := len(samples) * 2
	header := make([]byte, 44)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(dataSize+44))
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // subchunk1 size.
	binary.LittleEndian.PutUint16(header[20:22], PCMFormat)
	binary.LittleEndian.PutUint16(header[22:24], uint16(w.Metadata.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(w.Metadata.SampleRate))
	byteRate := w.Metadata.SampleRate * bitDepth * w.Metadata.Channels / 8
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	blockAlign := bitDepth * w.Metadata.Channels / 8
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitDepth)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	w.Audio = make([]byte, 0, len(header)+dataSize)
	w.Audio = append(w.Audio, header...)
	for _, s := range samples {
		w.Audio = append(w.Audio, byte(s), byte(uint16(s)>>8))
	}
	return nil
}
