/*
NAME
  pcm.go

DESCRIPTION
  pcm.go contains functions for processing RLAD's native sample type:
  interleaved, signed 16-bit PCM. Buffer carries samples directly as
  []int16 rather than as raw bytes, since every producer and consumer
  in this tree (codec/rlad.Reader, codec/wav, cmd/rladtool) already
  deals in int16.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pcm provides functions for processing and converting PCM
// audio decoded from or destined for an RLAD stream.
package pcm

import "fmt"

// BufferFormat describes the format of a PCM Buffer's samples.
type BufferFormat struct {
	Rate     uint
	Channels uint
}

// Buffer contains a buffer of interleaved, signed 16-bit PCM samples
// and the format that they're in.
type Buffer struct {
	Format  BufferFormat
	Samples []int16
}

// FromInt16 wraps samples, as produced by codec/rlad.Reader.Read, in a
// Buffer with the given rate and channel count.
func FromInt16(samples []int16, rate uint, channels uint) Buffer {
	return Buffer{Format: BufferFormat{Rate: rate, Channels: channels}, Samples: samples}
}

// DataSize takes audio attributes describing PCM audio data and returns the size of that data.
func DataSize(rate, channels, bitDepth uint, period float64) int {
	s := int(float64(channels) * float64(rate) * float64(bitDepth/8) * period)
	return s
}

// Resample takes Buffer c and resamples the pcm audio data to 'rate' Hz and returns a Buffer with the resampled data.
// Notes:
// 	- Currently only downsampling is implemented and c's rate must be divisible by 'rate' or an error will occur.
// 	- If the number of samples in c.Samples is not divisible by the decimation factor (ratioFrom), the remaining
// 	  samples will not be included in the result. Eg. input of 480002 frames downsampling 6:1 will result in
// 	  output of 80000 frames.
func Resample(c Buffer, rate uint) (Buffer, error) {
	if c.Format.Rate == rate {
		return c, nil
	}
	if rate == 0 {
		return Buffer{}, fmt.Errorf("unable to convert to: %v Hz", rate)
	}

	frameLen := int(c.Format.Channels)
	inFrames := len(c.Samples) / frameLen

	// Calculate sample rate ratio ratioFrom:ratioTo.
	rateGcd := gcd(rate, c.Format.Rate)
	ratioFrom := int(c.Format.Rate / rateGcd)
	ratioTo := int(rate / rateGcd)

	// ratioTo = 1 is the only number that will result in an even sampling.
	if ratioTo != 1 {
		return Buffer{}, fmt.Errorf("unhandled from:to rate ratio %v:%v: 'to' must be 1", ratioFrom, ratioTo)
	}

	outFrames := inFrames / ratioFrom
	resampled := make([]int16, 0, outFrames*frameLen)

	// For each new frame to be generated, loop through the respective 'ratioFrom' frames in c.Samples, per
	// channel, to add them up and average them. The result is the new frame.
	avg := make([]int16, frameLen)
	for i := 0; i < outFrames; i++ {
		for ch := 0; ch < frameLen; ch++ {
			var sum int
			for j := 0; j < ratioFrom; j++ {
				sum += int(c.Samples[(i*ratioFrom+j)*frameLen+ch])
			}
			avg[ch] = int16(sum / ratioFrom)
		}
		resampled = append(resampled, avg...)
	}

	// Return a new Buffer with resampled data.
	return Buffer{
		Format: BufferFormat{
			Channels: c.Format.Channels,
			Rate:     rate,
		},
		Samples: resampled,
	}, nil
}

// StereoToMono returns raw mono audio data generated from only the left channel from
// the given stereo Buffer
func StereoToMono(c Buffer) (Buffer, error) {
	if c.Format.Channels == 1 {
		return c, nil
	}
	if c.Format.Channels != 2 {
		return Buffer{}, fmt.Errorf("audio is not stereo or mono, it has %v channels", c.Format.Channels)
	}

	frames := len(c.Samples) / 2
	mono := make([]int16, frames)
	for i := 0; i < frames; i++ {
		mono[i] = c.Samples[i*2] // left channel.
	}

	// Return a new Buffer with the mono data.
	return Buffer{
		Format: BufferFormat{
			Channels: 1,
			Rate:     c.Format.Rate,
		},
		Samples: mono,
	}, nil
}

// gcd is used for calculating the greatest common divisor of two positive integers, a and b.
// assumes given a and b are positive.
func gcd(a, b uint) uint {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
