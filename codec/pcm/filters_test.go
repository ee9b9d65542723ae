/*
NAME
  filters_test.go

DESCRIPTION
  filters_test.go contains functions for testing functions in filters.go.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pcm

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/mjibson/go-dsp/fft"
)

// Set constant values for testing.
const (
	sampleRate   = 44100
	filterLength = 500
	freqTest     = 1000
)

// TestLowPass is used to test the lowpass constructor and application. Testing is done by ensuring frequency response
// stays below the cutoff.
func TestLowPass(t *testing.T) {
	buf := Buffer{Samples: generate(), Format: BufferFormat{Rate: sampleRate, Channels: 1}}

	const fc = 4500.0
	lp, err := NewLowPass(fc, buf.Format, filterLength)
	if err != nil {
		t.Fatal(err)
	}

	filtered, err := lp.Apply(buf)
	if err != nil {
		t.Fatal(err)
	}

	filteredFFT := fft.FFTReal(samplesToFloats(filtered))
	for i := int(fc); i < sampleRate/2; i++ {
		mag := math.Pow(cmplx.Abs(filteredFFT[i]), 2)
		if mag > freqTest {
			t.Error("Lowpass filter failed to meet spec.")
			break
		}
	}
}

// TestHighPass is used to test the highpass constructor and application. Testing is done by ensuring frequency
// response stays below the cutoff.
func TestHighPass(t *testing.T) {
	buf := Buffer{Samples: generate(), Format: BufferFormat{Rate: sampleRate, Channels: 1}}

	const fc = 4500.0
	hp, err := NewHighPass(fc, buf.Format, filterLength)
	if err != nil {
		t.Fatal(err)
	}

	filtered, err := hp.Apply(buf)
	if err != nil {
		t.Fatal(err)
	}

	filteredFFT := fft.FFTReal(samplesToFloats(filtered))
	for i := 0; i < int(fc); i++ {
		mag := math.Pow(cmplx.Abs(filteredFFT[i]), 2)
		if mag > freqTest {
			t.Error("Highpass Filter doesn't meet Spec", i)
		}
	}
}

// TestBandPass is used to test the bandpass constructor and application.
func TestBandPass(t *testing.T) {
	buf := Buffer{Samples: generate(), Format: BufferFormat{Rate: sampleRate, Channels: 1}}

	const (
		fc_l = 4500.0
		fc_u = 9500.0
	)
	bp, err := NewBandPass(fc_l, fc_u, buf.Format, filterLength)
	if err != nil {
		t.Fatal(err)
	}

	filtered, err := bp.Apply(buf)
	if err != nil {
		t.Fatal(err)
	}

	filteredFFT := fft.FFTReal(samplesToFloats(filtered))
	for i := 0; i < int(fc_l); i++ {
		mag := math.Pow(cmplx.Abs(filteredFFT[i]), 2)
		if mag > freqTest {
			t.Error("Bandpass Filter doesn't meet Spec", i)
		}
	}
	for i := int(fc_u); i < sampleRate/2; i++ {
		mag := math.Pow(cmplx.Abs(filteredFFT[i]), 2)
		if mag > freqTest {
			t.Error("Bandpass Filter doesn't meet Spec", i)
		}
	}
}

// TestBandStop is used to test the bandstop constructor and application.
func TestBandStop(t *testing.T) {
	buf := Buffer{Samples: generate(), Format: BufferFormat{Rate: sampleRate, Channels: 1}}

	const (
		fc_l = 4500.0
		fc_u = 9500.0
	)
	bs, err := NewBandStop(fc_l, fc_u, buf.Format, filterLength)
	if err != nil {
		t.Fatal(err)
	}

	filtered, err := bs.Apply(buf)
	if err != nil {
		t.Fatal(err)
	}

	filteredFFT := fft.FFTReal(samplesToFloats(filtered))
	for i := int(fc_l); i < int(fc_u); i++ {
		mag := math.Pow(cmplx.Abs(filteredFFT[i]), 2)
		if mag > freqTest {
			t.Error("BandStop Filter doesn't meet Spec", i)
		}
	}
}

// TestAmplifier is used to test the amplifier constructor and application. Testing is done by checking the
// maximum sample value before and after application.
func TestAmplifier(t *testing.T) {
	buf := Buffer{Samples: sine(0.1, 440, sampleRate), Format: BufferFormat{Rate: sampleRate, Channels: 1}}

	const factor = 5.0
	amp := NewAmplifier(factor)

	filtered, err := amp.Apply(buf)
	if err != nil {
		t.Fatal(err)
	}

	preMax := maxAbs(samplesToFloats(buf.Samples))
	postMax := maxAbs(samplesToFloats(filtered))

	if preMax*factor > 1 && postMax > 0.99 {
	} else if postMax/preMax > 1.01*factor || postMax/preMax < 0.99*factor {
		t.Error("Amplifier failed to meet spec, expected:", factor, " got:", postMax/preMax)
	}
}

// generate returns a signal built from a range of frequencies, for testing filter response.
func generate() []int16 {
	t := make([]float64, sampleRate)
	s := make([]float64, sampleRate)
	const (
		deltaFreq = 1000
		maxFreq   = 21000
		amplitude = float64(deltaFreq) / float64(maxFreq-deltaFreq)
	)
	for n := 0; n < sampleRate; n++ {
		t[n] = float64(n) / float64(sampleRate)
		s[n] = 0
		for f := deltaFreq; f < maxFreq; f += deltaFreq {
			s[n] += amplitude * math.Sin(float64(f)*2*math.Pi*t[n])
		}
	}
	return floatsToSamples(s)
}

// sine returns amplitude*sin(2*pi*freq*t) sampled at sampleRate for n samples.
func sine(amplitude, freq float64, n int) []int16 {
	s := make([]float64, n)
	for i := range s {
		s[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return floatsToSamples(s)
}

// maxAbs returns the absolute largest value in the slice.
func maxAbs(a []float64) float64 {
	var runMax float64 = -1
	for i := range a {
		if math.Abs(a[i]) > runMax {
			runMax = math.Abs(a[i])
		}
	}
	return runMax
}
