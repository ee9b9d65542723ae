package rlad

import (
	"math/rand"
	"testing"
)

func randomFrames(n int, seed int64) []int16 {
	r := rand.New(rand.NewSource(seed))
	s := make([]int16, n)
	for i := range s {
		s[i] = int16(r.Intn(1<<16) - 1<<15)
	}
	return s
}

// TestLosslessRoundTrip implements spec §8 property 1: decode(encode(s))
// == s, exactly, for random mono input.
func TestLosslessRoundTrip(t *testing.T) {
	enc, err := New(Lossless, Mono)
	if err != nil {
		t.Fatal(err)
	}
	dec, err := New(Lossless, Mono)
	if err != nil {
		t.Fatal(err)
	}

	samples := randomFrames(FramesPerBlock, 42)
	dst := make([]byte, enc.MaxPayloadSize())
	n, err := enc.Encode(samples, true, dst)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	dec.SetHeader(enc.Header())
	out := make([]int16, FramesPerBlock)
	if _, err := dec.Decode(dst[:n], out); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	for i := range samples {
		if out[i] != samples[i] {
			t.Fatalf("sample %d: got %d, want %d", i, out[i], samples[i])
		}
	}
}

// TestLossyRoundTrip implements spec §8 property 2: decode_lossy(
// encode_lossy(s)) == (s>>4)<<4, exactly, element-wise.
func TestLossyRoundTrip(t *testing.T) {
	enc, err := New(Lossy, Stereo)
	if err != nil {
		t.Fatal(err)
	}
	dec, err := New(Lossy, Stereo)
	if err != nil {
		t.Fatal(err)
	}

	samples := randomFrames(FramesPerBlock*2, 7)
	dst := make([]byte, enc.MaxPayloadSize())
	n, err := enc.Encode(samples, false, dst)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	dec.SetHeader(enc.Header())
	out := make([]int16, FramesPerBlock*2)
	if _, err := dec.Decode(dst[:n], out); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	for i := range samples {
		want := (samples[i] >> 4) << 4
		if out[i] != want {
			t.Fatalf("sample %d: got %d, want %d", i, out[i], want)
		}
	}
}

// TestRunInvariants checks spec §8 properties 5 and 6: a channel's runs
// cover exactly 512 samples, and dataSize matches the sum of bps*count
// across all runs and channels.
func TestRunInvariants(t *testing.T) {
	enc, err := New(Lossless, Stereo)
	if err != nil {
		t.Fatal(err)
	}
	samples := randomFrames(FramesPerBlock*2, 99)
	dst := make([]byte, enc.MaxPayloadSize())
	n, err := enc.Encode(samples, false, dst)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	h := enc.Header()
	wantSize := 0
	for ch := 0; ch < int(h.Channels); ch++ {
		total := 0
		for i := 0; i < h.RunCount[ch]; i++ {
			r := h.Runs[ch][i]
			total += r.TotalSamples()
			wantSize += r.Tier().BPS(Lossless) * r.Count()
		}
		if total != FramesPerBlock {
			t.Errorf("channel %d: runs cover %d samples, want %d", ch, total, FramesPerBlock)
		}
	}
	if wantSize != h.DataSize {
		t.Errorf("DataSize = %d, want %d", h.DataSize, wantSize)
	}
	if n != h.DataSize {
		t.Errorf("Encode() returned %d bytes, want DataSize %d", n, h.DataSize)
	}
}

// quartersPattern builds the spec §8 "Quarters" scenario: s[i] = 0 for
// even i, s[i] = 5*10^(i/128) for odd i.
func quartersPattern() []int16 {
	s := make([]int16, FramesPerBlock)
	for i := 0; i < FramesPerBlock; i++ {
		if i%2 == 0 {
			continue
		}
		v := 5
		for e := 0; e < i/128; e++ {
			v *= 10
		}
		s[i] = int16(v)
	}
	return s
}

func TestQuartersDataSize(t *testing.T) {
	enc, err := New(Lossless, Mono)
	if err != nil {
		t.Fatal(err)
	}
	samples := quartersPattern()
	dst := make([]byte, enc.MaxPayloadSize())
	n, err := enc.Encode(samples, true, dst)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if n != 640 {
		t.Errorf("DataSize = %d, want 640", n)
	}
}

// allDifferentPattern builds the spec §8 "All-different" scenario:
// s[i] = 5*10^((i%32)/8) when i%8==0, else 0.
func allDifferentPattern() []int16 {
	s := make([]int16, FramesPerBlock)
	for i := 0; i < FramesPerBlock; i++ {
		if i%8 != 0 {
			continue
		}
		v := 5
		for e := 0; e < (i%32)/8; e++ {
			v *= 10
		}
		s[i] = int16(v)
	}
	return s
}

func TestAllDifferentDataSize(t *testing.T) {
	tests := []struct {
		mode Mode
		want int
	}{
		{Lossless, 640},
		{Lossy, 416},
	}
	for _, tt := range tests {
		enc, err := New(tt.mode, Mono)
		if err != nil {
			t.Fatal(err)
		}
		samples := allDifferentPattern()
		dst := make([]byte, enc.MaxPayloadSize())
		n, err := enc.Encode(samples, true, dst)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		if n != tt.want {
			t.Errorf("mode %v: DataSize = %d, want %d", tt.mode, n, tt.want)
		}
	}
}

// TestStereoDuplicate implements spec §8's "Stereo duplicate" scenario:
// the same All-different pattern on both channels must produce identical
// per-channel run sequences.
func TestStereoDuplicate(t *testing.T) {
	enc, err := New(Lossless, Stereo)
	if err != nil {
		t.Fatal(err)
	}
	mono := allDifferentPattern()
	interleaved := make([]int16, FramesPerBlock*2)
	for i, v := range mono {
		interleaved[i*2] = v
		interleaved[i*2+1] = v
	}
	dst := make([]byte, enc.MaxPayloadSize())
	if _, err := enc.Encode(interleaved, true, dst); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	h := enc.Header()
	if h.RunCount[0] != h.RunCount[1] {
		t.Fatalf("RunCount differs between channels: %d vs %d", h.RunCount[0], h.RunCount[1])
	}
	for i := 0; i < h.RunCount[0]; i++ {
		if h.Runs[0][i] != h.Runs[1][i] {
			t.Errorf("run %d differs between channels: %v vs %v", i, h.Runs[0][i], h.Runs[1][i])
		}
	}
}

// TestStereoAsymmetric implements spec §8's "Stereo asymmetric" scenario.
func TestStereoAsymmetric(t *testing.T) {
	enc, err := New(Lossless, Stereo)
	if err != nil {
		t.Fatal(err)
	}
	interleaved := make([]int16, FramesPerBlock*2)
	for i := 0; i < FramesPerBlock; i++ {
		if i%2 == 0 {
			continue
		}
		interleaved[i*2] = 5      // left: classifies all-Tiny.
		interleaved[i*2+1] = 5000 // right: classifies all-Full.
	}
	dst := make([]byte, enc.MaxPayloadSize())
	n, err := enc.Encode(interleaved, true, dst)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	h := enc.Header()
	if h.RunCount[0] != 1 || h.Runs[0][0].Tier() != Tiny || h.Runs[0][0].Count() != 64 {
		t.Errorf("left channel run = %+v, want 1 run, tier Tiny, count 64", h.Runs[0][0])
	}
	if h.RunCount[1] != 1 || h.Runs[1][0].Tier() != Full || h.Runs[1][0].Count() != 64 {
		t.Errorf("right channel run = %+v, want 1 run, tier Full, count 64", h.Runs[1][0])
	}
	if n != 1280 {
		t.Errorf("DataSize = %d, want 1280", n)
	}
}

func TestEncodePreconditionFailure(t *testing.T) {
	enc, err := New(Lossless, Mono)
	if err != nil {
		t.Fatal(err)
	}
	_, err = enc.Encode([]int16{0}, true, make([]byte, 1024))
	ioe, ok := err.(*InvalidOperationError)
	if !ok {
		t.Fatalf("Encode() error = %v (%T), want *InvalidOperationError", err, err)
	}
	if len(ioe.Msg) < len("RLAD encoding must") || ioe.Msg[:len("RLAD encoding must")] != "RLAD encoding must" {
		t.Errorf("error message %q does not have prefix %q", ioe.Msg, "RLAD encoding must")
	}
}

func TestDecodeWithoutHeaderFailure(t *testing.T) {
	dec, err := New(Lossless, Mono)
	if err != nil {
		t.Fatal(err)
	}
	_, err = dec.Decode(make([]byte, 10), make([]int16, FramesPerBlock))
	ioe, ok := err.(*InvalidOperationError)
	if !ok {
		t.Fatalf("Decode() error = %v (%T), want *InvalidOperationError", err, err)
	}
	const prefix = "No block header"
	if len(ioe.Msg) < len(prefix) || ioe.Msg[:len(prefix)] != prefix {
		t.Errorf("error message %q does not have prefix %q", ioe.Msg, prefix)
	}
}

func TestDecodeShortPayloadFailure(t *testing.T) {
	enc, err := New(Lossless, Mono)
	if err != nil {
		t.Fatal(err)
	}
	samples := randomFrames(FramesPerBlock, 5)
	dst := make([]byte, enc.MaxPayloadSize())
	n, err := enc.Encode(samples, true, dst)
	if err != nil {
		t.Fatal(err)
	}

	dec, err := New(Lossless, Mono)
	if err != nil {
		t.Fatal(err)
	}
	dec.SetHeader(enc.Header())
	_, err = dec.Decode(dst[:n-1], make([]int16, FramesPerBlock))
	ide, ok := err.(*IncompleteDataError)
	if !ok {
		t.Fatalf("Decode() error = %v (%T), want *IncompleteDataError", err, err)
	}
	if ide.Op != "RLAD data decode" {
		t.Errorf("IncompleteDataError.Op = %q, want %q", ide.Op, "RLAD data decode")
	}
}

func TestInvalidChannelCount(t *testing.T) {
	if _, err := New(Lossless, AudioChannels(3)); err == nil {
		t.Fatal("New() with invalid channel count succeeded, want error")
	}
}
