/*
NAME
  main.go

DESCRIPTION
  rladtool is a command-line tool for encoding raw PCM to RLAD streams,
  decoding RLAD streams back to PCM or WAV, inspecting a stream's
  header, and replaying decoded audio at its native sample rate.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// rladtool is a command-line tool for the RLAD audio codec: encode,
// decode, info, and play subcommands.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/ausocean/rlad/codec/codecutil"
	"github.com/ausocean/rlad/codec/format"
	"github.com/ausocean/rlad/codec/pcm"
	"github.com/ausocean/rlad/codec/rlad"
	"github.com/ausocean/rlad/codec/wav"
	"github.com/ausocean/rlad/internal/rladlog"
)

// Logging related constants, matching the teacher's looper layout.
const (
	logPath      = "rladtool.log"
	logMaxSizeMB = 50
	logMaxBackup = 5
	logMaxAgeDay = 28
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	l := rladlog.NewFileLogger(logPath, logMaxSizeMB, logMaxBackup, logMaxAgeDay)

	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(os.Args[2:], l)
	case "decode":
		err = runDecode(os.Args[2:], l)
	case "info":
		err = runInfo(os.Args[2:], l)
	case "play":
		err = runPlay(os.Args[2:], l)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		l.Log(rladlog.Error, "rladtool failed", "error", err)
		fmt.Fprintln(os.Stderr, "rladtool:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: rladtool <command> [flags]

commands:
  encode  encode a raw PCM file to an RLAD stream
  decode  decode an RLAD stream to raw PCM or WAV
  info    print an RLAD stream's header
  play    decode and replay an RLAD stream at its native rate`)
}

func runEncode(args []string, l rladlog.Logger) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	in := fs.String("in", "", "input raw S16_LE PCM file")
	out := fs.String("out", "", "output .rlad file")
	channels := fs.Int("channels", 1, "number of interleaved channels")
	rate := fs.Uint("rate", 48000, "sample rate in Hz")
	lossy := fs.Bool("lossy", false, "use RLAD lossy mode instead of lossless")
	fs.Parse(args)

	if *in == "" || *out == "" {
		return errors.New("encode requires -in and -out")
	}
	ch := rlad.AudioChannels(*channels)
	if !ch.Valid() {
		return errors.Errorf("invalid -channels value %d", *channels)
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		return errors.Wrap(err, "reading input file")
	}
	samples := bytesToInt16(raw)
	frameSize := rlad.FramesPerBlock * int(ch)

	kind := format.RladLossless
	if *lossy {
		kind = format.RladLossy
	}
	mode, _ := kind.Mode()
	codec, err := rlad.NewFromOptions(rlad.Options{Mode: mode, Channels: ch})
	if err != nil {
		return errors.Wrap(err, "constructing codec")
	}

	f, err := os.Create(*out)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}
	defer f.Close()

	blockCount := (len(samples) + frameSize - 1) / frameSize
	if blockCount == 0 {
		blockCount = 1
	}
	lastBlockFrames := lastBlockFrameCount(len(samples), int(ch), blockCount)

	hdr := rlad.StreamHeader{
		Lossless:        mode == rlad.Lossless,
		Channels:        ch,
		LastBlockFrames: lastBlockFrames,
		SampleRate:      uint32(*rate),
		BlockCount:      uint32(blockCount),
	}
	hdrBuf := make([]byte, rlad.StreamHeaderSize)
	hdr.WriteTo(hdrBuf)
	if _, err := f.Write(hdrBuf); err != nil {
		return errors.Wrap(err, "writing stream header")
	}

	payload := make([]byte, codec.MaxPayloadSize())
	for b := 0; b < blockCount; b++ {
		block := make([]int16, frameSize)
		start := b * frameSize
		copy(block, samples[start:]) // remaining entries stay zero-padded.
		isLast := b == blockCount-1

		pn, err := codec.Encode(block, isLast, payload)
		if err != nil {
			return errors.Wrapf(err, "encoding block %d", b)
		}
		bh := codec.Header()
		blockBuf := make([]byte, bh.WireSize())
		bh.WriteTo(blockBuf)
		if _, err := f.Write(blockBuf); err != nil {
			return errors.Wrap(err, "writing block header")
		}
		if _, err := f.Write(payload[:pn]); err != nil {
			return errors.Wrap(err, "writing block payload")
		}
		l.Log(rladlog.Debug, "encoded block", "index", b, "bytes", pn)
	}
	l.Log(rladlog.Info, "encode complete", "blocks", blockCount, "out", *out)
	return nil
}

// lastBlockFrameCount returns how many of the final block's 512 frames
// are live, given the total interleaved sample count, channel count, and
// block count.
func lastBlockFrameCount(totalSamples, channels, blockCount int) int {
	totalFrames := totalSamples / channels
	remainder := totalFrames - (blockCount-1)*rlad.FramesPerBlock
	if remainder <= 0 || remainder > rlad.FramesPerBlock {
		return rlad.FramesPerBlock
	}
	return remainder
}

func runDecode(args []string, l rladlog.Logger) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	in := fs.String("in", "", "input .rlad file")
	out := fs.String("out", "", "output file (raw PCM or .wav)")
	asWav := fs.Bool("wav", false, "write a .wav file instead of raw PCM")
	lowpass := fs.Float64("lowpass", 0, "if set, apply a post-decode lowpass filter with this cutoff in Hz")
	fs.Parse(args)

	if *in == "" || *out == "" {
		return errors.New("decode requires -in and -out")
	}

	f, err := os.Open(*in)
	if err != nil {
		return errors.Wrap(err, "opening input file")
	}
	defer f.Close()

	src, err := format.Open(format.RladLossless, f, 0, 0, l)
	if err != nil {
		return errors.Wrap(err, "opening RLAD stream")
	}
	l.Log(rladlog.Info, "decoding stream", "channels", src.Channels(), "rate", src.SampleRate())

	var all []int16
	buf := make([]int16, rlad.FramesPerBlock*int(src.Channels()))
	for {
		n, err := src.Read(buf)
		if err != nil {
			return errors.Wrap(err, "reading decoded samples")
		}
		if n == 0 {
			break
		}
		all = append(all, buf[:n*int(src.Channels())]...)
	}

	b := pcm.FromInt16(all, uint(src.SampleRate()), uint(src.Channels()))
	if *lowpass > 0 {
		const taps = 255
		lp, err := pcm.NewLowPass(*lowpass, b.Format, taps)
		if err != nil {
			return errors.Wrap(err, "constructing lowpass filter")
		}
		filtered, err := lp.Apply(b)
		if err != nil {
			return errors.Wrap(err, "applying lowpass filter")
		}
		b.Samples = filtered
		l.Log(rladlog.Debug, "applied post-decode lowpass", "cutoffHz", *lowpass)
	}

	if *asWav {
		w, err := wav.New(b.Samples, int(src.SampleRate()), int(src.Channels()))
		if err != nil {
			return errors.Wrap(err, "building WAV")
		}
		return os.WriteFile(*out, w.Audio, 0644)
	}
	return os.WriteFile(*out, int16ToBytes(b.Samples), 0644)
}

func runInfo(args []string, l rladlog.Logger) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	in := fs.String("in", "", "input .rlad file")
	fs.Parse(args)
	if *in == "" {
		return errors.New("info requires -in")
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		return errors.Wrap(err, "reading input file")
	}
	hdr, err := rlad.ReadStreamHeader(raw)
	if err != nil {
		return errors.Wrap(err, "parsing stream header")
	}

	fmt.Printf("mode:        %v\n", hdr.Mode())
	fmt.Printf("channels:    %v\n", hdr.Channels)
	fmt.Printf("sample rate: %d Hz\n", hdr.SampleRate)
	fmt.Printf("blocks:      %d\n", hdr.BlockCount)
	fmt.Printf("frames:      %d\n", hdr.FrameCount())
	return nil
}

func runPlay(args []string, l rladlog.Logger) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	in := fs.String("in", "", "input .rlad file")
	fs.Parse(args)
	if *in == "" {
		return errors.New("play requires -in")
	}

	f, err := os.Open(*in)
	if err != nil {
		return errors.Wrap(err, "opening input file")
	}
	defer f.Close()

	src, err := format.Open(format.RladLossless, f, 0, 0, l)
	if err != nil {
		return errors.Wrap(err, "opening RLAD stream")
	}

	const chunkFrames = 256
	buf := make([]int16, chunkFrames*int(src.Channels()))
	var decoded bytes.Buffer
	for {
		n, err := src.Read(buf)
		if err != nil {
			return errors.Wrap(err, "reading decoded samples")
		}
		if n == 0 {
			break
		}
		decoded.Write(int16ToBytes(buf[:n*int(src.Channels())]))
	}

	lexer, err := codecutil.NewByteLexer(chunkFrames * int(src.Channels()) * 2)
	if err != nil {
		return errors.Wrap(err, "constructing byte lexer")
	}
	period := time.Second * time.Duration(chunkFrames) / time.Duration(src.SampleRate())
	l.Log(rladlog.Info, "playing stream", "period", period)
	return lexer.Lex(os.Stdout, &decoded, period)
}

func bytesToInt16(b []byte) []int16 {
	samples := make([]int16, len(b)/2)
	for i := range samples {
		samples[i] = int16(uint16(b[i*2]) | uint16(b[i*2+1])<<8)
	}
	return samples
}

func int16ToBytes(s []int16) []byte {
	b := make([]byte, len(s)*2)
	for i, v := range s {
		b[i*2] = byte(v)
		b[i*2+1] = byte(uint16(v) >> 8)
	}
	return b
}
