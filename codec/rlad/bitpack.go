/*
NAME
  bitpack.go

DESCRIPTION
  bitpack.go packs and unpacks eight signed deltas into 8*bps/8 bytes at
  one of RLAD's four precisions (spec §4.2). Values are packed
  little-endian-bit-first, LSB = sample 0: sample i occupies bits
  [i*bps, i*bps+bps) of the chunk's bit stream, numbered from the start of
  the chunk's first byte. This generic byte-at-a-time bit stream produces
  exactly the word-level layout spec §4.2 spells out for the 12-bit case,
  since a little-endian 32-bit word's bytes are, bit for bit, the same
  stream this function writes.

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

// chunkBytes returns the number of bytes eight samples occupy at bps
// bits-per-sample.
func chunkBytes(bps int) int {
	return (SamplesPerChunk * bps) / 8
}

// packChunk packs the eight deltas into dst at bps bits each, advancing
// no cursor of its own; dst must have length chunkBytes(bps) or more (only
// the first chunkBytes(bps) bytes are written).
func packChunk(bps int, deltas [SamplesPerChunk]int16, dst []byte) {
	mask := uint32(1)<<uint(bps) - 1
	var acc uint32
	accBits := 0
	pos := 0
	for _, d := range deltas {
		acc |= (uint32(uint16(d)) & mask) << uint(accBits)
		accBits += bps
		for accBits >= 8 {
			dst[pos] = byte(acc)
			acc >>= 8
			accBits -= 8
			pos++
		}
	}
	if accBits > 0 {
		dst[pos] = byte(acc)
	}
}

// unpackChunk unpacks eight bps-bit deltas from src, sign-extending each
// to 16 bits. src must have length chunkBytes(bps) or more.
func unpackChunk(bps int, src []byte) [SamplesPerChunk]int16 {
	mask := uint32(1)<<uint(bps) - 1
	shift := uint(16 - bps)

	var acc uint32
	accBits := 0
	pos := 0
	var out [SamplesPerChunk]int16
	for i := 0; i < SamplesPerChunk; i++ {
		for accBits < bps {
			acc |= uint32(src[pos]) << uint(accBits)
			accBits += 8
			pos++
		}
		raw := uint16(acc) & uint16(mask)
		acc >>= uint(bps)
		accBits -= bps
		out[i] = int16(raw<<shift) >> shift
	}
	return out
}
