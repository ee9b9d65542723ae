/*
NAME
  convert.go

DESCRIPTION
  convert.go provides bit-exact short<->float LPCM sample conversion, as
  used throughout the RLAD codec (spec §4.1).

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package sample provides conversion between signed 16-bit PCM samples
// and their normalized float32 equivalent, dispatching to a SIMD-width or
// scalar implementation depending on the host CPU (see internal/simd).
package sample

import "github.com/ausocean/rlad/internal/simd"

// ConvertShortToFloat converts src to dst, dst[i] = src[i] / 32767. It
// returns the number of samples converted, min(len(src), len(dst)). A
// zero-length input returns 0 without touching either slice.
func ConvertShortToFloat(src []int16, dst []float32) int {
	return simd.ShortToFloat(src, dst)
}

// ConvertFloatToShort converts src to dst, dst[i] =
// saturate_i16(round(src[i] * 32767)). It returns the number of samples
// converted, min(len(src), len(dst)). Non-finite values in src are not
// explicitly handled and produce undefined results, matching the source
// this codec was modeled on.
func ConvertFloatToShort(src []float32, dst []int16) int {
	return simd.FloatToShort(src, dst)
}
