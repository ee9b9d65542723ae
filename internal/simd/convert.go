/*
NAME
  convert.go

DESCRIPTION
  convert.go implements the short<->float sample conversion of spec §4.1
  at each dispatch level.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package simd

import "math"

// scaleFactor maps the full signed 16-bit range onto [-1, 1].
const scaleFactor = 32767.0

// ShortToFloat converts src to dst, dst[i] = src[i] / 32767. The number of
// elements converted is min(len(src), len(dst)); excess elements of the
// longer slice are left untouched.
func ShortToFloat(src []int16, dst []float32) int {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	if n == 0 {
		return 0
	}
	switch Detect() {
	case Width256:
		shortToFloat256(src[:n], dst[:n])
	case Width128:
		shortToFloat128(src[:n], dst[:n])
	default:
		shortToFloatScalar(src[:n], dst[:n])
	}
	return n
}

// FloatToShort converts src to dst, dst[i] = saturate_i16(round(src[i] *
// 32767)). The number of elements converted is min(len(src), len(dst)).
func FloatToShort(src []float32, dst []int16) int {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	if n == 0 {
		return 0
	}
	switch Detect() {
	case Width256:
		floatToShort256(src[:n], dst[:n])
	case Width128:
		floatToShort128(src[:n], dst[:n])
	default:
		floatToShortScalar(src[:n], dst[:n])
	}
	return n
}

func shortToFloatScalar(src []int16, dst []float32) {
	for i, s := range src {
		dst[i] = float32(s) / scaleFactor
	}
}

// shortToFloat128 processes four lanes per iteration, matching a 128-bit
// register holding four float32s.
func shortToFloat128(src []int16, dst []float32) {
	n := len(src)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = float32(src[i]) / scaleFactor
		dst[i+1] = float32(src[i+1]) / scaleFactor
		dst[i+2] = float32(src[i+2]) / scaleFactor
		dst[i+3] = float32(src[i+3]) / scaleFactor
	}
	for ; i < n; i++ {
		dst[i] = float32(src[i]) / scaleFactor
	}
}

// shortToFloat256 processes eight lanes per iteration, matching a 256-bit
// register holding eight float32s.
func shortToFloat256(src []int16, dst []float32) {
	n := len(src)
	i := 0
	for ; i+8 <= n; i += 8 {
		dst[i] = float32(src[i]) / scaleFactor
		dst[i+1] = float32(src[i+1]) / scaleFactor
		dst[i+2] = float32(src[i+2]) / scaleFactor
		dst[i+3] = float32(src[i+3]) / scaleFactor
		dst[i+4] = float32(src[i+4]) / scaleFactor
		dst[i+5] = float32(src[i+5]) / scaleFactor
		dst[i+6] = float32(src[i+6]) / scaleFactor
		dst[i+7] = float32(src[i+7]) / scaleFactor
	}
	for ; i < n; i++ {
		dst[i] = float32(src[i]) / scaleFactor
	}
}

func saturateToInt16(f float64) int16 {
	switch {
	case f >= math.MaxInt16:
		return math.MaxInt16
	case f <= math.MinInt16:
		return math.MinInt16
	default:
		return int16(math.Round(f))
	}
}

func floatToShortScalar(src []float32, dst []int16) {
	for i, f := range src {
		dst[i] = saturateToInt16(float64(f) * scaleFactor)
	}
}

func floatToShort128(src []float32, dst []int16) {
	n := len(src)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = saturateToInt16(float64(src[i]) * scaleFactor)
		dst[i+1] = saturateToInt16(float64(src[i+1]) * scaleFactor)
		dst[i+2] = saturateToInt16(float64(src[i+2]) * scaleFactor)
		dst[i+3] = saturateToInt16(float64(src[i+3]) * scaleFactor)
	}
	for ; i < n; i++ {
		dst[i] = saturateToInt16(float64(src[i]) * scaleFactor)
	}
}

func floatToShort256(src []float32, dst []int16) {
	n := len(src)
	i := 0
	for ; i+8 <= n; i += 8 {
		dst[i] = saturateToInt16(float64(src[i]) * scaleFactor)
		dst[i+1] = saturateToInt16(float64(src[i+1]) * scaleFactor)
		dst[i+2] = saturateToInt16(float64(src[i+2]) * scaleFactor)
		dst[i+3] = saturateToInt16(float64(src[i+3]) * scaleFactor)
		dst[i+4] = saturateToInt16(float64(src[i+4]) * scaleFactor)
		dst[i+5] = saturateToInt16(float64(src[i+5]) * scaleFactor)
		dst[i+6] = saturateToInt16(float64(src[i+6]) * scaleFactor)
		dst[i+7] = saturateToInt16(float64(src[i+7]) * scaleFactor)
	}
	for ; i < n; i++ {
		dst[i] = saturateToInt16(float64(src[i]) * scaleFactor)
	}
}
