/*
NAME
  shift.go

DESCRIPTION
  shift.go implements the lossy ×16 / ÷16 quantization passes of spec
  §4.2 at each dispatch level.

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

// ShiftRight4 arithmetically right-shifts every sample in s by 4 in
// place (dividing by 16, sign preserved), the lossy pre-encode
// quantization pass.
func ShiftRight4(s []int16) {
	switch Detect() {
	case Width256:
		shiftRight4Width(s, 8)
	case Width128:
		shiftRight4Width(s, 4)
	default:
		shiftRight4Scalar(s)
	}
}

// ShiftLeft4 left-shifts every sample in s by 4 in place (restoring
// quantized range), the lossy post-decode reconstruction pass.
func ShiftLeft4(s []int16) {
	switch Detect() {
	case Width256:
		shiftLeft4Width(s, 8)
	case Width128:
		shiftLeft4Width(s, 4)
	default:
		shiftLeft4Scalar(s)
	}
}

func shiftRight4Scalar(s []int16) {
	for i, v := range s {
		s[i] = v >> 4
	}
}

func shiftLeft4Scalar(s []int16) {
	for i, v := range s {
		s[i] = v << 4
	}
}

// shiftRight4Width processes lanes samples per iteration.
func shiftRight4Width(s []int16, lanes int) {
	n := len(s)
	i := 0
	for ; i+lanes <= n; i += lanes {
		for j := 0; j < lanes; j++ {
			s[i+j] = s[i+j] >> 4
		}
	}
	for ; i < n; i++ {
		s[i] = s[i] >> 4
	}
}

// shiftLeft4Width processes lanes samples per iteration.
func shiftLeft4Width(s []int16, lanes int) {
	n := len(s)
	i := 0
	for ; i+lanes <= n; i += lanes {
		for j := 0; j < lanes; j++ {
			s[i+j] = s[i+j] << 4
		}
	}
	for ; i < n; i++ {
		s[i] = s[i] << 4
	}
}
