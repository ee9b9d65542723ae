/*
NAME
  doc.go

DESCRIPTION
  Package rlad implements the RLAD (Run-Length Accumulating Deltas) audio
  codec: a delta-encoded, run-packed block format supporting both
  lossless and lossy (quantized) modes.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package rlad provides encoding and decoding of the RLAD audio format: a
// 512-frames-per-block codec built from per-channel delta coding,
// adaptive precision-tier run compression, and bit packing at four
// precisions (spec.md, §2-4). It also provides the RLAD stream
// container: a file header followed by a sequence of blocks, and a
// buffered Reader that decodes block-by-block while carrying over any
// partial-block overflow to satisfy arbitrary-sized reads. Open takes an
// optional Logger; a nil Logger means the Reader logs nothing.
package rlad
