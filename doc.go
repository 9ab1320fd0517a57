// Copyright ©2025 The LaneGrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lanegrid provides a GPU-style execution model for CPU execution,
// built to benchmark parallel prefix-scan primitives.
//
// The execution hierarchy mirrors the one found on data-parallel hardware:
// lanes are grouped into warps, warps into blocks, and blocks into a grid.
// Warps synchronize through explicit warp barriers (lockstep is never
// assumed), blocks synchronize through a full-block barrier, and blocks of a
// grid are independent of one another.
//
// On top of the runtime the package implements the scan kernels under
// benchmark:
//
//   - warp-level inclusive/exclusive prefix scan (shared-memory and
//     shuffle strategies)
//   - block-level scan composed from warp scans plus a carry-in pass
//   - a segmented grid driver that scans fixed-size periods independently
//
// A sequential periodic reference scan serves as the correctness oracle for
// every device-path result.
package lanegrid
