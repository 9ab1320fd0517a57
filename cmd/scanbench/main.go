// Copyright ©2025 The LaneGrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command scanbench benchmarks the segmented prefix-scan kernels against
// the sequential CPU oracle. A correctness mismatch is fatal; timing is
// only reported for runs whose output the oracle accepted.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/lanegrid/lanegrid"
)

func main() {
	var (
		n        = flag.Int("n", 1<<20, "Number of elements (must be a multiple of -block)")
		block    = flag.Int("block", lanegrid.DefaultBlockSize, "Block size (power of two, 128..1024)")
		warp     = flag.Int("warp", lanegrid.DefaultWarpSize, "Warp size (16 or 32)")
		strategy = flag.String("strategy", "shared", "Warp scan strategy: shared or shuffle")
		kind     = flag.String("kind", "inclusive", "Scan kind: inclusive or exclusive")
		iters    = flag.Int("iters", 50, "Timed iterations")
		modulus  = flag.Int("mod", 16, "Input values drawn from [0, mod)")
		seed     = flag.Uint64("seed", 12345, "Input generator seed")
		session  = flag.String("session", "", "Benchmark log session name (empty disables logging)")
	)
	klog.InitFlags(nil)
	flag.Parse()

	if err := run(*n, *block, *warp, *strategy, *kind, *iters, *modulus, *seed, *session); err != nil {
		klog.Exitf("scanbench: %v", err)
	}
}

func run(n, block, warp int, strategy, kind string, iters, modulus int, seed uint64, session string) error {
	cfg, err := buildConfig(block, warp, strategy, kind)
	if err != nil {
		return err
	}

	if session != "" {
		if err := lanegrid.InitBenchmarkLogger(session); err != nil {
			return errors.Wrap(err, "initializing benchmark logger")
		}
	}

	dev := lanegrid.GetDevice()
	klog.Infof("device: %s, %d cores, features: %s", dev.Name, dev.NumCores, dev.Features)
	klog.Infof("config: %s elements, block %d, warp %d, %s %s scan",
		humanize.Comma(int64(n)), cfg.BlockSize, cfg.WarpSize, cfg.Strategy, cfg.Kind)

	in := lanegrid.GenerateInt32(n, seed, int32(modulus))

	bytes := n * 4
	dIn, err := lanegrid.Malloc(bytes)
	if err != nil {
		return errors.Wrap(err, "allocating input buffer")
	}
	defer lanegrid.Free(dIn)
	dOut, err := lanegrid.Malloc(bytes)
	if err != nil {
		return errors.Wrap(err, "allocating output buffer")
	}
	defer lanegrid.Free(dOut)

	if err := lanegrid.Memcpy(dIn, in, bytes, lanegrid.MemcpyHostToDevice); err != nil {
		return errors.Wrap(err, "copying input to device")
	}

	// Correctness gate before any timing.
	if err := lanegrid.SegmentedScan(dIn, dOut, n, cfg); err != nil {
		return errors.Wrap(err, "warm-up scan")
	}
	if err := verify(dOut, in, cfg); err != nil {
		if session != "" {
			lanegrid.LogBenchmarkFail(benchName(cfg, n), err)
		}
		return err
	}
	klog.Infof("verification passed against CPU oracle")

	elapsed, err := timeIterations(dIn, dOut, n, cfg, iters)
	if err != nil {
		return err
	}

	report(cfg, n, iters, elapsed, session)
	return nil
}

func buildConfig(block, warp int, strategy, kind string) (lanegrid.ScanConfig, error) {
	cfg := lanegrid.DefaultScanConfig()
	cfg.BlockSize = block
	cfg.WarpSize = warp

	switch strategy {
	case "shared":
		cfg.Strategy = lanegrid.StrategySharedMem
	case "shuffle":
		cfg.Strategy = lanegrid.StrategyShuffle
	default:
		return cfg, errors.Errorf("unknown strategy %q (want shared or shuffle)", strategy)
	}

	switch kind {
	case "inclusive":
		cfg.Kind = lanegrid.ScanInclusive
	case "exclusive":
		cfg.Kind = lanegrid.ScanExclusive
	default:
		return cfg, errors.Errorf("unknown kind %q (want inclusive or exclusive)", kind)
	}

	return cfg, cfg.Validate()
}

func verify(dOut lanegrid.DevicePtr, in []int32, cfg lanegrid.ScanConfig) error {
	want := lanegrid.ReferenceSegmentedScan(in, cfg.BlockSize, cfg.Kind)
	got := dOut.Int32()[:len(in)]

	for i := range want {
		if got[i] != want[i] {
			return errors.Errorf("oracle mismatch at element %d: device %d, oracle %d",
				i, got[i], want[i])
		}
	}
	return nil
}

func timeIterations(dIn, dOut lanegrid.DevicePtr, n int, cfg lanegrid.ScanConfig, iters int) (time.Duration, error) {
	bar := progressbar.Default(int64(iters), "scanning")

	stream := lanegrid.DefaultStream()
	start := lanegrid.NewEvent()
	start.Record(stream)

	for i := 0; i < iters; i++ {
		if err := lanegrid.SegmentedScan(dIn, dOut, n, cfg); err != nil {
			return 0, errors.Wrapf(err, "iteration %d", i)
		}
		bar.Add(1)
	}

	end := lanegrid.NewEvent()
	end.Record(stream)

	return lanegrid.ElapsedTime(start, end)
}

func report(cfg lanegrid.ScanConfig, n, iters int, elapsed time.Duration, session string) {
	nsPerOp := float64(elapsed.Nanoseconds()) / float64(iters)
	elemsPerSec := float64(n) * float64(iters) / elapsed.Seconds()
	bytesPerSec := elemsPerSec * 2 * 4 // read input, write output

	fmt.Printf("%-32s %12.0f ns/op %14s elems/s %12s/s\n",
		benchName(cfg, n),
		nsPerOp,
		humanize.Comma(int64(elemsPerSec)),
		humanize.Bytes(uint64(bytesPerSec)))

	if session != "" {
		lanegrid.LogBenchmarkPass(benchName(cfg, n), nsPerOp,
			bytesPerSec/1e6, elemsPerSec, int64(iters))
	}
}

func benchName(cfg lanegrid.ScanConfig, n int) string {
	return fmt.Sprintf("scan_%s_%s_b%d_n%d", cfg.Kind, cfg.Strategy, cfg.BlockSize, n)
}
