package lanegrid

import (
	"strings"

	"golang.org/x/sys/cpu"
)

// DeviceFeatures tracks instruction-set extensions of the CPU backing the
// emulated device. The scan kernels do not dispatch on these; they are
// surfaced so benchmark reports can describe the hardware they ran on.
type DeviceFeatures struct {
	HasSSE4    bool
	HasAVX     bool
	HasAVX2    bool
	HasAVX512F bool
	HasFMA     bool
	HasNEON    bool
}

func detectFeatures() DeviceFeatures {
	return DeviceFeatures{
		HasSSE4:    cpu.X86.HasSSE41 || cpu.X86.HasSSE42,
		HasAVX:     cpu.X86.HasAVX,
		HasAVX2:    cpu.X86.HasAVX2,
		HasAVX512F: cpu.X86.HasAVX512F,
		HasFMA:     cpu.X86.HasFMA,
		HasNEON:    cpu.ARM64.HasASIMD,
	}
}

// String lists the detected extensions, e.g. "sse4 avx avx2 fma".
func (f DeviceFeatures) String() string {
	var s []string
	if f.HasSSE4 {
		s = append(s, "sse4")
	}
	if f.HasAVX {
		s = append(s, "avx")
	}
	if f.HasAVX2 {
		s = append(s, "avx2")
	}
	if f.HasAVX512F {
		s = append(s, "avx512f")
	}
	if f.HasFMA {
		s = append(s, "fma")
	}
	if f.HasNEON {
		s = append(s, "neon")
	}
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, " ")
}
