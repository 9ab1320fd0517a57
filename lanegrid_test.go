package lanegrid

import (
	"math/rand"
	"testing"
)

// Test basic memory allocation and deallocation
func TestMemoryAllocation(t *testing.T) {
	sizes := []int{100, 1000, 10000, 1000000}

	for _, size := range sizes {
		ptr, err := Malloc(size * 4)
		if err != nil {
			t.Fatalf("Failed to allocate %d bytes: %v", size*4, err)
		}

		slice := ptr.Int32()
		if len(slice) != size {
			t.Errorf("Expected slice length %d, got %d", size, len(slice))
		}

		// Write and read test
		for i := 0; i < min(100, size); i++ {
			slice[i] = int32(i)
		}

		for i := 0; i < min(100, size); i++ {
			if slice[i] != int32(i) {
				t.Errorf("Memory corruption at index %d", i)
			}
		}

		err = Free(ptr)
		if err != nil {
			t.Fatalf("Failed to free memory: %v", err)
		}
	}
}

// Test memory copy operations
func TestMemcpy(t *testing.T) {
	const N = 1000

	h_src := make([]int32, N)
	h_dst := make([]int32, N)
	for i := 0; i < N; i++ {
		h_src[i] = rand.Int31()
	}

	d_src := MallocOrFail(t, N*4)
	d_dst := MallocOrFail(t, N*4)
	defer Free(d_src)
	defer Free(d_dst)

	// H2D copy
	if err := Memcpy(d_src, h_src, N*4, MemcpyHostToDevice); err != nil {
		t.Fatalf("H2D copy failed: %v", err)
	}

	// D2D copy
	if err := Memcpy(d_dst, d_src, N*4, MemcpyDeviceToDevice); err != nil {
		t.Fatalf("D2D copy failed: %v", err)
	}

	// D2H copy
	if err := Memcpy(h_dst, d_dst, N*4, MemcpyDeviceToHost); err != nil {
		t.Fatalf("D2H copy failed: %v", err)
	}

	for i := 0; i < N; i++ {
		if h_src[i] != h_dst[i] {
			t.Errorf("Data mismatch at index %d: %d vs %d", i, h_src[i], h_dst[i])
		}
	}
}

// Test unsupported memcpy operand types are rejected
func TestMemcpyInvalidType(t *testing.T) {
	d := MallocOrFail(t, 64)
	defer Free(d)

	err := Memcpy(d, []string{"nope"}, 4, MemcpyHostToDevice)
	if !IsInvalidArgError(err) {
		t.Errorf("Expected invalid argument error, got %v", err)
	}
}

// Test basic non-cooperative kernel launch
func TestKernelLaunch(t *testing.T) {
	const N = 10000

	d_data := MallocOrFail(t, N*4)
	defer Free(d_data)

	slice := d_data.Int32()
	for i := 0; i < N; i++ {
		slice[i] = 0
	}

	kernel := KernelFunc(func(tid ThreadID, args ...interface{}) {
		idx := tid.Global()
		if idx < N {
			slice[idx] = int32(idx)
		}
	})

	LaunchOrFail(t, kernel, Dim3{X: (N + 255) / 256, Y: 1, Z: 1}, Dim3{X: 256, Y: 1, Z: 1})
	SynchronizeOrFail(t)

	for i := 0; i < N; i++ {
		if slice[i] != int32(i) {
			t.Errorf("Incorrect value at index %d: expected %d, got %d", i, i, slice[i])
		}
	}
}

// Test error conditions
func TestErrorHandling(t *testing.T) {
	// Double free
	ptr, _ := Malloc(100)
	err := Free(ptr)
	if err != nil {
		t.Fatalf("First free failed: %v", err)
	}

	err = Free(ptr)
	if err == nil {
		t.Error("Double free should have failed")
	}

	// Invalid allocation size
	if _, err := Malloc(0); err == nil {
		t.Error("Malloc(0) should have failed")
	}

	// Invalid device
	err = SetDevice(1)
	if err == nil {
		t.Error("SetDevice(1) should have failed")
	}

	count := GetDeviceCount()
	if count != 1 {
		t.Errorf("Expected 1 device, got %d", count)
	}

	if _, err := GetDeviceProperties(3); err == nil {
		t.Error("GetDeviceProperties(3) should have failed")
	}
}

// Test memory pool statistics
func TestMemoryPoolStats(t *testing.T) {
	allocated1, _ := defaultContext.memory.GetStats()

	ptrs := make([]DevicePtr, 10)
	for i := range ptrs {
		ptrs[i], _ = Malloc(1024 * 1024) // 1MB each
	}

	allocated2, peak2 := defaultContext.memory.GetStats()
	if allocated2 <= allocated1 {
		t.Error("Allocated memory should have increased")
	}
	if peak2 < allocated2 {
		t.Error("Peak should be at least current allocation")
	}

	for i := 0; i < 5; i++ {
		Free(ptrs[i])
	}

	allocated3, peak3 := defaultContext.memory.GetStats()
	if allocated3 >= allocated2 {
		t.Error("Allocated memory should have decreased")
	}
	if peak3 != peak2 {
		t.Error("Peak should not have changed")
	}

	for i := 5; i < 10; i++ {
		Free(ptrs[i])
	}
}

// Test device properties surface
func TestDeviceProperties(t *testing.T) {
	dev := GetDevice()
	if dev.NumCores < 1 {
		t.Errorf("Expected at least one core, got %d", dev.NumCores)
	}
	if dev.WarpSize != DefaultWarpSize {
		t.Errorf("Expected warp size %d, got %d", DefaultWarpSize, dev.WarpSize)
	}
	// Feature string must render even with no detected extensions
	if dev.Features.String() == "" {
		t.Error("Feature string should never be empty")
	}
}
