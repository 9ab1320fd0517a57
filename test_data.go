package lanegrid

// GenerateInt32 generates deterministic int32 test data in [0, modulus)
// using a linear congruential generator, so tests reproduce across runs.
//
// Example:
//
//	in := GenerateInt32(1024, 12345, 16)
func GenerateInt32(size int, seed uint64, modulus int32) []int32 {
	if modulus <= 0 {
		modulus = DefaultModulus
	}
	data := make([]int32, size)
	rng := seed
	for i := range data {
		rng = rng*1103515245 + 12345 // LCG parameters from Numerical Recipes
		data[i] = int32((rng >> 16) % uint64(modulus))
	}
	return data
}

// GenerateRampInt32 generates the sequence 0, 1, 2, ..., size-1.
// Its inclusive prefix sums are the triangular numbers, which makes
// mismatches easy to localize by eye.
func GenerateRampInt32(size int) []int32 {
	data := make([]int32, size)
	for i := range data {
		data[i] = int32(i)
	}
	return data
}

// GenerateConstantInt32 generates size copies of v.
func GenerateConstantInt32(size int, v int32) []int32 {
	data := make([]int32, size)
	for i := range data {
		data[i] = v
	}
	return data
}
