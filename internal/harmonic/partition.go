package harmonic

// Block is a contiguous, inclusive range [Start, End] of summation indices.
// A Block with End < Start is empty and contributes zero terms.
type Block struct {
	Start uint64
	End   uint64
}

// IsEmpty reports whether the block contains no indices.
func (b Block) IsEmpty() bool {
	return b.End < b.Start
}

// Terms returns the number of indices covered by the block.
func (b Block) Terms() uint64 {
	if b.IsEmpty() {
		return 0
	}
	return b.End - b.Start + 1
}

// Partition splits the index range [1, n] into tasks contiguous blocks.
//
// Every block except the last holds exactly n/tasks indices (integer
// division). The last block additionally absorbs the remainder, so block k
// covers [k*size+1, (k+1)*size] and the final block ends at n. When tasks
// exceeds n the integer block size truncates to zero: all leading blocks
// come out empty and the final block covers the entire range. Empty blocks
// are preserved in the returned slice so that the block count always equals
// tasks.
//
// Parameters:
//   - n: upper summation bound, must be >= 1
//   - tasks: number of blocks to produce, must be >= 1
//
// Returns nil when either parameter is out of range; callers are expected
// to have validated their inputs through the summation engines.
func Partition(n uint64, tasks int) []Block {
	if n < 1 || tasks < 1 {
		return nil
	}

	t := uint64(tasks)
	size := n / t

	blocks := make([]Block, tasks)
	for k := uint64(0); k < t; k++ {
		start := k*size + 1
		end := (k + 1) * size
		if k == t-1 {
			end = n
		}
		blocks[k] = Block{Start: start, End: end}
	}
	return blocks
}
