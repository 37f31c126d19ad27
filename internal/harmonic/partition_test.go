package harmonic

import "testing"

func TestPartition_BlockLayout(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		n     uint64
		tasks int
		want  []Block
	}{
		{
			name:  "remainder absorbed by last block",
			n:     10,
			tasks: 3,
			want:  []Block{{1, 3}, {4, 6}, {7, 10}},
		},
		{
			name:  "single block covers whole range",
			n:     10,
			tasks: 1,
			want:  []Block{{1, 10}},
		},
		{
			name:  "exact division",
			n:     8,
			tasks: 4,
			want:  []Block{{1, 2}, {3, 4}, {5, 6}, {7, 8}},
		},
		{
			name:  "one index per block",
			n:     3,
			tasks: 3,
			want:  []Block{{1, 1}, {2, 2}, {3, 3}},
		},
		{
			name:  "odd remainder",
			n:     7,
			tasks: 3,
			want:  []Block{{1, 2}, {3, 4}, {5, 7}},
		},
		{
			name:  "single index single block",
			n:     1,
			tasks: 1,
			want:  []Block{{1, 1}},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Partition(tc.n, tc.tasks)
			if len(got) != len(tc.want) {
				t.Fatalf("Partition(%d, %d) returned %d blocks, want %d",
					tc.n, tc.tasks, len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("block %d = [%d, %d], want [%d, %d]",
						i, got[i].Start, got[i].End, tc.want[i].Start, tc.want[i].End)
				}
			}
		})
	}
}

// TestPartition_MoreTasksThanIndices verifies the degenerate layout where
// the integer block size truncates to zero: every leading block is empty
// and the final block carries the entire range.
func TestPartition_MoreTasksThanIndices(t *testing.T) {
	t.Parallel()

	const n = 10
	const tasks = 64

	blocks := Partition(n, tasks)
	if len(blocks) != tasks {
		t.Fatalf("expected %d blocks, got %d", tasks, len(blocks))
	}

	for i := 0; i < tasks-1; i++ {
		if !blocks[i].IsEmpty() {
			t.Errorf("block %d = [%d, %d], want empty", i, blocks[i].Start, blocks[i].End)
		}
		if blocks[i].Terms() != 0 {
			t.Errorf("block %d has %d terms, want 0", i, blocks[i].Terms())
		}
	}

	last := blocks[tasks-1]
	if last.Start != 1 || last.End != n {
		t.Errorf("last block = [%d, %d], want [1, %d]", last.Start, last.End, n)
	}
}

func TestPartition_InvalidInputs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		n     uint64
		tasks int
	}{
		{"zero n", 0, 3},
		{"zero tasks", 10, 0},
		{"negative tasks", 10, -1},
		{"both invalid", 0, 0},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Partition(tc.n, tc.tasks); got != nil {
				t.Errorf("Partition(%d, %d) = %v, want nil", tc.n, tc.tasks, got)
			}
		})
	}
}

// TestPartition_TermsAccounting checks that block lengths always total n,
// for layouts with and without remainders or empty blocks.
func TestPartition_TermsAccounting(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		n     uint64
		tasks int
	}{
		{1, 1},
		{10, 3},
		{100, 64},
		{10, 64},
		{1_000_000, 7},
		{65_536, 16},
	}

	for _, tc := range testCases {
		var total uint64
		for _, block := range Partition(tc.n, tc.tasks) {
			total += block.Terms()
		}
		if total != tc.n {
			t.Errorf("Partition(%d, %d): blocks cover %d indices, want %d",
				tc.n, tc.tasks, total, tc.n)
		}
	}
}

func TestBlock_Terms(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		block Block
		want  uint64
	}{
		{"empty block", Block{Start: 1, End: 0}, 0},
		{"single index", Block{Start: 5, End: 5}, 1},
		{"full range", Block{Start: 1, End: 10}, 10},
		{"interior range", Block{Start: 4, End: 6}, 3},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.block.Terms(); got != tc.want {
				t.Errorf("Terms() = %d, want %d", got, tc.want)
			}
			if gotEmpty := tc.block.IsEmpty(); gotEmpty != (tc.want == 0) {
				t.Errorf("IsEmpty() = %v, want %v", gotEmpty, tc.want == 0)
			}
		})
	}
}
