package stats

// Package stats reduces contig length distributions to the length-weighted
// statistics reported for genome assemblies.

import "sort"

// N50 returns the contig length at which half of the total assembled bases
// are contained in contigs of that length or longer: sort descending, sum
// cumulatively, return the length where the running sum first reaches or
// exceeds half the total. An empty input yields 0.
func N50(lengths []int) int {
	return Nx(lengths, 50)
}

// Nx generalizes N50 to any percentile x: the length at which the
// cumulative sum over the descending-sorted lengths first reaches x percent
// of the total. Nx(l, 50) == N50(l).
func Nx(lengths []int, x int) int {
	if len(lengths) == 0 {
		return 0
	}
	sorted := make([]int, len(lengths))
	copy(sorted, lengths)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	total := 0
	for _, l := range sorted {
		total += l
	}
	// integer comparison: acc >= x% of total
	acc := 0
	for _, l := range sorted {
		acc += l
		if 100*acc >= x*total {
			return l
		}
	}
	return 0
}
