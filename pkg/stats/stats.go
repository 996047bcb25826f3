// Package stats computes weighted summary statistics over tally maps
// (value -> occurrence count), as produced by degree and energy
// histograms.
package stats

import (
	"math"
	"sort"
)

// WeightedMedian returns the weighted median of a map from values to
// tallies, averaging the lower and upper medians.
func WeightedMedian(tallies map[int]int) float64 {
	if len(tallies) == 0 {
		return 0
	}
	ks := make([]int, 0, len(tallies))
	total := 0
	for k, t := range tallies {
		ks = append(ks, k)
		total += t
	}
	sort.Ints(ks)

	running := 0
	lower := 0
	for _, k := range ks {
		running += tallies[k]
		if running >= total/2 {
			lower = k
			break
		}
	}
	running = 0
	upper := 0
	for i := len(ks) - 1; i >= 0; i-- {
		running += tallies[ks[i]]
		if running >= total/2 {
			upper = ks[i]
			break
		}
	}
	return float64(lower+upper) / 2
}

// WeightedMAD returns the weighted median absolute deviation from a
// given median.
func WeightedMAD(tallies map[int]int, median float64) float64 {
	devs := make(map[int]int, len(tallies))
	for k, t := range tallies {
		// Deviations are doubled to stay integral when the median
		// falls between two values.
		d := int(math.Round(math.Abs(float64(k)-median) * 2))
		devs[d] += t
	}
	return WeightedMedian(devs) / 2
}

// WeightedMeanStdev returns the weighted arithmetic mean and sample
// standard deviation of a tally map.  The standard deviation is zero
// when fewer than two samples exist.
func WeightedMeanStdev(tallies map[int]int) (mean, stdev float64) {
	total := 0
	for k, t := range tallies {
		mean += float64(k * t)
		total += t
	}
	if total == 0 {
		return 0, 0
	}
	mean /= float64(total)
	if total < 2 {
		return mean, 0
	}
	for k, t := range tallies {
		d := float64(k) - mean
		stdev += float64(t) * d * d
	}
	stdev = math.Sqrt(stdev / float64(total-1))
	return mean, stdev
}
