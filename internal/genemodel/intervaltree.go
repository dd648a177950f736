package genemodel

import "sort"

// intervalTree provides O(log n + k) overlap queries using a
// sorted-slice approach. Transcripts are loaded once and never
// modified after build.
type intervalTree struct {
	intervals []treeInterval
	maxEnd    []int64 // maxEnd[i] = max(End) for intervals[i:]
}

type treeInterval struct {
	start      int64
	end        int64
	transcript *Transcript
}

// buildIntervalTree creates an interval tree from a slice of transcripts.
func buildIntervalTree(transcripts []*Transcript) *intervalTree {
	if len(transcripts) == 0 {
		return &intervalTree{}
	}

	intervals := make([]treeInterval, len(transcripts))
	for i, t := range transcripts {
		intervals[i] = treeInterval{start: t.Start, end: t.End, transcript: t}
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start < intervals[j].start
	})

	// Build suffix-max array: maxEnd[i] = max(end) for intervals[i:]
	maxEnd := make([]int64, len(intervals))
	maxEnd[len(intervals)-1] = intervals[len(intervals)-1].end
	for i := len(intervals) - 2; i >= 0; i-- {
		maxEnd[i] = intervals[i].end
		if maxEnd[i+1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i+1]
		}
	}

	return &intervalTree{intervals: intervals, maxEnd: maxEnd}
}

// findOverlapping returns all transcripts overlapping the 1-based
// inclusive range [start, end].
func (t *intervalTree) findOverlapping(start, end int64) []*Transcript {
	if len(t.intervals) == 0 {
		return nil
	}

	var result []*Transcript

	// Binary search: find the first interval with start > end.
	// All candidates lie in [0, hi).
	hi := sort.Search(len(t.intervals), func(i int) bool {
		return t.intervals[i].start > end
	})

	for i := hi - 1; i >= 0; i-- {
		// Prune: if no interval from 0..i reaches start, stop.
		if t.maxEnd[i] < start {
			break
		}
		if t.intervals[i].end >= start {
			result = append(result, t.intervals[i].transcript)
		}
	}

	return result
}
