package summary

import (
	"testing"

	"github.com/nerevar/traclusdl/internal/corridor"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 {
		t.Errorf("Count = %d, want 0", s.Count)
	}
}

func TestSummarizeComputesMeanAndMedian(t *testing.T) {
	corridors := []corridor.Corridor{
		{ID: 0, Weight: 10},
		{ID: 1, Weight: 20},
		{ID: 2, Weight: 30},
	}
	s := Summarize(corridors)
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if s.MeanWeight != 20 {
		t.Errorf("MeanWeight = %v, want 20", s.MeanWeight)
	}
	if s.MedianWeight != 20 {
		t.Errorf("MedianWeight = %v, want 20", s.MedianWeight)
	}
	if s.Min != 10 || s.Max != 30 {
		t.Errorf("Min/Max = %v/%v, want 10/30", s.Min, s.Max)
	}
}

func TestSummarizeConcentrationIsOneBitForTwoEqualWeights(t *testing.T) {
	corridors := []corridor.Corridor{
		{ID: 0, Weight: 5},
		{ID: 1, Weight: 5},
	}
	s := Summarize(corridors)
	if s.WeightConcentration != 1.0 {
		t.Errorf("two equal-weight corridors should have entropy 1 bit, got %v", s.WeightConcentration)
	}
}
