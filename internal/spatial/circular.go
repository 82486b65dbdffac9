package spatial

import "math"

// circularMean is the radian building block behind CircularMeanDegrees.
func circularMean(angles []float64, weights []float64) float64 {
	if len(angles) == 0 {
		return 0
	}

	var sumSin, sumCos float64
	for i, angle := range angles {
		w := 1.0
		if weights != nil && i < len(weights) {
			w = weights[i]
		}
		sumSin += w * math.Sin(angle)
		sumCos += w * math.Cos(angle)
	}

	return math.Atan2(sumSin, sumCos)
}

// CircularMeanDegrees calculates the weighted mean of circular data given in
// degrees, normalized to [0, 360). Used as a diagnostic cross-check on
// corridor geometry: the weighted-average angle of a corridor's members
// should track CircularMeanDegrees of the same members' trajectory angles.
func CircularMeanDegrees(angles []float64, weights []float64) float64 {
	radians := make([]float64, len(angles))
	for i, angle := range angles {
		radians[i] = angle * math.Pi / 180
	}
	meanDeg := circularMean(radians, weights) * 180 / math.Pi
	if meanDeg < 0 {
		meanDeg += 360
	}
	return meanDeg
}

// MeanResultantLength calculates the mean resultant length (R) of a set of
// angles in radians. R ranges from 0 (uniformly scattered) to 1 (all angles
// identical); used alongside CircularMeanDegrees as a tightness diagnostic
// for a corridor's member angles.
func MeanResultantLength(angles []float64, weights []float64) float64 {
	if len(angles) == 0 {
		return 0
	}

	var sumSin, sumCos, sumWeights float64
	for i, angle := range angles {
		w := 1.0
		if weights != nil && i < len(weights) {
			w = weights[i]
		}
		sumSin += w * math.Sin(angle)
		sumCos += w * math.Cos(angle)
		sumWeights += w
	}

	if sumWeights == 0 {
		return 0
	}

	return math.Sqrt(sumSin*sumSin+sumCos*sumCos) / sumWeights
}

// AngularDifferenceDegrees returns the signed smallest difference between
// two angles given in degrees, in [-180, 180]. Its absolute value is the
// circular distance min(d, 360-d) used by the reachability kernel's angle
// predicate.
func AngularDifferenceDegrees(angle1, angle2 float64) float64 {
	diff := angle2 - angle1
	for diff > 180 {
		diff -= 360
	}
	for diff < -180 {
		diff += 360
	}
	return diff
}
