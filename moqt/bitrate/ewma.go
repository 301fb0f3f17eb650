package bitrate

var _ ShiftDetector = (*EWMAShiftDetector)(nil)

// NewEWMAShiftDetector builds a ShiftDetector backed by an exponentially
// weighted moving average. alpha weights how much each new sample moves the
// average (0 < alpha <= 1, higher reacts faster); threshold is the fraction
// a sample may deviate from the average before it's reported as a shift;
// minSamples is the number of initial samples spent priming the average
// rather than detecting.
func NewEWMAShiftDetector(alpha, threshold float64, minSamples int) *EWMAShiftDetector {
	return &EWMAShiftDetector{
		alpha:      alpha,
		threshold:  threshold,
		minSamples: minSamples,
	}
}

// EWMAShiftDetector is a ShiftDetector using an exponentially weighted
// moving average as its trend estimate.
type EWMAShiftDetector struct {
	alpha      float64
	average    float64
	threshold  float64
	minSamples int
}

func (d *EWMAShiftDetector) Detect(rate float64) bool {
	if d.minSamples > 0 {
		d.minSamples--
		d.average = rate
		return false
	}

	d.average = d.alpha*rate + (1-d.alpha)*d.average

	upper := d.average * (1 + d.threshold)
	lower := d.average * (1 - d.threshold)

	return rate > upper || rate < lower
}

// Average reports the detector's current trend estimate.
func (d *EWMAShiftDetector) Average() float64 {
	return d.average
}
