package utils

import "math"

// ActionFrequency counts events in a fixed number of rolling time buckets. Older buckets can be
// weighted down so that recent bursts count more than old ones.
type ActionFrequency struct {
	buckets  []float64
	duration int64
	// lastUpdate is the start of the newest bucket in milliseconds.
	lastUpdate int64
}

// NewActionFrequency returns an ActionFrequency with n buckets of the given duration in milliseconds.
func NewActionFrequency(n int, durationMillis int64) *ActionFrequency {
	return &ActionFrequency{buckets: make([]float64, n), duration: durationMillis}
}

// Add adds the amount to the bucket covering now.
func (f *ActionFrequency) Add(now int64, amount float64) {
	f.update(now)
	f.buckets[0] += amount
}

// Discount removes the amount from the newest bucket, never going below zero.
func (f *ActionFrequency) Discount(now int64, amount float64) {
	f.update(now)
	f.buckets[0] = math.Max(0, f.buckets[0]-amount)
}

// Score returns the weighted sum of all buckets. A factor of 1 weighs every bucket equally.
func (f *ActionFrequency) Score(now int64, factor float64) float64 {
	f.update(now)
	var (
		sum    float64
		weight = 1.0
	)
	for _, v := range f.buckets {
		sum += v * weight
		weight *= factor
	}
	return sum
}

// Window returns the total time covered by all buckets in milliseconds.
func (f *ActionFrequency) Window() int64 {
	return f.duration * int64(len(f.buckets))
}

// Clear empties every bucket.
func (f *ActionFrequency) Clear(now int64) {
	clear(f.buckets)
	f.lastUpdate = now
}

func (f *ActionFrequency) update(now int64) {
	if f.lastUpdate == 0 || now < f.lastUpdate {
		f.lastUpdate = now
		return
	}
	shift := (now - f.lastUpdate) / f.duration
	if shift <= 0 {
		return
	}
	if shift >= int64(len(f.buckets)) {
		clear(f.buckets)
	} else {
		copy(f.buckets[shift:], f.buckets[:int64(len(f.buckets))-shift])
		clear(f.buckets[:shift])
	}
	f.lastUpdate += shift * f.duration
}
