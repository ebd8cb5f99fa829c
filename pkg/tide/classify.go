package tide

import (
	"fmt"
	"math"
	"time"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Type is the tidal regime of a water-level record.
type Type int

// Tidal regimes.
const (
	TypeUnknown Type = iota
	TypeSemidiurnal
	TypeDiurnal
	TypeMixed
)

func (t Type) String() string {
	return [...]string{"Unknown", "Semidiurnal", "Diurnal", "Mixed"}[t]
}

// Tidal frequency bands in cycles per hour. The diurnal band covers the ~24 h
// constituents (K1, O1), the semidiurnal band the ~12 h constituents (M2, S2).
const (
	diurnalLowCph      = 0.035
	diurnalHighCph     = 0.05
	semidiurnalLowCph  = 0.07
	semidiurnalHighCph = 0.09
)

// Classification thresholds on the diurnal/semidiurnal energy ratio,
// a simplified form factor.
const (
	semidiurnalMaxRatio = 0.25
	diurnalMinRatio     = 3.0
)

// minFFTSize keeps the frequency grid fine enough that even short records
// place bins inside the 0.015 cph wide tidal bands.
const minFFTSize = 256

// Classification is the result of a tide-type analysis.
type Classification struct {
	Type Type

	// FormRatio is the peak diurnal PSD over the peak semidiurnal PSD.
	// It is +Inf if the record carries no semidiurnal energy at all.
	FormRatio float64
}

// Classify determines the tidal regime of a series from the ratio of spectral
// energy in the diurnal and semidiurnal bands. The sampling rate is derived
// from the median observation interval.
func Classify(s Series) (Classification, error) {
	sampling, err := s.Sampling()
	if err != nil {
		return Classification{Type: TypeUnknown}, err
	}
	if sampling <= 0 {
		return Classification{Type: TypeUnknown}, fmt.Errorf("tide: invalid sampling interval: %v", sampling)
	}
	fs := float64(time.Hour) / float64(sampling) // samples per hour

	freqs, psd, err := Periodogram(s.Elevations(), fs)
	if err != nil {
		return Classification{Type: TypeUnknown}, err
	}

	peakDiur := bandPeak(freqs, psd, diurnalLowCph, diurnalHighCph)
	peakSemi := bandPeak(freqs, psd, semidiurnalLowCph, semidiurnalHighCph)
	if peakDiur == 0 && peakSemi == 0 {
		return Classification{Type: TypeUnknown}, fmt.Errorf("tide: no spectral energy in the tidal bands")
	}

	cls := Classification{FormRatio: math.Inf(1)}
	if peakSemi > 0 {
		cls.FormRatio = peakDiur / peakSemi
	}

	switch {
	case cls.FormRatio < semidiurnalMaxRatio:
		cls.Type = TypeSemidiurnal
	case cls.FormRatio > diurnalMinRatio:
		cls.Type = TypeDiurnal
	default:
		cls.Type = TypeMixed
	}

	return cls, nil
}

// Periodogram computes the one-sided power spectral density of values sampled
// at fs (samples per hour). The mean is removed and the signal is zero-padded
// to a power of two of at least minFFTSize before the transform. Frequencies
// are in cycles per hour.
func Periodogram(values []float64, fs float64) (freqs, psd []float64, err error) {
	n := len(values)
	if n < 2 {
		return nil, nil, fmt.Errorf("tide: periodogram needs at least 2 values: %d", n)
	}
	if fs <= 0 {
		return nil, nil, fmt.Errorf("tide: periodogram sample rate must be > 0: %f", fs)
	}

	fftSize := nextPowerOf2(n)
	if fftSize < minFFTSize {
		fftSize = minFFTSize
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	in := make([]complex128, fftSize)
	for i, v := range values {
		in[i] = complex(v-mean, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, nil, fmt.Errorf("tide: create FFT plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, nil, fmt.Errorf("tide: forward FFT: %w", err)
	}

	nbins := fftSize/2 + 1
	freqs = make([]float64, nbins)
	psd = make([]float64, nbins)
	scale := 1 / (fs * float64(n))
	for k := 0; k < nbins; k++ {
		x := out[k]
		p := (real(x)*real(x) + imag(x)*imag(x)) * scale
		if k != 0 && k != fftSize/2 {
			p *= 2 // one-sided spectrum
		}
		psd[k] = p
		freqs[k] = float64(k) * fs / float64(fftSize)
	}

	return freqs, psd, nil
}

// bandPeak returns the largest PSD value with lo < freq < hi.
func bandPeak(freqs, psd []float64, lo, hi float64) float64 {
	peak := 0.0
	for i, f := range freqs {
		if f > lo && f < hi && psd[i] > peak {
			peak = psd[i]
		}
	}
	return peak
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
