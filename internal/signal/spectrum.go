package signal

import (
	"fmt"
	"math"
	"math/cmplx"
	"time"

	"gonum.org/v1/gonum/dsp/fourier"

	"msrcli/pkg/contracts/domain"
)

// ResultantMagnitude computes the elementwise Euclidean norm of the three
// axis vectors. The slices must have equal length.
func ResultantMagnitude(x, y, z []float64) ([]float64, error) {
	if len(y) != len(x) || len(z) != len(x) {
		return nil, fmt.Errorf("axis length mismatch: x=%d y=%d z=%d", len(x), len(y), len(z))
	}

	total := make([]float64, len(x))
	for i := range x {
		total[i] = math.Sqrt(x[i]*x[i] + y[i]*y[i] + z[i]*z[i])
	}
	return total, nil
}

// Max returns the maximum value of samples, or 0 for an empty slice.
func Max(samples []float64) float64 {
	max := 0.0
	for i, v := range samples {
		if i == 0 || v > max {
			max = v
		}
	}
	return max
}

// SampleTimesMs returns the sample time axis in milliseconds:
// t[i] = i * periodMs.
func SampleTimesMs(n int, periodMs float64) []float64 {
	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i) * periodMs
	}
	return t
}

// AxisPowerSpectrum computes the squared-magnitude DFT of one axis and
// retains the first floor(n/2) bins. The transform is raw: no windowing,
// no detrending, no normalization. n must be at least 2.
func AxisPowerSpectrum(samples []float64) ([]float64, error) {
	n := len(samples)
	if n < 2 {
		return nil, fmt.Errorf("power spectrum requires at least 2 samples, got %d", n)
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, samples)

	// The real FFT yields n/2+1 coefficients; the spectrum keeps only the
	// non-negative half, floor(n/2) bins.
	half := n / 2
	power := make([]float64, half)
	for k := 0; k < half; k++ {
		mag := cmplx.Abs(coeffs[k])
		power[k] = mag * mag
	}
	return power, nil
}

// FrequencyBinsHz returns the frequency of each retained spectrum bin:
// freq[k] = k / (n * periodMs / 1000) Hz for k in [0, floor(n/2)).
func FrequencyBinsHz(n int, periodMs float64) []float64 {
	half := n / 2
	freq := make([]float64, half)
	durationS := float64(n) * periodMs / 1000.0
	for k := 0; k < half; k++ {
		freq[k] = float64(k) / durationS
	}
	return freq
}

// PowerSpectra computes the three per-axis power spectra and the shared
// frequency axis. The axis slices must have equal length n >= 2.
func PowerSpectra(x, y, z []float64, periodMs float64) (domain.PowerSpectrum, error) {
	if len(y) != len(x) || len(z) != len(x) {
		return domain.PowerSpectrum{}, fmt.Errorf("axis length mismatch: x=%d y=%d z=%d", len(x), len(y), len(z))
	}

	xp, err := AxisPowerSpectrum(x)
	if err != nil {
		return domain.PowerSpectrum{}, fmt.Errorf("x axis: %w", err)
	}
	yp, err := AxisPowerSpectrum(y)
	if err != nil {
		return domain.PowerSpectrum{}, fmt.Errorf("y axis: %w", err)
	}
	zp, err := AxisPowerSpectrum(z)
	if err != nil {
		return domain.PowerSpectrum{}, fmt.Errorf("z axis: %w", err)
	}

	return domain.PowerSpectrum{
		FreqHz: FrequencyBinsHz(len(x), periodMs),
		XPower: xp,
		YPower: yp,
		ZPower: zp,
	}, nil
}

// Derive computes every derived field of a shock event from its raw axis
// samples and assembles the immutable domain value. Events with a single
// sample carry an empty spectrum.
func Derive(eventID string, timestamp time.Time, periodMs float64, x, y, z []float64) (*domain.ShockEvent, error) {
	total, err := ResultantMagnitude(x, y, z)
	if err != nil {
		return nil, err
	}

	var spectrum domain.PowerSpectrum
	if len(x) >= 2 {
		spectrum, err = PowerSpectra(x, y, z, periodMs)
		if err != nil {
			return nil, err
		}
	}

	return domain.NewShockEvent(eventID, timestamp, periodMs, x, y, z,
		SampleTimesMs(len(x), periodMs), total, Max(total), spectrum)
}
