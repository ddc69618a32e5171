package domain

import (
	"fmt"
	"time"
)

// ShockEvent represents one recorded acceleration episode from an MSR175
// data logger. All fields are populated once at construction and must be
// treated as read-only afterwards; the derived fields (TotalG, MaxG, TMs and
// the power spectrum) are computed from the raw samples exactly once.
type ShockEvent struct {
	// EventID is the identifier exactly as it appears in the source cell.
	// The logger usually writes an integer but the raw text is preserved.
	EventID string `json:"event_id"`
	// Timestamp is the combined start date and start time of the event.
	Timestamp time.Time `json:"timestamp"`
	// SamplingPeriodMs is the constant interval between consecutive
	// samples, in milliseconds.
	SamplingPeriodMs float64 `json:"sampling_period_ms"`

	// XG, YG and ZG hold the per-axis acceleration samples in g, in
	// chronological order. The three slices always have equal length.
	XG []float64 `json:"x_g"`
	YG []float64 `json:"y_g"`
	ZG []float64 `json:"z_g"`

	// TMs holds the sample times in milliseconds: TMs[i] = i * SamplingPeriodMs.
	TMs []float64 `json:"t_ms"`
	// TotalG holds the resultant magnitude per sample:
	// sqrt(XG[i]^2 + YG[i]^2 + ZG[i]^2).
	TotalG []float64 `json:"total_g"`
	// MaxG is the maximum of TotalG.
	MaxG float64 `json:"max_g"`

	// Spectrum holds the per-axis power spectra and the matching frequency
	// bins. Empty when the event has fewer than two samples.
	Spectrum PowerSpectrum `json:"spectrum"`
}

// PowerSpectrum holds squared-magnitude DFT bins for the three axes,
// restricted to the non-negative frequency half (floor(n/2) bins).
type PowerSpectrum struct {
	FreqHz []float64 `json:"freq_hz"`
	XPower []float64 `json:"x_power"`
	YPower []float64 `json:"y_power"`
	ZPower []float64 `json:"z_power"`
}

// NewShockEvent assembles a ShockEvent from parsed metadata, raw axis
// samples and the already-derived quantities. It enforces the structural
// invariants of the model; the numeric derivations themselves live in the
// signal package.
func NewShockEvent(eventID string, timestamp time.Time, samplingPeriodMs float64, x, y, z, tMs, totalG []float64, maxG float64, spectrum PowerSpectrum) (*ShockEvent, error) {
	n := len(x)
	if n < 1 {
		return nil, fmt.Errorf("shock event requires at least one sample")
	}
	if len(y) != n || len(z) != n {
		return nil, fmt.Errorf("axis length mismatch: x=%d y=%d z=%d", n, len(y), len(z))
	}
	if len(tMs) != n || len(totalG) != n {
		return nil, fmt.Errorf("derived length mismatch: n=%d t_ms=%d total_g=%d", n, len(tMs), len(totalG))
	}
	if samplingPeriodMs <= 0 {
		return nil, fmt.Errorf("sampling period must be positive, got %v ms", samplingPeriodMs)
	}

	return &ShockEvent{
		EventID:          eventID,
		Timestamp:        timestamp,
		SamplingPeriodMs: samplingPeriodMs,
		XG:               x,
		YG:               y,
		ZG:               z,
		TMs:              tMs,
		TotalG:           totalG,
		MaxG:             maxG,
		Spectrum:         spectrum,
	}, nil
}

// N returns the number of samples in the event.
func (e *ShockEvent) N() int {
	return len(e.XG)
}

// SamplingFrequencyHz returns the sampling rate in Hz.
func (e *ShockEvent) SamplingFrequencyHz() float64 {
	return 1000.0 / e.SamplingPeriodMs
}

// DurationMs returns the total recorded duration in milliseconds.
func (e *ShockEvent) DurationMs() float64 {
	return e.SamplingPeriodMs * float64(e.N())
}
