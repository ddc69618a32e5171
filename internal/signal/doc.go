// Package signal derives quantities from raw shock-event samples: the
// resultant acceleration magnitude and the per-axis FFT power spectrum.
// All functions are pure and deterministic.
package signal
