// Package report renders parsed shock events into a single interactive
// HTML document: a time-series chart per event and, when requested, a
// log-scale power-spectrum chart.
package report
