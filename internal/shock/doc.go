// Package shock parses MSR175 shock-event data into validated domain
// events. It understands the fixed worksheet layout the logger exports
// (header labels, event metadata, four-column sample table) as well as the
// plain CSV export, and enforces the zero-start and constant-sampling-period
// contracts before an event is constructed.
package shock
