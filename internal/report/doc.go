// Package report turns the markdown-like text of a company research report
// into typed, classified cards ready for display.
package report
