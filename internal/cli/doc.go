// Package cli implements the command-line interface for dirtrace-ics.
//
// The cli package provides the Cobra-based root command. It loads configuration,
// fetches the schedule through the scraper package, maps races to calendar events
// and writes the result to stdout or a file. Output is fully rendered before
// anything is written, so a failed run never leaves a truncated calendar behind.
package cli
