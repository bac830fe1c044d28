package main

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
)

// countCPUs determines the number of logical CPUs in this machine
func countCPUs() int {
	return runtime.NumCPU()
}

// newLogger creates a text logger writing to out and dropping records below level
// (one of debug, info, warn, error)
func newLogger(level string, out io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf(`invalid log level '%s'`, level)
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: lvl})), nil
}

// splitList splits every item additionally at commas and drops empty items.
// Environment variables like DUPIMAGES_EXTENSIONS=png,jpg arrive as single item.
func splitList(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				result = append(result, part)
			}
		}
	}
	return result
}
