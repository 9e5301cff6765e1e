package util

// Set at build time via -ldflags.
var (
	Version      = "dev"
	GitCommitSHA = "unknown"
)
