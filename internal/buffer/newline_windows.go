//go:build windows

package buffer

// DefaultLineEnding is used for new files and files with a single line.
const DefaultLineEnding = "\r\n"
