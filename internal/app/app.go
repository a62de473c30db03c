// Package app provides application helpers shared by the emulator and the
// disassembler commands.
package app

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints the application name and version information.
func PrintBanner(logger *log.Logger, name string, quiet bool, version, commit, date string) {
	if quiet {
		return
	}

	logger.Info(name, log.String("version", VersionString(version, commit)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// VersionString returns the version with the abbreviated commit appended.
func VersionString(version, commit string) string {
	if commit == "" {
		return version
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", version, commit)
}

// PrintProgramInfo prints the information about the loaded program file.
func PrintProgramInfo(logger *log.Logger, quiet bool, path string, size int) {
	if quiet {
		return
	}
	logger.Info("Loaded CHIP-8 program",
		log.String("file", path),
		log.Int("size", size))
}
