package config

import (
	"os"
	"path/filepath"
)

// Paths resolves where input files are read and output files are written.
type Paths struct {
	InputDir  string
	OutputDir string
	LogsDir   string
}

// NewPaths creates a Paths from configuration.
func NewPaths(cfg PathsConfig) *Paths {
	return &Paths{
		InputDir:  cfg.InputDir,
		OutputDir: cfg.OutputDir,
		LogsDir:   cfg.LogsDir,
	}
}

// ReportPath returns the full path for an output report file. Each source
// file gets its own subdirectory so per-report CSVs never collide.
func (p *Paths) ReportPath(sourceName, fileName string) string {
	return filepath.Join(p.OutputDir, sourceName, fileName)
}

// LogPath returns the full path for a log file.
func (p *Paths) LogPath(fileName string) string {
	return filepath.Join(p.LogsDir, fileName)
}

// EnsureDirectories creates the output and logs directories.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.OutputDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
