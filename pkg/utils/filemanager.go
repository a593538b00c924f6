// =============================================================================
// Batch Coordinate Converter - File Manager Utility
// =============================================================================
//
// File handling around a conversion run: making sure the output and
// archive directories exist, generating output file names from the
// configured format, and archiving input files after a successful run.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileManager handles file operations around a conversion run.
type FileManager struct {
	// OutputDir receives generated output files.
	OutputDir string

	// InputArchiveDir receives input files after successful conversion.
	InputArchiveDir string
}

// NewFileManager creates a FileManager over the given directories.
func NewFileManager(outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		OutputDir:       outputDir,
		InputArchiveDir: inputArchiveDir,
	}
}

// EnsureDirs creates the managed directories if they do not exist.
func (fm *FileManager) EnsureDirs() error {
	for _, dir := range []string{fm.OutputDir, fm.InputArchiveDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// OutputPath builds the path for a new output file from the configured
// name format. Supported placeholders:
//
//	{uuid}      - a random UUID
//	{timestamp} - current time as YYYYMMDD_HHMMSS
func (fm *FileManager) OutputPath(format string) string {
	name := format
	name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	return filepath.Join(fm.OutputDir, name)
}

// ArchiveInput moves a processed input file into the archive directory.
func (fm *FileManager) ArchiveInput(path string) error {
	if fm.InputArchiveDir == "" {
		return nil
	}
	target := filepath.Join(fm.InputArchiveDir, filepath.Base(path))
	if err := os.Rename(path, target); err != nil {
		return fmt.Errorf("archive input file: %w", err)
	}
	return nil
}
