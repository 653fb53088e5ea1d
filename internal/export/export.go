// Package export writes the annotated image, detection table, and summary report of an analysis.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"microalgae-counter/internal/analysis"
	"microalgae-counter/internal/detect"

	"github.com/disintegration/imaging"
)

// DefaultDir is the output directory, relative to the working directory.
const DefaultDir = "analysis_results"

const (
	timestampLayout  = "20060102_150405"
	reportDateLayout = "02/01/2006 15:04:05"
	jpegQuality      = 95
)

// ErrNoResults is returned when no detection run has completed for the current image.
var ErrNoResults = errors.New("no results to export")

// TableHeader is the first row of every detections table.
var TableHeader = []string{"id", "x", "y", "radius"}

// Result is everything an export needs from one detection run.
type Result struct {
	Annotated  image.Image
	Detections []detect.Detection
	Summary    analysis.Summary
	Completed  bool // True once detection has run on the current image
}

// Paths lists the files produced by one export.
type Paths struct {
	Dir    string
	Image  string
	Table  string
	Report string
}

// Exporter writes results into a fixed directory. Files from exports within the same
// second share a timestamp and overwrite each other.
type Exporter struct {
	Dir string
	Now func() time.Time
}

// New returns an Exporter writing into dir.
func New(dir string) *Exporter {
	return &Exporter{Dir: dir, Now: time.Now}
}

// Export writes the three result files and returns their paths. On failure no
// file from this export is left behind.
func (e *Exporter) Export(res Result) (*Paths, error) {
	if !res.Completed {
		return nil, ErrNoResults
	}

	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	now := e.now()
	ts := now.Format(timestampLayout)
	paths := &Paths{
		Dir:    e.Dir,
		Image:  filepath.Join(e.Dir, "microalgae_analysis_"+ts+".jpg"),
		Table:  filepath.Join(e.Dir, "microalgae_data_"+ts+".csv"),
		Report: filepath.Join(e.Dir, "microalgae_report_"+ts+".txt"),
	}

	var written []string
	fail := func(err error) (*Paths, error) {
		removeFiles(written)
		return nil, err
	}

	written = append(written, paths.Table)
	if err := writeTable(paths.Table, res.Detections); err != nil {
		return fail(fmt.Errorf("failed to write detections table: %w", err))
	}

	written = append(written, paths.Report)
	if err := os.WriteFile(paths.Report, []byte(Report(res.Summary, now)), 0o644); err != nil {
		return fail(fmt.Errorf("failed to write report: %w", err))
	}

	if res.Annotated == nil {
		paths.Image = ""
		return paths, nil
	}
	written = append(written, paths.Image)
	if err := imaging.Save(res.Annotated, paths.Image, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fail(fmt.Errorf("failed to save annotated image: %w", err))
	}

	return paths, nil
}

func (e *Exporter) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// removeFiles deletes the regular files among paths.
func removeFiles(paths []string) {
	for _, p := range paths {
		if fi, err := os.Lstat(p); err == nil && fi.Mode().IsRegular() {
			if err := os.Remove(p); err != nil {
				log.Printf("export: cannot remove %s: %v", p, err)
			}
		}
	}
}

func writeTable(path string, dets []detect.Detection) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(TableHeader); err != nil {
		return err
	}
	for _, d := range dets {
		row := []string{
			strconv.Itoa(d.ID),
			strconv.Itoa(d.X),
			strconv.Itoa(d.Y),
			strconv.Itoa(d.Radius),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// Report renders the plain-text summary written alongside each export.
func Report(s analysis.Summary, at time.Time) string {
	return fmt.Sprintf(`Microalgae Analysis Report
==========================

Analysis date: %s
Total microalgae: %s
Mean size: %s pixels
Density: %s microalgae/pixel²
`, at.Format(reportDateLayout), s.FormatCount(), s.FormatRadius(), s.FormatDensity())
}
