// Command algaecount runs microalgae detection on an image without the GUI and prints results.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"microalgae-counter/internal/app"
	"microalgae-counter/internal/detect"
	"microalgae-counter/internal/export"
	"microalgae-counter/internal/settings"
	"microalgae-counter/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("algaecount", flag.ContinueOnError)
	fs.SetOutput(stderr)

	imagePath := fs.String("image", "", "Path to microscopy image (PNG, JPEG, TIFF, or BMP)")
	configPath := fs.String("config", settings.DefaultPath(), "Settings file")
	minDist := fs.Int("min-dist", 0, "Minimum distance between cell centres (1-100)")
	sensitivity := fs.Int("sensitivity", 0, "Edge detection sensitivity (1-100)")
	accuracy := fs.Int("accuracy", 0, "Circle accumulator threshold (1-100)")
	minRadius := fs.Int("min-radius", 0, "Minimum cell radius in pixels (1-100)")
	maxRadius := fs.Int("max-radius", 0, "Maximum cell radius in pixels (1-100)")
	rowMajor := fs.Bool("sort", false, "Number detections top-to-bottom, left-to-right")
	doExport := fs.Bool("export", false, "Write annotated image, CSV table, and report")
	outDir := fs.String("out", export.DefaultDir, "Output directory for -export")
	saveSettings := fs.Bool("save-settings", false, "Store the effective parameters in the settings file")
	showVersion := fs.Bool("version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "algaecount %s\n", version.String())
		return 0
	}

	if *imagePath == "" {
		fmt.Fprintln(stderr, "Usage: algaecount -image <path> [-min-dist N] [-sensitivity N] [-accuracy N] [-min-radius N] [-max-radius N] [-sort] [-export [-out dir]] [-save-settings]")
		return 1
	}

	store := settings.NewStore(*configPath)
	if *configPath == settings.DefaultPath() {
		store.SetFallback(settings.LegacyPath)
	}
	session := app.NewSession(store, export.New(*outDir))
	if *rowMajor {
		session.SetPipeline(&detect.Pipeline{Finder: detect.HoughFinder{}, Order: detect.OrderRowMajor})
	}

	// Flags given explicitly override the stored settings.
	params := session.Params()
	lo, hi := params.MinRadius, params.MaxRadius
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min-dist":
			params.MinDist = *minDist
		case "sensitivity":
			params.Sensitivity = *sensitivity
		case "accuracy":
			params.Accuracy = *accuracy
		case "min-radius":
			lo = *minRadius
		case "max-radius":
			hi = *maxRadius
		}
	})
	session.SetParams(params.WithRadiusRange(lo, hi))
	params = session.Params()

	if err := session.LoadImage(*imagePath); err != nil {
		fmt.Fprintf(stderr, "Failed to load image: %v\n", err)
		return 1
	}
	raster := session.Image()
	fmt.Fprintf(stdout, "Loaded %s image: %dx%d pixels\n", raster.Format, raster.Width(), raster.Height())

	fmt.Fprintf(stdout, "\nDetection parameters:\n")
	fmt.Fprintf(stdout, "  Min distance: %d\n", params.MinDist)
	fmt.Fprintf(stdout, "  Sensitivity:  %d\n", params.Sensitivity)
	fmt.Fprintf(stdout, "  Accuracy:     %d\n", params.Accuracy)
	fmt.Fprintf(stdout, "  Radius:       %d-%d px\n", params.MinRadius, params.MaxRadius)

	out, err := session.Detect()
	if err != nil {
		fmt.Fprintf(stderr, "Detection failed: %v\n", err)
		return 1
	}

	if out.NoneDetected() {
		fmt.Fprintf(stdout, "\nNo microalgae detected with the current parameters\n")
	} else {
		fmt.Fprintf(stdout, "\nDetected %d microalgae:\n", out.Summary.Count)
		fmt.Fprintf(stdout, "%6s %8s %8s %8s\n", "ID", "X", "Y", "Radius")
		fmt.Fprintln(stdout, strings.Repeat("-", 33))
		for _, d := range out.Detections {
			fmt.Fprintf(stdout, "%6d %8d %8d %8d\n", d.ID, d.X, d.Y, d.Radius)
		}
	}

	s := out.Summary
	fmt.Fprintf(stdout, "\nTotal:     %s\n", s.FormatCount())
	fmt.Fprintf(stdout, "Mean size: %s px (sd %.1f, range %d-%d)\n", s.FormatRadius(), s.StdDevRadius, s.MinRadius, s.MaxRadius)
	fmt.Fprintf(stdout, "Density:   %s microalgae/pixel² (x1e6)\n", s.FormatDensity())

	if *doExport {
		paths, err := session.Export()
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "\nResults exported to %s\n", paths.Dir)
		for _, p := range []string{paths.Image, paths.Table, paths.Report} {
			if p != "" {
				fmt.Fprintf(stdout, "  %s\n", p)
			}
		}
	}

	if *saveSettings {
		if err := session.SaveSettings(); err != nil {
			fmt.Fprintf(stderr, "Failed to save settings: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Settings saved to %s\n", store.Path())
	}

	return 0
}
