package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"microalgae-counter/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCells(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	centers := [][2]int{{25, 25}, {75, 25}, {50, 75}}
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			c := color.RGBA{A: 255}
			for _, ctr := range centers {
				dx, dy := x-ctr[0], y-ctr[1]
				if dx*dx+dy*dy <= 100 {
					c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
				}
			}
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestRunRequiresImage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", filepath.Join(t.TempDir(), "c.json")}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Usage: algaecount")
}

func TestRunUnreadableImage(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", filepath.Join(dir, "c.json"), "-image", filepath.Join(dir, "missing.png")}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Failed to load image")
}

func TestRunDetectExportAndSave(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "cells.png")
	writeCells(t, imgPath)
	cfg := filepath.Join(dir, "c.json")
	out := filepath.Join(dir, "results")

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-config", cfg, "-image", imgPath,
		"-min-dist", "25", "-sort", "-export", "-out", out, "-save-settings",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stdout.String(), "Loaded png image: 100x100 pixels")
	assert.Contains(t, stdout.String(), "Total:     3")
	assert.Contains(t, stdout.String(), "Density:   300.00")
	assert.Contains(t, stdout.String(), "Results exported to "+out)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	saved := settings.NewStore(cfg).Load()
	assert.Equal(t, 25, saved.MinDist)
	assert.Equal(t, settings.DefaultParams().Accuracy, saved.Accuracy)
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"-version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "algaecount v")
}

func TestRunRadiusFlags(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "cells.png")
	writeCells(t, imgPath)
	cfg := filepath.Join(dir, "c.json")

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-config", cfg, "-image", imgPath,
		"-min-radius", "40", "-max-radius", "45", "-save-settings",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stdout.String(), "Radius:       40-45 px")
	assert.Contains(t, stdout.String(), "No microalgae detected")

	saved := settings.NewStore(cfg).Load()
	assert.Equal(t, 40, saved.MinRadius)
	assert.Equal(t, 45, saved.MaxRadius)
	assert.Equal(t, settings.DefaultParams().MinDist, saved.MinDist)
}
