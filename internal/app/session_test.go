package app

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"microalgae-counter/internal/detect"
	"microalgae-counter/internal/export"
	"microalgae-counter/internal/settings"
	"microalgae-counter/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

type stubFinder struct {
	circles []geometry.Circle
}

func (f stubFinder) FindCircles(gocv.Mat, detect.HoughParams) ([]geometry.Circle, error) {
	return f.circles, nil
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+3] = 255
	}
	img.Set(1, 1, color.White)

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func newTestSession(t *testing.T, circles ...geometry.Circle) (*Session, string) {
	t.Helper()
	dir := t.TempDir()
	store := settings.NewStore(filepath.Join(dir, "config.json"))
	exp := export.New(filepath.Join(dir, export.DefaultDir))
	exp.Now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	s := NewSession(store, exp)
	s.SetPipeline(&detect.Pipeline{Finder: stubFinder{circles: circles}})
	return s, dir
}

func TestDetectAndExportRequireImage(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.Detect()
	assert.ErrorIs(t, err, ErrNoImage)

	_, err = s.Export()
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestExportRequiresDetection(t *testing.T) {
	s, dir := newTestSession(t)
	require.NoError(t, s.LoadImage(writePNG(t, dir, "a.png", 50, 40)))

	_, err := s.Export()
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestDetectUpdatesResults(t *testing.T) {
	s, dir := newTestSession(t,
		geometry.Circle{Center: geometry.Point2D{X: 10, Y: 10}, Radius: 5},
		geometry.Circle{Center: geometry.Point2D{X: 30, Y: 20}, Radius: 15},
	)
	require.NoError(t, s.LoadImage(writePNG(t, dir, "a.png", 50, 40)))

	var events []Outcome
	s.On(EventDetectionComplete, func(data interface{}) {
		events = append(events, data.(Outcome))
	})

	out, err := s.Detect()
	require.NoError(t, err)
	assert.False(t, out.NoneDetected())
	assert.Equal(t, 2, out.Summary.Count)
	assert.Equal(t, 10.0, out.Summary.MeanRadius)
	assert.Equal(t, 2.0/2000, out.Summary.Density)
	assert.Equal(t, 50, out.Annotated.Bounds().Dx())
	require.Len(t, events, 1)

	res, ok := s.Results()
	assert.True(t, ok)
	assert.Equal(t, out.Detections, res.Detections)

	paths, err := s.Export()
	require.NoError(t, err)
	table, err := os.ReadFile(paths.Table)
	require.NoError(t, err)
	assert.Equal(t, "id,x,y,radius\n1,10,10,5\n2,30,20,15\n", string(table))
}

func TestNoneDetectedStillExports(t *testing.T) {
	s, dir := newTestSession(t)
	require.NoError(t, s.LoadImage(writePNG(t, dir, "a.png", 50, 40)))

	out, err := s.Detect()
	require.NoError(t, err)
	assert.True(t, out.NoneDetected())
	assert.Equal(t, "0", out.Summary.FormatCount())
	assert.Equal(t, "0.0", out.Summary.FormatRadius())

	paths, err := s.Export()
	require.NoError(t, err)
	table, err := os.ReadFile(paths.Table)
	require.NoError(t, err)
	assert.Equal(t, "id,x,y,radius\n", string(table))
}

func TestFailedLoadLeavesStateUnchanged(t *testing.T) {
	s, dir := newTestSession(t, geometry.Circle{Center: geometry.Point2D{X: 10, Y: 10}, Radius: 5})
	require.NoError(t, s.LoadImage(writePNG(t, dir, "a.png", 50, 40)))
	before, err := s.Detect()
	require.NoError(t, err)
	raster := s.Image()

	loads := 0
	s.On(EventImageLoaded, func(interface{}) { loads++ })

	bad := filepath.Join(dir, "bad.jpg")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))

	err = s.LoadImage(bad)
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.Same(t, raster, s.Image())
	assert.Equal(t, 0, loads)

	after, ok := s.Results()
	assert.True(t, ok)
	assert.Equal(t, before.Detections, after.Detections)
	assert.Equal(t, before.Summary, after.Summary)
}

func TestNewImageDiscardsResults(t *testing.T) {
	s, dir := newTestSession(t, geometry.Circle{Center: geometry.Point2D{X: 10, Y: 10}, Radius: 5})
	require.NoError(t, s.LoadImage(writePNG(t, dir, "a.png", 50, 40)))
	_, err := s.Detect()
	require.NoError(t, err)

	require.NoError(t, s.LoadImage(writePNG(t, dir, "b.png", 20, 20)))

	res, ok := s.Results()
	assert.False(t, ok)
	assert.Empty(t, res.Detections)
	assert.Nil(t, res.Annotated)
	assert.Equal(t, 0, res.Summary.Count)

	_, err = s.Export()
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestParamsPersistAcrossSessions(t *testing.T) {
	s, dir := newTestSession(t)
	assert.Equal(t, settings.DefaultParams(), s.Params())

	var changed []settings.DetectionParams
	s.On(EventParamsChanged, func(data interface{}) {
		changed = append(changed, data.(settings.DetectionParams))
	})

	s.SetParams(settings.DetectionParams{MinDist: 15, Sensitivity: 200, Accuracy: 40, MinRadius: 3, MaxRadius: 30})
	s.SetParams(s.Params()) // unchanged: no event
	require.Len(t, changed, 1)
	assert.Equal(t, 100, changed[0].Sensitivity)

	require.NoError(t, s.SaveSettings())

	reloaded := NewSession(settings.NewStore(filepath.Join(dir, "config.json")), nil)
	assert.Equal(t, s.Params(), reloaded.Params())
}
