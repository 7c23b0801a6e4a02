// Command avatardemo renders circular avatars with every compositing
// strategy in both display modes and writes them to a PNG contact sheet.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/avatar"
	"github.com/gogpu/avatar/integration/avatarcanvas"
)

const padding = 8

func main() {
	var (
		input     = flag.String("input", "", "source image (png, jpeg, gif, bmp, webp); a gradient when empty")
		stylePath = flag.String("style", "", "TOML style file")
		strategy  = flag.String("strategy", "", "compositor used for -pulse: shader, mask or plain")
		size      = flag.Int("size", 128, "avatar size in pixels")
		initials  = flag.String("initials", "", "initials label")
		name      = flag.String("name", "", "derive initials from a display name")
		output    = flag.String("output", "avatars.png", "contact sheet output file")
		pulseDir  = flag.String("pulse", "", "directory for the frames of one long-press pulse")
		dumpStyle = flag.Bool("dump-style", false, "print the effective style as TOML and exit")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	setupLogging(*verbose)

	style := avatar.DefaultStyle()
	if *stylePath != "" {
		var err error
		if style, err = avatar.LoadStyleFile(*stylePath); err != nil {
			log.Fatalf("Failed to load style: %v", err)
		}
	}
	if *strategy != "" {
		s, err := avatar.ParseStrategy(*strategy)
		if err != nil {
			log.Fatalf("Invalid strategy: %v", err)
		}
		style.Strategy = s
	}
	switch {
	case *initials != "":
		style.Initials = *initials
	case *name != "":
		style.Initials = avatar.InitialsFromName(*name)
	}

	if *dumpStyle {
		if _, err := style.WriteTo(os.Stdout); err != nil {
			log.Fatalf("Failed to write style: %v", err)
		}
		return
	}
	if *size <= 0 {
		log.Fatalf("Invalid size %d", *size)
	}

	src, err := loadSource(*input, *size)
	if err != nil {
		log.Fatalf("Failed to load source: %v", err)
	}

	sheet, err := contactSheet(style, src, *size)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := savePNG(*output, sheet); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Contact sheet saved to %s (%dx%d)\n", *output, sheet.Bounds().Dx(), sheet.Bounds().Dy())

	if *pulseDir != "" {
		n, err := renderPulse(*pulseDir, style, src, *size)
		if err != nil {
			log.Fatalf("Failed to render pulse: %v", err)
		}
		log.Printf("%d pulse frames saved to %s\n", n, *pulseDir)
	}
}

// setupLogging routes library logs to stderr, with colored levels when
// stderr is a terminal.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var w io.Writer = os.Stderr
	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		w = colorable.NewColorable(os.Stderr)
		opts.ReplaceAttr = colorLevel
	}
	avatar.SetLogger(slog.New(slog.NewTextHandler(w, opts)))
}

// colorLevel wraps the level attribute in ANSI color codes.
func colorLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) != 0 || a.Key != slog.LevelKey {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	code := "36"
	switch {
	case level >= slog.LevelError:
		code = "31"
	case level >= slog.LevelWarn:
		code = "33"
	case level >= slog.LevelInfo:
		code = "32"
	}
	return slog.String(a.Key, "\x1b["+code+"m"+level.String()+"\x1b[0m")
}

func loadSource(path string, size int) (*avatar.Source, error) {
	if path == "" {
		return avatar.NewSource(placeholder(size*3/2, size)), nil
	}
	return avatar.LoadSource(path)
}

// placeholder returns a landscape gradient, so center-cropping is visible.
func placeholder(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := float64(x) / float64(w)
			u := float64(y) / float64(h)
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(255 * (0.1 + t*0.8)),
				G: uint8(255 * (0.2 + u*0.5)),
				B: uint8(255 * (0.9 - t*0.6)),
				A: 255,
			})
		}
	}
	return img
}

// contactSheet renders one row per strategy: avatar mode, then initials mode.
func contactSheet(style avatar.Style, src *avatar.Source, size int) (*image.RGBA, error) {
	strategies := []avatar.Strategy{avatar.StrategyShader, avatar.StrategyMask, avatar.StrategyPlain}
	cell := size + padding
	sheet := image.NewRGBA(image.Rect(0, 0, 2*cell+padding, len(strategies)*cell+padding))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(color.RGBA{40, 44, 52, 255}), image.Point{}, draw.Src)

	for row, s := range strategies {
		w, err := avatar.NewWidget(avatar.WithStyle(style), avatar.WithStrategy(s))
		if err != nil {
			return nil, err
		}
		w.OnSizeChanged(size, size)
		w.SetSource(src)

		for col := range 2 {
			frame := w.Render()
			at := image.Pt(padding+col*cell, padding+row*cell)
			draw.Draw(sheet, frame.Bounds().Add(at), frame, image.Point{}, draw.Over)

			p, _ := w.OnLongPress()
			w.Play(p.Frames(0))
		}
		_ = w.Close()
	}
	return sheet, nil
}

// headlessProvider stands in for a GPU device when frames are only saved
// to disk.
type headlessProvider struct{}

func (headlessProvider) Device() gpucontext.Device             { return nil }
func (headlessProvider) Queue() gpucontext.Queue               { return nil }
func (headlessProvider) Adapter() gpucontext.Adapter           { return nil }
func (headlessProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }
func (headlessProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "headless", Type: gpucontext.AdapterTypeUnknown}
}

var _ gpucontext.DeviceProvider = headlessProvider{}

// renderPulse plays one long-press pulse through a canvas and writes every
// frame to dir.
func renderPulse(dir string, style avatar.Style, src *avatar.Source, size int) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	w, err := avatar.NewWidget(avatar.WithStyle(style))
	if err != nil {
		return 0, err
	}
	defer w.Close()

	c, err := avatarcanvas.New(headlessProvider{}, w, size)
	if err != nil {
		return 0, err
	}
	defer c.Close()
	w.SetSource(src)

	n := 0
	save := func() error {
		path := filepath.Join(dir, fmt.Sprintf("frame_%02d.png", n))
		n++
		return savePNG(path, c.Frame())
	}
	if err := save(); err != nil {
		return n, err
	}
	c.LongPress(40 * time.Millisecond)
	for c.Animating() {
		c.Step()
		if err := save(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
