package main

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"sangerPrep/internal/abif"
)

var channelColors = map[string]color.RGBA{
	"DATA9":  {B: 255, A: 255},
	"DATA10": {R: 255, A: 255},
	"DATA11": {G: 128, A: 255},
	"DATA12": {R: 255, G: 255, A: 255},
}

const (
	plotWidth  = 10 * vg.Inch
	plotHeight = 6 * vg.Inch
)

var plotInit sync.Once

// initPlotting selects plain text rendering over the bundled fonts so
// plots render headless. Safe to call any number of times.
func initPlotting() {
	plotInit.Do(func() {
		plot.DefaultTextHandler = text.Plain{Fonts: font.DefaultCache}
	})
}

// plotFormat maps an output path to a gonum/plot image format.
func plotFormat(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png", "jpg", "jpeg", "svg", "pdf", "eps", "tif", "tiff":
		return ext, nil
	}
	return "", fmt.Errorf("unsupported image format %q", filepath.Ext(path))
}

// PlotTrace renders the four raw dye channels of an ABIF trace as an
// electropherogram and saves it to out. The image format follows the
// extension of out.
func PlotTrace(in, out string) error {
	initPlotting()

	format, err := plotFormat(out)
	if err != nil {
		return err
	}

	f, err := abif.Open(in)
	if err != nil {
		return err
	}
	trace, err := f.Channels(abif.ChannelKeys...)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Electropherogram for %s ", filepath.Base(in))
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Nucleotide"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.Text = "Intensity"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	for _, ch := range abif.ChannelKeys {
		pts := make(plotter.XYs, len(trace[ch]))
		for i, v := range trace[ch] {
			pts[i].X = float64(i)
			pts[i].Y = float64(v)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("%s: channel %s: %w", in, ch, err)
		}
		line.Color = channelColors[ch]
		p.Add(line)
		p.Legend.Add(ch, line)
	}

	// Render fully before touching out so a failed render leaves no file.
	wt, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return err
	}
	return os.WriteFile(out, buf.Bytes(), 0o644)
}
