// Package imagecodec is the outbound collaborator spec §6 names
// "ImageCodec": it turns an on-disk image into the two [peel.BinaryImage]
// values the engine consumes (a padded copy for dilation, an un-padded
// copy for erosion) and turns a [peel.Result] back into the PNG, text, and
// CSV artifacts the CLI driver writes. It never touches the engine's
// internals; everything here goes through peel's public API, the way
// deepteams-webp's own codec boundary sits entirely on image.Image/
// image/png rather than reaching into VP8's bitstream internals.
package imagecodec

import (
	"encoding/csv"
	"fmt"
	"image"
	"image/color"
	"image/png"
	_ "image/gif"
	_ "image/jpeg"
	"math"
	"os"
	"strconv"

	"github.com/imgmorph/peel"
)

// foregroundThreshold is the 8-bit grayscale level at or above which a
// decoded pixel counts as foreground.
const foregroundThreshold = 128

// Load decodes the image at path and returns two binary images: d, padded
// on every side by min(maxDim, ceil(1.5%*maxDim)) pixels of background for
// dilation, and e, the un-padded image for erosion (spec §6).
func Load(path string) (d, e *peel.BinaryImage, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("imagecodec: load %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("imagecodec: decode %s: %w", path, err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, nil, fmt.Errorf("imagecodec: %s: empty image", path)
	}

	eSize, err := peel.NewSize(w, h)
	if err != nil {
		return nil, nil, err
	}
	e = peel.NewBinaryImage(eSize)

	maxDim := w
	if h > maxDim {
		maxDim = h
	}
	padding := int(math.Ceil(0.015 * float64(maxDim)))
	if padding > maxDim {
		padding = maxDim
	}

	dSize, err := peel.NewSize(w+2*padding, h+2*padding)
	if err != nil {
		return nil, nil, err
	}
	dSize.Padding = padding
	d = peel.NewBinaryImage(dSize)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fg := isForeground(src.At(bounds.Min.X+x, bounds.Min.Y+y))
			if err := e.Set(peel.NewPosition(x, y), fg); err != nil {
				return nil, nil, err
			}
			if fg {
				if err := d.Set(peel.NewPosition(x+padding, y+padding), true); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	return d, e, nil
}

func isForeground(c color.Color) bool {
	gray := color.GrayModel.Convert(c).(color.Gray)
	return gray.Y >= foregroundThreshold
}

// SaveResidues writes the three artifacts spec §6 names for a run's
// residues: prefix+".png" (grayscale, pixel = R[p]+1 linearly rescaled so
// the largest residue maps to white), prefix+".txt" (a "Size: w x h"
// header followed by one row of residues per line), and prefix+".csv"
// (the six counter sequences, semicolon-separated).
func SaveResidues(prefix string, res *peel.Result) error {
	if err := savePNG(prefix+".png", res.Residues); err != nil {
		return err
	}
	if err := saveText(prefix+".txt", res.Residues); err != nil {
		return err
	}
	return saveCounters(prefix+".csv", res.Counters)
}

func savePNG(path string, r *peel.GrayscaleImage) error {
	size := r.Size()
	if size.Dim() != 2 {
		return fmt.Errorf("imagecodec: savePNG: residues must be 2-D, got %d-D", size.Dim())
	}
	w, h := size.Length(0), size.Length(1)

	maxVal := 0
	it := peel.NewPositionIterator(size.Box())
	for it.Next() {
		v, err := r.Get(it.Current())
		if err != nil {
			return err
		}
		if v+1 > maxVal {
			maxVal = v + 1
		}
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	it = peel.NewPositionIterator(size.Box())
	for it.Next() {
		p := it.Current()
		v, err := r.Get(p)
		if err != nil {
			return err
		}
		var level uint8
		if maxVal > 0 {
			level = uint8(math.Round(float64(v+1) / float64(maxVal) * 255))
		}
		img.SetGray(p.At(0), p.At(1), color.Gray{Y: level})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imagecodec: save %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("imagecodec: encode %s: %w", path, err)
	}
	return nil
}

func saveText(path string, r *peel.GrayscaleImage) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imagecodec: save %s: %w", path, err)
	}
	defer f.Close()

	size := r.Size()
	if _, err := fmt.Fprintf(f, "Size: %d x %d\n", size.Length(0), size.Length(1)); err != nil {
		return err
	}
	for y := 0; y < size.Length(1); y++ {
		for x := 0; x < size.Length(0); x++ {
			v, err := r.Get(peel.NewPosition(x, y))
			if err != nil {
				return err
			}
			sep := " "
			if x == size.Length(0)-1 {
				sep = "\n"
			}
			if _, err := fmt.Fprintf(f, "%d%s", v, sep); err != nil {
				return err
			}
		}
	}
	return nil
}

var counterHeader = []string{
	"iteration",
	"determinate border comparison counter",
	"insert new candidate comparison counter",
	"insert new candidate memory access counter",
	"remove candidate comparison counter",
	"remove candidate memory access counter",
	"number of elements in border",
}

func saveCounters(path string, c *peel.Counters) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imagecodec: save %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.Write(counterHeader); err != nil {
		return err
	}
	for i := range c.DetermineBorderComparisons {
		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(c.DetermineBorderComparisons[i]),
			strconv.Itoa(c.InsertComparisons[i]),
			strconv.Itoa(c.InsertMemoryAccesses[i]),
			strconv.Itoa(c.RemoveComparisons[i]),
			strconv.Itoa(c.RemoveMemoryAccesses[i]),
			strconv.Itoa(c.BorderElements[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
