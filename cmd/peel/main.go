// Command peel runs the boundary-evolution engine against an input image
// across one or more seeds, comparing the selected algorithm variants
// against each other and reporting residues, counters, and agreement.
//
// Usage:
//
//	peel [options] <image> <prefix> <se-length> <num-ses> <algorithms> <seed>
//
// <se-length> is odd, 3..9. <algorithms> is a bitmask: bits 0-2 select
// Naive/Border/Matrix erosion, bits 3-5 the same three for dilation.
// <seed> of -1 uses the wall clock.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/imgmorph/peel"
	"github.com/imgmorph/peel/imagecodec"
	"github.com/imgmorph/peel/internal/rng"
)

// algorithmSlot names one bit of the selector bitmask, in bit order.
type algorithmSlot struct {
	mode    peel.Mode
	variant peel.Variant
}

var slots = [6]algorithmSlot{
	{peel.Erosion, peel.Naive},
	{peel.Erosion, peel.Border},
	{peel.Erosion, peel.Matrix},
	{peel.Dilation, peel.Naive},
	{peel.Dilation, peel.Border},
	{peel.Dilation, peel.Matrix},
}

const (
	exitUsage = -1
	exitLoad  = -2
	exitSave  = -3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("peel", flag.ContinueOnError)
	reportCounts := fs.Bool("i", false, "report foreground pixel counts before/after each run")
	randomize := fs.Bool("r", false, "seed structuring element content from the wall clock instead of a fixed value (origin always forced foreground)")
	saveImages := fs.Bool("s", false, "save residues as PNG and text dump alongside the counter CSV")
	verbose := fs.Bool("v", false, "log per-seed, per-algorithm progress")
	seeds := fs.Int("seeds", 1, "number of (seed, SE-family) combinations to sweep per selected algorithm")
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 6 {
		fmt.Fprintf(os.Stderr, "peel: want 6 positional args, got %d\nUsage: peel [options] <image> <prefix> <se-length> <num-ses> <algorithms> <seed>\n", fs.NArg())
		return exitUsage
	}

	imagePath := fs.Arg(0)
	prefix := fs.Arg(1)
	seLength, err := strconv.Atoi(fs.Arg(2))
	if err != nil || seLength < 3 || seLength > 9 || seLength%2 == 0 {
		fmt.Fprintf(os.Stderr, "peel: se-length must be an odd integer in 3..9, got %q\n", fs.Arg(2))
		return exitUsage
	}
	numSEs, err := strconv.Atoi(fs.Arg(3))
	if err != nil || numSEs < 1 {
		fmt.Fprintf(os.Stderr, "peel: num-ses must be a positive integer, got %q\n", fs.Arg(3))
		return exitUsage
	}
	mask, err := strconv.Atoi(fs.Arg(4))
	if err != nil || mask <= 0 || mask > 0x3f {
		fmt.Fprintf(os.Stderr, "peel: algorithms must be a bitmask in 1..63, got %q\n", fs.Arg(4))
		return exitUsage
	}
	baseSeed, err := strconv.ParseInt(fs.Arg(5), 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "peel: seed must be an integer, got %q\n", fs.Arg(5))
		return exitUsage
	}

	imageD, imageE, err := imagecodec.Load(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "peel: %v\n", err)
		return exitLoad
	}

	if *reportCounts {
		fmt.Printf("foreground(e) = %d, foreground(d) = %d\n", imageE.Count(), imageD.Count())
	}

	result := sweep(sweepConfig{
		imageD:    imageD,
		imageE:    imageE,
		seLength:  seLength,
		numSEs:    numSEs,
		mask:      mask,
		baseSeed:  baseSeed,
		seeds:     *seeds,
		randomize: *randomize,
		verbose:   *verbose,
	})

	if *saveImages {
		for _, r := range result.runs {
			runPrefix := fmt.Sprintf("%s.%s.%s.seed%d", prefix, r.mode, r.variant, r.seed)
			if err := imagecodec.SaveResidues(runPrefix, r.result); err != nil {
				fmt.Fprintf(os.Stderr, "peel: %v\n", err)
				return exitSave
			}
		}
	}

	if *reportCounts {
		for _, r := range result.runs {
			fg, bg := residueCounts(r.result.Residues)
			fmt.Printf("%s %s: foreground pixels: %d\tbackground pixels: %d\n", r.mode, r.variant, fg, bg)
		}
	}

	return result.exitBitmask
}

// residueCounts reports, for a run's residues, how many pixels were ever
// foreground (R > -1, covering both survivors and pixels later peeled or
// grown) versus never (R == -1). The rule is the same for both modes.
func residueCounts(r *peel.GrayscaleImage) (foreground, background int) {
	it := peel.NewPositionIterator(r.Size().Box())
	for it.Next() {
		v, err := r.Get(it.Current())
		if err != nil {
			continue
		}
		if v > -1 {
			foreground++
		} else {
			background++
		}
	}
	return foreground, background
}

type algorithmRun struct {
	mode    peel.Mode
	variant peel.Variant
	seed    int64
	result  *peel.Result
}

type sweepConfig struct {
	imageD, imageE *peel.BinaryImage
	seLength       int
	numSEs         int
	mask           int
	baseSeed       int64
	seeds          int
	randomize      bool
	verbose        bool
}

type sweepResult struct {
	runs        []algorithmRun
	exitBitmask int
}

// sweep runs every selected algorithm against every (seed offset) in
// [0, seeds), using imageD for dilation runs and imageE for erosion (spec
// §6's padded-vs-unpadded split), then compares residues pairwise within
// each (mode, seed) group for agreement (spec §8 property 1). This is the
// default comparison-harness behavior recovered from the original
// three-variant C++ driver; a single seed/algorithm selection degenerates
// to one ordinary run.
func sweep(cfg sweepConfig) sweepResult {
	var out sweepResult

	for offset := 0; offset < cfg.seeds; offset++ {
		seed := cfg.baseSeed
		if seed >= 0 {
			seed += int64(offset)
		}

		contentSeed := int64(0)
		if cfg.randomize {
			contentSeed = -1
		}
		ses := buildFamily(cfg.seLength, cfg.numSEs, contentSeed)

		byMode := map[peel.Mode][]algorithmRun{}
		for bit, slot := range slots {
			if cfg.mask&(1<<uint(bit)) == 0 {
				continue
			}
			x := cfg.imageE
			if slot.mode == peel.Dilation {
				x = cfg.imageD
			}

			if cfg.verbose {
				log.Printf("seed=%d mode=%s variant=%s: starting", seed, slot.mode, slot.variant)
			}

			res, err := peel.Run(slot.mode, slot.variant, x, ses, seed)
			if err != nil {
				if cfg.verbose {
					log.Printf("seed=%d mode=%s variant=%s: %v", seed, slot.mode, slot.variant, err)
				}
				out.exitBitmask |= 1 << 1
				continue
			}

			r := algorithmRun{mode: slot.mode, variant: slot.variant, seed: seed, result: res}
			out.runs = append(out.runs, r)
			byMode[slot.mode] = append(byMode[slot.mode], r)
		}

		for _, group := range byMode {
			if !agree(group) {
				out.exitBitmask |= 1 << 2
			}
		}
	}

	return out
}

// agree reports whether every run in group produced identical residues.
func agree(group []algorithmRun) bool {
	if len(group) < 2 {
		return true
	}
	ref := group[0].result.Residues
	size := ref.Size()
	for _, other := range group[1:] {
		it := peel.NewPositionIterator(size.Box())
		for it.Next() {
			p := it.Current()
			a, errA := ref.Get(p)
			b, errB := other.result.Residues.Get(p)
			if errA != nil || errB != nil || a != b {
				return false
			}
		}
	}
	return true
}

// buildFamily allocates numSEs odd-length hypercube structuring elements,
// each independently filled with random foreground bits (origin forced
// true). SE content is always random; contentSeed only controls whether
// that content is reproducible across runs (0, the default) or genuinely
// random (-1, the wall clock, selected by -r). This source is independent
// of the positional seed argument, which governs only the engine's
// per-iteration shuffling (spec §4.4.4) once the family is built, matching
// the two separate reseed points of the original tester: one before SE
// generation, one after image load.
func buildFamily(length, numSEs int, contentSeed int64) []*peel.StructuringElement {
	r := length / 2
	lower := peel.NewPosition(-r, -r)
	upper := peel.NewPosition(r, r)
	box, err := peel.NewBoundingBox(lower, upper)
	if err != nil {
		panic(err)
	}

	src := rng.New(contentSeed)
	origin := peel.NewPosition(0, 0)

	ses := make([]*peel.StructuringElement, numSEs)
	for i := range ses {
		se, err := peel.NewStructuringElement(box)
		if err != nil {
			panic(err)
		}
		it := peel.NewPositionIterator(box)
		for it.Next() {
			p := it.Current()
			v := p.Equal(origin) || src.Bool()
			if v {
				if err := se.SetAbsolute(p, true); err != nil {
					panic(err)
				}
			}
		}
		ses[i] = se
	}
	return ses
}
