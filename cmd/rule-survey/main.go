package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"

	"split-ca/internal/automaton"
	"split-ca/internal/core"
	"split-ca/internal/render"
	"split-ca/internal/rules"
	"split-ca/internal/servicepoint"
)

type scenarioResult struct {
	index      int
	rule       rules.Rule
	population int
	changed    int
	extinctAt  int
	frozenAt   int
	final      *core.Grid
}

func (r scenarioResult) String() string {
	status := "active"
	switch {
	case r.extinctAt >= 0:
		status = fmt.Sprintf("extinct@%d", r.extinctAt)
	case r.frozenAt >= 0:
		status = fmt.Sprintf("frozen@%d", r.frozenAt)
	}
	return fmt.Sprintf("pop=%d changed=%d %s rule=%s", r.population, r.changed, status, r.rule)
}

func main() {
	count := flag.Int("rules", 200, "rules to synthesize")
	steps := flag.Int("steps", 300, "ticks to simulate per rule")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seed := flag.Int64("seed", 1, "seed for synthesis and grid seeding")
	channel := flag.String("channel", "pixels", "pixels or luma")
	probability := flag.Float64("probability", 0.5, "alive probability when seeding pixel grids")
	top := flag.Int("top", 10, "results to print")
	snapshots := flag.String("snapshots", "", "directory to write PNGs of the top results")
	flag.Parse()

	size := core.Size{W: servicepoint.PixelWidth, H: servicepoint.PixelHeight}
	mode := automaton.SeedBernoulli
	synth := rules.NewSynthesizer(core.NewRNG(*seed))
	next := synth.Binary
	switch *channel {
	case "pixels":
	case "luma":
		size = core.Size{W: servicepoint.TileWidth, H: servicepoint.TileHeight}
		mode = automaton.SeedUniform
		next = synth.Bytes
	default:
		log.Fatalf("unknown channel %q", *channel)
	}

	candidates := make([]rules.Rule, *count)
	for i := range candidates {
		candidates[i] = next()
	}

	fmt.Printf("Surveying %d %s rules (%d workers, %d steps)\n", len(candidates), *channel, *workers, *steps)

	results := make([]scenarioResult, len(candidates))
	bar := pb.StartNew(len(candidates))
	var g errgroup.Group
	g.SetLimit(max(*workers, 1))
	start := time.Now()
	for i, r := range candidates {
		g.Go(func() error {
			rng := core.NewRNG(*seed + int64(i))
			results[i] = runScenario(i, r, size, mode, *probability, *steps, rng)
			bar.Increment()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	bar.Finish()
	elapsed := time.Since(start)

	sort.Slice(results, func(i, j int) bool { return rank(results[i]) > rank(results[j]) })

	fmt.Printf("\nTop %d results (elapsed %s):\n", *top, elapsed.Round(time.Millisecond))
	for i := 0; i < len(results) && i < *top; i++ {
		fmt.Printf("%2d) %s\n", i+1, results[i])
	}

	if *snapshots == "" {
		return
	}
	if err := os.MkdirAll(*snapshots, 0o755); err != nil {
		log.Fatal(err)
	}
	for i := 0; i < len(results) && i < *top; i++ {
		res := results[i]
		img := render.Binary(res.final, color.White, color.Black, 2)
		if mode == automaton.SeedUniform {
			img = render.Gray(res.final, 8)
		}
		path := filepath.Join(*snapshots, fmt.Sprintf("%02d-%s.png", i+1, res.rule.Name))
		if err := render.WritePNG(path, img); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Printf("Wrote %d snapshots to %s\n", min(*top, len(results)), *snapshots)
}

// rank prefers rules that stay alive and keep changing.
func rank(r scenarioResult) int {
	score := r.changed
	if r.extinctAt >= 0 {
		score -= 1 << 30
	}
	if r.frozenAt >= 0 {
		score -= 1 << 20
	}
	return score
}

func runScenario(index int, r rules.Rule, size core.Size, mode automaton.Seeding, p float64, steps int, rng *core.RNG) scenarioResult {
	a := automaton.New(size.W, size.H, r)
	a.Randomize(rng, mode, p)
	res := observe(a, steps)
	res.index = index
	res.rule = r
	return res
}

// observe steps sim until it dies out, freezes or runs out of steps.
func observe(sim core.Sim, steps int) scenarioResult {
	size := sim.Size()
	prev := core.NewGrid(size.W, size.H)
	cur := core.NewGrid(size.W, size.H)
	copy(cur.Cells(), sim.Cells())

	res := scenarioResult{extinctAt: -1, frozenAt: -1}
	for s := 1; s <= steps; s++ {
		prev.CopyFrom(cur)
		sim.Step()
		copy(cur.Cells(), sim.Cells())
		res.changed = changedCells(prev, cur)
		if res.changed == 0 && res.frozenAt < 0 {
			res.frozenAt = s
		}
		if cur.Population() == 0 && res.extinctAt < 0 {
			res.extinctAt = s
			break
		}
		if res.frozenAt >= 0 {
			break
		}
	}
	res.population = cur.Population()
	res.final = cur
	return res
}

func changedCells(a, b *core.Grid) int {
	n := 0
	bc := b.Cells()
	for i, v := range a.Cells() {
		if bc[i] != v {
			n++
		}
	}
	return n
}
