// Command tilingexplore grows patches of periodic tilings toward a set of
// points and writes the resulting tiles as WKT polygons.
//
// Usage:
//
//	tilingexplore -tiling 4.6.12,3.12.12 -points "0.5,0.5;4,-2" -output out
//
// With several tilings, -output names a directory that receives one
// <tiling>.wkt file per tiling.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/tiling"
	"github.com/gogpu/tiling/atlas"
	"github.com/gogpu/tiling/geometry"
	"github.com/gogpu/tiling/internal/parallel"
)

// job is one tiling to explore.
type job struct {
	name  string
	atlas *atlas.Atlas
}

func main() {
	var (
		names    = flag.String("tiling", "4.6.12", "comma-separated built-in tiling names")
		config   = flag.String("config", "", "JSON tiling description (overrides -tiling)")
		points   = flag.String("points", "0.5,0.5", "semicolon-separated x,y points to include")
		output   = flag.String("output", "-", "output file, or directory with several tilings; - for stdout")
		all      = flag.Bool("all", false, "also write excluded scaffolding tiles")
		workers  = flag.Int("workers", 0, "parallel explorations (0 = GOMAXPROCS)")
		maxSteps = flag.Int("max-steps", tiling.DefaultMaxSteps, "vertex stars visited per point")
		list     = flag.Bool("list", false, "list built-in tilings and exit")
		verbose  = flag.Bool("v", false, "debug logging to stderr")
	)
	flag.Parse()

	if *list {
		for _, n := range atlas.Names() {
			fmt.Println(n)
		}
		return
	}
	if *verbose {
		tiling.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	targets, err := parsePoints(*points)
	if err != nil {
		log.Fatalf("Bad -points: %v", err)
	}
	jobs, err := loadJobs(*names, *config)
	if err != nil {
		log.Fatalf("Failed to load tilings: %v", err)
	}

	pool := parallel.NewWorkerPool(*workers)
	defer pool.Close()

	patches, errs := parallel.Map(context.Background(), pool, jobs,
		func(ctx context.Context, j job) (*tiling.Patch, error) {
			return explore(ctx, j.atlas, targets, tiling.WithMaxSteps(*maxSteps))
		})

	failed := false
	for i, j := range jobs {
		if errs[i] != nil {
			log.Printf("%s: %v", j.name, errs[i])
			failed = true
			continue
		}
		if err := write(*output, len(jobs) > 1, j.name, patches[i], !*all); err != nil {
			log.Printf("%s: %v", j.name, err)
			failed = true
			continue
		}
		log.Printf("%s: %d tiles, %d vertex stars", j.name, len(patches[i].Tiles()), len(patches[i].VertexStars()))
	}
	if failed {
		os.Exit(1)
	}
}

// loadJobs resolves the tilings named on the command line, or the JSON
// description at path when path is set.
func loadJobs(names, path string) ([]job, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		cfg, err := atlas.ParseJSON(f)
		if err != nil {
			return nil, err
		}
		a, err := atlas.New(cfg)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return []job{{name: name, atlas: a}}, nil
	}

	var jobs []job
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		a, err := atlas.Lookup(name)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job{name: name, atlas: a})
	}
	if len(jobs) == 0 {
		return nil, errors.New("no tilings given")
	}
	return jobs, nil
}

// parsePoints parses "x,y;x,y".
func parsePoints(s string) ([]geometry.Point, error) {
	var out []geometry.Point
	for _, field := range strings.Split(s, ";") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		xs, ys, ok := strings.Cut(field, ",")
		if !ok {
			return nil, fmt.Errorf("point %q: want x,y", field)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", field, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", field, err)
		}
		out = append(out, geometry.Pt(x, y))
	}
	return out, nil
}

// explore includes the tile under every target in a fresh patch of a.
func explore(ctx context.Context, a *atlas.Atlas, targets []geometry.Point, opts ...tiling.PatchOption) (*tiling.Patch, error) {
	p, err := tiling.NewPatch(a, opts...)
	if err != nil {
		return nil, err
	}
	for _, q := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := p.InsertTileByPoint(q); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func write(output string, perTiling bool, name string, p *tiling.Patch, includedOnly bool) error {
	if output == "-" {
		return p.WriteWKT(os.Stdout, includedOnly)
	}
	path := output
	if perTiling {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return err
		}
		path = filepath.Join(output, name+".wkt")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return writeAndClose(f, p, includedOnly)
}

func writeAndClose(w io.WriteCloser, p *tiling.Patch, includedOnly bool) error {
	if err := p.WriteWKT(w, includedOnly); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
