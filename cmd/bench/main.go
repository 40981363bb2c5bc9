package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/juren53/tagwriter"
	"github.com/juren53/tagwriter/pkg/core"
)

// memBackend keeps tag values in memory so the benchmark measures the
// core paths (sanitize, candidate expansion, resolution) and not ExifTool.
type memBackend struct {
	tags map[string]core.RawTagMap
}

func (b *memBackend) Read(ctx context.Context, path string) (core.RawTagMap, error) {
	return b.tags[path], nil
}

func (b *memBackend) Write(ctx context.Context, path string, pending []core.PendingWrite) error {
	m := make(core.RawTagMap, len(pending))
	for _, p := range pending {
		if p.Value != "" {
			m[p.Tag.String()] = p.Value
		}
	}
	b.tags[path] = m
	return nil
}

func main() {
	count := flag.Int("count", 1000, "Number of files to cycle through")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "tagwriter_bench_")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(benchDir)

	// 1. Generate placeholder files. Save probes writability, so the
	// files must exist even though the backend never parses them.
	fmt.Printf("Generating %d files in %s...\n", *count, benchDir)
	paths := make([]string, *count)
	for i := range paths {
		paths[i] = filepath.Join(benchDir, fmt.Sprintf("img_%d.jpg", i))
		if err := os.WriteFile(paths[i], []byte("x"), 0644); err != nil {
			panic(err)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	svc, err := tagwriter.New(
		tagwriter.WithBackend(&memBackend{tags: make(map[string]core.RawTagMap)}),
		tagwriter.WithLogger(logger),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	// 2. Save pass: every field populated, fanned out to all candidates.
	start := time.Now()
	for i, path := range paths {
		rec := tagwriter.NewRecord(svc.Registry())
		for _, name := range svc.Registry().Names() {
			rec.Set(name, fmt.Sprintf("%s value %d\r\nsecond line", name, i))
		}
		if _, err := svc.Save(ctx, path, rec); err != nil {
			panic(err)
		}
	}
	saveDur := time.Since(start)
	fmt.Printf("Save:  %v total, %v per file\n", saveDur, saveDur/time.Duration(*count))

	// 3. Load pass: resolve every field through its candidate chain.
	start = time.Now()
	for _, path := range paths {
		if _, err := svc.Load(ctx, path); err != nil {
			panic(err)
		}
	}
	loadDur := time.Since(start)
	fmt.Printf("Load:  %v total, %v per file\n", loadDur, loadDur/time.Duration(*count))
}
