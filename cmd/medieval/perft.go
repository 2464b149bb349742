package main

import (
	"context"
	"log"

	"github.com/medieval-chess/medieval/bench"
)

func perft(ctx context.Context, depth int, fen string, parallel, cached bool) error {
	mode := "dfs"
	if parallel {
		mode = "parallel dfs"
	}
	log.Printf("============ perft(%d): %s\n", depth, mode)

	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range out {
			log.Println(s)
		}
	}()
	var opts []bench.PerftOption
	var cache *bench.Cache
	if cached {
		cache = bench.NewCache(bench.DefaultCacheSize)
		opts = append(opts, bench.WithCache(cache))
	}
	_, err := bench.Perft(ctx, depth, fen, parallel, true, out, opts...)
	close(out)
	<-done
	if err != nil {
		return err
	}
	if cache != nil {
		hits, misses, writes := cache.Stats()
		log.Printf("cache: hits=%d misses=%d writes=%d\n", hits, misses, writes)
	}
	return nil
}
