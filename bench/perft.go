package bench

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/medieval-chess/medieval/board"
)

// Stats holds the perft counters. Everything but Nodes counts the moves played
// at the last ply only.
type Stats struct {
	Nodes      uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
}

func (s *Stats) add(o Stats) {
	atomic.AddUint64(&s.Nodes, o.Nodes)
	atomic.AddUint64(&s.Captures, o.Captures)
	atomic.AddUint64(&s.EnPassants, o.EnPassants)
	atomic.AddUint64(&s.Castles, o.Castles)
	atomic.AddUint64(&s.Promotions, o.Promotions)
	atomic.AddUint64(&s.Checks, o.Checks)
}

type perftConfig struct {
	cache *Cache
}

type PerftOption func(*perftConfig)

// WithCache shares c between the subtree walks of a perft run.
func WithCache(c *Cache) PerftOption {
	return func(cfg *perftConfig) {
		cfg.cache = c
	}
}

// Perft counts the leaf nodes of the legal move tree of fen down to depth. With
// verbose set the node count below each root move is sent to out as it completes.
// The summary line is always sent to out, which must be drained by the caller.
func Perft(ctx context.Context, depth int, fen string, parallel, verbose bool, out chan<- string, opts ...PerftOption) (Stats, error) {
	cfg := &perftConfig{}
	for _, f := range opts {
		f(cfg)
	}

	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return Stats{}, err
	}

	run := runPerft
	if parallel {
		run = runPerftParallel
	}

	start := time.Now()
	stats, err := run(ctx, b, depth, verbose, out, cfg.cache)
	if err != nil {
		return Stats{}, err
	}
	elapsed := time.Since(start)

	out <- message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d pro=%d chk=%d (%.3fs elapsed)",
			depth, stats.Nodes, int(float64(stats.Nodes)/elapsed.Seconds()),
			stats.Captures, stats.EnPassants, stats.Castles, stats.Promotions, stats.Checks, elapsed.Seconds())
	return stats, nil
}

type perftFunc func(ctx context.Context, b *board.Board, d int, verbose bool, out chan<- string, cache *Cache) (Stats, error)

func runPerft(ctx context.Context, b *board.Board, d int, verbose bool, out chan<- string, cache *Cache) (Stats, error) {
	var stats Stats
	if d == 0 {
		stats.Nodes = 1
		return stats, nil
	}
	for _, mv := range b.LegalMoves() {
		if err := ctx.Err(); err != nil {
			return Stats{}, err
		}
		child, err := countSubtree(ctx, b, mv, d-1, cache)
		if err != nil {
			return Stats{}, err
		}
		if verbose {
			out <- fmt.Sprintf("%s: %d", mv.UCI(), child.Nodes)
		}
		stats.add(child)
	}
	return stats, nil
}

func runPerftParallel(ctx context.Context, b *board.Board, d int, verbose bool, out chan<- string, cache *Cache) (Stats, error) {
	var stats Stats
	if d == 0 {
		stats.Nodes = 1
		return stats, nil
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, mv := range b.LegalMoves() {
		mv := mv
		bb := b.Clone()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			child, err := countSubtree(ctx, bb, mv, d-1, cache)
			if err != nil {
				return err
			}
			if verbose {
				out <- fmt.Sprintf("%s: %d", mv.UCI(), child.Nodes)
			}
			stats.add(child)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// countSubtree plays mv, counts the tree below it and takes mv back. At d == 0
// the move itself is the leaf and its flags feed the counters. cache may be nil.
// ctx is checked before every inner node.
func countSubtree(ctx context.Context, b *board.Board, mv board.Move, d int, cache *Cache) (Stats, error) {
	var stats Stats
	if d == 0 {
		stats.Nodes = 1
		if mv.IsCapture {
			stats.Captures++
		}
		if mv.IsEnPassant {
			stats.EnPassants++
		}
		if mv.IsCastle != board.CastleDirectionUnknown {
			stats.Castles++
		}
		if mv.IsPromote != board.PieceUnknown {
			stats.Promotions++
		}
		if mv.IsCheck {
			stats.Checks++
		}
		return stats, nil
	}

	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	if err := b.Push(mv); err != nil {
		panic(err)
	}
	defer func() {
		if _, err := b.Pop(); err != nil {
			panic(err)
		}
	}()

	if cache != nil {
		if cached, ok := cache.Get(b, d); ok {
			return cached, nil
		}
	}
	for _, next := range b.LegalMoves() {
		child, err := countSubtree(ctx, b, next, d-1, cache)
		if err != nil {
			return Stats{}, err
		}
		stats.Nodes += child.Nodes
		stats.Captures += child.Captures
		stats.EnPassants += child.EnPassants
		stats.Castles += child.Castles
		stats.Promotions += child.Promotions
		stats.Checks += child.Checks
	}
	if cache != nil {
		cache.Set(b, d, stats)
	}
	return stats, nil
}
