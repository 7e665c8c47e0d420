//go:build test

package server

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/wordfix/pkg/customize"
	"github.com/bastiangx/wordfix/pkg/predict"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var leakWords = []string{
	"hello", "help", "world", "word", "program", "progress", "there", "three",
	"computer", "compute", "international", "internal", "development", "develop",
}

var misspellings = []string{
	"helo", "hlep", "wrold", "wrod", "porgram", "progres", "tehre", "thre",
	"compuetr", "compte", "internatinal", "intrnal", "developmnt", "devlop",
}

func newLeakServer(t *testing.T, cacheSize int) *Server {
	t.Helper()
	settings, err := predict.NewSettings()
	require.NoError(t, err)
	engine, err := predict.New(settings, customize.NewCommunity(settings))
	require.NoError(t, err)
	srv, err := New(engine, Options{MaxQueryLen: 60, CacheSize: cacheSize})
	require.NoError(t, err)
	resp := srv.Handle(Request{ID: "i", Action: ActionIndex, Words: leakWords})
	require.IsType(t, IndexResponse{}, resp)
	return srv
}

func heapAlloc() int64 {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return int64(m.Alloc)
}

func TestMemoryLeakBasic(t *testing.T) {
	for _, iterations := range []int{100, 500, 1000} {
		for _, cacheSize := range []int{0, 64} {
			t.Run(fmt.Sprintf("iterations_%d_cache_%d", iterations, cacheSize), func(t *testing.T) {
				srv := newLeakServer(t, cacheSize)

				baseline := heapAlloc()
				baselineGoroutines := runtime.NumGoroutine()

				for i := 0; i < iterations; i++ {
					for _, w := range misspellings {
						srv.Handle(Request{ID: "q", Word: w, Limit: 5})
					}
				}

				memDelta := heapAlloc() - baseline
				goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
				totalOps := iterations * len(misspellings)
				memPerOp := float64(memDelta) / float64(totalOps)

				t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
					iterations, totalOps, memDelta, memPerOp, goroutineDelta)

				assert.Less(t, memPerOp, 1000.0, "excessive memory usage per operation")
				assert.LessOrEqual(t, goroutineDelta, 2, "goroutine leak")
			})
		}
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 1000},
		{workers: 2, iterationsPerWorker: 500},
		{workers: 4, iterationsPerWorker: 250},
		{workers: 8, iterationsPerWorker: 125},
	}

	for _, cfg := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", cfg.workers, cfg.iterationsPerWorker), func(t *testing.T) {
			memFile, err := os.CreateTemp(t.TempDir(), "concurrent_memory_*.prof")
			require.NoError(t, err)
			defer memFile.Close()

			srv := newLeakServer(t, 64)
			baseline := heapAlloc()
			baselineGoroutines := runtime.NumGoroutine()

			var wg sync.WaitGroup
			var totalOps atomic.Int64
			for worker := 0; worker < cfg.workers; worker++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for iter := 0; iter < cfg.iterationsPerWorker; iter++ {
						for _, w := range misspellings {
							srv.Handle(Request{ID: "q", Word: w, Limit: 5})
							totalOps.Add(1)
						}
						// occasional writes purge the cache under load
						if iter%100 == 0 {
							srv.Handle(Request{ID: "i", Action: ActionIndex, Word: "hello"})
						}
					}
				}()
			}
			wg.Wait()

			memDelta := heapAlloc() - baseline
			goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
			memPerOp := float64(memDelta) / float64(totalOps.Load())

			t.Logf("workers=%d iter_per_worker=%d total_ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
				cfg.workers, cfg.iterationsPerWorker, totalOps.Load(), memDelta, memPerOp, goroutineDelta)

			assert.NoError(t, pprof.WriteHeapProfile(memFile))
			assert.Less(t, memPerOp, 1000.0, "excessive memory usage per operation")
			assert.LessOrEqual(t, goroutineDelta, 3, "goroutine leak")
		})
	}
}
