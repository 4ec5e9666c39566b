package benchmark

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"testing"

	"github.com/yndnr/isis-go/internal/telemetry/logger"
	"github.com/yndnr/isis-go/pkg/bitplane"
)

// CarrierSides are the square carrier sizes benchmarked, in pixels.
var CarrierSides = []int{64, 256, 1024}

// PayloadSizes are payload sizes in bytes.
var PayloadSizes = []int{64, 1024, 16 * 1024}

func benchContext() context.Context {
	return logger.WithLogger(context.Background(), logger.Discard())
}

// newCarrier returns a side×side RGB grid of random samples.
func newCarrier(b *testing.B, side int) *bitplane.Grid {
	b.Helper()
	g, err := bitplane.NewGrid(side, side, 3)
	if err != nil {
		b.Fatalf("NewGrid() error = %v", err)
	}
	rand.New(rand.NewSource(int64(side))).Read(g.Pix)
	return g
}

func newPayload(size int) []byte {
	p := make([]byte, size)
	rand.New(rand.NewSource(int64(size))).Read(p)
	return p
}

// fits reports whether a raw payload of size bytes fits a side×side carrier.
func fits(side, size int) bool {
	return uint64(side*side*3*bitplane.Planes) >= uint64(8+8*16+64+size*8)
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

func sizeLabel(size int) string {
	switch {
	case size >= 1024*1024:
		return fmt.Sprintf("%dMB", size/(1024*1024))
	case size >= 1024:
		return fmt.Sprintf("%dKB", size/1024)
	default:
		return fmt.Sprintf("%dB", size)
	}
}

// runMatrix runs benchFn for every carrier/payload pair that fits.
func runMatrix(b *testing.B, benchFn func(b *testing.B, side, size int)) {
	for _, side := range CarrierSides {
		for _, size := range PayloadSizes {
			if !fits(side, size) {
				continue
			}
			b.Run(fmt.Sprintf("carrier_%d/payload_%s", side, sizeLabel(size)), func(b *testing.B) {
				benchFn(b, side, size)
			})
		}
	}
}
