// Package benchmark provides performance benchmarks for isis.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Key derivation dominates encrypted runs; compare plain and sealed numbers
// with:
//
//	go test -bench=Embed -benchmem -count=5 ./internal/tests/benchmark/... | tee bench.txt
//	benchstat old.txt new.txt
package benchmark
