package benchmark

import (
	"testing"

	"github.com/yndnr/isis-go/pkg/crypto/envelope"
)

// BenchmarkDeriveKey measures PBKDF2 alone; it bounds every sealed operation.
func BenchmarkDeriveKey(b *testing.B) {
	salt := newPayload(envelope.SaltSize)
	pw := []byte("benchmark password")

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		envelope.DeriveKey(pw, salt)
	}
}

// BenchmarkSeal benchmarks envelope sealing at several payload sizes.
func BenchmarkSeal(b *testing.B) {
	pw := []byte("benchmark password")

	for _, size := range PayloadSizes {
		b.Run(sizeLabel(size), func(b *testing.B) {
			payload := newPayload(size)

			b.SetBytes(int64(size))
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := envelope.Seal(payload, pw); err != nil {
					b.Fatalf("Seal() error = %v", err)
				}
			}
		})
	}
}

// BenchmarkOpen benchmarks envelope opening at several payload sizes.
func BenchmarkOpen(b *testing.B) {
	pw := []byte("benchmark password")

	for _, size := range PayloadSizes {
		b.Run(sizeLabel(size), func(b *testing.B) {
			sealed, err := envelope.Seal(newPayload(size), pw)
			if err != nil {
				b.Fatalf("Seal() error = %v", err)
			}

			b.SetBytes(int64(size))
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := envelope.Open(sealed, pw); err != nil {
					b.Fatalf("Open() error = %v", err)
				}
			}
		})
	}
}
