package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/yndnr/isis-go/internal/core/domain"
	"github.com/yndnr/isis-go/internal/telemetry/logger"
	"github.com/yndnr/isis-go/internal/telemetry/metric"
	"github.com/yndnr/isis-go/pkg/bitplane"
	"github.com/yndnr/isis-go/pkg/crypto/envelope"
)

func testContext() context.Context {
	return logger.WithLogger(context.Background(), logger.Discard())
}

func carrier(t *testing.T, h, w int) *bitplane.Grid {
	t.Helper()
	g, err := bitplane.NewGrid(h, w, 3)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	rand.New(rand.NewSource(7)).Read(g.Pix)
	return g
}

func TestStegoService_RoundTrip(t *testing.T) {
	svc := NewStegoService(metric.NewRegistry())
	ctx := testContext()

	tests := []struct {
		name     string
		file     string
		payload  []byte
		password []byte
	}{
		{"plain", "a.txt", []byte("hi"), nil},
		{"plain empty", "empty", nil, nil},
		{"encrypted", "secret.txt", []byte("attack at dawn"), []byte("pw")},
		{"encrypted block multiple", "block.bin", bytes.Repeat([]byte{7}, 32), []byte("pw")},
		{"encrypted empty", "nothing", []byte{}, []byte("pw")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := carrier(t, 32, 32)

			emb, err := svc.Embed(ctx, &EmbedRequest{
				Grid:     g,
				Name:     tt.file,
				Payload:  tt.payload,
				Password: tt.password,
			})
			if err != nil {
				t.Fatalf("Embed() error = %v", err)
			}
			if emb.Grid != g {
				t.Error("Embed() should return the request grid")
			}
			if emb.Encrypted != (tt.password != nil) {
				t.Errorf("Encrypted = %v, want %v", emb.Encrypted, tt.password != nil)
			}
			if tt.password != nil && emb.StoredBytes != envelope.Overhead(len(tt.payload)) {
				t.Errorf("StoredBytes = %d, want %d", emb.StoredBytes, envelope.Overhead(len(tt.payload)))
			}

			ext, err := svc.Extract(ctx, &ExtractRequest{Grid: g, Password: tt.password})
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if ext.Record.Name != tt.file {
				t.Errorf("Name = %q, want %q", ext.Record.Name, tt.file)
			}
			if !bytes.Equal(ext.Record.Payload, tt.payload) {
				t.Errorf("Payload = %q, want %q", ext.Record.Payload, tt.payload)
			}
			if ext.BitsRead != emb.BitsWritten {
				t.Errorf("BitsRead = %d, BitsWritten = %d", ext.BitsRead, emb.BitsWritten)
			}
		})
	}
}

func TestStegoService_ExtractWithoutPasswordReturnsEnvelope(t *testing.T) {
	svc := NewStegoService(nil)
	ctx := testContext()
	g := carrier(t, 32, 32)

	if _, err := svc.Embed(ctx, &EmbedRequest{Grid: g, Name: "s", Payload: []byte("x"), Password: []byte("pw")}); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	ext, err := svc.Extract(ctx, &ExtractRequest{Grid: g})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(ext.Record.Payload) != envelope.Overhead(1) {
		t.Errorf("raw payload = %d bytes, want sealed size %d", len(ext.Record.Payload), envelope.Overhead(1))
	}
	if ext.Encrypted {
		t.Error("Encrypted should be false when no password is given")
	}
}

func TestStegoService_WrongPassword(t *testing.T) {
	svc := NewStegoService(nil)
	ctx := testContext()
	g := carrier(t, 32, 32)
	payload := []byte("the real contents")

	if _, err := svc.Embed(ctx, &EmbedRequest{Grid: g, Name: "s", Payload: payload, Password: []byte("pw1")}); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	ext, err := svc.Extract(ctx, &ExtractRequest{Grid: g, Password: []byte("pw2")})
	if err != nil {
		if !errors.Is(err, domain.ErrDecryptionFailed) {
			t.Errorf("Extract() error = %v, want %v", err, domain.ErrDecryptionFailed)
		}
		if !errors.Is(err, envelope.ErrDecryptionFailed) {
			t.Error("Extract() error should wrap the envelope cause")
		}
		return
	}
	if bytes.Equal(ext.Record.Payload, payload) {
		t.Error("wrong password recovered the original payload")
	}
}

func TestStegoService_PasswordOnPlainCarrier(t *testing.T) {
	svc := NewStegoService(nil)
	ctx := testContext()
	g := carrier(t, 32, 32)

	// 5 bytes can never be a valid envelope.
	if _, err := svc.Embed(ctx, &EmbedRequest{Grid: g, Name: "p", Payload: []byte("plain")}); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	_, err := svc.Extract(ctx, &ExtractRequest{Grid: g, Password: []byte("pw")})
	if !errors.Is(err, domain.ErrDecryptionFailed) {
		t.Errorf("Extract() error = %v, want %v", err, domain.ErrDecryptionFailed)
	}
}

func TestStegoService_PasswordOnEmptyRecord(t *testing.T) {
	svc := NewStegoService(nil)
	ctx := testContext()
	g := carrier(t, 32, 32)

	if _, err := svc.Embed(ctx, &EmbedRequest{Grid: g, Name: "", Payload: nil}); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	ext, err := svc.Extract(ctx, &ExtractRequest{Grid: g, Password: []byte("pw")})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(ext.Record.Payload) != 0 || ext.Encrypted {
		t.Errorf("Extract() = %d bytes, encrypted %v; want empty, not encrypted", len(ext.Record.Payload), ext.Encrypted)
	}
}

func TestStegoService_EmbedTooLarge(t *testing.T) {
	svc := NewStegoService(metric.NewRegistry())
	g := carrier(t, 4, 4)
	before := append([]byte(nil), g.Pix...)

	_, err := svc.Embed(testContext(), &EmbedRequest{
		Grid:    g,
		Name:    "a.txt",
		Payload: bytes.Repeat([]byte("x"), 40),
	})
	if !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Fatalf("Embed() error = %v, want %v", err, domain.ErrCapacityExceeded)
	}
	if !bytes.Equal(g.Pix, before) {
		t.Error("failed Embed() modified the grid")
	}
}

func TestStegoService_EncryptionOverheadCountsAgainstCapacity(t *testing.T) {
	svc := NewStegoService(nil)

	// 4×4×3 holds 384 bits: a 2-byte payload fits raw but its 48-byte
	// envelope (8+40+64+384 bits) does not.
	if _, err := svc.Embed(testContext(), &EmbedRequest{Grid: carrier(t, 4, 4), Name: "a.txt", Payload: []byte("hi")}); err != nil {
		t.Fatalf("plain Embed() error = %v", err)
	}
	_, err := svc.Embed(testContext(), &EmbedRequest{Grid: carrier(t, 4, 4), Name: "a.txt", Payload: []byte("hi"), Password: []byte("pw")})
	if !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Errorf("encrypted Embed() error = %v, want %v", err, domain.ErrCapacityExceeded)
	}
}

func TestStegoService_NameTooLong(t *testing.T) {
	svc := NewStegoService(nil)
	g := carrier(t, 64, 64)
	before := append([]byte(nil), g.Pix...)

	_, err := svc.Embed(testContext(), &EmbedRequest{Grid: g, Name: strings.Repeat("x", 256), Payload: []byte("p")})
	if !errors.Is(err, domain.ErrNameTooLong) {
		t.Fatalf("Embed() error = %v, want %v", err, domain.ErrNameTooLong)
	}
	if !bytes.Equal(g.Pix, before) {
		t.Error("rejected name modified the grid")
	}

	if _, err := svc.Embed(testContext(), &EmbedRequest{Grid: g, Name: strings.Repeat("x", 255), Payload: []byte("p")}); err != nil {
		t.Errorf("Embed() with 255-byte name error = %v", err)
	}
}

func TestStegoService_MissingGrid(t *testing.T) {
	svc := NewStegoService(nil)

	if _, err := svc.Embed(testContext(), &EmbedRequest{Name: "a"}); !errors.Is(err, domain.ErrMissingArgument) {
		t.Errorf("Embed() error = %v, want %v", err, domain.ErrMissingArgument)
	}
	if _, err := svc.Extract(testContext(), &ExtractRequest{}); !errors.Is(err, domain.ErrMissingArgument) {
		t.Errorf("Extract() error = %v, want %v", err, domain.ErrMissingArgument)
	}
}

func TestStegoService_PlanesUsed(t *testing.T) {
	svc := NewStegoService(nil)

	tests := []struct {
		name    string
		payload int
		want    int
	}{
		{"plane 0 only", 2, 1},         // 128 bits
		{"spills into plane 1", 40, 2}, // 432 bits
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 8×16×3: 384 bits per plane.
			g := carrier(t, 8, 16)
			resp, err := svc.Embed(testContext(), &EmbedRequest{Grid: g, Name: "a.txt", Payload: make([]byte, tt.payload)})
			if err != nil {
				t.Fatalf("Embed() error = %v", err)
			}
			if resp.PlanesUsed != tt.want {
				t.Errorf("PlanesUsed = %d, want %d", resp.PlanesUsed, tt.want)
			}
		})
	}
}

func TestStegoService_Capacity(t *testing.T) {
	svc := NewStegoService(nil)
	g := carrier(t, 4, 4)

	r := svc.Capacity(g, 5)
	if r.BitsPerPlane != 48 || r.TotalBits != 384 {
		t.Errorf("bits = %d/plane, %d total; want 48, 384", r.BitsPerPlane, r.TotalBits)
	}
	// (384 - 8 - 40 - 64) / 8 = 34
	if r.MaxPayload != 34 {
		t.Errorf("MaxPayload = %d, want 34", r.MaxPayload)
	}
	// 48 bits per plane cannot even hold the header.
	if r.PlaneZeroPayload != 0 {
		t.Errorf("PlaneZeroPayload = %d, want 0", r.PlaneZeroPayload)
	}
	// 34 bytes of room cannot hold a 48-byte envelope.
	if r.MaxEncryptedPayload != 0 {
		t.Errorf("MaxEncryptedPayload = %d, want 0", r.MaxEncryptedPayload)
	}

	big := carrier(t, 64, 64)
	br := svc.Capacity(big, 5)
	if envelope.Overhead(int(br.MaxEncryptedPayload)) > int(br.MaxPayload) {
		t.Errorf("MaxEncryptedPayload %d seals to %d bytes, more than MaxPayload %d",
			br.MaxEncryptedPayload, envelope.Overhead(int(br.MaxEncryptedPayload)), br.MaxPayload)
	}
	if envelope.Overhead(int(br.MaxEncryptedPayload)+1) <= int(br.MaxPayload) {
		t.Errorf("MaxEncryptedPayload %d is not the largest that fits", br.MaxEncryptedPayload)
	}

	// The reported maximum must actually embed.
	_, err := svc.Embed(testContext(), &EmbedRequest{Grid: big, Name: "a.txt", Payload: make([]byte, br.MaxPayload)})
	if err != nil {
		t.Errorf("Embed() of MaxPayload bytes error = %v", err)
	}
}

func TestStegoService_LogsCarryOperationID(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(logger.Config{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("logger.New() error = %v", err)
	}
	ctx := logger.WithOperationID(logger.WithLogger(context.Background(), log), "01JAF0OPID")

	svc := NewStegoService(metric.NewRegistry())
	g := carrier(t, 32, 32)
	if _, err := svc.Embed(ctx, &EmbedRequest{Grid: g, Name: "n.txt", Payload: []byte("x"), Password: []byte("hunter2")}); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if _, err := svc.Extract(ctx, &ExtractRequest{Grid: g, Password: []byte("hunter2")}); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if strings.Contains(buf.String(), "hunter2") {
		t.Fatalf("logs leaked the password:\n%s", buf.String())
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 2 {
		t.Fatalf("got %d log lines, want embed and extract entries", len(lines))
	}
	for _, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("Failed to parse JSON log %q: %v", line, err)
		}
		if entry["op_id"] != "01JAF0OPID" {
			t.Errorf("op_id = %v in %q", entry["op_id"], line)
		}
		if op := entry["op"]; op != OpEmbed && op != OpExtract {
			t.Errorf("op = %v in %q", op, line)
		}
	}
}
