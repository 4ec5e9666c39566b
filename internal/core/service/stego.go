package service

import (
	"context"
	"errors"
	"time"

	"github.com/yndnr/isis-go/internal/core/codec"
	"github.com/yndnr/isis-go/internal/core/domain"
	"github.com/yndnr/isis-go/internal/telemetry/logger"
	"github.com/yndnr/isis-go/internal/telemetry/metric"
	"github.com/yndnr/isis-go/pkg/bitplane"
	"github.com/yndnr/isis-go/pkg/crypto/envelope"
)

// Operation names used in logs and metrics.
const (
	OpEmbed   = "embed"
	OpExtract = "extract"
)

// StegoService embeds records into carrier grids and extracts them again.
type StegoService struct {
	metrics *metric.Registry
}

// NewStegoService creates a new StegoService. metrics may be nil.
func NewStegoService(metrics *metric.Registry) *StegoService {
	return &StegoService{metrics: metrics}
}

// ============================================================================
// Embed
// ============================================================================

// EmbedRequest contains parameters for hiding a file in a carrier.
type EmbedRequest struct {
	Grid     *bitplane.Grid // Required, modified in place
	Name     string         // File name stored alongside the payload (max 255 bytes)
	Payload  []byte         // Raw file contents
	Password []byte         // Optional; empty means no encryption
}

// EmbedResponse describes a successful embed.
type EmbedResponse struct {
	Grid        *bitplane.Grid // The request grid, now carrying the record
	BitsWritten uint64         // Header plus stored payload bits
	StoredBytes int            // Payload bytes on the carrier (envelope size when encrypted)
	PlanesUsed  int            // Bit-planes touched, 1..8
	Encrypted   bool
}

// Embed writes the record described by req onto req.Grid.
//
// The grid is modified only if the whole record fits. On error the grid is
// left as it was, so callers may persist it only after Embed succeeds.
func (s *StegoService) Embed(ctx context.Context, req *EmbedRequest) (resp *EmbedResponse, err error) {
	start := time.Now()
	log := logger.L(ctx).With("op", OpEmbed)
	defer func() {
		s.observe(OpEmbed, err, len(req.Payload), start)
		if err != nil {
			log.Warn("embed failed", "error", err, "code", domain.GetErrorCode(err))
		}
	}()

	if req.Grid == nil {
		return nil, domain.ErrMissingArgument.WithDetails("carrier grid is required")
	}
	record := &domain.Record{Name: req.Name, Payload: req.Payload}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	encrypted := len(req.Password) > 0
	if encrypted {
		sealed, err := envelope.Seal(req.Payload, req.Password)
		if err != nil {
			return nil, domain.ErrEncryptionFailed.WithCause(err)
		}
		record.Payload = sealed
	}

	if s.metrics != nil {
		s.metrics.CarrierBits.Set(float64(req.Grid.Capacity()))
	}
	log.Debug("embedding record",
		"name", record.Name,
		"payload_bytes", len(req.Payload),
		"stored_bytes", len(record.Payload),
		"required_bits", record.Bits(),
		"capacity_bits", req.Grid.Capacity(),
		"encrypted", encrypted,
	)

	stream := bitplane.NewStream(req.Grid)
	if err := codec.Encode(stream, record); err != nil {
		return nil, err
	}

	resp = &EmbedResponse{
		Grid:        req.Grid,
		BitsWritten: record.Bits(),
		StoredBytes: len(record.Payload),
		PlanesUsed:  planesUsed(req.Grid.Dims, record.Bits()),
		Encrypted:   encrypted,
	}
	if s.metrics != nil {
		s.metrics.PlanesUsed.Observe(float64(resp.PlanesUsed))
	}
	log.Info("record embedded",
		"bits", resp.BitsWritten,
		"planes", resp.PlanesUsed,
		"encrypted", encrypted,
	)
	return resp, nil
}

// ============================================================================
// Extract
// ============================================================================

// ExtractRequest contains parameters for recovering a hidden file.
type ExtractRequest struct {
	Grid     *bitplane.Grid // Required, read only
	Password []byte         // Optional; must match the one used on embed
}

// ExtractResponse contains the recovered record.
type ExtractResponse struct {
	Record      *domain.Record
	BitsRead    uint64
	StoredBytes int // Payload bytes read from the carrier before decryption
	Encrypted   bool
}

// Extract reads the record hidden in req.Grid.
//
// Without a password the stored bytes are returned as-is. With one they are
// opened as an envelope, and a malformed envelope or invalid padding fails
// with domain.ErrDecryptionFailed. A wrong password can still pass the
// padding check and yield garbage; nothing on the carrier can detect that.
func (s *StegoService) Extract(ctx context.Context, req *ExtractRequest) (resp *ExtractResponse, err error) {
	start := time.Now()
	log := logger.L(ctx).With("op", OpExtract)
	payloadBytes := 0
	defer func() {
		s.observe(OpExtract, err, payloadBytes, start)
		if err != nil {
			log.Warn("extract failed", "error", err, "code", domain.GetErrorCode(err))
		}
	}()

	if req.Grid == nil {
		return nil, domain.ErrMissingArgument.WithDetails("carrier grid is required")
	}
	if s.metrics != nil {
		s.metrics.CarrierBits.Set(float64(req.Grid.Capacity()))
	}

	record, err := codec.Decode(bitplane.NewStream(req.Grid))
	if err != nil {
		return nil, err
	}
	resp = &ExtractResponse{
		Record:      record,
		BitsRead:    record.Bits(),
		StoredBytes: len(record.Payload),
	}

	// An empty payload means nothing was hidden; there is no envelope to open.
	if len(req.Password) > 0 && len(record.Payload) > 0 {
		plain, err := envelope.Open(record.Payload, req.Password)
		if err != nil {
			if errors.Is(err, envelope.ErrDecryptionFailed) {
				return nil, domain.ErrDecryptionFailed.WithCause(err)
			}
			return nil, err
		}
		record.Payload = plain
		resp.Encrypted = true
	}

	payloadBytes = len(record.Payload)
	log.Info("record extracted",
		"name", record.Name,
		"payload_bytes", payloadBytes,
		"encrypted", resp.Encrypted,
	)
	return resp, nil
}

// ============================================================================
// Capacity
// ============================================================================

// CapacityReport describes how much a carrier can hold.
type CapacityReport struct {
	Height       int    `json:"height" yaml:"height"`
	Width        int    `json:"width" yaml:"width"`
	Channels     int    `json:"channels" yaml:"channels"`
	BitsPerPlane uint64 `json:"bits_per_plane" yaml:"bits_per_plane" table:"count"`
	TotalBits    uint64 `json:"total_bits" yaml:"total_bits" table:"count"`
	NameBytes    int    `json:"name_bytes" yaml:"name_bytes"`

	// MaxPayload is the largest raw payload that fits with this name.
	MaxPayload uint64 `json:"max_payload_bytes" yaml:"max_payload_bytes" table:"bytes"`

	// MaxEncryptedPayload is the largest payload that fits once sealed.
	MaxEncryptedPayload uint64 `json:"max_encrypted_payload_bytes" yaml:"max_encrypted_payload_bytes" table:"bytes"`

	// PlaneZeroPayload is the largest raw payload that stays in the least
	// significant plane.
	PlaneZeroPayload uint64 `json:"plane0_payload_bytes" yaml:"plane0_payload_bytes" table:"bytes"`
}

// Capacity reports the capacity of grid for a name of nameBytes bytes.
func (s *StegoService) Capacity(grid *bitplane.Grid, nameBytes int) *CapacityReport {
	header := domain.RequiredBits(uint64(nameBytes), 0)
	r := &CapacityReport{
		Height:       grid.Height,
		Width:        grid.Width,
		Channels:     grid.Channels,
		BitsPerPlane: uint64(grid.Samples()),
		TotalBits:    grid.Capacity(),
		NameBytes:    nameBytes,
	}
	r.MaxPayload = payloadRoom(r.TotalBits, header)
	r.PlaneZeroPayload = payloadRoom(r.BitsPerPlane, header)

	// Sealed size is HeaderSize plus the payload rounded up to the next
	// whole block, so subtract the header and one block of padding.
	if room := r.MaxPayload; room >= envelope.HeaderSize+16 {
		blocks := (room - envelope.HeaderSize) / 16
		r.MaxEncryptedPayload = blocks*16 - 1
	}
	return r
}

func payloadRoom(bits, header uint64) uint64 {
	if bits < header {
		return 0
	}
	return (bits - header) / 8
}

// planesUsed returns how many bit-planes a record of n bits touches.
func planesUsed(d bitplane.Dims, n uint64) int {
	perPlane := uint64(d.Samples())
	if n == 0 {
		return 0
	}
	return int((n + perPlane - 1) / perPlane)
}

func (s *StegoService) observe(op string, err error, payloadBytes int, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveOperation(op, err, payloadBytes, time.Since(start))
}
