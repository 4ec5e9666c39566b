package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yndnr/isis-go/internal/core/domain"
	"github.com/yndnr/isis-go/pkg/bitplane"
)

// Encode writes r to s.
func Encode(s *bitplane.Stream, r *domain.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if need, have := r.Bits(), s.Remaining(); need > have {
		return domain.ErrCapacityExceeded.WithDetails(
			fmt.Sprintf("need %d bits, carrier has %d", need, have),
		)
	}

	name := []byte(r.Name)
	if err := s.WriteUint(uint64(len(name)), domain.NameLengthBits); err != nil {
		return mapStreamError(err)
	}
	if err := s.WriteBytes(name); err != nil {
		return mapStreamError(err)
	}
	if err := s.WriteUint(uint64(len(r.Payload)), domain.PayloadLengthBits); err != nil {
		return mapStreamError(err)
	}
	if err := s.WriteBytes(r.Payload); err != nil {
		return mapStreamError(err)
	}
	return nil
}

// Decode reads a record from s.
//
// Any carrier decodes to something: without a marker there is no way to
// tell "nothing embedded" from a record that happens to parse. Decode only
// fails when a declared length runs past the end of the carrier.
func Decode(s *bitplane.Stream) (*domain.Record, error) {
	nameLen, err := s.ReadUint(domain.NameLengthBits)
	if err != nil {
		return nil, mapStreamError(err)
	}
	name, err := s.ReadBytes(int(nameLen))
	if err != nil {
		return nil, mapStreamError(err)
	}

	payloadLen, err := s.ReadUint(domain.PayloadLengthBits)
	if err != nil {
		return nil, mapStreamError(err)
	}
	if remaining := s.Remaining() / 8; payloadLen > remaining {
		return nil, domain.ErrCapacityExhausted.WithDetails(
			fmt.Sprintf("declared payload of %d bytes exceeds the %d bytes left in carrier", payloadLen, remaining),
		)
	}
	payload, err := s.ReadBytes(int(payloadLen))
	if err != nil {
		return nil, mapStreamError(err)
	}

	return &domain.Record{
		Name:    strings.ToValidUTF8(string(name), "\uFFFD"),
		Payload: payload,
	}, nil
}

// mapStreamError lifts bitplane errors into the domain taxonomy.
func mapStreamError(err error) error {
	switch {
	case errors.Is(err, bitplane.ErrCapacityExhausted):
		return domain.ErrCapacityExhausted.WithCause(err)
	case errors.Is(err, bitplane.ErrValueTooLarge):
		return domain.ErrValueTooLarge.WithCause(err)
	default:
		return err
	}
}
