package domain

// Field widths of the in-band record, in bits.
const (
	NameLengthBits    = 8
	PayloadLengthBits = 64

	// MaxNameLength is the longest name the 8-bit length field can describe.
	MaxNameLength = 1<<NameLengthBits - 1
)

// DefaultName is used when a payload is hidden without a file name.
const DefaultName = "extraido.bin"

// Record is the unit hidden inside a carrier:
//
//	nameLength (8 bits) | name | payloadLength (64 bits) | payload
//
// Field boundaries are implied by the length fields alone. There is no
// magic number or checksum, so a carrier with nothing embedded still
// decodes to a structurally valid Record.
type Record struct {
	Name    string
	Payload []byte
}

// RequiredBits returns the number of carrier bits needed to hold a record
// with the given name and payload sizes in bytes.
func RequiredBits(nameLen, payloadLen uint64) uint64 {
	return NameLengthBits + 8*nameLen + PayloadLengthBits + 8*payloadLen
}

// Bits returns the number of carrier bits r occupies.
func (r *Record) Bits() uint64 {
	return RequiredBits(uint64(len(r.Name)), uint64(len(r.Payload)))
}

// Validate checks that r can be encoded.
func (r *Record) Validate() error {
	if len(r.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}
