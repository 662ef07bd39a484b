package token

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// MetadataSpec is the specification tag every metadata record must carry.
const MetadataSpec = "ft-1.0.0"

// Metadata is the immutable descriptive record of the token. It is written
// once at initialization; no mutation operation exists afterwards.
type Metadata struct {
	// Spec is the specification tag, always MetadataSpec.
	Spec string
	// Name is the human-readable token name.
	Name string
	// Symbol is the ticker symbol.
	Symbol string
	// Icon is an optional data-URL icon.
	Icon string
	// Reference is an optional link to off-chain token documentation.
	Reference string
	// ReferenceHash is the 32-byte hash of the referenced document,
	// required together with Reference.
	ReferenceHash []byte
	// Decimals is the display precision.
	Decimals uint8
}

// Validate checks the record before it is fixed at initialization.
func (m Metadata) Validate() error {
	switch {
	case m.Spec != MetadataSpec:
		return fmt.Errorf("%w: spec tag %q, want %q", ErrInvalidMetadata, m.Spec, MetadataSpec)
	case m.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidMetadata)
	case m.Symbol == "":
		return fmt.Errorf("%w: empty symbol", ErrInvalidMetadata)
	case (m.Reference == "") != (len(m.ReferenceHash) == 0):
		return fmt.Errorf("%w: reference and reference hash must be set together", ErrInvalidMetadata)
	case len(m.ReferenceHash) != 0 && len(m.ReferenceHash) != 32:
		return fmt.Errorf("%w: reference hash must be 32 bytes, got %d", ErrInvalidMetadata, len(m.ReferenceHash))
	}
	return nil
}

// ReferenceHashString renders the reference hash in base58 for display and
// JSON views. Empty when no reference is set.
func (m Metadata) ReferenceHashString() string {
	if len(m.ReferenceHash) == 0 {
		return ""
	}
	return base58.Encode(m.ReferenceHash)
}
