package storage

import (
	"fmt"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/fxamacker/cbor/v2"

	"github.com/forestrie/go-tlogtiles/tlog"
)

// Checkpoint is the unsigned tree head a log publishes alongside its tiles.
// All subsequent tree states whose size is greater can efficiently reproduce
// this root, which is what makes replicated checkpoints auditable against the
// append only property.
//
// Signing and countersigning of checkpoints is deliberately out of scope for
// this module; the codec carries only the state itself.
type Checkpoint struct {
	// TreeSize is the record count the root commits to.
	TreeSize uint64 `cbor:"1,keyasint"`
	// Root is the tree hash for TreeSize records, tlog.HashSize bytes.
	Root []byte `cbor:"2,keyasint"`
	// Timestamp is the unix time in milliseconds the checkpoint was issued.
	// It allows the same root to be re-issued.
	Timestamp int64 `cbor:"3,keyasint"`
	// Extensions carries forward compatible auxiliary claims opaquely; this
	// codec round trips them without interpreting them.
	Extensions cbor.RawMessage `cbor:"4,keyasint,omitempty"`
}

// RootHash returns the checkpoint root as a hash value.
func (c Checkpoint) RootHash() tlog.Hash {
	var h tlog.Hash
	copy(h[:], c.Root)
	return h
}

// NewCheckpointCodec returns the deterministic CBOR codec used for
// checkpoint blobs. Determinism matters: a re-encoded checkpoint must be byte
// identical or replicas would disagree about what they mirrored.
func NewCheckpointCodec() (dtcbor.CBORCodec, error) {
	codec, err := dtcbor.NewCBORCodec(
		dtcbor.NewDeterministicEncOpts(),
		dtcbor.NewDeterministicDecOpts(), // unsigned int decodes to uint64
	)
	if err != nil {
		return dtcbor.CBORCodec{}, err
	}
	return codec, nil
}

// MarshalCheckpoint encodes the checkpoint for storage. A checkpoint for a
// non empty tree must carry a root of exactly tlog.HashSize bytes.
func MarshalCheckpoint(codec dtcbor.CBORCodec, ckpt Checkpoint) ([]byte, error) {
	if err := checkRoot(ckpt); err != nil {
		return nil, err
	}
	return codec.MarshalCBOR(ckpt)
}

// UnmarshalCheckpoint decodes and validates a checkpoint blob. Structural
// decode failures and an ill sized root are both reported wrapping
// [ErrCheckpointMalformed].
func UnmarshalCheckpoint(codec dtcbor.CBORCodec, data []byte) (Checkpoint, error) {
	var ckpt Checkpoint
	if err := codec.UnmarshalInto(data, &ckpt); err != nil {
		return Checkpoint{}, fmt.Errorf("%v: %w", err, ErrCheckpointMalformed)
	}
	if err := checkRoot(ckpt); err != nil {
		return Checkpoint{}, err
	}
	return ckpt, nil
}

func checkRoot(ckpt Checkpoint) error {
	if ckpt.TreeSize == 0 && len(ckpt.Root) == 0 {
		return nil
	}
	if len(ckpt.Root) != tlog.HashSize {
		return fmt.Errorf(
			"root is %d bytes for tree size %d: %w",
			len(ckpt.Root), ckpt.TreeSize, ErrCheckpointMalformed)
	}
	return nil
}
