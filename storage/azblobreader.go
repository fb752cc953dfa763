package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/datatrails/go-datatrails-common/azblob"
	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/forestrie/go-tlogtiles/tiles"
	"github.com/forestrie/go-tlogtiles/tlog"
)

// TileBlobReader is the narrow slice of the azblob storer the tile reader
// needs. *azblob.Storer satisfies it.
type TileBlobReader interface {
	Reader(
		ctx context.Context,
		identity string,
		opts ...azblob.Option,
	) (*azblob.ReaderResponse, error)
}

// AzblobTileReader serves one log's tiles and checkpoints from path based
// blob storage. It is a read side only: committing tiles belongs to the log
// operator, not to verifiers and mirrors built on this reader.
type AzblobTileReader struct {
	log         logger.Logger
	store       TileBlobReader
	codec       dtcbor.CBORCodec
	logIdentity string
	height      int
}

func NewAzblobTileReader(
	log logger.Logger, store TileBlobReader, codec dtcbor.CBORCodec,
	logIdentity string, height int,
) (AzblobTileReader, error) {
	if _, err := ParseLogIdentity(logIdentity); err != nil {
		return AzblobTileReader{}, err
	}
	if height < 1 || height > 30 {
		return AzblobTileReader{}, fmt.Errorf("height %d: %w", height, tiles.ErrTileHeight)
	}
	return AzblobTileReader{
		log:         log,
		store:       store,
		codec:       codec,
		logIdentity: logIdentity,
		height:      height,
	}, nil
}

// Height returns the tile height the log was configured with.
func (r AzblobTileReader) Height() int { return r.height }

// ReadTiles implements [TileReader] by fetching one blob per requested tile.
// A tile the log has not (or not yet) published reports
// [ErrTileNotAvailable]; a published hash tile whose blob is not exactly
// Width hashes reports wrapping [tiles.ErrTileDataSize].
func (r AzblobTileReader) ReadTiles(ctx context.Context, ts tiles.Tiles) ([][]byte, error) {
	data := make([][]byte, len(ts))
	for i, t := range ts {
		if t.Height != r.height {
			return nil, fmt.Errorf("height %d wanted %d: %w", t.Height, r.height, ErrTileHeightMismatch)
		}

		blobPath := TileBlobPath(r.logIdentity, t)
		b, err := r.blobRead(ctx, blobPath)
		if err != nil {
			return nil, err
		}
		if !t.IsData() && len(b) != t.Width*tlog.HashSize {
			return nil, fmt.Errorf("%d bytes at %s: %w", len(b), blobPath, tiles.ErrTileDataSize)
		}
		data[i] = b
	}
	return data, nil
}

// ReadCheckpoint fetches and decodes the numbered checkpoint for the log.
func (r AzblobTileReader) ReadCheckpoint(ctx context.Context, checkpointIndex uint64) (Checkpoint, error) {
	b, err := r.blobRead(ctx, CheckpointBlobPath(r.logIdentity, checkpointIndex))
	if err != nil {
		return Checkpoint{}, err
	}
	return UnmarshalCheckpoint(r.codec, b)
}

func (r AzblobTileReader) blobRead(ctx context.Context, blobPath string) ([]byte, error) {
	rr, err := r.store.Reader(ctx, blobPath)
	if err != nil {
		if IsBlobNotFound(err) {
			return nil, fmt.Errorf("%s: %w", blobPath, ErrTileNotAvailable)
		}
		return nil, err
	}
	b, err := io.ReadAll(rr.Reader)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", blobPath, err)
	}
	r.log.Debugf("blobRead: %s, %d bytes", blobPath, len(b))
	return b, nil
}
