package storage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/forestrie/go-tlogtiles/tiles"
)

const (
	V1TlogPrefix    = "v1/tlogs"
	V1TlogLogPrefix = "v1/tlogs/log"

	V1TlogPathSep           = "/"
	V1TlogCheckpointExt     = "ckpt"
	V1TlogCheckpointNameFmt = "%016d.ckpt"

	// LogInstanceN versions the layout parameters (tile height changes and
	// the like) for a single log identity. Re-configuring a log starts a new
	// instance rather than rewriting blobs in place.
	LogInstanceN = 0

	// LenUUIDString is the length of the UUID string representation, per
	// https://www.rfc-editor.org/rfc/rfc9562.html#name-uuid-format
	LenUUIDString = 36
)

// Blob layout for tile transparency logs.
//
// A log identity has the form 'log/uuid'. Under the versioned prefix each log
// instance holds its tiles, addressed by their tile coordinate paths, and its
// checkpoints:
//
//	v1/tlogs/log/{uuid}/0/tiles/tile/8/0/001
//	v1/tlogs/log/{uuid}/0/checkpoints/0000000000000001.ckpt

// LogTilesPrefix returns the path below which all tile blobs for the log
// identity live. It is the caller's responsibility to ensure the log identity
// has the correct 'log/uuid' form.
func LogTilesPrefix(logIdentity string) string {
	return fmt.Sprintf("%s/%s/%d/tiles/", V1TlogPrefix, logIdentity, LogInstanceN)
}

// LogCheckpointsPrefix returns the path below which the log's checkpoints
// live.
func LogCheckpointsPrefix(logIdentity string) string {
	return fmt.Sprintf("%s/%s/%d/checkpoints/", V1TlogPrefix, logIdentity, LogInstanceN)
}

// TileBlobPath returns the blob path for one tile of the log. The trailing
// element is the tile coordinate path, so the blob name for a partial tile
// differs from the complete tile at the same coordinates and both can be
// served simultaneously.
func TileBlobPath(logIdentity string, t tiles.Tile) string {
	return LogTilesPrefix(logIdentity) + t.Path()
}

// CheckpointBlobPath returns the blob path for the numbered checkpoint of the
// log. Blob stores list and compare names lexically, so the number is zero
// padded to a fixed width.
func CheckpointBlobPath(logIdentity string, checkpointIndex uint64) string {
	return LogCheckpointsPrefix(logIdentity) + fmt.Sprintf(V1TlogCheckpointNameFmt, checkpointIndex)
}

// TileFromBlobPath recovers the tile addressed by a tile blob path produced
// by [TileBlobPath]. Malformed paths, including a tile coordinate path the
// tiles package rejects, are reported wrapping [tiles.ErrTilePath].
func TileFromBlobPath(storagePath string) (tiles.Tile, error) {
	i := strings.Index(storagePath, V1TlogPathSep+"tiles"+V1TlogPathSep)
	if i == -1 {
		return tiles.Tile{}, fmt.Errorf("%q: %w", storagePath, tiles.ErrTilePath)
	}
	return tiles.ParseTilePath(storagePath[i+len(V1TlogPathSep+"tiles"+V1TlogPathSep):])
}

// CheckpointIndexFromBlobPath recovers the checkpoint number from a blob path
// produced by [CheckpointBlobPath].
func CheckpointIndexFromBlobPath(storagePath string) (uint64, error) {
	base := storagePath[strings.LastIndex(storagePath, V1TlogPathSep)+1:]
	numStr, ok := strings.CutSuffix(base, "."+V1TlogCheckpointExt)
	if !ok || len(numStr) != 16 {
		return 0, fmt.Errorf("%q: %w", storagePath, ErrCheckpointMalformed)
	}
	n, err := strconv.ParseUint(numStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", storagePath, ErrCheckpointMalformed)
	}
	return n, nil
}

// ParseLogIdentity validates a 'log/uuid' log identity and returns the uuid.
func ParseLogIdentity(logIdentity string) (uuid.UUID, error) {
	uuidStr, ok := strings.CutPrefix(logIdentity, "log"+V1TlogPathSep)
	if !ok || len(uuidStr) != LenUUIDString {
		return uuid.UUID{}, fmt.Errorf("%q: %w", logIdentity, ErrNotALogIdentity)
	}
	id, err := uuid.Parse(uuidStr)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%q: %v: %w", logIdentity, err, ErrNotALogIdentity)
	}
	return id, nil
}

// LogIdentityForUUID returns the canonical 'log/uuid' identity for a log
// uuid.
func LogIdentityForUUID(id uuid.UUID) string {
	return "log" + V1TlogPathSep + id.String()
}
