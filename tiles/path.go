package tiles

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// pathBase is the radix of the offset groups in a tile path.
	pathBase = 1000
	// maxPathGroups bounds the group buffer; 7 base-1000 groups cover any
	// 64 bit offset the formatter is ever handed in practice, and anything
	// longer is rejected on parse.
	maxPathGroups = 7

	tilePathPrefix    = "tile"
	dataLevelSegment  = "data"
	partialWidthInfix = ".p"
)

// Path returns the tile coordinate path for the tile:
//
//	tile/H/L/NNN[.p/W]
//
// L is the literal segment "data" for data tiles. NNN encodes N in base 1000,
// one zero padded 3 digit group per path segment, every group but the last
// prefixed with "x". The .p/W suffix is present only for partial tiles. The
// encoding is byte exact; peers fetch tiles by this path, so two
// implementations must never disagree on it.
func (t Tile) Path() string {
	var b strings.Builder

	b.WriteString(tilePathPrefix)
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(t.Height))
	b.WriteByte('/')
	if t.Level == DataLevel {
		b.WriteString(dataLevelSegment)
	} else {
		b.WriteString(strconv.Itoa(t.Level))
	}

	// A 64 bit offset never needs more groups than the buffer holds, so the
	// formatting is allocation free up to the final string.
	var groups [maxPathGroups]uint64
	i := len(groups)
	for n := t.N; ; {
		i--
		groups[i] = n % pathBase
		n /= pathBase
		if n == 0 {
			break
		}
	}
	for ; i < len(groups)-1; i++ {
		fmt.Fprintf(&b, "/x%03d", groups[i])
	}
	fmt.Fprintf(&b, "/%03d", groups[len(groups)-1])

	if t.IsPartial() {
		b.WriteString(partialWidthInfix)
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(t.Width))
	}
	return b.String()
}

// String implements fmt.Stringer as the tile's coordinate path.
func (t Tile) String() string {
	return t.Path()
}

// ParseTilePath is the inverse of [Tile.Path]. It accepts exactly the paths
// the formatter produces: ParseTilePath(t.Path()) == t for every valid t, and
// every accepted path is re-produced byte for byte.
//
// Structural mismatches are reported as errors wrapping [ErrTilePath]: a
// wrong prefix or token count, a non numeric or wrongly padded offset group,
// a missing "x" prefix, a "-1" level where "data" is required, a non
// canonical leading zero group, or a trailing partial width outside
// [1, 2^height).
func ParseTilePath(path string) (Tile, error) {
	f := strings.Split(path, "/")
	if len(f) < 4 || f[0] != tilePathPrefix {
		return Tile{}, badPath(path)
	}

	height, ok := parseCanonicalInt(f[1])
	if !ok || height < 1 || height > 30 {
		return Tile{}, badPath(path)
	}

	level := DataLevel
	if f[2] != dataLevelSegment {
		level, ok = parseCanonicalInt(f[2])
		if !ok || level < 0 || level > 63 {
			return Tile{}, badPath(path)
		}
	}

	f = f[3:]

	// A partial width splits as [... "NNN.p" "W"].
	width := 1 << height
	if last := f[len(f)-1]; len(f) >= 2 && strings.HasSuffix(f[len(f)-2], partialWidthInfix) {
		w, ok := parseCanonicalInt(last)
		// The formatter omits the suffix for full tiles, so a spelled out
		// full (or larger) width is malformed, not merely redundant.
		if !ok || w < 1 || w >= width {
			return Tile{}, badPath(path)
		}
		width = w
		f[len(f)-2] = strings.TrimSuffix(f[len(f)-2], partialWidthInfix)
		f = f[:len(f)-1]
	}

	if len(f) == 0 || len(f) > maxPathGroups {
		return Tile{}, badPath(path)
	}

	var n uint64
	for i, g := range f {
		if i < len(f)-1 {
			if len(g) == 0 || g[0] != 'x' {
				return Tile{}, badPath(path)
			}
			g = g[1:]
		}
		v, ok := parseGroup(g)
		if !ok {
			return Tile{}, badPath(path)
		}
		// The leading group of a multi group offset is never zero in the
		// canonical form (the formatter would have used fewer groups).
		if i == 0 && len(f) > 1 && v == 0 {
			return Tile{}, badPath(path)
		}
		if n > (math.MaxUint64-v)/pathBase {
			return Tile{}, badPath(path)
		}
		n = n*pathBase + v
	}

	t, err := NewTile(height, level, n, width)
	if err != nil {
		return Tile{}, badPath(path)
	}
	return t, nil
}

func badPath(path string) error {
	return fmt.Errorf("%q: %w", path, ErrTilePath)
}

// parseGroup parses one offset group: exactly three decimal digits.
func parseGroup(s string) (uint64, bool) {
	if len(s) != 3 {
		return 0, false
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		v = v*10 + uint64(s[i]-'0')
	}
	return v, true
}

// parseCanonicalInt parses a non negative decimal integer with no sign, no
// leading zeros and no other adornment, which is the only spelling the
// formatter emits for heights, levels and widths.
func parseCanonicalInt(s string) (int, bool) {
	if len(s) == 0 || len(s) > 10 {
		return 0, false
	}
	if s[0] == '0' && len(s) > 1 {
		return 0, false
	}
	v := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		v = v*10 + int(s[i]-'0')
	}
	return v, true
}
