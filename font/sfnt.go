package font

import (
	"fmt"
	"sort"
	"strings"
)

// sfnt version tags.
const (
	versionTrueType = 0x00010000
	versionApple    = 0x74727565 // 'true'
	versionCFF      = 0x4F54544F // 'OTTO'
	tagCollection   = 0x74746366 // 'ttcf'
)

// tableDirectory holds the tables of one font, keyed by tag.
type tableDirectory struct {
	version uint32
	tables  map[string][]byte
}

func (d *tableDirectory) has(tag string) bool {
	_, ok := d.tables[tag]
	return ok
}

func (d *tableDirectory) tags() []string {
	out := make([]string, 0, len(d.tables))
	for t := range d.tables {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// parseDirectory reads the offset table at off. Every table record must lie
// inside data and no tag may repeat.
func parseDirectory(data []byte, off int) (*tableDirectory, error) {
	r := newReader(data)
	r.seek(off)
	version := r.u32()
	numTables := int(r.u16())
	r.skip(6) // searchRange, entrySelector, rangeShift
	if !r.ok() {
		return nil, malformed("", "truncated table directory")
	}
	switch version {
	case versionTrueType, versionApple, versionCFF:
	default:
		return nil, malformed("", "unsupported sfnt version 0x%08x", version)
	}

	d := &tableDirectory{version: version, tables: make(map[string][]byte, numTables)}
	for i := 0; i < numTables; i++ {
		tag := string(r.bytes(4))
		r.skip(4) // checksum
		tOff := r.u32()
		tLen := r.u32()
		if !r.ok() {
			return nil, malformed("", "truncated table record %d of %d", i, numTables)
		}
		if uint64(tOff)+uint64(tLen) > uint64(len(data)) {
			return nil, malformed(tag, "table extends past end of file (offset %d, length %d, file %d)",
				tOff, tLen, len(data))
		}
		if d.has(tag) {
			return nil, malformed(tag, "duplicate table record")
		}
		d.tables[tag] = data[tOff : tOff+tLen]
	}
	return d, nil
}

// requireTables checks for the tables every font needs and reports all of
// the missing ones at once.
func (d *tableDirectory) requireTables() error {
	var missing []string
	for _, tag := range []string{"head", "hhea", "maxp", "hmtx", "cmap"} {
		if !d.has(tag) {
			missing = append(missing, tag)
		}
	}
	hasGlyf := d.has("glyf") && d.has("loca")
	if !hasGlyf && !d.has("CFF ") {
		switch {
		case d.version == versionCFF:
			missing = append(missing, "CFF ")
		case d.has("glyf"):
			missing = append(missing, "loca")
		case d.has("loca"):
			missing = append(missing, "glyf")
		default:
			missing = append(missing, "glyf", "loca")
		}
	}
	if len(missing) > 0 {
		return &MalformedFontError{
			Table:  strings.Join(missing, ","),
			Reason: "required table missing",
		}
	}
	return nil
}

// NumFonts returns the number of fonts in data: the collection size for a
// 'ttcf' file and 1 for a plain sfnt file.
func NumFonts(data []byte) (int, error) {
	offsets, err := collectionOffsets(data)
	if err != nil {
		return 0, err
	}
	return len(offsets), nil
}

func collectionOffsets(data []byte) ([]int, error) {
	if len(data) == 0 {
		return nil, &MalformedFontError{Reason: "empty font data", Err: ErrEmptyFontData}
	}
	r := newReader(data)
	if r.u32() != tagCollection {
		return []int{0}, nil
	}
	r.skip(4) // major, minor version
	n := r.u32()
	if !r.ok() {
		return nil, malformed("", "truncated collection header")
	}
	if uint64(n)*4 > uint64(len(data)) {
		return nil, malformed("", "collection claims %d fonts", n)
	}
	offsets := make([]int, n)
	for i := range offsets {
		offsets[i] = int(r.u32())
	}
	if !r.ok() {
		return nil, malformed("", "truncated collection offsets")
	}
	return offsets, nil
}

func directoryFor(data []byte, index int) (*tableDirectory, error) {
	offsets, err := collectionOffsets(data)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(offsets) {
		return nil, fmt.Errorf("font: collection index %d out of range [0, %d)", index, len(offsets))
	}
	return parseDirectory(data, offsets[index])
}
