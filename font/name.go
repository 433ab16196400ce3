package font

import (
	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

// Name ids used by the legacy Font accessors.
const (
	nameFamily     = 1
	nameSubfamily  = 2
	nameFull       = 4
	namePostScript = 6
)

// parseName decodes the naming table, keeping for each name id the record
// from the most preferred platform: Windows English first, then any
// Windows language, then Unicode, then Macintosh Roman.
func parseName(b []byte) (map[uint16]string, error) {
	r := newReader(b)
	r.skip(2) // format
	count := int(r.u16())
	storage := int(r.u16())
	if !r.ok() {
		return nil, malformed("name", "truncated header")
	}
	if storage > len(b) {
		return nil, malformed("name", "string storage offset %d past end (%d bytes)", storage, len(b))
	}

	utf16 := xunicode.UTF16(xunicode.BigEndian, xunicode.IgnoreBOM).NewDecoder()
	mac := charmap.Macintosh.NewDecoder()

	names := make(map[uint16]string)
	ranks := make(map[uint16]int)
	for i := 0; i < count; i++ {
		platform := r.u16()
		encoding := r.u16()
		language := r.u16()
		id := r.u16()
		length := int(r.u16())
		off := int(r.u16())
		if !r.ok() {
			return nil, malformed("name", "truncated record %d of %d", i, count)
		}
		start := storage + off
		if start+length > len(b) {
			return nil, malformed("name", "record %d string out of range", i)
		}
		raw := b[start : start+length]

		rank := -1
		var decoded []byte
		var err error
		switch {
		case platform == 3 && (encoding == 1 || encoding == 10):
			rank = 1
			if language == 0x0409 {
				rank = 0
			}
			decoded, err = utf16.Bytes(raw)
		case platform == 0:
			rank = 2
			decoded, err = utf16.Bytes(raw)
		case platform == 1 && encoding == 0 && language == 0:
			rank = 3
			decoded, err = mac.Bytes(raw)
		}
		if rank < 0 || err != nil {
			continue
		}
		if prev, ok := ranks[id]; ok && prev <= rank {
			continue
		}
		ranks[id] = rank
		names[id] = string(decoded)
	}
	return names, nil
}
