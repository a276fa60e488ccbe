package records

import "encoding/binary"

// headerSize is the fixed prefix of every record: a 2-byte tag followed by a
// 4-byte value length, both little endian.
const headerSize = 6

// Record is one tag-value entry from a metadata chunk payload. Value aliases
// the input buffer and is only valid while the buffer is.
type Record struct {
	Tag   uint16
	Value []byte
}

// Scan walks the tag-value records in data and returns them in stream order.
// The format carries no forward-compatibility guarantees, so Scan never
// fails: a header or value that runs past the end of the buffer ends the
// scan and the records collected so far are returned. Values of odd length
// are followed by a single pad byte, which is skipped when present.
func Scan(data []byte) []Record {
	recs := make([]Record, 0, 8)
	i := 0
	for i+headerSize <= len(data) {
		tag := binary.LittleEndian.Uint16(data[i : i+2])
		length := int(binary.LittleEndian.Uint32(data[i+2 : i+6]))
		i += headerSize
		if length < 0 || length > len(data)-i {
			break
		}
		recs = append(recs, Record{Tag: tag, Value: data[i : i+length]})
		i += length
		if length%2 == 1 && i < len(data) {
			i++
		}
	}
	return recs
}
