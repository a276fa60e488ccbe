package records

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func record(tag uint16, value []byte) []byte {
	out := binary.LittleEndian.AppendUint16(nil, tag)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(value)))
	out = append(out, value...)
	if len(value)%2 == 1 {
		out = append(out, 0x00)
	}
	return out
}

func TestScan(t *testing.T) {
	stream := append(record(0x01, []byte("SM4")), record(0x02, []byte("S4A02641"))...)
	recs := Scan(stream)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Tag != 0x01 || !bytes.Equal(recs[0].Value, []byte("SM4")) {
		t.Fatalf("unexpected first record: %04X %q", recs[0].Tag, recs[0].Value)
	}
	if recs[1].Tag != 0x02 || !bytes.Equal(recs[1].Value, []byte("S4A02641")) {
		t.Fatalf("unexpected second record: %04X %q", recs[1].Tag, recs[1].Value)
	}
}

func TestScanEmpty(t *testing.T) {
	if recs := Scan(nil); len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}
}

func TestScanOddLengthWithoutTrailingPad(t *testing.T) {
	// Pad byte after an odd value is optional at end of stream.
	stream := record(0x01, []byte("SM4"))
	stream = stream[:len(stream)-1]
	recs := Scan(stream)
	if len(recs) != 1 || !bytes.Equal(recs[0].Value, []byte("SM4")) {
		t.Fatalf("unexpected records: %v", recs)
	}
}

func TestScanTruncatedValue(t *testing.T) {
	stream := append(record(0x01, []byte("SM4")), record(0x05, bytes.Repeat([]byte{0x41}, 20))...)
	truncated := stream[:len(stream)-5]
	recs := Scan(truncated)
	if len(recs) != 1 {
		t.Fatalf("expected the intact record only, got %d", len(recs))
	}
	if recs[0].Tag != 0x01 {
		t.Fatalf("unexpected tag %04X", recs[0].Tag)
	}
}

func TestScanHeaderFragment(t *testing.T) {
	stream := append(record(0x01, []byte("SM4")), 0xDE, 0xAD, 0xBE, 0xEF)
	recs := Scan(stream)
	if len(recs) != 1 {
		t.Fatalf("expected trailing fragment to be ignored, got %d records", len(recs))
	}
}

func TestScanNeverPanics(t *testing.T) {
	stream := append(record(0x01, []byte("SM4")), record(0x14, make([]byte, 8))...)
	for i := 0; i <= len(stream); i++ {
		Scan(stream[:i])
	}
}
