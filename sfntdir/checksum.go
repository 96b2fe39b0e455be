package sfntdir

import (
	"encoding/binary"

	"github.com/npillmayer/vmetrics"
)

// ChecksumMagic is the value the checksum of a whole font file adds up to,
// once head.checkSumAdjustment is set correctly.
const ChecksumMagic uint32 = 0xB1B0AFBA

// Checksum calculates the OpenType checksum of data: the sum of all big
// endian uint32 values, with data zero-padded to a multiple of 4 bytes.
func Checksum(data []byte) uint32 {
	var sum uint32
	n := len(data) &^ 3
	for i := 0; i < n; i += 4 {
		sum += binary.BigEndian.Uint32(data[i:])
	}
	if rest := len(data) - n; rest > 0 {
		var last [4]byte
		copy(last[:], data[n:])
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}

// TableChecksum calculates the checksum of a table as stored in the directory.
// For table 'head' the field checkSumAdjustment is taken as zero.
func TableChecksum(tag Tag, data []byte) uint32 {
	sum := Checksum(data)
	if tag == T("head") && len(data) >= HeadChecksumAdjustment+4 {
		sum -= binary.BigEndian.Uint32(data[HeadChecksumAdjustment:])
	}
	return sum
}

// UpdateTableChecksum rewrites the directory checksum of table tag in b, in place.
func UpdateTableChecksum(b []byte, tag Tag) error {
	dir, err := Parse(b)
	if err != nil {
		return err
	}
	rec, ok := dir.Find(tag)
	if !ok {
		return ErrTableNotFound
	}
	if err := dir.checkBounds(rec); err != nil {
		return err
	}
	sum := TableChecksum(tag, b[rec.Offset:rec.End()])
	pos := recordPosition(dir, tag)
	binary.BigEndian.PutUint32(b[pos+4:], sum)
	tracer().Debugf("checksum of %s updated: 0x%08X -> 0x%08X", tag, rec.Checksum, sum)
	return nil
}

// UpdateChecksumAdjustment rewrites head.checkSumAdjustment in b, in place,
// such that the checksum of the whole file equals ChecksumMagic.
// Fonts without a 'head' table are left untouched and yield ErrTableNotFound.
func UpdateChecksumAdjustment(b []byte) error {
	rec, err := FindTable(b, T("head"))
	if err != nil {
		return err
	}
	if rec.Length < HeadChecksumAdjustment+4 {
		return vmetrics.Errorf(vmetrics.ContainerMalformed, "head", "table too short: %d bytes", rec.Length)
	}
	pos := rec.Offset + HeadChecksumAdjustment
	binary.BigEndian.PutUint32(b[pos:], 0)
	adjustment := ChecksumMagic - Checksum(b)
	binary.BigEndian.PutUint32(b[pos:], adjustment)
	return nil
}

// Verify checks every directory checksum and the whole-file checksum of b.
// It returns the tags of tables whose checksum does not match, and whether
// the file checksum is correct.
func Verify(b []byte) (mismatches []Tag, fileOK bool, err error) {
	dir, err := Parse(b)
	if err != nil {
		return nil, false, err
	}
	if err = dir.Check(); err != nil {
		return nil, false, err
	}
	for _, rec := range dir.Records {
		if TableChecksum(rec.Tag, b[rec.Offset:rec.End()]) != rec.Checksum {
			mismatches = append(mismatches, rec.Tag)
		}
	}
	fileOK = Checksum(b) == ChecksumMagic
	return mismatches, fileOK, nil
}
