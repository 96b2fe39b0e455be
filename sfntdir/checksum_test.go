package sfntdir_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/npillmayer/vmetrics/internal/sfntbuild"
	"github.com/npillmayer/vmetrics/sfntdir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumPadding(t *testing.T) {
	assert.Equal(t, uint32(0), sfntdir.Checksum(nil))
	assert.Equal(t, uint32(0x01020304), sfntdir.Checksum([]byte{1, 2, 3, 4}))
	assert.Equal(t, uint32(0x01020304+0x05000000), sfntdir.Checksum([]byte{1, 2, 3, 4, 5}))
	assert.Equal(t, uint32(1), sfntdir.Checksum([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 2}))
}

func TestBuiltFontsVerify(t *testing.T) {
	b := sfntbuild.Minimal(2048).Build()
	mismatches, fileOK, err := sfntdir.Verify(b)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
	assert.True(t, fileOK)
}

func TestUpdateChecksums(t *testing.T) {
	b := sfntbuild.Minimal(1000).Build()
	rec, err := sfntdir.FindTable(b, sfntdir.T("hhea"))
	require.NoError(t, err)
	binary.BigEndian.PutUint16(b[rec.Offset+sfntdir.HHeaAscender:], 900)
	mismatches, fileOK, err := sfntdir.Verify(b)
	require.NoError(t, err)
	assert.Equal(t, []sfntdir.Tag{sfntdir.T("hhea")}, mismatches)
	assert.False(t, fileOK)
	//
	require.NoError(t, sfntdir.UpdateTableChecksum(b, sfntdir.T("hhea")))
	require.NoError(t, sfntdir.UpdateChecksumAdjustment(b))
	mismatches, fileOK, err = sfntdir.Verify(b)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
	assert.True(t, fileOK)
}

func TestUpdateChecksumsWithoutHead(t *testing.T) {
	b := sfntbuild.New().Table("hhea", sfntbuild.HHea(800, -200, 0)).Build()
	err := sfntdir.UpdateChecksumAdjustment(b)
	assert.True(t, errors.Is(err, sfntdir.ErrTableNotFound))
	err = sfntdir.UpdateTableChecksum(b, sfntdir.T("OS/2"))
	assert.True(t, errors.Is(err, sfntdir.ErrTableNotFound))
}
