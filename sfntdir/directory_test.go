package sfntdir_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/internal/sfntbuild"
	"github.com/npillmayer/vmetrics/sfntdir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestTags(t *testing.T) {
	assert.Equal(t, "hhea", sfntdir.T("hhea").String())
	assert.Equal(t, sfntdir.T("cvt "), sfntdir.T("cvt"))
	assert.Equal(t, sfntdir.T("OS/2"), sfntdir.MakeTag([]byte("OS/2")))
	assert.Equal(t, sfntdir.Tag(0x68686561), sfntdir.T("hhea"))
}

func TestParseGoRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, vmetrics.TraceKey)
	defer teardown()
	//
	dir, err := sfntdir.Parse(goregular.TTF)
	require.NoError(t, err)
	assert.Equal(t, sfntdir.FlavorTrueType, dir.Flavor)
	assert.False(t, dir.IsCFF())
	require.NoError(t, dir.Check())
	for _, tag := range []string{"head", "hhea", "OS/2", "hmtx", "maxp"} {
		_, ok := dir.Find(sfntdir.T(tag))
		assert.True(t, ok, "expected table %s in Go Regular", tag)
	}
	rec, err := sfntdir.FindTable(goregular.TTF, sfntdir.T("head"))
	require.NoError(t, err)
	upem := binary.BigEndian.Uint16(goregular.TTF[rec.Offset+sfntdir.HeadUnitsPerEm:])
	assert.Equal(t, uint16(2048), upem)
}

func TestFindTableOffsets(t *testing.T) {
	b := sfntbuild.Minimal(1000).Build()
	rec, err := sfntdir.FindTable(b, sfntdir.T("hhea"))
	require.NoError(t, err)
	assert.Equal(t, uint32(sfntdir.HHeaSize), rec.Length)
	assert.Zero(t, rec.Offset&3, "tables must be 4-byte aligned")
	asc := int16(binary.BigEndian.Uint16(b[rec.Offset+sfntdir.HHeaAscender:]))
	desc := int16(binary.BigEndian.Uint16(b[rec.Offset+sfntdir.HHeaDescender:]))
	assert.Equal(t, int16(800), asc)
	assert.Equal(t, int16(-200), desc)
}

func TestFindTableFirstMatchWins(t *testing.T) {
	b := sfntbuild.Minimal(1000).Build()
	dir, err := sfntdir.Parse(b)
	require.NoError(t, err)
	// rename 'hhea' to 'head' in the directory: now there are two 'head' records
	for i, rec := range dir.Records {
		if rec.Tag == sfntdir.T("hhea") {
			copy(b[sfntdir.HeaderSize+i*sfntdir.RecordSize:], "head")
		}
	}
	first := dir.Records[0] // sorted: 'OS/2' < 'head' < 'hhea'
	second := dir.Records[1]
	require.Equal(t, sfntdir.T("head"), second.Tag, "first record is %s", first.Tag)
	rec, err := sfntdir.FindTable(b, sfntdir.T("head"))
	require.NoError(t, err)
	assert.Equal(t, second.Offset, rec.Offset)
}

func TestFindTableMissing(t *testing.T) {
	b := sfntbuild.New().Table("head", sfntbuild.Head(1000)).Build()
	_, err := sfntdir.FindTable(b, sfntdir.T("hhea"))
	assert.True(t, errors.Is(err, sfntdir.ErrTableNotFound))
}

func TestMalformedDirectories(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, vmetrics.TraceKey)
	defer teardown()
	//
	good := sfntbuild.Minimal(1000).Build()
	// too short for the header
	_, err := sfntdir.Parse(good[:8])
	assert.True(t, vmetrics.IsKind(err, vmetrics.ContainerMalformed))
	// unknown flavor
	bad := append([]byte{}, good...)
	copy(bad, "wOF2")
	_, err = sfntdir.Parse(bad)
	assert.True(t, vmetrics.IsKind(err, vmetrics.ContainerMalformed))
	// records announced but buffer truncated within the directory
	_, err = sfntdir.Parse(good[:sfntdir.HeaderSize+sfntdir.RecordSize+3])
	assert.True(t, vmetrics.IsKind(err, vmetrics.ContainerMalformed))
	// many records announced
	bad = append([]byte{}, good...)
	binary.BigEndian.PutUint16(bad[4:], 0xFFFF)
	_, err = sfntdir.FindTable(bad, sfntdir.T("hhea"))
	assert.True(t, vmetrics.IsKind(err, vmetrics.ContainerMalformed))
	// table content beyond end of buffer
	rec, err := sfntdir.FindTable(good, sfntdir.T("hhea"))
	require.NoError(t, err)
	_, err = sfntdir.FindTable(good[:rec.Offset+4], sfntdir.T("hhea"))
	assert.True(t, vmetrics.IsKind(err, vmetrics.ContainerMalformed))
}

func TestDirectoryTables(t *testing.T) {
	b := sfntbuild.Minimal(1000).Table("DSIG", []byte{0, 0, 0, 1, 0, 0, 0, 0}).Build()
	dir, err := sfntdir.Parse(b)
	require.NoError(t, err)
	tables, err := dir.Tables()
	require.NoError(t, err)
	assert.Len(t, tables, 4)
	assert.Equal(t, sfntbuild.HHea(800, -200, 0), tables["hhea"])
	assert.Len(t, tables["head"], sfntdir.HeadSize)
}

func TestCFFFlavor(t *testing.T) {
	b := sfntbuild.Minimal(1000).Flavor(sfntdir.FlavorCFF).Build()
	dir, err := sfntdir.Parse(b)
	require.NoError(t, err)
	assert.True(t, dir.IsCFF())
	assert.Equal(t, "OTTO", string(b[:4]))
}
