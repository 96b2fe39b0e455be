package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, vmetrics.TraceKey)
	defer teardown()
	//
	cmd, err := parseCommand("ascent:92.5  descent:20 Preview write:/tmp/a:b.ttf")
	require.NoError(t, err)
	require.Equal(t, 4, cmd.count)
	assert.Equal(t, Op{code: ASCENT, arg: "92.5"}, cmd.op[0])
	assert.Equal(t, Op{code: DESCENT, arg: "20"}, cmd.op[1])
	assert.Equal(t, Op{code: PREVIEW}, cmd.op[2])
	assert.Equal(t, Op{code: WRITE, arg: "/tmp/a:b.ttf"}, cmd.op[3])
	//
	cmd, err = parseCommand("quit:now list")
	require.NoError(t, err)
	assert.Equal(t, 1, cmd.count)
	assert.Equal(t, Op{code: QUIT}, cmd.op[0])
	//
	cmd, err = parseCommand("frobnicate")
	require.NoError(t, err)
	assert.Equal(t, HELP, cmd.op[0].code)
	//
	_, err = parseCommand("   ")
	assert.Error(t, err)
}

func TestSettingsOps(t *testing.T) {
	intp := NewIntp(report.NewConsole(false))
	cmd, err := parseCommand("ascent:80 descent:20% linegap:10")
	require.NoError(t, err)
	err, stop := intp.execute(cmd)
	require.NoError(t, err)
	assert.False(t, stop)
	assert.Equal(t, 80.0, intp.percent.Ascent)
	assert.Equal(t, 20.0, intp.percent.Descent)
	assert.Equal(t, 10.0, intp.percent.LineGap)
	//
	for _, line := range []string{"ascent", "ascent:x", "descent:-3"} {
		cmd, _ = parseCommand(line)
		err, _ = intp.execute(cmd)
		assert.Error(t, err, line)
	}
	assert.Equal(t, 80.0, intp.percent.Ascent)
	//
	cmd, _ = parseCommand("preview")
	err, _ = intp.execute(cmd)
	assert.Equal(t, errNoFont, err)
}

func TestSession(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, vmetrics.TraceKey)
	defer teardown()
	//
	dir := t.TempDir()
	path := filepath.Join(dir, "Go-Regular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))
	intp := NewIntp(report.NewConsole(false))
	require.NoError(t, intp.loadFont(path))
	assert.Contains(t, intp.String(), "ascent=90%")
	//
	require.NotNil(t, intp.result.Before.HHea)
	hhea := *intp.result.Before.HHea
	m, after, err := intp.preview()
	require.NoError(t, err)
	assert.Equal(t, int16(1843), m.Ascent)
	assert.True(t, after.Consistent())
	assert.Equal(t, hhea, *intp.result.Before.HHea, "preview must not touch the loaded metrics")
	//
	out := filepath.Join(dir, "out.ttf")
	cmd, err := parseCommand("list tables preview write:" + out + " css quit")
	require.NoError(t, err)
	err, stop := intp.execute(cmd)
	require.NoError(t, err)
	assert.True(t, stop)
	assert.Equal(t, []string{out}, intp.written)
	_, err = os.Stat(out)
	assert.NoError(t, err)
}
