package main

import (
	"bytes"
	"encoding/json"
	"image"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoeyai/zfinder/pkg/vision/cv"
)

func TestParseRegion(t *testing.T) {
	r, err := parseRegion("1, 2,30 ,40")
	require.NoError(t, err)
	assert.Equal(t, cv.Region{X: 1, Y: 2, Width: 30, Height: 40}, r)

	_, err = parseRegion("1,2,3")
	assert.Error(t, err)
	_, err = parseRegion("a,2,3,4")
	assert.Error(t, err)
}

// writeFixtures 写入噪声截图和从 (25,35) 裁出的 20x10 模板
func writeFixtures(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()

	rng := rand.New(rand.NewSource(11))
	screen := image.NewGray(image.Rect(0, 0, 100, 80))
	for i := range screen.Pix {
		screen.Pix[i] = uint8(rng.Intn(256))
	}

	screenPath := filepath.Join(dir, "screen.png")
	tplPath := filepath.Join(dir, "tpl.png")
	require.NoError(t, cv.WriteImage(screenPath, screen))
	require.NoError(t, cv.WriteImage(tplPath, cv.CropImage(screen, image.Rect(25, 35, 45, 45))))
	return dir, screenPath, tplPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMatchCommand(t *testing.T) {
	dir, screenPath, tplPath := writeFixtures(t)
	cfgFile := filepath.Join(dir, "config.json")

	out, err := execute(t, "--config", cfgFile, "match", screenPath, tplPath, "--json", "--workers", "2")
	require.NoError(t, err)

	var result cv.MatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 25, result.X)
	assert.Equal(t, 35, result.Y)
	assert.InDelta(t, 1.0, result.Score, 1e-6)
	assert.Equal(t, 20, result.Width)
	assert.Equal(t, 10, result.Height)
}

func TestMatchCommandRegion(t *testing.T) {
	dir, screenPath, tplPath := writeFixtures(t)
	cfgFile := filepath.Join(dir, "config.json")
	crop := filepath.Join(dir, "crop.png")

	out, err := execute(t, "--config", cfgFile, "match", screenPath, tplPath,
		"--region", "20,30,40,30", "--save-crop", crop)
	require.NoError(t, err)
	assert.Contains(t, out, "x=25 y=35")

	_, err = os.Stat(crop)
	assert.NoError(t, err, "应保存裁剪图")

	_, err = execute(t, "--config", cfgFile, "match", screenPath, tplPath, "--region", "0,0,5,5")
	assert.ErrorIs(t, err, cv.ErrConfiguration)
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.json")

	out, err := execute(t, "--config", cfgFile, "--log-level", "debug", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, cfgFile)

	out, err = execute(t, "--config", cfgFile, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"log_level": "debug"`)

	_, err = execute(t, "--config", cfgFile, "config", "clear")
	require.NoError(t, err)
	_, err = os.Stat(cfgFile)
	assert.True(t, os.IsNotExist(err))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "--config", filepath.Join(t.TempDir(), "c.json"), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "zfinder v"+Version)
}

func TestRunExitCode(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "exit.js")
	require.NoError(t, os.WriteFile(script, []byte(`console.log("bye"); exit(4);`), 0644))

	code := run([]string{"--config", filepath.Join(dir, "c.json"), "run", script})
	assert.Equal(t, 4, code)

	code = run([]string{"--config", filepath.Join(dir, "c.json"), "run", filepath.Join(dir, "missing.js")})
	assert.Equal(t, 1, code)
}
