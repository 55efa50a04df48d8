package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir string) (string, string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 9, G: 8, B: 7, A: 6})
	img.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 150, B: 100, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	input := filepath.Join(dir, "image.png")
	require.NoError(t, os.WriteFile(input, buf.Bytes(), 0644))

	cfg := filepath.Join(dir, "wackypixels.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(fmt.Sprintf(
		"output_dir: %q\ndecode_dir: %q\n",
		filepath.Join(dir, "outputs"), filepath.Join(dir, "decrypted"))), 0644))
	return input, cfg
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input, cfg := writeFixture(t, dir)
	err := newApp().Run([]string{"wackypixels", "run", "--config", cfg, "--input", input})
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "outputs", "encrypted.wav"))
	require.FileExists(t, filepath.Join(dir, "outputs", "003_lzma_compression.xz"))
	require.FileExists(t, filepath.Join(dir, "decrypted", "decrypted.png"))
}

func TestEncodeDecodeCustom(t *testing.T) {
	dir := t.TempDir()
	input, cfg := writeFixture(t, dir)
	out := filepath.Join(dir, "custom")
	err := newApp().Run([]string{"wackypixels", "encode", "--config", cfg,
		"--input", input, "--output", out, "--pipeline", "gzip,unicode",
		"--save-intermediates=false"})
	require.NoError(t, err)
	encoded := filepath.Join(out, "encrypted.txt")
	require.FileExists(t, encoded)
	require.NoFileExists(t, filepath.Join(out, "001_gzip_compression.gz"))

	err = newApp().Run([]string{"wackypixels", "decode", "--config", cfg,
		"--input", encoded, "--output", out, "--pipeline", "gzip,unicode",
		"--output-file", "back.png"})
	require.NoError(t, err)
	want, err := os.ReadFile(input)
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(out, "back.png"))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestUnknownStage(t *testing.T) {
	dir := t.TempDir()
	input, cfg := writeFixture(t, dir)
	err := newApp().Run([]string{"wackypixels", "encode", "--config", cfg,
		"--input", input, "--pipeline", "image,zip"})
	require.Error(t, err)
}

func TestList(t *testing.T) {
	require.NoError(t, newApp().Run([]string{"wackypixels", "list"}))
}

func TestGzipLevelFlag(t *testing.T) {
	dir := t.TempDir()
	input, cfg := writeFixture(t, dir)
	err := newApp().Run([]string{"wackypixels", "run", "--config", cfg,
		"--input", input, "--pipeline", "image,gzip,wav", "--gzip-level", "9"})
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "outputs", "002_gzip_compression.gz"))

	err = newApp().Run([]string{"wackypixels", "run", "--config", cfg,
		"--input", input, "--pipeline", "gzip", "--gzip-level", "11"})
	require.Error(t, err)
}
