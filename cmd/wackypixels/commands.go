package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/lwch/wackypixels"
	"github.com/lwch/wackypixels/encoding/imageplane"
	"github.com/lwch/wackypixels/internal/config"
	"github.com/lwch/wackypixels/internal/digest"
	"github.com/urfave/cli/v2"
)

var errMismatch = errors.New("round trip mismatch")

func printPipeline(cfg *config.Config) ([]wackypixels.Stage, error) {
	stages, err := cfg.Stages()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.String()
	}
	color.Cyan.Printf("pipeline: %s\n", strings.Join(names, " -> "))
	return stages, nil
}

func runEncode(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("output") {
		cfg.OutputDir = c.String("output")
	}
	if _, err := printPipeline(cfg); err != nil {
		return err
	}
	p, err := cfg.Build()
	if err != nil {
		return err
	}
	path, err := p.Encode(c.String("input"), cfg.OutputDir)
	if err != nil {
		return err
	}
	color.Green.Printf("encoded: %s\n", path)
	return nil
}

func runDecode(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("output") {
		cfg.DecodeDir = c.String("output")
	}
	if _, err := printPipeline(cfg); err != nil {
		return err
	}
	p, err := cfg.Build()
	if err != nil {
		return err
	}
	path, err := p.Decode(c.String("input"), cfg.DecodeDir, cfg.OutputFile)
	if err != nil {
		return err
	}
	color.Green.Printf("decoded: %s\n", path)
	return nil
}

func runList(c *cli.Context) error {
	color.Cyan.Println("available stages:")
	for _, s := range wackypixels.Stages() {
		fmt.Printf("  %-8s %-4s %s\n", s, s.Extension(), s.Description())
	}
	fmt.Println()
	fmt.Println("stages are applied in the order given, decoding replays them in reverse")
	return nil
}

func runRoundTrip(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	stages, err := printPipeline(cfg)
	if err != nil {
		return err
	}
	p, err := cfg.Build()
	if err != nil {
		return err
	}
	input := c.String("input")
	encoded, err := p.Encode(input, cfg.OutputDir)
	if err != nil {
		return err
	}
	decoded, err := p.Decode(encoded, cfg.DecodeDir, cfg.OutputFile)
	if err != nil {
		return err
	}
	compareImage := len(stages) > 0 && stages[0] == wackypixels.StageImage
	want, err := fingerprint(input, compareImage)
	if err != nil {
		return err
	}
	got, err := fingerprint(decoded, compareImage)
	if err != nil {
		return err
	}
	if !bytes.Equal(want, got) {
		color.Red.Printf("mismatch: %s != %s\n", digest.Short(want), digest.Short(got))
		return errMismatch
	}
	color.Green.Printf("round trip ok, blake3 %s\n", digest.Hex(got))
	return nil
}

// fingerprint bytes compared by run, the raw pixel plane for images
func fingerprint(path string, image bool) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !image {
		return data, nil
	}
	return imageplane.New().Encode(data)
}
