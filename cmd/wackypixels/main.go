package main

import (
	"os"

	"github.com/gookit/color"
	"github.com/lwch/logging"
	"github.com/lwch/wackypixels/internal/config"
	"github.com/urfave/cli/v2"
)

var version = "0.0.0"

func newApp() *cli.App {
	flagConfig := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "YAML configuration file",
	}
	flagInput := &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "input file",
		Value:   "inputs/image.png",
	}
	flagPipeline := &cli.StringFlag{
		Name:    "pipeline",
		Aliases: []string{"p"},
		Usage:   "comma separated stages in forward order, e.g. image,pdf,lzma,unicode,wav",
	}
	flagSave := &cli.BoolFlag{
		Name:    "save-intermediates",
		Aliases: []string{"s"},
		Usage:   "write the output of every step",
		Value:   true,
	}
	flagLevel := &cli.IntFlag{
		Name:  "gzip-level",
		Usage: "gzip compression level, -3 to 9, -1 for the default",
	}

	return &cli.App{
		Name:    "wackypixels",
		Usage:   "A wacky, cursed encoder meant to encode pngs.",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "encode",
				Usage: "Encode an image through the pipeline",
				Flags: []cli.Flag{
					flagConfig, flagInput, flagPipeline, flagSave, flagLevel,
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output directory",
					},
				},
				Action: runEncode,
			},
			{
				Name:  "decode",
				Usage: "Decode a file through the reversed pipeline",
				Flags: []cli.Flag{
					flagConfig, flagInput, flagPipeline, flagSave, flagLevel,
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output directory",
					},
					&cli.StringFlag{
						Name:    "output-file",
						Aliases: []string{"f"},
						Usage:   "decoded file name",
					},
				},
				Action: runDecode,
			},
			{
				Name:   "list",
				Usage:  "List available stages",
				Action: runList,
			},
			{
				Name:   "run",
				Usage:  "Encode then decode a file and verify the round trip",
				Flags:  []cli.Flag{flagConfig, flagInput, flagPipeline, flagSave, flagLevel},
				Action: runRoundTrip,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logging.Error("%v", err)
		color.Red.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig config file overlaid with command line flags
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}
	if c.IsSet("pipeline") {
		cfg.Pipeline = []string{c.String("pipeline")}
	}
	if c.IsSet("save-intermediates") {
		cfg.SaveIntermediates = c.Bool("save-intermediates")
	}
	if c.IsSet("gzip-level") {
		cfg.GzipLevel = c.Int("gzip-level")
	}
	if c.IsSet("output-file") {
		cfg.OutputFile = c.String("output-file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
