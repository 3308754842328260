// Command rlec compresses .txt files into .rle files and back.
//
//	rlec -c notes.txt    # writes notes.rle (or notes_1.rle, ...)
//	rlec -d notes.rle    # writes notes.txt (or notes_1.txt, ...)
//	rlec stats notes.txt # compares RLE with the general purpose codecs
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/arloliu/rle/config"
	"github.com/arloliu/rle/fileop"
	"github.com/arloliu/rle/internal/logging"
)

// Version information - will be set at build time
var Version = "dev"

const usageText = `rlec -c <input_file>   compress a .txt file into a .rle file
   rlec -d <input_file>   decompress a .rle file into a .txt file
   rlec -h                show this help
   rlec stats <file>      measure RLE against the other codecs`

// environment carries what the Before hook builds for the actions.
type environment struct {
	fs        afero.Fs
	cfg       *config.Config
	logger    zerolog.Logger
	processor *fileop.Processor
}

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr, afero.NewOsFs()))
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, fs afero.Fs) int {
	app := newApp(stdout, stderr, fs)
	if err := app.RunContext(ctx, args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			if msg := exitErr.Error(); msg != "" {
				fmt.Fprintln(stderr, msg)
			}
			if code := exitErr.ExitCode(); code != 0 {
				return code
			}

			return 1
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return 1
	}

	return 0
}

func newApp(stdout, stderr io.Writer, fs afero.Fs) *cli.App {
	env := &environment{fs: fs}

	return &cli.App{
		Name:      "rlec",
		Usage:     "run-length encode text files with digit escaping",
		UsageText: usageText,
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		// errors are reported by run, never by os.Exit inside the library
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "c",
				Aliases: []string{"compress"},
				Usage:   "compress `FILE`, which must end in .txt",
			},
			&cli.StringFlag{
				Name:    "d",
				Aliases: []string{"decompress"},
				Usage:   "decompress `FILE`, which must end in .rle",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "read settings from `PATH` instead of searching for rlec.yaml",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level `LEVEL` (debug, info, error, none)",
			},
			&cli.IntFlag{
				Name:  "chunk-size",
				Usage: "output buffer growth increment in `BYTES`",
			},
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "check that every output transforms back into its input before writing it",
			},
		},
		Before: env.setup,
		Action: env.transformCmd,
		Commands: []*cli.Command{
			statsCommand(env),
		},
	}
}

// setup loads the configuration, applies flag overrides and builds the
// logger and file processor.
func (env *environment) setup(c *cli.Context) error {
	cfg, err := config.Load(env.fs, c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("chunk-size") {
		cfg.ChunkSize = c.Int("chunk-size")
	}
	if c.IsSet("verify") {
		cfg.VerifyRoundTrip = c.Bool("verify")
	}
	if err := cfg.Validate(); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	logger, err := logging.New(c.App.ErrWriter, cfg.LogLevel)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	if cfg.ConfigFile != "" {
		logger.Debug().Str("path", cfg.ConfigFile).Msg("loaded config file")
	}

	processor, err := fileop.NewProcessor(env.fs, logger,
		fileop.WithRLEOptions(cfg.RLEOptions()...),
		fileop.WithVerify(cfg.VerifyRoundTrip),
		fileop.WithSizeHintFactor(cfg.SizeHintFactor),
	)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	env.cfg = cfg
	env.logger = logger
	env.processor = processor

	return nil
}

// transformCmd handles the -c and -d modes. Exactly one of them must be given.
func (env *environment) transformCmd(c *cli.Context) error {
	compressPath := c.String("c")
	decompressPath := c.String("d")

	if c.Args().Present() || (compressPath == "") == (decompressPath == "") {
		fmt.Fprintf(c.App.ErrWriter, "Usage:\n   %s\n", usageText)
		return cli.Exit("Error: expected exactly one of -c <file> or -d <file>", 1)
	}

	var (
		output string
		err    error
	)
	if compressPath != "" {
		output, err = env.processor.CompressFile(c.Context, compressPath)
	} else {
		output, err = env.processor.DecompressFile(c.Context, decompressPath)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	fmt.Fprintln(c.App.Writer, output)

	return nil
}
