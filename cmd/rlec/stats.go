package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/arloliu/rle/compress"
	"github.com/arloliu/rle/format"
)

func statsCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "compare RLE with the other codecs on a file",
		UsageText: "rlec stats [--codec NAME]... FILE",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "codec",
				Usage: "measure only codec `NAME` (rle, none, zstd, s2, lz4); repeatable",
			},
		},
		Action: env.statsCmd,
	}
}

func (env *environment) statsCmd(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("Error: stats expects exactly one FILE argument", 1)
	}
	path := c.Args().First()

	types := compress.BuiltinTypes
	if names := c.StringSlice("codec"); len(names) > 0 {
		types = make([]format.CompressionType, 0, len(names))
		for _, name := range names {
			t, ok := format.ParseCompressionType(name)
			if !ok {
				return cli.Exit(fmt.Sprintf("Error: unknown codec %q", name), 1)
			}
			types = append(types, t)
		}
	}

	data, err := afero.ReadFile(env.fs, path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "CODEC\tORIGINAL\tCOMPRESSED\tRATIO\tSAVINGS\tCOMPRESS\tDECOMPRESS\tROUND TRIP\n")

	failed := 0
	for _, t := range types {
		stats, err := compress.Measure(t, data)
		if err != nil {
			env.logger.Error().Err(err).Str("codec", t.String()).Msg("measurement failed")
			fmt.Fprintf(tw, "%s\t%d\t-\t-\t-\t-\t-\terror: %v\n", t, len(data), err)
			failed++

			continue
		}
		if !stats.RoundTrip {
			failed++
		}

		fmt.Fprintf(tw, "%s\t%d\t%d\t%.3f\t%.1f%%\t%s\t%s\t%t\n",
			stats.Algorithm,
			stats.OriginalSize,
			stats.CompressedSize,
			stats.CompressionRatio(),
			stats.SpaceSavings(),
			time.Duration(stats.CompressionTimeNs),
			time.Duration(stats.DecompressionTimeNs),
			stats.RoundTrip,
		)
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("Error: %d codec(s) failed", failed), 1)
	}

	return nil
}
