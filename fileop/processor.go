package fileop

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arloliu/rle/encoding"
	"github.com/arloliu/rle/errs"
	"github.com/arloliu/rle/format"
	"github.com/arloliu/rle/internal/hash"
	"github.com/arloliu/rle/internal/options"
	"github.com/arloliu/rle/internal/pool"
)

const (
	// outputFileMode is the permission of created output files.
	outputFileMode os.FileMode = 0o644

	// maxCreateAttempts bounds the retries when a unique output name is taken
	// concurrently.
	maxCreateAttempts = 16
)

// Processor compresses and decompresses whole files.
//
// A Processor is safe for concurrent use as long as the calls target
// different output files.
type Processor struct {
	fs         afero.Fs
	logger     zerolog.Logger
	rleOpts    []encoding.RLEOption
	verify     bool
	hintFactor int
}

// ProcessorOption configures a Processor.
type ProcessorOption = options.Option[*Processor]

// WithRLEOptions sets the buffer options of the underlying encoder and decoder.
func WithRLEOptions(opts ...encoding.RLEOption) ProcessorOption {
	return options.NoError(func(p *Processor) {
		p.rleOpts = append(p.rleOpts, opts...)
	})
}

// WithVerify makes every transform decode its own output (or re-encode it) and
// compare checksums before anything is written.
func WithVerify(enabled bool) ProcessorOption {
	return options.NoError(func(p *Processor) {
		p.verify = enabled
	})
}

// WithSizeHintFactor sets the multiplier applied to the input length to size
// the compression output buffer up front. Decompression starts at half the
// input length.
func WithSizeHintFactor(factor int) ProcessorOption {
	return options.New(func(p *Processor) error {
		if factor <= 0 {
			return fmt.Errorf("invalid size hint factor: %d", factor)
		}
		p.hintFactor = factor

		return nil
	})
}

// NewProcessor creates a Processor operating on fs.
func NewProcessor(fs afero.Fs, logger zerolog.Logger, opts ...ProcessorOption) (*Processor, error) {
	p := &Processor{
		fs:         fs,
		logger:     logger,
		hintFactor: 2,
	}
	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}

	// validate the transform options once instead of on every call
	if _, err := encoding.NewRLEEncoder(p.rleOpts...); err != nil {
		return nil, err
	}

	return p, nil
}

// CompressFile encodes input, which must end in .txt, into a new .rle file
// next to it and returns the path of the created file.
func (p *Processor) CompressFile(ctx context.Context, input string) (string, error) {
	return p.process(ctx, format.DirectionCompress, input, "")
}

// DecompressFile decodes input, which must end in .rle, into a new .txt file
// next to it and returns the path of the created file.
func (p *Processor) DecompressFile(ctx context.Context, input string) (string, error) {
	return p.process(ctx, format.DirectionDecompress, input, "")
}

// CompressTo encodes input into output. An existing output file is replaced.
func (p *Processor) CompressTo(ctx context.Context, input, output string) error {
	_, err := p.process(ctx, format.DirectionCompress, input, output)
	return err
}

// DecompressTo decodes input into output. An existing output file is replaced.
func (p *Processor) DecompressTo(ctx context.Context, input, output string) error {
	_, err := p.process(ctx, format.DirectionDecompress, input, output)
	return err
}

func (p *Processor) process(ctx context.Context, dir format.Direction, input, output string) (string, error) {
	logger := p.logger.With().Str("op", dir.String()).Str("input", input).Logger()

	if err := CheckExtension(input, dir.InputExt()); err != nil {
		logger.Error().Err(err).Msg("rejected input file")
		return "", err
	}
	logger.Info().Msg("processing file")

	if err := ctx.Err(); err != nil {
		return "", err
	}

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)

	if err := p.readFile(input, buf); err != nil {
		logger.Error().Err(err).Msg("failed to read input file")
		return "", err
	}
	data := buf.Bytes()
	logger.Debug().
		Int("size", len(data)).
		Int("buffer_cap", buf.Cap()).
		Uint64("checksum", hash.Checksum(data)).
		Msg("read input file")

	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, err := p.transform(dir, data)
	if err != nil {
		logger.Error().Err(err).Msg("transform failed")
		return "", fmt.Errorf("%s %s: %w", dir, input, err)
	}

	if p.verify {
		if err := p.verifyRoundTrip(dir, data, out); err != nil {
			logger.Error().Err(err).Msg("verification failed")
			return "", fmt.Errorf("%s %s: %w", dir, input, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if output == "" {
		output, err = p.createUnique(input, dir, out)
	} else {
		logger.Debug().Str("output", output).Msg("replacing output file")
		err = p.replaceFile(output, out)
	}
	if err != nil {
		logger.Error().Err(err).Str("output", output).Msg("failed to write output file")
		return "", err
	}

	logger.Info().
		Str("output", output).
		Int("input_size", len(data)).
		Int("output_size", len(out)).
		Float64("ratio", float64(len(out))/float64(len(data))).
		Uint64("checksum", hash.Checksum(out)).
		Msg("file processed")

	return output, nil
}

func (p *Processor) transform(dir format.Direction, data []byte) ([]byte, error) {
	if dir == format.DirectionDecompress {
		opts := append([]encoding.RLEOption{encoding.WithSizeHint(len(data) / 2)}, p.rleOpts...)
		return encoding.Decode(data, opts...)
	}

	hint := len(data)
	if hint <= math.MaxInt/p.hintFactor {
		hint *= p.hintFactor
	}
	opts := append([]encoding.RLEOption{encoding.WithSizeHint(hint)}, p.rleOpts...)

	return encoding.Encode(data, opts...)
}

// verifyRoundTrip applies the reverse transform to out and compares it with in.
func (p *Processor) verifyRoundTrip(dir format.Direction, in, out []byte) error {
	reverse := format.DirectionDecompress
	if dir == format.DirectionDecompress {
		reverse = format.DirectionCompress
	}

	back, err := p.transform(reverse, out)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrRoundTripMismatch, err)
	}
	if !bytes.Equal(in, back) {
		return fmt.Errorf("%w: checksum %x, got %x", errs.ErrRoundTripMismatch, hash.Checksum(in), hash.Checksum(back))
	}

	return nil
}

// readFile reads the whole file into buf, reserving the reported size up front.
func (p *Processor) readFile(path string, buf *pool.ByteBuffer) error {
	f, err := p.fs.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	// one spare byte lets ReadFrom see EOF without growing again
	if size := info.Size(); size > 0 && size < int64(pool.HardMaxSize) {
		if err := buf.Reserve(int(size) + 1); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	}

	if _, err := buf.ReadFrom(f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

// createUnique writes data to a new file named after input. The file is
// created with O_EXCL, so a path taken between the lookup and the create is
// skipped instead of overwritten.
func (p *Processor) createUnique(input string, dir format.Direction, data []byte) (string, error) {
	for i := 0; i < maxCreateAttempts; i++ {
		output, err := UniqueOutputPath(p.fs, input, dir.OutputExt())
		if err != nil {
			return "", err
		}

		f, err := p.fs.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_EXCL, outputFileMode)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %s: %w", output, err)
		}

		return output, p.writeAndClose(f, output, data)
	}

	return "", fmt.Errorf("create output for %s: no free name after %d attempts", input, maxCreateAttempts)
}

// replaceFile writes data to a temporary file next to path and renames it
// into place, so an existing file at path survives a failed write.
func (p *Processor) replaceFile(path string, data []byte) error {
	tmp, err := afero.TempFile(p.fs, filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if err := p.writeAndClose(tmp, tmpName, data); err != nil {
		return err
	}
	if err := p.fs.Chmod(tmpName, outputFileMode); err != nil {
		_ = p.fs.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := p.fs.Rename(tmpName, path); err != nil {
		_ = p.fs.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}

	return nil
}

// writeAndClose writes data to f and removes path if any step fails, so a
// failed call leaves no partial output behind.
func (p *Processor) writeAndClose(f afero.File, path string, data []byte) error {
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = p.fs.Remove(path)

		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = p.fs.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}
