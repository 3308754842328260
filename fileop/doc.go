// Package fileop runs the run-length transforms on whole files.
//
// # Extension Contract
//
// Compression accepts only inputs ending in ".txt" and writes "<base>.rle";
// decompression accepts only ".rle" and writes "<base>.txt". The match is case
// sensitive and looks at the final extension only, so "a.b.txt" compresses to
// "a.b.rle".
//
// # Output Naming
//
// An existing file is never overwritten by CompressFile or DecompressFile.
// When "<base>.<ext>" exists, "<base>_1.<ext>", "<base>_2.<ext>" and so on are
// tried in order. The chosen file is created with O_EXCL; a name taken in the
// meantime moves the search on to the next suffix.
//
// CompressTo and DecompressTo write a temporary file next to the given path
// and rename it into place.
//
// # Failure Handling
//
// The whole input is read and transformed in memory before the output file is
// created. If writing fails, the partial output file is removed and a file
// that already existed at the target path is left untouched.
//
// All file access goes through an afero.Fs, so tests run against
// afero.NewMemMapFs and production code uses afero.NewOsFs.
package fileop
