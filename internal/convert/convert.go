// Package convert rewrites text line endings between Unix and DOS form.
// Conversions write to a temporary file and rename into place so a failure
// never leaves a half-converted file behind.
package convert

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// UnixToDOS converts LF line endings in src to CRLF, writing to dst.
// Existing CRLF endings are preserved, not doubled.
func UnixToDOS(src, dst string) error {
	return rewrite(src, dst, func(line []byte) []byte {
		return append(bytes.TrimSuffix(line, []byte("\r")), '\r', '\n')
	})
}

// DOSToUnix converts CRLF line endings in src to LF, writing to dst.
func DOSToUnix(src, dst string) error {
	return rewrite(src, dst, func(line []byte) []byte {
		return append(bytes.TrimSuffix(line, []byte("\r")), '\n')
	})
}

// UnixToDOSInPlace converts a file in place via a temporary sibling.
func UnixToDOSInPlace(path string) error {
	return inPlace(path, UnixToDOS)
}

// DOSToUnixInPlace converts a file in place via a temporary sibling.
func DOSToUnixInPlace(path string) error {
	return inPlace(path, DOSToUnix)
}

func inPlace(path string, conv func(src, dst string) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".conv-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for conversion: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := conv(path, tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s with converted copy: %w", path, err)
	}
	return nil
}

func rewrite(src, dst string, line func([]byte) []byte) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s for conversion: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s for conversion: %w", dst, err)
	}

	w := bufio.NewWriter(out)
	r := bufio.NewReader(in)
	for {
		chunk, err := r.ReadBytes('\n')
		if len(chunk) > 0 {
			if bytes.HasSuffix(chunk, []byte("\n")) {
				chunk = line(bytes.TrimSuffix(chunk, []byte("\n")))
			}
			if _, werr := w.Write(chunk); werr != nil {
				out.Close()
				return fmt.Errorf("failed to write converted data to %s: %w", dst, werr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			out.Close()
			return fmt.Errorf("failed to read %s during conversion: %w", src, err)
		}
	}

	if err := w.Flush(); err != nil {
		out.Close()
		return fmt.Errorf("failed to flush converted data to %s: %w", dst, err)
	}
	return out.Close()
}
