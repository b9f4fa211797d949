package usecase_test

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/salvage/pkg/usecase"
)

// buildCDH builds a central directory header with the given variable fields
func buildCDH(name string, extra, comment []byte) []byte {
	b := make([]byte, 46)
	binary.LittleEndian.PutUint32(b[0:], 0x02014b50)
	binary.LittleEndian.PutUint16(b[28:], uint16(len(name)))
	binary.LittleEndian.PutUint16(b[30:], uint16(len(extra)))
	binary.LittleEndian.PutUint16(b[32:], uint16(len(comment)))
	b = append(b, name...)
	b = append(b, extra...)
	b = append(b, comment...)
	return b
}

// buildEOCD builds an end of central directory record
func buildEOCD(count int, cdOffset int, comment []byte) []byte {
	b := make([]byte, 22)
	binary.LittleEndian.PutUint32(b[0:], 0x06054b50)
	binary.LittleEndian.PutUint16(b[10:], uint16(count))
	binary.LittleEndian.PutUint32(b[16:], uint32(cdOffset))
	binary.LittleEndian.PutUint16(b[20:], uint16(len(comment)))
	return append(b, comment...)
}

func concat(parts ...[]byte) []byte {
	var buf bytes.Buffer
	for _, p := range parts {
		buf.Write(p)
	}
	return buf.Bytes()
}

func TestScanEntryNames(t *testing.T) {
	t.Run("empty buffer", func(t *testing.T) {
		gt.Array(t, usecase.ScanEntryNames(nil)).Length(0)
	})

	t.Run("no EOCD signature", func(t *testing.T) {
		buf := bytes.Repeat([]byte{0xAA}, 1024)
		gt.Array(t, usecase.ScanEntryNames(buf)).Length(0)
	})

	t.Run("EOCD with zero entries", func(t *testing.T) {
		buf := buildEOCD(0, 0, nil)
		gt.Array(t, usecase.ScanEntryNames(buf)).Length(0)
	})

	t.Run("single entry", func(t *testing.T) {
		cdh := buildCDH("test.txt", nil, nil)
		buf := concat(cdh, buildEOCD(1, 0, nil))
		gt.Array(t, usecase.ScanEntryNames(buf)).Equal([]string{"test.txt"})
	})

	t.Run("multiple entries with extra and comment fields", func(t *testing.T) {
		a := buildCDH("a.txt", []byte{1, 2, 3, 4}, nil)
		b := buildCDH("dir/b.bin", nil, []byte("per-entry comment"))
		c := buildCDH("c", []byte{9}, []byte("x"))
		buf := concat(a, b, c, buildEOCD(3, 0, nil))

		gt.Array(t, usecase.ScanEntryNames(buf)).
			Equal([]string{"a.txt", "dir/b.bin", "c"})
	})

	t.Run("declared count exceeds actual entries", func(t *testing.T) {
		cdh := buildCDH("a.txt", nil, nil)
		buf := concat(cdh, buildEOCD(5, 0, nil))

		// The walk hits the EOCD where the second header should be and
		// stops on the signature mismatch
		gt.Array(t, usecase.ScanEntryNames(buf)).Equal([]string{"a.txt"})
	})

	t.Run("directory offset out of bounds", func(t *testing.T) {
		buf := buildEOCD(1, 10000, nil)
		gt.Array(t, usecase.ScanEntryNames(buf)).Length(0)
	})

	t.Run("name extends past buffer end", func(t *testing.T) {
		cdh := buildCDH("abcdef", nil, nil)
		// Lie about the name length after building
		binary.LittleEndian.PutUint16(cdh[28:], 60000)
		buf := concat(cdh, buildEOCD(1, 0, nil))
		gt.Array(t, usecase.ScanEntryNames(buf)).Length(0)
	})

	t.Run("EOCD closest to end wins", func(t *testing.T) {
		// An earlier record declares one entry; a later record declares
		// none. The later one is authoritative.
		cdh := buildCDH("x.txt", nil, nil)
		buf := concat(cdh, buildEOCD(1, 0, nil), buildEOCD(0, 0, nil))
		gt.Array(t, usecase.ScanEntryNames(buf)).Length(0)
	})

	t.Run("EOCD outside search window is ignored", func(t *testing.T) {
		buf := concat(buildEOCD(0, 0, nil), bytes.Repeat([]byte{0}, 65557))
		gt.Array(t, usecase.ScanEntryNames(buf)).Length(0)
	})

	t.Run("invalid UTF-8 name does not abort the walk", func(t *testing.T) {
		bad := buildCDH(string([]byte{0xFF, 0xFE, 'a'}), nil, nil)
		good := buildCDH("ok.txt", nil, nil)
		buf := concat(bad, good, buildEOCD(2, 0, nil))

		names := usecase.ScanEntryNames(buf)
		gt.Number(t, len(names)).Equal(2)
		gt.Value(t, names[1]).Equal("ok.txt")
	})
}

// TestScanEntryNamesRealArchive checks the scanner against output of the
// standard library's ZIP writer
func TestScanEntryNamesRealArchive(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := []string{"README.md", "src/main.go", "assets/ロゴ.png"}
	for _, name := range files {
		w := gt.R1(zw.Create(name)).NoError(t)
		gt.R1(w.Write([]byte("content of " + name))).NoError(t)
	}
	gt.NoError(t, zw.Close())

	gt.Array(t, usecase.ScanEntryNames(buf.Bytes())).Equal(files)
}

// TestScanEntryNamesArchiveComment makes sure a trailing archive comment
// does not hide the EOCD from the backward scan
func TestScanEntryNamesArchiveComment(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	gt.R1(zw.Create("only.txt")).NoError(t)
	gt.NoError(t, zw.SetComment("this archive has a comment"))
	gt.NoError(t, zw.Close())

	gt.Array(t, usecase.ScanEntryNames(buf.Bytes())).Equal([]string{"only.txt"})
}
