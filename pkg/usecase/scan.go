package usecase

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"
)

// ZIP central directory layout. See APPNOTE.TXT section 4.3; all fixed-width
// fields are little-endian.
const (
	eocdSignature = 0x06054b50
	cdhSignature  = 0x02014b50

	// Minimum EOCD record size; the trailing comment may add up to 65535
	// bytes, which bounds the backward search window.
	eocdMinSize    = 22
	maxCommentSize = 65535

	// Fixed prefix of a central directory header, before the variable
	// name/extra/comment fields.
	cdhFixedSize = 46
)

// ScanEntryNames reads the entry names out of a ZIP-style buffer's central
// directory without touching any compressed data. It never fails: any
// structural anomaly in the buffer (missing EOCD, truncated directory, bad
// header signature) degrades to the entries readable up to that point,
// possibly none. The buffer is only borrowed for reading.
//
// Names are returned in central directory order, which is the archive's
// insertion order.
func ScanEntryNames(buf []byte) []string {
	names := []string{}

	eocd := findEOCD(buf)
	if eocd < 0 {
		return names
	}

	count := int(binary.LittleEndian.Uint16(buf[eocd+10 : eocd+12]))
	cursor := int(binary.LittleEndian.Uint32(buf[eocd+16 : eocd+20]))

	for i := 0; i < count; i++ {
		if cursor+cdhFixedSize > len(buf) {
			break
		}
		if binary.LittleEndian.Uint32(buf[cursor:cursor+4]) != cdhSignature {
			break
		}

		nameLen := int(binary.LittleEndian.Uint16(buf[cursor+28 : cursor+30]))
		extraLen := int(binary.LittleEndian.Uint16(buf[cursor+30 : cursor+32]))
		commentLen := int(binary.LittleEndian.Uint16(buf[cursor+32 : cursor+34]))

		if cursor+cdhFixedSize+nameLen > len(buf) {
			break
		}

		name := string(buf[cursor+cdhFixedSize : cursor+cdhFixedSize+nameLen])
		if !utf8.ValidString(name) {
			// A malformed name must not abort the walk; substitute
			// U+FFFD and keep the offset arithmetic intact.
			name = strings.ToValidUTF8(name, "�")
		}
		names = append(names, name)

		cursor += cdhFixedSize + nameLen + extraLen + commentLen
	}

	return names
}

// findEOCD locates the end of central directory record by scanning backward
// from the end of the buffer. When the trailer region contains more than one
// signature match (a comment can embed the signature bytes), the match
// closest to the end is authoritative. Returns -1 when no record is found.
func findEOCD(buf []byte) int {
	if len(buf) < eocdMinSize {
		return -1
	}

	window := maxCommentSize + eocdMinSize
	if window > len(buf) {
		window = len(buf)
	}
	lo := len(buf) - window

	for off := len(buf) - eocdMinSize; off >= lo; off-- {
		if binary.LittleEndian.Uint32(buf[off:off+4]) == eocdSignature {
			return off
		}
	}
	return -1
}
