// Package strtable encodes and decodes RT_STRING resource blocks.
//
// A block holds 16 strings, each stored as a little-endian uint16 count of
// UTF-16 code units followed by that many units. String n lives in block
// n/16+1 at index n%16.
package strtable

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/enovales/winres/errors"
)

// BlockSize is the number of strings per block.
const BlockSize = 16

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// BlockID returns the resource name number and slot holding string id.
func BlockID(id uint16) (block uint16, index int) {
	return id/BlockSize + 1, int(id % BlockSize)
}

// StringID is the inverse of BlockID.
func StringID(block uint16, index int) uint16 {
	return (block-1)*BlockSize + uint16(index)
}

// Decode splits a block into its 16 strings. Trailing padding after the
// last entry is ignored.
func Decode(data []byte) ([]string, error) {
	dec := utf16le.NewDecoder()
	out := make([]string, 0, BlockSize)

	off := 0
	for i := range BlockSize {
		if off+2 > len(data) {
			return nil, errors.InvalidData(errors.PhaseParse, truncated(i, off))
		}
		units := int(binary.LittleEndian.Uint16(data[off:]))
		off += 2

		end := off + units*2
		if end > len(data) {
			return nil, errors.InvalidData(errors.PhaseParse, truncated(i, off))
		}
		s, err := dec.Bytes(data[off:end])
		if err != nil {
			return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidData, err, "decode UTF-16")
		}
		out = append(out, string(s))
		off = end
	}
	return out, nil
}

// Encode builds a block from up to 16 strings; missing entries are empty.
func Encode(strs []string) ([]byte, error) {
	if len(strs) > BlockSize {
		return nil, errors.InvalidInput(errors.PhaseParse, "string table block holds at most 16 strings")
	}

	enc := utf16le.NewEncoder()
	var out []byte
	for i := range BlockSize {
		var s string
		if i < len(strs) {
			s = strs[i]
		}
		b, err := enc.Bytes([]byte(s))
		if err != nil {
			return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidData, err, "encode UTF-16")
		}
		if len(b)/2 > 0xFFFF {
			return nil, errors.InvalidInput(errors.PhaseParse, "string longer than 65535 UTF-16 units")
		}
		out = binary.LittleEndian.AppendUint16(out, uint16(len(b)/2))
		out = append(out, b...)
	}
	return out, nil
}

// Strings returns the non-empty strings of a decoded block keyed by string id.
func Strings(block uint16, data []byte) (map[uint16]string, error) {
	strs, err := Decode(data)
	if err != nil {
		return nil, err
	}
	out := make(map[uint16]string)
	for i, s := range strs {
		if s != "" {
			out[StringID(block, i)] = s
		}
	}
	return out, nil
}

func truncated(index, off int) string {
	return fmt.Sprintf("block truncated at entry %d, offset %d", index, off)
}
