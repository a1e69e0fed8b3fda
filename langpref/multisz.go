package langpref

import (
	stderrors "errors"
	"unicode/utf16"

	"github.com/enovales/winres/errors"
)

// FillFunc is one call of a two-phase list query. With a nil buf it stores
// the required capacity, in UTF-16 units, into size. With a buffer it fills
// buf and stores the units written.
type FillFunc func(buf []uint16, size *uint32) error

// maxQueryAttempts bounds retries when the list grows between the two phases.
const maxQueryAttempts = 4

// Query runs the capacity-then-fill protocol and decodes the result.
func Query(fill FillFunc) ([]string, error) {
	for range maxQueryAttempts {
		var size uint32
		if err := fill(nil, &size); err != nil {
			return nil, err
		}
		if size == 0 {
			return nil, nil
		}

		buf := make([]uint16, size)
		written := size
		if err := fill(buf, &written); err != nil {
			if errors.Is(err, ErrBufferTooSmall) {
				continue
			}
			return nil, err
		}
		if written > size {
			continue
		}
		return DecodeMultiString(buf[:written]), nil
	}
	return nil, errors.Wrap(errors.PhaseLanguage, errors.KindInvalidData, ErrBufferTooSmall, "preference list kept changing during query")
}

// ErrBufferTooSmall is returned by a FillFunc whose buffer no longer fits.
var ErrBufferTooSmall = stderrors.New("langpref: buffer too small")

// EncodeMultiString encodes names as consecutive NUL-terminated UTF-16
// strings followed by a final NUL.
func EncodeMultiString(names []string) []uint16 {
	var out []uint16
	for _, name := range names {
		out = append(out, utf16.Encode([]rune(name))...)
		out = append(out, 0)
	}
	return append(out, 0)
}

// DecodeMultiString splits a double-NUL-terminated UTF-16 list.
func DecodeMultiString(buf []uint16) []string {
	var (
		out   []string
		start int
	)
	for i, c := range buf {
		if c != 0 {
			continue
		}
		if i == start {
			break
		}
		out = append(out, string(utf16.Decode(buf[start:i])))
		start = i + 1
	}
	return out
}
