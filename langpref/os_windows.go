//go:build windows

package langpref

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/enovales/winres/errors"
)

const (
	muiLanguageName    = 0x8
	muiThreadLanguages = 0x40
)

var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetThreadPreferredUILanguages = modkernel32.NewProc("GetThreadPreferredUILanguages")
	procSetThreadPreferredUILanguages = modkernel32.NewProc("SetThreadPreferredUILanguages")
)

type osThread struct{}

// OSThread returns an Accessor for the calling OS thread's preferred UI
// languages. The caller must hold runtime.LockOSThread for the duration.
func OSThread() Accessor {
	return osThread{}
}

func (osThread) Get() ([]string, error) {
	return Query(func(buf []uint16, size *uint32) error {
		var (
			num uint32
			ptr *uint16
		)
		if len(buf) > 0 {
			ptr = &buf[0]
		}
		r, _, err := procGetThreadPreferredUILanguages.Call(
			uintptr(muiLanguageName|muiThreadLanguages),
			uintptr(unsafe.Pointer(&num)),
			uintptr(unsafe.Pointer(ptr)),
			uintptr(unsafe.Pointer(size)),
		)
		if r == 0 {
			if err == windows.ERROR_INSUFFICIENT_BUFFER {
				return ErrBufferTooSmall
			}
			return errors.Wrap(errors.PhaseLanguage, errors.KindUnsupported, err, "GetThreadPreferredUILanguages")
		}
		return nil
	})
}

func (osThread) Set(names []string) error {
	if err := Validate(names); err != nil {
		return err
	}

	var (
		num uint32
		ptr *uint16
	)
	if len(names) > 0 {
		buf := EncodeMultiString(names)
		ptr = &buf[0]
	}
	r, _, err := procSetThreadPreferredUILanguages.Call(
		uintptr(muiLanguageName),
		uintptr(unsafe.Pointer(ptr)),
		uintptr(unsafe.Pointer(&num)),
	)
	if r == 0 {
		if err == windows.ERROR_INVALID_PARAMETER {
			return RejectedList(names, err)
		}
		return errors.Wrap(errors.PhaseLanguage, errors.KindUnsupported, err, "SetThreadPreferredUILanguages")
	}
	return nil
}
