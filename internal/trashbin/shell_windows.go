//go:build windows

package trashbin

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"
	"unicode/utf16"
	"unsafe"
)

// ─── Shell32 Syscalls ────────────────────────────────────────────────────────

var (
	modShell32          = syscall.NewLazyDLL("shell32.dll")
	procSHFileOperation = modShell32.NewProc("SHFileOperationW")
	procEmptyRecycleBin = modShell32.NewProc("SHEmptyRecycleBinW")
	procQueryRecycleBin = modShell32.NewProc("SHQueryRecycleBinW")
)

const (
	foDelete          = 0x0003
	fofAllowUndo      = 0x0040
	fofNoConfirmation = 0x0010
	fofSilent         = 0x0004
	fofNoErrorUI      = 0x0400

	sherbNoConfirmation = 0x00000001
	sherbNoProgressUI   = 0x00000002
	sherbNoSound        = 0x00000004
)

// shFileOpStruct mirrors SHFILEOPSTRUCTW.
type shFileOpStruct struct {
	hwnd                  uintptr
	wFunc                 uint32
	pFrom                 *uint16
	pTo                   *uint16
	fFlags                uint16
	fAnyOperationsAborted int32
	hNameMappings         uintptr
	lpszProgressTitle     *uint16
}

// shQueryRBInfo mirrors SHQUERYRBINFO. Go's natural alignment adds
// padding after cbSize on AMD64, matching the C layout.
type shQueryRBInfo struct {
	cbSize      uint32
	i64Size     int64
	i64NumItems int64
}

// ShellBin is the Windows Recycle Bin. Put goes through
// SHFileOperationW with FOF_ALLOWUNDO; enumeration reads the per-drive
// $Recycle.Bin $I metadata records directly, which is the only way to
// recover original paths without COM.
type ShellBin struct{}

// NewShellBin returns the system Recycle Bin capability.
func NewShellBin() *ShellBin { return &ShellBin{} }

// Put moves src to the Recycle Bin.
func (b *ShellBin) Put(src string) error {
	abs, err := filepath.Abs(src)
	if err != nil {
		return err
	}

	// pFrom is double-null-terminated.
	from, err := syscall.UTF16FromString(abs)
	if err != nil {
		return err
	}
	from = append(from, 0)

	op := shFileOpStruct{
		wFunc:  foDelete,
		pFrom:  &from[0],
		fFlags: fofAllowUndo | fofNoConfirmation | fofSilent | fofNoErrorUI,
	}

	ret, _, _ := procSHFileOperation.Call(uintptr(unsafe.Pointer(&op)))
	if ret != 0 {
		return fmt.Errorf("SHFileOperationW failed for %s: code 0x%x", abs, ret)
	}
	if op.fAnyOperationsAborted != 0 {
		return fmt.Errorf("recycle of %s was aborted", abs)
	}
	return nil
}

// List enumerates $Recycle.Bin on every mounted drive, decoding each
// $I metadata record into an Entry whose ID is the $I file path.
func (b *ShellBin) List() ([]Entry, error) {
	var entries []Entry
	var scanned int

	for c := 'A'; c <= 'Z'; c++ {
		root := string(c) + `:\$Recycle.Bin`
		sids, err := os.ReadDir(root)
		if err != nil {
			continue // drive absent or bin not present
		}
		scanned++

		for _, sid := range sids {
			if !sid.IsDir() {
				continue
			}
			sidDir := filepath.Join(root, sid.Name())
			files, err := os.ReadDir(sidDir)
			if err != nil {
				continue // other users' bins are not readable
			}
			for _, f := range files {
				if f.IsDir() || !strings.HasPrefix(f.Name(), "$I") {
					continue
				}
				metaPath := filepath.Join(sidDir, f.Name())
				e, err := decodeMetaFile(metaPath)
				if err != nil {
					continue
				}
				entries = append(entries, e)
			}
		}
	}

	if scanned == 0 {
		return nil, fmt.Errorf("no $Recycle.Bin directory could be read on any drive")
	}
	return entries, nil
}

// decodeMetaFile parses one $I record:
//
//	offset 0: int64 version (1 = Vista..8.1, 2 = Win10+)
//	offset 8: int64 original size
//	offset 16: int64 deletion time (FILETIME)
//	version 1: 260 UTF-16 code units of fixed-width path
//	version 2: uint32 path length in code units, then the path
func decodeMetaFile(metaPath string) (Entry, error) {
	raw, err := os.ReadFile(metaPath)
	if err != nil {
		return Entry{}, err
	}
	if len(raw) < 28 {
		return Entry{}, fmt.Errorf("short $I record: %s", metaPath)
	}

	version := binary.LittleEndian.Uint64(raw[0:8])
	filetime := binary.LittleEndian.Uint64(raw[16:24])

	var pathUnits []byte
	switch version {
	case 1:
		if len(raw) < 24+520 {
			return Entry{}, fmt.Errorf("truncated v1 $I record: %s", metaPath)
		}
		pathUnits = raw[24 : 24+520]
	case 2:
		n := binary.LittleEndian.Uint32(raw[24:28])
		end := 28 + int(n)*2
		if n == 0 || end > len(raw) {
			return Entry{}, fmt.Errorf("truncated v2 $I record: %s", metaPath)
		}
		pathUnits = raw[28:end]
	default:
		return Entry{}, fmt.Errorf("unknown $I version %d: %s", version, metaPath)
	}

	original := decodeUTF16(pathUnits)
	if original == "" {
		return Entry{}, fmt.Errorf("empty path in $I record: %s", metaPath)
	}

	payload := payloadPath(metaPath)
	info, err := os.Lstat(payload)
	isDir := err == nil && info.IsDir()

	return Entry{
		OriginalParent: filepath.Dir(original),
		Name:           filepath.Base(original),
		IsDir:          isDir,
		DeletedAt:      filetimeToTime(filetime),
		ID:             metaPath,
	}, nil
}

// Restore moves the $R payload back to the entry's original location
// and removes the $I record.
func (b *ShellBin) Restore(e Entry) error {
	payload := payloadPath(e.ID)
	if _, err := os.Lstat(payload); err != nil {
		if os.IsNotExist(err) {
			return ErrNotInBin
		}
		return err
	}
	dest := e.OriginalPath()
	if err := os.Rename(payload, dest); err != nil {
		return fmt.Errorf("restore %s: %w", dest, err)
	}
	_ = os.Remove(e.ID)
	return nil
}

// TotalSize queries the Recycle Bin size across all drives.
func (b *ShellBin) TotalSize() (int64, error) {
	var info shQueryRBInfo
	info.cbSize = uint32(unsafe.Sizeof(info))

	ret, _, _ := procQueryRecycleBin.Call(
		0, // NULL = all drives
		uintptr(unsafe.Pointer(&info)),
	)
	if ret != 0 {
		return 0, fmt.Errorf("SHQueryRecycleBinW failed: HRESULT 0x%08x", uint32(ret))
	}
	return info.i64Size, nil
}

// ItemCount queries the number of items in the Recycle Bin.
func (b *ShellBin) ItemCount() (int64, error) {
	var info shQueryRBInfo
	info.cbSize = uint32(unsafe.Sizeof(info))

	ret, _, _ := procQueryRecycleBin.Call(0, uintptr(unsafe.Pointer(&info)))
	if ret != 0 {
		return 0, fmt.Errorf("SHQueryRecycleBinW failed: HRESULT 0x%08x", uint32(ret))
	}
	return info.i64NumItems, nil
}

// Empty empties the Recycle Bin on all drives.
func (b *ShellBin) Empty() error {
	flags := uintptr(sherbNoConfirmation | sherbNoProgressUI | sherbNoSound)
	ret, _, _ := procEmptyRecycleBin.Call(0, 0, flags)

	hr := uint32(ret)
	// S_OK = success, E_UNEXPECTED = bin already empty.
	if hr != 0 && hr != 0x8000FFFF {
		return fmt.Errorf("SHEmptyRecycleBinW failed: HRESULT 0x%08x", hr)
	}
	return nil
}

// payloadPath maps a $I metadata path to its $R payload sibling.
func payloadPath(metaPath string) string {
	dir, name := filepath.Split(metaPath)
	return dir + "$R" + strings.TrimPrefix(name, "$I")
}

func decodeUTF16(b []byte) string {
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		u := binary.LittleEndian.Uint16(b[i : i+2])
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units))
}

func filetimeToTime(ft uint64) time.Time {
	if ft == 0 {
		return time.Time{}
	}
	// FILETIME counts 100ns intervals since 1601-01-01.
	const epochDelta = 116444736000000000
	nsec := int64(ft-epochDelta) * 100
	return time.Unix(0, nsec)
}
