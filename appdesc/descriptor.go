package appdesc

import (
	"blinkcode-go/errcode"
	"blinkcode-go/x/mathx"
)

// MagicWord identifies the record format.
const MagicWord uint32 = 0xABCD5432

// SectionName is the output section external tools look the record up by.
const SectionName = ".rodata_desc"

// Size is the encoded size of a Descriptor in bytes.
const Size = 256

// Field offsets within the encoded record.
const (
	OffMagicWord        = 0
	OffSecureVersion    = 4
	OffReservedA        = 8
	OffVersion          = 16
	OffProjectName      = 48
	OffBuildTime        = 80
	OffBuildDate        = 96
	OffToolchainVersion = 112
	OffContentHash      = 144
	OffReservedB        = 176
)

// Descriptor is the in-memory form of the record. Field order, widths and
// alignment match the encoded layout exactly, so a Descriptor value placed
// in a section is byte-identical to its MarshalBinary output on little-endian
// targets.
type Descriptor struct {
	MagicWord        uint32
	SecureVersion    uint32
	ReservedA        [2]uint32
	Version          [32]byte
	ProjectName      [32]byte
	BuildTime        [16]byte
	BuildDate        [16]byte
	ToolchainVersion [32]byte
	ContentHash      [32]byte
	ReservedB        [20]uint32
}

// Fields are the inputs to New. Text longer than its destination is cut.
type Fields struct {
	SecureVersion    uint32
	Version          string
	ProjectName      string
	BuildTime        string
	BuildDate        string
	ToolchainVersion string
	ContentHash      [32]byte
}

// New assembles a Descriptor. It cannot fail.
func New(f Fields) Descriptor {
	return Descriptor{
		MagicWord:        MagicWord,
		SecureVersion:    f.SecureVersion,
		Version:          Text32(f.Version),
		ProjectName:      Text32(f.ProjectName),
		BuildTime:        Text16(f.BuildTime),
		BuildDate:        Text16(f.BuildDate),
		ToolchainVersion: Text32(f.ToolchainVersion),
		ContentHash:      f.ContentHash,
	}
}

// Truncate returns exactly n bytes: the first min(len(src), n) bytes of src
// followed by zeros. A negative n yields an empty slice.
func Truncate(src string, n int) []byte {
	if n < 0 {
		n = 0
	}
	out := make([]byte, n)
	k := mathx.Min(len(src), n)
	for i := 0; i < k; i++ {
		out[i] = src[i]
	}
	return out
}

// Text16 is Truncate(s, 16) as an array, for the build time and date
// fields. No heap is involved.
func Text16(s string) (b [16]byte) {
	copy(b[:], s)
	return b
}

// Text32 is Truncate(s, 32) as an array, for the version, project and
// toolchain fields.
func Text32(s string) (b [32]byte) {
	copy(b[:], s)
	return b
}

// Valid reports whether d carries the sentinel.
func (d *Descriptor) Valid() bool { return d.MagicWord == MagicWord }

func (d *Descriptor) VersionString() string          { return cstr(d.Version[:]) }
func (d *Descriptor) ProjectNameString() string      { return cstr(d.ProjectName[:]) }
func (d *Descriptor) BuildTimeString() string        { return cstr(d.BuildTime[:]) }
func (d *Descriptor) BuildDateString() string        { return cstr(d.BuildDate[:]) }
func (d *Descriptor) ToolchainVersionString() string { return cstr(d.ToolchainVersion[:]) }

// HashSet reports whether ContentHash has been stamped.
func (d *Descriptor) HashSet() bool { return d.ContentHash != [32]byte{} }

func cstr(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func checkMagic(op string, m uint32) error {
	if m != MagicWord {
		return &errcode.E{C: errcode.BadMagic, Op: op}
	}
	return nil
}
