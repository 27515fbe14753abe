package appdesc

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"blinkcode-go/errcode"
)

// AppendBinary appends the 256-byte little-endian encoding of d to b.
func (d Descriptor) AppendBinary(b []byte) ([]byte, error) {
	return binary.Append(b, binary.LittleEndian, d)
}

// MarshalBinary returns the 256-byte little-endian encoding of d.
func (d Descriptor) MarshalBinary() ([]byte, error) {
	return d.AppendBinary(make([]byte, 0, Size))
}

// UnmarshalBinary decodes the first Size bytes of b into d.
func (d *Descriptor) UnmarshalBinary(b []byte) error {
	if len(b) < Size {
		return &errcode.E{C: errcode.ShortBuffer, Op: "decode"}
	}
	if err := checkMagic("decode", binary.LittleEndian.Uint32(b[OffMagicWord:])); err != nil {
		return err
	}
	var out Descriptor
	if _, err := binary.Decode(b[:Size], binary.LittleEndian, &out); err != nil {
		return errcode.Wrap(errcode.ShortBuffer, "decode", err)
	}
	*d = out
	return nil
}

// Decode is UnmarshalBinary returning a value.
func Decode(b []byte) (Descriptor, error) {
	var d Descriptor
	err := d.UnmarshalBinary(b)
	return d, err
}

// Find returns the offset of the first descriptor in a raw image. Candidates
// are 4-byte aligned, must fit entirely within the image and must look like
// a record New could have produced: reserved words zero and every text field
// zero padded after its first NUL. A stray copy of the magic word (a literal
// pool entry, say) fails that check and the scan moves on.
func Find(image []byte) (int, error) {
	var magic [4]byte
	binary.LittleEndian.PutUint32(magic[:], MagicWord)
	for off := 0; off+Size <= len(image); {
		i := bytes.Index(image[off:len(image)-Size+4], magic[:])
		if i < 0 {
			break
		}
		at := off + i
		if at%4 == 0 && plausible(image[at:at+Size]) {
			return at, nil
		}
		off = at + 1
	}
	return -1, &errcode.E{C: errcode.NotFound, Op: "find"}
}

var textFields = [...]struct{ off, n int }{
	{OffVersion, 32},
	{OffProjectName, 32},
	{OffBuildTime, 16},
	{OffBuildDate, 16},
	{OffToolchainVersion, 32},
}

// plausible checks the parts of an encoded record that New fixes.
func plausible(b []byte) bool {
	if !zero(b[OffReservedA:OffVersion]) || !zero(b[OffReservedB:Size]) {
		return false
	}
	for _, f := range textFields {
		t := b[f.off : f.off+f.n]
		if i := bytes.IndexByte(t, 0); i >= 0 && !zero(t[i:]) {
			return false
		}
	}
	return true
}

func zero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// Hash computes the content hash of an image whose descriptor sits at off:
// SHA-256 over the whole image with the ContentHash field read as zeros.
func Hash(image []byte, off int) ([32]byte, error) {
	if off < 0 || off+Size > len(image) {
		return [32]byte{}, &errcode.E{C: errcode.ShortBuffer, Op: "hash"}
	}
	h := sha256.New()
	var zero [32]byte
	h.Write(image[:off+OffContentHash])
	h.Write(zero[:])
	h.Write(image[off+OffContentHash+len(zero):])
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// Stamp locates the descriptor in image and writes the content hash into it
// in place. Stamping an already stamped image yields the same hash.
func Stamp(image []byte) ([32]byte, error) {
	off, err := Find(image)
	if err != nil {
		return [32]byte{}, err
	}
	return StampAt(image, off)
}

// StampAt is Stamp for a descriptor whose offset is already known, such as
// the file offset of an ELF section.
func StampAt(image []byte, off int) ([32]byte, error) {
	if _, err := at("stamp", image, off); err != nil {
		return [32]byte{}, err
	}
	sum, err := Hash(image, off)
	if err != nil {
		return sum, err
	}
	copy(image[off+OffContentHash:], sum[:])
	return sum, nil
}

// Verify reports whether the stamped hash matches the image contents. An
// unstamped descriptor never verifies.
func Verify(image []byte) (bool, error) {
	off, err := Find(image)
	if err != nil {
		return false, err
	}
	return VerifyAt(image, off)
}

// VerifyAt is Verify for a descriptor at a known offset.
func VerifyAt(image []byte, off int) (bool, error) {
	d, err := at("verify", image, off)
	if err != nil {
		return false, err
	}
	if !d.HashSet() {
		return false, nil
	}
	sum, err := Hash(image, off)
	if err != nil {
		return false, err
	}
	return sum == d.ContentHash, nil
}

func at(op string, image []byte, off int) (Descriptor, error) {
	if off < 0 || off+Size > len(image) {
		return Descriptor{}, &errcode.E{C: errcode.ShortBuffer, Op: op}
	}
	return Decode(image[off:])
}
