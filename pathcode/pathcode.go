package pathcode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/unknown321/hashing"
	"github.com/zhenjl/cityhash"
)

const (
	NamePathCode64 = "pathcode64"
	NameStrCode64  = "strcode64"

	// MetaFlag marks paths outside /Assets/ (and /Assets/tpptest).
	MetaFlag uint64 = 0x4000000000000

	pathSeed0    uint64 = 0x9ae16a3b2f90404f
	pathHashMask uint64 = 0x3FFFFFFFFFFFF
	assetsPrefix        = "/Assets/"
)

var ErrUnknownHasher = errors.New("unknown hasher")

// Hasher computes the 64-bit hash of a path string.
type Hasher interface {
	Sum64(text string) uint64
}

// HasherFunc adapts a plain function to the Hasher interface.
type HasherFunc func(text string) uint64

func (f HasherFunc) Sum64(text string) uint64 {
	return f(text)
}

var (
	PathCode64 Hasher = HasherFunc(pathCode64)
	StrCode64  Hasher = HasherFunc(strCode64)
)

// ByName returns the hasher registered under name.
func ByName(name string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NamePathCode64:
		return PathCode64, nil
	case NameStrCode64:
		return StrCode64, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
}

// Hash returns the formatted hash of text.
func Hash(h Hasher, text string) string {
	return Format(h.Sum64(text))
}

// Format renders a hash the way extraction tools name files: lowercase
// hexadecimal without zero padding.
func Format(hash uint64) string {
	return strconv.FormatUint(hash, 16)
}

// Parse reads name as an unsigned 64-bit hexadecimal value. Signs, 0x
// prefixes and digit separators are rejected; case is ignored.
func Parse(name string) (uint64, bool) {
	v, err := strconv.ParseUint(name, 16, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func pathCode64(text string) uint64 {
	if i := strings.IndexByte(text, '.'); i != -1 {
		text = text[:i]
	}

	meta := true
	if rest, ok := strings.CutPrefix(text, assetsPrefix); ok {
		text = rest
		meta = strings.HasPrefix(text, "tpptest")
	}
	text = strings.TrimLeft(text, "/")

	// seed1 is the last eight bytes of the path, read back to front
	var seed [8]byte
	for i, j := len(text)-1, 0; i >= 0 && j < len(seed); i, j = i-1, j+1 {
		seed[j] = text[i]
	}
	seed1 := binary.LittleEndian.Uint64(seed[:])

	b := []byte(text)
	hash := cityhash.CityHash64WithSeeds(b, uint32(len(b)), pathSeed0, seed1) & pathHashMask
	if meta {
		hash |= MetaFlag
	}
	return hash
}

func strCode64(text string) uint64 {
	return hashing.StrCode64([]byte(text))
}
