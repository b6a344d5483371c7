package typeinfo

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"jsxstream/internal/types"
)

// Version is the record format version. Bump it when the encoding or the
// meaning of stored types changes; older records then read as misses.
const Version uint16 = 1

// Hash is the SHA-256 of a source file's bytes.
type Hash [sha256.Size]byte

func HashBytes(content []byte) Hash {
	return sha256.Sum256(content)
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Record is the persisted result of inference for one file.
type Record struct {
	Version uint16
	Hash    Hash
	Exports types.Exports
}

// NewRecord stamps exports with the current version and the hash of content.
func NewRecord(content []byte, exports types.Exports) Record {
	return Record{Version: Version, Hash: HashBytes(content), Exports: exports}
}

// Valid reports whether r may stand in for inference of content.
func (r Record) Valid(content []byte) bool {
	return r.Matches(HashBytes(content))
}

func (r Record) Matches(hash Hash) bool {
	return r.Version == Version && r.Hash == hash
}

var ErrCorrupt = errors.New("typeinfo: corrupt record")

// Encode writes r as a msgpack stream.
func Encode(w io.Writer, r Record) error {
	count, err := safecast.Conv[uint32](len(r.Exports))
	if err != nil {
		return fmt.Errorf("typeinfo: too many exports: %w", err)
	}
	enc := msgpack.NewEncoder(w)
	if err := enc.EncodeUint16(r.Version); err != nil {
		return err
	}
	if err := enc.EncodeBytes(r.Hash[:]); err != nil {
		return err
	}
	if err := enc.EncodeUint32(count); err != nil {
		return err
	}
	for _, name := range r.Exports.Names() {
		t := r.Exports[name]
		if !t.Valid() {
			return fmt.Errorf("typeinfo: export %q has invalid type %d", name, uint8(t))
		}
		if err := enc.EncodeString(name); err != nil {
			return err
		}
		if err := enc.EncodeUint8(uint8(t)); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads a record written by Encode. Malformed input yields an error
// wrapping ErrCorrupt. A record of another version decodes as far as its
// header so callers can tell a stale record from garbage.
func Decode(r io.Reader) (Record, error) {
	dec := msgpack.NewDecoder(r)
	var rec Record
	version, err := dec.DecodeUint16()
	if err != nil {
		return rec, corrupt("version", err)
	}
	rec.Version = version
	if version != Version {
		return rec, nil
	}
	hash, err := dec.DecodeBytes()
	if err != nil {
		return rec, corrupt("hash", err)
	}
	if len(hash) != len(rec.Hash) {
		return rec, corrupt("hash", fmt.Errorf("length %d", len(hash)))
	}
	copy(rec.Hash[:], hash)
	count, err := dec.DecodeUint32()
	if err != nil {
		return rec, corrupt("count", err)
	}
	// не доверяем счётчику при выделении памяти
	rec.Exports = make(types.Exports, min(count, 1024))
	prev := ""
	for i := uint32(0); i < count; i++ {
		name, err := dec.DecodeString()
		if err != nil {
			return rec, corrupt("name", err)
		}
		if i > 0 && name <= prev {
			return rec, corrupt("name", fmt.Errorf("%q out of order", name))
		}
		prev = name
		v, err := dec.DecodeUint8()
		if err != nil {
			return rec, corrupt("type", err)
		}
		t := types.ExportType(v)
		if !t.Valid() {
			return rec, corrupt("type", fmt.Errorf("value %d", v))
		}
		rec.Exports[name] = t
	}
	return rec, nil
}

func corrupt(field string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrCorrupt, field, err)
}
