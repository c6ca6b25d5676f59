package magic

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/fgantt/yse-sub003/internal/board"
)

// File layout:
//
//	signature [8]byte "YSEMAGIC"
//	version   uint32
//	payload   zstd frame
//	checksum  uint64 xxhash64 of the decompressed payload
//
// The payload holds, little endian: ID [16]byte, seed uint64, entry count
// uint32, entries (mask lo, mask hi, magic uint64; fold, shift uint8;
// offset uint32) rook squares first, attack count uint32, attacks (lo, hi).
const (
	signature     = "YSEMAGIC"
	formatVersion = 1
	headerSize    = len(signature) + 4
	checksumSize  = 8
	entrySize     = 8*3 + 1 + 1 + 4
)

// maxAttacks bounds the attack count accepted from disk.
const maxAttacks = 1 << 26

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression), zstd.WithEncoderConcurrency(1))
	decoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0), zstd.WithDecoderMaxMemory(maxAttacks*16))
)

// Encode serializes a table.
func Encode(t *Table) ([]byte, error) {
	if !t.Available() {
		return nil, fmt.Errorf("encode: %w", ErrNoTable)
	}

	payload := make([]byte, 0, 16+8+4+board.NumSliders*board.NumSquares*entrySize+4+len(t.attacks)*16)
	payload = append(payload, t.ID[:]...)
	payload = binary.LittleEndian.AppendUint64(payload, t.Seed)
	payload = binary.LittleEndian.AppendUint32(payload, board.NumSliders*board.NumSquares)
	for s := range t.entries {
		for _, e := range t.entries[s] {
			payload = binary.LittleEndian.AppendUint64(payload, e.Mask.Lo())
			payload = binary.LittleEndian.AppendUint64(payload, e.Mask.Hi())
			payload = binary.LittleEndian.AppendUint64(payload, e.Magic)
			payload = append(payload, e.Fold, e.Shift)
			payload = binary.LittleEndian.AppendUint32(payload, e.Offset)
		}
	}
	payload = binary.LittleEndian.AppendUint32(payload, uint32(len(t.attacks)))
	for _, a := range t.attacks {
		payload = binary.LittleEndian.AppendUint64(payload, a.Lo())
		payload = binary.LittleEndian.AppendUint64(payload, a.Hi())
	}

	out := make([]byte, 0, headerSize+len(payload)/4+checksumSize)
	out = append(out, signature...)
	out = binary.LittleEndian.AppendUint32(out, formatVersion)
	out = encoder.EncodeAll(payload, out)
	out = binary.LittleEndian.AppendUint64(out, xxhash.Sum64(payload))
	return out, nil
}

// reader walks a payload, remembering the first short read.
type reader struct {
	buf []byte
	err error
}

func (r *reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf) < n {
		r.err = fmt.Errorf("%w: truncated payload", ErrCorrupt)
		return nil
	}
	b := r.buf[:n]
	r.buf = r.buf[n:]
	return b
}

func (r *reader) u8() uint8 {
	if b := r.next(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *reader) u32() uint32 {
	if b := r.next(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (r *reader) u64() uint64 {
	if b := r.next(8); b != nil {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

// Decode parses a serialized table. Any structural problem is reported as
// ErrCorrupt; attack contents are checked by Validate, not here.
func Decode(data []byte) (*Table, error) {
	if len(data) < headerSize+checksumSize {
		return nil, fmt.Errorf("%w: %d bytes is too short", ErrCorrupt, len(data))
	}
	if string(data[:len(signature)]) != signature {
		return nil, fmt.Errorf("%w: bad signature", ErrCorrupt)
	}
	if v := binary.LittleEndian.Uint32(data[len(signature):headerSize]); v != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, v)
	}

	frame := data[headerSize : len(data)-checksumSize]
	payload, err := decoder.DecodeAll(frame, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if sum := binary.LittleEndian.Uint64(data[len(data)-checksumSize:]); sum != xxhash.Sum64(payload) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	r := &reader{buf: payload}
	t := &Table{}
	id, err := uuid.FromBytes(r.next(16))
	if r.err != nil {
		return nil, r.err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	t.ID = id
	t.Seed = r.u64()

	if n := r.u32(); r.err == nil && n != board.NumSliders*board.NumSquares {
		return nil, fmt.Errorf("%w: %d entries", ErrCorrupt, n)
	}
	for s := range t.entries {
		for sq := range t.entries[s] {
			lo, hi := r.u64(), r.u64()
			t.entries[s][sq] = Entry{
				Mask:   board.FromUint128(hi, lo),
				Magic:  r.u64(),
				Fold:   r.u8(),
				Shift:  r.u8(),
				Offset: r.u32(),
			}
		}
	}

	n := r.u32()
	if r.err == nil && (n == 0 || n > maxAttacks || int(n)*16 != len(r.buf)) {
		return nil, fmt.Errorf("%w: %d attacks in %d bytes", ErrCorrupt, n, len(r.buf))
	}
	if r.err != nil {
		return nil, r.err
	}
	t.attacks = make([]board.Bitboard, n)
	for i := range t.attacks {
		lo, hi := r.u64(), r.u64()
		t.attacks[i] = board.FromUint128(hi, lo)
	}

	for s := board.Slider(0); s < board.NumSliders; s++ {
		for sq := board.Square(0); sq < board.NoSquare; sq++ {
			if err := checkEntry(t, s, sq); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
			}
		}
	}
	return t, r.err
}
