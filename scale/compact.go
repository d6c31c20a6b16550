package scale

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/jiaohu/scale/log"
)

// compactMaxBytes is the largest mode-3 value-byte count: the 6-bit M field
// tops out at 63, and L = M + 4, so L <= 67 and N < 2^(8*67) = 2^536.
const compactMaxBytes = 67

// EncodeCompactUint64 encodes x using the smallest of the four compact
// modes that fits. It never fails: every uint64 value fits mode 3
// comfortably inside the 67-byte cap.
func EncodeCompactUint64(x uint64) []byte {
	switch {
	case x < 1<<6:
		return []byte{byte(x << 2)}
	case x < 1<<14:
		return []byte{byte((x&0x3F)<<2) | 0x01, byte(x >> 6)}
	case x < 1<<30:
		rest := x >> 6
		return []byte{byte((x&0x3F)<<2) | 0x02, byte(rest), byte(rest >> 8), byte(rest >> 16)}
	default:
		b, _ := encodeCompactMode3(new(big.Int).SetUint64(x))
		return b
	}
}

// EncodeCompact encodes an arbitrary-precision unsigned integer using the
// compact scheme, always selecting the minimal mode that fits the value.
// It fails with ErrValueOutOfRange when n exceeds 2^536-1, and with
// ErrUnsupportedShape if n is nil or negative.
func EncodeCompact(n *big.Int) ([]byte, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil compact integer", ErrUnsupportedShape)
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("%w: compact integers are unsigned", ErrUnsupportedShape)
	}
	switch {
	case n.BitLen() <= 6:
		return []byte{byte(n.Uint64() << 2)}, nil
	case n.BitLen() <= 14:
		v := n.Uint64()
		return []byte{byte((v&0x3F)<<2) | 0x01, byte(v >> 6)}, nil
	case n.BitLen() <= 30:
		v := n.Uint64()
		rest := v >> 6
		return []byte{byte((v&0x3F)<<2) | 0x02, byte(rest), byte(rest >> 8), byte(rest >> 16)}, nil
	default:
		return encodeCompactMode3(n)
	}
}

func encodeCompactMode3(n *big.Int) ([]byte, error) {
	byteLen := (n.BitLen() + 7) / 8
	if byteLen < 4 {
		byteLen = 4
	}
	if byteLen > compactMaxBytes {
		return nil, fmt.Errorf("%w: compact integer needs %d bytes, max is %d", ErrValueOutOfRange, byteLen, compactMaxBytes)
	}
	m := byteLen - 4
	out := make([]byte, 1+byteLen)
	out[0] = byte(m<<2) | 0x03
	littleEndianInto(n, out[1:1+byteLen])
	return out, nil
}

// littleEndianInto fills dst (already zeroed) with n's value in
// little-endian order. No multiplication or division is performed beyond
// what math/big.Int.Bytes does internally to produce its big-endian
// minimal representation; this only reverses byte order.
func littleEndianInto(n *big.Int, dst []byte) {
	be := n.Bytes()
	for i, b := range be {
		dst[len(dst)-1-i] = b
	}
}

func bigFromLittleEndian(raw []byte) *big.Int {
	be := make([]byte, len(raw))
	for i, b := range raw {
		be[len(raw)-1-i] = b
	}
	return new(big.Int).SetBytes(be)
}

// decodeCompact reads one compact integer from the front of data, returning
// the decoded value and the number of bytes consumed.
func decodeCompact(data []byte) (n *big.Int, consumed int, err error) {
	if len(data) < 1 {
		return nil, 0, fmt.Errorf("%w: compact integer header", ErrNotEnoughData)
	}
	b0 := data[0]
	switch b0 & 0x03 {
	case 0:
		return big.NewInt(int64(b0 >> 2)), 1, nil
	case 1:
		if len(data) < 2 {
			return nil, 0, fmt.Errorf("%w: compact integer mode 1", ErrNotEnoughData)
		}
		v := uint64(b0>>2) | uint64(data[1])<<6
		return new(big.Int).SetUint64(v), 2, nil
	case 2:
		if len(data) < 4 {
			return nil, 0, fmt.Errorf("%w: compact integer mode 2", ErrNotEnoughData)
		}
		v := uint64(b0>>2) | uint64(data[1])<<6 | uint64(data[2])<<14 | uint64(data[3])<<22
		return new(big.Int).SetUint64(v), 4, nil
	default: // mode 3
		m := int(b0 >> 2)
		byteLen := m + 4
		if len(data) < 1+byteLen {
			return nil, 0, fmt.Errorf("%w: compact integer mode 3 needs %d bytes", ErrNotEnoughData, byteLen)
		}
		raw := data[1 : 1+byteLen]
		n := bigFromLittleEndian(raw)
		log.Codec.Debug().Int("bytes", byteLen).Msg("decoded mode-3 compact integer")
		return n, 1 + byteLen, nil
	}
}

// decodeCompactChecked wraps decodeCompact with the strict-minimality
// policy: when enabled, re-encoding the decoded value must reproduce
// exactly the bytes that were consumed, or the encoding was non-minimal.
func decodeCompactChecked(data []byte, strict bool) (n *big.Int, consumed int, err error) {
	n, consumed, err = decodeCompact(data)
	if err != nil {
		return nil, 0, err
	}
	if strict {
		canonical, encErr := EncodeCompact(n)
		if encErr != nil || !bytes.Equal(canonical, data[:consumed]) {
			return nil, 0, fmt.Errorf("%w: non-minimal compact integer encoding", ErrValueOutOfRange)
		}
	}
	return n, consumed, nil
}
