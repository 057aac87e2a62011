package script

import (
	"encoding/binary"
	"fmt"
	"math"
)

// MaxPushLength OP_PUSHDATA4 可推送的最大长度
const MaxPushLength = math.MaxUint32

// PushPrefix 推送 n 字节的最小长度前缀：
//
//	0 <= n <= 75        [n]
//	76 <= n <= 255      [OP_PUSHDATA1 n]
//	256 <= n <= 65535   [OP_PUSHDATA2 n_lo n_hi]
//	n >= 65536          [OP_PUSHDATA4 n_0 n_1 n_2 n_3]
func PushPrefix(n uint64) ([]byte, error) {
	return appendPrefix(nil, n)
}

func appendPrefix(dst []byte, n uint64) ([]byte, error) {
	switch {
	case n <= MaxDirectPush:
		return append(dst, byte(n)), nil
	case n <= math.MaxUint8:
		return append(dst, OP_PUSHDATA1, byte(n)), nil
	case n <= math.MaxUint16:
		dst = append(dst, OP_PUSHDATA2, 0, 0)
		binary.LittleEndian.PutUint16(dst[len(dst)-2:], uint16(n))
		return dst, nil
	case n <= MaxPushLength:
		dst = append(dst, OP_PUSHDATA4, 0, 0, 0, 0)
		binary.LittleEndian.PutUint32(dst[len(dst)-4:], uint32(n))
		return dst, nil
	}
	str := fmt.Sprintf("push of %d bytes exceeds the maximum of %d", n,
		uint64(MaxPushLength))
	return dst, scriptError(ErrPushTooLong, str)
}

// AppendPush 以最小前缀把 data 追加到 dst，出错时 dst 不变
func AppendPush(dst, data []byte) ([]byte, error) {
	out, err := appendPrefix(dst, uint64(len(data)))
	if err != nil {
		return dst, err
	}
	return append(out, data...), nil
}

// PushedLength 解析推送前缀，返回数据长度与前缀字节数，不要求前缀最小
func PushedLength(prefix []byte) (uint64, int, error) {
	if len(prefix) == 0 {
		return 0, 0, scriptError(ErrShortScript, "empty push prefix")
	}
	op := prefix[0]
	if !isPushOpcode(op) {
		str := fmt.Sprintf("opcode %s is not a push", OpcodeName(op))
		return 0, 0, scriptError(ErrInvalidPrefix, str)
	}

	width := 0
	switch op {
	case OP_PUSHDATA1:
		width = 1
	case OP_PUSHDATA2:
		width = 2
	case OP_PUSHDATA4:
		width = 4
	}
	if len(prefix)-1 < width {
		str := fmt.Sprintf("%s prefix needs %d length bytes, have %d",
			OpcodeName(op), width, len(prefix)-1)
		return 0, 0, scriptError(ErrShortScript, str)
	}

	switch width {
	case 1:
		return uint64(prefix[1]), 2, nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(prefix[1:])), 3, nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(prefix[1:])), 5, nil
	}
	return uint64(op), 1, nil
}
