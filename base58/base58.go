package base58

import (
	"bytes"
	"fmt"
	"math/big"
)

const (
	// base58 编码基数表
	alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
)

var radix = big.NewInt(58)

// Encode base58 编码，前导的 0x00 字节编码为字符 '1'
func Encode(b []byte) []byte {
	x := new(big.Int).SetBytes(b)
	mod := new(big.Int)

	var dst []byte
	for x.Sign() != 0 {
		x.DivMod(x, radix, mod) // 除余法
		dst = append(dst, alphabet[mod.Int64()])
	}
	for _, v := range b {
		if v != 0x00 {
			break
		}
		dst = append(dst, alphabet[0])
	}

	reverse(dst)
	return dst
}

// Decode base58 解码
func Decode(b []byte) ([]byte, error) {
	r := new(big.Int)
	for i, c := range b {
		idx := bytes.IndexByte([]byte(alphabet), c)
		if idx < 0 {
			return nil, fmt.Errorf("invalid base58 character %q at %d", c, i)
		}
		r.Mul(r, radix)
		r.Add(r, big.NewInt(int64(idx)))
	}

	zeros := 0
	for _, c := range b {
		if c != alphabet[0] {
			break
		}
		zeros++
	}
	return append(make([]byte, zeros), r.Bytes()...), nil
}

func reverse(b []byte) {
	i, j := 0, len(b)-1
	for i < j {
		b[i], b[j] = b[j], b[i]
		i++
		j--
	}
}
