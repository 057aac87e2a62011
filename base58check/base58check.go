package base58check

import (
	"bytes"
	"crypto/sha256"
	"errors"

	"github.com/treeforest/easyfill/base58"
)

const (
	// ScriptHashVersion P2SH 地址版本号，模板 ID 使用该版本
	ScriptHashVersion = byte(0x05)

	checksumLen = 4
)

var (
	ErrChecksum      = errors.New("checksum error")
	ErrInvalidFormat = errors.New("invalid format: version and/or checksum bytes missing")
)

// checksum 执行两次 SHA-256，取前4个字节作为校验码
func checksum(input []byte) []byte {
	hash := sha256.Sum256(input)
	hash2 := sha256.Sum256(hash[:])
	return hash2[:checksumLen]
}

// Encode 对 version + payload + checksum 进行 base58 编码
func Encode(version byte, payload []byte) []byte {
	encoded := make([]byte, 0, 1+len(payload)+checksumLen)
	encoded = append(encoded, version)
	encoded = append(encoded, payload...)
	encoded = append(encoded, checksum(encoded)...)
	return base58.Encode(encoded)
}

// Decode 解码并校验，返回版本号与负载
func Decode(b []byte) (version byte, payload []byte, err error) {
	decoded, err := base58.Decode(b)
	if err != nil {
		return 0, nil, err
	}
	if len(decoded) < 1+checksumLen {
		return 0, nil, ErrInvalidFormat
	}

	body := decoded[:len(decoded)-checksumLen]
	if !bytes.Equal(checksum(body), decoded[len(decoded)-checksumLen:]) {
		return 0, nil, ErrChecksum
	}
	return body[0], body[1:], nil
}
