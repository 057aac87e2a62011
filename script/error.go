package script

import (
	"errors"
	"fmt"
)

// ErrorCode 脚本错误码
type ErrorCode int

const (
	// ErrInternal 内部错误
	ErrInternal ErrorCode = iota

	// ErrShortScript 推送长度超出剩余字节，或长度字段被截断
	ErrShortScript

	// ErrMalformedPush 指令既不是推送也不是操作
	ErrMalformedPush

	// ErrPushTooLong 数据长度超出 OP_PUSHDATA4 的 32 位长度字段
	ErrPushTooLong

	// ErrInvalidPrefix 不是推送前缀
	ErrInvalidPrefix

	// ErrInvalidPlaceholder 占位符是推送操作码
	ErrInvalidPlaceholder

	// numErrorCodes 错误码数量，测试使用
	numErrorCodes
)

// 错误码名称
var errorCodeStrings = map[ErrorCode]string{
	ErrInternal:           "ErrInternal",
	ErrShortScript:        "ErrShortScript",
	ErrMalformedPush:      "ErrMalformedPush",
	ErrPushTooLong:        "ErrPushTooLong",
	ErrInvalidPrefix:      "ErrInvalidPrefix",
	ErrInvalidPlaceholder: "ErrInvalidPlaceholder",
}

// String 错误码名称
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error 脚本错误，通过 IsErrorCode 判断错误码
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

func (e Error) Error() string {
	return e.Description
}

// Is 错误码相同即视为同一错误，errors.Is 可穿透包装
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.ErrorCode == e.ErrorCode
}

// scriptError 创建脚本错误
func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode err(含被包装的)是否为错误码 c 的脚本错误
func IsErrorCode(err error, c ErrorCode) bool {
	var serr Error
	return errors.As(err, &serr) && serr.ErrorCode == c
}
