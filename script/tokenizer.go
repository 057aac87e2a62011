package script

import (
	"fmt"
	"io"
)

// Tokenizer 逐条解码原始脚本。接受任意宽度的长度前缀，编码时再选择最小形式。
// Next 出错后，之后的调用都返回同一错误。
type Tokenizer struct {
	script []byte
	offset int
	err    error
}

// NewTokenizer 不拷贝 script，返回的 DataPush 与 script 共享内存
func NewTokenizer(script []byte) *Tokenizer {
	return &Tokenizer{script: script}
}

// Offset 下一条指令的偏移
func (t *Tokenizer) Offset() int {
	return t.offset
}

// Next 返回下一条指令，脚本结束返回 io.EOF，推送越界返回 ErrShortScript
func (t *Tokenizer) Next() (Instruction, error) {
	if t.err != nil {
		return nil, t.err
	}
	if t.offset >= len(t.script) {
		t.err = io.EOF
		return nil, t.err
	}

	op := t.script[t.offset]
	if !isPushOpcode(op) {
		t.offset++
		return Operation(op), nil
	}

	l, n, err := PushedLength(t.script[t.offset:])
	if err != nil {
		str := fmt.Sprintf("truncated push at offset %d: %v", t.offset, err)
		t.err = scriptError(ErrShortScript, str)
		return nil, t.err
	}
	off := t.offset + n

	if l > uint64(len(t.script[off:])) {
		str := fmt.Sprintf("opcode %s at offset %d pushes %d bytes but "+
			"only %d bytes remain", OpcodeName(op), t.offset, l,
			len(t.script[off:]))
		t.err = scriptError(ErrShortScript, str)
		return nil, t.err
	}

	end := off + int(l)
	t.offset = end
	return DataPush(t.script[off:end:end]), nil
}

// Parse 解码整个脚本，出错时同时返回已解码的指令
func Parse(script []byte) ([]Instruction, error) {
	instrs := make([]Instruction, 0, len(script))
	t := NewTokenizer(script)
	for {
		instr, err := t.Next()
		if err == io.EOF {
			return instrs, nil
		}
		if err != nil {
			return instrs, err
		}
		instrs = append(instrs, instr)
	}
}
