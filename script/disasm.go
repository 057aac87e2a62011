package script

import (
	"encoding/hex"
	"io"
	"strings"
)

// pushName n 字节最小推送的操作码名称
func pushName(n int) string {
	switch {
	case n == 0:
		return OpcodeName(OP_0)
	case n <= MaxDirectPush:
		return OpcodeName(byte(n))
	case n <= 0xff:
		return OpcodeName(OP_PUSHDATA1)
	case n <= 0xffff:
		return OpcodeName(OP_PUSHDATA2)
	}
	return OpcodeName(OP_PUSHDATA4)
}

// DisasmString 单行反汇编，推送显示为最小编码的操作码加 hex 数据。
// 解析失败时返回失败前的部分并追加 "[error]"。
func DisasmString(script []byte) (string, error) {
	var parts []string
	t := NewTokenizer(script)
	for {
		instr, err := t.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			parts = append(parts, "[error]")
			return strings.Join(parts, " "), err
		}
		parts = append(parts, disasmInstruction(instr))
	}
	return strings.Join(parts, " "), nil
}

func disasmInstruction(instr Instruction) string {
	switch instr := instr.(type) {
	case DataPush:
		if len(instr) == 0 {
			return pushName(0)
		}
		return pushName(len(instr)) + " 0x" + hex.EncodeToString(instr)
	case Operation:
		return OpcodeName(byte(instr))
	}
	return "[unknown]"
}

// DisasmSegments 反汇编模板的各片段
func DisasmSegments(f *FillableScript) ([]string, error) {
	out := make([]string, 0, f.Len())
	for _, seg := range f.Segments {
		s, err := DisasmString(seg)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
