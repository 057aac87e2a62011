package script

import (
	"fmt"
	"io"
)

// Instruction 脚本指令，只有 DataPush 与 Operation 两种
type Instruction interface {
	instruction()
}

// DataPush 数据推送，只保留数据，不保留原长度前缀宽度
type DataPush []byte

// Operation 非推送操作码
type Operation byte

func (DataPush) instruction()  {}
func (Operation) instruction() {}

// Instructions 指令源。结束时 Next 返回 io.EOF，其他错误表示无法解码
type Instructions interface {
	Next() (Instruction, error)
}

// Slice 内存中的指令列表
type Slice []Instruction

type sliceInstructions struct {
	instrs []Instruction
	pos    int
}

// Iter 返回 s 的指令源
func (s Slice) Iter() Instructions {
	return &sliceInstructions{instrs: s}
}

func (s *sliceInstructions) Next() (Instruction, error) {
	if s.pos >= len(s.instrs) {
		return nil, io.EOF
	}
	instr := s.instrs[s.pos]
	s.pos++
	if instr == nil {
		str := fmt.Sprintf("instruction %d is neither a push "+
			"nor an operation", s.pos-1)
		return nil, scriptError(ErrMalformedPush, str)
	}
	return instr, nil
}
