package script

import (
	"fmt"
	"io"
)

// FillableScript 在占位符处切开的脚本模板，片段按脚本顺序保存两个占位符之间的规范编码，各自独占内存
type FillableScript struct {
	Segments [][]byte
}

// Segmenter 重新编码指令并在 Placeholder 处切分
type Segmenter struct {
	Placeholder byte
}

// CheckPlaceholder 推送操作码不能作为占位符
func CheckPlaceholder(op byte) error {
	if isPushOpcode(op) {
		str := fmt.Sprintf("placeholder %s is a push opcode", OpcodeName(op))
		return scriptError(ErrInvalidPlaceholder, str)
	}
	return nil
}

// NewSegmenter 以 OP_PLACEHOLDER 切分
func NewSegmenter() *Segmenter {
	return &Segmenter{Placeholder: OP_PLACEHOLDER}
}

// Segment 读完 instrs。推送以最小前缀写入，其他操作写入操作码，占位符结束当前片段且不写入。
//
// 占位符总会结束一个片段，即使片段为空；最后一个占位符之后的空内容不成为片段。
// 因此开头的占位符产生空的首片段，末尾的占位符不产生片段。
//
// instrs 出错时整体失败，不返回任何片段。
func (s *Segmenter) Segment(instrs Instructions) (*FillableScript, error) {
	var (
		segments [][]byte
		cur      []byte
		index    int
	)
	for ; ; index++ {
		instr, err := instrs.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch instr := instr.(type) {
		case DataPush:
			cur, err = AppendPush(cur, instr)
			if err != nil {
				return nil, err
			}
		case Operation:
			if byte(instr) != s.Placeholder {
				cur = append(cur, byte(instr))
				continue
			}
			// cur 交出后不再追加，片段之间不共享内存
			if cur == nil {
				cur = []byte{}
			}
			segments = append(segments, cur)
			cur = nil
		default:
			str := fmt.Sprintf("instruction %d has unsupported type %T",
				index, instr)
			return nil, scriptError(ErrMalformedPush, str)
		}
	}

	if len(cur) > 0 {
		segments = append(segments, cur)
	}
	return &FillableScript{Segments: segments}, nil
}

// Segment 以 OP_PLACEHOLDER 切分 instrs
func Segment(instrs Instructions) (*FillableScript, error) {
	return NewSegmenter().Segment(instrs)
}

// FromScript 解码原始脚本并切分，任意位置的截断推送都会导致失败
func FromScript(script []byte) (*FillableScript, error) {
	return Segment(NewTokenizer(script))
}

// Len 片段数量
func (f *FillableScript) Len() int {
	return len(f.Segments)
}

// Bytes 以 placeholder 连接各片段。原脚本末尾的占位符没有留下片段，不会恢复。
func (f *FillableScript) Bytes(placeholder byte) []byte {
	size := 0
	for _, seg := range f.Segments {
		size += len(seg) + 1
	}
	out := make([]byte, 0, size)
	for i, seg := range f.Segments {
		if i > 0 {
			out = append(out, placeholder)
		}
		out = append(out, seg...)
	}
	return out
}
