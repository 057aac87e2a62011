package script

const (
	// defaultScriptAlloc 构建脚本的初始容量
	defaultScriptAlloc = 500
)

// ScriptBuilder 脚本模板构建器。数据总以最小前缀推送，与 Segment 的编码一致。
// 出错后其余调用不生效，Script 返回第一个错误。
//
//	builder := script.NewScriptBuilder()
//	builder.AddData([]byte{0x01}).AddPlaceholder()
//	builder.AddOp(script.OP_CAT).AddOp(script.OP_EQUAL)
//	tpl, err := builder.Script()
type ScriptBuilder struct {
	script []byte
	err    error
}

// NewScriptBuilder 创建构建器
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{
		script: make([]byte, 0, defaultScriptAlloc),
	}
}

// AddOp 追加操作码
func (b *ScriptBuilder) AddOp(opcode byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	b.script = append(b.script, opcode)
	return b
}

// AddOps 追加多个操作码
func (b *ScriptBuilder) AddOps(opcodes ...byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	b.script = append(b.script, opcodes...)
	return b
}

// AddPlaceholder 追加占位符
func (b *ScriptBuilder) AddPlaceholder() *ScriptBuilder {
	return b.AddOp(OP_PLACEHOLDER)
}

// AddData 以最小前缀推送数据，小整数不转换为 OP_1..OP_16
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	b.script, b.err = AppendPush(b.script, data)
	return b
}

// AddInstructions 追加已解码的指令
func (b *ScriptBuilder) AddInstructions(instrs ...Instruction) *ScriptBuilder {
	for _, instr := range instrs {
		switch instr := instr.(type) {
		case DataPush:
			b.AddData(instr)
		case Operation:
			b.AddOp(byte(instr))
		default:
			if b.err == nil {
				b.err = scriptError(ErrMalformedPush,
					"builder got an instruction that is neither a push nor an operation")
			}
		}
	}
	return b
}

// Reset 清空脚本
func (b *ScriptBuilder) Reset() *ScriptBuilder {
	b.script = b.script[0:0]
	b.err = nil
	return b
}

// Script 返回当前脚本，出错时返回出错前的部分与第一个错误
func (b *ScriptBuilder) Script() ([]byte, error) {
	return b.script, b.err
}
