package script

import (
	"fmt"
)

// 比特币脚本操作码(含 tapscript 的 OP_CHECKSIGADD)。
// 直接推送只列出常用的几个，OP_DATA_n 即字节 n(1 <= n <= 75)。
const (
	OP_0                   = 0x00 // 0
	OP_FALSE               = 0x00 // 0 - AKA OP_0
	OP_DATA_1              = 0x01 // 1
	OP_DATA_2              = 0x02 // 2
	OP_DATA_20             = 0x14 // 20
	OP_DATA_32             = 0x20 // 32
	OP_DATA_33             = 0x21 // 33
	OP_DATA_65             = 0x41 // 65
	OP_DATA_75             = 0x4b // 75
	OP_PUSHDATA1           = 0x4c // 76
	OP_PUSHDATA2           = 0x4d // 77
	OP_PUSHDATA4           = 0x4e // 78
	OP_1NEGATE             = 0x4f // 79
	OP_RESERVED            = 0x50 // 80
	OP_1                   = 0x51 // 81
	OP_TRUE                = 0x51 // 81 - AKA OP_1
	OP_2                   = 0x52 // 82
	OP_3                   = 0x53 // 83
	OP_4                   = 0x54 // 84
	OP_5                   = 0x55 // 85
	OP_6                   = 0x56 // 86
	OP_7                   = 0x57 // 87
	OP_8                   = 0x58 // 88
	OP_9                   = 0x59 // 89
	OP_10                  = 0x5a // 90
	OP_11                  = 0x5b // 91
	OP_12                  = 0x5c // 92
	OP_13                  = 0x5d // 93
	OP_14                  = 0x5e // 94
	OP_15                  = 0x5f // 95
	OP_16                  = 0x60 // 96
	OP_NOP                 = 0x61 // 97
	OP_VER                 = 0x62 // 98
	OP_IF                  = 0x63 // 99
	OP_NOTIF               = 0x64 // 100
	OP_VERIF               = 0x65 // 101
	OP_VERNOTIF            = 0x66 // 102
	OP_ELSE                = 0x67 // 103
	OP_ENDIF               = 0x68 // 104
	OP_VERIFY              = 0x69 // 105
	OP_RETURN              = 0x6a // 106
	OP_TOALTSTACK          = 0x6b // 107
	OP_FROMALTSTACK        = 0x6c // 108
	OP_2DROP               = 0x6d // 109
	OP_2DUP                = 0x6e // 110
	OP_3DUP                = 0x6f // 111
	OP_2OVER               = 0x70 // 112
	OP_2ROT                = 0x71 // 113
	OP_2SWAP               = 0x72 // 114
	OP_IFDUP               = 0x73 // 115
	OP_DEPTH               = 0x74 // 116
	OP_DROP                = 0x75 // 117
	OP_DUP                 = 0x76 // 118
	OP_NIP                 = 0x77 // 119
	OP_OVER                = 0x78 // 120
	OP_PICK                = 0x79 // 121
	OP_ROLL                = 0x7a // 122
	OP_ROT                 = 0x7b // 123
	OP_SWAP                = 0x7c // 124
	OP_TUCK                = 0x7d // 125
	OP_CAT                 = 0x7e // 126
	OP_SUBSTR              = 0x7f // 127
	OP_LEFT                = 0x80 // 128
	OP_RIGHT               = 0x81 // 129
	OP_SIZE                = 0x82 // 130
	OP_INVERT              = 0x83 // 131
	OP_AND                 = 0x84 // 132
	OP_OR                  = 0x85 // 133
	OP_XOR                 = 0x86 // 134
	OP_EQUAL               = 0x87 // 135
	OP_EQUALVERIFY         = 0x88 // 136
	OP_RESERVED1           = 0x89 // 137
	OP_RESERVED2           = 0x8a // 138
	OP_1ADD                = 0x8b // 139
	OP_1SUB                = 0x8c // 140
	OP_2MUL                = 0x8d // 141
	OP_2DIV                = 0x8e // 142
	OP_NEGATE              = 0x8f // 143
	OP_ABS                 = 0x90 // 144
	OP_NOT                 = 0x91 // 145
	OP_0NOTEQUAL           = 0x92 // 146
	OP_ADD                 = 0x93 // 147
	OP_SUB                 = 0x94 // 148
	OP_MUL                 = 0x95 // 149
	OP_DIV                 = 0x96 // 150
	OP_MOD                 = 0x97 // 151
	OP_LSHIFT              = 0x98 // 152
	OP_RSHIFT              = 0x99 // 153
	OP_BOOLAND             = 0x9a // 154
	OP_BOOLOR              = 0x9b // 155
	OP_NUMEQUAL            = 0x9c // 156
	OP_NUMEQUALVERIFY      = 0x9d // 157
	OP_NUMNOTEQUAL         = 0x9e // 158
	OP_LESSTHAN            = 0x9f // 159
	OP_GREATERTHAN         = 0xa0 // 160
	OP_LESSTHANOREQUAL     = 0xa1 // 161
	OP_GREATERTHANOREQUAL  = 0xa2 // 162
	OP_MIN                 = 0xa3 // 163
	OP_MAX                 = 0xa4 // 164
	OP_WITHIN              = 0xa5 // 165
	OP_RIPEMD160           = 0xa6 // 166
	OP_SHA1                = 0xa7 // 167
	OP_SHA256              = 0xa8 // 168
	OP_HASH160             = 0xa9 // 169
	OP_HASH256             = 0xaa // 170
	OP_CODESEPARATOR       = 0xab // 171
	OP_CHECKSIG            = 0xac // 172
	OP_CHECKSIGVERIFY      = 0xad // 173
	OP_CHECKMULTISIG       = 0xae // 174
	OP_CHECKMULTISIGVERIFY = 0xaf // 175
	OP_NOP1                = 0xb0 // 176
	OP_CHECKLOCKTIMEVERIFY = 0xb1 // 177
	OP_CHECKSEQUENCEVERIFY = 0xb2 // 178
	OP_NOP4                = 0xb3 // 179
	OP_NOP5                = 0xb4 // 180
	OP_NOP6                = 0xb5 // 181
	OP_NOP7                = 0xb6 // 182
	OP_NOP8                = 0xb7 // 183
	OP_NOP9                = 0xb8 // 184
	OP_NOP10               = 0xb9 // 185
	OP_CHECKSIGADD         = 0xba // 186
	OP_PUBKEYHASH          = 0xfd // 253
	OP_PUBKEY              = 0xfe // 254
	OP_INVALIDOPCODE       = 0xff // 255
)

// OP_PLACEHOLDER 模板中待填充数据的位置。执行到 OP_RESERVED 的脚本必然失败。
const OP_PLACEHOLDER = OP_RESERVED

// MaxDirectPush 仅用长度字节即可推送的最大数据长度
const MaxDirectPush = OP_DATA_75

var opcodeNames [256]string

// OpcodeByName 名称(OP_CAT、OP_EQUAL 等)到操作码的映射
var OpcodeByName = make(map[string]byte)

func init() {
	named := map[byte]string{
		0x00: "OP_0",
		0x4c: "OP_PUSHDATA1",
		0x4d: "OP_PUSHDATA2",
		0x4e: "OP_PUSHDATA4",
		0x4f: "OP_1NEGATE",
		0x50: "OP_RESERVED",
		0x51: "OP_1",
		0x52: "OP_2",
		0x53: "OP_3",
		0x54: "OP_4",
		0x55: "OP_5",
		0x56: "OP_6",
		0x57: "OP_7",
		0x58: "OP_8",
		0x59: "OP_9",
		0x5a: "OP_10",
		0x5b: "OP_11",
		0x5c: "OP_12",
		0x5d: "OP_13",
		0x5e: "OP_14",
		0x5f: "OP_15",
		0x60: "OP_16",
		0x61: "OP_NOP",
		0x62: "OP_VER",
		0x63: "OP_IF",
		0x64: "OP_NOTIF",
		0x65: "OP_VERIF",
		0x66: "OP_VERNOTIF",
		0x67: "OP_ELSE",
		0x68: "OP_ENDIF",
		0x69: "OP_VERIFY",
		0x6a: "OP_RETURN",
		0x6b: "OP_TOALTSTACK",
		0x6c: "OP_FROMALTSTACK",
		0x6d: "OP_2DROP",
		0x6e: "OP_2DUP",
		0x6f: "OP_3DUP",
		0x70: "OP_2OVER",
		0x71: "OP_2ROT",
		0x72: "OP_2SWAP",
		0x73: "OP_IFDUP",
		0x74: "OP_DEPTH",
		0x75: "OP_DROP",
		0x76: "OP_DUP",
		0x77: "OP_NIP",
		0x78: "OP_OVER",
		0x79: "OP_PICK",
		0x7a: "OP_ROLL",
		0x7b: "OP_ROT",
		0x7c: "OP_SWAP",
		0x7d: "OP_TUCK",
		0x7e: "OP_CAT",
		0x7f: "OP_SUBSTR",
		0x80: "OP_LEFT",
		0x81: "OP_RIGHT",
		0x82: "OP_SIZE",
		0x83: "OP_INVERT",
		0x84: "OP_AND",
		0x85: "OP_OR",
		0x86: "OP_XOR",
		0x87: "OP_EQUAL",
		0x88: "OP_EQUALVERIFY",
		0x89: "OP_RESERVED1",
		0x8a: "OP_RESERVED2",
		0x8b: "OP_1ADD",
		0x8c: "OP_1SUB",
		0x8d: "OP_2MUL",
		0x8e: "OP_2DIV",
		0x8f: "OP_NEGATE",
		0x90: "OP_ABS",
		0x91: "OP_NOT",
		0x92: "OP_0NOTEQUAL",
		0x93: "OP_ADD",
		0x94: "OP_SUB",
		0x95: "OP_MUL",
		0x96: "OP_DIV",
		0x97: "OP_MOD",
		0x98: "OP_LSHIFT",
		0x99: "OP_RSHIFT",
		0x9a: "OP_BOOLAND",
		0x9b: "OP_BOOLOR",
		0x9c: "OP_NUMEQUAL",
		0x9d: "OP_NUMEQUALVERIFY",
		0x9e: "OP_NUMNOTEQUAL",
		0x9f: "OP_LESSTHAN",
		0xa0: "OP_GREATERTHAN",
		0xa1: "OP_LESSTHANOREQUAL",
		0xa2: "OP_GREATERTHANOREQUAL",
		0xa3: "OP_MIN",
		0xa4: "OP_MAX",
		0xa5: "OP_WITHIN",
		0xa6: "OP_RIPEMD160",
		0xa7: "OP_SHA1",
		0xa8: "OP_SHA256",
		0xa9: "OP_HASH160",
		0xaa: "OP_HASH256",
		0xab: "OP_CODESEPARATOR",
		0xac: "OP_CHECKSIG",
		0xad: "OP_CHECKSIGVERIFY",
		0xae: "OP_CHECKMULTISIG",
		0xaf: "OP_CHECKMULTISIGVERIFY",
		0xb0: "OP_NOP1",
		0xb1: "OP_CHECKLOCKTIMEVERIFY",
		0xb2: "OP_CHECKSEQUENCEVERIFY",
		0xb3: "OP_NOP4",
		0xb4: "OP_NOP5",
		0xb5: "OP_NOP6",
		0xb6: "OP_NOP7",
		0xb7: "OP_NOP8",
		0xb8: "OP_NOP9",
		0xb9: "OP_NOP10",
		0xba: "OP_CHECKSIGADD",
		0xfd: "OP_PUBKEYHASH",
		0xfe: "OP_PUBKEY",
		0xff: "OP_INVALIDOPCODE",
	}
	for i := 0; i < len(opcodeNames); i++ {
		b := byte(i)
		switch {
		case named[b] != "":
			opcodeNames[i] = named[b]
		case b >= OP_DATA_1 && b <= OP_DATA_75:
			opcodeNames[i] = fmt.Sprintf("OP_DATA_%d", i)
		default:
			opcodeNames[i] = fmt.Sprintf("OP_UNKNOWN%d", i)
		}
		OpcodeByName[opcodeNames[i]] = b
	}
	OpcodeByName["OP_FALSE"] = OP_FALSE
	OpcodeByName["OP_TRUE"] = OP_TRUE
	OpcodeByName["OP_PLACEHOLDER"] = OP_PLACEHOLDER
}

// OpcodeName 操作码名称
func OpcodeName(op byte) string {
	return opcodeNames[op]
}

// isPushOpcode 是否为带数据的推送操作码。OP_1NEGATE、OP_1..OP_16 不带数据，按普通操作处理。
func isPushOpcode(op byte) bool {
	return op <= OP_PUSHDATA4
}
