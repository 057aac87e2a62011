package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// 规范模式编码，相同的值总是得到相同的字节
var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: create cbor enc mode failed: %v", err))
	}
	encMode = em
}

func Encode(e interface{}) ([]byte, error) {
	data, err := encMode.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("cbor encode failed: [%T] [%v]", e, err)
	}
	return data, nil
}

func Decode(data []byte, o interface{}) error {
	if err := cbor.Unmarshal(data, o); err != nil {
		return fmt.Errorf("cbor decode failed: obj[%T] error[%w]", o, err)
	}
	return nil
}
