package utils

import "github.com/treeforest/easyfill/base58check"

// IsValidTemplateID 是否为 P2SH 版本、20 字节负载的 base58check 串
func IsValidTemplateID(id string) bool {
	version, payload, err := base58check.Decode([]byte(id))
	return err == nil && version == base58check.ScriptHashVersion && len(payload) == 20
}
