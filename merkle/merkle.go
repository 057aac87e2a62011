package merkle

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
)

var (
	ErrNoLeaves     = errors.New("merkle tree needs at least one leaf")
	ErrLeafNotFound = errors.New("leaf index out of range")
)

// 叶子与内部节点使用不同前缀，片段无法冒充内部节点
const (
	leafPrefix = 0x00
	nodePrefix = 0x01
)

// Tree 默克尔树。叶子顺序即模板片段顺序，不做排序，因此证明需要携带叶子下标。
// 奇数层最后一个节点不参与配对，直接提升到上一层。
type Tree struct {
	MerkleRoot []byte
	Nodes      [][][]byte // 每一层的哈希，Nodes[0] 为叶子层
}

// LeafHash 计算片段的叶子哈希 sha256(0x00||data)
func LeafHash(data []byte) []byte {
	h := sha256.New()
	h.Write([]byte{leafPrefix})
	h.Write(data)
	return h.Sum(nil)
}

// New 以片段数据生成默克尔树
func New(leaves [][]byte) (*Tree, error) {
	hashes := make([][]byte, 0, len(leaves))
	for _, leaf := range leaves {
		hashes = append(hashes, LeafHash(leaf))
	}
	return BuildWithHashes(hashes)
}

// BuildWithHashes 以叶子哈希(LeafHash 的结果)生成默克尔树
func BuildWithHashes(leafHashes [][]byte) (*Tree, error) {
	if len(leafHashes) == 0 {
		return nil, ErrNoLeaves
	}

	t := &Tree{}
	level := leafHashes
	for {
		t.Nodes = append(t.Nodes, level)
		if len(level) == 1 {
			break
		}

		parents := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				parents = append(parents, level[i])
				continue
			}
			parents = append(parents, calculateHash(level[i], level[i+1]))
		}
		level = parents
	}

	t.MerkleRoot = level[0]
	return t, nil
}

// calculateHash 计算父节点哈希 sha256(0x01||left||right)，左右顺序有意义
func calculateHash(left, right []byte) []byte {
	h := sha256.New()
	h.Write([]byte{nodePrefix})
	h.Write(left)
	h.Write(right)
	return h.Sum(nil)
}

// Root 返回默克尔根
func (t *Tree) Root() []byte {
	return t.MerkleRoot
}

// LeafCount 叶子数量
func (t *Tree) LeafCount() int {
	return len(t.Nodes[0])
}

// GenerateMerkleProof 生成第 index 个叶子的默克尔证明，自底向上依次为兄弟节点哈希。
// 被提升的节点在该层没有兄弟，不产生证明项。
func (t *Tree) GenerateMerkleProof(index int) ([][]byte, error) {
	if index < 0 || index >= t.LeafCount() {
		return nil, fmt.Errorf("%w: %d of %d", ErrLeafNotFound, index, t.LeafCount())
	}

	var proof [][]byte
	for _, level := range t.Nodes[:len(t.Nodes)-1] {
		if brother := index ^ 1; brother < len(level) {
			proof = append(proof, level[brother])
		}
		index /= 2
	}
	return proof, nil
}

// VerifyMerkleProof 验证叶子哈希是否为 count 个叶子的树中第 index 个叶子
func VerifyMerkleProof(leafHash, merkleRoot []byte, index, count int, proof [][]byte) bool {
	if len(merkleRoot) == 0 || index < 0 || index >= count {
		return false
	}

	dst := leafHash
	for n := count; n > 1; n = (n + 1) / 2 {
		brother := index ^ 1
		if brother < n {
			if len(proof) == 0 {
				return false
			}
			if index%2 == 0 {
				dst = calculateHash(dst, proof[0])
			} else {
				dst = calculateHash(proof[0], dst)
			}
			proof = proof[1:]
		}
		index /= 2
	}
	return len(proof) == 0 && bytes.Equal(merkleRoot, dst)
}
