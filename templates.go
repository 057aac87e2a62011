package fill

import (
	"crypto/sha256"
	"time"

	"github.com/pkg/errors"
	"github.com/treeforest/easyfill/base58check"
	"github.com/treeforest/easyfill/dao"
	"github.com/treeforest/easyfill/merkle"
	"github.com/treeforest/easyfill/pkg/codec"
	"github.com/treeforest/easyfill/script"
	log "github.com/treeforest/logger"
	"golang.org/x/crypto/ripemd160"
)

var (
	ErrEmptyTemplate = errors.New("template has no segments")
	ErrInvalidID     = errors.New("invalid template id")
)

// Template 可填充脚本模板
type Template struct {
	ID        string   `cbor:"1,keyasint"`
	Hash160   []byte   `cbor:"2,keyasint"` // 规范脚本的 HASH160
	Script    []byte   `cbor:"3,keyasint"` // 规范脚本，保留全部占位符(含末尾的)
	Segments  [][]byte `cbor:"4,keyasint"`
	Root      []byte   `cbor:"5,keyasint"` // 片段默克尔根
	CreatedAt int64    `cbor:"6,keyasint"`
	Slots     int      `cbor:"7,keyasint"` // 占位符数量
}

// SegmentProof 片段属于模板的默克尔证明
type SegmentProof struct {
	ID       string
	Index    int
	Count    int // 模板片段数量
	Segment  []byte
	LeafHash []byte
	Root     []byte
	Proof    [][]byte
}

// Verify 验证证明
func (p *SegmentProof) Verify() bool {
	leaf := merkle.LeafHash(p.Segment)
	return merkle.VerifyMerkleProof(leaf, p.Root, p.Index, p.Count, p.Proof)
}

// Hash160 RIPEMD160(SHA256(b))
func Hash160(b []byte) []byte {
	hash := sha256.Sum256(b)
	r := ripemd160.New()
	r.Write(hash[:])
	return r.Sum(nil)
}

// TemplateID 由脚本哈希生成模板 ID
func TemplateID(hash160 []byte) string {
	return string(base58check.Encode(base58check.ScriptHashVersion, hash160))
}

// ParseTemplateID 解析模板 ID，返回脚本哈希
func ParseTemplateID(id string) ([]byte, error) {
	version, hash, err := base58check.Decode([]byte(id))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidID, "%s: %v", id, err)
	}
	if version != base58check.ScriptHashVersion || len(hash) != ripemd160.Size {
		return nil, errors.Wrapf(ErrInvalidID, "%s: version %d length %d", id, version, len(hash))
	}
	return hash, nil
}

// Templates 模板服务
type Templates struct {
	store       *dao.DAO
	segmenter   *script.Segmenter
	placeholder byte
}

func NewTemplates(store *dao.DAO, placeholder byte) *Templates {
	return &Templates{
		store:       store,
		segmenter:   &script.Segmenter{Placeholder: placeholder},
		placeholder: placeholder,
	}
}

// Placeholder 占位操作码
func (s *Templates) Placeholder() byte {
	return s.placeholder
}

// Segment 切分脚本，不存储
func (s *Templates) Segment(raw []byte) (*script.FillableScript, error) {
	return s.segmenter.Segment(script.NewTokenizer(raw))
}

// Build 生成模板，不存储。
// ID 取自整段脚本的规范编码，末尾占位符不产生片段但仍计入 ID。
func (s *Templates) Build(raw []byte) (*Template, error) {
	instrs, err := script.Parse(raw)
	if err != nil {
		return nil, err
	}

	f, err := s.segmenter.Segment(script.Slice(instrs).Iter())
	if err != nil {
		return nil, err
	}
	if f.Len() == 0 {
		return nil, ErrEmptyTemplate
	}

	canonical, err := script.NewScriptBuilder().AddInstructions(instrs...).Script()
	if err != nil {
		return nil, err
	}

	slots := 0
	for _, instr := range instrs {
		if op, ok := instr.(script.Operation); ok && byte(op) == s.placeholder {
			slots++
		}
	}

	tree, err := merkle.New(f.Segments)
	if err != nil {
		return nil, err
	}

	hash := Hash160(canonical)
	return &Template{
		ID:        TemplateID(hash),
		Hash160:   hash,
		Script:    canonical,
		Segments:  f.Segments,
		Root:      tree.Root(),
		CreatedAt: time.Now().Unix(),
		Slots:     slots,
	}, nil
}

// Register 生成并存储模板。模板已存在时返回已存储的模板，created 为 false。
func (s *Templates) Register(raw []byte) (tpl *Template, created bool, err error) {
	tpl, err = s.Build(raw)
	if err != nil {
		return nil, false, err
	}

	data, err := codec.Encode(tpl)
	if err != nil {
		return nil, false, err
	}
	created, err = s.store.Put(tpl.Hash160, data)
	if err != nil {
		return nil, false, err
	}
	if !created {
		log.Debugf("template %s already registered", tpl.ID)
		tpl, err = s.get(tpl.Hash160)
		return tpl, false, err
	}

	log.Infof("register template %s, %d segments", tpl.ID, len(tpl.Segments))
	return tpl, true, nil
}

func (s *Templates) get(hash []byte) (*Template, error) {
	data, err := s.store.Get(hash)
	if err != nil {
		return nil, err
	}
	tpl := new(Template)
	if err = codec.Decode(data, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Get 按 ID 获取模板
func (s *Templates) Get(id string) (*Template, error) {
	hash, err := ParseTemplateID(id)
	if err != nil {
		return nil, err
	}
	return s.get(hash)
}

// List 获取所有模板
func (s *Templates) List() ([]*Template, error) {
	tpls := make([]*Template, 0, s.store.Count())
	var decodeErr error
	err := s.store.Traverse(func(_, value []byte) bool {
		tpl := new(Template)
		if decodeErr = codec.Decode(value, tpl); decodeErr != nil {
			return false
		}
		tpls = append(tpls, tpl)
		return true
	})
	if err != nil {
		return nil, err
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return tpls, nil
}

// Remove 删除模板
func (s *Templates) Remove(id string) error {
	hash, err := ParseTemplateID(id)
	if err != nil {
		return err
	}
	if err = s.store.Delete(hash); err != nil {
		return err
	}
	log.Infof("remove template %s", id)
	return nil
}

// Prove 生成第 index 个片段的默克尔证明
func (s *Templates) Prove(id string, index int) (*SegmentProof, error) {
	tpl, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	tree, err := merkle.New(tpl.Segments)
	if err != nil {
		return nil, err
	}
	proof, err := tree.GenerateMerkleProof(index)
	if err != nil {
		return nil, err
	}

	return &SegmentProof{
		ID:       tpl.ID,
		Index:    index,
		Count:    len(tpl.Segments),
		Segment:  tpl.Segments[index],
		LeafHash: merkle.LeafHash(tpl.Segments[index]),
		Root:     tpl.Root,
		Proof:    proof,
	}, nil
}
