package dao

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
	log "github.com/treeforest/logger"
)

const (
	dbName           = "TEMPLATES"          // 数据库名
	templatePrefix   = "__template__"       // 模板 key 前缀
	templateCountKey = "__template_count__" // 模板数量对应的key

	// bloom 过滤器预估容量与误判率
	filterCapacity = 100000
	filterFPRate   = 0.001
)

var ErrNotFound = errors.New("template not found")

// 模板与数量同步落盘
var syncWrite = &opt.WriteOptions{Sync: true}

func IsNotExistDB(path string) bool {
	_, err := os.Stat(filepath.Join(path, dbName))
	return os.IsNotExist(err)
}

// DAO 模板存储对象
type DAO struct {
	*leveldb.DB
	locker sync.RWMutex
	filter *bloom.BloomFilter // 已存储模板哈希的 Bloom 过滤器
	count  uint64
}

// New 打开(或创建)数据库，并根据已有数据重建过滤器
func New(dbPath string) (*DAO, error) {
	path := filepath.Join(dbPath, dbName)
	log.Debug("db path:", path)
	levelDB, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open leveldb [%s]", path)
	}

	o := &DAO{
		DB:     levelDB,
		filter: bloom.NewWithEstimates(filterCapacity, filterFPRate),
	}
	if err = o.load(); err != nil {
		_ = levelDB.Close()
		return nil, err
	}
	return o, nil
}

// load 加载模板数量，重建过滤器
func (o *DAO) load() error {
	value, err := o.DB.Get([]byte(templateCountKey), nil)
	switch {
	case err == leveldb.ErrNotFound:
		o.count = 0
	case err != nil:
		return errors.Wrap(err, "load template count")
	default:
		o.count, err = strconv.ParseUint(string(value), 10, 64)
		if err != nil {
			return errors.Wrap(err, "parse template count")
		}
	}

	n := uint64(0)
	err = o.Traverse(func(hash, _ []byte) bool {
		o.filter.Add(hash)
		n++
		return true
	})
	if err != nil {
		return err
	}
	if n != o.count {
		log.Warnf("template count mismatch, recorded:%d actually:%d", o.count, n)
		o.count = n
	}
	log.Debugf("loaded %d templates", o.count)
	return nil
}

func (o *DAO) Close() error {
	return o.DB.Close()
}

func keyTemplate(hash []byte) []byte {
	key := make([]byte, 0, len(templatePrefix)+len(hash))
	key = append(key, templatePrefix...)
	return append(key, hash...)
}

// Count 模板数量
func (o *DAO) Count() uint64 {
	o.locker.RLock()
	defer o.locker.RUnlock()
	return o.count
}

// mayContain 过滤器判断，false 表示一定不存在
func (o *DAO) mayContain(hash []byte) bool {
	o.locker.RLock()
	defer o.locker.RUnlock()
	return o.filter.Test(hash)
}

// Has 模板是否存在
func (o *DAO) Has(hash []byte) (bool, error) {
	if !o.mayContain(hash) {
		return false, nil
	}
	return o.DB.Has(keyTemplate(hash), nil)
}

// Get 获取模板数据
func (o *DAO) Get(hash []byte) ([]byte, error) {
	if !o.mayContain(hash) {
		return nil, ErrNotFound
	}
	value, err := o.DB.Get(keyTemplate(hash), nil)
	if err == leveldb.ErrNotFound {
		log.Debugf("bloom filter false positive: %s", hex.EncodeToString(hash))
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get template")
	}
	return value, nil
}

// Put 存储模板，已存在时不做修改并返回 false
func (o *DAO) Put(hash, value []byte) (added bool, err error) {
	o.locker.Lock()
	defer o.locker.Unlock()

	err = o.DoTransaction(func(trans *leveldb.Transaction) error {
		key := keyTemplate(hash)
		exist, err := trans.Has(key, nil)
		if err != nil {
			return errors.Wrap(err, "check template")
		}
		if exist {
			return nil
		}

		if err = trans.Put(key, value, syncWrite); err != nil {
			return errors.Wrap(err, "insert template")
		}
		count := strconv.FormatUint(o.count+1, 10)
		if err = trans.Put([]byte(templateCountKey), []byte(count), syncWrite); err != nil {
			return errors.Wrap(err, "update template count")
		}
		added = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if added {
		o.count++
		o.filter.Add(hash)
	}
	return added, nil
}

// Delete 删除模板，不存在时返回 ErrNotFound。过滤器不支持删除，残留项由数据库兜底。
func (o *DAO) Delete(hash []byte) error {
	o.locker.Lock()
	defer o.locker.Unlock()

	if !o.filter.Test(hash) {
		return ErrNotFound
	}

	err := o.DoTransaction(func(trans *leveldb.Transaction) error {
		key := keyTemplate(hash)
		exist, err := trans.Has(key, nil)
		if err != nil {
			return errors.Wrap(err, "check template")
		}
		if !exist {
			return ErrNotFound
		}

		if err = trans.Delete(key, syncWrite); err != nil {
			return errors.Wrap(err, "delete template")
		}
		count := strconv.FormatUint(o.count-1, 10)
		if err = trans.Put([]byte(templateCountKey), []byte(count), syncWrite); err != nil {
			return errors.Wrap(err, "update template count")
		}
		return nil
	})
	if err != nil {
		return err
	}

	o.count--
	return nil
}

// Traverse 按哈希顺序遍历模板，fn 返回 false 时停止
func (o *DAO) Traverse(fn func(hash, value []byte) bool) error {
	iter := o.DB.NewIterator(util.BytesPrefix([]byte(templatePrefix)), nil)
	defer iter.Release()

	for iter.Next() {
		hash := bytes.TrimPrefix(iter.Key(), []byte(templatePrefix))
		// 迭代器复用缓冲区，需拷贝
		if !fn(append([]byte(nil), hash...), append([]byte(nil), iter.Value()...)) {
			break
		}
	}
	return errors.Wrap(iter.Error(), "traverse templates")
}

// DoTransaction 事务操作
func (o *DAO) DoTransaction(fn func(trans *leveldb.Transaction) error) (err error) {
	trans, err := o.DB.OpenTransaction()
	if err != nil {
		return errors.Wrap(err, "open transaction")
	}
	defer func() {
		if err != nil {
			// 事务提交失败，销毁事务
			trans.Discard()
		}
	}()

	if err = fn(trans); err != nil {
		return err
	}

	if err = trans.Commit(); err != nil {
		return errors.Wrap(err, "commit")
	}
	return nil
}
