package txfetcher

import (
	"encoding/binary"
	"path/filepath"

	"github.com/huynhtastic/programmingbitcoin/util/hashes"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldbErrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// levelDBOptions are the options the transaction cache is opened with.
var levelDBOptions = opt.Options{
	Compression:            opt.NoCompression,
	BlockCacheCapacity:     8 * opt.MiB,
	WriteBuffer:            4 * opt.MiB,
	DisableSeeksCompaction: true,
}

// LevelDBCache is a Cache persisted in a leveldb database, so that
// transactions fetched by one run of a tool are available to the next.
type LevelDBCache struct {
	ldb *leveldb.DB
}

// NewLevelDBCache opens the cache stored in the directory path, creating it
// if it doesn't exist. A corrupted database is recovered.
func NewLevelDBCache(path string) (*LevelDBCache, error) {
	dbPath := filepath.Clean(path)

	// Open leveldb. If it doesn't exist, create it.
	ldb, err := leveldb.OpenFile(dbPath, &levelDBOptions)

	// If the database is corrupted, attempt to recover.
	if _, corrupted := err.(*ldbErrors.ErrCorrupted); corrupted {
		log.Warnf("LevelDB corruption detected for path %s: %s",
			dbPath, err)
		var err error
		ldb, err = leveldb.RecoverFile(dbPath, nil)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		log.Warnf("LevelDB recovered from corruption for path %s",
			dbPath)
	}

	// If the database cannot be opened for any other
	// reason, return the error as-is.
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &LevelDBCache{ldb: ldb}, nil
}

// dbKey returns the network magic in little endian followed by the
// transaction hash.
func dbKey(key CacheKey) ([]byte, error) {
	hash, err := hashes.NewHashFromStr(key.TxID)
	if err != nil {
		return nil, err
	}
	k := make([]byte, 4+hashes.HashSize)
	binary.LittleEndian.PutUint32(k, uint32(key.Net))
	copy(k[4:], hash[:])
	return k, nil
}

// Get is part of the Cache interface.
func (c *LevelDBCache) Get(key CacheKey) ([]byte, bool, error) {
	k, err := dbKey(key)
	if err != nil {
		return nil, false, err
	}
	raw, err := c.ldb.Get(k, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.WithStack(err)
	}
	return raw, true, nil
}

// Put is part of the Cache interface.
func (c *LevelDBCache) Put(key CacheKey, raw []byte) error {
	k, err := dbKey(key)
	if err != nil {
		return err
	}
	return errors.WithStack(c.ldb.Put(k, raw, nil))
}

// Close is part of the Cache interface.
func (c *LevelDBCache) Close() error {
	return errors.WithStack(c.ldb.Close())
}
