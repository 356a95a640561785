package snsd

import (
	"github.com/stellarns/snsd/rawdb"
	"github.com/stellarns/snsd/schema"
)

// Store archives built envelope bodies in the raw key/value backend,
// keyed by transaction hash. The relational rows in Wdb reference these
// keys.
type Store struct {
	KVDb rawdb.KeyValueDB
}

func NewBoltStore(boltDirPath string) (*Store, error) {
	boltDb, err := rawdb.NewBoltDB(boltDirPath)
	if err != nil {
		return nil, err
	}
	return &Store{KVDb: boltDb}, nil
}

func NewS3Store(accKey, secretKey, region, bucketPrefix, endpoint string) (*Store, error) {
	s3Db, err := rawdb.NewS3DB(accKey, secretKey, region, bucketPrefix, endpoint)
	if err != nil {
		return nil, err
	}
	return &Store{KVDb: s3Db}, nil
}

func (s *Store) SaveEnvelope(hash, envelope string) error {
	return s.KVDb.Put(schema.EnvelopeBucket, hash, []byte(envelope))
}

func (s *Store) LoadEnvelope(hash string) (string, error) {
	data, err := s.KVDb.Get(schema.EnvelopeBucket, hash)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Store) ExistEnvelope(hash string) bool {
	return s.KVDb.Exist(schema.EnvelopeBucket, hash)
}

func (s *Store) Close() error {
	return s.KVDb.Close()
}
