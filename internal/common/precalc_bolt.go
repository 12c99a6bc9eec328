package common

import (
	"fmt"
	"math/big"
	"time"

	"github.com/fxamacker/cbor"
	"github.com/go-errors/errors"
	"github.com/multiformats/go-multihash"
	bolt "go.etcd.io/bbolt"
)

type boltStorage struct {
	client *bolt.DB
}

// BucketName is where the primes of a given bit length are stored (sprintf'ed)
const BucketName = "primes_%d"

// primeRecord is the CBOR-encoded value stored per prime.
type primeRecord struct {
	Bits      int    `cbor:"bits"`
	Prime     []byte `cbor:"prime"`
	CreatedAt int64  `cbor:"created_at"`
}

// NewBoltStorage opens (creating if needed) a boltDB-backed prime storage at
// the given path.
func NewBoltStorage(path string) (*boltStorage, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}

	return &boltStorage{
		client: db,
	}, nil
}

// Put stores a prime of the given bit length. Entries are keyed by the
// SHA2-256 multihash of the prime's big-endian bytes, so storing the same
// prime twice is a no-op.
func (b *boltStorage) Put(p *big.Int, bits int) error {
	raw := p.Bytes()
	key, err := multihash.Sum(raw, multihash.SHA2_256, -1)
	if err != nil {
		return errors.Wrap(err, 0)
	}

	value, err := cbor.Marshal(primeRecord{
		Bits:      bits,
		Prime:     raw,
		CreatedAt: time.Now().Unix(),
	}, cbor.EncOptions{Canonical: true})
	if err != nil {
		return errors.Wrap(err, 0)
	}

	return b.client.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(fmt.Sprintf(BucketName, bits)))
		if err != nil {
			return err
		}
		return bucket.Put(key, value)
	})
}

// Fetch returns a stored prime of the given bit length and removes it from
// the storage, so a prime is never handed out twice.
func (b *boltStorage) Fetch(bits int) (*big.Int, error) {
	var p = new(big.Int)

	err := b.client.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(fmt.Sprintf(BucketName, bits)))
		if bucket == nil {
			return errors.Errorf("no precalculated primes for %d bits", bits)
		}

		c := bucket.Cursor()
		k, v := c.First()
		if k == nil {
			return errors.Errorf("no precalculated primes left for %d bits", bits)
		}

		var rec primeRecord
		if err := cbor.Unmarshal(v, &rec); err != nil {
			return err
		}
		p.SetBytes(rec.Prime)

		return bucket.Delete(k)
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (b *boltStorage) Close() error {
	return b.client.Close()
}
