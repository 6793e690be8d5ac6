package storage

import (
	"bytes"
	"context"
	"encoding/binary"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"

	"github.com/tcfw/didanchor/internal/utils/logging"
	"github.com/tcfw/didanchor/pkg/did/w3cdid"
	"github.com/tcfw/didanchor/pkg/storage"
	"github.com/tcfw/didanchor/pkg/tx"
)

var (
	_ storage.DocumentStore = (*PebbleStore)(nil)
)

const (
	cacheSize = 1 << 20 * 100

	// DIDs never contain NUL so it can separate key parts
	tableSep byte = 0
)

type metadataKeyType byte

const (
	objectTPrefix metadataKeyType = iota + 1
	didTPrefix
	didHistoryTPrefix
	topicTPrefix
)

// PebbleStore is a persistent document store. Operations are stored under
// their content id and indexed by DID and topic.
type PebbleStore struct {
	db *pebble.DB

	// mu serialises operations so validation sees a consistent state
	mu        sync.Mutex
	validator storage.Validator

	now func() time.Time
}

type Option func(*pebble.Options)

// WithFS runs the store on fs, vfs.NewMem() keeps it in memory
func WithFS(fs vfs.FS) Option {
	return func(o *pebble.Options) {
		o.FS = fs
	}
}

func NewPebbleStore(path string, opts ...Option) (*PebbleStore, error) {
	c := pebble.NewCache(cacheSize)
	tc := pebble.NewTableCache(c, 16, 100)
	defer tc.Unref()
	defer c.Unref()

	o := &pebble.Options{Cache: c, TableCache: tc}
	for _, opt := range opts {
		opt(o)
	}

	db, err := pebble.Open(path, o)
	if err != nil {
		return nil, errors.Wrap(err, "opening document store")
	}

	s := &PebbleStore{db: db, now: time.Now}
	s.validator = storage.NewTxValidator(s)

	return s, nil
}

func (s *PebbleStore) metadataGet(key []byte) ([]byte, error) {
	v, done, err := s.db.Get(key)
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	defer done.Close()

	return append([]byte(nil), v...), nil
}

func (s *PebbleStore) getTx(id cid.Cid) (*tx.Tx, error) {
	b, err := s.metadataGet(typedKey(objectTPrefix, id.KeyString()))
	if err != nil {
		return nil, errors.Wrapf(err, "getting tx %s", id)
	}

	return storage.DecodeTx(b)
}

func (s *PebbleStore) head(did string) (cid.Cid, error) {
	v, err := s.metadataGet(typedKey(didTPrefix, did))
	if err != nil {
		return cid.Undef, err
	}

	c, err := cid.Cast(v)
	if err != nil {
		return cid.Undef, errors.Wrap(err, "casting did tx cid")
	}

	return c, nil
}

func (s *PebbleStore) Put(ctx context.Context, doc *w3cdid.Document) (cid.Cid, error) {
	if doc == nil {
		return cid.Undef, errors.Wrap(storage.ErrDIDInvalid, "nil document")
	}

	if err := doc.IsValid(); err != nil {
		return cid.Undef, errors.Wrap(storage.ErrDIDInvalid, err.Error())
	}

	exists, err := s.Exists(ctx, doc.ID())
	if err != nil {
		return cid.Undef, err
	}

	typ := tx.TxType_DIDCreate
	if exists {
		typ = tx.TxType_DIDUpdate
	}

	t, err := tx.NewDIDTx(typ, doc, s.now())
	if err != nil {
		return cid.Undef, err
	}

	return s.Apply(ctx, t)
}

func (s *PebbleStore) Apply(ctx context.Context, t *tx.Tx) (cid.Cid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validator.IsTxValid(ctx, t); err != nil {
		return cid.Undef, err
	}

	id, b, err := storage.EncodeTx(t)
	if err != nil {
		return cid.Undef, err
	}

	d, _ := t.DID()

	batch := s.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(typedKey(objectTPrefix, id.KeyString()), b, nil); err != nil {
		return cid.Undef, errors.Wrap(err, "storing tx")
	}

	seq, err := s.historyLen(d.DID)
	if err != nil {
		return cid.Undef, err
	}

	//append to did history
	ak := typedKey(didHistoryTPrefix, d.DID, seqKey(seq))
	if err := batch.Set(ak, id.Bytes(), nil); err != nil {
		return cid.Undef, errors.Wrap(err, "appending to did history")
	}

	k := typedKey(didTPrefix, d.DID)

	switch t.Type {
	case tx.TxType_DIDCreate, tx.TxType_DIDUpdate:
		err = batch.Set(k, id.Bytes(), nil)
		if err == nil && d.Topic != "" {
			err = batch.Set(typedKey(topicTPrefix, d.Topic, d.DID), nil, nil)
		}
	case tx.TxType_DIDDelete:
		err = batch.Delete(k, nil)
		if err == nil && d.Topic != "" {
			err = batch.Delete(typedKey(topicTPrefix, d.Topic, d.DID), nil)
		}
	default:
		err = errors.Wrapf(storage.ErrOpNotSupported, "tx type %d", t.Type)
	}
	if err != nil {
		return cid.Undef, errors.Wrapf(err, "indexing tx %s", id)
	}

	if err := batch.Commit(&pebble.WriteOptions{Sync: true}); err != nil {
		return cid.Undef, errors.Wrap(err, "applying metadata batch index")
	}

	logging.Entry().WithField("did", d.DID).WithField("op", t.Type.Operation()).Debug("applied did operation")

	return id, nil
}

func (s *PebbleStore) Exists(_ context.Context, did string) (bool, error) {
	_, err := s.head(did)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (s *PebbleStore) Get(ctx context.Context, did string) (*w3cdid.Document, error) {
	c, err := s.head(did)
	if err != nil {
		return nil, err
	}

	t, err := s.getTx(c)
	if err != nil {
		return nil, errors.Wrap(err, "lookup did tx")
	}

	return storage.DocumentFromTx(t)
}

func (s *PebbleStore) historyIter(did string) *pebble.Iterator {
	prefix := typedKey(didHistoryTPrefix, did, "")

	return s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	})
}

func (s *PebbleStore) historyLen(did string) (uint64, error) {
	iter := s.historyIter(did)

	var n uint64
	for iter.First(); iter.Valid(); iter.Next() {
		n++
	}

	return n, iter.Close()
}

func (s *PebbleStore) History(ctx context.Context, did string) ([]*tx.Tx, error) {
	hIter := s.historyIter(did)
	defer hIter.Close()

	txs := []*tx.Tx{}

	for hIter.First(); hIter.Valid(); hIter.Next() {
		c, err := cid.Cast(hIter.Value())
		if err != nil {
			return nil, errors.Wrap(err, "casting history cid")
		}

		t, err := s.getTx(c)
		if err != nil {
			return nil, errors.Wrap(err, "fetching tx")
		}

		txs = append(txs, t)
	}

	if len(txs) == 0 {
		return nil, storage.ErrNotFound
	}

	return txs, nil
}

func (s *PebbleStore) ByTopic(_ context.Context, topic w3cdid.TopicID) ([]string, error) {
	prefix := typedKey(topicTPrefix, topic.String(), "")

	iter := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	})
	defer iter.Close()

	list := []string{}
	for iter.First(); iter.Valid(); iter.Next() {
		list = append(list, string(bytes.TrimPrefix(iter.Key(), prefix)))
	}

	sort.Strings(list)

	return list, nil
}

func (s *PebbleStore) Delete(ctx context.Context, did string) error {
	doc, err := s.Get(ctx, did)
	if err != nil {
		return err
	}

	t, err := tx.NewDIDTx(tx.TxType_DIDDelete, doc, s.now())
	if err != nil {
		return err
	}

	_, err = s.Apply(ctx, t)
	return err
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}

func typedKey(kType metadataKeyType, parts ...string) []byte {
	n := 1
	for _, p := range parts {
		n += len(p) + 1 //add sep as well
	}

	k := make([]byte, 0, n)
	k = append(k, byte(kType))
	for _, p := range parts {
		k = append(k, []byte(p)...)
		k = append(k, tableSep)
	}

	return k[:len(k)-1]
}

// upperBound is the smallest key greater than every key with prefix
func upperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}

	return nil
}

// seqKey orders history entries in the order they were applied
func seqKey(seq uint64) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)

	return string(b)
}
