package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"
	"github.com/tcfw/didanchor/internal/utils/logging"
	"github.com/tcfw/didanchor/pkg/did/w3cdid"
	"github.com/tcfw/didanchor/pkg/tx"
)

var (
	_ DocumentStore = (*MemStore)(nil)
)

type MemStore struct {
	mu     sync.RWMutex
	metaMu sync.RWMutex

	objects map[cid.Cid][]byte
	dids    map[string]cid.Cid
	history map[string][]cid.Cid
	topics  map[string]map[string]struct{}

	filter    *Filter
	validator Validator

	now func() time.Time
}

func NewMemStore() *MemStore {
	m := &MemStore{
		objects: make(map[cid.Cid][]byte),
		dids:    make(map[string]cid.Cid),
		history: make(map[string][]cid.Cid),
		topics:  make(map[string]map[string]struct{}),
		filter:  NewFilter(),
		now:     time.Now,
	}
	m.validator = NewTxValidator(memLookup{m})

	return m
}

func (m *MemStore) putObj(d []byte, id cid.Cid) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[id] = d
}

func (m *MemStore) getObj(id cid.Cid) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.objects[id]
}

func (m *MemStore) getTx(id cid.Cid) (*tx.Tx, error) {
	d := m.getObj(id)
	if d == nil {
		return nil, ErrNotFound
	}

	return DecodeTx(d)
}

func (m *MemStore) Put(ctx context.Context, doc *w3cdid.Document) (cid.Cid, error) {
	if doc == nil {
		return cid.Undef, errors.Wrap(ErrDIDInvalid, "nil document")
	}

	if err := doc.IsValid(); err != nil {
		return cid.Undef, errors.Wrap(ErrDIDInvalid, err.Error())
	}

	exists, err := m.Exists(ctx, doc.ID())
	if err != nil {
		return cid.Undef, err
	}

	typ := tx.TxType_DIDCreate
	if exists {
		typ = tx.TxType_DIDUpdate
	}

	t, err := newOperation(typ, doc, m.now)
	if err != nil {
		return cid.Undef, err
	}

	return m.Apply(ctx, t)
}

func (m *MemStore) Apply(ctx context.Context, t *tx.Tx) (cid.Cid, error) {
	m.metaMu.Lock()
	defer m.metaMu.Unlock()

	if err := m.validator.IsTxValid(ctx, t); err != nil {
		return cid.Undef, err
	}

	id, b, err := EncodeTx(t)
	if err != nil {
		return cid.Undef, err
	}

	m.putObj(b, id)

	d, _ := t.DID()
	m.history[d.DID] = append(m.history[d.DID], id)

	switch t.Type {
	case tx.TxType_DIDCreate, tx.TxType_DIDUpdate:
		m.dids[d.DID] = id
		m.filter.Add(d.DID)
		if d.Topic != "" {
			if m.topics[d.Topic] == nil {
				m.topics[d.Topic] = map[string]struct{}{}
			}
			m.topics[d.Topic][d.DID] = struct{}{}
		}
	case tx.TxType_DIDDelete:
		delete(m.dids, d.DID)
		if set, ok := m.topics[d.Topic]; ok {
			delete(set, d.DID)
		}
	}

	logging.Entry().WithField("did", d.DID).WithField("op", t.Type.Operation()).Debug("applied did operation")

	return id, nil
}

func (m *MemStore) Exists(_ context.Context, did string) (bool, error) {
	m.metaMu.RLock()
	defer m.metaMu.RUnlock()

	return m.exists(did), nil
}

// exists requires metaMu
func (m *MemStore) exists(did string) bool {
	if !m.filter.MayContain(did) {
		return false
	}

	_, ok := m.dids[did]
	return ok
}

// memLookup is used by the validator while Apply holds metaMu
type memLookup struct {
	m *MemStore
}

func (l memLookup) Exists(_ context.Context, did string) (bool, error) {
	return l.m.exists(did), nil
}

func (m *MemStore) Get(_ context.Context, did string) (*w3cdid.Document, error) {
	if !m.filter.MayContain(did) {
		return nil, ErrNotFound
	}

	m.metaMu.RLock()
	id, ok := m.dids[did]
	m.metaMu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	t, err := m.getTx(id)
	if err != nil {
		return nil, err
	}

	return DocumentFromTx(t)
}

func (m *MemStore) History(_ context.Context, did string) ([]*tx.Tx, error) {
	m.metaMu.RLock()
	defer m.metaMu.RUnlock()

	cids, ok := m.history[did]
	if !ok || len(cids) == 0 {
		return nil, ErrNotFound
	}

	txs := make([]*tx.Tx, 0, len(cids))
	for _, c := range cids {
		t, err := m.getTx(c)
		if err != nil {
			return nil, errors.Wrap(err, "getting history tx")
		}
		txs = append(txs, t)
	}

	return txs, nil
}

func (m *MemStore) ByTopic(_ context.Context, topic w3cdid.TopicID) ([]string, error) {
	m.metaMu.RLock()
	defer m.metaMu.RUnlock()

	set := m.topics[topic.String()]

	n := make([]string, 0, len(set))
	for k := range set {
		n = append(n, k)
	}

	sort.Strings(n)

	return n, nil
}

func (m *MemStore) Delete(ctx context.Context, did string) error {
	doc, err := m.Get(ctx, did)
	if err != nil {
		return err
	}

	t, err := newOperation(tx.TxType_DIDDelete, doc, m.now)
	if err != nil {
		return err
	}

	_, err = m.Apply(ctx, t)
	return err
}

func (m *MemStore) Close() error {
	return nil
}
