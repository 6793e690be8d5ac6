package did

import (
	"io/ioutil"
	"os"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/tcfw/didanchor/pkg/did"
	"github.com/tcfw/didanchor/pkg/did/w3cdid"
	"github.com/tcfw/didanchor/pkg/did/w3cdid/cryptography"
	"gopkg.in/yaml.v3"
)

type IdentityFileStore struct {
	Ids []IdentityFileStoreId `yaml:"ids"`
}

type IdentityFileStoreId struct {
	DID  string                 `yaml:"did"`
	Keys []IdentityFileStoreKey `yaml:"keys"`
}

// IdentityFileStoreKey holds a private key as text or as a JWK object
type IdentityFileStoreKey struct {
	ID   string      `yaml:"id"`
	Type string      `yaml:"type"`
	Key  interface{} `yaml:"key"`
}

var _ did.IdentityStore = (*FileStore)(nil)

// FileStore keeps the private keys of locally minted DIDs in a yaml file
type FileStore struct {
	path string
	ids  IdentityFileStore
	idx  map[string]*did.Identity

	mu sync.Mutex
}

func NewFileStore(path string) (*FileStore, error) {
	f := &FileStore{path: path}
	if err := f.read(); err != nil {
		return nil, err
	}

	return f, nil
}

func (fs *FileStore) read() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	f, err := os.OpenFile(fs.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return errors.Wrap(err, "opening identity file for read")
	}
	defer f.Close()

	d, err := ioutil.ReadAll(f)
	if err != nil {
		return errors.Wrap(err, "reading identity file")
	}

	if err := yaml.Unmarshal(d, &fs.ids); err != nil {
		return errors.Wrap(err, "unmarshalling identity data")
	}

	fs.buildIdx()

	return nil
}

func (fs *FileStore) buildIdx() {
	//assumes locked fs.mu

	fs.idx = make(map[string]*did.Identity, len(fs.ids.Ids))

	for _, fid := range fs.ids.Ids {
		id := &did.Identity{DID: fid.DID, Keys: make([]w3cdid.PrivateKey, 0, len(fid.Keys))}

		for _, k := range fid.Keys {
			id.Keys = append(id.Keys, w3cdid.PrivateKey{
				ID:   k.ID,
				Type: cryptography.VerificationMethodType(k.Type),
				Key:  k.Key,
			})
		}

		fs.idx[fid.DID] = id
	}
}

// Add stores the private keys of doc, replacing any previously stored
// for the same DID
func (fs *FileStore) Add(doc *w3cdid.Document) error {
	id := did.NewIdentity(doc)
	if len(id.Keys) == 0 {
		return errors.Wrap(did.ErrNoPrivateKeys, id.DID)
	}

	f := IdentityFileStoreId{DID: id.DID}
	for _, k := range id.Keys {
		f.Keys = append(f.Keys, IdentityFileStoreKey{ID: k.ID, Type: string(k.Type), Key: k.Key})
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	replaced := false
	for i, e := range fs.ids.Ids {
		if e.DID == id.DID {
			fs.ids.Ids[i] = f
			replaced = true
		}
	}
	if !replaced {
		fs.ids.Ids = append(fs.ids.Ids, f)
	}

	fs.idx[id.DID] = id

	return fs.write()
}

func (fs *FileStore) write() error {
	f, err := os.OpenFile(fs.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return errors.Wrap(err, "opening identity file for write")
	}
	defer f.Close()

	d, err := yaml.Marshal(&fs.ids)
	if err != nil {
		return errors.Wrap(err, "marshalling identity data")
	}

	if err := f.Truncate(0); err != nil {
		return errors.Wrap(err, "truncating identity file")
	}

	_, err = f.Write(d)
	return err
}

func (fs *FileStore) Find(id string) (*did.Identity, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	i, ok := fs.idx[id]
	if !ok {
		return nil, errors.Wrap(did.ErrIdentityNotFound, id)
	}

	return i, nil
}

func (fs *FileStore) List() ([]*did.Identity, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	ids := make([]*did.Identity, 0, len(fs.idx))

	for _, id := range fs.idx {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i].DID < ids[j].DID })

	return ids, nil
}

// Apply restores the stored private keys onto doc
func (fs *FileStore) Apply(doc *w3cdid.Document) error {
	id, err := fs.Find(doc.ID())
	if err != nil {
		return err
	}

	return id.Apply(doc)
}
