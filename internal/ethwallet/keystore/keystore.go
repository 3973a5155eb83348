// Package keystore keeps a signing key encrypted at rest.
package keystore

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/talentlayer/talentlayer-client/internal/constants"
	"github.com/talentlayer/talentlayer-client/internal/securefile"
)

type Key struct {
	Version    int    `json:"version"`
	AddressHex string `json:"address"`
	PrivKeyHex string `json:"priv_key_hex"`

	CreatedAt string `json:"created_at,omitempty"` // RFC3339
}

type Store struct {
	Path string
	Opt  securefile.Options
}

func (k *Key) Address() common.Address {
	return common.HexToAddress(k.AddressHex)
}

// NewStore sets up a key store at path, or at the canonical config path when
// path is empty.
func NewStore(path string) (*Store, error) {
	if path == "" {
		p, err := securefile.ConfigPath(constants.AppName, constants.KeystoreFile)
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Store{
		Path: path,
		Opt:  securefile.Options{AAD: []byte(constants.KeystoreAAD)},
	}, nil
}

// Load decrypts the stored key.
func (s *Store) Load(password []byte) (*Key, error) {
	k, err := securefile.ReadEncryptedJSON[Key](s.Path, password, s.Opt)
	if err != nil {
		return nil, fmt.Errorf("load keystore %s: %w", s.Path, err)
	}
	return &k, nil
}

// Ensure loads an existing key or creates and persists a new random one.
func (s *Store) Ensure(password []byte) (*Key, error) {
	k, err := securefile.ReadEncryptedJSON[Key](s.Path, password, s.Opt)
	if err == nil {
		return &k, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load keystore %s: %w", s.Path, err)
	}

	nk, err := NewRandomKey()
	if err != nil {
		return nil, err
	}
	if err := s.Save(nk, password); err != nil {
		return nil, err
	}
	return nk, nil
}

// Import stores an existing hex private key.
func (s *Store) Import(hexKey string, password []byte) (*Key, error) {
	key, err := crypto.HexToECDSA(trim0x(hexKey))
	if err != nil {
		return nil, fmt.Errorf("import key: %w", err)
	}
	k := fromECDSA(key)
	if err := s.Save(k, password); err != nil {
		return nil, err
	}
	return k, nil
}

func (s *Store) Save(k *Key, password []byte) error {
	if k == nil {
		return errors.New("keystore: key is nil")
	}
	return securefile.WriteEncryptedJSON(s.Path, *k, password, s.Opt)
}

func NewRandomKey() (*Key, error) {
	key, err := ecdsa.GenerateKey(crypto.S256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return fromECDSA(key), nil
}

func fromECDSA(key *ecdsa.PrivateKey) *Key {
	return &Key{
		Version:    constants.SchemaV1,
		AddressHex: crypto.PubkeyToAddress(key.PublicKey).Hex(),
		PrivKeyHex: hexutil.Encode(crypto.FromECDSA(key)),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
}

func trim0x(s string) string {
	if len(s) >= 2 && (s[0:2] == "0x" || s[0:2] == "0X") {
		return s[2:]
	}
	return s
}
