// Package securefile reads and writes password-encrypted JSON files.
// Argon2id derives the key; XChaCha20-Poly1305 seals the payload.
package securefile

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/talentlayer/talentlayer-client/internal/constants"
)

// ErrInvalidPasswordOrCorrupt is returned when decryption fails.
var ErrInvalidPasswordOrCorrupt = errors.New("invalid password or corrupted file")

// Envelope is the on-disk format.
type Envelope struct {
	Version int `json:"version"`

	ArgonTime    uint32 `json:"argon_time"`
	ArgonMemory  uint32 `json:"argon_memory_kib"`
	ArgonThreads uint8  `json:"argon_threads"`
	ArgonKeyLen  uint32 `json:"argon_key_len"`

	SaltB64  string `json:"salt_b64"`
	NonceB64 string `json:"nonce_b64"`
	CTB64    string `json:"ct_b64"`
}

var DefaultKDF = Envelope{
	Version:      1,
	ArgonTime:    2,
	ArgonMemory:  64 * 1024, // KiB
	ArgonThreads: 1,
	ArgonKeyLen:  32,
}

type Options struct {
	KDF Envelope

	// AAD must be identical on read and write.
	AAD []byte
}

func (o Options) kdf() Envelope {
	if o.KDF.Version == 0 {
		return DefaultKDF
	}
	return o.KDF
}

// WriteEncryptedJSON marshals v, encrypts it and writes it atomically to path.
func WriteEncryptedJSON[T any](path string, v T, password []byte, opt Options) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirectoryPerm); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}

	plain, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	env := opt.kdf()
	if env.Version != 1 {
		return fmt.Errorf("unsupported kdf version: %d", env.Version)
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("rand salt: %w", err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("rand nonce: %w", err)
	}

	aead, err := chacha20poly1305.NewX(deriveKey(password, salt, env))
	if err != nil {
		return fmt.Errorf("aead: %w", err)
	}

	env.SaltB64 = base64.StdEncoding.EncodeToString(salt)
	env.NonceB64 = base64.StdEncoding.EncodeToString(nonce)
	env.CTB64 = base64.StdEncoding.EncodeToString(aead.Seal(nil, nonce, plain, opt.AAD))

	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	return atomicWriteFile(path, b)
}

// ReadEncryptedJSON decrypts path with password and unmarshals it into T.
// A missing file is reported with an error wrapping os.ErrNotExist.
func ReadEncryptedJSON[T any](path string, password []byte, opt Options) (T, error) {
	var zero T

	b, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("read file: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return zero, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return zero, fmt.Errorf("unsupported file version: %d", env.Version)
	}

	salt, err := base64.StdEncoding.DecodeString(env.SaltB64)
	if err != nil {
		return zero, fmt.Errorf("decode salt: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(env.NonceB64)
	if err != nil {
		return zero, fmt.Errorf("decode nonce: %w", err)
	}
	ct, err := base64.StdEncoding.DecodeString(env.CTB64)
	if err != nil {
		return zero, fmt.Errorf("decode ciphertext: %w", err)
	}

	aead, err := chacha20poly1305.NewX(deriveKey(password, salt, env))
	if err != nil {
		return zero, fmt.Errorf("aead: %w", err)
	}
	if len(nonce) != aead.NonceSize() {
		return zero, ErrInvalidPasswordOrCorrupt
	}

	plain, err := aead.Open(nil, nonce, ct, opt.AAD)
	if err != nil {
		return zero, ErrInvalidPasswordOrCorrupt
	}

	var out T
	if err := json.Unmarshal(plain, &out); err != nil {
		return zero, fmt.Errorf("unmarshal json: %w", err)
	}
	return out, nil
}

func deriveKey(password, salt []byte, env Envelope) []byte {
	return argon2.IDKey(password, salt, env.ArgonTime, env.ArgonMemory, env.ArgonThreads, env.ArgonKeyLen)
}

// ConfigPath returns <UserConfigDir>/<app>[/<env>]/<filename>. TL_ENV selects
// the env subfolder (local, develop); empty or prod means none.
func ConfigPath(app, filename string) (string, error) {
	if app == "" || filename == "" {
		return "", errors.New("app and filename must not be empty")
	}

	envFolder, err := EnvFolder()
	if err != nil {
		return "", err
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		home := os.Getenv("HOME")
		if home == "" {
			return "", fmt.Errorf("UserConfigDir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}

	dir = filepath.Join(dir, app)
	if envFolder != "" {
		dir = filepath.Join(dir, envFolder)
	}
	return filepath.Join(dir, filename), nil
}

func EnvFolder() (string, error) {
	raw := strings.TrimSpace(os.Getenv("TL_ENV"))
	switch strings.ToLower(raw) {
	case "", "prod", "production":
		return "", nil
	case "local":
		return "local", nil
	case "dev", "develop", "development":
		return "develop", nil
	default:
		return "", fmt.Errorf("invalid TL_ENV %q (allowed: local, develop, prod, empty)", raw)
	}
}

func atomicWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	_ = os.Remove(tmp)

	if err := os.WriteFile(tmp, data, constants.FilePerm); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
