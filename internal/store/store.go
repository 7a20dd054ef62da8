// Package store persists session state as an encrypted key-value file.
//
// The store is the terminal analog of browser local storage: a small,
// process-wide string map whose lifetime spans invocations until explicitly
// cleared. Values are opaque to the store; it performs no token validation.
package store

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/crypto/pbkdf2"

	"github.com/authway/adminctl/internal/errors"
)

// Well-known session keys written by the session manager.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
	KeyLicense      = "license"
)

const (
	storeFile  = "session.json"
	secretFile = "machine.secret"

	kdfIterations = 100000
	keyLength     = 32
)

// kdfSalt is fixed; uniqueness comes from the random per-install machine secret.
var kdfSalt = []byte("authway-session-store")

// Store is an encrypted key-value file store.
//
// Values are encrypted at rest with AES-256-GCM; the key is derived from a
// random machine secret created on first open. All methods are safe for
// concurrent use.
type Store struct {
	mu        sync.RWMutex
	path      string
	masterKey []byte
	values    map[string]string
}

type fileFormat struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// Open opens (or creates) the store under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.NewStoreOpenError(dir, err)
	}

	secret, err := loadOrCreateSecret(filepath.Join(dir, secretFile))
	if err != nil {
		return nil, err
	}

	s := &Store{
		path:      filepath.Join(dir, storeFile),
		masterKey: pbkdf2.Key(secret, kdfSalt, kdfIterations, keyLength, sha256.New),
		values:    make(map[string]string),
	}

	if _, err := os.Stat(s.path); err == nil {
		if err := s.load(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Get returns the value for key and whether it was present.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok
}

// Set stores value under key and persists the store.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	if err := s.save(); err != nil {
		delete(s.values, key)
		return err
	}
	return nil
}

// Delete removes key and persists the store. Missing keys are a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.save()
}

// Clear removes every key the application has written and deletes the
// backing file. The machine secret survives so a later session can reuse it.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = make(map[string]string)
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "cannot remove store file", err)
	}
	return nil
}

// Keys returns all stored keys, sorted.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreReadFailed, "cannot read store file", err)
	}

	var ff fileFormat
	if err := json.Unmarshal(data, &ff); err != nil {
		return errors.Wrap(errors.ErrCodeStoreCorrupt, "store file is not valid JSON", err)
	}

	values := make(map[string]string, len(ff.Values))
	for key, sealed := range ff.Values {
		plain, err := s.decrypt(sealed)
		if err != nil {
			return errors.Wrap(errors.ErrCodeStoreCorrupt,
				fmt.Sprintf("cannot decrypt stored value %q", key), err).
				WithSuggestion("Remove the store file to reset local session state")
		}
		values[key] = plain
	}

	s.values = values
	return nil
}

func (s *Store) save() error {
	ff := fileFormat{
		Version: 1,
		Values:  make(map[string]string, len(s.values)),
	}
	for key, plain := range s.values {
		sealed, err := s.encrypt(plain)
		if err != nil {
			return errors.Wrap(errors.ErrCodeStoreWriteFailed, "cannot encrypt value", err)
		}
		ff.Values[key] = sealed
	}

	data, err := json.MarshalIndent(ff, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "cannot encode store file", err)
	}

	// Write-and-rename keeps a crash from leaving a half-written store.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "cannot write store file", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "cannot replace store file", err)
	}
	return nil
}

func (s *Store) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(s.masterKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (s *Store) decrypt(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(s.masterKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(raw) < nonceSize {
		return "", fmt.Errorf("ciphertext shorter than nonce")
	}

	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func loadOrCreateSecret(path string) ([]byte, error) {
	if data, err := os.ReadFile(path); err == nil {
		secret, err := base64.StdEncoding.DecodeString(string(data))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreCorrupt, "machine secret is not valid base64", err)
		}
		return secret, nil
	}

	secret := make([]byte, keyLength)
	if _, err := io.ReadFull(rand.Reader, secret); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreOpenFailed, "cannot generate machine secret", err)
	}

	encoded := base64.StdEncoding.EncodeToString(secret)
	if err := os.WriteFile(path, []byte(encoded), 0o600); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreOpenFailed, "cannot write machine secret", err)
	}
	return secret, nil
}
