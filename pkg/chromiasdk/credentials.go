package chromiasdk

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// ErrNoCredential is returned by a CredentialStore when nothing has
// been saved yet.
var ErrNoCredential = errors.New("chromiasdk: no stored credential")

// Credential is a persisted login.
type Credential struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// CredentialStore persists a login across process restarts. The file
// implementation below suits CLIs and desktop apps; servers embedding
// the SDK can supply their own (keychain, database, or InMemory for
// tests).
type CredentialStore interface {
	Load() (Credential, error)
	Save(Credential) error
	Clear() error
}

// FileCredentialStore keeps the credential in a JSON file with owner-only
// permissions.
type FileCredentialStore struct {
	Path string
}

func NewFileCredentialStore(path string) *FileCredentialStore {
	return &FileCredentialStore{Path: path}
}

func (f *FileCredentialStore) Load() (Credential, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credential{}, ErrNoCredential
		}
		return Credential{}, err
	}

	var cred Credential
	if err := json.Unmarshal(b, &cred); err != nil {
		return Credential{}, err
	}
	if cred.Token == "" {
		return Credential{}, ErrNoCredential
	}
	return cred, nil
}

func (f *FileCredentialStore) Save(cred Credential) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0750); err != nil {
		return err
	}

	b, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, b, 0600)
}

func (f *FileCredentialStore) Clear() error {
	err := os.Remove(f.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// InMemoryCredentialStore holds the credential in memory only. Useful
// in tests and in processes that do not want persistence.
type InMemoryCredentialStore struct {
	cred  Credential
	saved bool
}

func (m *InMemoryCredentialStore) Load() (Credential, error) {
	if !m.saved {
		return Credential{}, ErrNoCredential
	}
	return m.cred, nil
}

func (m *InMemoryCredentialStore) Save(cred Credential) error {
	m.cred = cred
	m.saved = true
	return nil
}

func (m *InMemoryCredentialStore) Clear() error {
	m.cred = Credential{}
	m.saved = false
	return nil
}
