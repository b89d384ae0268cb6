// Package accounts exposes the account lookup boundary the launch pipeline
// consumes. Credential acquisition (OAuth flows, token refresh) lives
// outside this module; only the resolved account data crosses this
// interface.
package accounts

import (
	"crypto/md5"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Kind discriminates how an account authenticates.
type Kind string

const (
	KindOffline   Kind = "offline"
	KindMicrosoft Kind = "microsoft"
)

// Account is the resolved identity a launch runs under.
type Account struct {
	UUID        string
	Username    string
	AccessToken string
	Kind        Kind
}

// UserType returns the value injected for the user-type game argument.
func (a Account) UserType() string {
	if a.Kind == KindMicrosoft {
		return "msa"
	}
	return "legacy"
}

// Provider looks an account up by its uuid.
type Provider interface {
	Lookup(id string) (Account, error)
}

// StaticProvider is an in-memory Provider populated by the embedding
// application. Reads and writes are guarded by a short-held mutex.
type StaticProvider struct {
	mu       sync.Mutex
	accounts map[string]Account
}

// NewStaticProvider creates an empty provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{accounts: make(map[string]Account)}
}

// Add registers or replaces an account.
func (p *StaticProvider) Add(a Account) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accounts[a.UUID] = a
}

// Lookup implements Provider.
func (p *StaticProvider) Lookup(id string) (Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, ok := p.accounts[id]
	if !ok {
		return Account{}, fmt.Errorf("account %q not found", id)
	}
	return a, nil
}

// NewOffline builds an offline account for a player name. Offline accounts
// carry the sentinel access token "0" that servers in offline mode accept.
func NewOffline(name string) Account {
	return Account{
		UUID:        OfflineUUID(name).String(),
		Username:    name,
		AccessToken: "0",
		Kind:        KindOffline,
	}
}

// OfflineUUID derives the deterministic offline-mode uuid for a player
// name: the MD5 of "OfflinePlayer:<name>" with version 3 and RFC 4122
// variant bits set. Unlike uuid.NewMD5 there is no namespace prefix; the
// raw string is hashed so the result matches what offline-mode servers
// compute for the same name.
func OfflineUUID(name string) uuid.UUID {
	sum := md5.Sum([]byte("OfflinePlayer:" + name))
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	id, err := uuid.FromBytes(sum[:])
	if err != nil {
		// FromBytes only fails on length mismatch, which cannot happen here.
		panic(err)
	}
	return id
}
