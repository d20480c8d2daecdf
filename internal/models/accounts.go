package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/irisforge/irisd/internal/store"
)

// Account is one credential set for a provider, pooled for rotation.
type Account struct {
	Provider      string         `json:"provider"`
	AccountID     string         `json:"account_id"`
	Credentials   map[string]any `json:"credentials"`
	Priority      int            `json:"priority"`
	CreatedAt     time.Time      `json:"created_at"`
	LastUsed      time.Time      `json:"last_used,omitempty"`
	UseCount      int            `json:"use_count"`
	CooldownUntil time.Time      `json:"cooldown_until,omitempty"`
}

func (a Account) available(now time.Time) bool {
	return a.CooldownUntil.IsZero() || a.CooldownUntil.Before(now)
}

type accountsDoc map[string][]Account

// AccountStats summarizes a provider's account pool.
type AccountStats struct {
	Total     int
	Available int
	InCooldown int
}

// AccountManager is the multi-credential pool with cooldowns, persisted
// atomically to data/accounts.json.
type AccountManager struct {
	store *store.Store[accountsDoc]
	now   func() time.Time
}

// NewAccountManager returns an AccountManager backed by path.
func NewAccountManager(path string) *AccountManager {
	return &AccountManager{store: store.New[accountsDoc](path), now: time.Now}
}

// AddAccount registers a new credential set for provider. account_id must
// be unique within that provider.
func (a *AccountManager) AddAccount(provider, accountID string, credentials map[string]any, priority int) error {
	return a.store.Update(func(doc accountsDoc) (accountsDoc, error) {
		if doc == nil {
			doc = accountsDoc{}
		}
		for _, existing := range doc[provider] {
			if existing.AccountID == accountID {
				return doc, fmt.Errorf("account %s already exists for provider %s", accountID, provider)
			}
		}
		doc[provider] = append(doc[provider], Account{
			Provider:    provider,
			AccountID:   accountID,
			Credentials: credentials,
			Priority:    priority,
			CreatedAt:   a.now(),
		})
		return doc, nil
	})
}

// ListAccounts returns the accounts for provider, or all accounts across
// every provider if provider is empty.
func (a *AccountManager) ListAccounts(provider string) ([]Account, error) {
	doc, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	if provider != "" {
		return doc[provider], nil
	}
	var all []Account
	for _, accs := range doc {
		all = append(all, accs...)
	}
	return all, nil
}

// GetNextAvailable sorts provider's accounts by (-priority,
// cooldown_until) and returns the first one whose cooldown has expired.
func (a *AccountManager) GetNextAvailable(provider string) (Account, bool, error) {
	doc, err := a.store.Load()
	if err != nil {
		return Account{}, false, err
	}
	accounts := append([]Account(nil), doc[provider]...)
	now := a.now()

	sort.SliceStable(accounts, func(i, j int) bool {
		if accounts[i].Priority != accounts[j].Priority {
			return accounts[i].Priority > accounts[j].Priority
		}
		return accounts[i].CooldownUntil.Before(accounts[j].CooldownUntil)
	})

	for _, acc := range accounts {
		if acc.available(now) {
			return acc, true, nil
		}
	}
	return Account{}, false, nil
}

// MarkUsed records a usage of accountID for provider: bumps last_used and
// use_count, and sets a 2h cooldown.
func (a *AccountManager) MarkUsed(provider, accountID string) (bool, error) {
	found := false
	err := a.store.Update(func(doc accountsDoc) (accountsDoc, error) {
		accs := doc[provider]
		for i := range accs {
			if accs[i].AccountID == accountID {
				accs[i].LastUsed = a.now()
				accs[i].UseCount++
				accs[i].CooldownUntil = a.now().Add(2 * time.Hour)
				found = true
				break
			}
		}
		return doc, nil
	})
	return found, err
}

// SetCooldown overrides accountID's cooldown to expire after d.
func (a *AccountManager) SetCooldown(provider, accountID string, d time.Duration) (bool, error) {
	found := false
	err := a.store.Update(func(doc accountsDoc) (accountsDoc, error) {
		accs := doc[provider]
		for i := range accs {
			if accs[i].AccountID == accountID {
				accs[i].CooldownUntil = a.now().Add(d)
				found = true
				break
			}
		}
		return doc, nil
	})
	return found, err
}

// RemoveAccount deletes accountID from provider's pool.
func (a *AccountManager) RemoveAccount(provider, accountID string) (bool, error) {
	found := false
	err := a.store.Update(func(doc accountsDoc) (accountsDoc, error) {
		accs := doc[provider]
		for i, acc := range accs {
			if acc.AccountID == accountID {
				doc[provider] = append(accs[:i], accs[i+1:]...)
				found = true
				break
			}
		}
		return doc, nil
	})
	return found, err
}

// Stats summarizes availability for provider (or every provider if
// provider is empty).
func (a *AccountManager) Stats(provider string) (AccountStats, error) {
	doc, err := a.store.Load()
	if err != nil {
		return AccountStats{}, err
	}

	var stats AccountStats
	now := a.now()
	providers := []string{provider}
	if provider == "" {
		providers = providers[:0]
		for p := range doc {
			providers = append(providers, p)
		}
	}
	for _, p := range providers {
		for _, acc := range doc[p] {
			stats.Total++
			if acc.available(now) {
				stats.Available++
			} else {
				stats.InCooldown++
			}
		}
	}
	return stats, nil
}
