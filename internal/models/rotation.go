package models

// Rotator selects and marks-used the best available account for a
// provider, implementing automatic rotation over an AccountManager pool.
type Rotator struct {
	accounts *AccountManager
}

// NewRotator returns a Rotator over accounts.
func NewRotator(accounts *AccountManager) *Rotator {
	return &Rotator{accounts: accounts}
}

// SelectAccount returns the best available account id for provider,
// marking it used (which applies its 2h cooldown) as a side effect. It
// returns ("", false, nil) if no account is currently available.
func (r *Rotator) SelectAccount(provider string) (string, bool, error) {
	acc, ok, err := r.accounts.GetNextAvailable(provider)
	if err != nil || !ok {
		return "", false, err
	}
	if _, err := r.accounts.MarkUsed(provider, acc.AccountID); err != nil {
		return "", false, err
	}
	return acc.AccountID, true, nil
}
