package arweave

import (
	"encoding/json"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "arlink"
	keyringUser    = "wallet"
)

// Session is the pointer persisted after a successful connect so later
// invocations can reattach to the same wallet without prompting. Only
// the keyfile location and derived address are stored, never key
// material.
type Session struct {
	Address string `json:"address"`
	Keyfile string `json:"keyfile"`
}

// SaveSession persists the session in the OS credential store. A store
// that refuses the write is treated as the user declining the
// connection.
func SaveSession(s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := keyring.Set(keyringService, keyringUser, string(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return nil
}

// CurrentSession is best-effort and never prompts: it returns false
// when no session exists or the credential store is unreachable.
func CurrentSession() (Session, bool) {
	data, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		return Session{}, false
	}
	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return Session{}, false
	}
	return s, s.Address != ""
}

// CurrentAddress returns the address of the active session, if any.
func CurrentAddress() (string, bool) {
	s, ok := CurrentSession()
	if !ok {
		return "", false
	}
	return s.Address, true
}

// ClearSession forgets the stored session. Missing entries are not an
// error.
func ClearSession() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil && err != keyring.ErrNotFound {
		return err
	}
	return nil
}
