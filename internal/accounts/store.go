// Package accounts implements AccountStore: user records, the current
// session and the at-least-one-administrator rule, all kept in the same
// key-value store as the notes.
//
// Passwords are stored as an argon2id-derived verifier with a per-account
// salt. Authorization is not checked here; callers decide who may promote,
// revoke or manage files by looking at the session's admin flag.
package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/cryptox"
	"github.com/dmitrijs2005/notekeeper/internal/kvstore"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/google/uuid"
)

const (
	// UsersKey holds the JSON array of accounts.
	UsersKey = "users"

	// SessionKey holds the current session, if any.
	SessionKey = "user"
)

var (
	newID = uuid.NewString
	now   = time.Now
)

type AccountStore struct {
	kv     kvstore.Store
	logger logging.Logger
	admin  AdminDefaults
}

// NewAccountStore returns a store over kv. admin is used by BootstrapAdmin.
func NewAccountStore(kv kvstore.Store, logger logging.Logger, admin AdminDefaults) *AccountStore {
	return &AccountStore{kv: kv, logger: logger.With("component", "accounts"), admin: admin}
}

// BootstrapAdmin makes sure at least one administrator exists. It reports
// whether it had to create (or promote) one and is safe to call on every
// start.
func (s *AccountStore) BootstrapAdmin(ctx context.Context) (bool, error) {
	records, err := s.readAccounts(ctx)
	if err != nil {
		return false, err
	}
	if countAdmins(records) > 0 {
		return false, nil
	}

	if i := findByUsername(records, s.admin.Username); i >= 0 {
		records[i].IsAdmin = true
		s.logger.Warn(ctx, "no administrator found, promoting existing account", "username", s.admin.Username)
	} else {
		rec, err := newRecord(s.admin.Username, s.admin.Email, s.admin.Password, true)
		if err != nil {
			return false, err
		}
		records = append(records, rec)
		s.logger.Info(ctx, "created default administrator", "username", rec.Username)
	}

	if err := s.writeAccounts(ctx, records); err != nil {
		return false, err
	}
	return true, nil
}

// Register creates a non-admin account. Usernames are unique and compared
// case-sensitively.
func (s *AccountStore) Register(ctx context.Context, username, email, password string) (*Account, error) {
	records, err := s.readAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if findByUsername(records, username) >= 0 {
		return nil, common.ErrDuplicateUsername
	}

	rec, err := newRecord(username, email, password, false)
	if err != nil {
		return nil, err
	}
	if err := s.writeAccounts(ctx, append(records, rec)); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "account registered", "username", username)
	acc := rec.Account
	return &acc, nil
}

// Authenticate checks the credentials and on success makes the account the
// current session. A failed attempt leaves any existing session in place.
func (s *AccountStore) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	records, err := s.readAccounts(ctx)
	if err != nil {
		return nil, err
	}

	i := findByUsername(records, username)
	if i < 0 {
		// keep timing equal to a real check
		cryptox.CheckPassword([]byte(password), cryptox.NewSalt(), make([]byte, 32))
		return nil, common.ErrInvalidCredentials
	}
	if !cryptox.CheckPassword([]byte(password), records[i].Salt, records[i].Verifier) {
		return nil, common.ErrInvalidCredentials
	}

	session := Session{Account: records[i].Account, StartedAt: now().UTC()}
	if err := s.writeSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "session started", "username", username)
	return &session, nil
}

// EndSession clears the current session.
func (s *AccountStore) EndSession(ctx context.Context) error {
	if err := s.kv.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}
	return nil
}

// CurrentSession returns the persisted session or nil when nobody is logged
// in. An unreadable session is discarded.
func (s *AccountStore) CurrentSession(ctx context.Context) (*Session, error) {
	raw, ok, err := s.kv.Get(ctx, SessionKey)
	if err != nil {
		return nil, fmt.Errorf("error loading session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil || session.ID == "" || session.Username == "" {
		s.logger.Warn(ctx, "discarding unreadable session")
		if err := s.EndSession(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &session, nil
}

// PromoteAdmin grants administrator rights. Unknown usernames are ignored.
func (s *AccountStore) PromoteAdmin(ctx context.Context, username string) error {
	return s.setAdmin(ctx, username, true)
}

// RevokeAdmin removes administrator rights. It fails with
// common.ErrLastAdminProtected when username is the only administrator.
// Unknown usernames are ignored.
func (s *AccountStore) RevokeAdmin(ctx context.Context, username string) error {
	return s.setAdmin(ctx, username, false)
}

// ListAdmins returns every administrator in registration order.
func (s *AccountStore) ListAdmins(ctx context.Context) ([]Account, error) {
	records, err := s.readAccounts(ctx)
	if err != nil {
		return nil, err
	}
	admins := make([]Account, 0, 1)
	for _, r := range records {
		if r.IsAdmin {
			admins = append(admins, r.Account)
		}
	}
	return admins, nil
}

// IsAdmin reports whether username exists and is an administrator.
func (s *AccountStore) IsAdmin(ctx context.Context, username string) (bool, error) {
	records, err := s.readAccounts(ctx)
	if err != nil {
		return false, err
	}
	i := findByUsername(records, username)
	return i >= 0 && records[i].IsAdmin, nil
}

// HasAccount reports whether username is registered.
func (s *AccountStore) HasAccount(ctx context.Context, username string) (bool, error) {
	records, err := s.readAccounts(ctx)
	if err != nil {
		return false, err
	}
	return findByUsername(records, username) >= 0, nil
}

func (s *AccountStore) setAdmin(ctx context.Context, username string, admin bool) error {
	records, err := s.readAccounts(ctx)
	if err != nil {
		return err
	}

	i := findByUsername(records, username)
	if i < 0 || records[i].IsAdmin == admin {
		return nil
	}
	if !admin && countAdmins(records) == 1 {
		return common.ErrLastAdminProtected
	}

	records[i].IsAdmin = admin
	if err := s.writeAccounts(ctx, records); err != nil {
		return err
	}
	s.logger.Info(ctx, "administrator rights changed", "username", username, "admin", admin)

	// the change is already stored; a stale session is only logged
	if err := s.syncSession(ctx, records[i].Account); err != nil {
		s.logger.Warn(ctx, "error refreshing session after admin change", "username", username, "error", err)
	}
	return nil
}

// syncSession refreshes the cached session when it belongs to acc.
func (s *AccountStore) syncSession(ctx context.Context, acc Account) error {
	session, err := s.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if session == nil || session.ID != acc.ID {
		return nil
	}
	session.Account = acc
	return s.writeSession(ctx, *session)
}

// readAccounts loads the account list. Entries without id or username are
// dropped; a value that is not a JSON array is reported as
// common.ErrCorruptAccounts so that it is never overwritten.
func (s *AccountStore) readAccounts(ctx context.Context) ([]record, error) {
	raw, ok, err := s.kv.Get(ctx, UsersKey)
	if err != nil {
		return nil, fmt.Errorf("error loading accounts: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []record{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorruptAccounts, err)
	}

	records := make([]record, 0, len(items))
	for i, item := range items {
		var r record
		if err := json.Unmarshal(item, &r); err != nil || r.ID == "" || r.Username == "" {
			s.logger.Warn(ctx, "dropping malformed account entry", "position", i)
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *AccountStore) writeAccounts(ctx context.Context, records []record) error {
	b, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("error encoding accounts: %w", err)
	}
	if err := s.kv.Set(ctx, UsersKey, string(b)); err != nil {
		return fmt.Errorf("error storing accounts: %w", err)
	}
	return nil
}

func (s *AccountStore) writeSession(ctx context.Context, session Session) error {
	b, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}
	if err := s.kv.Set(ctx, SessionKey, string(b)); err != nil {
		return fmt.Errorf("error storing session: %w", err)
	}
	return nil
}

func newRecord(username, email, password string, admin bool) (record, error) {
	if username == "" || password == "" {
		return record{}, common.ErrIncompleteAccount
	}
	salt, verifier := cryptox.NewVerifier([]byte(password))
	return record{
		Account: Account{
			ID:        newID(),
			Username:  username,
			Email:     email,
			IsAdmin:   admin,
			CreatedAt: now().UTC(),
		},
		Salt:     salt,
		Verifier: verifier,
	}, nil
}

func findByUsername(records []record, username string) int {
	for i := range records {
		if records[i].Username == username {
			return i
		}
	}
	return -1
}

func countAdmins(records []record) int {
	n := 0
	for _, r := range records {
		if r.IsAdmin {
			n++
		}
	}
	return n
}
