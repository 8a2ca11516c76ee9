package market

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/ubu-lite/internal/models"
)

// Register creates an account. Creatives get an empty profile.
func (m *Market) Register(username, email, password string, role models.Role) (models.User, error) {
	if !role.Registrable() {
		return models.User{}, invalid("role must be creative or client")
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, invalid("username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.accountByName(username) != nil {
		return models.User{}, invalid("username already exists")
	}
	return m.createAccount(username, strings.TrimSpace(email), role, hash), nil
}

func (m *Market) createAccount(username, email string, role models.Role, hash []byte) models.User {
	u := models.User{ID: m.next("user"), Username: username, Email: email, Role: role}
	m.accounts = append(m.accounts, &account{user: u, hash: hash})
	if role == models.RoleCreative {
		m.profiles = append(m.profiles, &models.Creative{ID: m.next("profile"), User: u})
	}
	return u
}

// Authenticate checks a username and password.
func (m *Market) Authenticate(username, password string) (models.User, error) {
	m.mu.Lock()
	acc := m.accountByName(strings.TrimSpace(username))
	m.mu.Unlock()

	// simplejwt's wording for both unknown user and wrong password.
	denied := &Error{Kind: KindUnauthorized, Detail: "No active account found with the given credentials"}
	if acc == nil || len(acc.hash) == 0 {
		return models.User{}, denied
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return models.User{}, denied
	}
	return acc.user, nil
}

// User returns the account with id.
func (m *Market) User(id int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc := find(m.accounts, func(a *account) bool { return a.user.ID == id })
	if acc == nil {
		return models.User{}, &Error{Kind: KindUnauthorized, Detail: "User not found"}
	}
	return acc.user, nil
}

func (m *Market) accountByName(username string) *account {
	return find(m.accounts, func(a *account) bool { return a.user.Username == username })
}

// ensureAccount returns the named account, creating a password-less one when missing.
func (m *Market) ensureAccount(username string, role models.Role) models.User {
	if acc := m.accountByName(username); acc != nil {
		return acc.user
	}
	return m.createAccount(username, "", role, nil)
}
