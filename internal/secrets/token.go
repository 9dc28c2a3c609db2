package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app's secrets in the OS keychain.
	KeyringService = "jobview"

	AdminTokenAccount = "jobview:admin-token"

	// AdminTokenEnv is consulted when the keychain has no token (headless
	// hosts, containers).
	AdminTokenEnv = "JOBVIEW_ADMIN_TOKEN"
)

var ErrNoAdminToken = errors.New("admin token not found (set it in keychain or via " + AdminTokenEnv + ")")

func GetAdminToken() (string, error) {
	// 1) Keyring first (recommended)
	tok, err := keyring.Get(KeyringService, AdminTokenAccount)
	if err == nil && strings.TrimSpace(tok) != "" {
		return tok, nil
	}

	// 2) Environment
	if tok := strings.TrimSpace(os.Getenv(AdminTokenEnv)); tok != "" {
		return tok, nil
	}

	return "", ErrNoAdminToken
}

func SetAdminToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	if len(token) < 16 {
		return errors.New("token must be at least 16 characters")
	}
	return keyring.Set(KeyringService, AdminTokenAccount, token)
}

func DeleteAdminToken() error {
	err := keyring.Delete(KeyringService, AdminTokenAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// RandomToken returns n random bytes, hex encoded.
func RandomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
