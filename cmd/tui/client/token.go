package client

import (
	"os"
	"path/filepath"
	"strings"
)

func tokenPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "todoapp", "token"), nil
}

// SaveToken persists the session token so the app can resume without a
// fresh login.
func SaveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

// LoadToken returns the saved token, or "" when none exists.
func LoadToken() string {
	path, err := tokenPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func ClearToken() {
	path, err := tokenPath()
	if err != nil {
		return
	}
	_ = os.Remove(path)
}
