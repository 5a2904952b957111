// Package notifier delivers platform-level alerts to the focusflow tray
// companion over its local webhook. When the tray is not running every
// call degrades to a no-op error the caller can ignore.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess

	ErrTrayNotRunning = errors.New("focusflow tray is not running")
)

// Tray is a platform alert sink backed by the tray webhook
type Tray struct {
	client *http.Client
}

// WebhookPayload is the body posted to the tray. Tag lets the tray replace
// an earlier alert carrying the same tag instead of stacking a duplicate.
type WebhookPayload struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	Tag        string `json:"tag,omitempty"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Tray {
	return &Tray{client: &http.Client{Timeout: 5 * time.Second}}
}

// RequestPermission reports whether the tray can currently receive alerts
func (n *Tray) RequestPermission() bool {
	_, _, err := n.endpoint()
	if err != nil {
		logger.Debug("Platform alerts unavailable", "error", err)
		return false
	}
	return true
}

// Show posts one alert to the tray
func (n *Tray) Show(title, body, tag string) error {
	port, secret, err := n.endpoint()
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Title:      title,
		Text:       body,
		Tag:        tag,
		DurationMs: constants.NotificationDurationMs,
	}
	return sendNotification(n.client, port, secret, payload)
}

func (n *Tray) endpoint() (string, string, error) {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return "", "", err
	}
	return findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
}

// GetTrayAppConfigDir returns the directory holding the tray lockfile. The
// tray's settings.json may move it with "lockfile_dir".
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil {
		if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
			return *store.Settings.LockfileDir, nil
		}
	}
	return trayConfigDir, nil
}

// findAndValidateTrayProcess parses a "port|pid|secret" lockfile and checks
// that pid belongs to a live tray process.
func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := strings.TrimSpace(parts[0])
	if port == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutablePrefix, process.Executable())
	}

	return port, secret, nil
}

func sendNotification(client *http.Client, port, secret string, payload WebhookPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%s", port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode alert: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to build alert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Focusflow-Secret", secret)

	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach tray: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("alert failed with status %d: %s", res.StatusCode, string(body))
}
