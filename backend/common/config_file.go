package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/ini.v1"
)

const defaultConfigTemplate = "PORT=3000\nSQLITE_PATH=data/campus-board.db\nUPLOAD_PATH=data/uploads\nSESSION_SECRET=%s\nGATE_SECRET=%s\nADMIN_PASSWORD=%s\nHUB_PIN=%s\n"

// InitConfig loads the ini config file (creating one with generated secrets on
// first run), applies env overrides and derives the credential hashes. Must run
// before anything touches the gate.
func InitConfig() {
	if err := loadConfigFile(); err != nil {
		FatalLog("failed to load config: " + err.Error())
	}
	applyEnvOverrides()

	if GateSecret == "" {
		FatalLog("GATE_SECRET is not configured")
	}
	if AdminPasswordHash == "" || HubPinHash == "" {
		FatalLog("ADMIN_PASSWORD and HUB_PIN must be configured")
	}
}

func loadConfigFile() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("get user home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".config", "campus-board", "config.ini")
	if err := ensureConfigFile(configPath); err != nil {
		return err
	}

	configMap, err := parseIniConfig(configPath)
	if err != nil {
		return err
	}

	if err := applyConfigMap(configMap); err != nil {
		return fmt.Errorf("apply config file %s: %w", configPath, err)
	}

	return nil
}

func ensureConfigFile(configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory %s: %w", configDir, err)
	}

	configFile, err := os.OpenFile(configPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return fmt.Errorf("create config file %s: %w", configPath, err)
	}
	defer configFile.Close()

	// Generated secrets instead of hard-coded defaults; the operator reads the
	// admin password and hub PIN from this file after first start.
	content := fmt.Sprintf(defaultConfigTemplate,
		uuid.New().String(), uuid.New().String(),
		RandomHex(8), RandomHex(3))
	if _, err := configFile.WriteString(content); err != nil {
		return fmt.Errorf("write default config file %s: %w", configPath, err)
	}

	return nil
}

func parseIniConfig(path string) (map[string]string, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("parse ini config %s: %w", path, err)
	}

	configMap := make(map[string]string)
	for _, section := range cfg.Sections() {
		for _, key := range section.Keys() {
			configKey := strings.ToUpper(strings.TrimSpace(key.Name()))
			if configKey == "" {
				continue
			}
			configMap[configKey] = strings.TrimSpace(key.Value())
		}
	}

	return configMap, nil
}

func applyConfigMap(configMap map[string]string) error {
	if configValue, ok := configMap["SESSION_SECRET"]; ok && configValue != "" {
		SessionSecret = configValue
	}

	if configValue, ok := configMap["SQLITE_PATH"]; ok && configValue != "" {
		SQLitePath = configValue
	}

	if configValue, ok := configMap["UPLOAD_PATH"]; ok && configValue != "" {
		UploadPath = configValue
	}

	if configValue, ok := configMap["STATIC_PATH"]; ok && configValue != "" {
		StaticPath = configValue
	}

	if configValue, ok := configMap["GATE_SECRET"]; ok && configValue != "" {
		GateSecret = configValue
	}

	if configValue, ok := configMap["ADMIN_PASSWORD"]; ok && configValue != "" {
		if err := setAdminPassword(configValue); err != nil {
			return err
		}
	}

	if configValue, ok := configMap["HUB_PIN"]; ok && configValue != "" {
		if err := setHubPin(configValue); err != nil {
			return err
		}
	}

	if configValue, ok := configMap["GATE_TOKEN_HOURS"]; ok && configValue != "" {
		hours, err := strconv.Atoi(configValue)
		if err != nil || hours <= 0 {
			return fmt.Errorf("invalid value for GATE_TOKEN_HOURS: %q", configValue)
		}
		GateTokenDuration = time.Duration(hours) * time.Hour
	}

	if configValue, ok := configMap["MAX_UPLOAD_MB"]; ok && configValue != "" {
		mb, err := strconv.Atoi(configValue)
		if err != nil || mb <= 0 {
			return fmt.Errorf("invalid value for MAX_UPLOAD_MB: %q", configValue)
		}
		MaxUploadBytes = int64(mb) * 1024 * 1024
	}

	if configValue, ok := configMap["PORT"]; ok && configValue != "" {
		portInt, err := strconv.Atoi(configValue)
		if err != nil {
			return fmt.Errorf("invalid value for PORT: %w", err)
		}
		*Port = portInt
	}

	return nil
}

func applyEnvOverrides() {
	if value := os.Getenv("GATE_SECRET"); value != "" {
		GateSecret = value
	}
	if value := os.Getenv("ADMIN_PASSWORD"); value != "" {
		if err := setAdminPassword(value); err != nil {
			FatalLog(err)
		}
	}
	if value := os.Getenv("HUB_PIN"); value != "" {
		if err := setHubPin(value); err != nil {
			FatalLog(err)
		}
	}
}

func setAdminPassword(plain string) error {
	hash, err := Password2Hash(plain)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	AdminPasswordHash = hash
	return nil
}

func setHubPin(plain string) error {
	hash, err := Password2Hash(plain)
	if err != nil {
		return fmt.Errorf("hash hub pin: %w", err)
	}
	HubPinHash = hash
	return nil
}
