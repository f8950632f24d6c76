package config

import (
	"encoding/json"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	Port      string
	DataDir   string
	UploadDir string
	BaseURL   string
	BackupDir string
	// BackupSchedule is a cron expression for the data snapshot job
	BackupSchedule string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		Port:           getEnv("PORT", "5000"),
		DataDir:        getEnv("DATA_DIR", "data"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		BaseURL:        os.Getenv("BASE_URL"),
		BackupDir:      os.Getenv("BACKUP_DIR"),
		BackupSchedule: getEnv("BACKUP_SCHEDULE", "0 * * * *"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// given message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	b, _ := json.Marshal(map[string]string{"error": message})
	w.Write(b)
}
