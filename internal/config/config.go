package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	LogFile      string
	MaxUploadMB  int

	// Firestore; vazio liga o store em memória (dev/testes).
	FirestoreProject  string
	FirestoreDatabase string

	// Token do administrador padrão criado quando a coleção não tem admin.
	AdminToken string

	// Endpoint da tabela remota paginada (POST /ingest/remote).
	RemoteTableURL string

	SessionTTL time.Duration
}

func Load() Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "64"))
	ttlMin, _ := strconv.Atoi(getenv("SESSION_TTL_MIN", "240"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:              getenv("HOST", "127.0.0.1"),
		Port:              port,
		AllowOrigins:      origins,
		LogLevel:          getenv("LOG_LEVEL", "info"),
		LogFile:           getenv("LOG_FILE", "logs/mixvision-service.log"),
		MaxUploadMB:       mb,
		FirestoreProject:  os.Getenv("FIRESTORE_PROJECT"),
		FirestoreDatabase: getenv("FIRESTORE_DATABASE", "(default)"),
		AdminToken:        getenv("ADMIN_TOKEN", "admin-123"),
		RemoteTableURL:    os.Getenv("REMOTE_TABLE_URL"),
		SessionTTL:        time.Duration(ttlMin) * time.Minute,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
