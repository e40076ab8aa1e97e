package common

import (
	"flag"
	"os"
	"strconv"
	"time"
)

var Version = "v0.1.0"

var (
	Port         = flag.Int("port", 3000, "the listening port")
	PrintVersion = flag.Bool("version", false, "print version and exit")
	PrintHelp    = flag.Bool("help", false, "print help and exit")
	LogDir       = flag.String("log-dir", "", "specify the log directory")
)

var (
	SQLitePath = "data/campus-board.db"
	UploadPath = "data/uploads"
	StaticPath = "static"

	SessionSecret = "random_string"
	GateSecret    = "" // HS256 signing key for gate tokens, filled from config

	// Bcrypt hashes of the two shared gate credentials. Filled at startup
	// from ADMIN_PASSWORD / HUB_PIN so the plain secrets never live in memory
	// longer than config load.
	AdminPasswordHash = ""
	HubPinHash        = ""

	GateTokenDuration = 12 * time.Hour
)

// Upload limits. MaxUploadBytes is enforced at the transport boundary before
// any handler touches the body.
var (
	MaxUploadBytes int64 = 16 * 1024 * 1024
)

var ItemsPerPage = 10

var (
	RedisEnabled = true
	SystemName   = "Campus Board"
)

// Rate limit knobs, same shape as the gin template this project grew from.
var (
	GlobalApiRateLimitNum      = 180
	GlobalApiRateLimitDuration int64 = 3 * 60

	CriticalRateLimitNum      = 20
	CriticalRateLimitDuration int64 = 20 * 60
)

func init() {
	if os.Getenv("SESSION_SECRET") != "" {
		SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if os.Getenv("SQLITE_PATH") != "" {
		SQLitePath = os.Getenv("SQLITE_PATH")
	}
	if os.Getenv("UPLOAD_PATH") != "" {
		UploadPath = os.Getenv("UPLOAD_PATH")
	}
	if os.Getenv("STATIC_PATH") != "" {
		StaticPath = os.Getenv("STATIC_PATH")
	}
	if os.Getenv("MAX_UPLOAD_MB") != "" {
		if mb, err := strconv.Atoi(os.Getenv("MAX_UPLOAD_MB")); err == nil && mb > 0 {
			MaxUploadBytes = int64(mb) * 1024 * 1024
		}
	}
}

func PrintHelpMessage() {
	println(SystemName + " " + Version)
	println("Usage: campus-board [--port <port>] [--log-dir <log dir>]")
}
