package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/notekeeper/internal/flagx"
)

var knownFlags = []string{
	"-s", "-f", "-d", "-q", "-m", "-t", "-l",
	"-u", "-p", "-b", "-g", "-e", "-x",
	"-admin-user", "-admin-email", "-admin-password",
}

// parseFlags overlays command-line flags onto config. Unrelated arguments,
// including -c/-config, are filtered out with flagx.FilterArgs first.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("notekeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.Storage, "s", config.Storage, "storage backend (memory, sqlite, postgres, s3)")
	fs.StringVar(&config.SQLitePath, "f", config.SQLitePath, "SQLite database file")
	fs.StringVar(&config.PostgresDSN, "d", config.PostgresDSN, "PostgreSQL DSN")
	flagx.BytesVar(fs, &config.Capacity, "q", "store capacity")
	flagx.BytesVar(fs, &config.MaxUpload, "m", "largest accepted upload")
	fs.DurationVar(&config.OperationTimeout, "t", config.OperationTimeout, "storage operation timeout")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format (text, json, zap)")

	fs.StringVar(&config.S3User, "u", config.S3User, "S3 access key")
	fs.StringVar(&config.S3Password, "p", config.S3Password, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3Endpoint, "e", config.S3Endpoint, "S3 endpoint")
	fs.StringVar(&config.S3Prefix, "x", config.S3Prefix, "S3 key prefix")

	fs.StringVar(&config.AdminUsername, "admin-user", config.AdminUsername, "default administrator username")
	fs.StringVar(&config.AdminEmail, "admin-email", config.AdminEmail, "default administrator email")
	fs.StringVar(&config.AdminPassword, "admin-password", config.AdminPassword, "default administrator password")

	return fs.Parse(flagx.FilterArgs(args, knownFlags))
}
