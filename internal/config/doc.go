// Package config loads runtime configuration for notekeeper.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJSON) selected via -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string   storage backend: memory, sqlite, postgres or s3
//	-f string   SQLite database file
//	-d string   PostgreSQL DSN
//	-q size     store capacity, e.g. "5MiB" (0 = unbounded)
//	-m size     largest accepted upload, e.g. "4MiB"
//	-t dur      timeout of a single storage operation, e.g. "5s"
//	-l string   log format: text, json or zap
//	-u string   S3 access key
//	-p string   S3 secret key
//	-b string   S3 bucket
//	-g string   S3 region
//	-e string   S3 endpoint (path-style addressing when set)
//	-x string   S3 key prefix
//	-admin-user, -admin-email, -admin-password
//	            credentials of the administrator created on first start
//
// # JSON schema
//
// Durations use timex.Duration ("3s" or integer nanoseconds) and sizes are
// humanized strings or plain byte counts. Absent keys keep earlier values:
//
//	{
//	  "storage": "sqlite",
//	  "sqlite_path": "notekeeper.db",
//	  "capacity": "5MiB",
//	  "max_upload": "4MiB",
//	  "operation_timeout": "5s",
//	  "log_format": "json"
//	}
package config
