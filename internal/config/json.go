package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/notekeeper/internal/flagx"
	"github.com/dmitrijs2005/notekeeper/internal/timex"
	"github.com/dustin/go-humanize"
)

// JsonConfig is the on-disk shape of the configuration file. Pointer
// fields tell an absent key from a zero value.
type JsonConfig struct {
	Storage          *string         `json:"storage"`
	SQLitePath       *string         `json:"sqlite_path"`
	PostgresDSN      *string         `json:"postgres_dsn"`
	S3User           *string         `json:"s3_user"`
	S3Password       *string         `json:"s3_password"`
	S3Bucket         *string         `json:"s3_bucket"`
	S3Region         *string         `json:"s3_region"`
	S3Endpoint       *string         `json:"s3_endpoint"`
	S3Prefix         *string         `json:"s3_prefix"`
	Capacity         *Size           `json:"capacity"`
	MaxUpload        *Size           `json:"max_upload"`
	OperationTimeout *timex.Duration `json:"operation_timeout"`
	LogFormat        *string         `json:"log_format"`
	AdminUsername    *string         `json:"admin_username"`
	AdminEmail       *string         `json:"admin_email"`
	AdminPassword    *string         `json:"admin_password"`
}

// Size is a byte count written either as a number or as a humanized
// string such as "5MiB".
type Size int64

func (s *Size) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*s = Size(value)
		return nil
	case string:
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			*s = Size(n)
			return nil
		}
		n, err := humanize.ParseBytes(value)
		if err != nil {
			return fmt.Errorf("invalid size %q: %w", value, err)
		}
		*s = Size(n)
		return nil
	default:
		return fmt.Errorf("invalid size %s", string(b))
	}
}

// parseJSON overlays the file named by -c/-config onto config. Without
// such a flag nothing is loaded.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	setString(&config.Storage, c.Storage)
	setString(&config.SQLitePath, c.SQLitePath)
	setString(&config.PostgresDSN, c.PostgresDSN)
	setString(&config.S3User, c.S3User)
	setString(&config.S3Password, c.S3Password)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3Endpoint, c.S3Endpoint)
	setString(&config.S3Prefix, c.S3Prefix)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.AdminUsername, c.AdminUsername)
	setString(&config.AdminEmail, c.AdminEmail)
	setString(&config.AdminPassword, c.AdminPassword)

	if c.Capacity != nil {
		config.Capacity = int64(*c.Capacity)
	}
	if c.MaxUpload != nil {
		config.MaxUpload = int64(*c.MaxUpload)
	}
	if c.OperationTimeout != nil {
		config.OperationTimeout = c.OperationTimeout.Duration
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
