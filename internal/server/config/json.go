package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/cliniclink/cliniclink/internal/flagx"
	"github.com/cliniclink/cliniclink/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so intervals can be given as strings like "24h" or as
// integer nanoseconds.
type JsonConfig struct {
	EndpointAddr            string         `json:"endpoint_addr"`
	DatabaseDSN             string         `json:"database_dsn"`
	RedisAddr               string         `json:"redis_addr"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity"`
	MFACodeTTL              timex.Duration `json:"mfa_code_ttl"`
	MFAMaxAttempts          int            `json:"mfa_max_attempts"`
	S3AccessKey             string         `json:"s3_access_key"`
	S3SecretKey             string         `json:"s3_secret_key"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
}

// parseJson overlays Config with values loaded from a JSON file selected by
// the -c/-config flags. Missing flag means no JSON is loaded. Read or
// unmarshal errors panic (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.EndpointAddr = jc.EndpointAddr
	cfg.DatabaseDSN = jc.DatabaseDSN
	cfg.RedisAddr = jc.RedisAddr
	cfg.SecretKey = jc.SecretKey
	cfg.SessionValidityDuration = time.Duration(jc.SessionValidityDuration.Duration)
	cfg.MFACodeTTL = time.Duration(jc.MFACodeTTL.Duration)
	cfg.MFAMaxAttempts = jc.MFAMaxAttempts
	cfg.S3AccessKey = jc.S3AccessKey
	cfg.S3SecretKey = jc.S3SecretKey
	cfg.S3Bucket = jc.S3Bucket
	cfg.S3Region = jc.S3Region
	cfg.S3BaseEndpoint = jc.S3BaseEndpoint
}
