package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		OTPLength          int      `json:"otp_length"`
		OTPTTL             Duration `json:"otp_ttl"`
		OTPMaxAttempts     int      `json:"otp_max_attempts"`
		OTPOnEveryLogin    bool     `json:"otp_on_every_login"`
		AuditRetention     int      `json:"audit_retention"`
		TokenSignKey       string   `json:"token_sign_key"`
		TokenIssuer        string   `json:"token_issuer"`
		TokenDuration      Duration `json:"token_duration"`
		ProtectAdminRoutes bool     `json:"protect_admin_routes"`
		LogLevel           string   `json:"log_level"`
		Version            string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		Mode string `json:"mode"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			DataDir string `json:"data_dir"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		CORSOrigins    []string `json:"cors_origins"`
		RateLimit      int      `json:"rate_limit"`
	} `json:"server,omitempty"`

	Adapter struct {
		Email struct {
			Mode           string   `json:"mode"`
			From           string   `json:"from"`
			SMTPHost       string   `json:"smtp_host"`
			SMTPPort       int      `json:"smtp_port"`
			SMTPUser       string   `json:"smtp_user"`
			SMTPPassword   string   `json:"smtp_password"`
			APIURL         string   `json:"api_url"`
			APIKey         string   `json:"api_key"`
			RequestTimeout Duration `json:"request_timeout"`
		} `json:"email,omitempty"`

		Redis struct {
			Address          string   `json:"address"`
			Password         string   `json:"password"`
			DB               int      `json:"db"`
			MaxLoginAttempts int      `json:"max_login_attempts"`
			LoginWindow      Duration `json:"login_window"`
		} `json:"redis,omitempty"`
	} `json:"adapter,omitempty"`

	Workers struct {
		OTPSweepInterval       Duration `json:"otp_sweep_interval"`
		AuditRetentionInterval Duration `json:"audit_retention_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			OTPLength:          jsonCfg.App.OTPLength,
			OTPTTL:             time.Duration(jsonCfg.App.OTPTTL),
			OTPMaxAttempts:     jsonCfg.App.OTPMaxAttempts,
			OTPOnEveryLogin:    jsonCfg.App.OTPOnEveryLogin,
			AuditRetention:     jsonCfg.App.AuditRetention,
			TokenSignKey:       jsonCfg.App.TokenSignKey,
			TokenIssuer:        jsonCfg.App.TokenIssuer,
			TokenDuration:      time.Duration(jsonCfg.App.TokenDuration),
			ProtectAdminRoutes: jsonCfg.App.ProtectAdminRoutes,
			LogLevel:           jsonCfg.App.LogLevel,
			Version:            jsonCfg.App.Version,
		},
		Storage: Storage{
			Mode: jsonCfg.Storage.Mode,
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				DataDir: jsonCfg.Storage.Files.DataDir,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			CORSOrigins:    jsonCfg.Server.CORSOrigins,
			RateLimit:      jsonCfg.Server.RateLimit,
		},
		Adapter: Adapter{
			Email: Email{
				Mode:           jsonCfg.Adapter.Email.Mode,
				From:           jsonCfg.Adapter.Email.From,
				SMTPHost:       jsonCfg.Adapter.Email.SMTPHost,
				SMTPPort:       jsonCfg.Adapter.Email.SMTPPort,
				SMTPUser:       jsonCfg.Adapter.Email.SMTPUser,
				SMTPPassword:   jsonCfg.Adapter.Email.SMTPPassword,
				APIURL:         jsonCfg.Adapter.Email.APIURL,
				APIKey:         jsonCfg.Adapter.Email.APIKey,
				RequestTimeout: time.Duration(jsonCfg.Adapter.Email.RequestTimeout),
			},
			Redis: Redis{
				Address:          jsonCfg.Adapter.Redis.Address,
				Password:         jsonCfg.Adapter.Redis.Password,
				DB:               jsonCfg.Adapter.Redis.DB,
				MaxLoginAttempts: jsonCfg.Adapter.Redis.MaxLoginAttempts,
				LoginWindow:      time.Duration(jsonCfg.Adapter.Redis.LoginWindow),
			},
		},
		Workers: Workers{
			OTPSweepInterval:       time.Duration(jsonCfg.Workers.OTPSweepInterval),
			AuditRetentionInterval: time.Duration(jsonCfg.Workers.AuditRetentionInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
