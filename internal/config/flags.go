package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
)

// NetAddress is a flag.Value for the listen address. Hosts other than
// "localhost" must be IP literals.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags reads command-line overrides from args (normally os.Args[1:]).
// Unset flags leave zero values so lower-priority sources can fill them.
//
//	-a                server address host:port
//	-storage          storage mode (postgres, sqlite, file)
//	-d                database DSN
//	-f                data directory of the file storage
//	-c, -config       JSON config file
//	-log-level        minimum log level
//	-token-sign-key   token signing key
//	-token-issuer     token issuer
//	-token-duration   session token lifetime
//	-request-timeout  per-request timeout
//	-otp-ttl          OTP validity window
//	-otp-max-attempts codes accepted per OTP
//	-otp-every-login  require an OTP on every login
//	-protect-admin    require an admin token on employee and audit routes
//	-email-mode       email delivery mode (log, smtp, http)
//	-redis-address    redis address for login throttling
func ParseFlags(args []string) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	var addr NetAddress

	fs := flag.NewFlagSet("go-erp-auth", flag.ContinueOnError)
	fs.Var(&addr, "a", "Net address host:port")

	fs.StringVar(&cfg.Storage.Mode, "storage", "", "Storage mode: postgres, sqlite or file")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.Files.DataDir, "f", "", "File storage data directory")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Minimum log level: debug, info, warn, error")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&cfg.App.OTPTTL, "otp-ttl", 0, "OTP validity window (e.g., 10m)")
	fs.IntVar(&cfg.App.OTPMaxAttempts, "otp-max-attempts", 0, "Codes accepted per OTP")
	fs.BoolVar(&cfg.App.OTPOnEveryLogin, "otp-every-login", false, "Require an OTP on every login")
	fs.BoolVar(&cfg.App.ProtectAdminRoutes, "protect-admin", false, "Require an admin token on employee and audit routes")

	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&cfg.Adapter.Email.Mode, "email-mode", "", "Email delivery mode: log, smtp or http")
	fs.StringVar(&cfg.Adapter.Redis.Address, "redis-address", "", "Redis address for login throttling")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = addr.String()
	return cfg, nil
}

func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("need address in a form `host:port`: %w", err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", rawPort, err)
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return fmt.Errorf("incorrect IP-address provided: %q", host)
	}

	a.Host, a.Port = host, port
	return nil
}
