// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for non-zero fields):
//  1. Environment variables, where a .env file fills in unset variables
//  2. Command-line flags
//  3. JSON config file
//
// Zero-valued settings are then filled with defaults and the result is
// validated. The main entry point is [GetStructuredConfig].
package config
