// Package config loads, normalizes, and validates tcloud configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TCLOUD_ACCESS_KEY and TCLOUD_SECRET_KEY. The Config type centralizes the API
// credentials, upload defaults and logging options the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
