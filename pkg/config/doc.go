// Package config loads soapkit suite configuration from YAML files,
// with ${VAR} environment substitution and file discovery.
package config
