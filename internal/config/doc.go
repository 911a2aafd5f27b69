// Package config loads selkit settings from TOML or YAML files.
//
// The file format is chosen by extension (.toml, .yaml, .yml). A missing
// file is not an error: Load returns the defaults. Keys the Config struct
// does not know are rejected so typos surface as a ParseError.
//
// Watch reloads the file whenever it changes on disk.
package config
