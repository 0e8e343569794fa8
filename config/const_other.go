//go:build !linux && !darwin && !windows

package config

const (
	_etc = "/usr/local/etc/gradebook"
	_var = "/var/db/gradebook"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CONFIG      = _etc + "/gradebook-sheets.yaml"
	DEFAULT_CREDENTIALS = _etc + "/sheets/.google/credentials.json"
)
