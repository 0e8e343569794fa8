package config

const (
	_etc = "/usr/local/etc/gradebook"
	_var = "/usr/local/var/gradebook"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CONFIG      = _etc + "/gradebook-sheets.yaml"
	DEFAULT_CREDENTIALS = _etc + "/sheets/.google/credentials.json"
)
