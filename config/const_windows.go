package config

const (
	_dir = `C:\ProgramData\gradebook`

	DEFAULT_WORKDIR     = _dir
	DEFAULT_CONFIG      = _dir + `\gradebook-sheets.yaml`
	DEFAULT_CREDENTIALS = _dir + `\sheets\.google\credentials.json`
)
