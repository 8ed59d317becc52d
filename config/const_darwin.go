package config

const (
	_etc = "/usr/local/etc/com.github.uhppoted"
	_var = "/usr/local/var/com.github.uhppoted"

	DEFAULT_CONFIG      = _etc + "/sheets/uhppoted-sheets.yaml"
	DEFAULT_WORKDIR     = _var + "/sheets"
	DEFAULT_CREDENTIALS = _etc + "/sheets/.google/credentials.json"
	DEFAULT_RATE_LIMIT  = 60
)
