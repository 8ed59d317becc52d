package config

const (
	_etc = `C:\ProgramData\uhppoted`
	_var = `C:\ProgramData\uhppoted`

	DEFAULT_CONFIG      = _etc + `\sheets\uhppoted-sheets.yaml`
	DEFAULT_WORKDIR     = _var + `\sheets`
	DEFAULT_CREDENTIALS = _etc + `\sheets\.google\credentials.json`
	DEFAULT_RATE_LIMIT  = 60
)
