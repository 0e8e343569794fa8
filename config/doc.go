/*
Package config loads the gradebook-sheets configuration.

The configuration is a YAML file:

	spreadsheet: "https://docs.google.com/spreadsheets/d/1qXksRkrkK1CRrwUNEnatiWzxr05IZR79r9LZcGa9VP4"
	credentials: "/usr/local/etc/gradebook/sheets/.google/credentials.json"
	workdir: "/usr/local/var/gradebook"
	input-range: "B4:F27"
	output-range: "G4:H27"
	value-input-option: RAW
	clear-output: false
	log-range: "Log!A1:H"
	metrics: "/var/lib/node_exporter/textfile/gradebook.prom"
	rules:
	  absence-limit: 15
	  fail-below: 50
	  pass-at: 70
	  exam-target: 100

GRADEBOOK_SPREADSHEET, GRADEBOOK_CREDENTIALS, GRADEBOOK_WORKDIR and
GRADEBOOK_METRICS override the file, and may also be set in a .env file.
*/
package config
