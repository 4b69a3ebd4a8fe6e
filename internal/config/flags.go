package config

import (
	"flag"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database DSN (SQLite file path)
//	-c/-config json file path with configs
//	-currency currency label for cost figures
//	-log-file log file path
//	-log-level log level (debug, info, warn, error)
//	-export write a snapshot to the given path ("-" for stdout) and exit
//	-export-format snapshot format: json or yaml
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var jsonConfigPath string
	var currency string
	var logFile, logLevel string
	var exportPath, exportFormat string

	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&currency, "currency", "", "Currency label for cost figures")
	flag.StringVar(&logFile, "log-file", "", "Log file path")
	flag.StringVar(&logLevel, "log-level", "", "Log level")
	flag.StringVar(&exportPath, "export", "", "Write a snapshot to this path and exit (- for stdout)")
	flag.StringVar(&exportFormat, "export-format", "", "Snapshot format: json or yaml")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Currency: currency,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Log: Log{
			File:  logFile,
			Level: logLevel,
		},
		Export: Export{
			Path:   exportPath,
			Format: exportFormat,
		},
		JSONFilePath: jsonConfigPath,
	}
}
