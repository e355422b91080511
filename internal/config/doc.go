// Package config provides configuration management for toolkitlog using Viper.
//
// # Configuration File
//
// The default location is <ConfigHome>/toolkitlog/config.yaml:
//
//	version: 1
//	level: info              # debug, verbose, info, warn, error
//	log_file: ~/.local/state/toolkitlog/toolkit.log
//	console: true            # mirror log lines to the terminal
//	color: auto              # auto, always, never
//
// Every key can be overridden with a TOOLKITLOG_ environment variable, for
// example TOOLKITLOG_LEVEL=debug.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	if errs := config.Validate(cfg); len(errs) > 0 {
//	    // report errs
//	}
package config
