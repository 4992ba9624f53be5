// Package config provides configuration management for the plantings process.
//
// Configuration is loaded from environment variables and validated on startup.
// It controls how the document is delivered and logged, never what is
// rendered.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg)
package config
