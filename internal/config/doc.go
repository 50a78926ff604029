// Package config loads the deeplink CLI configuration.
//
// The configuration lives in deeplink.json or deeplink.yaml:
//
//	{
//	  "scheme": "yralm",
//	  "host": "",
//	  "hostlessSchemes": ["yral"],
//	  "log": {"level": "info", "format": "text"}
//	}
//
// DEEPLINK_SCHEME, DEEPLINK_HOST and DEEPLINK_LOG_LEVEL override the file.
// They are read from the process environment and from an optional .env file,
// with the environment taking precedence.
//
// # Usage
//
//	cfg, err := config.Resolve(flagPath, ".")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
