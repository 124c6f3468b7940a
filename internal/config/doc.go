// Package config loads the process configuration.
//
// Values are layered: defaults in code, an optional YAML file, an optional
// .env file and finally the process environment. Provider sub-configs live
// next to their packages and are embedded here, so each package documents
// its own variables.
//
//	cfg, err := config.Load(configPath)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Masked().EmailJS.PrivateKey) // "abcd****"
package config
