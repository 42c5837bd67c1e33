// Package config manages the simplr configuration file.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/simplr/config.yaml or $HOME/.config/simplr/config.yaml
//   - macOS: $HOME/.config/simplr/config.yaml
//   - Windows: %LOCALAPPDATA%\simplr\config.yaml
//
// A path ending in .toml is read and written as TOML instead of YAML.
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	theme, err := cfg.Theme.Resolve()
//
// A missing file is not an error; Load returns Default().
package config
