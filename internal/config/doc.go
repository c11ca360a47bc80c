// Package config loads the shiftdeck configuration file.
//
// The file is YAML, stored at $XDG_CONFIG_HOME/shiftdeck/config.yaml or
// $HOME/.config/shiftdeck/config.yaml. A missing file means defaults, and
// any key left out of the file keeps its default:
//
//	version: 1
//	timeshift:
//	  binary: timeshift
//	  sudo: true
//	  sudo_binary: sudo
//	  scripted: true
//	ui:
//	  poll_interval: 50ms
//	  comment_limit: 128
//	logging:
//	  level: info
//	  file: /home/me/.config/shiftdeck/shiftdeck.log
//
// Command-line flags override file values; see cmd/shiftdeck.
package config
