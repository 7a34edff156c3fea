// Package config loads and watches the keyecho configuration file.
//
// Settings live in a TOML file under the per-user configuration
// directory. A missing file is not an error; defaults apply. The watcher
// reloads the file when it changes on disk so overlay and playback
// settings take effect without a restart.
package config
