package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Manifest is the on-disk plugin manifest (plugin.toml), describing how the
// plugin attaches to its host.
//
//nolint:tagliatelle // manifest keys use snake_case
type Manifest struct {
	Name       string `toml:"name"`
	SocketPath string `toml:"socket_path"`
}

// LoadManifest reads a plugin manifest from path.
//
// Missing socket_path defaults to DefaultSocketPath; a missing name is an
// error, since the host identifies plugins by name.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return Manifest{}, fmt.Errorf("load manifest %s: %w", path, err)
	}

	if m.Name == "" {
		return Manifest{}, fmt.Errorf("manifest %s: missing plugin name", path)
	}

	if m.SocketPath == "" {
		m.SocketPath = DefaultSocketPath
	}

	return m, nil
}

// Apply merges the manifest into opts, without overriding values the caller
// set explicitly.
func (m Manifest) Apply(opts *Options) {
	if opts.PluginName == "" {
		opts.PluginName = m.Name
	}

	if opts.SocketPath == "" {
		opts.SocketPath = m.SocketPath
	}
}
