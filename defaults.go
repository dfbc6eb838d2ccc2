// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package kommons

const (
	// PluginPathEnv names the environment variable with additional, colon
	// separated plugin module search paths.
	PluginPathEnv = "KOMMONS_PLUGIN_PATH"

	// DefaultPluginPath is the plugin module search path used when neither
	// the command line nor the environment specify any search paths.
	DefaultPluginPath = "plugins"
)
