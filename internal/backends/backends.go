// Package backends registers the built-in device backends.
package backends

import (
	_ "github.com/thaumaturge/keymapper/hid/virtual" // Register virtual gamepad backend
)
