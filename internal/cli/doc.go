// Package cli defines the keyecho command tree.
//
// run starts the interactive HUD. record and play work headless for
// scripting and automation, script builds sequences from Lua files,
// and version reports build information.
package cli
