// Package paths resolves the directories toolkitlog reads and writes.
//
// Locations follow the XDG base directory specification through
// [github.com/adrg/xdg]:
//
//   - config: <ConfigHome>/toolkitlog/config.yaml
//   - logs:   <StateHome>/toolkitlog/toolkit.log
package paths
