// Package osutils holds small OS integration helpers.
package osutils

// openCommand returns the launcher that opens path with its default
// application on goos. Windows goes through ShellExecute instead.
func openCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}
