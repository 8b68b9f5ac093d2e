// Package autostart registers the program to start on login.
package autostart

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

const (
	// Label identifies the macOS launch agent
	Label = "com.tkm.agent"
	// Name is the Windows Run value and the XDG desktop entry name
	Name = "tkm"
)

// Args are passed to the executable when started on login
var Args = []string{"run"}

// ErrUnsupportedPlatform is returned where no login mechanism is known
var ErrUnsupportedPlatform = errors.New("autostart not supported on this platform")

const macLaunchAgentPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{.Label}}</string>
    <key>ProgramArguments</key>
    <array>
{{- range .Command}}
        <string>{{.}}</string>
{{- end}}
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>
`

const xdgDesktopEntry = `[Desktop Entry]
Type=Application
Name=Touch Keyboard & Mouse
Exec={{.Exec}}
Terminal=false
X-GNOME-Autostart-enabled=true
`

var (
	plistTmpl   = template.Must(template.New("plist").Parse(macLaunchAgentPlist))
	desktopTmpl = template.Must(template.New("desktop").Parse(xdgDesktopEntry))
)

func command() ([]string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}
	return append([]string{execPath}, Args...), nil
}

// launchAgentPlist renders the launch agent for a command line
func launchAgentPlist(cmd []string) (string, error) {
	var buf bytes.Buffer
	err := plistTmpl.Execute(&buf, struct {
		Label   string
		Command []string
	}{Label, cmd})
	return buf.String(), err
}

// desktopEntry renders the XDG autostart entry for a command line
func desktopEntry(cmd []string) (string, error) {
	var buf bytes.Buffer
	err := desktopTmpl.Execute(&buf, struct{ Exec string }{joinQuoted(cmd)})
	return buf.String(), err
}

// joinQuoted joins arguments, double quoting the ones with spaces
func joinQuoted(cmd []string) string {
	parts := make([]string, len(cmd))
	for i, a := range cmd {
		if strings.ContainsAny(a, " \t") {
			a = `"` + strings.ReplaceAll(a, `"`, `\"`) + `"`
		}
		parts[i] = a
	}
	return strings.Join(parts, " ")
}

func launchAgentPath(home string) string {
	return filepath.Join(home, "Library", "LaunchAgents", Label+".plist")
}

// desktopEntryPath honours XDG_CONFIG_HOME
func desktopEntryPath(home string) string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "autostart", Name+".desktop")
}

func writeEntry(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func removeEntry(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func entryExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
