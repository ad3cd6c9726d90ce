package update

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-resty/resty/v2"
)

// InstallMethod identifies how the running binary was installed.
type InstallMethod string

const (
	InstallMethodBrew    InstallMethod = "brew"
	InstallMethodNPM     InstallMethod = "npm"
	InstallMethodGo      InstallMethod = "go"
	InstallMethodUnknown InstallMethod = "unknown"
)

const releasesURL = "https://api.github.com/repos/arlink/cli/releases/latest"

type releaseResponse struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// FetchLatest returns the latest release tag and its release page URL.
func FetchLatest(ctx context.Context) (string, string, error) {
	var release releaseResponse
	resp, err := resty.New().R().
		SetContext(ctx).
		SetHeader("Accept", "application/vnd.github+json").
		SetResult(&release).
		Get(releasesURL)
	if err != nil {
		return "", "", fmt.Errorf("fetching latest release: %w", err)
	}
	if resp.IsError() {
		return "", "", fmt.Errorf("fetching latest release: %s", resp.Status())
	}
	if release.TagName == "" {
		return "", "", fmt.Errorf("release response missing tag name")
	}
	return release.TagName, release.HTMLURL, nil
}

// IsNewerVersion reports whether latest is strictly newer than current.
// Both accept an optional leading "v". Dev builds fail the parse and
// the caller decides how to proceed.
func IsNewerVersion(current, latest string) (bool, error) {
	cur, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	lat, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing latest version %q: %w", latest, err)
	}
	return lat.GreaterThan(cur), nil
}

// DetectInstallMethod inspects the running executable's path to guess
// the installation channel. Returns the method and the resolved binary
// path (empty when the path cannot be determined).
func DetectInstallMethod() (InstallMethod, string) {
	exe, err := os.Executable()
	if err != nil {
		return InstallMethodUnknown, ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	switch {
	case pathMatchesBrew(exe):
		return InstallMethodBrew, exe
	case pathMatchesNPM(exe):
		return InstallMethodNPM, exe
	case pathMatchesGo(exe):
		return InstallMethodGo, exe
	}
	return InstallMethodUnknown, exe
}

// SuggestUpgradeCommand returns the upgrade command for the detected
// installation method, defaulting to brew.
func SuggestUpgradeCommand() string {
	method, _ := DetectInstallMethod()
	return suggestUpgradeCommandForMethod(method)
}

func suggestUpgradeCommandForMethod(method InstallMethod) string {
	switch method {
	case InstallMethodNPM:
		return "npm i -g @arlink/cli@latest"
	case InstallMethodGo:
		return "go install github.com/arlink/cli@latest"
	default:
		return "brew upgrade arlink/tap/arlink"
	}
}

func pathMatchesBrew(path string) bool {
	return strings.Contains(path, "/Cellar/") ||
		strings.Contains(path, "/opt/homebrew/") ||
		strings.Contains(path, "/home/linuxbrew/")
}

func pathMatchesNPM(path string) bool {
	return strings.Contains(path, "/.npm-global/") ||
		strings.Contains(path, "/.npm/") ||
		strings.Contains(path, "/node_modules/") ||
		strings.Contains(path, "/share/npm/")
}

func pathMatchesGo(path string) bool {
	return strings.Contains(path, "/go/bin/")
}
