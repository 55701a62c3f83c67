// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import "strings"

// CIVars are environment variables set by common CI services.
var CIVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// InCI reports whether any of CIVars is set.
func InCI(getenv func(string) string) bool {
	for _, v := range CIVars {
		if getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect returns hints for a page checker that could not start
// Chrome. Sandboxing fails in most containers and CI runners, so
// ROD_NO_SANDBOX is suggested there unless already set.
func ForBrowserConnect(getenv func(string) string, inContainer bool) string {
	var hints []string
	if (inContainer || InCI(getenv)) && getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return formatHints(hints)
}

// ForSiteUnreachable returns a hint for check runs against a site that does
// not answer.
func ForSiteUnreachable(baseURL string) string {
	return format("start the site first (mdsite serve) or pass --base-url; tried " + baseURL)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-mdsite") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForContentLoad returns hints for page load failures.
func ForContentLoad(remote bool) string {
	if remote {
		return format("check content.remote is reachable and serves the page")
	}
	return format("check content.dir and the page file name in the config")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForAddressInUse returns a hint for listen failures.
func ForAddressInUse(addr string) string {
	return format(addr + " may be in use; pick another with --addr")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
