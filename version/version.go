package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X"; left at their zero values in development builds.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

const packageName = "hashed-rename"

// Info contains version information
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Package string `json:"package"`
}

// GetVersion returns the version string, preferring the linked-in value over
// the module version recorded in the build info.
func GetVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "development"
}

// GetCommit returns the git commit hash.
func GetCommit() string {
	return linkedOrBuildSetting(Commit, "vcs.revision")
}

// GetBuildDate returns the commit time of the build.
func GetBuildDate() string {
	return linkedOrBuildSetting(Date, "vcs.time")
}

func linkedOrBuildSetting(linked, key string) string {
	if linked != "unknown" && linked != "" {
		return linked
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == key {
				return setting.Value
			}
		}
	}
	return "unknown"
}

// GetInfo returns complete version information
func GetInfo() Info {
	return Info{
		Version: GetVersion(),
		Commit:  GetCommit(),
		Date:    GetBuildDate(),
		Package: packageName,
	}
}

// GetFullVersion returns the version with the short commit and build date
// when they are known.
func GetFullVersion() string {
	info := GetInfo()
	if info.Commit == "unknown" || len(info.Commit) <= 7 {
		return info.Version
	}
	short := info.Commit[:7]
	if info.Date == "unknown" {
		return fmt.Sprintf("%s (%s)", info.Version, short)
	}
	return fmt.Sprintf("%s (%s, built %s)", info.Version, short, info.Date)
}

// VersionTemplate is the cobra version template for the hashed-rename binary.
func VersionTemplate() string {
	info := GetInfo()
	return fmt.Sprintf("{{.Name}} version {{.Version}}\nPackage: %s\nCommit: %s\nBuild Date: %s\n",
		info.Package, info.Commit, info.Date)
}
