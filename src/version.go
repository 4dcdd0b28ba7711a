package bell103

import (
	"fmt"
	"runtime/debug"
	"strconv"
)

// Set at build time via `-ldflags "-X 'github.com/doismellburning/bell103/src.BELL103_VERSION=X'"`
var BELL103_VERSION string

func buildSetting(bi *debug.BuildInfo, key string, defaultValue string) string {
	if bi == nil {
		return defaultValue
	}

	for _, bs := range bi.Settings {
		if bs.Key == key {
			return bs.Value
		}
	}

	return defaultValue
}

// revision is the VCS commit, marked if the tree was dirty or we can't tell.
func revision(bi *debug.BuildInfo) string {
	var commit = buildSetting(bi, "vcs.revision", "UNKNOWN")

	var dirty, dirtyErr = strconv.ParseBool(buildSetting(bi, "vcs.modified", ""))

	switch {
	case dirtyErr != nil:
		return commit + "-UNKNOWNDIRTY"
	case dirty:
		return commit + "-DIRTY"
	default:
		return commit
	}
}

// versionString is the one line that --version prints.
func versionString(bi *debug.BuildInfo) string {
	var version = BELL103_VERSION
	if version == "" {
		version = "!UNKNOWN!"
	}

	return fmt.Sprintf("bell103 - Version %s (revision %s, built at %s)",
		version, revision(bi), buildSetting(bi, "vcs.time", "UNKNOWN"))
}

// printVersion with verbose also shows the toolchain and the built-in
// modem settings.
func printVersion(verbose bool) {
	var bi, _ = debug.ReadBuildInfo()

	fmt.Println(versionString(bi))

	if !verbose {
		return
	}

	if bi != nil {
		fmt.Printf("    Go:        %s\n", bi.GoVersion)
		fmt.Printf("    Module:    %s %s\n", bi.Main.Path, bi.Main.Version)
	}

	fmt.Printf("    Defaults:  %s\n", DefaultConfig())
	fmt.Printf("    Bell 202:  %s\n", Bell202Config())
}
