package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is overridden at build time with -ldflags "-X .../internal/version.Version=...".
var Version = "dev"

// Describe adds the toolchain and, when the binary was built from a checkout, the commit.
func Describe() string {
	desc := fmt.Sprintf("aip %s (%s %s/%s", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 12 {
				desc += ", " + s.Value[:12]
			}
		}
	}
	return desc + ")"
}
