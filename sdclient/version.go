package main

import "fmt"

// Semantic version of the app.
const (
	appMajor = 0
	appMinor = 1
	appPatch = 0

	// appPreRelease should be empty for releases.
	appPreRelease = "pre"
)

func version() string {
	v := fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)
	if appPreRelease != "" {
		v += "-" + appPreRelease
	}
	return v
}
