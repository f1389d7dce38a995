package spritestudio

import "log"

// globalDebug gates the core's diagnostic logging. Missing references and
// instance resolution failures are silent unless it is set.
var globalDebug bool

// SetDebug enables or disables diagnostic logging for missing packs,
// animations, parts, sprite sheets and instance resolution failures.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// Debug reports whether diagnostic logging is enabled.
func Debug() bool {
	return globalDebug
}

func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	log.Printf("spritestudio: "+format, args...)
}

// debugMaxPartCount warns when a pack holds an unusually large rig.
const debugMaxPartCount = 512

func debugCheckPartCount(name string, n int) {
	if globalDebug && n > debugMaxPartCount {
		log.Printf("spritestudio: warning: pack %q has %d parts (threshold %d)", name, n, debugMaxPartCount)
	}
}
