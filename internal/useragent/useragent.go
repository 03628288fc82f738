package useragent

import (
	"fmt"
	"runtime"

	"github.com/datahound/hound/internal/version"
)

// String returns the User-Agent header value sent with every request,
// e.g. "hound/v0.2.0 (go go1.24.4; os linux; arch amd64)".
func String() string {
	return fmt.Sprintf(
		"hound/%s (go %s; os %s; arch %s)",
		version.Version,
		runtime.Version(),
		runtime.GOOS,
		runtime.GOARCH,
	)
}
