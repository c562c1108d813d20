package urlpattern

// https://url.spec.whatwg.org/#special-scheme
var specialSchemes = [...]string{"ftp", "file", "http", "https", "ws", "wss"}

// file is special but has no default port.
var defaultPorts = map[string]string{
	"ftp":   "21",
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
}

// IsSpecialScheme reports whether scheme is one of the special schemes of
// the URL standard: ftp, file, http, https, ws and wss.
func IsSpecialScheme(scheme string) bool {
	for _, s := range specialSchemes {
		if s == scheme {
			return true
		}
	}

	return false
}

// DefaultPort returns the well-known port of a special scheme.
func DefaultPort(scheme string) (string, bool) {
	port, ok := defaultPorts[scheme]

	return port, ok
}
