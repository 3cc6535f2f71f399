package shader

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Marker is a location in the shader source a compile log refers to.
type Marker struct {
	// Source is the index of the source string, always 0 for a single file.
	Source   int
	Line     int
	Severity string
	Message  string
}

var markerFormats = []struct {
	re       *regexp.Regexp
	source   int
	line     int
	severity int
	message  int
}{
	// Mesa: 0:3(2): error: `a' undeclared
	{re: regexp.MustCompile(`^(\d+):(\d+)\(\d+\): (\w+): (.*)$`), source: 1, line: 2, severity: 3, message: 4},
	// NVIDIA: 0(3) : error C1008: undefined variable "a"
	{re: regexp.MustCompile(`^(\d+)\((\d+)\) : (\w+) \w+: (.*)$`), source: 1, line: 2, severity: 3, message: 4},
	// AMD, Intel and ANGLE: ERROR: 0:3: 'a' : undeclared identifier
	{re: regexp.MustCompile(`^(\w+): (\d+):(\d+): (.*)$`), source: 2, line: 3, severity: 1, message: 4},
}

// ParseMarkers extracts the source locations from a driver's compile log.
// Lines in an unrecognized format are skipped.
func ParseMarkers(log string) []Marker {
	var markers []Marker
	for _, line := range strings.Split(log, "\n") {
		line = strings.TrimRight(line, "\r\x00 ")
		for _, f := range markerFormats {
			m := f.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			source, _ := strconv.Atoi(m[f.source])
			lineno, _ := strconv.Atoi(m[f.line])
			markers = append(markers, Marker{
				Source:   source,
				Line:     lineno,
				Severity: strings.ToLower(m[f.severity]),
				Message:  strings.TrimSpace(m[f.message]),
			})
			break
		}
	}
	return markers
}
