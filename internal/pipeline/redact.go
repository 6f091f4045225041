package pipeline

import "regexp"

// defendant names are the personally-identifying free text in a payload;
// strip them before the raw message travels on a failure event or log line.
var defNamePattern = regexp.MustCompile(`(<def_name[^>]*>)([^<]*)(</def_name>)`)

// Redact masks defendant names in a raw payload.
func Redact(payload string) string {
	return defNamePattern.ReplaceAllString(payload, "${1}***${3}")
}
