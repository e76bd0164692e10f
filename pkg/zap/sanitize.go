package zap

import "strings"

// controlCharReplacer escapes control characters usable for log injection (CWE-117).
var controlCharReplacer = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func sanitizeString(s string) string {
	return controlCharReplacer.Replace(s)
}
