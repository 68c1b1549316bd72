package download

import "strings"

var replacer = strings.NewReplacer(
	":", "_",
	"/", "_",
	"<", "_",
	">", "_",
	"'", "_",
	"\"", "_",
	"\\", "_",
	"|", "_",
	"?", "_",
	"*", "_",
	" ", "_",
)

// MakeValid turns an album name into a filesystem-safe file name.
func MakeValid(name string) string {
	cleaned := strings.Trim(replacer.Replace(strings.TrimSpace(name)), ".")
	if cleaned == "" {
		return "album"
	}
	return cleaned
}
