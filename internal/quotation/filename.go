package quotation

import "strings"

var filenameSanitizer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
	"\x00", "",
)

// Filename builds the download name for a rendered quotation:
// {number}_{companyName}.pdf with both segments stripped of characters
// illegal in filenames.
func Filename(number, companyName string) string {
	return sanitizeSegment(number) + "_" + sanitizeSegment(companyName) + ".pdf"
}

func sanitizeSegment(s string) string {
	return strings.TrimSpace(filenameSanitizer.Replace(s))
}
