package export

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// stripExcluded removes every node marked data-export="exclude" from the
// document. Removal, not hiding: excluded controls must not occupy layout
// space in the capture.
func stripExcluded(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &CaptureError{Message: "failed to parse preview html", Cause: err}
	}
	doc.Find(`[data-export="exclude"]`).Remove()

	out, err := doc.Html()
	if err != nil {
		return "", &CaptureError{Message: "failed to serialize stripped html", Cause: err}
	}
	return out, nil
}
