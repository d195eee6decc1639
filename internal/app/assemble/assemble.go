// Package assemble turns accumulated composition state into a single
// outbound email. Build is a pure function; delivery addressing is filled
// in by the caller.
package assemble

import (
	"fmt"
	"strings"
	"time"

	"github.com/mrivero/notemail/internal/domain"
)

// defaultSubject is used when the user never set a subject.
const defaultSubject = "Note"

// Build assembles the subject line, HTML body and inline attachments from
// the composed fragments. An empty composition still yields a well-formed
// message; Build never fails.
//
// Each attachment's content id is "image<k>" for its index k, and the body
// references the ids in the same order the images were appended. That
// correspondence is what keeps the delivered images from dangling.
func Build(category domain.Category, subject string, lines []string, images []domain.InlineImage, at time.Time) *domain.OutboundEmail {
	if subject == "" {
		subject = defaultSubject
	}

	subjectLine := fmt.Sprintf("[%s] %s - %s",
		strings.ToUpper(string(category)),
		subject,
		at.Format("2006-01-02 15:04"),
	)

	var body strings.Builder
	body.WriteString("<p>")
	body.WriteString(strings.Join(lines, "<br>"))
	body.WriteString("</p>")

	inline := make([]domain.InlineAttachment, 0, len(images))
	for i, img := range images {
		cid := fmt.Sprintf("image%d", i)
		fmt.Fprintf(&body, `<br><img src="cid:%s">`, cid)
		inline = append(inline, domain.InlineAttachment{
			ContentID: cid,
			Filename:  img.Filename,
			Data:      img.Data,
		})
	}

	return &domain.OutboundEmail{
		SubjectLine: subjectLine,
		BodyHTML:    body.String(),
		Inline:      inline,
	}
}
