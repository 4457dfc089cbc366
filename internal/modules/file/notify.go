package file

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/dustin/go-humanize"
)

const shareMailSubject = "File Sharing Link"

// SendShareMail looks up the record, builds a fully qualified download link
// and hands the message to the mail capability. Transport failure is reported
// as ErrMailFailed instead of being swallowed.
func (s *Service) SendShareMail(ctx context.Context, id, recipient string) error {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	link := strings.TrimRight(s.baseURL, "/") + fmt.Sprintf(SharePathTemplate, record.ID)
	body := shareMailBody(record, link)

	if err := s.mailer.Send(ctx, recipient, shareMailSubject, body); err != nil {
		s.logger.Error("share mail delivery failed", "id", record.ID, "to", recipient, "err", err)
		return fmt.Errorf("%w: %v", ErrMailFailed, err)
	}

	s.logger.Info("share mail sent", "id", record.ID, "to", recipient)
	return nil
}

func shareMailBody(record *File, link string) string {
	name := html.EscapeString(record.OriginalName)
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 10px;">
  <h2 style="text-align: center; color: #4CAF50;">You've Received a File!</h2>
  <p style="text-align: center;">Someone has shared a file with you via the FileSharing App.</p>
  <div style="text-align: center; margin: 20px 0;">
    <a href="%s" target="_blank" style="padding: 10px 20px; color: #fff; background-color: #4CAF50; text-decoration: none; border-radius: 5px;">Download File</a>
  </div>
  <hr>
  <h3 style="color: #333;">File Details:</h3>
  <ul>
    <li><strong>Name:</strong> %s</li>
    <li><strong>Size:</strong> %s</li>
  </ul>
  <hr>
  <p>If you have any issues downloading the file, please contact our support team.</p>
</div>`, link, name, humanize.Bytes(uint64(record.Size)))
}
