// internal/app/templates.go
package app

import (
	"fmt"

	"expiry_reminder_bot/internal/domain/notice"
	"expiry_reminder_bot/internal/domain/registry"
)

// renderNotice builds the subject and body for a notice of kind k.
func renderNotice(k notice.Kind, rec registry.Record, expiryText string) (string, string, error) {
	switch k {
	case notice.KindFiveDay:
		subject := fmt.Sprintf("[Nhắc hạn] GPT \"%s\" sẽ hết hạn sau 5 ngày", rec.SubjectName)
		body := fmt.Sprintf("Chào bạn,\nGPT \"%s\" (ID: %s) sẽ hết hạn vào ngày %s.\nVui lòng gia hạn để không bị gián đoạn.\nTrân trọng!",
			rec.SubjectName, rec.SubjectID, expiryText)
		return subject, body, nil
	case notice.KindOneDay:
		subject := fmt.Sprintf("[Nhắc hạn] GPT \"%s\" sẽ hết hạn NGÀY MAI!", rec.SubjectName)
		body := fmt.Sprintf("Chào bạn,\nGPT \"%s\" (ID: %s) sẽ hết hạn vào NGÀY MAI (%s).\nVui lòng gia hạn nếu muốn tiếp tục sử dụng.\nTrân trọng!",
			rec.SubjectName, rec.SubjectID, expiryText)
		return subject, body, nil
	default:
		return "", "", fmt.Errorf("unknown notice kind: %q", k)
	}
}
