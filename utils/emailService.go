package utils

import (
	"fmt"
	"log"
	"strings"
	"time"

	"madrasa/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML mail through SendGrid. Callers on request
// paths should invoke it from a goroutine; delivery failures are logged
// and must never abort the triggering request.
func SendEmail(to, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("[EMAIL] SENDGRID_API_KEY not set, skipping mail %q to %s", subject, to)
		return nil
	}

	from := mail.NewEmail("Madrasa Store", config.AppConfig.EmailSender)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] error sending %q to %s: %v", subject, to, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("[EMAIL] sendgrid rejected %q to %s: %d %s", subject, to, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid status %d", resp.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps body content in the store's mail layout.
func getEmailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html dir="rtl" lang="ar">
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00332E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00332E; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F5F0; padding: 15px; border-radius: 4px; border-right: 4px solid #1E8E66; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">متجر المدرسة — هذه رسالة آلية، الرجاء عدم الرد عليها.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendOrderConfirmationEmail mails the list of created order ids after a
// successful checkout.
func SendOrderConfirmationEmail(to string, orderIDs []uint, total string) error {
	ids := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		ids[i] = fmt.Sprintf("#%d", id)
	}
	body := fmt.Sprintf(`
		<h2>تم إنشاء طلبك بنجاح ✅</h2>
		<p>أرقام الطلبات: <strong>%s</strong></p>
		<div class="info-box">الإجمالي: %s</div>
		<p>أكمل الدفع لتفعيل دوراتك.</p>`, strings.Join(ids, "، "), total)
	return SendEmail(to, "تأكيد الطلب — متجر المدرسة", getEmailTemplate("تأكيد الطلب", body))
}

// SendEnrollmentActivatedEmail mails the student after a paid order
// activated their course access.
func SendEnrollmentActivatedEmail(to, courseTitle string, endsAt *time.Time) error {
	window := ""
	if endsAt != nil {
		window = fmt.Sprintf(`<div class="info-box">ينتهي الوصول في %s</div>`, endsAt.Format("2006-01-02"))
	}
	body := fmt.Sprintf(`
		<h2>تم تفعيل دورتك 🎓</h2>
		<p>أصبح بإمكانك الوصول إلى دورة <strong>%s</strong> من لوحة الطالب.</p>%s`, courseTitle, window)
	return SendEmail(to, "تم تفعيل الدورة — متجر المدرسة", getEmailTemplate("تفعيل الدورة", body))
}

// SendContactNotification forwards a contact-us submission to the store inbox.
func SendContactNotification(name, email, message string) error {
	body := fmt.Sprintf(`
		<h2>رسالة تواصل جديدة</h2>
		<p><strong>الاسم:</strong> %s</p>
		<p><strong>البريد:</strong> %s</p>
		<div class="info-box">%s</div>`, name, email, message)
	return SendEmail(config.AppConfig.EmailSender, "رسالة تواصل جديدة", getEmailTemplate("تواصل معنا", body))
}
