package mail

import (
	"bytes"
	"html/template"
)

type thankYouData struct {
	Name        string
	SurveyTitle string
	Date        string
	Timestamp   string
	Ref         string
}

var thankYouTemplate = template.Must(template.New("thank-you").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Thank You for Your Survey Response</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #eaeaea; border-radius: 5px;">
    <div style="text-align: center; padding: 20px; background-color: #f8f9fa; border-radius: 5px 5px 0 0;">
      <h1 style="color: #4a86e8; margin: 0; font-size: 24px;">Thank You!</h1>
      <p style="margin: 5px 0 0 0; color: #666;">Your feedback is important to us</p>
    </div>

    <div style="padding: 20px; background-color: #ffffff;">
      <p>Hello <strong>{{.Name}}</strong>,</p>
      <p>Thank you for taking the time to complete our <strong>{{.SurveyTitle}}</strong> on {{.Date}}.</p>
      <p>Your insights are invaluable and will help us better understand career preparation needs and improve our services.</p>

      <div style="margin: 25px 0; padding: 15px; background-color: #e8f4fe; border-left: 4px solid #4a86e8; border-radius: 3px;">
        <p style="margin-top: 0;"><strong>What's next?</strong></p>
        <p>Our team carefully reviews all submissions to identify trends and areas where we can enhance our career support services.</p>
        <p style="margin-bottom: 0;">We may reach out with additional resources tailored to your career interests.</p>
      </div>

      <p>If you have any questions or need career guidance, please don't hesitate to contact our career services team.</p>
    </div>

    <div style="text-align: center; padding: 20px;">
      <a href="https://example.com/career-resources"
         style="display: inline-block; padding: 10px 20px; background-color: #4a86e8; color: #ffffff; text-decoration: none; border-radius: 4px; font-weight: bold;">
        Explore Career Resources
      </a>
    </div>

    <div style="padding: 20px; text-align: center; font-size: 12px; color: #777; border-top: 1px solid #eaeaea;">
      <p>Best regards,<br><strong>Career Services Team</strong></p>
      <p style="margin-top: 20px;">&copy; 2025 Career Services Department</p>
      <p>Timestamp: {{.Timestamp}} | Ref: {{.Ref}}</p>
    </div>
  </div>
</body>
</html>
`))

func renderThankYou(data thankYouData) ([]byte, error) {
	var buf bytes.Buffer
	if err := thankYouTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
