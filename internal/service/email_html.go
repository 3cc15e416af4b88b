// internal/service/email_html.go
package service

import (
	"html/template"
	"strings"
)

// Self-contained HTML documents with inline styles only: the rendered email
// must not reference external stylesheets. Optional sections (image, badge,
// author) are omitted entirely when their value is empty, never rendered as
// empty placeholders.

const articleEmailHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f5f5f5;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;">
    <table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f5f5f5;padding:40px 20px;">
        <tr>
            <td align="center">
                <table width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:16px;overflow:hidden;box-shadow:0 4px 6px rgba(0,0,0,0.1);">
                    <tr>
                        <td style="background-color:#18181b;padding:30px;text-align:center;">
                            <h1 style="margin:0;color:#ffffff;font-size:24px;font-weight:800;">{{.SiteName}}</h1>
                            <p style="margin:10px 0 0;color:#a1a1aa;font-size:12px;text-transform:uppercase;letter-spacing:2px;">Nouvel Article</p>
                        </td>
                    </tr>
{{if .ImageURL}}                    <tr><td><img src="{{.ImageURL}}" width="600" style="width:100%;height:auto;display:block;" alt="{{.Title}}"></td></tr>
{{end}}                    <tr>
                        <td style="padding:40px;">
{{if .CategoryName}}                            <p style="margin:0 0 15px;"><span style="background-color:#f59e0b;color:#ffffff;padding:6px 16px;border-radius:20px;font-size:11px;font-weight:700;text-transform:uppercase;letter-spacing:1px;">{{.CategoryName}}</span></p>
{{end}}                            <h2 style="margin:0 0 20px;font-size:28px;font-weight:800;color:#18181b;line-height:1.3;">
                                {{.Title}}
                            </h2>
{{if .AuthorName}}                            <p style="margin:0 0 20px;color:#71717a;font-size:14px;">Par <strong>{{.AuthorName}}</strong></p>
{{end}}                            <p style="margin:0 0 30px;color:#52525b;font-size:16px;line-height:1.7;">
                                {{.Excerpt}}
                            </p>
                            <a href="{{.ContentURL}}" style="display:inline-block;background-color:#f59e0b;color:#ffffff;padding:16px 32px;border-radius:12px;text-decoration:none;font-weight:700;font-size:14px;text-transform:uppercase;letter-spacing:1px;">
                                Lire l'article &rarr;
                            </a>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color:#fafafa;padding:30px;text-align:center;border-top:1px solid #e5e5e5;">
                            <p style="margin:0 0 10px;color:#71717a;font-size:12px;">
                                Vous recevez cet email car vous &ecirc;tes inscrit &agrave; notre newsletter.
                            </p>
                            <p style="margin:0;color:#a1a1aa;font-size:11px;">
                                &copy; 2025 {{.SiteName}}. Tous droits r&eacute;serv&eacute;s.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`

const videoEmailHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f5f5f5;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;">
    <table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f5f5f5;padding:40px 20px;">
        <tr>
            <td align="center">
                <table width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:16px;overflow:hidden;box-shadow:0 4px 6px rgba(0,0,0,0.1);">
                    <tr>
                        <td style="background-color:#18181b;padding:30px;text-align:center;">
                            <h1 style="margin:0;color:#ffffff;font-size:24px;font-weight:800;">{{.SiteName}}</h1>
                            <p style="margin:10px 0 0;color:#a1a1aa;font-size:12px;text-transform:uppercase;letter-spacing:2px;">&#128250; Nouvelle Vid&eacute;o Web TV</p>
                        </td>
                    </tr>
{{if .ThumbnailURL}}                    <tr>
                        <td style="position:relative;">
                            <a href="{{.ContentURL}}" style="display:block;position:relative;">
                                <img src="{{.ThumbnailURL}}" width="600" style="width:100%;height:auto;display:block;" alt="{{.Title}}">
                                <div style="position:absolute;top:50%;left:50%;transform:translate(-50%,-50%);width:80px;height:80px;background-color:rgba(245,158,11,0.9);border-radius:50%;display:flex;align-items:center;justify-content:center;">
                                    <div style="width:0;height:0;border-top:15px solid transparent;border-bottom:15px solid transparent;border-left:25px solid white;margin-left:5px;"></div>
                                </div>
                            </a>
                        </td>
                    </tr>
{{end}}                    <tr>
                        <td style="padding:40px;">
{{if .VideoType}}                            <p style="margin:0 0 15px;"><span style="background-color:#dc2626;color:#ffffff;padding:6px 16px;border-radius:20px;font-size:11px;font-weight:700;text-transform:uppercase;letter-spacing:1px;">&#9654; {{.VideoType}}</span></p>
{{end}}                            <h2 style="margin:0 0 20px;font-size:28px;font-weight:800;color:#18181b;line-height:1.3;">
                                {{.Title}}
                            </h2>
                            <p style="margin:0 0 30px;color:#52525b;font-size:16px;line-height:1.7;">
                                {{.Description}}
                            </p>
                            <table cellpadding="0" cellspacing="0" style="margin:0 auto;">
                                <tr>
                                    <td style="padding-right:10px;">
                                        <a href="{{.ContentURL}}" style="display:inline-block;background-color:#f59e0b;color:#ffffff;padding:16px 32px;border-radius:12px;text-decoration:none;font-weight:700;font-size:14px;text-transform:uppercase;letter-spacing:1px;">
                                            Regarder sur GAM &rarr;
                                        </a>
                                    </td>
{{if .YouTubeURL}}                                    <td><a href="{{.YouTubeURL}}" style="display:inline-block;background-color:#dc2626;color:#ffffff;padding:16px 32px;border-radius:12px;text-decoration:none;font-weight:700;font-size:14px;text-transform:uppercase;letter-spacing:1px;">&#9654; YouTube</a></td>
{{end}}                                </tr>
                            </table>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color:#fafafa;padding:30px;text-align:center;border-top:1px solid #e5e5e5;">
                            <p style="margin:0 0 10px;color:#71717a;font-size:12px;">
                                Vous recevez cet email car vous &ecirc;tes inscrit &agrave; notre newsletter.
                            </p>
                            <p style="margin:0;color:#a1a1aa;font-size:11px;">
                                &copy; 2025 {{.SiteName}}. Tous droits r&eacute;serv&eacute;s.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`

const contactEmailHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f5f5f5;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;">
    <table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f5f5f5;padding:40px 20px;">
        <tr>
            <td align="center">
                <table width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:16px;overflow:hidden;box-shadow:0 4px 6px rgba(0,0,0,0.1);">
                    <tr>
                        <td style="background-color:#18181b;padding:30px;text-align:center;">
                            <h1 style="margin:0;color:#ffffff;font-size:24px;font-weight:800;">{{.SiteName}}</h1>
                            <p style="margin:10px 0 0;color:#a1a1aa;font-size:12px;text-transform:uppercase;letter-spacing:2px;">&#128233; Nouveau Message de Contact</p>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding:40px;">
                            <table width="100%" cellpadding="0" cellspacing="0" style="margin-bottom:30px;background-color:#f9fafb;border-radius:12px;padding:20px;">
                                <tr>
                                    <td style="padding:15px;">
                                        <p style="margin:0 0 10px;color:#6b7280;font-size:12px;text-transform:uppercase;letter-spacing:1px;font-weight:600;">De</p>
                                        <p style="margin:0;color:#18181b;font-size:18px;font-weight:700;">{{.Name}}</p>
                                        <p style="margin:5px 0 0;color:#3b82f6;font-size:14px;">
                                            <a href="mailto:{{.Email}}" style="color:#3b82f6;text-decoration:none;">{{.Email}}</a>
                                        </p>
                                    </td>
                                </tr>
                            </table>
                            <p style="margin:0 0 10px;color:#6b7280;font-size:12px;text-transform:uppercase;letter-spacing:1px;font-weight:600;">Sujet</p>
                            <h2 style="margin:0 0 25px;font-size:22px;font-weight:700;color:#18181b;line-height:1.3;">
                                {{.Subject}}
                            </h2>
                            <p style="margin:0 0 10px;color:#6b7280;font-size:12px;text-transform:uppercase;letter-spacing:1px;font-weight:600;">Message</p>
                            <div style="background-color:#f9fafb;border-left:4px solid #f59e0b;padding:20px;border-radius:0 12px 12px 0;margin-bottom:30px;">
                                <p style="margin:0;color:#374151;font-size:16px;line-height:1.8;white-space:pre-wrap;">{{.Message}}</p>
                            </div>
                            <a href="mailto:{{.Email}}" style="display:inline-block;background-color:#f59e0b;color:#ffffff;padding:16px 32px;border-radius:12px;text-decoration:none;font-weight:700;font-size:14px;text-transform:uppercase;letter-spacing:1px;">
                                R&eacute;pondre &agrave; {{.Name}} &rarr;
                            </a>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color:#fafafa;padding:25px;text-align:center;border-top:1px solid #e5e5e5;">
                            <p style="margin:0 0 5px;color:#71717a;font-size:12px;">
                                Message re&ccedil;u le {{.ReceivedAt}}
                            </p>
                            <p style="margin:0;color:#a1a1aa;font-size:11px;">
                                &copy; 2025 {{.SiteName}} - Formulaire de contact
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`

var (
	articleEmailTmpl = template.Must(template.New("article_email").Parse(articleEmailHTML))
	videoEmailTmpl   = template.Must(template.New("video_email").Parse(videoEmailHTML))
	contactEmailTmpl = template.Must(template.New("contact_email").Parse(contactEmailHTML))
)

type articleEmailData struct {
	SiteName     string
	Title        string
	Excerpt      string
	CategoryName string
	AuthorName   string
	ImageURL     string
	ContentURL   string
}

type videoEmailData struct {
	SiteName     string
	Title        string
	Description  string
	VideoType    string
	ThumbnailURL string
	ContentURL   string
	YouTubeURL   string
}

type contactEmailData struct {
	SiteName   string
	Name       string
	Email      string
	Subject    string
	Message    string
	ReceivedAt string
}

func renderArticleEmail(data articleEmailData) (string, error) {
	var b strings.Builder
	if err := articleEmailTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderVideoEmail(data videoEmailData) (string, error) {
	var b strings.Builder
	if err := videoEmailTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderContactEmail(data contactEmailData) (string, error) {
	var b strings.Builder
	if err := contactEmailTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
