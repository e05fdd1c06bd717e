package handler

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

// page is the view model shared by both apps.
type page struct {
	Title      string
	Button     string
	Footer     string
	Message    string
	Notes      string
	Flashcards []string
	HasResult  bool
	// Upsell shows the subscribe button that calls POST /subscribe.
	Upsell bool
}

func converterPage(message string) page {
	return page{
		Title:   "PDF to Word Converter",
		Button:  "Convert to Word",
		Footer:  "For best results, use text-based PDFs. Complex layouts may not convert perfectly. After conversion, your Word file will be downloaded automatically.",
		Message: message,
	}
}

func notesPage() page {
	return page{
		Title:  "PDF Notes & Flashcards",
		Button: "Generate Notes",
		Footer: "Your first upload is free. Notes are generated from the PDF's text layer.",
	}
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body { font-family: Arial, sans-serif; max-width: 700px; margin: 40px auto; padding: 20px; background: #f8f9fa; color: #333; }
        h1 { color: #007bff; }
        form { margin-bottom: 30px; }
        input[type="file"] { margin-bottom: 10px; }
        input[type="submit"], button { padding: 10px 20px; background-color: #007bff; color: white; border: none; border-radius: 4px; cursor: pointer; font-size: 16px; }
        input[type="submit"]:hover, button:hover { background-color: #0056b3; }
        .message { margin-top: 20px; padding: 10px; background: #e2e3e5; border-radius: 4px; }
        .notes { white-space: pre-wrap; background: #fff; padding: 15px; border-radius: 4px; }
        .footer { margin-top: 40px; font-size: 13px; color: #888; text-align: center; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <form method="post" enctype="multipart/form-data">
        <input type="file" name="file" accept=".pdf" required>
        <br>
        <input type="submit" value="{{.Button}}">
    </form>
    {{- if .Message}}
    <div class="message">{{.Message}}</div>
    {{- end}}
    {{- if .Upsell}}
    <button id="subscribe" type="button">Subscribe</button>
    <script>
        document.getElementById("subscribe").addEventListener("click", async () => {
            const res = await fetch("/subscribe", { method: "POST" });
            const body = await res.json();
            if (body.url) { window.location = body.url; }
        });
    </script>
    {{- end}}
    {{- if .HasResult}}
    <h2>Notes</h2>
    <div class="notes">{{.Notes}}</div>
    {{- if .Flashcards}}
    <h2>Flashcards</h2>
    <ul>
        {{- range .Flashcards}}
        <li>{{.}}</li>
        {{- end}}
    </ul>
    {{- end}}
    {{- end}}
    <div class="footer"><p>{{.Footer}}</p></div>
</body>
</html>
`))

// render writes p as a 200 HTML page. Inline messages are never HTTP errors.
func render(c *fiber.Ctx, p page) error {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, p); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
