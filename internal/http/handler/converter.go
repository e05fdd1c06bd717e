package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pdfdesk/internal/service"
)

// ConverterIndex renders the empty upload form.
func ConverterIndex() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, converterPage(""))
	}
}

// ConvertUpload converts the multipart field "file" and answers with the
// .docx as an attachment, or with the form and an inline message.
func ConvertUpload(svc service.ConversionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil || !service.ValidPDFName(fh.Filename) {
			return render(c, converterPage(service.InvalidUploadMessage))
		}

		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		art, err := svc.Convert(c.UserContext(), f, fh.Filename, fh.Header.Get(fiber.HeaderContentType), fh.Size)
		if err != nil {
			var stepErr *service.StepError
			switch {
			case errors.Is(err, service.ErrInvalidUpload):
				return render(c, converterPage(service.InvalidUploadMessage))
			case errors.As(err, &stepErr):
				return render(c, converterPage(stepErr.Error()))
			default:
				return err
			}
		}

		data, err := svc.Collect(c.UserContext(), art)
		if err != nil {
			return err
		}
		c.Attachment(art.Filename)
		c.Set(fiber.HeaderContentType, art.ContentType)
		return c.Send(data)
	}
}
