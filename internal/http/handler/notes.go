package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"

	"pdfdesk/internal/payment"
	"pdfdesk/internal/quota"
	"pdfdesk/internal/service"
)

// checkoutResponse is the body of POST /subscribe.
type checkoutResponse struct {
	URL string `json:"url" example:"https://checkout.stripe.com/c/pay/cs_test_a1"`
}

// NotesIndex renders the empty upload form.
func NotesIndex() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, notesPage())
	}
}

// NotesUpload runs the notes pipeline on the multipart field "file".
// Every outcome is an HTML page: notes and flashcards, an inline error,
// or the upsell once the session's free upload is used.
func NotesUpload(store *session.Store, svc service.NotesService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := notesPage()

		fh, err := c.FormFile("file")
		if err != nil || !service.ValidPDFName(fh.Filename) {
			p.Message = service.InvalidUploadMessage
			return render(c, p)
		}

		sess, err := store.Get(c)
		if err != nil {
			return err
		}

		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		res, err := svc.Process(c.UserContext(), sess, f, fh.Filename, fh.Header.Get(fiber.HeaderContentType), fh.Size)
		if err != nil {
			var stepErr *service.StepError
			switch {
			case errors.Is(err, service.ErrInvalidUpload):
				p.Message = service.InvalidUploadMessage
			case errors.Is(err, service.ErrQuotaExceeded):
				p.Message = quota.UpsellMessage
				p.Upsell = true
			case errors.As(err, &stepErr):
				p.Message = stepErr.Error()
			default:
				return err
			}
			return render(c, p)
		}

		p.HasResult = true
		p.Notes = res.Notes
		p.Flashcards = res.Flashcards
		return render(c, p)
	}
}

// Subscribe godoc
// @Summary      Start a subscription checkout
// @Description  Creates a checkout session for the current notes session and returns the URL to redirect the browser to.
// @Tags         subscription
// @Produce      json
// @Success      200  {object}  checkoutResponse
// @Failure      502  {object}  errorPayload
// @Failure      503  {object}  errorPayload
// @Router       /subscribe [post]
func Subscribe(store *session.Store, svc service.SubscriptionService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		key := sess.ID()
		// The cookie must exist before leaving for checkout so the success
		// redirect lands on the same session.
		if sess.Fresh() {
			if err := sess.Save(); err != nil {
				return err
			}
		}

		url, err := svc.Checkout(c.UserContext(), key)
		if err != nil {
			if errors.Is(err, payment.ErrNotConfigured) {
				return writeError(c, fiber.StatusServiceUnavailable, "CHECKOUT_UNAVAILABLE", "subscriptions are not available")
			}
			log.Warn().Err(err).Str("request_id", requestIDFromCtx(c)).Msg("checkout failed")
			return writeError(c, fiber.StatusBadGateway, "CHECKOUT_FAILED", "could not start checkout")
		}
		return c.JSON(checkoutResponse{URL: url})
	}
}

// SubscribeSuccess godoc
// @Summary      Complete a subscription checkout
// @Description  Confirms the checkout with the payment provider, records the subscription and redirects to the upload form.
// @Tags         subscription
// @Param        checkout_id  query  string  true  "Checkout session ID"
// @Success      303
// @Failure      400  {object}  errorPayload
// @Failure      402  {object}  errorPayload
// @Failure      502  {object}  errorPayload
// @Router       /subscribe/success [get]
func SubscribeSuccess(store *session.Store, svc service.SubscriptionService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}

		sub, err := svc.Confirm(c.UserContext(), sess.ID(), c.Query("checkout_id"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrCheckoutIDRequired):
				return writeError(c, fiber.StatusBadRequest, "CHECKOUT_ID_REQUIRED", "checkout_id is required")
			case errors.Is(err, service.ErrCheckoutNotPaid):
				return writeError(c, fiber.StatusPaymentRequired, "CHECKOUT_NOT_PAID", "checkout has not been paid")
			default:
				log.Warn().Err(err).Str("request_id", requestIDFromCtx(c)).Msg("checkout confirmation failed")
				return writeError(c, fiber.StatusBadGateway, "CHECKOUT_FAILED", "could not confirm checkout")
			}
		}

		log.Info().Str("session_key", sub.SessionKey).Str("checkout_id", sub.CheckoutID).Msg("subscription activated")
		return c.Redirect("/", fiber.StatusSeeOther)
	}
}

// SubscribeCancel sends the browser back to the form.
func SubscribeCancel() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
}
