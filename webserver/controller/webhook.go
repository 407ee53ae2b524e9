package controller

import (
	"io"
	"net/http"

	"github.com/dreamzz-lol/gatekeeper/common"
	"github.com/dreamzz-lol/gatekeeper/model"
	"github.com/dreamzz-lol/gatekeeper/payment"
	"github.com/dreamzz-lol/gatekeeper/pkg/log"
	"github.com/dreamzz-lol/gatekeeper/service"
	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	stripe "github.com/stripe/stripe-go/v76"
)

// PostStripeWebhook handles payment confirmations. Whatever happens after
// signature verification, the event is acknowledged: invite generation
// failures are captured in the artifact and retried on redelivery, never
// bounced back to Stripe.
func PostStripeWebhook(pay *payment.Client, linker service.InviteLinker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			common.ResponseBadRequestError(ctx)
			return
		}
		event, err := pay.ConstructEvent(payload, ctx.GetHeader("Stripe-Signature"))
		if err != nil {
			log.Warn("stripe webhook: signature verification failed: %v", err)
			common.ResponseError(ctx, http.StatusBadRequest, err)
			return
		}
		var sessionID string
		var amount int64
		var email string
		switch event.Type {
		case "checkout.session.completed":
			var s stripe.CheckoutSession
			if err := jsoniter.Unmarshal(event.Data.Raw, &s); err != nil {
				common.ResponseBadRequestError(ctx)
				return
			}
			sessionID = s.ID
			// the pre-discount subtotal keeps free trials and coupon
			// codes on the right plan
			amount = s.AmountSubtotal
			if amount == 0 {
				amount = s.AmountTotal
			}
			if s.CustomerDetails != nil {
				email = s.CustomerDetails.Email
			}
		case "payment_intent.succeeded":
			var pi stripe.PaymentIntent
			if err := jsoniter.Unmarshal(event.Data.Raw, &pi); err != nil {
				common.ResponseBadRequestError(ctx)
				return
			}
			sessionID = pi.ID
			amount = pi.Amount
		default:
			log.Trace("stripe webhook: unhandled event type %v", event.Type)
			common.ResponseSuccess(ctx, gin.H{"Received": true})
			return
		}
		plan := model.PlanFromAmount(amount)
		log.Info("stripe webhook: %v for session %v, amount %v, plan %v", event.Type, sessionID, amount, plan)
		if _, err := service.IssueInvites(linker, sessionID, plan, email); err != nil {
			// store failure; the redelivered event will retry
			log.Error("stripe webhook: %v", err)
		}
		common.ResponseSuccess(ctx, gin.H{"Received": true})
	}
}
