package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dreamzz-lol/gatekeeper/common"
	"github.com/dreamzz-lol/gatekeeper/model"
	"github.com/dreamzz-lol/gatekeeper/payment"
	"github.com/dreamzz-lol/gatekeeper/pkg/log"
	"github.com/dreamzz-lol/gatekeeper/service"
	"github.com/gin-gonic/gin"
)

// GetSession validates a checkout session for the confirmation page: paid,
// within the replay window, and not already shown. The view gate is UX
// only; artifact consumption is enforced separately by GetArtifact.
func GetSession(pay *payment.Client) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sessionID := ctx.Param("SessionID")
		if sessionID == "" {
			common.ResponseBadRequestError(ctx)
			return
		}
		if service.HasBeenViewed(sessionID) {
			common.ResponseError(ctx, http.StatusForbidden, fmt.Errorf("session already used"))
			return
		}
		plan, email, err := pay.AuthorizeSession(sessionID)
		if err != nil {
			common.ResponseError(ctx, httpStatus(err), err)
			return
		}
		common.ResponseSuccess(ctx, gin.H{
			"Valid":         true,
			"Plan":          plan,
			"CustomerEmail": email,
			"SessionID":     sessionID,
		})
	}
}

// GetArtifact is the one-time retrieval endpoint. On success the artifact
// is deleted in the same store transaction that read it, so a second call
// fails with not found even though the session is still paid.
func GetArtifact(pay *payment.Client) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sessionID := ctx.Param("SessionID")
		if sessionID == "" {
			common.ResponseBadRequestError(ctx)
			return
		}
		if _, _, err := pay.AuthorizeSession(sessionID); err != nil {
			common.ResponseError(ctx, httpStatus(err), err)
			return
		}
		a, err := service.RetrieveArtifact(sessionID)
		if err != nil {
			if errors.Is(err, model.NotFoundErr) {
				// no code was ever minted for this session: issuance has
				// not caught up yet, so the page should keep polling
				if _, cerr := service.CodeBySession(sessionID); errors.Is(cerr, model.NotFoundErr) {
					common.ResponseError(ctx, httpStatus(model.NotReadyErr),
						fmt.Errorf("%w: payment may still be processing", model.NotReadyErr))
					return
				}
			}
			common.ResponseError(ctx, httpStatus(err), err)
			return
		}
		log.Info("artifact for session %v retrieved, one-time access used", sessionID)
		common.ResponseSuccess(ctx, gin.H{
			"Telegram": a.TelegramLink,
			"Discord":  a.DiscordCode,
			"Plan":     a.Plan,
			"Error":    a.Error,
		})
	}
}

// PostViewed marks the confirmation page of a session as shown.
func PostViewed(ctx *gin.Context) {
	sessionID := ctx.Param("SessionID")
	if sessionID == "" {
		common.ResponseBadRequestError(ctx)
		return
	}
	if err := service.MarkViewed(sessionID); err != nil {
		common.ResponseError(ctx, httpStatus(err), err)
		return
	}
	common.ResponseSuccess(ctx, gin.H{"Success": true})
}
