package controller

import (
	"errors"

	"skillforge_backend/internal/service"
	"skillforge_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// List godoc
// @Summary The user's notifications, newest first
// @Tags notifications
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	list, err := c.NotificationService.List(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	unread, err := c.NotificationService.UnreadCount(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"notifications": list, "unread": unread})
}

// MarkRead godoc
// @Summary Mark one notification as read
// @Tags notifications
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "notification id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.NotificationService.MarkRead(ctx.Request.Context(), ctx.Param("id"), claims.UserID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// MarkAllRead godoc
// @Summary Mark every notification as read
// @Tags notifications
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/notifications/read-all [put]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	n, err := c.NotificationService.MarkAllRead(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"marked": n})
}

// Delete godoc
// @Summary Dismiss a notification
// @Tags notifications
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "notification id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/notifications/{id} [delete]
func (c *NotificationController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.NotificationService.Delete(ctx.Request.Context(), ctx.Param("id"), claims.UserID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
