package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/spotlight/internal/models"
	"github.com/joshua-takyi/spotlight/internal/services"
)

// ownerFromPath resolves :uid and checks the caller may act for that user.
func ownerFromPath(c *gin.Context) (uuid.UUID, bool) {
	claims, _, ok := currentUser(c)
	if !ok {
		return uuid.Nil, false
	}
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID format"))
		return uuid.Nil, false
	}
	if !claims.CanActFor(uid.String()) {
		c.JSON(http.StatusForbidden, models.ErrorResponse("access denied"))
		return uuid.Nil, false
	}
	return uid, true
}

func SavePost(ss *services.SavedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := ownerFromPath(c)
		if !ok {
			return
		}

		var req struct {
			PostID string `json:"post_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("post_id is required"))
			return
		}

		saved, err := ss.SavePost(c.Request.Context(), uid, req.PostID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(saved.PostIDs(), "Post saved"))
	}
}

func UnsavePost(ss *services.SavedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := ownerFromPath(c)
		if !ok {
			return
		}

		if err := ss.UnsavePost(c.Request.Context(), uid, c.Param("postId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Post removed from saved"))
	}
}

func ListSaved(ss *services.SavedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := ownerFromPath(c)
		if !ok {
			return
		}

		posts, err := ss.ListSaved(c.Request.Context(), uid)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(posts, ""))
	}
}
