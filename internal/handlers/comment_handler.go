package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/spotlight/internal/models"
	"github.com/joshua-takyi/spotlight/internal/services"
)

func ListComments(cs *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit"))
			return
		}

		comments, err := cs.ListComments(c.Request.Context(), c.Param("id"), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(comments, ""))
	}
}

func AddComment(cs *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, userId, ok := currentUser(c)
		if !ok {
			return
		}

		var req struct {
			Text   string `json:"text"`
			Rating int    `json:"rating"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		comment := &models.Comment{
			PostID:   c.Param("id"),
			UserID:   userId,
			Username: claims.Username,
			Text:     req.Text,
			Rating:   req.Rating,
		}
		created, err := cs.AddComment(c.Request.Context(), comment)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Comment added"))
	}
}
