package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/spotlight/internal/discovery"
	"github.com/joshua-takyi/spotlight/internal/models"
	"github.com/joshua-takyi/spotlight/internal/services"
)

func bindSelection(c *gin.Context) (discovery.Selection, bool) {
	var sel discovery.Selection
	if err := c.ShouldBindQuery(&sel); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid query parameters: "+err.Error()))
		return sel, false
	}
	sel.Sort = discovery.ParseSortOrder(c.Query("sort"))
	return sel, true
}

// ListPosts serves GET /posts with category, date, neighborhood, price,
// city, name, sort, page and limit query parameters.
func ListPosts(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sel, ok := bindSelection(c)
		if !ok {
			return
		}

		page, err := ps.ListPosts(c.Request.Context(), sel)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.PaginatedResponse(page.Items, metaFor(page)))
	}
}

func Search(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sel, ok := bindSelection(c)
		if !ok {
			return
		}

		page, err := ps.Search(c.Request.Context(), sel.Query, sel)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.PaginatedResponse(page.Items, metaFor(page)))
	}
}

func GetPost(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := ps.GetPost(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(post, ""))
	}
}

func ListCities(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cities, err := ps.Cities(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(cities, ""))
	}
}
