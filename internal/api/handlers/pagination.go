package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// paginate reads the shared page/limit query parameters.
func paginate(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}

func listResponse(data interface{}, page, limit int, total int64) gin.H {
	return gin.H{
		"data": data,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	}
}
