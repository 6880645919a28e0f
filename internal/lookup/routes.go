package lookup

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, lookupService LookupServiceAPI) {
	lookupController := &LookupController{Service: lookupService}

	lookupGroup := r.Group("/lookup")
	{
		lookupGroup.GET("/makes", lookupController.GetAllMakes)
		lookupGroup.GET("/models/:make", lookupController.GetModelsByMake)
		lookupGroup.GET("/categories", lookupController.GetAllCategories)
	}
}
