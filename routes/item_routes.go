package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/joy095/shareit/config"
	"github.com/joy095/shareit/controllers/item_controller"
	"github.com/joy095/shareit/middlewares/sharer"
)

// RegisterItemRoutes registers the item read routes.
func RegisterItemRoutes(router *gin.Engine, service item_controller.ItemService, cfg config.Config) {
	itemController := item_controller.NewItemController(service, cfg.ItemPageSize)

	items := router.Group("/items")
	items.Use(sharer.SharerMiddleware())
	{
		items.GET("", itemController.ListItems)
		items.GET("/:id", itemController.GetItem)
	}
}
