package routes

import (
	"vitalimes-backend/controllers"
	"vitalimes-backend/handler"
	"vitalimes-backend/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Options struct {
	JWTSecret string
	// UploadDir is served at /uploads when media is stored on local disk.
	UploadDir string
}

func SetupRoutes(router *gin.Engine, productCtrl *controllers.ProductController, opts Options) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", gin.WrapF(handler.Health))

	for _, prefix := range []string{"/products", "/api/products"} {
		products := router.Group(prefix)
		products.GET("", productCtrl.GetAllProducts)
		products.GET("/:id", productCtrl.GetProductByID)

		admin := products.Group("")
		admin.Use(middleware.AuthMiddleware(opts.JWTSecret))
		{
			admin.POST("", productCtrl.CreateProduct)
			admin.PUT("/:id", productCtrl.UpdateProduct)
			admin.DELETE("/:id", productCtrl.DeleteProduct)
		}
	}

	if opts.UploadDir != "" {
		router.Static("/uploads", opts.UploadDir)
	}
}
