package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jaeho/gongu/internal/app/controllers"
	"github.com/jaeho/gongu/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	itemController *controllers.ItemController,
	contentController *controllers.ContentController,
	commentController *controllers.CommentController,
	optionController *controllers.OptionController,
	recordController *controllers.RecordController,
	paymentController *controllers.PaymentController,
	userLogController *controllers.UserLogController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// Everything below requires a valid token
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		items := authenticated.Group("/items")
		{
			items.POST("", itemController.CreateItem)
			items.GET("", itemController.ListItems)
			items.GET("/:id", itemController.GetItem)
			items.PUT("/:id", itemController.UpdateItem)
			items.DELETE("/:id", itemController.DeleteItem)

			items.POST("/:id/contents", contentController.CreateContent)
			items.POST("/:id/contents/image", contentController.UploadImageContent)
			items.GET("/:id/contents", contentController.ListContents)

			items.POST("/:id/comments", commentController.CreateComment)
			items.GET("/:id/comments", commentController.ListComments)

			items.POST("/:id/options", optionController.CreateCategory)
			items.GET("/:id/options", optionController.ListCategories)

			items.POST("/:id/records", recordController.CreateRecord)
			items.GET("/:id/records", recordController.ListRecords)
			items.GET("/:id/records/mine", recordController.ListMyRecords)

			items.GET("/:id/payments", paymentController.ListPayments)
		}

		contents := authenticated.Group("/contents")
		{
			contents.PUT("/:id", contentController.UpdateContent)
			contents.DELETE("/:id", contentController.DeleteContent)
		}

		comments := authenticated.Group("/comments")
		{
			comments.PUT("/:id", commentController.UpdateComment)
			comments.DELETE("/:id", commentController.DeleteComment)
		}

		options := authenticated.Group("/options")
		{
			options.GET("/:id", optionController.GetCategory)
			options.PUT("/:id", optionController.UpdateCategory)
			options.DELETE("/:id", optionController.DeleteCategory)
			options.POST("/:id/items", optionController.CreateOptionItem)
		}

		optionItems := authenticated.Group("/option-items")
		{
			optionItems.PUT("/:id", optionController.UpdateOptionItem)
			optionItems.DELETE("/:id", optionController.DeleteOptionItem)
		}

		records := authenticated.Group("/records")
		{
			records.GET("/:id", recordController.GetRecord)
			records.PUT("/:id", recordController.UpdateRecord)
			records.DELETE("/:id", recordController.DeleteRecord)
		}

		payments := authenticated.Group("/payments")
		{
			payments.GET("/mine", paymentController.ListMyPayments)
			payments.GET("/:id", paymentController.GetPayment)
			payments.PATCH("/:id/status", paymentController.UpdatePaymentStatus)
		}

		logs := authenticated.Group("/logs")
		{
			logs.GET("", userLogController.ListMyLogs)

			adminLogs := logs.Group("")
			adminLogs.Use(authMiddleware.AdminRequired())
			{
				adminLogs.GET("/all", userLogController.ListAllLogs)
			}
		}
	}
}
