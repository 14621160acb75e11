package routes

import (
	"ain-oman-crm/internal/handlers"
	"ain-oman-crm/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes registers every route that requires authentication.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		buildings := apiGroup.Group("/buildings")
		{
			buildings.GET("", handlers.ListBuildingsHandler)
			buildings.GET("/:id", handlers.GetBuildingHandler)
			buildings.POST("", middleware.PermissionMiddleware("properties_manage"), handlers.CreateBuildingHandler)
			buildings.PUT("/:id", middleware.PermissionMiddleware("properties_manage"), handlers.UpdateBuildingHandler)
			buildings.DELETE("/:id", middleware.PermissionMiddleware("properties_manage"), handlers.DeleteBuildingHandler)
		}

		units := apiGroup.Group("/units")
		{
			units.GET("", handlers.ListUnitsHandler)
			units.GET("/:id", handlers.GetUnitHandler)
			units.POST("", middleware.PermissionMiddleware("properties_manage"), handlers.CreateUnitHandler)
			units.PUT("/:id", middleware.PermissionMiddleware("properties_manage"), handlers.UpdateUnitHandler)
			units.DELETE("/:id", middleware.PermissionMiddleware("properties_manage"), handlers.DeleteUnitHandler)
		}

		tenants := apiGroup.Group("/tenants")
		{
			tenants.GET("", handlers.ListTenantsHandler)
			tenants.GET("/:id", handlers.GetTenantHandler)
			tenants.GET("/:id/contracts", handlers.GetTenantContractsHandler)
			tenants.PUT("/:id", middleware.PermissionMiddleware("tenants_manage"), handlers.UpdateTenantHandler)
		}

		leases := apiGroup.Group("/leases")
		{
			leases.POST("/quote", handlers.QuoteLeaseHandler)
			leases.POST("", middleware.PermissionMiddleware("leases_submit"), handlers.CreateLeaseBookingHandler)
			leases.GET("", handlers.ListLeaseContractsHandler)
			leases.GET("/:id", handlers.GetLeaseContractHandler)
			leases.POST("/:id/cancel", middleware.PermissionMiddleware("leases_cancel"), handlers.CancelLeaseContractHandler)
			leases.GET("/:id/instruments", handlers.ListContractInstrumentsHandler)
			leases.GET("/:id/instruments/export", middleware.PermissionMiddleware("instruments_export"), handlers.ExportContractInstrumentsHandler)
		}

		instruments := apiGroup.Group("/instruments")
		{
			instruments.POST("/unify", handlers.UnifyInstrumentsHandler)
			instruments.POST("/:id/status", middleware.PermissionMiddleware("instruments_update"), handlers.UpdateInstrumentStatusHandler)
			instruments.POST("/:id/image", middleware.PermissionMiddleware("instruments_update"), handlers.UploadInstrumentImageHandler)
		}

		surcharges := apiGroup.Group("/surcharge-templates")
		{
			surcharges.GET("", handlers.ListSurchargeTemplatesHandler)
			surcharges.POST("", middleware.PermissionMiddleware("surcharges_manage"), handlers.CreateSurchargeTemplateHandler)
			surcharges.DELETE("/:id", middleware.PermissionMiddleware("surcharges_manage"), handlers.DeleteSurchargeTemplateHandler)
			surcharges.POST("/:id/preview", handlers.PreviewSurchargeFormulaHandler)
		}

		meters := apiGroup.Group("/meters")
		{
			meters.POST("/upload", handlers.UploadMeterPhotoHandler)
			meters.POST("/recognize", handlers.RecognizeMeterReadingHandler)
		}

		notifications := apiGroup.Group("/notifications")
		{
			notifications.GET("/ws", handlers.NotificationsWSEndpoint)
			notifications.GET("", handlers.ListNotificationsHandler)
			notifications.POST("/:id/read", handlers.MarkNotificationReadHandler)
		}

		users := apiGroup.Group("/users")
		{
			users.GET("", middleware.PermissionMiddleware("users_view"), handlers.ListUsersHandler)
			users.GET("/:id", middleware.PermissionMiddleware("users_view"), handlers.GetUserHandler)
			users.POST("", middleware.PermissionMiddleware("users_manage"), handlers.CreateUserHandler)
			users.PUT("/:id", middleware.PermissionMiddleware("users_manage"), handlers.UpdateUserHandler)
			users.DELETE("/:id", middleware.PermissionMiddleware("users_manage"), handlers.DeleteUserHandler)
		}

		roles := apiGroup.Group("/roles")
		{
			roles.GET("", middleware.PermissionMiddleware("roles_view"), handlers.ListRolesHandler)
			roles.GET("/:id", middleware.PermissionMiddleware("roles_view"), handlers.GetRoleHandler)
			roles.POST("", middleware.PermissionMiddleware("roles_manage"), handlers.CreateRoleHandler)
			roles.PUT("/:id", middleware.PermissionMiddleware("roles_manage"), handlers.UpdateRoleHandler)
			roles.DELETE("/:id", middleware.PermissionMiddleware("roles_manage"), handlers.DeleteRoleHandler)
		}

		permissions := apiGroup.Group("/permissions")
		{
			permissions.GET("", middleware.PermissionMiddleware("roles_view"), handlers.ListPermissionsHandler)
			permissions.POST("", middleware.PermissionMiddleware("roles_manage"), handlers.CreatePermissionHandler)
			permissions.PUT("/:id", middleware.PermissionMiddleware("roles_manage"), handlers.UpdatePermissionHandler)
			permissions.DELETE("/:id", middleware.PermissionMiddleware("roles_manage"), handlers.DeletePermissionHandler)
		}
	}
}
