package handlers

import (
	"github.com/centsible/centsible_app/cmd/docs"
	"github.com/centsible/centsible_app/internal/core/domain"
	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	"github.com/centsible/centsible_app/internal/middleware"
	"github.com/centsible/centsible_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	RegisterCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, cfg, services.User)

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerPaymentMethodRoutes(v1, services.PaymentMethod)
	registerTransactionRoutes(v1, services.Transaction)
	RegisterObligationRoutes(v1, services.Obligation)
	registerBudgetRoutes(v1, services.Budget)
	registerGoalRoutes(v1, services.Goal)
	registerDebtRoutes(v1, services.Debt)
	registerFriendRoutes(v1, services.Friend)
}

// RegisterCustomValidators wires the domain enums into gin's binding
// validator so requests are rejected before they reach the services.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("txcategory", func(fl validator.FieldLevel) bool {
		return domain.ValidTransactionCategory(domain.TransactionCategory(fl.Field().String()))
	})
	_ = v.RegisterValidation("obfrequency", func(fl validator.FieldLevel) bool {
		return domain.ValidFrequency(domain.Frequency(fl.Field().String()))
	})
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
