package v1

import (
	"net/http"

	"urswat-backend/internal/delivery/http/middleware"
	"urswat-backend/internal/delivery/http/response"
	"urswat-backend/internal/domain"
	"urswat-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	TalentUC    domain.TalentUsecase
	CompanyUC   domain.CompanyUsecase
	AuthUC      domain.AuthUsecase
	UserUC      domain.UserUsecase
	Tokens      *auth.TokenManager
	UploadDir   string
	FrontendURL string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	// Uploaded CVs are public by contract: no access control on stored files
	r.Static("/uploads", deps.UploadDir)

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public intake routes
	NewTalentHandler(api, deps.TalentUC)
	NewCompanyHandler(api, deps.CompanyUC)
	NewAuthHandler(api, deps.AuthUC)

	// Staff routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))
	{
		NewUserHandler(protected, deps.UserUC)
	}

	return r
}
