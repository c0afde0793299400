package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"wellcheck_backend/config"
	"wellcheck_backend/database"
	_ "wellcheck_backend/docs" // Swagger docs
	accountctrl "wellcheck_backend/internal/controller/account"
	adminctrl "wellcheck_backend/internal/controller/admin"
	companyctrl "wellcheck_backend/internal/controller/company"
	"wellcheck_backend/internal/controller/middleware"
	userctrl "wellcheck_backend/internal/controller/user"
	"wellcheck_backend/internal/logger"
	"wellcheck_backend/internal/model"
	"wellcheck_backend/internal/notify"
	"wellcheck_backend/internal/repository"
	"wellcheck_backend/internal/scheduler"
	"wellcheck_backend/internal/service"
	"wellcheck_backend/internal/token"

	"gorm.io/gorm"
)

// @title WellCheck API
// @version 1.0
// @description Multi-tenant workplace wellbeing platform: companies invite employees, attach questionnaires and schedule recurring reminders; submissions are scored into risk levels.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			func(cfg *config.Config) *token.Codec { return token.NewCodec(cfg.TokenSecret) },
			notify.NewSMTPMailer,
			func(mailer notify.Mailer, cfg *config.Config) *notify.AsyncDispatcher {
				return notify.NewAsyncDispatcher(mailer, cfg.FrontendURL)
			},
			func(d *notify.AsyncDispatcher) notify.Dispatcher { return d },
			scheduler.NewCronScheduler,
			func(s *scheduler.CronScheduler) scheduler.Scheduler { return s },
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewCompanyRepository,
			repository.NewEmployeeRepository,
			repository.NewInviteRepository,
			repository.NewCompanyInviteRepository,
			repository.NewQuestionnaireRepository,
			repository.NewTipRepository,
			repository.NewResponseRepository,
			repository.NewCompanyQuestionnaireRepository,
			repository.NewQuestionnaireRuleRepository,
		),

		fx.Provide(
			service.NewAccountService,
			service.NewInviteService,
			service.NewCompanyService,
			service.NewCompanyInviteService,
			service.NewCatalogService,
			service.NewSubmissionService,
			service.NewCompanyQuestionnaireService,
		),

		fx.Provide(
			accountctrl.NewAccountController,
			accountctrl.NewInviteController,
			userctrl.NewQuestionnaireController,
			companyctrl.NewCompanyController,
			companyctrl.NewCompanyQuestionnaireController,
			adminctrl.NewAdminController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(StartBackgroundWorkers),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// StartBackgroundWorkers ties the notification dispatcher and the cron
// scheduler to the fx lifecycle.
func StartBackgroundWorkers(lc fx.Lifecycle, dispatcher *notify.AsyncDispatcher, sched *scheduler.CronScheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			dispatcher.Start()
			sched.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			sched.Stop()
			dispatcher.Stop()
			return nil
		},
	})
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	codec *token.Codec,
	accountCtrl *accountctrl.AccountController,
	inviteCtrl *accountctrl.InviteController,
	questionnaireCtrl *userctrl.QuestionnaireController,
	companyCtrl *companyctrl.CompanyController,
	cqCtrl *companyctrl.CompanyQuestionnaireController,
	adminCtrl *adminctrl.AdminController,
) {
	api := router.Group("/api/v1")

	// Public: registration, login and token redemption.
	accounts := api.Group("/accounts")
	{
		accounts.POST("/register", accountCtrl.Register)
		accounts.POST("/login", accountCtrl.Login)
		accounts.GET("/verify-email", accountCtrl.VerifyEmail)
		accounts.POST("/password-reset/request", accountCtrl.RequestPasswordReset)
		accounts.POST("/password-reset", accountCtrl.ResetPassword)
	}
	api.POST("/invites/accept", inviteCtrl.AcceptInvite)

	// Everything below needs a bearer token.
	auth := api.Group("")
	auth.Use(middleware.RequireAuth(codec))
	{
		auth.GET("/accounts/me", accountCtrl.GetProfile)
		auth.POST("/invites", inviteCtrl.CreateInvite)

		auth.GET("/questionnaires", questionnaireCtrl.ListQuestionnaires)
		auth.GET("/questionnaires/pending", questionnaireCtrl.Pending)
		auth.GET("/questionnaires/mandatory", questionnaireCtrl.Mandatory)
		auth.GET("/questionnaires/:questionnaire_id", questionnaireCtrl.GetQuestionnaire)
		auth.GET("/questionnaires/:questionnaire_id/tips", questionnaireCtrl.Tips)
		auth.POST("/questionnaires/:questionnaire_id/responses", questionnaireCtrl.Submit)
		auth.GET("/responses", questionnaireCtrl.MyResponses)
		auth.GET("/responses/:response_id", questionnaireCtrl.GetResponse)

		auth.POST("/companies", companyCtrl.CreateCompany)
		auth.GET("/companies/:company_id", companyCtrl.GetCompany)
		auth.GET("/companies/:company_id/employees", companyCtrl.ListEmployees)
		auth.POST("/companies/:company_id/invites", companyCtrl.CreateInvite)
		auth.GET("/companies/:company_id/invites", companyCtrl.ListInvites)
		auth.POST("/company-invites/accept", companyCtrl.AcceptInvite)
		auth.POST("/company-invites/cancel", companyCtrl.CancelInvite)

		auth.POST("/companies/:company_id/questionnaires", cqCtrl.Attach)
		auth.GET("/companies/:company_id/questionnaires", cqCtrl.List)
		auth.GET("/companies/:company_id/questionnaires/:questionnaire_id/fill-rate", companyCtrl.QuestionnaireFillRate)
		auth.PATCH("/company-questionnaires/:company_questionnaire_id", cqCtrl.SetActive)
		auth.POST("/company-questionnaires/:company_questionnaire_id/rules", cqCtrl.CreateRule)
		auth.GET("/company-questionnaires/:company_questionnaire_id/rules", cqCtrl.ListRules)
		auth.DELETE("/rules/:rule_id", cqCtrl.DeleteRule)
	}

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireAuth(codec))
	{
		adminGroup.POST("/questionnaires", adminCtrl.CreateQuestionnaire)
		adminGroup.GET("/questionnaires/:questionnaire_id", adminCtrl.GetQuestionnaire)
		adminGroup.POST("/questionnaires/:questionnaire_id/publish", adminCtrl.PublishQuestionnaire)
		adminGroup.POST("/questionnaires/:questionnaire_id/tips", adminCtrl.AddTip)
		adminGroup.DELETE("/questionnaires/:questionnaire_id", adminCtrl.DeleteQuestionnaire)
		adminGroup.GET("/companies", adminCtrl.ListCompanies)
		adminGroup.GET("/companies/count", adminCtrl.CountCompanies)
		adminGroup.POST("/companies/:company_id/verify", adminCtrl.VerifyCompany)
		adminGroup.DELETE("/companies/:company_id", adminCtrl.DeleteCompany)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("WellCheck API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) {
	err := db.AutoMigrate(
		&model.User{},
		&model.Company{},
		&model.Employee{},
		&model.Invite{},
		&model.CompanyInvite{},
		&model.Questionnaire{},
		&model.Question{},
		&model.Choice{},
		&model.Tip{},
		&model.QuestionnaireResponse{},
		&model.QuestionResponse{},
		&model.CompanyQuestionnaire{},
		&model.QuestionnaireRule{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to auto-migrate database schema")
	}
	log.Info().Msg("Database schema migrated")
}
