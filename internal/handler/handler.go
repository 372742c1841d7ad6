package handler

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/config"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	validate          *validator.Validate
	config            *config.Config
	repository        *repository.Repository
	translator        ut.Translator
	mqChannel         *amqp.Channel
	redisClient       *redis.Client
	adminPasswordHash []byte

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mqCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	// 配置中的管理员密码是明文，启动时计算一次哈希，之后只保留哈希
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:          validate,
		config:            cfg,
		repository:        repo,
		translator:        trans,
		mqChannel:         mqCh,
		redisClient:       rdb,
		adminPasswordHash: passwordHash,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if h.config.Server.MaxRequests > 0 {
		h.Mux.Use(httprate.LimitByIP(h.config.Server.MaxRequests, time.Second))
	}

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	h.Mux.Route("/working-weeks", func(r chi.Router) {
		r.Get("/", h.GetAllWorkingWeeks)
		r.With(h.auth, h.RequiredRole([]string{RoleAdmin})).Post("/", h.CreateWorkingWeek)

		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.workingWeek)
			r.Get("/", h.GetWorkingWeek)

			// 以下修改操作必须由管理员完成
			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.Use(h.RequiredRole([]string{RoleAdmin}))
				r.Patch("/", h.UpdateWorkingWeek)
				r.Delete("/", h.DeleteWorkingWeek)
				r.Post("/shifts", h.AddWorkingWeekShift)
				r.Delete("/shifts/{shiftID}", h.RemoveWorkingWeekShift)
			})

			// 工作时间计算
			r.Post("/date-add", h.DateAdd)
			r.Post("/date-diff", h.DateDiff)
			r.Post("/shifts/enumerate", h.EnumerateShifts)
			r.Get("/is-working", h.IsWorking)
			r.Get("/export", h.ExportWorkingWeek)
		})
	})
}
