package config

import (
	"io"

	"hotelbooking/middleware"
	"hotelbooking/services/logger"
	"hotelbooking/validator"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewLogger builds the application logger. When LOG_DIR is set the output is
// also written to a dated file there; the returned closer closes it.
func NewLogger(cfg *Config) (logger.Logger, io.Closer, error) {
	opts := logger.Options{
		Level: logger.ParseLevel(cfg.LogLevel),
		JSON:  cfg.LogFormat == "json",
	}
	var closer io.Closer = nopCloser{}
	if cfg.LogDir != "" {
		out, f, err := logger.FileOutput(cfg.LogDir)
		if err != nil {
			return nil, nil, err
		}
		opts.Output = out
		closer = f
	}
	return logger.New(opts), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewRouter tạo gin engine với CORS, session id và log lỗi 5xx
func NewRouter(cfg *Config, log logger.Logger) *gin.Engine {
	validator.RegisterGin()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Session-ID")
	configCors.AddExposeHeaders("X-Session-ID")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	if len(cfg.CORSOrigins) > 0 {
		configCors.AllowOrigins = cfg.CORSOrigins
	} else {
		configCors.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	router.Use(cors.New(configCors))

	_ = router.SetTrustedProxies(nil)

	router.Use(middleware.SessionMiddleware(), middleware.ErrorHandler(log))
	return router
}
