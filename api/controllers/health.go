package controllers

import (
	"net/http"

	"github.com/nhakalabs/storefront-gateway/api/responses"
	"github.com/nhakalabs/storefront-gateway/pkg/config"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
	pkgredis "github.com/nhakalabs/storefront-gateway/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Nhaka-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, redisP pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Nhaka-Env", cfg.App.Env)
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis not ready"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
