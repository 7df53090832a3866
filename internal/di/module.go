package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/membersonly/internal/app"
	"github.com/polkiloo/membersonly/internal/config"
	"github.com/polkiloo/membersonly/internal/logger"
	"github.com/polkiloo/membersonly/internal/pkg/auth"
	"github.com/polkiloo/membersonly/internal/server/http/handlers"
	"github.com/polkiloo/membersonly/internal/server/http/router"
	"github.com/polkiloo/membersonly/internal/storage/postgres"
	"github.com/polkiloo/membersonly/internal/storage/sessionstore"
	"github.com/polkiloo/membersonly/internal/usecase"
	"github.com/polkiloo/membersonly/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		sessionstore.Module,
		auth.Module,
		worker.Module,
		usecase.Module,
		fx.Provide(func(s *postgres.Storage) app.HealthChecker { return s }),
		fx.Provide(func(f *app.MembersFacade) handlers.MembersFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
