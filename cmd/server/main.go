package main

import (
	"context"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"staffledger/modules/staff/domain/aggregates/staff"
	"staffledger/modules/staff/infrastructure/persistence"
	"staffledger/modules/staff/presentation/controllers"
	"staffledger/modules/staff/services"
	"staffledger/pkg/configuration"
	"staffledger/pkg/eventbus"
	"staffledger/pkg/middleware"
	"staffledger/pkg/server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.ConnectionString())
	if err != nil {
		panic(err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("failed to reach database: %v", err)
	}

	bus := eventbus.NewEventPublisher(logger)
	bus.Subscribe(func(ev *staff.CreatedEvent) {
		logger.WithFields(logrus.Fields{
			"user_id":         ev.Result.UserID(),
			"employee_number": ev.History.Employment.EmployeeNumber,
		}).Info("registered staff member")
	})

	directory := services.NewDirectoryService(
		persistence.NewStaffRepository(),
		persistence.NewDirectoryRepository(),
		persistence.NewExportRepository(),
	)

	srv := &server.HTTPServer{
		Controllers: []server.Controller{
			controllers.NewUsersAPIController(directory),
			controllers.NewHealthController(),
		},
		Middlewares: []mux.MiddlewareFunc{
			middleware.WithPool(pool),
			middleware.RequestLogger(logger),
		},
	}

	logger.Infof("listening on %s", conf.ServerAddress)
	if err := srv.Start(conf.ServerAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
