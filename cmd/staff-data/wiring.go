package main

import (
	"github.com/sirupsen/logrus"

	"staffledger/modules/staff/domain/aggregates/staff"
	"staffledger/modules/staff/infrastructure/persistence"
	"staffledger/modules/staff/services"
	"staffledger/pkg/configuration"
	"staffledger/pkg/eventbus"
)

func newPublisher(logger *logrus.Logger) eventbus.EventBus {
	bus := eventbus.NewEventPublisher(logger)
	bus.Subscribe(func(ev *staff.CreatedEvent) {
		logger.WithFields(logrus.Fields{
			"user_id":         ev.Result.UserID(),
			"employee_number": ev.History.Employment.EmployeeNumber,
		}).Info("registered staff member")
	})
	return bus
}

func buildImportService() *services.ImportService {
	conf := configuration.Use()
	return services.NewImportService(
		persistence.NewStaffRepository(),
		persistence.NewHistoryRepository(),
		persistence.NewPositionRepository(),
		persistence.NewDepartmentRepository(),
		newPublisher(conf.Logger()),
		conf.Import.RowTimeout,
	)
}

func buildDirectoryService() *services.DirectoryService {
	return services.NewDirectoryService(
		persistence.NewStaffRepository(),
		persistence.NewDirectoryRepository(),
		persistence.NewExportRepository(),
	)
}
