package attendance

import (
	"log/slog"

	"club-portal-system/internal/global/logger"
)

var log *slog.Logger

type ModuleAttendance struct{}

func (a *ModuleAttendance) GetName() string {
	return "Attendance"
}

func (a *ModuleAttendance) Init() {
	log = logger.New("Attendance")
}
