package module

import (
	"club-portal-system/internal/module/attendance"
	"club-portal-system/internal/module/dashboard"
	"club-portal-system/internal/module/event"
	"club-portal-system/internal/module/oauth"
	"club-portal-system/internal/module/ping"
	"club-portal-system/internal/module/project"
	"club-portal-system/internal/module/task"
	"club-portal-system/internal/module/user"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&user.ModuleUser{},
		&oauth.ModuleOAuth{},
		&ping.ModulePing{},
		&project.ModuleProject{},
		&event.ModuleEvent{},
		&attendance.ModuleAttendance{},
		&task.ModuleTask{},
		&dashboard.ModuleDashboard{},
	})
}
