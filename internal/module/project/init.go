package project

import (
	"log/slog"

	"club-portal-system/internal/global/logger"
)

var log *slog.Logger

type ModuleProject struct{}

func (p *ModuleProject) GetName() string {
	return "Project"
}

func (p *ModuleProject) Init() {
	log = logger.New("Project")
}

func selfInit() {
	p := &ModuleProject{}
	p.Init()
}
