package handler

import "gdms/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Org          *OrgHandler
	Menu         *MenuHandler
	Topic        *TopicHandler
	Stage        *StageHandler
	Defense      *DefenseHandler
	Announcement *AnnouncementHandler
	Application  *ApplicationHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Org:          NewOrgHandler(svc.Org),
		Menu:         NewMenuHandler(svc.Menu),
		Topic:        NewTopicHandler(svc.Topic),
		Stage:        NewStageHandler(svc.Stage),
		Defense:      NewDefenseHandler(svc.Defense),
		Announcement: NewAnnouncementHandler(svc.Announcement),
		Application:  NewApplicationHandler(svc.Application),
		Export:       NewExportHandler(svc.Export),
	}
}
