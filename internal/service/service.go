package service

import (
	"go.uber.org/zap"

	"gdms/backend/config"
	"gdms/backend/internal/repository"
	"gdms/backend/pkg/jwt"
	"gdms/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Org          OrgService
	Menu         MenuService
	Topic        TopicService
	Stage        StageService
	Defense      DefenseService
	Announcement AnnouncementService
	Application  ApplicationService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	redisClient *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(repo, jwtMgr, redisClient, &cfg.Auth, logger),
		User:         NewUserService(repo, logger),
		Org:          NewOrgService(repo, logger),
		Menu:         NewMenuService(repo, logger),
		Topic:        NewTopicService(repo, logger),
		Stage:        NewStageService(repo, logger),
		Defense:      NewDefenseService(repo, logger),
		Announcement: NewAnnouncementService(repo, logger),
		Application:  NewApplicationService(repo, logger),
		Export:       NewExportService(repo, logger),
	}
}
