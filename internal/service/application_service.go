package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gdms/backend/internal/dto"
	"gdms/backend/internal/model"
	"gdms/backend/internal/repository"
	"gdms/backend/pkg/apperrors"
)

// ── 申请模块业务错误 ──

var (
	ErrApplicationNotFound    = apperrors.NotFoundf("申请不存在")
	ErrApplicationReviewed    = apperrors.Statef("申请已被审批")
	ErrApplicationNotOwner    = apperrors.Authf("只能操作自己的申请")
	ErrApplicationNotRejected = apperrors.Statef("仅被驳回的申请可重新提交")
)

// ApplicationDetail 申请详情（含操作日志）
type ApplicationDetail struct {
	Application model.Application      `json:"application"`
	Logs        []model.ApplicationLog `json:"logs"`
}

// ApplicationService 学生申请业务接口
type ApplicationService interface {
	Create(ctx context.Context, req *dto.CreateApplicationRequest, studentID int64) (*model.Application, error)
	Get(ctx context.Context, id int64) (*ApplicationDetail, error)
	Find(ctx context.Context, query *dto.ApplicationListQuery) ([]model.Application, int64, error)
	Review(ctx context.Context, id int64, req *dto.ReviewApplicationRequest, reviewerID int64) (*model.Application, error)
	Withdraw(ctx context.Context, id int64, studentID int64) (*model.Application, error)
	Resubmit(ctx context.Context, id int64, req *dto.ResubmitApplicationRequest, studentID int64) (*model.Application, error)
}

type applicationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewApplicationService 创建 ApplicationService 实例
func NewApplicationService(repo *repository.Repository, logger *zap.Logger) ApplicationService {
	return &applicationService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *applicationService) Create(ctx context.Context, req *dto.CreateApplicationRequest, studentID int64) (*model.Application, error) {
	app := &model.Application{
		Type:      req.Type,
		StudentID: studentID,
		TopicID:   req.TopicID,
		Status:    model.ApplicationSubmitted,
		Payload:   req.Payload,
	}

	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Application.Create(ctx, app); err != nil {
			return err
		}
		return txRepo.ApplicationLog.Create(ctx, &model.ApplicationLog{
			ApplicationID: app.ID,
			ActorID:       &studentID,
			Action:        "SUBMIT",
		})
	})
	if err != nil {
		s.logger.Error("提交申请失败", zap.Int64("student_id", studentID), zap.Error(err))
		return nil, err
	}

	return app, nil
}

// ────────────────────── Get ──────────────────────

func (s *applicationService) Get(ctx context.Context, id int64) (*ApplicationDetail, error) {
	app, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logs, err := s.repo.ApplicationLog.ListByApplication(ctx, id)
	if err != nil {
		s.logger.Error("查询申请日志失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return &ApplicationDetail{Application: *app, Logs: logs}, nil
}

// ────────────────────── Find ──────────────────────

func (s *applicationService) Find(ctx context.Context, query *dto.ApplicationListQuery) ([]model.Application, int64, error) {
	query.Normalize()

	filter := repository.ApplicationFilter{
		Keyword:   query.Keyword,
		Type:      query.Type,
		Status:    model.ApplicationStatus(query.Status),
		StudentID: query.StudentID,
	}

	apps, total, err := s.repo.Application.Find(ctx, filter, query.Page, query.PageSize)
	if err != nil {
		s.logger.Error("查询申请列表失败", zap.Error(err))
		return nil, 0, err
	}
	return apps, total, nil
}

// ────────────────────── Review ──────────────────────

func (s *applicationService) Review(ctx context.Context, id int64, req *dto.ReviewApplicationRequest, reviewerID int64) (*model.Application, error) {
	decision := model.ApplicationStatus(req.Decision)
	if !decision.Decision() {
		return nil, apperrors.Validationf("非法的审批决定: %s", req.Decision)
	}

	app, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status != model.ApplicationSubmitted {
		return nil, ErrApplicationReviewed
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		app.Status = decision
		if err := txRepo.Application.Update(ctx, app); err != nil {
			return err
		}
		return txRepo.ApplicationLog.Create(ctx, &model.ApplicationLog{
			ApplicationID: id,
			ActorID:       &reviewerID,
			Action:        string(decision),
			Comment:       req.Comment,
		})
	})
	if err != nil {
		s.logger.Error("审批申请失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return app, nil
}

// ────────────────────── Withdraw ──────────────────────

func (s *applicationService) Withdraw(ctx context.Context, id int64, studentID int64) (*model.Application, error) {
	app, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.StudentID != studentID {
		return nil, ErrApplicationNotOwner
	}
	if app.Status != model.ApplicationSubmitted {
		return nil, ErrApplicationReviewed
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		app.Status = model.ApplicationRejected
		if err := txRepo.Application.Update(ctx, app); err != nil {
			return err
		}
		return txRepo.ApplicationLog.Create(ctx, &model.ApplicationLog{
			ApplicationID: id,
			ActorID:       &studentID,
			Action:        "WITHDRAW",
		})
	})
	if err != nil {
		s.logger.Error("撤回申请失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return app, nil
}

// ────────────────────── Resubmit ──────────────────────

func (s *applicationService) Resubmit(ctx context.Context, id int64, req *dto.ResubmitApplicationRequest, studentID int64) (*model.Application, error) {
	app, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.StudentID != studentID {
		return nil, ErrApplicationNotOwner
	}
	if app.Status != model.ApplicationRejected {
		return nil, ErrApplicationNotRejected
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		app.Status = model.ApplicationSubmitted
		if req.Payload != "" {
			app.Payload = req.Payload
		}
		if err := txRepo.Application.Update(ctx, app); err != nil {
			return err
		}
		return txRepo.ApplicationLog.Create(ctx, &model.ApplicationLog{
			ApplicationID: id,
			ActorID:       &studentID,
			Action:        "RESUBMIT",
		})
	})
	if err != nil {
		s.logger.Error("重新提交申请失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return app, nil
}

func (s *applicationService) getByID(ctx context.Context, id int64) (*model.Application, error) {
	app, err := s.repo.Application.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("查询申请失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return app, nil
}
