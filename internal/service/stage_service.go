package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gdms/backend/internal/dto"
	"gdms/backend/internal/model"
	"gdms/backend/internal/repository"
	"gdms/backend/pkg/apperrors"
)

// ── 阶段模块业务错误 ──

var (
	ErrStageNotFound     = apperrors.NotFoundf("阶段不存在")
	ErrStageInactive     = apperrors.Statef("阶段未开放")
	ErrStageTimeInvalid  = apperrors.Validationf("阶段结束时间必须晚于开始时间")
	ErrTaskNotFound      = apperrors.NotFoundf("阶段任务不存在")
	ErrTaskNotReviewable = apperrors.Statef("任务未处于待评审状态")
	ErrPrevStageUnmet    = apperrors.Statef("前置阶段未通过，不可提交")
)

// StudentStageProgress 学生在单个阶段的进度
type StudentStageProgress struct {
	Stage      model.StageConfig `json:"stage"`
	TaskID     *int64            `json:"task_id,omitempty"`
	TaskStatus string            `json:"task_status"` // NONE | PENDING | SUBMITTED | APPROVED | REJECTED
}

// StageService 阶段与任务业务接口
type StageService interface {
	CreateStage(ctx context.Context, req *dto.CreateStageRequest) (*model.StageConfig, error)
	GetStage(ctx context.Context, id int64) (*model.StageConfig, error)
	ListStages(ctx context.Context, activeOnly bool) ([]model.StageConfig, error)
	UpdateStage(ctx context.Context, id int64, req *dto.UpdateStageRequest) (*model.StageConfig, error)
	DeleteStage(ctx context.Context, id int64) error

	SubmitTask(ctx context.Context, req *dto.SubmitTaskRequest, studentID int64) (*model.StageTask, error)
	ReviewTask(ctx context.Context, taskID int64, req *dto.ReviewTaskRequest, reviewerID int64) (*model.StageTask, error)
	GetTask(ctx context.Context, taskID int64) (*model.StageTask, error)
	ListTasksByStudent(ctx context.Context, studentID int64) ([]model.StageTask, error)
	ListReviewsByTask(ctx context.Context, taskID int64) ([]model.StageReview, error)
	StudentProgress(ctx context.Context, studentID int64) ([]StudentStageProgress, error)
}

type stageService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStageService 创建 StageService 实例
func NewStageService(repo *repository.Repository, logger *zap.Logger) StageService {
	return &stageService{repo: repo, logger: logger}
}

// ────────────────────── CreateStage ──────────────────────

func (s *stageService) CreateStage(ctx context.Context, req *dto.CreateStageRequest) (*model.StageConfig, error) {
	startAt, endAt, err := parseStageWindow(req.StartAt, req.EndAt)
	if err != nil {
		return nil, err
	}

	cfg := &model.StageConfig{
		Name:       req.Name,
		OrderIndex: req.OrderIndex,
		Active:     true,
		StartAt:    startAt,
		EndAt:      endAt,
	}
	if req.Active != nil {
		cfg.Active = *req.Active
	}

	if err := s.repo.StageConfig.Create(ctx, cfg); err != nil {
		s.logger.Error("创建阶段失败", zap.Error(err))
		return nil, err
	}

	return cfg, nil
}

// ────────────────────── GetStage ──────────────────────

func (s *stageService) GetStage(ctx context.Context, id int64) (*model.StageConfig, error) {
	cfg, err := s.repo.StageConfig.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStageNotFound
		}
		s.logger.Error("查询阶段失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return cfg, nil
}

// ────────────────────── ListStages ──────────────────────

func (s *stageService) ListStages(ctx context.Context, activeOnly bool) ([]model.StageConfig, error) {
	var (
		configs []model.StageConfig
		err     error
	)
	if activeOnly {
		configs, err = s.repo.StageConfig.ListActive(ctx)
	} else {
		configs, err = s.repo.StageConfig.List(ctx)
	}
	if err != nil {
		s.logger.Error("查询阶段列表失败", zap.Error(err))
		return nil, err
	}
	return configs, nil
}

// ────────────────────── UpdateStage ──────────────────────

func (s *stageService) UpdateStage(ctx context.Context, id int64, req *dto.UpdateStageRequest) (*model.StageConfig, error) {
	cfg, err := s.GetStage(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		cfg.Name = *req.Name
	}
	if req.OrderIndex != nil {
		cfg.OrderIndex = *req.OrderIndex
	}
	if req.Active != nil {
		cfg.Active = *req.Active
	}
	if req.StartAt != nil {
		t, err := time.Parse(time.RFC3339, *req.StartAt)
		if err != nil {
			return nil, apperrors.Validationf("非法的开始时间: %s", *req.StartAt)
		}
		cfg.StartAt = &t
	}
	if req.EndAt != nil {
		t, err := time.Parse(time.RFC3339, *req.EndAt)
		if err != nil {
			return nil, apperrors.Validationf("非法的结束时间: %s", *req.EndAt)
		}
		cfg.EndAt = &t
	}
	if cfg.StartAt != nil && cfg.EndAt != nil && !cfg.EndAt.After(*cfg.StartAt) {
		return nil, ErrStageTimeInvalid
	}

	if err := s.repo.StageConfig.Update(ctx, cfg); err != nil {
		s.logger.Error("更新阶段失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return cfg, nil
}

// ────────────────────── DeleteStage ──────────────────────

func (s *stageService) DeleteStage(ctx context.Context, id int64) error {
	if _, err := s.GetStage(ctx, id); err != nil {
		return err
	}

	if err := s.repo.StageConfig.Delete(ctx, id); err != nil {
		s.logger.Error("删除阶段失败", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── SubmitTask ──────────────────────

// SubmitTask 学生提交阶段任务
// 前置阶段（orderIndex 最大的更小阶段）必须已 APPROVED；被驳回的任务可重新提交
func (s *stageService) SubmitTask(ctx context.Context, req *dto.SubmitTaskRequest, studentID int64) (*model.StageTask, error) {
	stage, err := s.GetStage(ctx, req.StageID)
	if err != nil {
		return nil, err
	}
	if !stage.Active {
		return nil, ErrStageInactive
	}
	if stage.StartAt != nil && time.Now().Before(*stage.StartAt) {
		return nil, apperrors.Statef("阶段 %s 尚未开始", stage.Name)
	}
	if stage.EndAt != nil && time.Now().After(*stage.EndAt) {
		return nil, apperrors.Statef("阶段 %s 已截止", stage.Name)
	}

	// 前置阶段校验
	prev, err := s.repo.StageConfig.FindPrev(ctx, stage.OrderIndex)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询前置阶段失败", zap.Int64("stage_id", req.StageID), zap.Error(err))
		return nil, err
	}
	if prev != nil {
		prevTask, err := s.repo.StageTask.GetLatestByStudentAndStage(ctx, studentID, prev.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPrevStageUnmet
			}
			return nil, err
		}
		if prevTask.Status != model.TaskApproved {
			return nil, ErrPrevStageUnmet
		}
	}

	// 当前阶段已有未驳回任务时拒绝重复提交
	existing, err := s.repo.StageTask.GetLatestByStudentAndStage(ctx, studentID, req.StageID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case model.TaskSubmitted:
			return nil, apperrors.Conflictf("当前阶段已有待评审的任务")
		case model.TaskApproved:
			return nil, apperrors.Conflictf("当前阶段任务已通过，无需重复提交")
		}
	}

	task := &model.StageTask{
		StageID:   req.StageID,
		StudentID: studentID,
		TopicID:   req.TopicID,
		Status:    model.TaskSubmitted,
		Content:   req.Content,
	}

	if err := s.repo.StageTask.Create(ctx, task); err != nil {
		s.logger.Error("提交阶段任务失败",
			zap.Int64("stage_id", req.StageID),
			zap.Int64("student_id", studentID),
			zap.Error(err))
		return nil, err
	}

	return task, nil
}

// ────────────────────── ReviewTask ──────────────────────

func (s *stageService) ReviewTask(ctx context.Context, taskID int64, req *dto.ReviewTaskRequest, reviewerID int64) (*model.StageTask, error) {
	decision := model.TaskStatus(req.Decision)
	if !decision.Decision() {
		return nil, apperrors.Validationf("非法的评审决定: %s", req.Decision)
	}

	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != model.TaskSubmitted {
		return nil, ErrTaskNotReviewable
	}

	// 状态变更与评审记录写入在同一事务内完成
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		task.Status = decision
		if err := txRepo.StageTask.Update(ctx, task); err != nil {
			return err
		}
		return txRepo.StageReview.Create(ctx, &model.StageReview{
			TaskID:     taskID,
			ReviewerID: reviewerID,
			Decision:   decision,
			Comment:    req.Comment,
		})
	})
	if err != nil {
		s.logger.Error("评审阶段任务失败", zap.Int64("task_id", taskID), zap.Error(err))
		return nil, err
	}

	return task, nil
}

// ────────────────────── GetTask ──────────────────────

func (s *stageService) GetTask(ctx context.Context, taskID int64) (*model.StageTask, error) {
	task, err := s.repo.StageTask.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("查询阶段任务失败", zap.Int64("id", taskID), zap.Error(err))
		return nil, err
	}
	return task, nil
}

// ────────────────────── ListTasksByStudent ──────────────────────

func (s *stageService) ListTasksByStudent(ctx context.Context, studentID int64) ([]model.StageTask, error) {
	tasks, err := s.repo.StageTask.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生任务列表失败", zap.Int64("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return tasks, nil
}

// ────────────────────── ListReviewsByTask ──────────────────────

func (s *stageService) ListReviewsByTask(ctx context.Context, taskID int64) ([]model.StageReview, error) {
	if _, err := s.GetTask(ctx, taskID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.StageReview.ListByTask(ctx, taskID)
	if err != nil {
		s.logger.Error("查询评审记录失败", zap.Int64("task_id", taskID), zap.Error(err))
		return nil, err
	}
	return reviews, nil
}

// ────────────────────── StudentProgress ──────────────────────

// StudentProgress 按阶段顺序返回学生在每个开放阶段的最新任务状态
func (s *stageService) StudentProgress(ctx context.Context, studentID int64) ([]StudentStageProgress, error) {
	stages, err := s.repo.StageConfig.ListActive(ctx)
	if err != nil {
		s.logger.Error("查询阶段列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]StudentStageProgress, 0, len(stages))
	for i := range stages {
		progress := StudentStageProgress{Stage: stages[i], TaskStatus: "NONE"}

		task, err := s.repo.StageTask.GetLatestByStudentAndStage(ctx, studentID, stages[i].ID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Error("查询学生阶段任务失败",
					zap.Int64("student_id", studentID),
					zap.Int64("stage_id", stages[i].ID),
					zap.Error(err))
				return nil, err
			}
		} else {
			progress.TaskID = &task.ID
			progress.TaskStatus = string(task.Status)
		}

		result = append(result, progress)
	}

	return result, nil
}

// parseStageWindow 解析可选的阶段时间窗口并校验先后顺序
func parseStageWindow(start, end *string) (*time.Time, *time.Time, error) {
	var startAt, endAt *time.Time
	if start != nil {
		t, err := time.Parse(time.RFC3339, *start)
		if err != nil {
			return nil, nil, apperrors.Validationf("非法的开始时间: %s", *start)
		}
		startAt = &t
	}
	if end != nil {
		t, err := time.Parse(time.RFC3339, *end)
		if err != nil {
			return nil, nil, apperrors.Validationf("非法的结束时间: %s", *end)
		}
		endAt = &t
	}
	if startAt != nil && endAt != nil && !endAt.After(*startAt) {
		return nil, nil, ErrStageTimeInvalid
	}
	return startAt, endAt, nil
}
