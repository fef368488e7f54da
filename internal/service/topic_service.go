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

// ── 课题模块业务错误 ──

var (
	ErrTopicNotFound     = apperrors.NotFoundf("课题不存在")
	ErrTopicNotEditable  = apperrors.Statef("仅草稿状态的课题允许编辑")
	ErrTopicNotSubmitted = apperrors.Statef("课题未处于待审批状态")
	ErrTopicNotOwner     = apperrors.Authf("只能操作自己创建的课题")
	ErrTopicNotApproved  = apperrors.Statef("课题未通过审批，不可选择")
	ErrTopicFull         = apperrors.Conflictf("课题容量已满")
	ErrAlreadySelected   = apperrors.Conflictf("已存在进行中的选题，不可重复选题")
	ErrSelectionNotFound = apperrors.NotFoundf("选题记录不存在")
	ErrSelectionLocked   = apperrors.Statef("选题已锁定，仅管理员可取消")
	ErrSelectionNotOwner = apperrors.Authf("只能操作自己的选题")
)

// TopicService 课题与选题业务接口
type TopicService interface {
	Create(ctx context.Context, req *dto.CreateTopicRequest, creatorID int64) (*model.Topic, error)
	GetByID(ctx context.Context, id int64) (*model.Topic, error)
	Find(ctx context.Context, query *dto.TopicListQuery) ([]model.Topic, int64, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]model.Topic, error)
	Update(ctx context.Context, id int64, req *dto.UpdateTopicRequest, callerID int64, isAdmin bool) (*model.Topic, error)
	Delete(ctx context.Context, id int64, callerID int64, isAdmin bool) error
	Submit(ctx context.Context, id int64, callerID int64) (*model.Topic, error)
	Approve(ctx context.Context, id int64, req *dto.ApproveTopicRequest, reviewerID int64) (*model.Topic, error)
	ListApprovals(ctx context.Context, topicID int64) ([]model.TopicApproval, error)

	Select(ctx context.Context, topicID, studentID int64) (*model.StudentSelection, error)
	LockSelection(ctx context.Context, selectionID int64) (*model.StudentSelection, error)
	// CancelSelection requesterID 为 nil 表示管理员强制取消，可解除 LOCKED 选题
	CancelSelection(ctx context.Context, selectionID int64, requesterID *int64) (*model.StudentSelection, error)
	GetActiveSelection(ctx context.Context, studentID int64) (*model.StudentSelection, error)
	ListSelectionsByTopic(ctx context.Context, topicID int64) ([]model.StudentSelection, error)
	ListSelectionsByStudent(ctx context.Context, studentID int64) ([]model.StudentSelection, error)
	TeacherStudents(ctx context.Context, teacherID int64) ([]dto.TeacherStudentResponse, error)
}

type topicService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTopicService 创建 TopicService 实例
func NewTopicService(repo *repository.Repository, logger *zap.Logger) TopicService {
	return &topicService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *topicService) Create(ctx context.Context, req *dto.CreateTopicRequest, creatorID int64) (*model.Topic, error) {
	capacity := req.Capacity
	if capacity < 1 {
		capacity = 1
	}

	topic := &model.Topic{
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   creatorID,
		Capacity:    capacity,
		Status:      model.TopicDraft,
	}

	if err := s.repo.Topic.Create(ctx, topic); err != nil {
		s.logger.Error("创建课题失败", zap.Error(err))
		return nil, err
	}

	return topic, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *topicService) GetByID(ctx context.Context, id int64) (*model.Topic, error) {
	topic, err := s.repo.Topic.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		s.logger.Error("查询课题失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return topic, nil
}

// ────────────────────── Find ──────────────────────

func (s *topicService) Find(ctx context.Context, query *dto.TopicListQuery) ([]model.Topic, int64, error) {
	query.Normalize()

	filter := repository.TopicFilter{
		Keyword:   query.Keyword,
		Status:    model.TopicStatus(query.Status),
		CreatorID: query.CreatorID,
	}

	topics, total, err := s.repo.Topic.Find(ctx, filter, query.Page, query.PageSize)
	if err != nil {
		s.logger.Error("查询课题列表失败", zap.Error(err))
		return nil, 0, err
	}
	return topics, total, nil
}

// ────────────────────── ListByCreator ──────────────────────

func (s *topicService) ListByCreator(ctx context.Context, creatorID int64) ([]model.Topic, error) {
	topics, err := s.repo.Topic.ListByCreator(ctx, creatorID)
	if err != nil {
		s.logger.Error("查询教师课题失败", zap.Int64("creator_id", creatorID), zap.Error(err))
		return nil, err
	}
	return topics, nil
}

// ────────────────────── Update ──────────────────────

func (s *topicService) Update(ctx context.Context, id int64, req *dto.UpdateTopicRequest, callerID int64, isAdmin bool) (*model.Topic, error) {
	topic, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && topic.CreatorID != callerID {
		return nil, ErrTopicNotOwner
	}
	if !topic.Status.Editable() {
		return nil, ErrTopicNotEditable
	}

	if req.Title != nil {
		topic.Title = *req.Title
	}
	if req.Description != nil {
		topic.Description = *req.Description
	}
	if req.Capacity != nil && *req.Capacity >= 1 {
		topic.Capacity = *req.Capacity
	}

	if err := s.repo.Topic.Update(ctx, topic); err != nil {
		s.logger.Error("更新课题失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return topic, nil
}

// ────────────────────── Delete ──────────────────────

func (s *topicService) Delete(ctx context.Context, id int64, callerID int64, isAdmin bool) error {
	topic, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && topic.CreatorID != callerID {
		return ErrTopicNotOwner
	}

	// 已有有效选题的课题不可删除，避免悬空引用
	count, err := s.repo.Selection.CountActiveByTopic(ctx, id)
	if err != nil {
		s.logger.Error("统计课题选题数失败", zap.Int64("topic_id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return apperrors.Conflictf("课题已被 %d 名学生选择，不可删除", count)
	}

	if err := s.repo.Topic.Delete(ctx, id); err != nil {
		s.logger.Error("删除课题失败", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── Submit ──────────────────────

// Submit 将课题提交审批；REJECTED 的课题可修改后重新提交
func (s *topicService) Submit(ctx context.Context, id int64, callerID int64) (*model.Topic, error) {
	topic, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if topic.CreatorID != callerID {
		return nil, ErrTopicNotOwner
	}
	if topic.Status != model.TopicDraft && topic.Status != model.TopicRejected {
		return nil, apperrors.Statef("当前状态 %s 不允许提交审批", topic.Status)
	}

	topic.Status = model.TopicSubmitted
	if err := s.repo.Topic.Update(ctx, topic); err != nil {
		s.logger.Error("提交课题审批失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return topic, nil
}

// ────────────────────── Approve ──────────────────────

func (s *topicService) Approve(ctx context.Context, id int64, req *dto.ApproveTopicRequest, reviewerID int64) (*model.Topic, error) {
	decision := model.TopicStatus(req.Decision)
	if !decision.Decision() {
		return nil, apperrors.Validationf("非法的审批决定: %s", req.Decision)
	}

	topic, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if topic.Status != model.TopicSubmitted {
		return nil, ErrTopicNotSubmitted
	}

	// 状态变更与审批记录写入在同一事务内完成
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		topic.Status = decision
		if err := txRepo.Topic.Update(ctx, topic); err != nil {
			return err
		}
		return txRepo.TopicApproval.Create(ctx, &model.TopicApproval{
			TopicID:    id,
			ReviewerID: reviewerID,
			Decision:   decision,
			Comment:    req.Comment,
		})
	})
	if err != nil {
		s.logger.Error("审批课题失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return topic, nil
}

// ────────────────────── ListApprovals ──────────────────────

func (s *topicService) ListApprovals(ctx context.Context, topicID int64) ([]model.TopicApproval, error) {
	if _, err := s.GetByID(ctx, topicID); err != nil {
		return nil, err
	}

	approvals, err := s.repo.TopicApproval.ListByTopic(ctx, topicID)
	if err != nil {
		s.logger.Error("查询审批记录失败", zap.Int64("topic_id", topicID), zap.Error(err))
		return nil, err
	}
	return approvals, nil
}

// ────────────────────── Select ──────────────────────

// Select 学生选题：容量校验与写入在行级锁保护的事务内串行化
// 数据库侧的部分唯一索引兜底"一个学生至多一条 SELECTED"
func (s *topicService) Select(ctx context.Context, topicID, studentID int64) (*model.StudentSelection, error) {
	var selection *model.StudentSelection

	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		topic, err := txRepo.Topic.GetByIDForUpdate(ctx, topicID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTopicNotFound
			}
			return err
		}
		if topic.Status != model.TopicApproved {
			return ErrTopicNotApproved
		}

		// 学生已有 SELECTED 或 LOCKED 选题时拒绝
		for _, st := range []model.SelectionStatus{model.SelectionSelected, model.SelectionLocked} {
			exists, err := txRepo.Selection.ExistsByStudentAndStatus(ctx, studentID, st)
			if err != nil {
				return err
			}
			if exists {
				return ErrAlreadySelected
			}
		}

		count, err := txRepo.Selection.CountActiveByTopic(ctx, topicID)
		if err != nil {
			return err
		}
		if count >= int64(topic.Capacity) {
			return ErrTopicFull
		}

		selection = &model.StudentSelection{
			StudentID: studentID,
			TopicID:   topicID,
			Status:    model.SelectionSelected,
		}
		return txRepo.Selection.Create(ctx, selection)
	})
	if err != nil {
		if isAppError(err) {
			return nil, err
		}
		s.logger.Error("学生选题失败",
			zap.Int64("topic_id", topicID),
			zap.Int64("student_id", studentID),
			zap.Error(err))
		return nil, err
	}

	return selection, nil
}

// ────────────────────── LockSelection ──────────────────────

func (s *topicService) LockSelection(ctx context.Context, selectionID int64) (*model.StudentSelection, error) {
	selection, err := s.repo.Selection.GetByID(ctx, selectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSelectionNotFound
		}
		s.logger.Error("查询选题失败", zap.Int64("id", selectionID), zap.Error(err))
		return nil, err
	}

	if !selection.Status.CanTransition(model.SelectionLocked) {
		return nil, apperrors.Statef("选题状态 %s 不允许锁定", selection.Status)
	}

	selection.Status = model.SelectionLocked
	if err := s.repo.Selection.Update(ctx, selection); err != nil {
		s.logger.Error("锁定选题失败", zap.Int64("id", selectionID), zap.Error(err))
		return nil, err
	}

	return selection, nil
}

// ────────────────────── CancelSelection ──────────────────────

func (s *topicService) CancelSelection(ctx context.Context, selectionID int64, requesterID *int64) (*model.StudentSelection, error) {
	selection, err := s.repo.Selection.GetByID(ctx, selectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSelectionNotFound
		}
		s.logger.Error("查询选题失败", zap.Int64("id", selectionID), zap.Error(err))
		return nil, err
	}

	if requesterID != nil {
		if selection.StudentID != *requesterID {
			return nil, ErrSelectionNotOwner
		}
		// 学生本人只能取消未锁定的选题
		if selection.Status == model.SelectionLocked {
			return nil, ErrSelectionLocked
		}
	}

	if !selection.Status.CanTransition(model.SelectionCancelled) {
		return nil, apperrors.Statef("选题状态 %s 不允许取消", selection.Status)
	}

	selection.Status = model.SelectionCancelled
	if err := s.repo.Selection.Update(ctx, selection); err != nil {
		s.logger.Error("取消选题失败", zap.Int64("id", selectionID), zap.Error(err))
		return nil, err
	}

	return selection, nil
}

// ────────────────────── GetActiveSelection ──────────────────────

func (s *topicService) GetActiveSelection(ctx context.Context, studentID int64) (*model.StudentSelection, error) {
	for _, st := range []model.SelectionStatus{model.SelectionSelected, model.SelectionLocked} {
		selection, err := s.repo.Selection.GetByStudentAndStatus(ctx, studentID, st)
		if err == nil {
			return selection, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询学生选题失败", zap.Int64("student_id", studentID), zap.Error(err))
			return nil, err
		}
	}
	return nil, ErrSelectionNotFound
}

// ────────────────────── ListSelectionsByTopic ──────────────────────

func (s *topicService) ListSelectionsByTopic(ctx context.Context, topicID int64) ([]model.StudentSelection, error) {
	if _, err := s.GetByID(ctx, topicID); err != nil {
		return nil, err
	}

	selections, err := s.repo.Selection.ListByTopic(ctx, topicID)
	if err != nil {
		s.logger.Error("查询课题选题列表失败", zap.Int64("topic_id", topicID), zap.Error(err))
		return nil, err
	}
	return selections, nil
}

// ────────────────────── ListSelectionsByStudent ──────────────────────

func (s *topicService) ListSelectionsByStudent(ctx context.Context, studentID int64) ([]model.StudentSelection, error) {
	selections, err := s.repo.Selection.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生选题记录失败", zap.Int64("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return selections, nil
}

// ────────────────────── TeacherStudents ──────────────────────

// TeacherStudents 教师名下学生：持有其课题有效选题（SELECTED/LOCKED）的学生
func (s *topicService) TeacherStudents(ctx context.Context, teacherID int64) ([]dto.TeacherStudentResponse, error) {
	topics, err := s.repo.Topic.ListByCreator(ctx, teacherID)
	if err != nil {
		s.logger.Error("查询教师课题失败", zap.Int64("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.TeacherStudentResponse, 0)
	for i := range topics {
		selections, err := s.repo.Selection.ListByTopic(ctx, topics[i].ID)
		if err != nil {
			s.logger.Error("查询课题选题失败", zap.Int64("topic_id", topics[i].ID), zap.Error(err))
			return nil, err
		}
		for j := range selections {
			if !selections[j].Status.Active() {
				continue
			}
			result = append(result, dto.TeacherStudentResponse{
				StudentID:       selections[j].StudentID,
				TopicID:         topics[i].ID,
				TopicTitle:      topics[i].Title,
				SelectionID:     selections[j].ID,
				SelectionStatus: string(selections[j].Status),
				CreatedAt:       selections[j].CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}
	}

	return result, nil
}

// isAppError 判定是否为业务错误（无需记录内部错误日志）
func isAppError(err error) bool {
	var appErr *apperrors.Error
	return errors.As(err, &appErr)
}
