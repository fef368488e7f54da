package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gdms/backend/internal/dto"
	"gdms/backend/internal/model"
	"gdms/backend/internal/repository"
	"gdms/backend/pkg/apperrors"
)

// ── 答辩模块业务错误 ──

var (
	ErrGroupNotFound      = apperrors.NotFoundf("答辩分组不存在")
	ErrGroupFull          = apperrors.Conflictf("分组容量已满")
	ErrMemberNotFound     = apperrors.NotFoundf("分组成员不存在")
	ErrAlreadyGrouped     = apperrors.Conflictf("学生已在其他分组中")
	ErrNoStudentsToAssign = apperrors.Statef("没有待分组的学生")
	ErrNoReviewers        = apperrors.Statef("没有可用的评阅教师")
	ErrReviewNotFound     = apperrors.NotFoundf("评阅任务不存在")
	ErrReviewDone         = apperrors.Statef("评阅任务已完成")
	ErrReviewDuplicate    = apperrors.Conflictf("相同评阅任务已存在")
	ErrReviewNotOwner     = apperrors.Authf("只能完成指派给自己的评阅任务")
	ErrScoreOutOfRange    = apperrors.Validationf("成绩必须在 0 到 100 之间")
	ErrCommentTooLong     = apperrors.Validationf("评语长度不能超过 %d 字符", maxReviewCommentLen)
)

// maxReviewCommentLen 评语长度上限（按字符计）
const maxReviewCommentLen = 1000

// DefenseService 答辩分组与评阅业务接口
type DefenseService interface {
	CreateGroup(ctx context.Context, req *dto.CreateGroupRequest) (*model.DefenseGroup, error)
	GetGroup(ctx context.Context, id int64) (*model.DefenseGroup, error)
	FindGroups(ctx context.Context, query *dto.GroupListQuery) ([]model.DefenseGroup, int64, error)
	UpdateGroup(ctx context.Context, id int64, req *dto.UpdateGroupRequest) (*model.DefenseGroup, error)
	DeleteGroup(ctx context.Context, id int64) error

	// AutoAssign 将所有持有有效选题的学生按轮转方式分配到新建分组；
	// 任一学生已在分组中时整体失败。分配在单个事务内完成，失败时不留下部分分组
	AutoAssign(ctx context.Context, req *dto.AutoAssignRequest) ([]model.DefenseGroup, []model.GroupMember, error)
	AddMember(ctx context.Context, groupID int64, req *dto.AddMemberRequest) (*model.GroupMember, error)
	RemoveMember(ctx context.Context, memberID int64) error
	ListMembers(ctx context.Context, groupID int64) ([]dto.MemberDetailResponse, error)
	// StudentGroup 学生当前所在的答辩分组
	StudentGroup(ctx context.Context, studentID int64) (*model.DefenseGroup, error)
	// GroupDetail 分组详情（含成员数与成绩数）
	GroupDetail(ctx context.Context, groupID int64) (*dto.GroupDetailResponse, error)

	AssignReview(ctx context.Context, req *dto.AssignReviewRequest) (*model.ReviewAssignment, error)
	// AutoCrossReview 按轮转顺序为每名持有有效选题的学生指派一名交叉评阅教师
	AutoCrossReview(ctx context.Context) ([]model.ReviewAssignment, error)
	CompleteReview(ctx context.Context, assignmentID int64, req *dto.CompleteReviewRequest, actorID int64, isAdmin bool) (*model.ReviewAssignment, error)
	FindReviews(ctx context.Context, query *dto.ReviewListQuery) ([]model.ReviewAssignment, int64, error)
	ListReviewsByReviewer(ctx context.Context, reviewerID int64) ([]model.ReviewAssignment, error)

	RecordScore(ctx context.Context, groupID int64, req *dto.RecordScoreRequest) (*model.DefenseScore, error)
	ListScoresByGroup(ctx context.Context, groupID int64) ([]model.DefenseScore, error)
	GradeSummary(ctx context.Context) ([]dto.GradeSummaryResponse, error)
	StudentGrades(ctx context.Context, studentID int64) ([]model.DefenseScore, error)
}

type defenseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDefenseService 创建 DefenseService 实例
func NewDefenseService(repo *repository.Repository, logger *zap.Logger) DefenseService {
	return &defenseService{repo: repo, logger: logger}
}

const defaultGroupCapacity = 8

// ────────────────────── CreateGroup ──────────────────────

func (s *defenseService) CreateGroup(ctx context.Context, req *dto.CreateGroupRequest) (*model.DefenseGroup, error) {
	capacity := req.Capacity
	if capacity < 1 {
		capacity = defaultGroupCapacity
	}

	scheduledAt, err := parseOptionalTime(req.ScheduledAt)
	if err != nil {
		return nil, err
	}

	group := &model.DefenseGroup{
		Name:        req.Name,
		Type:        req.Type,
		Capacity:    capacity,
		ScheduledAt: scheduledAt,
		Location:    req.Location,
	}

	if err := s.repo.DefenseGroup.Create(ctx, group); err != nil {
		s.logger.Error("创建答辩分组失败", zap.Error(err))
		return nil, err
	}

	return group, nil
}

// ────────────────────── GetGroup ──────────────────────

func (s *defenseService) GetGroup(ctx context.Context, id int64) (*model.DefenseGroup, error) {
	group, err := s.repo.DefenseGroup.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		s.logger.Error("查询答辩分组失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return group, nil
}

// ────────────────────── FindGroups ──────────────────────

func (s *defenseService) FindGroups(ctx context.Context, query *dto.GroupListQuery) ([]model.DefenseGroup, int64, error) {
	query.Normalize()

	filter := repository.GroupFilter{
		Keyword: query.Keyword,
		Type:    query.Type,
	}

	groups, total, err := s.repo.DefenseGroup.Find(ctx, filter, query.Page, query.PageSize)
	if err != nil {
		s.logger.Error("查询分组列表失败", zap.Error(err))
		return nil, 0, err
	}
	return groups, total, nil
}

// ────────────────────── UpdateGroup ──────────────────────

func (s *defenseService) UpdateGroup(ctx context.Context, id int64, req *dto.UpdateGroupRequest) (*model.DefenseGroup, error) {
	group, err := s.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Type != nil {
		group.Type = *req.Type
	}
	if req.Capacity != nil {
		// 缩容不得低于现有成员数
		count, err := s.repo.GroupMember.CountByGroup(ctx, id)
		if err != nil {
			return nil, err
		}
		if int64(*req.Capacity) < count {
			return nil, apperrors.Statef("容量不得低于现有成员数 %d", count)
		}
		group.Capacity = *req.Capacity
	}
	if req.ScheduledAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			return nil, apperrors.Validationf("非法的答辩时间: %s", *req.ScheduledAt)
		}
		group.ScheduledAt = &t
	}
	if req.Location != nil {
		group.Location = *req.Location
	}

	if err := s.repo.DefenseGroup.Update(ctx, group); err != nil {
		s.logger.Error("更新答辩分组失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return group, nil
}

// ────────────────────── DeleteGroup ──────────────────────

func (s *defenseService) DeleteGroup(ctx context.Context, id int64) error {
	if _, err := s.GetGroup(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.GroupMember.CountByGroup(ctx, id)
	if err != nil {
		s.logger.Error("统计分组成员失败", zap.Int64("group_id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return apperrors.Conflictf("分组内仍有 %d 名成员，不可删除", count)
	}

	if err := s.repo.DefenseGroup.Delete(ctx, id); err != nil {
		s.logger.Error("删除答辩分组失败", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── AutoAssign ──────────────────────

func (s *defenseService) AutoAssign(ctx context.Context, req *dto.AutoAssignRequest) ([]model.DefenseGroup, []model.GroupMember, error) {
	if !model.ValidGroupType(req.Type) {
		return nil, nil, apperrors.Validationf("非法的分组类型: %s", req.Type)
	}
	if req.Capacity < 1 || req.Capacity > 100 {
		return nil, nil, apperrors.Validationf("分组容量必须在 1 到 100 之间")
	}

	var (
		groups  []model.DefenseGroup
		members []model.GroupMember
	)

	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		selections, err := txRepo.Selection.ListActive(ctx)
		if err != nil {
			return err
		}
		if len(selections) == 0 {
			return ErrNoStudentsToAssign
		}

		// 任一学生已在分组中则整体失败，不做部分分配
		for i := range selections {
			grouped, err := txRepo.GroupMember.ExistsByStudent(ctx, selections[i].StudentID)
			if err != nil {
				return err
			}
			if grouped {
				return ErrAlreadyGrouped
			}
		}

		groupCount := (len(selections) + req.Capacity - 1) / req.Capacity
		groups = make([]model.DefenseGroup, groupCount)
		for n := 0; n < groupCount; n++ {
			groups[n] = model.DefenseGroup{
				Name:     fmt.Sprintf("%s-G%d", req.Type, n+1),
				Type:     req.Type,
				Capacity: req.Capacity,
			}
			if err := txRepo.DefenseGroup.Create(ctx, &groups[n]); err != nil {
				return err
			}
		}

		// 轮转分配：第 i 名学生进入第 i mod groupCount 组
		members = make([]model.GroupMember, 0, len(selections))
		for i := range selections {
			topicID := selections[i].TopicID
			member := model.GroupMember{
				GroupID:   groups[i%groupCount].ID,
				StudentID: selections[i].StudentID,
				TopicID:   &topicID,
			}
			if err := txRepo.GroupMember.Create(ctx, &member); err != nil {
				return err
			}
			members = append(members, member)
		}

		return nil
	})
	if err != nil {
		if isAppError(err) {
			return nil, nil, err
		}
		s.logger.Error("自动分组失败", zap.String("type", req.Type), zap.Error(err))
		return nil, nil, err
	}

	s.logger.Info("自动分组完成",
		zap.String("type", req.Type),
		zap.Int("group_count", len(groups)),
		zap.Int("member_count", len(members)))

	return groups, members, nil
}

// ────────────────────── AddMember ──────────────────────

// AddMember 容量校验与写入在行级锁保护的事务内串行化
// group_members.student_id 的唯一索引兜底"一个学生至多属于一个分组"
func (s *defenseService) AddMember(ctx context.Context, groupID int64, req *dto.AddMemberRequest) (*model.GroupMember, error) {
	var member *model.GroupMember

	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		group, err := txRepo.DefenseGroup.GetByIDForUpdate(ctx, groupID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}

		grouped, err := txRepo.GroupMember.ExistsByStudent(ctx, req.StudentID)
		if err != nil {
			return err
		}
		if grouped {
			return ErrAlreadyGrouped
		}

		count, err := txRepo.GroupMember.CountByGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if count >= int64(group.Capacity) {
			return ErrGroupFull
		}

		member = &model.GroupMember{
			GroupID:   groupID,
			StudentID: req.StudentID,
			TopicID:   req.TopicID,
		}
		return txRepo.GroupMember.Create(ctx, member)
	})
	if err != nil {
		if isAppError(err) {
			return nil, err
		}
		s.logger.Error("添加分组成员失败",
			zap.Int64("group_id", groupID),
			zap.Int64("student_id", req.StudentID),
			zap.Error(err))
		return nil, err
	}

	return member, nil
}

// ────────────────────── RemoveMember ──────────────────────

func (s *defenseService) RemoveMember(ctx context.Context, memberID int64) error {
	if _, err := s.repo.GroupMember.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		s.logger.Error("查询分组成员失败", zap.Int64("id", memberID), zap.Error(err))
		return err
	}

	if err := s.repo.GroupMember.Delete(ctx, memberID); err != nil {
		s.logger.Error("移除分组成员失败", zap.Int64("id", memberID), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── ListMembers ──────────────────────

// ListMembers 返回分组成员详情，附学生姓名与已登记成绩
func (s *defenseService) ListMembers(ctx context.Context, groupID int64) ([]dto.MemberDetailResponse, error) {
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	members, err := s.repo.GroupMember.ListByGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("查询分组成员失败", zap.Int64("group_id", groupID), zap.Error(err))
		return nil, err
	}

	scores, err := s.repo.DefenseScore.ListByGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("查询分组成绩失败", zap.Int64("group_id", groupID), zap.Error(err))
		return nil, err
	}
	scoreByStudent := make(map[int64]*model.DefenseScore, len(scores))
	for i := range scores {
		scoreByStudent[scores[i].StudentID] = &scores[i]
	}

	result := make([]dto.MemberDetailResponse, 0, len(members))
	for i := range members {
		detail := dto.MemberDetailResponse{
			MemberID:  members[i].ID,
			GroupID:   members[i].GroupID,
			StudentID: members[i].StudentID,
			TopicID:   members[i].TopicID,
		}

		if user, err := s.repo.User.GetByID(ctx, members[i].StudentID); err == nil {
			detail.StudentName = user.FullName
			detail.Username = user.Username
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		if score, ok := scoreByStudent[members[i].StudentID]; ok {
			detail.Score = &score.Score
			detail.Comment = score.Comment
		}

		result = append(result, detail)
	}

	return result, nil
}

// ────────────────────── StudentGroup ──────────────────────

func (s *defenseService) StudentGroup(ctx context.Context, studentID int64) (*model.DefenseGroup, error) {
	members, err := s.repo.GroupMember.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生分组失败", zap.Int64("student_id", studentID), zap.Error(err))
		return nil, err
	}
	if len(members) == 0 {
		return nil, ErrGroupNotFound
	}

	return s.GetGroup(ctx, members[0].GroupID)
}

// ────────────────────── GroupDetail ──────────────────────

func (s *defenseService) GroupDetail(ctx context.Context, groupID int64) (*dto.GroupDetailResponse, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	memberCount, err := s.repo.GroupMember.CountByGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("统计分组成员失败", zap.Int64("group_id", groupID), zap.Error(err))
		return nil, err
	}

	scores, err := s.repo.DefenseScore.ListByGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("查询分组成绩失败", zap.Int64("group_id", groupID), zap.Error(err))
		return nil, err
	}

	return &dto.GroupDetailResponse{
		Group:       group,
		MemberCount: int(memberCount),
		ScoreCount:  len(scores),
	}, nil
}

// ────────────────────── AssignReview ──────────────────────

func (s *defenseService) AssignReview(ctx context.Context, req *dto.AssignReviewRequest) (*model.ReviewAssignment, error) {
	if !model.ValidReviewType(req.Type) {
		return nil, apperrors.Validationf("非法的评阅类型: %s", req.Type)
	}
	if req.ReviewerID == req.StudentID {
		return nil, apperrors.Validationf("评阅人与被评阅学生不能相同")
	}

	reviewer, err := s.repo.User.GetByID(ctx, req.ReviewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validationf("评阅人不存在")
		}
		s.logger.Error("查询评阅人失败", zap.Int64("reviewer_id", req.ReviewerID), zap.Error(err))
		return nil, err
	}
	if reviewer.Role != model.RoleTeacher && reviewer.Role != model.RoleAdmin {
		return nil, apperrors.Validationf("评阅人必须是教师或管理员")
	}

	if _, err := s.repo.User.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validationf("被评阅学生不存在")
		}
		s.logger.Error("查询学生失败", zap.Int64("student_id", req.StudentID), zap.Error(err))
		return nil, err
	}

	exists, err := s.repo.ReviewAssignment.Exists(ctx, req.ReviewerID, req.StudentID, req.Type)
	if err != nil {
		s.logger.Error("查询评阅任务失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrReviewDuplicate
	}

	assignment := &model.ReviewAssignment{
		ReviewerID: req.ReviewerID,
		StudentID:  req.StudentID,
		TopicID:    req.TopicID,
		Type:       req.Type,
		Status:     model.ReviewPending,
	}

	if err := s.repo.ReviewAssignment.Create(ctx, assignment); err != nil {
		s.logger.Error("指派评阅任务失败",
			zap.Int64("reviewer_id", req.ReviewerID),
			zap.Int64("student_id", req.StudentID),
			zap.Error(err))
		return nil, err
	}

	return assignment, nil
}

// ────────────────────── AutoCrossReview ──────────────────────

func (s *defenseService) AutoCrossReview(ctx context.Context) ([]model.ReviewAssignment, error) {
	var created []model.ReviewAssignment

	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		selections, err := txRepo.Selection.ListActive(ctx)
		if err != nil {
			return err
		}

		teachers, err := txRepo.User.ListByRole(ctx, model.RoleTeacher)
		if err != nil {
			return err
		}
		if len(teachers) == 0 {
			return ErrNoReviewers
		}

		// 轮转指派：第 i 条选题由第 i mod teacherCount 名教师交叉评阅
		for i := range selections {
			reviewer := teachers[i%len(teachers)].ID

			exists, err := txRepo.ReviewAssignment.Exists(ctx, reviewer, selections[i].StudentID, model.ReviewTypeCross)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			topicID := selections[i].TopicID
			assignment := model.ReviewAssignment{
				ReviewerID: reviewer,
				StudentID:  selections[i].StudentID,
				TopicID:    &topicID,
				Type:       model.ReviewTypeCross,
				Status:     model.ReviewPending,
			}
			if err := txRepo.ReviewAssignment.Create(ctx, &assignment); err != nil {
				return err
			}
			created = append(created, assignment)
		}

		return nil
	})
	if err != nil {
		if isAppError(err) {
			return nil, err
		}
		s.logger.Error("自动交叉评阅指派失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("自动交叉评阅指派完成", zap.Int("count", len(created)))

	return created, nil
}

// ────────────────────── CompleteReview ──────────────────────

func (s *defenseService) CompleteReview(ctx context.Context, assignmentID int64, req *dto.CompleteReviewRequest, actorID int64, isAdmin bool) (*model.ReviewAssignment, error) {
	assignment, err := s.repo.ReviewAssignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		s.logger.Error("查询评阅任务失败", zap.Int64("id", assignmentID), zap.Error(err))
		return nil, err
	}

	if !isAdmin && assignment.ReviewerID != actorID {
		return nil, ErrReviewNotOwner
	}
	if assignment.Status == model.ReviewDone {
		return nil, ErrReviewDone
	}
	if req.Score != nil && (*req.Score < 0 || *req.Score > 100) {
		return nil, ErrScoreOutOfRange
	}
	if utf8.RuneCountInString(req.Comment) > maxReviewCommentLen {
		return nil, ErrCommentTooLong
	}

	assignment.Status = model.ReviewDone
	assignment.Comment = req.Comment
	assignment.Score = req.Score

	if err := s.repo.ReviewAssignment.Update(ctx, assignment); err != nil {
		s.logger.Error("完成评阅任务失败", zap.Int64("id", assignmentID), zap.Error(err))
		return nil, err
	}

	return assignment, nil
}

// ────────────────────── FindReviews ──────────────────────

func (s *defenseService) FindReviews(ctx context.Context, query *dto.ReviewListQuery) ([]model.ReviewAssignment, int64, error) {
	query.Normalize()

	filter := repository.ReviewFilter{
		ReviewerID: query.ReviewerID,
		Status:     query.Status,
		Type:       query.Type,
	}

	assignments, total, err := s.repo.ReviewAssignment.Find(ctx, filter, query.Page, query.PageSize)
	if err != nil {
		s.logger.Error("查询评阅任务列表失败", zap.Error(err))
		return nil, 0, err
	}
	return assignments, total, nil
}

// ────────────────────── ListReviewsByReviewer ──────────────────────

func (s *defenseService) ListReviewsByReviewer(ctx context.Context, reviewerID int64) ([]model.ReviewAssignment, error) {
	assignments, err := s.repo.ReviewAssignment.ListByReviewer(ctx, reviewerID)
	if err != nil {
		s.logger.Error("查询评阅任务失败", zap.Int64("reviewer_id", reviewerID), zap.Error(err))
		return nil, err
	}
	return assignments, nil
}

// ────────────────────── RecordScore ──────────────────────

func (s *defenseService) RecordScore(ctx context.Context, groupID int64, req *dto.RecordScoreRequest) (*model.DefenseScore, error) {
	if req.Score < 0 || req.Score > 100 {
		return nil, ErrScoreOutOfRange
	}
	if utf8.RuneCountInString(req.Comment) > maxReviewCommentLen {
		return nil, ErrCommentTooLong
	}

	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	// 只能为组内成员登记成绩
	members, err := s.repo.GroupMember.ListByGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("查询分组成员失败", zap.Int64("group_id", groupID), zap.Error(err))
		return nil, err
	}
	inGroup := false
	for i := range members {
		if members[i].StudentID == req.StudentID {
			inGroup = true
			break
		}
	}
	if !inGroup {
		return nil, apperrors.Statef("学生 %d 不在该分组中", req.StudentID)
	}

	score := &model.DefenseScore{
		GroupID:   groupID,
		StudentID: req.StudentID,
		Score:     req.Score,
		Comment:   req.Comment,
	}

	if err := s.repo.DefenseScore.Create(ctx, score); err != nil {
		s.logger.Error("登记答辩成绩失败",
			zap.Int64("group_id", groupID),
			zap.Int64("student_id", req.StudentID),
			zap.Error(err))
		return nil, err
	}

	return score, nil
}

// ────────────────────── ListScoresByGroup ──────────────────────

func (s *defenseService) ListScoresByGroup(ctx context.Context, groupID int64) ([]model.DefenseScore, error) {
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	scores, err := s.repo.DefenseScore.ListByGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("查询分组成绩失败", zap.Int64("group_id", groupID), zap.Error(err))
		return nil, err
	}
	return scores, nil
}

// ────────────────────── GradeSummary ──────────────────────

// GradeSummary 按学生聚合全部答辩成绩（平均分与记录数）
func (s *defenseService) GradeSummary(ctx context.Context) ([]dto.GradeSummaryResponse, error) {
	scores, err := s.repo.DefenseScore.List(ctx)
	if err != nil {
		s.logger.Error("查询成绩列表失败", zap.Error(err))
		return nil, err
	}

	type acc struct {
		sum   float64
		count int
	}
	byStudent := make(map[int64]*acc)
	order := make([]int64, 0)
	for i := range scores {
		a, ok := byStudent[scores[i].StudentID]
		if !ok {
			a = &acc{}
			byStudent[scores[i].StudentID] = a
			order = append(order, scores[i].StudentID)
		}
		a.sum += scores[i].Score
		a.count++
	}

	result := make([]dto.GradeSummaryResponse, 0, len(order))
	for _, studentID := range order {
		a := byStudent[studentID]
		result = append(result, dto.GradeSummaryResponse{
			StudentID: studentID,
			AvgScore:  a.sum / float64(a.count),
			Count:     a.count,
		})
	}

	return result, nil
}

// ────────────────────── StudentGrades ──────────────────────

func (s *defenseService) StudentGrades(ctx context.Context, studentID int64) ([]model.DefenseScore, error) {
	scores, err := s.repo.DefenseScore.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生成绩失败", zap.Int64("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return scores, nil
}

// parseOptionalTime 解析可选的 RFC3339 时间串
func parseOptionalTime(v *string) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		return nil, apperrors.Validationf("非法的时间格式: %s", *v)
	}
	return &t, nil
}
