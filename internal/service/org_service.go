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

// ── 组织模块业务错误 ──

var (
	ErrOrgNotFound    = apperrors.NotFoundf("组织不存在")
	ErrOrgHasChildren = apperrors.Conflictf("组织下存在子组织，不可删除")
	ErrOrgHasUsers    = apperrors.Conflictf("组织下存在用户，不可删除")
)

// OrgService 组织架构业务接口
type OrgService interface {
	Create(ctx context.Context, req *dto.CreateOrgRequest) (*model.Org, error)
	GetByID(ctx context.Context, id int64) (*model.Org, error)
	List(ctx context.Context) ([]model.Org, error)
	Find(ctx context.Context, query *dto.OrgListQuery) ([]model.Org, int64, error)
	Update(ctx context.Context, id int64, req *dto.UpdateOrgRequest) (*model.Org, error)
	Delete(ctx context.Context, id int64) error
	DeleteBatch(ctx context.Context, ids []int64) error
}

type orgService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewOrgService 创建 OrgService 实例
func NewOrgService(repo *repository.Repository, logger *zap.Logger) OrgService {
	return &orgService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *orgService) Create(ctx context.Context, req *dto.CreateOrgRequest) (*model.Org, error) {
	if req.ParentID != nil {
		if _, err := s.GetByID(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}

	org := &model.Org{
		Name:     req.Name,
		ParentID: req.ParentID,
		Type:     req.Type,
	}

	if err := s.repo.Org.Create(ctx, org); err != nil {
		s.logger.Error("创建组织失败", zap.Error(err))
		return nil, err
	}

	return org, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *orgService) GetByID(ctx context.Context, id int64) (*model.Org, error) {
	org, err := s.repo.Org.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrgNotFound
		}
		s.logger.Error("查询组织失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return org, nil
}

// ────────────────────── List ──────────────────────

func (s *orgService) List(ctx context.Context) ([]model.Org, error) {
	orgs, err := s.repo.Org.List(ctx)
	if err != nil {
		s.logger.Error("查询组织列表失败", zap.Error(err))
		return nil, err
	}
	return orgs, nil
}

// ────────────────────── Find ──────────────────────

func (s *orgService) Find(ctx context.Context, query *dto.OrgListQuery) ([]model.Org, int64, error) {
	query.Normalize()

	filter := repository.OrgFilter{
		Keyword:  query.Keyword,
		Type:     query.Type,
		ParentID: query.ParentID,
	}

	orgs, total, err := s.repo.Org.Find(ctx, filter, query.Page, query.PageSize)
	if err != nil {
		s.logger.Error("查询组织列表失败", zap.Error(err))
		return nil, 0, err
	}
	return orgs, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *orgService) Update(ctx context.Context, id int64, req *dto.UpdateOrgRequest) (*model.Org, error) {
	org, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, apperrors.Validationf("组织不能以自身为父节点")
		}
		if _, err := s.GetByID(ctx, *req.ParentID); err != nil {
			return nil, err
		}
		org.ParentID = req.ParentID
	}
	if req.Type != nil {
		org.Type = *req.Type
	}

	if err := s.repo.Org.Update(ctx, org); err != nil {
		s.logger.Error("更新组织失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return org, nil
}

// ────────────────────── Delete ──────────────────────

func (s *orgService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.checkDeletable(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Org.Delete(ctx, id); err != nil {
		s.logger.Error("删除组织失败", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── DeleteBatch ──────────────────────

// DeleteBatch 原子语义：任一组织不满足删除条件则整体失败
func (s *orgService) DeleteBatch(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.checkDeletable(ctx, id); err != nil {
			return err
		}
	}

	if err := s.repo.Org.DeleteBatch(ctx, ids); err != nil {
		s.logger.Error("批量删除组织失败", zap.Error(err))
		return err
	}

	return nil
}

// checkDeletable 有子组织或在编用户的组织不可删除
func (s *orgService) checkDeletable(ctx context.Context, id int64) error {
	hasChildren, err := s.repo.Org.HasChildren(ctx, id)
	if err != nil {
		s.logger.Error("查询子组织失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if hasChildren {
		return ErrOrgHasChildren
	}

	orgID := id
	_, total, err := s.repo.User.Find(ctx, repository.UserFilter{OrgID: &orgID}, 1, 1)
	if err != nil {
		s.logger.Error("查询组织用户失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if total > 0 {
		return ErrOrgHasUsers
	}

	return nil
}
