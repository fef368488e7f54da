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

// ── 菜单模块业务错误 ──

var ErrMenuNotFound = apperrors.NotFoundf("菜单不存在")

// MenuService 角色菜单业务接口
type MenuService interface {
	Create(ctx context.Context, req *dto.CreateMenuRequest) (*model.Menu, error)
	ListByRole(ctx context.Context, role string) ([]model.Menu, error)
	Update(ctx context.Context, id int64, req *dto.UpdateMenuRequest) (*model.Menu, error)
	Delete(ctx context.Context, id int64) error
	// Reorder 按 ids 的出现顺序重写 order_index
	Reorder(ctx context.Context, req *dto.ReorderMenusRequest) error
}

type menuService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMenuService 创建 MenuService 实例
func NewMenuService(repo *repository.Repository, logger *zap.Logger) MenuService {
	return &menuService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *menuService) Create(ctx context.Context, req *dto.CreateMenuRequest) (*model.Menu, error) {
	menu := &model.Menu{
		Name:       req.Name,
		Path:       req.Path,
		Role:       req.Role,
		OrderIndex: req.OrderIndex,
	}

	if err := s.repo.Menu.Create(ctx, menu); err != nil {
		s.logger.Error("创建菜单失败", zap.Error(err))
		return nil, err
	}

	return menu, nil
}

// ────────────────────── ListByRole ──────────────────────

func (s *menuService) ListByRole(ctx context.Context, role string) ([]model.Menu, error) {
	if !model.ValidRole(role) {
		return nil, apperrors.Validationf("非法的角色: %s", role)
	}

	menus, err := s.repo.Menu.ListByRole(ctx, role)
	if err != nil {
		s.logger.Error("查询角色菜单失败", zap.String("role", role), zap.Error(err))
		return nil, err
	}
	return menus, nil
}

// ────────────────────── Update ──────────────────────

func (s *menuService) Update(ctx context.Context, id int64, req *dto.UpdateMenuRequest) (*model.Menu, error) {
	menu, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Path != nil {
		menu.Path = *req.Path
	}
	if req.Role != nil {
		menu.Role = *req.Role
	}
	if req.OrderIndex != nil {
		menu.OrderIndex = *req.OrderIndex
	}

	if err := s.repo.Menu.Update(ctx, menu); err != nil {
		s.logger.Error("更新菜单失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return menu, nil
}

// ────────────────────── Delete ──────────────────────

func (s *menuService) Delete(ctx context.Context, id int64) error {
	if _, err := s.getByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Menu.Delete(ctx, id); err != nil {
		s.logger.Error("删除菜单失败", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── Reorder ──────────────────────

func (s *menuService) Reorder(ctx context.Context, req *dto.ReorderMenusRequest) error {
	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		for i, id := range req.IDs {
			menu, err := txRepo.Menu.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFoundf("菜单 %d 不存在", id)
				}
				return err
			}
			menu.OrderIndex = i
			if err := txRepo.Menu.Update(ctx, menu); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isAppError(err) {
			return err
		}
		s.logger.Error("菜单重排失败", zap.Error(err))
		return err
	}

	return nil
}

func (s *menuService) getByID(ctx context.Context, id int64) (*model.Menu, error) {
	menu, err := s.repo.Menu.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		s.logger.Error("查询菜单失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return menu, nil
}
