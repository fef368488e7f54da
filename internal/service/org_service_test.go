package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"gdms/backend/internal/dto"
	"gdms/backend/internal/model"
	"gdms/backend/internal/repository"
	"gdms/backend/pkg/apperrors"
)

// ── 测试辅助 ──

func setupTestOrgService() (OrgService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewOrgService(repo, zap.NewNop())
	return svc, repo
}

// ── Create 测试 ──

func TestOrgService_Create_Success(t *testing.T) {
	svc, _ := setupTestOrgService()

	org, err := svc.Create(context.Background(), &dto.CreateOrgRequest{Name: "计算机学院", Type: "COLLEGE"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if org.ID == 0 {
		t.Error("应分配组织 ID")
	}
}

func TestOrgService_Create_ParentNotFound(t *testing.T) {
	svc, _ := setupTestOrgService()

	parentID := int64(9999)
	_, err := svc.Create(context.Background(), &dto.CreateOrgRequest{Name: "软件工程系", ParentID: &parentID})
	if !errors.Is(err, ErrOrgNotFound) {
		t.Errorf("期望 ErrOrgNotFound，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestOrgService_Update_SelfParent(t *testing.T) {
	svc, _ := setupTestOrgService()

	org, err := svc.Create(context.Background(), &dto.CreateOrgRequest{Name: "计算机学院"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	_, err = svc.Update(context.Background(), org.ID, &dto.UpdateOrgRequest{ParentID: &org.ID})
	if err == nil {
		t.Error("组织不应能将自身设为上级")
	}
}

// ── Delete 测试 ──

func TestOrgService_Delete_HasChildren(t *testing.T) {
	svc, _ := setupTestOrgService()

	parent, err := svc.Create(context.Background(), &dto.CreateOrgRequest{Name: "计算机学院"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if _, err := svc.Create(context.Background(), &dto.CreateOrgRequest{Name: "软件工程系", ParentID: &parent.ID}); err != nil {
		t.Fatalf("创建子组织应成功: %v", err)
	}

	err = svc.Delete(context.Background(), parent.ID)
	if !errors.Is(err, ErrOrgHasChildren) {
		t.Errorf("期望 ErrOrgHasChildren，实际: %v", err)
	}
	if !errors.Is(err, apperrors.Conflict()) {
		t.Errorf("删除受阻应是冲突类错误，实际: %v", err)
	}
}

func TestOrgService_Delete_HasUsers(t *testing.T) {
	svc, repo := setupTestOrgService()

	org, err := svc.Create(context.Background(), &dto.CreateOrgRequest{Name: "计算机学院"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	err = repo.User.Create(context.Background(), &model.User{Username: "zhangsan", Role: model.RoleStudent, OrgID: &org.ID, Enabled: true})
	if err != nil {
		t.Fatalf("初始化用户失败: %v", err)
	}

	err = svc.Delete(context.Background(), org.ID)
	if !errors.Is(err, ErrOrgHasUsers) {
		t.Errorf("期望 ErrOrgHasUsers，实际: %v", err)
	}
}

func TestOrgService_DeleteBatch_PrecheckBlocks(t *testing.T) {
	svc, _ := setupTestOrgService()

	parent, err := svc.Create(context.Background(), &dto.CreateOrgRequest{Name: "计算机学院"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	child, err := svc.Create(context.Background(), &dto.CreateOrgRequest{Name: "软件工程系", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("创建子组织应成功: %v", err)
	}
	leaf, err := svc.Create(context.Background(), &dto.CreateOrgRequest{Name: "独立部门"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	// parent 有子组织，整批拒绝
	err = svc.DeleteBatch(context.Background(), []int64{leaf.ID, parent.ID})
	if !errors.Is(err, ErrOrgHasChildren) {
		t.Errorf("期望 ErrOrgHasChildren，实际: %v", err)
	}

	// 前置校验失败时不应删除任何组织
	if _, err := svc.GetByID(context.Background(), leaf.ID); err != nil {
		t.Errorf("批量删除被拒后组织不应被删除: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), child.ID); err != nil {
		t.Errorf("子组织不应被删除: %v", err)
	}
}
