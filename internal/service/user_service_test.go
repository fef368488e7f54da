package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gdms/backend/internal/dto"
	"gdms/backend/internal/model"
	"gdms/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestUserService() (UserService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewUserService(repo, zap.NewNop())
	return svc, repo
}

// ── Create 测试 ──

func TestUserService_Create_Success(t *testing.T) {
	svc, _ := setupTestUserService()

	resp, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Username: "teacher01",
		Password: "secret123",
		FullName: "王老师",
		Role:     model.RoleTeacher,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Role != model.RoleTeacher {
		t.Errorf("期望角色 TEACHER，实际=%s", resp.Role)
	}
	if !resp.Enabled {
		t.Error("新建用户默认应为启用状态")
	}
}

func TestUserService_Create_UsernameTaken(t *testing.T) {
	svc, repo := setupTestUserService()
	_ = repo.User.Create(context.Background(), &model.User{Username: "dup", Role: model.RoleStudent})

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Username: "dup",
		Password: "secret123",
		Role:     model.RoleStudent,
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("期望 ErrUsernameTaken，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestUserService_Update_Disable(t *testing.T) {
	svc, repo := setupTestUserService()
	user := &model.User{Username: "stu01", Role: model.RoleStudent, Enabled: true}
	_ = repo.User.Create(context.Background(), user)

	disabled := false
	resp, err := svc.Update(context.Background(), user.ID, &dto.UpdateUserRequest{Enabled: &disabled})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.Enabled {
		t.Error("用户应已被禁用")
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestUserService()

	_, err := svc.Update(context.Background(), 9999, &dto.UpdateUserRequest{})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── ResetPassword 测试 ──

func TestUserService_ResetPassword_Success(t *testing.T) {
	svc, repo := setupTestUserService()
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	user := &model.User{Username: "stu02", PasswordHash: string(oldHash), Role: model.RoleStudent, Enabled: true}
	_ = repo.User.Create(context.Background(), user)

	if err := svc.ResetPassword(context.Background(), user.ID, &dto.ResetPasswordRequest{Password: "new-pass-456"}); err != nil {
		t.Fatalf("ResetPassword 应成功: %v", err)
	}

	stored, _ := repo.User.GetByID(context.Background(), user.ID)
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("new-pass-456")); err != nil {
		t.Error("新密码校验失败")
	}
}

// ── UpdateRoleBatch 测试 ──

func TestUserService_UpdateRoleBatch_InvalidRole(t *testing.T) {
	svc, _ := setupTestUserService()

	err := svc.UpdateRoleBatch(context.Background(), &dto.BatchRoleRequest{IDs: []int64{1}, Role: "SUPERUSER"})
	if err == nil {
		t.Fatal("非法角色应被拒绝")
	}
}

func TestUserService_UpdateRoleBatch_Success(t *testing.T) {
	svc, repo := setupTestUserService()
	u1 := &model.User{Username: "u1", Role: model.RoleStudent, Enabled: true}
	u2 := &model.User{Username: "u2", Role: model.RoleStudent, Enabled: true}
	_ = repo.User.Create(context.Background(), u1)
	_ = repo.User.Create(context.Background(), u2)

	if err := svc.UpdateRoleBatch(context.Background(), &dto.BatchRoleRequest{
		IDs:  []int64{u1.ID, u2.ID},
		Role: model.RoleStaff,
	}); err != nil {
		t.Fatalf("UpdateRoleBatch 应成功: %v", err)
	}

	stored, _ := repo.User.GetByID(context.Background(), u1.ID)
	if stored.Role != model.RoleStaff {
		t.Errorf("期望角色 STAFF，实际=%s", stored.Role)
	}
}

// ── Delete 测试 ──

func TestUserService_DeleteBatch_EmptyIDs(t *testing.T) {
	svc, _ := setupTestUserService()

	if err := svc.DeleteBatch(context.Background(), nil); err == nil {
		t.Fatal("空 ID 列表应被拒绝")
	}
}
