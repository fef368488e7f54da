package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"gdms/backend/internal/dto"
	"gdms/backend/internal/model"
	"gdms/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestApplicationService() (ApplicationService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewApplicationService(repo, zap.NewNop())
	return svc, repo
}

// ── Create 测试 ──

func TestApplicationService_Create_WritesLog(t *testing.T) {
	svc, repo := setupTestApplicationService()

	app, err := svc.Create(context.Background(), &dto.CreateApplicationRequest{
		Type:    "TOPIC_CHANGE",
		Payload: "申请更换课题方向",
	}, 100)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if app.Status != model.ApplicationSubmitted {
		t.Errorf("期望状态 SUBMITTED，实际=%s", app.Status)
	}

	logs, err := repo.ApplicationLog.ListByApplication(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("查询操作日志失败: %v", err)
	}
	if len(logs) != 1 || logs[0].Action != "SUBMIT" {
		t.Errorf("应写入 SUBMIT 日志: %+v", logs)
	}
}

// ── Review 测试 ──

func TestApplicationService_Review_Approve(t *testing.T) {
	svc, repo := setupTestApplicationService()
	app, err := svc.Create(context.Background(), &dto.CreateApplicationRequest{Type: "DEFERRAL"}, 100)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	result, err := svc.Review(context.Background(), app.ID, &dto.ReviewApplicationRequest{
		Decision: "APPROVED",
		Comment:  "同意延期",
	}, 1)
	if err != nil {
		t.Fatalf("Review 应成功: %v", err)
	}
	if result.Status != model.ApplicationApproved {
		t.Errorf("期望状态 APPROVED，实际=%s", result.Status)
	}

	logs, err := repo.ApplicationLog.ListByApplication(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("查询操作日志失败: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("期望 2 条日志（提交 + 审批），实际=%d", len(logs))
	}
	if logs[1].Action != "APPROVED" {
		t.Errorf("审批日志动作不符: %s", logs[1].Action)
	}
}

func TestApplicationService_Review_AlreadyReviewed(t *testing.T) {
	svc, _ := setupTestApplicationService()
	app, err := svc.Create(context.Background(), &dto.CreateApplicationRequest{Type: "DEFERRAL"}, 100)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if _, err := svc.Review(context.Background(), app.ID, &dto.ReviewApplicationRequest{Decision: "REJECTED"}, 1); err != nil {
		t.Fatalf("第一次审批应成功: %v", err)
	}

	_, err = svc.Review(context.Background(), app.ID, &dto.ReviewApplicationRequest{Decision: "APPROVED"}, 1)
	if !errors.Is(err, ErrApplicationReviewed) {
		t.Errorf("期望 ErrApplicationReviewed，实际: %v", err)
	}
}

// ── Withdraw 测试 ──

func TestApplicationService_Withdraw_Success(t *testing.T) {
	svc, repo := setupTestApplicationService()
	app, err := svc.Create(context.Background(), &dto.CreateApplicationRequest{Type: "DEFERRAL"}, 100)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	result, err := svc.Withdraw(context.Background(), app.ID, 100)
	if err != nil {
		t.Fatalf("Withdraw 应成功: %v", err)
	}
	if result.Status != model.ApplicationRejected {
		t.Errorf("撤回后期望状态 REJECTED，实际=%s", result.Status)
	}

	logs, err := repo.ApplicationLog.ListByApplication(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("查询操作日志失败: %v", err)
	}
	if len(logs) != 2 || logs[1].Action != "WITHDRAW" {
		t.Errorf("应写入 WITHDRAW 日志: %+v", logs)
	}
}

func TestApplicationService_Withdraw_NotOwner(t *testing.T) {
	svc, _ := setupTestApplicationService()
	app, err := svc.Create(context.Background(), &dto.CreateApplicationRequest{Type: "DEFERRAL"}, 100)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	_, err = svc.Withdraw(context.Background(), app.ID, 999)
	if !errors.Is(err, ErrApplicationNotOwner) {
		t.Errorf("期望 ErrApplicationNotOwner，实际: %v", err)
	}
}

func TestApplicationService_Withdraw_AlreadyReviewed(t *testing.T) {
	svc, _ := setupTestApplicationService()
	app, err := svc.Create(context.Background(), &dto.CreateApplicationRequest{Type: "DEFERRAL"}, 100)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if _, err := svc.Review(context.Background(), app.ID, &dto.ReviewApplicationRequest{Decision: "APPROVED"}, 1); err != nil {
		t.Fatalf("审批应成功: %v", err)
	}

	_, err = svc.Withdraw(context.Background(), app.ID, 100)
	if !errors.Is(err, ErrApplicationReviewed) {
		t.Errorf("期望 ErrApplicationReviewed，实际: %v", err)
	}
}

// ── Resubmit 测试 ──

func TestApplicationService_Resubmit_AfterRejected(t *testing.T) {
	svc, _ := setupTestApplicationService()
	app, err := svc.Create(context.Background(), &dto.CreateApplicationRequest{Type: "DEFERRAL", Payload: "v1"}, 100)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if _, err := svc.Review(context.Background(), app.ID, &dto.ReviewApplicationRequest{Decision: "REJECTED"}, 1); err != nil {
		t.Fatalf("审批应成功: %v", err)
	}

	result, err := svc.Resubmit(context.Background(), app.ID, &dto.ResubmitApplicationRequest{Payload: "v2"}, 100)
	if err != nil {
		t.Fatalf("Resubmit 应成功: %v", err)
	}
	if result.Status != model.ApplicationSubmitted {
		t.Errorf("重新提交后期望状态 SUBMITTED，实际=%s", result.Status)
	}
	if result.Payload != "v2" {
		t.Errorf("重新提交应更新内容，实际=%s", result.Payload)
	}
}

func TestApplicationService_Resubmit_NotRejected(t *testing.T) {
	svc, _ := setupTestApplicationService()
	app, err := svc.Create(context.Background(), &dto.CreateApplicationRequest{Type: "DEFERRAL"}, 100)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	_, err = svc.Resubmit(context.Background(), app.ID, &dto.ResubmitApplicationRequest{}, 100)
	if !errors.Is(err, ErrApplicationNotRejected) {
		t.Errorf("期望 ErrApplicationNotRejected，实际: %v", err)
	}
}

func TestApplicationService_Resubmit_NotOwner(t *testing.T) {
	svc, _ := setupTestApplicationService()
	app, err := svc.Create(context.Background(), &dto.CreateApplicationRequest{Type: "DEFERRAL"}, 100)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if _, err := svc.Review(context.Background(), app.ID, &dto.ReviewApplicationRequest{Decision: "REJECTED"}, 1); err != nil {
		t.Fatalf("审批应成功: %v", err)
	}

	_, err = svc.Resubmit(context.Background(), app.ID, &dto.ResubmitApplicationRequest{}, 999)
	if !errors.Is(err, ErrApplicationNotOwner) {
		t.Errorf("期望 ErrApplicationNotOwner，实际: %v", err)
	}
}

// ── Get 测试 ──

func TestApplicationService_Get_WithLogs(t *testing.T) {
	svc, _ := setupTestApplicationService()
	app, err := svc.Create(context.Background(), &dto.CreateApplicationRequest{Type: "DEFERRAL"}, 100)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	detail, err := svc.Get(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}
	if detail.Application.ID != app.ID {
		t.Errorf("申请 ID 不符: %+v", detail.Application)
	}
	if len(detail.Logs) != 1 {
		t.Errorf("期望 1 条日志，实际=%d", len(detail.Logs))
	}
}

func TestApplicationService_Get_NotFound(t *testing.T) {
	svc, _ := setupTestApplicationService()

	_, err := svc.Get(context.Background(), 9999)
	if !errors.Is(err, ErrApplicationNotFound) {
		t.Errorf("期望 ErrApplicationNotFound，实际: %v", err)
	}
}
