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

func setupTestAnnouncementService() (AnnouncementService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewAnnouncementService(repo, zap.NewNop())
	return svc, repo
}

func seedAnnouncement(t *testing.T, repo *repository.Repository, ann *model.Announcement) *model.Announcement {
	t.Helper()
	if err := repo.Announcement.Create(context.Background(), ann); err != nil {
		t.Fatalf("初始化公告失败: %v", err)
	}
	return ann
}

// ── Create 测试 ──

func TestAnnouncementService_Create_Draft(t *testing.T) {
	svc, _ := setupTestAnnouncementService()

	ann, err := svc.Create(context.Background(), &dto.CreateAnnouncementRequest{
		Title:   "答辩安排通知",
		Content: "第一轮答辩定于 6 月 10 日进行",
	}, 1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if ann.Status != model.AnnouncementDraft {
		t.Errorf("默认状态应为 DRAFT，实际=%s", ann.Status)
	}
	if ann.PublishedAt != nil {
		t.Error("草稿不应有发布时间")
	}
}

func TestAnnouncementService_Create_DirectPublish(t *testing.T) {
	svc, _ := setupTestAnnouncementService()

	ann, err := svc.Create(context.Background(), &dto.CreateAnnouncementRequest{
		Title:   "即时通知",
		Content: "内容",
		Status:  model.AnnouncementPublished,
	}, 1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if ann.Status != model.AnnouncementPublished {
		t.Errorf("期望状态 PUBLISHED，实际=%s", ann.Status)
	}
	if ann.PublishedAt == nil {
		t.Error("直接发布应记录发布时间")
	}
}

// ── Publish 测试 ──

func TestAnnouncementService_Publish_Success(t *testing.T) {
	svc, repo := setupTestAnnouncementService()
	ann := seedAnnouncement(t, repo, &model.Announcement{Title: "通知", Content: "内容", Status: model.AnnouncementDraft})

	result, err := svc.Publish(context.Background(), ann.ID)
	if err != nil {
		t.Fatalf("Publish 应成功: %v", err)
	}
	if result.Status != model.AnnouncementPublished || result.PublishedAt == nil {
		t.Errorf("发布结果不符: %+v", result)
	}
}

func TestAnnouncementService_Publish_AlreadyPublished(t *testing.T) {
	svc, repo := setupTestAnnouncementService()
	ann := seedAnnouncement(t, repo, &model.Announcement{Title: "通知", Content: "内容", Status: model.AnnouncementPublished})

	_, err := svc.Publish(context.Background(), ann.ID)
	if !errors.Is(err, ErrAnnouncementPublished) {
		t.Errorf("期望 ErrAnnouncementPublished，实际: %v", err)
	}
}

// ── BatchPublish / BatchDelete 测试 ──

func TestAnnouncementService_BatchPublish_BestEffort(t *testing.T) {
	svc, repo := setupTestAnnouncementService()
	a := seedAnnouncement(t, repo, &model.Announcement{Title: "A", Content: "内容", Status: model.AnnouncementDraft})
	b := seedAnnouncement(t, repo, &model.Announcement{Title: "B", Content: "内容", Status: model.AnnouncementPublished})
	c := seedAnnouncement(t, repo, &model.Announcement{Title: "C", Content: "内容", Status: model.AnnouncementDraft})

	// b 已发布、9999 不存在，均被跳过
	count, err := svc.BatchPublish(context.Background(), []int64{a.ID, b.ID, 9999, c.ID})
	if err != nil {
		t.Fatalf("BatchPublish 应成功: %v", err)
	}
	if count != 2 {
		t.Errorf("期望发布 2 条，实际=%d", count)
	}
}

func TestAnnouncementService_BatchDelete_MissingID(t *testing.T) {
	svc, repo := setupTestAnnouncementService()
	ann := seedAnnouncement(t, repo, &model.Announcement{Title: "A", Content: "内容", Status: model.AnnouncementDraft})

	err := svc.BatchDelete(context.Background(), []int64{9999, ann.ID})
	if err == nil {
		t.Fatal("包含不存在公告的批量删除应失败")
	}
	// 首个 id 校验失败时不应删除任何公告
	if _, err := repo.Announcement.GetByID(context.Background(), ann.ID); err != nil {
		t.Errorf("公告不应被删除: %v", err)
	}
}

func TestAnnouncementService_BatchDelete_Success(t *testing.T) {
	svc, repo := setupTestAnnouncementService()
	a := seedAnnouncement(t, repo, &model.Announcement{Title: "A", Content: "内容", Status: model.AnnouncementDraft})
	b := seedAnnouncement(t, repo, &model.Announcement{Title: "B", Content: "内容", Status: model.AnnouncementPublished})
	if err := repo.AnnouncementRead.Create(context.Background(), &model.AnnouncementRead{AnnouncementID: b.ID, UserID: 100}); err != nil {
		t.Fatalf("初始化阅读记录失败: %v", err)
	}

	if err := svc.BatchDelete(context.Background(), []int64{a.ID, b.ID}); err != nil {
		t.Fatalf("BatchDelete 应成功: %v", err)
	}
	if _, err := repo.Announcement.GetByID(context.Background(), a.ID); err == nil {
		t.Error("公告 A 应已删除")
	}
	// 阅读记录随公告一并清理
	count, err := repo.AnnouncementRead.CountByAnnouncement(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("统计阅读记录失败: %v", err)
	}
	if count != 0 {
		t.Errorf("阅读记录应被清理，实际剩余=%d", count)
	}
}

// ── MarkRead / Get 测试 ──

func TestAnnouncementService_MarkRead_Idempotent(t *testing.T) {
	svc, repo := setupTestAnnouncementService()
	ann := seedAnnouncement(t, repo, &model.Announcement{Title: "通知", Content: "内容", Status: model.AnnouncementPublished})

	if err := svc.MarkRead(context.Background(), ann.ID, 100); err != nil {
		t.Fatalf("MarkRead 应成功: %v", err)
	}
	if err := svc.MarkRead(context.Background(), ann.ID, 100); err != nil {
		t.Fatalf("重复 MarkRead 应成功: %v", err)
	}

	count, err := repo.AnnouncementRead.CountByAnnouncement(context.Background(), ann.ID)
	if err != nil {
		t.Fatalf("统计阅读记录失败: %v", err)
	}
	if count != 1 {
		t.Errorf("重复阅读不应产生新记录，实际=%d", count)
	}
}

func TestAnnouncementService_Get_RecordsRead(t *testing.T) {
	svc, repo := setupTestAnnouncementService()
	ann := seedAnnouncement(t, repo, &model.Announcement{Title: "通知", Content: "内容", Status: model.AnnouncementPublished})

	if _, err := svc.Get(context.Background(), ann.ID, 100); err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}

	count, err := repo.AnnouncementRead.CountByAnnouncement(context.Background(), ann.ID)
	if err != nil {
		t.Fatalf("统计阅读记录失败: %v", err)
	}
	if count != 1 {
		t.Errorf("读取已发布公告应登记阅读记录，实际=%d", count)
	}
}

func TestAnnouncementService_Get_DraftSkipsRead(t *testing.T) {
	svc, repo := setupTestAnnouncementService()
	ann := seedAnnouncement(t, repo, &model.Announcement{Title: "通知", Content: "内容", Status: model.AnnouncementDraft})

	if _, err := svc.Get(context.Background(), ann.ID, 100); err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}

	count, err := repo.AnnouncementRead.CountByAnnouncement(context.Background(), ann.ID)
	if err != nil {
		t.Fatalf("统计阅读记录失败: %v", err)
	}
	if count != 0 {
		t.Errorf("草稿读取不应登记阅读记录，实际=%d", count)
	}
}

// ── ReadStats 测试 ──

func TestAnnouncementService_ReadStats(t *testing.T) {
	svc, repo := setupTestAnnouncementService()
	ann := seedAnnouncement(t, repo, &model.Announcement{Title: "通知", Content: "内容", Status: model.AnnouncementPublished})

	if err := svc.MarkRead(context.Background(), ann.ID, 100); err != nil {
		t.Fatalf("MarkRead 应成功: %v", err)
	}
	if err := svc.MarkRead(context.Background(), ann.ID, 101); err != nil {
		t.Fatalf("MarkRead 应成功: %v", err)
	}

	stats, err := svc.ReadStats(context.Background(), ann.ID)
	if err != nil {
		t.Fatalf("ReadStats 应成功: %v", err)
	}
	if stats.TotalRead != 2 {
		t.Errorf("期望阅读数 2，实际=%d", stats.TotalRead)
	}
}
