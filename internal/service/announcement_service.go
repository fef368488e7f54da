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

// ── 公告模块业务错误 ──

var (
	ErrAnnouncementNotFound = apperrors.NotFoundf("公告不存在")
	ErrAnnouncementPublished = apperrors.Statef("公告已发布")
)

// AnnouncementService 公告业务接口
type AnnouncementService interface {
	Create(ctx context.Context, req *dto.CreateAnnouncementRequest, creatorID int64) (*model.Announcement, error)
	// Get 读取公告并为读者登记阅读记录（幂等）
	Get(ctx context.Context, id int64, readerID int64) (*model.Announcement, error)
	Find(ctx context.Context, query *dto.AnnouncementListQuery) ([]model.Announcement, int64, error)
	ListPublished(ctx context.Context) ([]model.Announcement, error)
	Update(ctx context.Context, id int64, req *dto.UpdateAnnouncementRequest) (*model.Announcement, error)
	Delete(ctx context.Context, id int64) error

	Publish(ctx context.Context, id int64) (*model.Announcement, error)
	// BatchPublish 尽力而为：逐条发布，返回成功条数，单条失败不中断
	BatchPublish(ctx context.Context, ids []int64) (int, error)
	// BatchDelete 原子语义：任一条删除失败则整体回滚
	BatchDelete(ctx context.Context, ids []int64) error

	MarkRead(ctx context.Context, id int64, readerID int64) error
	ReadStats(ctx context.Context, id int64) (*dto.ReadStatsResponse, error)
	Stats(ctx context.Context) (*dto.AnnouncementStatsResponse, error)
}

type announcementService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAnnouncementService 创建 AnnouncementService 实例
func NewAnnouncementService(repo *repository.Repository, logger *zap.Logger) AnnouncementService {
	return &announcementService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *announcementService) Create(ctx context.Context, req *dto.CreateAnnouncementRequest, creatorID int64) (*model.Announcement, error) {
	ann := &model.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		CreatedBy: &creatorID,
		Status:    model.AnnouncementDraft,
	}
	if req.Status == model.AnnouncementPublished {
		now := time.Now()
		ann.Status = model.AnnouncementPublished
		ann.PublishedAt = &now
	}

	if err := s.repo.Announcement.Create(ctx, ann); err != nil {
		s.logger.Error("创建公告失败", zap.Error(err))
		return nil, err
	}

	return ann, nil
}

// ────────────────────── Get ──────────────────────

func (s *announcementService) Get(ctx context.Context, id int64, readerID int64) (*model.Announcement, error) {
	ann, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 已发布公告的读取自动登记阅读记录；登记失败不影响读取
	if ann.Status == model.AnnouncementPublished && readerID > 0 {
		if err := s.MarkRead(ctx, id, readerID); err != nil {
			s.logger.Warn("登记阅读记录失败",
				zap.Int64("announcement_id", id),
				zap.Int64("reader_id", readerID),
				zap.Error(err))
		}
	}

	return ann, nil
}

// ────────────────────── Find ──────────────────────

func (s *announcementService) Find(ctx context.Context, query *dto.AnnouncementListQuery) ([]model.Announcement, int64, error) {
	query.Normalize()

	filter := repository.AnnouncementFilter{
		Keyword:   query.Keyword,
		Status:    query.Status,
		CreatedBy: query.CreatedBy,
	}

	anns, total, err := s.repo.Announcement.Find(ctx, filter, query.Page, query.PageSize)
	if err != nil {
		s.logger.Error("查询公告列表失败", zap.Error(err))
		return nil, 0, err
	}
	return anns, total, nil
}

// ────────────────────── ListPublished ──────────────────────

func (s *announcementService) ListPublished(ctx context.Context) ([]model.Announcement, error) {
	anns, err := s.repo.Announcement.ListByStatus(ctx, model.AnnouncementPublished)
	if err != nil {
		s.logger.Error("查询已发布公告失败", zap.Error(err))
		return nil, err
	}
	return anns, nil
}

// ────────────────────── Update ──────────────────────

func (s *announcementService) Update(ctx context.Context, id int64, req *dto.UpdateAnnouncementRequest) (*model.Announcement, error) {
	ann, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		ann.Title = *req.Title
	}
	if req.Content != nil {
		ann.Content = *req.Content
	}
	if req.Status != nil && *req.Status != ann.Status {
		ann.Status = *req.Status
		if *req.Status == model.AnnouncementPublished {
			now := time.Now()
			ann.PublishedAt = &now
		}
	}

	if err := s.repo.Announcement.Update(ctx, ann); err != nil {
		s.logger.Error("更新公告失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return ann, nil
}

// ────────────────────── Delete ──────────────────────

func (s *announcementService) Delete(ctx context.Context, id int64) error {
	if _, err := s.getByID(ctx, id); err != nil {
		return err
	}

	// 公告与其阅读记录一并删除
	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.AnnouncementRead.DeleteByAnnouncement(ctx, id); err != nil {
			return err
		}
		return txRepo.Announcement.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("删除公告失败", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── Publish ──────────────────────

func (s *announcementService) Publish(ctx context.Context, id int64) (*model.Announcement, error) {
	ann, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ann.Status == model.AnnouncementPublished {
		return nil, ErrAnnouncementPublished
	}

	now := time.Now()
	ann.Status = model.AnnouncementPublished
	ann.PublishedAt = &now

	if err := s.repo.Announcement.Update(ctx, ann); err != nil {
		s.logger.Error("发布公告失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return ann, nil
}

// ────────────────────── BatchPublish ──────────────────────

func (s *announcementService) BatchPublish(ctx context.Context, ids []int64) (int, error) {
	count := 0
	for _, id := range ids {
		if _, err := s.Publish(ctx, id); err != nil {
			s.logger.Warn("批量发布跳过", zap.Int64("id", id), zap.Error(err))
			continue
		}
		count++
	}
	return count, nil
}

// ────────────────────── BatchDelete ──────────────────────

func (s *announcementService) BatchDelete(ctx context.Context, ids []int64) error {
	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		for _, id := range ids {
			if _, err := txRepo.Announcement.GetByID(ctx, id); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFoundf("公告 %d 不存在", id)
				}
				return err
			}
			if err := txRepo.AnnouncementRead.DeleteByAnnouncement(ctx, id); err != nil {
				return err
			}
			if err := txRepo.Announcement.Delete(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isAppError(err) {
			return err
		}
		s.logger.Error("批量删除公告失败", zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── MarkRead ──────────────────────

// MarkRead 幂等：重复阅读不产生新记录
func (s *announcementService) MarkRead(ctx context.Context, id int64, readerID int64) error {
	exists, err := s.repo.AnnouncementRead.Exists(ctx, id, readerID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.repo.AnnouncementRead.Create(ctx, &model.AnnouncementRead{
		AnnouncementID: id,
		UserID:         readerID,
	})
}

// ────────────────────── ReadStats ──────────────────────

func (s *announcementService) ReadStats(ctx context.Context, id int64) (*dto.ReadStatsResponse, error) {
	ann, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.AnnouncementRead.CountByAnnouncement(ctx, id)
	if err != nil {
		s.logger.Error("统计阅读数失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.ReadStatsResponse{
		AnnouncementID: id,
		Title:          ann.Title,
		TotalRead:      total,
	}, nil
}

// ────────────────────── Stats ──────────────────────

func (s *announcementService) Stats(ctx context.Context) (*dto.AnnouncementStatsResponse, error) {
	total, err := s.repo.Announcement.Count(ctx)
	if err != nil {
		s.logger.Error("统计公告总数失败", zap.Error(err))
		return nil, err
	}
	published, err := s.repo.Announcement.CountByStatus(ctx, model.AnnouncementPublished)
	if err != nil {
		return nil, err
	}
	draft, err := s.repo.Announcement.CountByStatus(ctx, model.AnnouncementDraft)
	if err != nil {
		return nil, err
	}
	reads, err := s.repo.AnnouncementRead.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AnnouncementStatsResponse{
		TotalCount:     total,
		PublishedCount: published,
		DraftCount:     draft,
		TotalReadCount: reads,
	}, nil
}

func (s *announcementService) getByID(ctx context.Context, id int64) (*model.Announcement, error) {
	ann, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		s.logger.Error("查询公告失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return ann, nil
}
