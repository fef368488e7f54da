package service

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"gdms/backend/internal/model"
	"gdms/backend/internal/repository"
)

// newMockRepository 组装全部 mock Repository（无底层数据库连接，事务退化为直接执行）
func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:             newMockUserRepo(),
		Org:              newMockOrgRepo(),
		Menu:             newMockMenuRepo(),
		Topic:            newMockTopicRepo(),
		TopicApproval:    newMockTopicApprovalRepo(),
		Selection:        newMockSelectionRepo(),
		StageConfig:      newMockStageConfigRepo(),
		StageTask:        newMockStageTaskRepo(),
		StageReview:      newMockStageReviewRepo(),
		DefenseGroup:     newMockDefenseGroupRepo(),
		GroupMember:      newMockGroupMemberRepo(),
		ReviewAssignment: newMockReviewAssignmentRepo(),
		DefenseScore:     newMockDefenseScoreRepo(),
		Announcement:     newMockAnnouncementRepo(),
		AnnouncementRead: newMockAnnouncementReadRepo(),
		Application:      newMockApplicationRepo(),
		ApplicationLog:   newMockApplicationLogRepo(),
	}
}

func paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  []*model.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	} else if user.ID >= m.nextID {
		m.nextID = user.ID + 1
	}
	m.users = append(m.users, user)
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Find(_ context.Context, filter repository.UserFilter, page, pageSize int) ([]model.User, int64, error) {
	var matched []model.User
	for _, u := range m.users {
		if filter.Keyword != "" &&
			!strings.Contains(u.Username, filter.Keyword) &&
			!strings.Contains(u.FullName, filter.Keyword) &&
			!strings.Contains(u.Phone, filter.Keyword) {
			continue
		}
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.OrgID != nil && (u.OrgID == nil || *u.OrgID != *filter.OrgID) {
			continue
		}
		if filter.Enabled != nil && u.Enabled != *filter.Enabled {
			continue
		}
		matched = append(matched, *u)
	}
	return paginate(matched, page, pageSize), int64(len(matched)), nil
}

func (m *mockUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role && u.Enabled {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	for i, u := range m.users {
		if u.ID == user.ID {
			m.users[i] = user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdateRoleBatch(_ context.Context, ids []int64, role string) error {
	for _, id := range ids {
		for _, u := range m.users {
			if u.ID == id {
				u.Role = role
			}
		}
	}
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id int64) error {
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockUserRepo) DeleteBatch(_ context.Context, ids []int64) error {
	for _, id := range ids {
		_ = m.Delete(context.Background(), id)
	}
	return nil
}

// ── Mock OrgRepository ──

type mockOrgRepo struct {
	orgs   []*model.Org
	nextID int64
}

func newMockOrgRepo() *mockOrgRepo {
	return &mockOrgRepo{nextID: 1}
}

func (m *mockOrgRepo) Create(_ context.Context, org *model.Org) error {
	if org.ID == 0 {
		org.ID = m.nextID
		m.nextID++
	} else if org.ID >= m.nextID {
		m.nextID = org.ID + 1
	}
	m.orgs = append(m.orgs, org)
	return nil
}

func (m *mockOrgRepo) GetByID(_ context.Context, id int64) (*model.Org, error) {
	for _, o := range m.orgs {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrgRepo) List(_ context.Context) ([]model.Org, error) {
	var result []model.Org
	for _, o := range m.orgs {
		result = append(result, *o)
	}
	return result, nil
}

func (m *mockOrgRepo) Find(_ context.Context, filter repository.OrgFilter, page, pageSize int) ([]model.Org, int64, error) {
	var matched []model.Org
	for _, o := range m.orgs {
		if filter.Keyword != "" && !strings.Contains(o.Name, filter.Keyword) {
			continue
		}
		if filter.Type != "" && o.Type != filter.Type {
			continue
		}
		if filter.ParentID != nil && (o.ParentID == nil || *o.ParentID != *filter.ParentID) {
			continue
		}
		matched = append(matched, *o)
	}
	return paginate(matched, page, pageSize), int64(len(matched)), nil
}

func (m *mockOrgRepo) HasChildren(_ context.Context, id int64) (bool, error) {
	for _, o := range m.orgs {
		if o.ParentID != nil && *o.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockOrgRepo) Update(_ context.Context, org *model.Org) error {
	for i, o := range m.orgs {
		if o.ID == org.ID {
			m.orgs[i] = org
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockOrgRepo) Delete(_ context.Context, id int64) error {
	for i, o := range m.orgs {
		if o.ID == id {
			m.orgs = append(m.orgs[:i], m.orgs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockOrgRepo) DeleteBatch(_ context.Context, ids []int64) error {
	for _, id := range ids {
		_ = m.Delete(context.Background(), id)
	}
	return nil
}

// ── Mock MenuRepository ──

type mockMenuRepo struct {
	menus  []*model.Menu
	nextID int64
}

func newMockMenuRepo() *mockMenuRepo {
	return &mockMenuRepo{nextID: 1}
}

func (m *mockMenuRepo) Create(_ context.Context, menu *model.Menu) error {
	if menu.ID == 0 {
		menu.ID = m.nextID
		m.nextID++
	} else if menu.ID >= m.nextID {
		m.nextID = menu.ID + 1
	}
	m.menus = append(m.menus, menu)
	return nil
}

func (m *mockMenuRepo) GetByID(_ context.Context, id int64) (*model.Menu, error) {
	for _, menu := range m.menus {
		if menu.ID == id {
			return menu, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMenuRepo) ListByRole(_ context.Context, role string) ([]model.Menu, error) {
	var result []model.Menu
	for _, menu := range m.menus {
		if menu.Role == role {
			result = append(result, *menu)
		}
	}
	return result, nil
}

func (m *mockMenuRepo) Update(_ context.Context, menu *model.Menu) error {
	for i, existing := range m.menus {
		if existing.ID == menu.ID {
			m.menus[i] = menu
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockMenuRepo) Delete(_ context.Context, id int64) error {
	for i, menu := range m.menus {
		if menu.ID == id {
			m.menus = append(m.menus[:i], m.menus[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock TopicRepository ──

type mockTopicRepo struct {
	topics []*model.Topic
	nextID int64
}

func newMockTopicRepo() *mockTopicRepo {
	return &mockTopicRepo{nextID: 1}
}

func (m *mockTopicRepo) Create(_ context.Context, topic *model.Topic) error {
	if topic.ID == 0 {
		topic.ID = m.nextID
		m.nextID++
	} else if topic.ID >= m.nextID {
		m.nextID = topic.ID + 1
	}
	m.topics = append(m.topics, topic)
	return nil
}

func (m *mockTopicRepo) GetByID(_ context.Context, id int64) (*model.Topic, error) {
	for _, t := range m.topics {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTopicRepo) GetByIDForUpdate(ctx context.Context, id int64) (*model.Topic, error) {
	return m.GetByID(ctx, id)
}

func (m *mockTopicRepo) List(_ context.Context) ([]model.Topic, error) {
	var result []model.Topic
	for _, t := range m.topics {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTopicRepo) ListByCreator(_ context.Context, creatorID int64) ([]model.Topic, error) {
	var result []model.Topic
	for _, t := range m.topics {
		if t.CreatorID == creatorID {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTopicRepo) Find(_ context.Context, filter repository.TopicFilter, page, pageSize int) ([]model.Topic, int64, error) {
	var matched []model.Topic
	for _, t := range m.topics {
		if filter.Keyword != "" &&
			!strings.Contains(t.Title, filter.Keyword) &&
			!strings.Contains(t.Description, filter.Keyword) {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.CreatorID != nil && t.CreatorID != *filter.CreatorID {
			continue
		}
		matched = append(matched, *t)
	}
	return paginate(matched, page, pageSize), int64(len(matched)), nil
}

func (m *mockTopicRepo) Update(_ context.Context, topic *model.Topic) error {
	for i, t := range m.topics {
		if t.ID == topic.ID {
			m.topics[i] = topic
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockTopicRepo) Delete(_ context.Context, id int64) error {
	for i, t := range m.topics {
		if t.ID == id {
			m.topics = append(m.topics[:i], m.topics[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock TopicApprovalRepository ──

type mockTopicApprovalRepo struct {
	approvals []*model.TopicApproval
	nextID    int64
}

func newMockTopicApprovalRepo() *mockTopicApprovalRepo {
	return &mockTopicApprovalRepo{nextID: 1}
}

func (m *mockTopicApprovalRepo) Create(_ context.Context, approval *model.TopicApproval) error {
	if approval.ID == 0 {
		approval.ID = m.nextID
		m.nextID++
	}
	m.approvals = append(m.approvals, approval)
	return nil
}

func (m *mockTopicApprovalRepo) ListByTopic(_ context.Context, topicID int64) ([]model.TopicApproval, error) {
	var result []model.TopicApproval
	for _, a := range m.approvals {
		if a.TopicID == topicID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockTopicApprovalRepo) List(_ context.Context) ([]model.TopicApproval, error) {
	var result []model.TopicApproval
	for _, a := range m.approvals {
		result = append(result, *a)
	}
	return result, nil
}

// ── Mock SelectionRepository ──

type mockSelectionRepo struct {
	selections []*model.StudentSelection
	nextID     int64
}

func newMockSelectionRepo() *mockSelectionRepo {
	return &mockSelectionRepo{nextID: 1}
}

func (m *mockSelectionRepo) Create(_ context.Context, selection *model.StudentSelection) error {
	if selection.ID == 0 {
		selection.ID = m.nextID
		m.nextID++
	} else if selection.ID >= m.nextID {
		m.nextID = selection.ID + 1
	}
	m.selections = append(m.selections, selection)
	return nil
}

func (m *mockSelectionRepo) GetByID(_ context.Context, id int64) (*model.StudentSelection, error) {
	for _, s := range m.selections {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSelectionRepo) GetByStudentAndStatus(_ context.Context, studentID int64, status model.SelectionStatus) (*model.StudentSelection, error) {
	for _, s := range m.selections {
		if s.StudentID == studentID && s.Status == status {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSelectionRepo) ExistsByStudentAndStatus(_ context.Context, studentID int64, status model.SelectionStatus) (bool, error) {
	for _, s := range m.selections {
		if s.StudentID == studentID && s.Status == status {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSelectionRepo) ListByTopic(_ context.Context, topicID int64) ([]model.StudentSelection, error) {
	var result []model.StudentSelection
	for _, s := range m.selections {
		if s.TopicID == topicID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSelectionRepo) ListByStudent(_ context.Context, studentID int64) ([]model.StudentSelection, error) {
	var result []model.StudentSelection
	for _, s := range m.selections {
		if s.StudentID == studentID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSelectionRepo) ListActive(_ context.Context) ([]model.StudentSelection, error) {
	var result []model.StudentSelection
	for _, s := range m.selections {
		if s.Status == model.SelectionSelected || s.Status == model.SelectionLocked {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSelectionRepo) CountActiveByTopic(_ context.Context, topicID int64) (int64, error) {
	var count int64
	for _, s := range m.selections {
		if s.TopicID == topicID && (s.Status == model.SelectionSelected || s.Status == model.SelectionLocked) {
			count++
		}
	}
	return count, nil
}

func (m *mockSelectionRepo) Update(_ context.Context, selection *model.StudentSelection) error {
	for i, s := range m.selections {
		if s.ID == selection.ID {
			m.selections[i] = selection
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock StageConfigRepository ──

type mockStageConfigRepo struct {
	stages []*model.StageConfig
	nextID int64
}

func newMockStageConfigRepo() *mockStageConfigRepo {
	return &mockStageConfigRepo{nextID: 1}
}

func (m *mockStageConfigRepo) Create(_ context.Context, cfg *model.StageConfig) error {
	if cfg.ID == 0 {
		cfg.ID = m.nextID
		m.nextID++
	} else if cfg.ID >= m.nextID {
		m.nextID = cfg.ID + 1
	}
	m.stages = append(m.stages, cfg)
	return nil
}

func (m *mockStageConfigRepo) GetByID(_ context.Context, id int64) (*model.StageConfig, error) {
	for _, s := range m.stages {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStageConfigRepo) FindPrev(_ context.Context, orderIndex int) (*model.StageConfig, error) {
	var prev *model.StageConfig
	for _, s := range m.stages {
		if s.OrderIndex < orderIndex && (prev == nil || s.OrderIndex > prev.OrderIndex) {
			prev = s
		}
	}
	if prev == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return prev, nil
}

func (m *mockStageConfigRepo) ListActive(_ context.Context) ([]model.StageConfig, error) {
	var result []model.StageConfig
	for _, s := range m.stages {
		if s.Active {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockStageConfigRepo) List(_ context.Context) ([]model.StageConfig, error) {
	var result []model.StageConfig
	for _, s := range m.stages {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockStageConfigRepo) Update(_ context.Context, cfg *model.StageConfig) error {
	for i, s := range m.stages {
		if s.ID == cfg.ID {
			m.stages[i] = cfg
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockStageConfigRepo) Delete(_ context.Context, id int64) error {
	for i, s := range m.stages {
		if s.ID == id {
			m.stages = append(m.stages[:i], m.stages[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock StageTaskRepository ──

type mockStageTaskRepo struct {
	tasks  []*model.StageTask
	nextID int64
}

func newMockStageTaskRepo() *mockStageTaskRepo {
	return &mockStageTaskRepo{nextID: 1}
}

func (m *mockStageTaskRepo) Create(_ context.Context, task *model.StageTask) error {
	if task.ID == 0 {
		task.ID = m.nextID
		m.nextID++
	} else if task.ID >= m.nextID {
		m.nextID = task.ID + 1
	}
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *mockStageTaskRepo) GetByID(_ context.Context, id int64) (*model.StageTask, error) {
	for _, t := range m.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStageTaskRepo) GetLatestByStudentAndStage(_ context.Context, studentID, stageID int64) (*model.StageTask, error) {
	var latest *model.StageTask
	for _, t := range m.tasks {
		if t.StudentID == studentID && t.StageID == stageID {
			if latest == nil || t.ID > latest.ID {
				latest = t
			}
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockStageTaskRepo) ListByStudent(_ context.Context, studentID int64) ([]model.StageTask, error) {
	var result []model.StageTask
	for _, t := range m.tasks {
		if t.StudentID == studentID {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockStageTaskRepo) List(_ context.Context) ([]model.StageTask, error) {
	var result []model.StageTask
	for _, t := range m.tasks {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockStageTaskRepo) Update(_ context.Context, task *model.StageTask) error {
	for i, t := range m.tasks {
		if t.ID == task.ID {
			m.tasks[i] = task
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock StageReviewRepository ──

type mockStageReviewRepo struct {
	reviews []*model.StageReview
	nextID  int64
}

func newMockStageReviewRepo() *mockStageReviewRepo {
	return &mockStageReviewRepo{nextID: 1}
}

func (m *mockStageReviewRepo) Create(_ context.Context, review *model.StageReview) error {
	if review.ID == 0 {
		review.ID = m.nextID
		m.nextID++
	}
	m.reviews = append(m.reviews, review)
	return nil
}

func (m *mockStageReviewRepo) ListByTask(_ context.Context, taskID int64) ([]model.StageReview, error) {
	var result []model.StageReview
	for _, r := range m.reviews {
		if r.TaskID == taskID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockStageReviewRepo) List(_ context.Context) ([]model.StageReview, error) {
	var result []model.StageReview
	for _, r := range m.reviews {
		result = append(result, *r)
	}
	return result, nil
}

// ── Mock DefenseGroupRepository ──

type mockDefenseGroupRepo struct {
	groups []*model.DefenseGroup
	nextID int64
}

func newMockDefenseGroupRepo() *mockDefenseGroupRepo {
	return &mockDefenseGroupRepo{nextID: 1}
}

func (m *mockDefenseGroupRepo) Create(_ context.Context, group *model.DefenseGroup) error {
	if group.ID == 0 {
		group.ID = m.nextID
		m.nextID++
	} else if group.ID >= m.nextID {
		m.nextID = group.ID + 1
	}
	m.groups = append(m.groups, group)
	return nil
}

func (m *mockDefenseGroupRepo) GetByID(_ context.Context, id int64) (*model.DefenseGroup, error) {
	for _, g := range m.groups {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDefenseGroupRepo) GetByIDForUpdate(ctx context.Context, id int64) (*model.DefenseGroup, error) {
	return m.GetByID(ctx, id)
}

func (m *mockDefenseGroupRepo) List(_ context.Context) ([]model.DefenseGroup, error) {
	var result []model.DefenseGroup
	for _, g := range m.groups {
		result = append(result, *g)
	}
	return result, nil
}

func (m *mockDefenseGroupRepo) Find(_ context.Context, filter repository.GroupFilter, page, pageSize int) ([]model.DefenseGroup, int64, error) {
	var matched []model.DefenseGroup
	for _, g := range m.groups {
		if filter.Keyword != "" && !strings.Contains(g.Name, filter.Keyword) {
			continue
		}
		if filter.Type != "" && g.Type != filter.Type {
			continue
		}
		matched = append(matched, *g)
	}
	return paginate(matched, page, pageSize), int64(len(matched)), nil
}

func (m *mockDefenseGroupRepo) Update(_ context.Context, group *model.DefenseGroup) error {
	for i, g := range m.groups {
		if g.ID == group.ID {
			m.groups[i] = group
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockDefenseGroupRepo) Delete(_ context.Context, id int64) error {
	for i, g := range m.groups {
		if g.ID == id {
			m.groups = append(m.groups[:i], m.groups[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock GroupMemberRepository ──

type mockGroupMemberRepo struct {
	members []*model.GroupMember
	nextID  int64
}

func newMockGroupMemberRepo() *mockGroupMemberRepo {
	return &mockGroupMemberRepo{nextID: 1}
}

func (m *mockGroupMemberRepo) Create(_ context.Context, member *model.GroupMember) error {
	if member.ID == 0 {
		member.ID = m.nextID
		m.nextID++
	} else if member.ID >= m.nextID {
		m.nextID = member.ID + 1
	}
	m.members = append(m.members, member)
	return nil
}

func (m *mockGroupMemberRepo) GetByID(_ context.Context, id int64) (*model.GroupMember, error) {
	for _, gm := range m.members {
		if gm.ID == id {
			return gm, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupMemberRepo) ListByGroup(_ context.Context, groupID int64) ([]model.GroupMember, error) {
	var result []model.GroupMember
	for _, gm := range m.members {
		if gm.GroupID == groupID {
			result = append(result, *gm)
		}
	}
	return result, nil
}

func (m *mockGroupMemberRepo) ListByStudent(_ context.Context, studentID int64) ([]model.GroupMember, error) {
	var result []model.GroupMember
	for _, gm := range m.members {
		if gm.StudentID == studentID {
			result = append(result, *gm)
		}
	}
	return result, nil
}

func (m *mockGroupMemberRepo) CountByGroup(_ context.Context, groupID int64) (int64, error) {
	var count int64
	for _, gm := range m.members {
		if gm.GroupID == groupID {
			count++
		}
	}
	return count, nil
}

func (m *mockGroupMemberRepo) ExistsByStudent(_ context.Context, studentID int64) (bool, error) {
	for _, gm := range m.members {
		if gm.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockGroupMemberRepo) Delete(_ context.Context, id int64) error {
	for i, gm := range m.members {
		if gm.ID == id {
			m.members = append(m.members[:i], m.members[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock ReviewAssignmentRepository ──

type mockReviewAssignmentRepo struct {
	assignments []*model.ReviewAssignment
	nextID      int64
}

func newMockReviewAssignmentRepo() *mockReviewAssignmentRepo {
	return &mockReviewAssignmentRepo{nextID: 1}
}

func (m *mockReviewAssignmentRepo) Create(_ context.Context, assignment *model.ReviewAssignment) error {
	if assignment.ID == 0 {
		assignment.ID = m.nextID
		m.nextID++
	} else if assignment.ID >= m.nextID {
		m.nextID = assignment.ID + 1
	}
	m.assignments = append(m.assignments, assignment)
	return nil
}

func (m *mockReviewAssignmentRepo) GetByID(_ context.Context, id int64) (*model.ReviewAssignment, error) {
	for _, a := range m.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReviewAssignmentRepo) Exists(_ context.Context, reviewerID, studentID int64, reviewType string) (bool, error) {
	for _, a := range m.assignments {
		if a.ReviewerID == reviewerID && a.StudentID == studentID && a.Type == reviewType {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockReviewAssignmentRepo) ListByReviewer(_ context.Context, reviewerID int64) ([]model.ReviewAssignment, error) {
	var result []model.ReviewAssignment
	for _, a := range m.assignments {
		if a.ReviewerID == reviewerID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockReviewAssignmentRepo) ListByStudent(_ context.Context, studentID int64) ([]model.ReviewAssignment, error) {
	var result []model.ReviewAssignment
	for _, a := range m.assignments {
		if a.StudentID == studentID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockReviewAssignmentRepo) Find(_ context.Context, filter repository.ReviewFilter, page, pageSize int) ([]model.ReviewAssignment, int64, error) {
	var matched []model.ReviewAssignment
	for _, a := range m.assignments {
		if filter.ReviewerID != nil && a.ReviewerID != *filter.ReviewerID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		matched = append(matched, *a)
	}
	return paginate(matched, page, pageSize), int64(len(matched)), nil
}

func (m *mockReviewAssignmentRepo) Update(_ context.Context, assignment *model.ReviewAssignment) error {
	for i, a := range m.assignments {
		if a.ID == assignment.ID {
			m.assignments[i] = assignment
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock DefenseScoreRepository ──

type mockDefenseScoreRepo struct {
	scores []*model.DefenseScore
	nextID int64
}

func newMockDefenseScoreRepo() *mockDefenseScoreRepo {
	return &mockDefenseScoreRepo{nextID: 1}
}

func (m *mockDefenseScoreRepo) Create(_ context.Context, score *model.DefenseScore) error {
	if score.ID == 0 {
		score.ID = m.nextID
		m.nextID++
	}
	m.scores = append(m.scores, score)
	return nil
}

func (m *mockDefenseScoreRepo) ListByGroup(_ context.Context, groupID int64) ([]model.DefenseScore, error) {
	var result []model.DefenseScore
	for _, s := range m.scores {
		if s.GroupID == groupID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockDefenseScoreRepo) ListByStudent(_ context.Context, studentID int64) ([]model.DefenseScore, error) {
	var result []model.DefenseScore
	for _, s := range m.scores {
		if s.StudentID == studentID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockDefenseScoreRepo) List(_ context.Context) ([]model.DefenseScore, error) {
	var result []model.DefenseScore
	for _, s := range m.scores {
		result = append(result, *s)
	}
	return result, nil
}

// ── Mock AnnouncementRepository ──

type mockAnnouncementRepo struct {
	announcements []*model.Announcement
	nextID        int64
}

func newMockAnnouncementRepo() *mockAnnouncementRepo {
	return &mockAnnouncementRepo{nextID: 1}
}

func (m *mockAnnouncementRepo) Create(_ context.Context, ann *model.Announcement) error {
	if ann.ID == 0 {
		ann.ID = m.nextID
		m.nextID++
	} else if ann.ID >= m.nextID {
		m.nextID = ann.ID + 1
	}
	m.announcements = append(m.announcements, ann)
	return nil
}

func (m *mockAnnouncementRepo) GetByID(_ context.Context, id int64) (*model.Announcement, error) {
	for _, a := range m.announcements {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) ListByStatus(_ context.Context, status string) ([]model.Announcement, error) {
	var result []model.Announcement
	for _, a := range m.announcements {
		if a.Status == status {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAnnouncementRepo) Find(_ context.Context, filter repository.AnnouncementFilter, page, pageSize int) ([]model.Announcement, int64, error) {
	var matched []model.Announcement
	for _, a := range m.announcements {
		if filter.Keyword != "" &&
			!strings.Contains(a.Title, filter.Keyword) &&
			!strings.Contains(a.Content, filter.Keyword) {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.CreatedBy != nil && (a.CreatedBy == nil || *a.CreatedBy != *filter.CreatedBy) {
			continue
		}
		matched = append(matched, *a)
	}
	return paginate(matched, page, pageSize), int64(len(matched)), nil
}

func (m *mockAnnouncementRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.announcements)), nil
}

func (m *mockAnnouncementRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var count int64
	for _, a := range m.announcements {
		if a.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockAnnouncementRepo) Update(_ context.Context, ann *model.Announcement) error {
	for i, a := range m.announcements {
		if a.ID == ann.ID {
			m.announcements[i] = ann
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) Delete(_ context.Context, id int64) error {
	for i, a := range m.announcements {
		if a.ID == id {
			m.announcements = append(m.announcements[:i], m.announcements[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock AnnouncementReadRepository ──

type mockAnnouncementReadRepo struct {
	reads  []*model.AnnouncementRead
	nextID int64
}

func newMockAnnouncementReadRepo() *mockAnnouncementReadRepo {
	return &mockAnnouncementReadRepo{nextID: 1}
}

func (m *mockAnnouncementReadRepo) Create(_ context.Context, read *model.AnnouncementRead) error {
	if read.ID == 0 {
		read.ID = m.nextID
		m.nextID++
	}
	m.reads = append(m.reads, read)
	return nil
}

func (m *mockAnnouncementReadRepo) Exists(_ context.Context, announcementID, userID int64) (bool, error) {
	for _, r := range m.reads {
		if r.AnnouncementID == announcementID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAnnouncementReadRepo) CountByAnnouncement(_ context.Context, announcementID int64) (int64, error) {
	var count int64
	for _, r := range m.reads {
		if r.AnnouncementID == announcementID {
			count++
		}
	}
	return count, nil
}

func (m *mockAnnouncementReadRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.reads)), nil
}

func (m *mockAnnouncementReadRepo) DeleteByAnnouncement(_ context.Context, announcementID int64) error {
	var kept []*model.AnnouncementRead
	for _, r := range m.reads {
		if r.AnnouncementID != announcementID {
			kept = append(kept, r)
		}
	}
	m.reads = kept
	return nil
}

// ── Mock ApplicationRepository ──

type mockApplicationRepo struct {
	applications []*model.Application
	nextID       int64
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{nextID: 1}
}

func (m *mockApplicationRepo) Create(_ context.Context, app *model.Application) error {
	if app.ID == 0 {
		app.ID = m.nextID
		m.nextID++
	} else if app.ID >= m.nextID {
		m.nextID = app.ID + 1
	}
	m.applications = append(m.applications, app)
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id int64) (*model.Application, error) {
	for _, a := range m.applications {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) Find(_ context.Context, filter repository.ApplicationFilter, page, pageSize int) ([]model.Application, int64, error) {
	var matched []model.Application
	for _, a := range m.applications {
		if filter.Keyword != "" && !strings.Contains(a.Payload, filter.Keyword) {
			continue
		}
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.StudentID != nil && a.StudentID != *filter.StudentID {
			continue
		}
		matched = append(matched, *a)
	}
	return paginate(matched, page, pageSize), int64(len(matched)), nil
}

func (m *mockApplicationRepo) Update(_ context.Context, app *model.Application) error {
	for i, a := range m.applications {
		if a.ID == app.ID {
			m.applications[i] = app
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock ApplicationLogRepository ──

type mockApplicationLogRepo struct {
	logs   []*model.ApplicationLog
	nextID int64
}

func newMockApplicationLogRepo() *mockApplicationLogRepo {
	return &mockApplicationLogRepo{nextID: 1}
}

func (m *mockApplicationLogRepo) Create(_ context.Context, log *model.ApplicationLog) error {
	if log.ID == 0 {
		log.ID = m.nextID
		m.nextID++
	}
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockApplicationLogRepo) ListByApplication(_ context.Context, applicationID int64) ([]model.ApplicationLog, error) {
	var result []model.ApplicationLog
	for _, l := range m.logs {
		if l.ApplicationID == applicationID {
			result = append(result, *l)
		}
	}
	return result, nil
}
