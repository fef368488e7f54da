package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gdms/backend/internal/model"
	"gdms/backend/internal/repository"
	"gdms/backend/pkg/apperrors"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoData       = apperrors.Statef("没有可导出的数据")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 成绩汇总导出为 Excel (.xlsx)，按学生一行，列出选题、评阅与答辩成绩
//   - 答辩日程导出为 iCalendar (.ics)，仅包含已排期的分组
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportGrades 导出全量成绩汇总为 Excel
	ExportGrades(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportDefenseCalendar 导出答辩日程为 ICS
	ExportDefenseCalendar(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportGrades — 导出成绩汇总为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式（每名持有有效选题的学生一行）：
//   | 学号 | 姓名 | 课题 | 交叉评阅分 | 导师评阅分 | 答辩平均分 |

func (s *exportService) ExportGrades(ctx context.Context) (*bytes.Buffer, string, error) {
	selections, err := s.repo.Selection.ListActive(ctx)
	if err != nil {
		s.logger.Error("查询选题失败", zap.Error(err))
		return nil, "", err
	}
	if len(selections) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "成绩汇总"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 16)
	f.SetColWidth(sheetName, "C", "C", 36)
	f.SetColWidth(sheetName, "D", "F", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"学号", "姓名", "课题", "交叉评阅分", "导师评阅分", "答辩平均分"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 1), h)
		f.SetCellStyle(sheetName, cell(col, 1), cell(col, 1), headerStyle)
	}

	row := 2
	for i := range selections {
		studentID := selections[i].StudentID

		username := fmt.Sprintf("%d", studentID)
		fullName := ""
		if user, err := s.repo.User.GetByID(ctx, studentID); err == nil {
			username = user.Username
			fullName = user.FullName
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", err
		}

		topicTitle := ""
		if topic, err := s.repo.Topic.GetByID(ctx, selections[i].TopicID); err == nil {
			topicTitle = topic.Title
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", err
		}

		f.SetCellValue(sheetName, cell("A", row), username)
		f.SetCellValue(sheetName, cell("B", row), fullName)
		f.SetCellValue(sheetName, cell("C", row), topicTitle)

		cross, advisor, err := s.reviewScores(ctx, studentID)
		if err != nil {
			return nil, "", err
		}
		setOptionalScore(f, sheetName, cell("D", row), cross)
		setOptionalScore(f, sheetName, cell("E", row), advisor)

		defenseAvg, err := s.defenseAverage(ctx, studentID)
		if err != nil {
			return nil, "", err
		}
		setOptionalScore(f, sheetName, cell("F", row), defenseAvg)

		row++
	}

	if err := s.addTopicsSheet(ctx, f, headerStyle); err != nil {
		return nil, "", err
	}
	if err := s.addSelectionsSheet(ctx, f, headerStyle, selections); err != nil {
		return nil, "", err
	}
	if err := s.addScoresSheet(ctx, f, headerStyle); err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("成绩汇总_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// addTopicsSheet 课题列表工作表
func (s *exportService) addTopicsSheet(ctx context.Context, f *excelize.File, headerStyle int) error {
	topics, err := s.repo.Topic.List(ctx)
	if err != nil {
		s.logger.Error("查询课题列表失败", zap.Error(err))
		return err
	}

	sheetName := "课题列表"
	if _, err := f.NewSheet(sheetName); err != nil {
		return ErrExportGenerateFail
	}
	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 36)
	f.SetColWidth(sheetName, "C", "E", 14)

	headers := []string{"ID", "标题", "指导教师", "状态", "容量"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 1), h)
		f.SetCellStyle(sheetName, cell(col, 1), cell(col, 1), headerStyle)
	}

	for i := range topics {
		row := i + 2
		f.SetCellValue(sheetName, cell("A", row), topics[i].ID)
		f.SetCellValue(sheetName, cell("B", row), topics[i].Title)
		f.SetCellValue(sheetName, cell("C", row), s.userName(ctx, topics[i].CreatorID))
		f.SetCellValue(sheetName, cell("D", row), string(topics[i].Status))
		f.SetCellValue(sheetName, cell("E", row), topics[i].Capacity)
	}
	return nil
}

// addSelectionsSheet 选题记录工作表（仅有效选题）
func (s *exportService) addSelectionsSheet(ctx context.Context, f *excelize.File, headerStyle int, selections []model.StudentSelection) error {
	sheetName := "选题记录"
	if _, err := f.NewSheet(sheetName); err != nil {
		return ErrExportGenerateFail
	}
	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "B", 36)
	f.SetColWidth(sheetName, "C", "C", 12)

	headers := []string{"学生", "课题", "状态"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 1), h)
		f.SetCellStyle(sheetName, cell(col, 1), cell(col, 1), headerStyle)
	}

	for i := range selections {
		row := i + 2
		topicTitle := ""
		if topic, err := s.repo.Topic.GetByID(ctx, selections[i].TopicID); err == nil {
			topicTitle = topic.Title
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		f.SetCellValue(sheetName, cell("A", row), s.userName(ctx, selections[i].StudentID))
		f.SetCellValue(sheetName, cell("B", row), topicTitle)
		f.SetCellValue(sheetName, cell("C", row), string(selections[i].Status))
	}
	return nil
}

// addScoresSheet 答辩成绩明细工作表
func (s *exportService) addScoresSheet(ctx context.Context, f *excelize.File, headerStyle int) error {
	scores, err := s.repo.DefenseScore.List(ctx)
	if err != nil {
		s.logger.Error("查询答辩成绩失败", zap.Error(err))
		return err
	}

	sheetName := "答辩成绩"
	if _, err := f.NewSheet(sheetName); err != nil {
		return ErrExportGenerateFail
	}
	f.SetColWidth(sheetName, "A", "B", 16)
	f.SetColWidth(sheetName, "C", "C", 10)
	f.SetColWidth(sheetName, "D", "D", 40)

	headers := []string{"分组", "学生", "分数", "评语"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 1), h)
		f.SetCellStyle(sheetName, cell(col, 1), cell(col, 1), headerStyle)
	}

	groupNames := make(map[int64]string)
	for i := range scores {
		row := i + 2
		name, ok := groupNames[scores[i].GroupID]
		if !ok {
			if group, err := s.repo.DefenseGroup.GetByID(ctx, scores[i].GroupID); err == nil {
				name = group.Name
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			groupNames[scores[i].GroupID] = name
		}
		f.SetCellValue(sheetName, cell("A", row), name)
		f.SetCellValue(sheetName, cell("B", row), s.userName(ctx, scores[i].StudentID))
		f.SetCellValue(sheetName, cell("C", row), scores[i].Score)
		f.SetCellValue(sheetName, cell("D", row), scores[i].Comment)
	}
	return nil
}

// userName 姓名查询，查不到时退回用户 ID
func (s *exportService) userName(ctx context.Context, userID int64) string {
	if user, err := s.repo.User.GetByID(ctx, userID); err == nil {
		if user.FullName != "" {
			return user.FullName
		}
		return user.Username
	}
	return fmt.Sprintf("%d", userID)
}

// reviewScores 学生已完成评阅的交叉分与导师分（未评时为 nil）
func (s *exportService) reviewScores(ctx context.Context, studentID int64) (*float64, *float64, error) {
	assignments, err := s.repo.ReviewAssignment.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询评阅任务失败", zap.Int64("student_id", studentID), zap.Error(err))
		return nil, nil, err
	}

	var cross, advisor *float64
	for i := range assignments {
		a := &assignments[i]
		if a.Status != model.ReviewDone || a.Score == nil {
			continue
		}
		switch a.Type {
		case model.ReviewTypeCross:
			cross = a.Score
		case model.ReviewTypeAdvisor:
			advisor = a.Score
		}
	}
	return cross, advisor, nil
}

// defenseAverage 学生答辩成绩平均分（无成绩时为 nil）
func (s *exportService) defenseAverage(ctx context.Context, studentID int64) (*float64, error) {
	scores, err := s.repo.DefenseScore.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询答辩成绩失败", zap.Int64("student_id", studentID), zap.Error(err))
		return nil, err
	}
	if len(scores) == 0 {
		return nil, nil
	}
	sum := 0.0
	for i := range scores {
		sum += scores[i].Score
	}
	avg := sum / float64(len(scores))
	return &avg, nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func setOptionalScore(f *excelize.File, sheet, cellName string, score *float64) {
	if score == nil {
		f.SetCellValue(sheet, cellName, "-")
		return
	}
	f.SetCellValue(sheet, cellName, *score)
}

// ═══════════════════════════════════════════════════════════
// ExportDefenseCalendar — 导出答辩日程为 ICS
// ═══════════════════════════════════════════════════════════
//
// 每个已排期的分组对应一个 VEVENT，时长固定 2 小时
// 未排期（scheduled_at 为空）的分组跳过

func (s *exportService) ExportDefenseCalendar(ctx context.Context) (*bytes.Buffer, string, error) {
	groups, err := s.repo.DefenseGroup.List(ctx)
	if err != nil {
		s.logger.Error("查询答辩分组失败", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//gdms//defense-schedule//CN")

	count := 0
	for i := range groups {
		if groups[i].ScheduledAt == nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("defense-group-%d@gdms", groups[i].ID))
		event.SetCreatedTime(time.Now())
		event.SetDtStampTime(time.Now())
		event.SetStartAt(*groups[i].ScheduledAt)
		event.SetEndAt(groups[i].ScheduledAt.Add(2 * time.Hour))
		event.SetSummary(fmt.Sprintf("答辩：%s", groups[i].Name))
		if groups[i].Location != "" {
			event.SetLocation(groups[i].Location)
		}
		event.SetDescription(fmt.Sprintf("类型 %s，容量 %d", groups[i].Type, groups[i].Capacity))
		count++
	}
	if count == 0 {
		return nil, "", ErrExportNoData
	}

	buf := bytes.NewBufferString(cal.Serialize())

	filename := fmt.Sprintf("答辩日程_%s.ics", time.Now().Format("20060102"))
	return buf, filename, nil
}
