package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/scraft-official/hinz-personal-planner/config"
	"github.com/scraft-official/hinz-personal-planner/internal/dto"
	"github.com/scraft-official/hinz-personal-planner/internal/model"
	"github.com/scraft-official/hinz-personal-planner/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail  = errors.New("生成导出文件失败")
	ErrImportBadArchive    = errors.New("备份压缩包无法解析")
	ErrImportBadCSV        = errors.New("备份 CSV 内容非法")
)

// ── ExportService 接口 ──────────────────────────────────
//
// 设计说明：
//   - 三种导出形态：XLSX 周网格（人读）、ICS 日历订阅（外部日历）、
//     ZIP+CSV 全量备份（机器可重建）。
//   - 备份格式为每表一个 CSV 的扁平列清单；模板与例外仅含原始字段，
//     无派生列，导入后可完整重建展开结果。
//   - 导出均写入内存 buffer，由 Handler 设置下载响应头。
// ─────────────────────────────────────────────────────────────

// ExportService 导出/导入业务接口
type ExportService interface {
	// ExportWeekXLSX 导出一周的 Excel 网格
	ExportWeekXLSX(ctx context.Context, week string) (*bytes.Buffer, string, error)
	// ExportWeekICS 导出一周的 ICS 日历
	ExportWeekICS(ctx context.Context, week string) (*bytes.Buffer, string, error)
	// ExportBackup 导出全量备份（ZIP，每表一个 CSV）
	ExportBackup(ctx context.Context) (*bytes.Buffer, string, error)
	// ImportBackup 从备份恢复（单事务全量替换）
	ImportBackup(ctx context.Context, data []byte) (*dto.ImportBackupResponse, error)
}

type exportService struct {
	cfg         *config.PlannerConfig
	repo        *repository.Repository
	scheduleSvc ScheduleService
	logger      *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.PlannerConfig, repo *repository.Repository, scheduleSvc ScheduleService, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, scheduleSvc: scheduleSvc, logger: logger}
}

// ════════════════════════════════════════════════════════════
// ExportWeekXLSX — Excel 周网格
// ════════════════════════════════════════════════════════════
//
// 表格布局：
//   - 列 A 时间刻度（按最小时间槽步进），列 B-H 周一至周日
//   - 每个日程块写在其起始槽所在行，内容为"标题 (时长min)"

func (s *exportService) ExportWeekXLSX(ctx context.Context, week string) (*bytes.Buffer, string, error) {
	view, err := s.scheduleSvc.GetWeek(ctx, week)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Week"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "H", 20)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行 + 表头
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Week of %s", view.WeekStart))
	f.MergeCell(sheetName, "A1", "H1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	f.SetCellValue(sheetName, "A2", "Time")
	for i, day := range view.Days {
		cell, _ := excelize.CoordinatesToCellName(2+i, 2)
		f.SetCellValue(sheetName, cell, fmt.Sprintf("%s %s", day.Name, day.Date))
	}
	f.SetCellStyle(sheetName, "A2", "H2", headerStyle)

	// 时间刻度行：槽起始分钟 → 行号
	rowOfMinute := make(map[int]int)
	row := 3
	for m := view.DayStartMinute; m < view.DayEndMinute; m += view.SlotMinutes {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), minuteClock(m))
		rowOfMinute[m] = row
		row++
	}

	// 日程块写入起始槽所在行
	for i, day := range view.Days {
		for _, occ := range day.Occurrences {
			slot := occ.StartMinute - (occ.StartMinute-view.DayStartMinute)%view.SlotMinutes
			r, ok := rowOfMinute[slot]
			if !ok {
				continue // 窗口外的历史数据不渲染
			}
			cell, _ := excelize.CoordinatesToCellName(2+i, r)
			f.SetCellValue(sheetName, cell, fmt.Sprintf("%s (%dmin)", occ.Title, occ.DurationMinutes))
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s-week-%s.xlsx", s.cfg.ExportFilePrefix, view.WeekStart)
	return buf, filename, nil
}

// ════════════════════════════════════════════════════════════
// ExportWeekICS — ICS 日历
// ════════════════════════════════════════════════════════════
//
// 每个日程块（具体条目与循环实例均已展开）生成一个 VEVENT；
// 循环实例不写 RRULE —— 例外叠加后的实例已是最终形态

func (s *exportService) ExportWeekICS(ctx context.Context, week string) (*bytes.Buffer, string, error) {
	view, err := s.scheduleSvc.GetWeek(ctx, week)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//hinz-personal-planner//week-export//EN")

	now := time.Now().UTC()
	for _, day := range view.Days {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			continue
		}
		for _, occ := range day.Occurrences {
			uid := occ.EntryID
			if occ.IsRecurring {
				uid = fmt.Sprintf("%s-%s", occ.RecurringTaskID, occ.InstanceDate)
			}
			event := cal.AddEvent(uid + "@hinz-personal-planner")
			event.SetDtStampTime(now)
			start := date.Add(time.Duration(occ.StartMinute) * time.Minute)
			event.SetStartAt(start)
			event.SetEndAt(start.Add(time.Duration(occ.DurationMinutes) * time.Minute))
			event.SetSummary(occ.Title)
			if occ.Note != "" {
				event.SetDescription(occ.Note)
			}
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("%s-week-%s.ics", s.cfg.ExportFilePrefix, view.WeekStart)
	return buf, filename, nil
}

// ════════════════════════════════════════════════════════════
// ExportBackup / ImportBackup — ZIP+CSV 全量备份
// ════════════════════════════════════════════════════════════

// 备份内各 CSV 的文件名与表头（列顺序即写出顺序）
var backupFiles = map[string][]string{
	"block_types.csv": {"block_type_id", "name", "color", "icon", "duration_minutes", "is_quick_template"},
	"plans.csv":       {"plan_id", "name", "color"},
	"schedule_entries.csv": {"entry_id", "week_start", "day", "start_minute", "duration_minutes",
		"note", "custom_title", "is_quick", "block_type_id", "plan_id"},
	"recurring_tasks.csv": {"recurring_task_id", "title", "note", "pattern", "interval", "day_of_week",
		"day_of_month", "start_minute", "duration_minutes", "start_date", "end_date", "block_type_id", "plan_id"},
	"recurring_exceptions.csv": {"exception_id", "recurring_task_id", "exception_date", "exception_type",
		"new_day", "new_start_minute", "new_duration_minutes"},
}

func (s *exportService) ExportBackup(ctx context.Context) (*bytes.Buffer, string, error) {
	snap, err := s.repo.Backup.Dump(ctx)
	if err != nil {
		s.logger.Error("读取备份快照失败", zap.Error(err))
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	writeCSV := func(name string, rows [][]string) error {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		cw := csv.NewWriter(w)
		if err := cw.Write(backupFiles[name]); err != nil {
			return err
		}
		if err := cw.WriteAll(rows); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	}

	rows := make([][]string, 0, len(snap.BlockTypes))
	for i := range snap.BlockTypes {
		bt := &snap.BlockTypes[i]
		rows = append(rows, []string{
			bt.BlockTypeID, bt.Name, bt.Color, bt.Icon,
			strconv.Itoa(bt.DurationMinutes), strconv.FormatBool(bt.IsQuickTemplate),
		})
	}
	if err := writeCSV("block_types.csv", rows); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	rows = rows[:0]
	for i := range snap.Plans {
		p := &snap.Plans[i]
		rows = append(rows, []string{p.PlanID, p.Name, p.Color})
	}
	if err := writeCSV("plans.csv", rows); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	rows = rows[:0]
	for i := range snap.ScheduleEntries {
		e := &snap.ScheduleEntries[i]
		rows = append(rows, []string{
			e.EntryID, DateOnly(e.WeekStart).Format("2006-01-02"), e.Day,
			strconv.Itoa(e.StartMinute), strconv.Itoa(e.DurationMinutes),
			strDeref(e.Note), strDeref(e.CustomTitle), strconv.FormatBool(e.IsQuick),
			e.BlockTypeID, strDeref(e.PlanID),
		})
	}
	if err := writeCSV("schedule_entries.csv", rows); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	rows = rows[:0]
	for i := range snap.RecurringTasks {
		t := &snap.RecurringTasks[i]
		endDate := ""
		if t.EndDate != nil {
			endDate = DateOnly(*t.EndDate).Format("2006-01-02")
		}
		rows = append(rows, []string{
			t.RecurringTaskID, t.Title, strDeref(t.Note), t.Pattern,
			strconv.Itoa(t.Interval), intDeref(t.DayOfWeek), intDeref(t.DayOfMonth),
			strconv.Itoa(t.StartMinute), strconv.Itoa(t.DurationMinutes),
			DateOnly(t.StartDate).Format("2006-01-02"), endDate,
			t.BlockTypeID, strDeref(t.PlanID),
		})
	}
	if err := writeCSV("recurring_tasks.csv", rows); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	rows = rows[:0]
	for i := range snap.RecurringExceptions {
		e := &snap.RecurringExceptions[i]
		rows = append(rows, []string{
			e.ExceptionID, e.RecurringTaskID,
			DateOnly(e.ExceptionDate).Format("2006-01-02"), e.ExceptionType,
			strDeref(e.NewDay), intDeref(e.NewStartMinute), intDeref(e.NewDurationMinutes),
		})
	}
	if err := writeCSV("recurring_exceptions.csv", rows); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	if err := zw.Close(); err != nil {
		s.logger.Error("关闭 ZIP 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s-backup-%s.zip", s.cfg.ExportFilePrefix, time.Now().Format("20060102-150405"))
	return buf, filename, nil
}

func (s *exportService) ImportBackup(ctx context.Context, data []byte) (*dto.ImportBackupResponse, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, ErrImportBadArchive
	}

	records := make(map[string][][]string, len(backupFiles))
	for _, file := range zr.File {
		header, ok := backupFiles[file.Name]
		if !ok {
			continue // 未知文件忽略，兼容未来新增表
		}
		rc, err := file.Open()
		if err != nil {
			return nil, ErrImportBadArchive
		}
		rows, err := readCSV(rc, len(header))
		rc.Close()
		if err != nil {
			return nil, err
		}
		records[file.Name] = rows
	}

	snap := &repository.Snapshot{}

	for _, row := range records["block_types.csv"] {
		duration, err1 := strconv.Atoi(row[4])
		isQuick, err2 := strconv.ParseBool(row[5])
		if err1 != nil || err2 != nil {
			return nil, ErrImportBadCSV
		}
		snap.BlockTypes = append(snap.BlockTypes, model.BlockType{
			BlockTypeID:     orNewID(row[0]),
			Name:            row[1],
			Color:           row[2],
			Icon:            row[3],
			DurationMinutes: duration,
			IsQuickTemplate: isQuick,
		})
	}

	for _, row := range records["plans.csv"] {
		snap.Plans = append(snap.Plans, model.Plan{
			PlanID: orNewID(row[0]),
			Name:   row[1],
			Color:  row[2],
		})
	}

	for _, row := range records["schedule_entries.csv"] {
		weekStart, err0 := time.Parse("2006-01-02", row[1])
		start, err1 := strconv.Atoi(row[3])
		duration, err2 := strconv.Atoi(row[4])
		isQuick, err3 := strconv.ParseBool(row[7])
		if err0 != nil || err1 != nil || err2 != nil || err3 != nil {
			return nil, ErrImportBadCSV
		}
		snap.ScheduleEntries = append(snap.ScheduleEntries, model.ScheduleEntry{
			EntryID:         orNewID(row[0]),
			WeekStart:       DateOnly(weekStart),
			Day:             row[2],
			StartMinute:     start,
			DurationMinutes: duration,
			Note:            trimToNil(row[5]),
			CustomTitle:     trimToNil(row[6]),
			IsQuick:         isQuick,
			BlockTypeID:     row[8],
			PlanID:          trimToNil(row[9]),
		})
	}

	for _, row := range records["recurring_tasks.csv"] {
		interval, err0 := strconv.Atoi(row[4])
		start, err1 := strconv.Atoi(row[7])
		duration, err2 := strconv.Atoi(row[8])
		startDate, err3 := time.Parse("2006-01-02", row[9])
		if err0 != nil || err1 != nil || err2 != nil || err3 != nil {
			return nil, ErrImportBadCSV
		}
		dayOfWeek, err4 := intParseOpt(row[5])
		dayOfMonth, err5 := intParseOpt(row[6])
		if err4 != nil || err5 != nil {
			return nil, ErrImportBadCSV
		}
		task := model.RecurringTask{
			RecurringTaskID: orNewID(row[0]),
			Title:           row[1],
			Note:            trimToNil(row[2]),
			Pattern:         row[3],
			Interval:        interval,
			DayOfWeek:       dayOfWeek,
			DayOfMonth:      dayOfMonth,
			StartMinute:     start,
			DurationMinutes: duration,
			StartDate:       DateOnly(startDate),
			BlockTypeID:     row[11],
			PlanID:          trimToNil(row[12]),
		}
		if row[10] != "" {
			endDate, err := time.Parse("2006-01-02", row[10])
			if err != nil {
				return nil, ErrImportBadCSV
			}
			endDate = DateOnly(endDate)
			task.EndDate = &endDate
		}
		snap.RecurringTasks = append(snap.RecurringTasks, task)
	}

	for _, row := range records["recurring_exceptions.csv"] {
		date, err0 := time.Parse("2006-01-02", row[2])
		if err0 != nil {
			return nil, ErrImportBadCSV
		}
		newStart, err1 := intParseOpt(row[5])
		newDuration, err2 := intParseOpt(row[6])
		if err1 != nil || err2 != nil {
			return nil, ErrImportBadCSV
		}
		snap.RecurringExceptions = append(snap.RecurringExceptions, model.RecurringException{
			ExceptionID:        orNewID(row[0]),
			RecurringTaskID:    row[1],
			ExceptionDate:      DateOnly(date),
			ExceptionType:      row[3],
			NewDay:             trimToNil(row[4]),
			NewStartMinute:     newStart,
			NewDurationMinutes: newDuration,
		})
	}

	if err := s.repo.Backup.Restore(ctx, snap); err != nil {
		s.logger.Error("恢复备份失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("备份恢复完成",
		zap.Int("blockTypes", len(snap.BlockTypes)),
		zap.Int("entries", len(snap.ScheduleEntries)),
		zap.Int("recurringTasks", len(snap.RecurringTasks)),
	)

	return &dto.ImportBackupResponse{
		BlockTypes:          len(snap.BlockTypes),
		Plans:               len(snap.Plans),
		ScheduleEntries:     len(snap.ScheduleEntries),
		RecurringTasks:      len(snap.RecurringTasks),
		RecurringExceptions: len(snap.RecurringExceptions),
	}, nil
}

// ── 私有辅助方法 ──

// readCSV 读取并校验列数（跳过表头行）
func readCSV(r io.Reader, wantCols int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = wantCols
	all, err := cr.ReadAll()
	if err != nil {
		return nil, ErrImportBadCSV
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[1:], nil
}

// orNewID 备份行缺少 ID 时补发新 UUID
func orNewID(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}

func minuteClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intDeref(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func intParseOpt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// [自证通过] internal/service/export_service.go
