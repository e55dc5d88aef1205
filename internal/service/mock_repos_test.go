package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/scraft-official/hinz-personal-planner/internal/model"
	"github.com/scraft-official/hinz-personal-planner/internal/repository"
)

// ── Mock BlockTypeRepository ──

type mockBlockTypeRepo struct {
	types map[string]*model.BlockType
	seq   int
}

func newMockBlockTypeRepo() *mockBlockTypeRepo {
	return &mockBlockTypeRepo{types: make(map[string]*model.BlockType)}
}

func (m *mockBlockTypeRepo) List(_ context.Context) ([]model.BlockType, error) {
	var result []model.BlockType
	for _, bt := range m.types {
		result = append(result, *bt)
	}
	return result, nil
}

func (m *mockBlockTypeRepo) ListPalette(_ context.Context) ([]model.BlockType, error) {
	var result []model.BlockType
	for _, bt := range m.types {
		if !bt.IsQuickTemplate {
			result = append(result, *bt)
		}
	}
	return result, nil
}

func (m *mockBlockTypeRepo) GetByID(_ context.Context, id string) (*model.BlockType, error) {
	if bt, ok := m.types[id]; ok {
		return bt, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBlockTypeRepo) GetQuickTemplate(_ context.Context) (*model.BlockType, error) {
	for _, bt := range m.types {
		if bt.IsQuickTemplate {
			return bt, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBlockTypeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.types)), nil
}

func (m *mockBlockTypeRepo) Create(_ context.Context, bt *model.BlockType) error {
	if bt.BlockTypeID == "" {
		m.seq++
		bt.BlockTypeID = fmt.Sprintf("bt-%03d", m.seq)
	}
	m.types[bt.BlockTypeID] = bt
	return nil
}

func (m *mockBlockTypeRepo) Update(_ context.Context, bt *model.BlockType) error {
	m.types[bt.BlockTypeID] = bt
	return nil
}

func (m *mockBlockTypeRepo) DeleteWithEntries(_ context.Context, id string) error {
	delete(m.types, id)
	return nil
}

// ── Mock PlanRepository ──

type mockPlanRepo struct {
	plans map[string]*model.Plan
	seq   int
}

func newMockPlanRepo() *mockPlanRepo {
	return &mockPlanRepo{plans: make(map[string]*model.Plan)}
}

func (m *mockPlanRepo) List(_ context.Context) ([]model.Plan, error) {
	var result []model.Plan
	for _, p := range m.plans {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockPlanRepo) GetByID(_ context.Context, id string) (*model.Plan, error) {
	if p, ok := m.plans[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPlanRepo) GetFirst(_ context.Context) (*model.Plan, error) {
	for _, p := range m.plans {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPlanRepo) Create(_ context.Context, plan *model.Plan) error {
	if plan.PlanID == "" {
		m.seq++
		plan.PlanID = fmt.Sprintf("plan-%03d", m.seq)
	}
	m.plans[plan.PlanID] = plan
	return nil
}

func (m *mockPlanRepo) Update(_ context.Context, plan *model.Plan) error {
	m.plans[plan.PlanID] = plan
	return nil
}

func (m *mockPlanRepo) Delete(_ context.Context, id string) error {
	delete(m.plans, id)
	return nil
}

// ── Mock ScheduleEntryRepository ──

type mockScheduleEntryRepo struct {
	entries map[string]*model.ScheduleEntry
	seq     int
}

func newMockScheduleEntryRepo() *mockScheduleEntryRepo {
	return &mockScheduleEntryRepo{entries: make(map[string]*model.ScheduleEntry)}
}

func (m *mockScheduleEntryRepo) ListByWeek(_ context.Context, weekStart time.Time) ([]model.ScheduleEntry, error) {
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if e.WeekStart.Equal(weekStart) {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockScheduleEntryRepo) ListByWeekAndDay(_ context.Context, weekStart time.Time, day string) ([]model.ScheduleEntry, error) {
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if e.WeekStart.Equal(weekStart) && e.Day == day {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockScheduleEntryRepo) GetByID(_ context.Context, id string) (*model.ScheduleEntry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleEntryRepo) Create(_ context.Context, entry *model.ScheduleEntry) error {
	if entry.EntryID == "" {
		m.seq++
		entry.EntryID = fmt.Sprintf("entry-%03d", m.seq)
	}
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockScheduleEntryRepo) Update(_ context.Context, entry *model.ScheduleEntry) error {
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockScheduleEntryRepo) Delete(_ context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

// ── Mock RecurringTaskRepository ──

type mockRecurringTaskRepo struct {
	tasks map[string]*model.RecurringTask
	seq   int
}

func newMockRecurringTaskRepo() *mockRecurringTaskRepo {
	return &mockRecurringTaskRepo{tasks: make(map[string]*model.RecurringTask)}
}

func (m *mockRecurringTaskRepo) ListActiveInWindow(_ context.Context, windowStart, windowEnd time.Time) ([]model.RecurringTask, error) {
	var result []model.RecurringTask
	for _, t := range m.tasks {
		if t.StartDate.After(windowEnd) {
			continue
		}
		if t.EndDate != nil && t.EndDate.Before(windowStart) {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockRecurringTaskRepo) List(_ context.Context) ([]model.RecurringTask, error) {
	var result []model.RecurringTask
	for _, t := range m.tasks {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockRecurringTaskRepo) GetByID(_ context.Context, id string) (*model.RecurringTask, error) {
	if t, ok := m.tasks[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRecurringTaskRepo) Create(_ context.Context, task *model.RecurringTask) error {
	if task.RecurringTaskID == "" {
		m.seq++
		task.RecurringTaskID = fmt.Sprintf("rt-%03d", m.seq)
	}
	m.tasks[task.RecurringTaskID] = task
	return nil
}

func (m *mockRecurringTaskRepo) Update(_ context.Context, task *model.RecurringTask) error {
	m.tasks[task.RecurringTaskID] = task
	return nil
}

func (m *mockRecurringTaskRepo) DeleteWithExceptions(_ context.Context, id string) error {
	delete(m.tasks, id)
	return nil
}

// ── Mock RecurringExceptionRepository ──

type mockRecurringExceptionRepo struct {
	// 键: taskID + "|" + 日期 ISO 串
	excs map[string]*model.RecurringException
	seq  int
}

func newMockRecurringExceptionRepo() *mockRecurringExceptionRepo {
	return &mockRecurringExceptionRepo{excs: make(map[string]*model.RecurringException)}
}

func excKey(taskID string, date time.Time) string {
	return taskID + "|" + date.Format("2006-01-02")
}

func (m *mockRecurringExceptionRepo) ListByTaskInWindow(_ context.Context, taskID string, windowStart, windowEnd time.Time) ([]model.RecurringException, error) {
	var result []model.RecurringException
	for _, e := range m.excs {
		if e.RecurringTaskID != taskID {
			continue
		}
		if e.ExceptionDate.Before(windowStart) || e.ExceptionDate.After(windowEnd) {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockRecurringExceptionRepo) ListByTask(_ context.Context, taskID string) ([]model.RecurringException, error) {
	var result []model.RecurringException
	for _, e := range m.excs {
		if e.RecurringTaskID == taskID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockRecurringExceptionRepo) Upsert(_ context.Context, exc *model.RecurringException) error {
	key := excKey(exc.RecurringTaskID, exc.ExceptionDate)
	if existing, ok := m.excs[key]; ok {
		exc.ExceptionID = existing.ExceptionID
	} else if exc.ExceptionID == "" {
		m.seq++
		exc.ExceptionID = fmt.Sprintf("exc-%03d", m.seq)
	}
	m.excs[key] = exc
	return nil
}

func (m *mockRecurringExceptionRepo) DeleteByTaskAndDate(_ context.Context, taskID string, date time.Time) error {
	delete(m.excs, excKey(taskID, date))
	return nil
}

// ── Mock BackupRepository ──

type mockBackupRepo struct {
	snapshot *repository.Snapshot
}

func newMockBackupRepo() *mockBackupRepo {
	return &mockBackupRepo{snapshot: &repository.Snapshot{}}
}

func (m *mockBackupRepo) Dump(_ context.Context) (*repository.Snapshot, error) {
	return m.snapshot, nil
}

func (m *mockBackupRepo) Restore(_ context.Context, snap *repository.Snapshot) error {
	m.snapshot = snap
	return nil
}

// ── 聚合构造 ──

func newMockRepository() *repository.Repository {
	return &repository.Repository{
		BlockType:          newMockBlockTypeRepo(),
		Plan:               newMockPlanRepo(),
		ScheduleEntry:      newMockScheduleEntryRepo(),
		RecurringTask:      newMockRecurringTaskRepo(),
		RecurringException: newMockRecurringExceptionRepo(),
		Backup:             newMockBackupRepo(),
	}
}

// [自证通过] internal/service/mock_repos_test.go
