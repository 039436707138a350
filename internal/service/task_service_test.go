package service

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTaskServiceCreateAndList(t *testing.T) {
	gdb := setupTestDB(t)
	user := createTestUser(t, gdb, "tasks@gito.edu.tr")
	svc := NewTaskService(gdb)
	ctx := context.Background()

	task, err := svc.Create(ctx, user.ID, TaskInput{
		Title:       "<b>Kuran</b> okuma",
		Description: "Sabah **bir sayfa**",
		PrayerBlock: "Fajr_Dhuhr",
		Date:        "2026-03-10",
		StartTime:   "6:15",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if task.ID == "" {
		t.Fatal("expected task to have ID")
	}
	if task.Title != "Kuran okuma" {
		t.Fatalf("title should be stripped of markup, got %q", task.Title)
	}
	if task.Color != defaultTaskColor {
		t.Fatalf("expected default colour, got %s", task.Color)
	}
	if task.StartTime != "06:15" {
		t.Fatalf("start time should be normalised, got %s", task.StartTime)
	}

	if _, err := svc.Create(ctx, user.ID, TaskInput{Title: "Spor", PrayerBlock: "Asr_Maghrib", Date: "2026-03-10"}); err != nil {
		t.Fatalf("second Create returned error: %v", err)
	}
	if _, err := svc.Create(ctx, user.ID, TaskInput{Title: "Yarın", PrayerBlock: "Asr_Maghrib", Date: "2026-03-11"}); err != nil {
		t.Fatalf("third Create returned error: %v", err)
	}

	tasks, err := svc.List(ctx, user.ID, "2026-03-10")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != task.ID {
		t.Fatal("tasks should be ordered by creation time")
	}

	ranged, err := svc.ListRange(ctx, user.ID, "2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("ListRange returned error: %v", err)
	}
	if len(ranged) != 3 {
		t.Fatalf("expected 3 tasks in range, got %d", len(ranged))
	}
	if _, err := svc.ListRange(ctx, user.ID, "2026-03-31", "2026-03-01"); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestTaskServiceValidation(t *testing.T) {
	gdb := setupTestDB(t)
	user := createTestUser(t, gdb, "validate@gito.edu.tr")
	svc := NewTaskService(gdb)

	cases := []struct {
		name  string
		input TaskInput
		want  error
	}{
		{name: "missing title", input: TaskInput{Title: "  ", PrayerBlock: "Fajr_Dhuhr", Date: "2026-03-10"}, want: ErrTitleRequired},
		{name: "bad block", input: TaskInput{Title: "x", PrayerBlock: "Isha_Dhuhr", Date: "2026-03-10"}, want: ErrInvalidBlock},
		{name: "bad date", input: TaskInput{Title: "x", PrayerBlock: "Fajr_Dhuhr", Date: "10.03.2026"}, want: ErrInvalidDate},
		{name: "bad time", input: TaskInput{Title: "x", PrayerBlock: "Fajr_Dhuhr", Date: "2026-03-10", EndTime: "25:00"}, want: ErrInvalidTime},
		{name: "end before start", input: TaskInput{Title: "x", PrayerBlock: "Fajr_Dhuhr", Date: "2026-03-10", StartTime: "10:00", EndTime: "09:00"}, want: ErrInvalidTime},
		{name: "bad colour", input: TaskInput{Title: "x", PrayerBlock: "Fajr_Dhuhr", Date: "2026-03-10", Color: "red"}, want: ErrInvalidColor},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), user.ID, tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTaskServiceUpdateKeepsAbsentFields(t *testing.T) {
	gdb := setupTestDB(t)
	user := createTestUser(t, gdb, "update@gito.edu.tr")
	svc := NewTaskService(gdb)
	ctx := context.Background()

	task, err := svc.Create(ctx, user.ID, TaskInput{
		Title:       "Ders çalış",
		Description: "Matematik",
		PrayerBlock: "Dhuhr_Asr",
		Date:        "2026-03-10",
		Color:       "#F8BBD0",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	done := true
	updated, err := svc.Update(ctx, user.ID, task.ID, TaskPatch{Completed: &done})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated.Completed {
		t.Fatal("expected task to be completed")
	}
	if updated.Title != "Ders çalış" || updated.Description != "Matematik" || updated.Color != "#F8BBD0" {
		t.Fatalf("absent fields changed: %+v", updated)
	}

	badBlock := "Nope"
	if _, err := svc.Update(ctx, user.ID, task.ID, TaskPatch{PrayerBlock: &badBlock}); !errors.Is(err, ErrInvalidBlock) {
		t.Fatalf("expected ErrInvalidBlock, got %v", err)
	}

	reloaded, err := svc.Get(ctx, user.ID, task.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if reloaded.PrayerBlock != "Dhuhr_Asr" {
		t.Fatalf("rejected update must not persist, block=%s", reloaded.PrayerBlock)
	}
}

func TestTaskServiceIsScopedToOwner(t *testing.T) {
	gdb := setupTestDB(t)
	owner := createTestUser(t, gdb, "owner@gito.edu.tr")
	other := createTestUser(t, gdb, "other@gito.edu.tr")
	svc := NewTaskService(gdb)
	ctx := context.Background()

	task, err := svc.Create(ctx, owner.ID, TaskInput{Title: "Özel", PrayerBlock: "Isha_Fajr", Date: "2026-03-10"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.Get(ctx, other.ID, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for other user, got %v", err)
	}
	title := "hijacked"
	if _, err := svc.Update(ctx, other.ID, task.ID, TaskPatch{Title: &title}); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound on update, got %v", err)
	}
	if err := svc.Delete(ctx, other.ID, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound on delete, got %v", err)
	}
	if err := svc.Delete(ctx, owner.ID, task.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(ctx, owner.ID, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected task to be gone, got %v", err)
	}
}

func TestTaskServiceCalendarMonth(t *testing.T) {
	gdb := setupTestDB(t)
	user := createTestUser(t, gdb, "calendar@gito.edu.tr")
	svc := NewTaskService(gdb)
	ctx := context.Background()

	for _, in := range []TaskInput{
		{Title: "a", PrayerBlock: "Fajr_Dhuhr", Date: "2026-03-01", Completed: true},
		{Title: "b", PrayerBlock: "Fajr_Dhuhr", Date: "2026-03-01"},
		{Title: "c", PrayerBlock: "Asr_Maghrib", Date: "2026-03-31", Completed: true},
		{Title: "d", PrayerBlock: "Asr_Maghrib", Date: "2026-04-01", Completed: true},
	} {
		if _, err := svc.Create(ctx, user.ID, in); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	days, err := svc.CalendarMonth(ctx, user.ID, "2026-03")
	if err != nil {
		t.Fatalf("CalendarMonth returned error: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %+v", days)
	}
	if days[0] != (DaySummary{Date: "2026-03-01", Total: 2, Completed: 1}) {
		t.Fatalf("unexpected first day %+v", days[0])
	}
	if days[1] != (DaySummary{Date: "2026-03-31", Total: 1, Completed: 1}) {
		t.Fatalf("unexpected last day %+v", days[1])
	}

	if _, err := svc.CalendarMonth(ctx, user.ID, "March"); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestRenderDescriptionSanitises(t *testing.T) {
	html := RenderDescription("**önemli** <script>alert(1)</script>")
	if !strings.Contains(html, "<strong>önemli</strong>") {
		t.Fatalf("expected rendered markdown, got %s", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("script tag must be removed, got %s", html)
	}
	if RenderDescription("   ") != "" {
		t.Fatal("blank description should render empty")
	}
}
