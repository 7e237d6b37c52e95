package dto

import (
	"github.com/freshvale-inc/freshvale/internal/domain/subscription"
	"github.com/freshvale-inc/freshvale/internal/shared/biztime"
)

// ScheduleDayDTO is one calendar day in the month view.
type ScheduleDayDTO struct {
	Date       string `json:"date"`
	IsDelivery bool   `json:"is_delivery"`
	IsVacation bool   `json:"is_vacation"`
	IsToday    bool   `json:"is_today"`
	IsPast     bool   `json:"is_past"`
}

// ScheduleDTO is the delivery calendar for one month.
type ScheduleDTO struct {
	Days            []ScheduleDayDTO `json:"days"`
	TotalDeliveries int              `json:"total_deliveries"`
	VacationDays    int              `json:"vacation_days"`
	FirstDayOffset  int              `json:"first_day_offset"`
}

// ToScheduleDTO maps the computed month schedule to its DTO.
func ToScheduleDTO(s subscription.MonthSchedule) *ScheduleDTO {
	days := make([]ScheduleDayDTO, 0, len(s.Days))
	for _, d := range s.Days {
		days = append(days, ScheduleDayDTO{
			Date:       biztime.FormatDate(d.Date),
			IsDelivery: d.IsDelivery,
			IsVacation: d.IsVacation,
			IsToday:    d.IsToday,
			IsPast:     d.IsPast,
		})
	}
	return &ScheduleDTO{
		Days:            days,
		TotalDeliveries: s.TotalDeliveries,
		VacationDays:    s.VacationDays,
		FirstDayOffset:  s.FirstDayOffset,
	}
}
