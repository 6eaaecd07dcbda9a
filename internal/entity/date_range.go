package entity

import "time"

// DateRange is a resolved analysis window. End is exclusive.
type DateRange struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	PeriodLabel string    `json:"period_label"`
	IsCustom    bool      `json:"is_custom"`
}
