package models

import "time"

// PlanningApplication is one local-authority planning application. The
// dataset is loaded and exposed but is a reserved growth-signal input: the
// growth calculator does not consume it yet.
type PlanningApplication struct {
	ID       uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Location string     `gorm:"type:varchar(120);not null;index" json:"location"`
	Address  *string    `gorm:"type:varchar(200)" json:"address,omitempty"`
	Status   *string    `gorm:"type:varchar(40)" json:"status,omitempty"`
	Date     *time.Time `gorm:"type:date" json:"date,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"-"`
}

func (PlanningApplication) TableName() string {
	return "planning_applications"
}
