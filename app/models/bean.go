package models

import (
	"time"
)

// Bean is a coffee bean in the storefront catalogue.
//
// Index is a stable display ordinal assigned at creation time (max+1).
// IsBOTD is computed per-request against the current bean-of-the-day
// selection and is never stored on the beans table itself.
type Bean struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	Index       int     `gorm:"column:position;uniqueIndex;not null" json:"index"`
	IsBOTD      bool    `gorm:"-" json:"isBOTD"`
	Cost        float64 `gorm:"not null" json:"cost"`
	Image       string  `gorm:"size:512" json:"image"`
	Colour      string  `gorm:"size:100" json:"colour"`
	Name        string  `gorm:"size:255;not null;index" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Country     string  `gorm:"size:100;index" json:"country"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Bean) TableName() string { return "beans" }

// BeanOfTheDay records which bean was selected for a given calendar date.
// SelectedDate is stored as "2006-01-02" and carries a unique index so
// concurrent selectors cannot insert two rows for the same day; the first
// writer wins and everyone else re-reads.
type BeanOfTheDay struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	SelectedDate string `gorm:"size:10;uniqueIndex;not null" json:"selectedDate"`
	BeanID       string `gorm:"size:36;not null;index" json:"beanId"`
	Bean         Bean   `gorm:"foreignKey:BeanID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"-"`
}

func (BeanOfTheDay) TableName() string { return "bean_of_the_day" }
