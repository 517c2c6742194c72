package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is an entry of the services section.
type Service struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid"`
	Title       string    `gorm:"not null;uniqueIndex"`
	Description string    `gorm:"not null"`
	Icon        string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

type ServiceList []Service

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Project is a completed installation shown in the portfolio.
type Project struct {
	ID             uuid.UUID `gorm:"primaryKey;type:uuid"`
	Title          string    `gorm:"not null;uniqueIndex"`
	Description    string    `gorm:"not null"`
	ImageURL       *string   `gorm:"column:image_url"`
	Location       string    `gorm:"not null"`
	CompletionDate time.Time `gorm:"type:date;not null"`
	CreatedAt      time.Time
}

type ProjectList []Project

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Testimonial struct {
	ID         uuid.UUID `gorm:"primaryKey;type:uuid"`
	ClientName string    `gorm:"not null"`
	Company    *string
	Message    string    `gorm:"not null"`
	Rating     int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

type TestimonialList []Testimonial

func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
