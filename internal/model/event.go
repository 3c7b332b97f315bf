package model

import "time"

// EventType 活动类型枚举
type EventType string

const (
	EventWorkshop  EventType = "workshop"
	EventHackathon EventType = "hackathon"
	EventMeetup    EventType = "meetup"
	EventWebinar   EventType = "webinar"
	EventOther     EventType = "other"
)

func (t EventType) Valid() bool {
	switch t {
	case EventWorkshop, EventHackathon, EventMeetup, EventWebinar, EventOther:
		return true
	}
	return false
}

type Event struct {
	Model
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	EventType   EventType `gorm:"type:varchar(20);default:meetup;not null" json:"event_type"`
	EventDate   time.Time `gorm:"not null;index" json:"event_date"`
	Location    string    `gorm:"type:varchar(200);not null" json:"location"` // 线下地点或 Online
	MeetingLink string    `gorm:"type:varchar(255)" json:"meeting_link"`
	Banner      string    `gorm:"type:varchar(255)" json:"banner"`
}

// IsPast 活动时间是否已过，读取时计算，不落库
func (e *Event) IsPast(now time.Time) bool {
	return e.EventDate.Before(now)
}

// EventDTO 活动对外投影，带派生字段 is_past
type EventDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventType   EventType `json:"event_type"`
	EventDate   time.Time `json:"event_date"`
	Location    string    `json:"location"`
	MeetingLink string    `json:"meeting_link"`
	Banner      string    `json:"banner"`
	IsPast      bool      `json:"is_past"`
}

func NewEventDTO(e *Event, now time.Time) EventDTO {
	return EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		EventType:   e.EventType,
		EventDate:   e.EventDate,
		Location:    e.Location,
		MeetingLink: e.MeetingLink,
		Banner:      e.Banner,
		IsPast:      e.IsPast(now),
	}
}

func NewEventDTOs(events []Event, now time.Time) []EventDTO {
	dtos := make([]EventDTO, 0, len(events))
	for i := range events {
		dtos = append(dtos, NewEventDTO(&events[i], now))
	}
	return dtos
}
