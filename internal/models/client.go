package models

import "time"

// Walk-in client, no login. Dedup key is NormalizedName.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name           string `gorm:"size:100;not null" json:"name"`
	NormalizedName string `gorm:"size:100;uniqueIndex" json:"normalized_name"`

	Age     int    `json:"age"`
	Gender  string `gorm:"size:10" json:"gender"`
	Contact string `gorm:"size:20" json:"contact"`
	Address string `gorm:"size:255" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientSummary is the joined client shape embedded in appointment
// and reschedule responses.
type ClientSummary struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

func (c *Client) Summary() ClientSummary {
	return ClientSummary{
		ID:     c.ID,
		Name:   c.Name,
		Age:    c.Age,
		Gender: c.Gender,
	}
}
