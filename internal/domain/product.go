package domain

import "time"

type Product struct {
	ID              int64         `json:"id"`
	Name            string        `json:"name"`
	Category        string        `json:"category"`
	Description     string        `json:"description,omitempty"`
	FullDescription string        `json:"fullDescription,omitempty"`
	PriceCents      Cents         `json:"price"`
	Image           string        `json:"image,omitempty"`
	Specs           []ProductSpec `json:"specs,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

type ProductSpec struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
