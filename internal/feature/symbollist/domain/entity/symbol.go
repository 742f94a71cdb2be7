// Package entity defines the domain models for the symbollist feature.
package entity

import "time"

// Symbol represents a tracked stock ticker in the catalog.
// It holds the display information shown next to a symbol's insights:
// its code, company name, market, a short description and display ordering.
type Symbol struct {
	ID          uint      `gorm:"primaryKey"`
	Code        string    `gorm:"size:20;not null;uniqueIndex"`
	Name        string    `gorm:"size:255;not null"`
	Market      string    `gorm:"size:100;not null"`
	Description string    `gorm:"type:text"`
	IsActive    bool      `gorm:"not null;default:true"`
	SortKey     int       `gorm:"not null;default:0"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// DefaultSymbols is the catalog seeded into an empty database.
var DefaultSymbols = []Symbol{
	{Code: "META", Name: "Meta Platforms, Inc.", Market: "NASDAQ", IsActive: true, SortKey: 1,
		Description: "Formerly Facebook, Meta focuses on virtual reality, social networking, and digital advertising."},
	{Code: "KO", Name: "The Coca-Cola Company", Market: "NYSE", IsActive: true, SortKey: 2,
		Description: "A beverage giant with its flagship drink Coca-Cola and a wide range of non-alcoholic beverages."},
	{Code: "NFLX", Name: "Netflix, Inc.", Market: "NASDAQ", IsActive: true, SortKey: 3,
		Description: "A streaming entertainment platform with global reach, offering movies, TV shows, and original content."},
	{Code: "AAPL", Name: "Apple Inc.", Market: "NASDAQ", IsActive: true, SortKey: 4,
		Description: "A global leader in technology, known for the iPhone, iPad, and Mac."},
	{Code: "IBM", Name: "International Business Machines", Market: "NYSE", IsActive: true, SortKey: 5,
		Description: "Known for innovations in cloud computing, AI, and enterprise services."},
}
