// Package settings holds the business-wide preferences persisted
// alongside the books: locale/currency display settings, document
// branding, and the backup timestamp.
package settings

import "time"

// Settings are display preferences. Currency affects formatting only;
// there is no currency conversion anywhere in the system.
type Settings struct {
	Locale   string `json:"locale"`
	Currency string `json:"currency"`
}

// Branding is the free-text content printed on documents.
type Branding struct {
	Header    string `json:"header"`
	Footer    string `json:"footer"`
	Terms     string `json:"terms"`
	Payment   string `json:"payment"`
	Watermark bool   `json:"watermark"`
	Logo      string `json:"logo"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// State is the persisted settings blob.
type State struct {
	Settings   Settings  `json:"settings"`
	Branding   Branding  `json:"branding"`
	LastBackup time.Time `json:"last_backup,omitempty"`
}

// Default returns the initial settings for a fresh set of books.
func Default() State {
	return State{
		Settings: Settings{
			Locale:   "en-US",
			Currency: "USD",
		},
	}
}
