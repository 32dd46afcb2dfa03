package domain

import "time"

// Preference keys the platform understands.
const (
	PrefMFABannerDismissed = "mfa_banner_dismissed"
)

type Preference struct {
	UserID    string    `json:"-"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// KnownPreference reports whether key may be written by users.
func KnownPreference(key string) bool {
	switch key {
	case PrefMFABannerDismissed:
		return true
	default:
		return false
	}
}
