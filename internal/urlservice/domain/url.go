package domain

import "time"

type URL struct {
	ID          int64     `json:"id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ShortURL is the public link for u under baseURL.
func (u *URL) ShortURL(baseURL string) string {
	return baseURL + "/" + u.ShortCode
}
