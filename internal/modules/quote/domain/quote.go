package domain

// Quote is a scheduled text entry published once its display date arrives.
type Quote struct {
	ID          int64  `json:"id"`
	Content     string `json:"content"`
	DisplayDate string `json:"displayDate"`
}

// IsDue reports whether the quote is visible in the feed on asOf.
// Both dates are YYYY-MM-DD, so string order is calendar order.
func (q *Quote) IsDue(asOf string) bool {
	return q.DisplayDate <= asOf
}

// Newer orders quotes by display date, newest first, then by id descending.
func Newer(a, b *Quote) bool {
	if a.DisplayDate != b.DisplayDate {
		return a.DisplayDate > b.DisplayDate
	}
	return a.ID > b.ID
}
