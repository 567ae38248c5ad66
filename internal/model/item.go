package model

// Item is the domain model for a todo entry.
// Only Completed changes after creation; deletion removes the item outright.
type Item struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Pending counts items that are not completed yet.
func Pending(items []Item) int {
	n := 0
	for _, it := range items {
		if !it.Completed {
			n++
		}
	}
	return n
}
