package domain

// Recompute rebuilds every derived hour total from the underlying ledgers:
// each project's Hours becomes the sum of its stat entries, and the user's
// TotalHours becomes the sum over all projects, disabled ones included.
//
// Mutating paths always rebuild from scratch instead of adjusting
// incrementally, so any prior drift is healed on the next write.
func Recompute(u *User) {
	var total float64
	for i := range u.Projects {
		var hours float64
		for _, s := range u.Projects[i].Stats {
			hours += s.Hours
		}
		u.Projects[i].Hours = hours
		total += hours
	}
	u.TotalHours = total
}
