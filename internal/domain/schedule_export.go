package domain

// ScheduleRow is a single row of a plan's schedule export.
// It is a flat view: one row per activity, with day fields repeated for every
// activity of that day. Days with no activities yield one row with empty
// activity fields so the export still lists every date.
type ScheduleRow struct {
	DayNumber int
	Date      string // "2006-01-02"
	DateLabel string // FormatDate(Date)

	Time     string
	Title    string
	Category Category
	Location string
	Cost     *float64
	Duration *int
	Memo     string
}

// FlattenSchedule returns the export rows for every day of the plan in order.
func FlattenSchedule(p TravelPlan) []ScheduleRow {
	rows := make([]ScheduleRow, 0, max(p.ActivityCount(), len(p.Days)))
	for _, d := range p.Days {
		base := ScheduleRow{DayNumber: d.DayNumber, Date: d.Date, DateLabel: FormatDate(d.Date)}
		if len(d.Activities) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, a := range d.Activities {
			r := base
			r.Time = a.Time
			r.Title = a.Title
			r.Category = a.Category
			r.Location = a.Location
			r.Cost = a.Cost
			r.Duration = a.Duration
			r.Memo = a.Memo
			rows = append(rows, r)
		}
	}
	return rows
}
