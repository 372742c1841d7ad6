package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type ShiftChangedMailData struct {
	WorkingWeekName string `json:"workingWeekName"`
	Action          string `json:"action"`
	Weekday         string `json:"weekday"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	WeeklyDuration  string `json:"weeklyDuration"`
}
