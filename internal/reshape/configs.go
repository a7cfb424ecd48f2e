package reshape

// QuestionFinished configures the per-question accepted-count chart.
// Questions are labelled by position after sorting by credit.
var QuestionFinished = Config{
	Title:       "Question Finished Count",
	XAxisName:   "Minute",
	YAxisName:   "Accepted",
	LabelAlias:  "Question",
	ValueAlias:  "Count",
	LabelPrefix: "Q",
}

// RealTimeRank configures the per-user rank chart.
var RealTimeRank = Config{
	Title:      "User Real Time Rank",
	XAxisName:  "Minute",
	YAxisName:  "Rank",
	LabelAlias: "Username",
	ValueAlias: "Rank",
}
