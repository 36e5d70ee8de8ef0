package attendance

import "time"

// Record statuses. In-Progress and Pending Approval are the only
// non-terminal states; no transition returns a record to a prior state.
const (
	StatusInProgress = "In-Progress"
	StatusPresent    = "Present"
	StatusShortage   = "Shortage"
	StatusPending    = "Pending Approval"
	StatusRejected   = "Rejected"
)

// DefaultStudentName is used when a sign-in or regularization request
// arrives without a name.
const DefaultStudentName = "Guest Student"

// Record is one attendance row: either a sign-in/sign-out session or a
// regularization request (IsRegularized true, never signed out).
type Record struct {
	ID            int64      `json:"id"`
	StudentName   string     `json:"student_name"`
	SignIn        time.Time  `json:"sign_in"`
	SignOut       *time.Time `json:"sign_out"`
	TotalHours    *string    `json:"total_hours"`
	Status        string     `json:"status"`
	Notes         *string    `json:"notes"`
	IsRegularized bool       `json:"is_regularized"`
}

// Activity is one entry of the recent-activity feed.
type Activity struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Time string `json:"time"`
}
