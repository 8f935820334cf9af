package hotels

// Status is the outreach state of a hotel. Transitions are not sequenced;
// any status may move to any other.
type Status string

const (
	StatusNew           Status = "NEW"
	StatusCalling       Status = "CALLING"
	StatusNoAnswer      Status = "NO_ANSWER"
	StatusNotInterested Status = "NOT_INTERESTED"
	StatusInterested    Status = "INTERESTED"
	StatusDemoBooked    Status = "DEMO_BOOKED"
	StatusSigned        Status = "SIGNED"
)

// AllStatuses lists every status in business order.
var AllStatuses = []Status{
	StatusNew,
	StatusCalling,
	StatusNoAnswer,
	StatusNotInterested,
	StatusInterested,
	StatusDemoBooked,
	StatusSigned,
}

// Valid reports whether s is one of the seven known statuses.
func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}
