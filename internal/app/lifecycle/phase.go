package lifecycle

type Phase int

const (
	Absent Phase = iota
	Creating
	Entering
	Active
	Exiting
	Destroying
)

func (p Phase) String() string {
	switch p {
	case Absent:
		return "absent"
	case Creating:
		return "creating"
	case Entering:
		return "entering"
	case Active:
		return "active"
	case Exiting:
		return "exiting"
	case Destroying:
		return "destroying"
	}
	return "unknown"
}
