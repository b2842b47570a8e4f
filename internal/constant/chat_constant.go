package constant

const (
	ChatMessageRoleStudent = "student"
	ChatMessageRoleTutor   = "tutor"

	AccessCodeStatusActive   = "ACTIVE"
	AccessCodeStatusDisabled = "DISABLED"
)

var Levels = []string{
	"CSEE (Form IV)",
	"ACSEE (Form VI)",
}

var Subjects = []string{
	"English",
	"French",
	"Arabic",
	"Basic Mathematics",
	"Biology",
	"Chemistry",
	"Physics",
	"Geography",
	"History",
	"Civics",
}

func IsValidLevel(level string) bool {
	for _, l := range Levels {
		if l == level {
			return true
		}
	}
	return false
}

func IsValidSubject(subject string) bool {
	for _, s := range Subjects {
		if s == subject {
			return true
		}
	}
	return false
}
