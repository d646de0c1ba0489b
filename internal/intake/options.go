package intake

// OtherOption 「기타」：희망과정选择此项时以自由输入的 OtherCourse 代替
const OtherOption = "기타"

// Courses 희망과정可选项
var Courses = []string{
	"사회복지사 2급",
	"보육교사 2급",
	"장애영유아 보육교사",
	"아동학사",
	"정사서 2급",
	OtherOption,
}

// EducationLevels 최종학력可选项
var EducationLevels = []string{
	"고등학교 졸업",
	"대학교 졸업",
	"대학교 중퇴",
	OtherOption,
}

// IsCourse 是否为枚举内的희망과정
func IsCourse(v string) bool { return contains(Courses, v) }

// IsEducationLevel 是否为枚举内的최종학력
func IsEducationLevel(v string) bool { return contains(EducationLevels, v) }

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
