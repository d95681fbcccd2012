package model

// User 用户基本信息
type User struct {
	PersonCode string `json:"personCode"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Email      string `json:"email"`
}

// Career 登录用户的一条学籍/任职记录
type Career struct {
	ID    int64   `json:"id"`
	Role  string  `json:"role"` // student | professor
	Major *string `json:"major,omitempty"`
}

// StudentCareer 报名记录中嵌入的学生学籍
type StudentCareer struct {
	ID    int64  `json:"id"`
	Major string `json:"major"`
	User  User   `json:"user"`
}

// Identity 会话中的登录身份
type Identity struct {
	User    User     `json:"user"`
	Careers []Career `json:"careers"`
	Token   string   `json:"token"`
	AllDay  bool     `json:"allDay"`
}

// Career 按 ID 查找当前身份下的学籍
func (i *Identity) Career(id int64) (Career, bool) {
	if i == nil {
		return Career{}, false
	}
	for _, c := range i.Careers {
		if c.ID == id {
			return c, true
		}
	}
	return Career{}, false
}
