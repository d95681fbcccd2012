package repository

// Repository 数据访问层聚合入口
type Repository struct {
	Auth      AuthRepository
	Student   StudentRepository
	Professor ProfessorRepository
}

// NewRepository 创建基于考试后端 HTTP 接口的 Repository 聚合
func NewRepository(c *Client) *Repository {
	return &Repository{
		Auth:      NewAuthRepo(c),
		Student:   NewStudentRepo(c),
		Professor: NewProfessorRepo(c),
	}
}
