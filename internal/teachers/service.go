package teachers

import "context"

// Service serves teacher reference data through a read-through cache.
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService builds a Service instance.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// List returns all teachers.
func (s *Service) List(ctx context.Context) ([]Teacher, error) {
	if teachers, ok := s.cache.List(ctx); ok {
		return teachers, nil
	}
	teachers, err := s.repo.ListTeachers(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.StoreList(ctx, teachers)
	return teachers, nil
}

// Get returns the teacher with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*Teacher, error) {
	if teacher, ok := s.cache.Teacher(ctx, id); ok {
		return teacher, nil
	}
	teacher, err := s.repo.GetTeacher(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.StoreTeacher(ctx, teacher)
	return teacher, nil
}
