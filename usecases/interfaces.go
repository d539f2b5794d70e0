package usecases

import "github.com/Vaflel/school-registry/domain"

// DatabaseLoader определяет источник, из которого можно прочитать базу целиком
type DatabaseLoader interface {
	Load() (*domain.Database, error)
}

// DatabaseRepository определяет интерфейс для работы с хранилищем базы
type DatabaseRepository interface {
	DatabaseLoader
	Save(db *domain.Database) error
}
