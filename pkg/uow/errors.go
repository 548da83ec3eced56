package uow

import "errors"

var (
	// ErrRepositoryNotRegistered фабрика с таким именем не передавалась в Register.
	ErrRepositoryNotRegistered = errors.New("[uow] repository not registered")
	// ErrRepositoryAlreadyRegistered повторная регистрация имени.
	ErrRepositoryAlreadyRegistered = errors.New("[uow] repository already registered")
	// ErrInvalidRepositoryType репозиторий не реализует запрошенный в GetAs тип.
	ErrInvalidRepositoryType = errors.New("[uow] invalid repository type")
)
