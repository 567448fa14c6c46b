package availability

import "errors"

var (
	// ErrInvalidInput - некорректные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrTemplateExists - шаблон для этого дня недели и слота уже существует
	ErrTemplateExists = errors.New("availability template already exists")
	// ErrTemplateNotFound - шаблон не найден
	ErrTemplateNotFound = errors.New("availability template not found")
	// ErrDateAlreadyBlocked - дата уже заблокирована
	ErrDateAlreadyBlocked = errors.New("date already blocked")
	// ErrBlockedDateNotFound - заблокированная дата не найдена
	ErrBlockedDateNotFound = errors.New("blocked date not found")
	// ErrInternal - внутренняя ошибка сервиса
	ErrInternal = errors.New("internal service error")
)
