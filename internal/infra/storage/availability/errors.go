package availability

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда шаблон доступности не найден
	ErrTemplateNotFound = errors.New("availability.repository: template not found")

	// ErrTemplateExists возвращается при создании дубликата пары (день недели, слот)
	ErrTemplateExists = errors.New("availability.repository: template already exists")

	// ErrBlockedDateNotFound возвращается, когда заблокированная дата не найдена
	ErrBlockedDateNotFound = errors.New("availability.repository: blocked date not found")

	// ErrDateAlreadyBlocked возвращается при повторной блокировке той же даты
	ErrDateAlreadyBlocked = errors.New("availability.repository: date already blocked")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
