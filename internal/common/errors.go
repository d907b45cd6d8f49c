// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях сервера.
// Эти ошибки позволяют HTTP-обработчикам различать типы проблем
// и возвращать клиенту понятные коды и сообщения.
package common

import "errors"

// Ошибки кошелька и экономики
var (
	// ErrInsufficientBalance — недостаточно средств на счёте
	ErrInsufficientBalance = errors.New("недостаточно средств на счёте")
	// ErrBelowMinimum — сумма меньше минимально допустимой
	ErrBelowMinimum = errors.New("сумма меньше минимально допустимой")
	// ErrInvalidAmount — некорректная сумма (ноль или отрицательная)
	ErrInvalidAmount = errors.New("сумма должна быть положительной")
	// ErrDepositToday — депозит уже был сделан сегодня
	ErrDepositToday = errors.New("сегодня депозит уже был создан")
)

// Ошибки генераторов
var (
	// ErrGeneratorNotFound — неизвестный тип генератора в каталоге
	ErrGeneratorNotFound = errors.New("генератор не найден в каталоге")
	// ErrItemNotFound — предмет не найден или принадлежит другому пользователю
	ErrItemNotFound = errors.New("предмет не найден")
)

// Ошибки пользователей и сессий
var (
	// ErrUserNotFound — пользователь не найден в базе
	ErrUserNotFound = errors.New("пользователь не найден")
	// ErrEmailTaken — email уже зарегистрирован
	ErrEmailTaken = errors.New("email уже зарегистрирован")
	// ErrUnauthorized — нет активной сессии или неверные учётные данные
	ErrUnauthorized = errors.New("требуется авторизация")
	// ErrReferralNotFound — неизвестный реферальный код
	ErrReferralNotFound = errors.New("реферальный код не найден")
	// ErrInvalidEmail — строка не похожа на email
	ErrInvalidEmail = errors.New("некорректный email")
	// ErrWeakPassword — пароль короче минимальной длины
	ErrWeakPassword = errors.New("пароль короче 8 символов")
	// ErrBadRequest — тело запроса не разобралось
	ErrBadRequest = errors.New("некорректный запрос")
)

// Ошибки админки
var (
	// ErrNotAdmin — пользователь не является администратором
	ErrNotAdmin = errors.New("у вас нет прав администратора")
	// ErrWrongPassword — неверный пароль администратора
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, подождите 1 час")
)

// Ошибки выключенных функций (admin_settings)
var (
	// ErrDepositsDisabled — приём депозитов отключён
	ErrDepositsDisabled = errors.New("депозиты временно отключены")
	// ErrWithdrawalsDisabled — вывод средств отключён
	ErrWithdrawalsDisabled = errors.New("вывод средств временно отключён")
	// ErrConversionsDisabled — конвертация валют отключена
	ErrConversionsDisabled = errors.New("конвертация временно отключена")
)
