// Package models содержит структуру фильтра, которая передаётся
// в слой доступа к данным при выборке карточек расходов.
package models

import "time"

// ExpenseFilter представляет параметры фильтрации и сортировки,
// уже приведённые к типам и областям допустимых значений.
//
// OwnerUID заполняется всегда и берётся из авторизованной сессии,
// никогда из параметров запроса: фильтр без владельца — дефект
// безопасности, который этот слой обязан исключить. Границы диапазонов
// независимы друг от друга: nil означает отсутствие границы.
type ExpenseFilter struct {
	OwnerUID  string     // Владелец записей, обязателен
	Category  string     // Точное совпадение категории, пусто — без фильтра
	MinAmount *float64   // Нижняя граница суммы
	MaxAmount *float64   // Верхняя граница суммы (ноль — валидная граница)
	MinDate   *time.Time // Нижняя граница даты
	MaxDate   *time.Time // Верхняя граница даты
	SortField string     // Колонка сортировки из белого списка
	SortDesc  bool       // true — по убыванию, по умолчанию по возрастанию
}
